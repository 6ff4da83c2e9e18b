// Package store 提供数据存储层实现
// 运行历史存储
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// RunRecord 表示一次脚本运行的记录
type RunRecord struct {
	ID int64 `json:"id"`

	// 运行标识
	RunID  string `json:"run_id"` // UUID
	Script string `json:"script"` // 脚本文件名

	// 运行结果
	ExitCode int    `json:"exit_code"`
	OK       bool   `json:"ok"`
	Output   string `json:"output"` // 合并输出（已截断）

	// 时间信息
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMs int64     `json:"duration_ms"`
}

// RunHistoryStore 定义运行历史存储接口
type RunHistoryStore interface {
	Insert(ctx context.Context, record *RunRecord) error
	List(ctx context.Context, limit int) ([]*RunRecord, error)
	CountByScript(ctx context.Context, script string) (int, error)

	// Prune 只保留最近 keep 条记录，返回删除数量
	Prune(ctx context.Context, keep int) (int64, error)
}

// SQLiteRunHistoryStore 实现 RunHistoryStore 接口
type SQLiteRunHistoryStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLiteRunHistoryStore 创建新的 SQLite 运行历史存储
func NewSQLiteRunHistoryStore(db *sql.DB) *SQLiteRunHistoryStore {
	return &SQLiteRunHistoryStore{db: db}
}

// Insert 写入一条运行记录
func (s *SQLiteRunHistoryStore) Insert(ctx context.Context, record *RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO run_history (run_id, script, exit_code, ok, output, started_at, finished_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		record.RunID, record.Script, record.ExitCode, boolToInt(record.OK), record.Output,
		formatSQLiteDateTime(record.StartedAt), formatSQLiteDateTime(record.FinishedAt),
		record.DurationMs,
	)
	if err != nil {
		return fmt.Errorf("写入运行记录失败: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}

	return nil
}

// List 返回最近的运行记录（按开始时间倒序）
func (s *SQLiteRunHistoryStore) List(ctx context.Context, limit int) ([]*RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, run_id, script, exit_code, ok, output, started_at, finished_at, duration_ms
		FROM run_history
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := queryRowsWithSQLiteBusyRetry(ctx, func() (*sql.Rows, error) {
		return s.db.QueryContext(ctx, query, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("查询运行历史失败: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		var record RunRecord
		var ok int
		var startedAt, finishedAt string

		err := rows.Scan(
			&record.ID, &record.RunID, &record.Script, &record.ExitCode, &ok,
			&record.Output, &startedAt, &finishedAt, &record.DurationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("扫描运行记录失败: %w", err)
		}

		record.OK = ok == 1
		record.StartedAt = parseSQLiteDateTime(startedAt)
		record.FinishedAt = parseSQLiteDateTime(finishedAt)

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历运行记录失败: %w", err)
	}

	return records, nil
}

// CountByScript 统计某脚本的运行次数
func (s *SQLiteRunHistoryStore) CountByScript(ctx context.Context, script string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM run_history WHERE script = ?", script).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("统计运行次数失败: %w", err)
	}

	return count, nil
}

// Prune 删除超出保留条数的旧记录
func (s *SQLiteRunHistoryStore) Prune(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}

	query := `
		DELETE FROM run_history
		WHERE id NOT IN (SELECT id FROM run_history ORDER BY id DESC LIMIT ?)
	`

	result, err := s.db.ExecContext(ctx, query, keep)
	if err != nil {
		return 0, fmt.Errorf("清理运行历史失败: %w", err)
	}

	deleted, _ := result.RowsAffected()
	return deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
