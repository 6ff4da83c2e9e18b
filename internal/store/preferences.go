// Package store 提供数据存储层实现
// 前端偏好设置存储（键值对）
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// PreferenceRecord 表示一条前端偏好设置
type PreferenceRecord struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PreferenceStore 定义偏好设置存储接口
type PreferenceStore interface {
	// Get 获取单个偏好，不存在时返回 (nil, nil)
	Get(ctx context.Context, key string) (*PreferenceRecord, error)

	// Set 设置单个值（存在则更新，不存在则插入）
	Set(ctx context.Context, key, value string) error

	Delete(ctx context.Context, key string) error
	GetAll(ctx context.Context) ([]*PreferenceRecord, error)
	Count(ctx context.Context) (int, error)
}

// SQLitePreferenceStore 实现 PreferenceStore 接口
type SQLitePreferenceStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewSQLitePreferenceStore 创建新的 SQLite 偏好设置存储
func NewSQLitePreferenceStore(db *sql.DB) *SQLitePreferenceStore {
	return &SQLitePreferenceStore{db: db}
}

// Get 获取单个偏好
func (s *SQLitePreferenceStore) Get(ctx context.Context, key string) (*PreferenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT key, value, updated_at FROM preferences WHERE key = ?`

	var record PreferenceRecord
	var updatedAt string

	err := s.db.QueryRowContext(ctx, query, key).Scan(&record.Key, &record.Value, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("获取偏好设置失败: %w", err)
	}

	record.UpdatedAt = parseSQLiteDateTime(updatedAt)
	return &record, nil
}

// Set 设置单个值
func (s *SQLitePreferenceStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO preferences (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query, key, value, formatSQLiteDateTime(time.Now()))
	if err != nil {
		return fmt.Errorf("设置偏好失败: %w", err)
	}

	return nil
}

// Delete 删除单个偏好
func (s *SQLitePreferenceStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, "DELETE FROM preferences WHERE key = ?", key)
	if err != nil {
		return fmt.Errorf("删除偏好设置失败: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("偏好设置不存在: %s", key)
	}

	return nil
}

// GetAll 获取所有偏好（按键排序）
func (s *SQLitePreferenceStore) GetAll(ctx context.Context) ([]*PreferenceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT key, value, updated_at FROM preferences ORDER BY key ASC`

	rows, err := queryRowsWithSQLiteBusyRetry(ctx, func() (*sql.Rows, error) {
		return s.db.QueryContext(ctx, query)
	})
	if err != nil {
		return nil, fmt.Errorf("查询偏好设置失败: %w", err)
	}
	defer rows.Close()

	var records []*PreferenceRecord
	for rows.Next() {
		var record PreferenceRecord
		var updatedAt string

		if err := rows.Scan(&record.Key, &record.Value, &updatedAt); err != nil {
			return nil, fmt.Errorf("扫描偏好记录失败: %w", err)
		}

		record.UpdatedAt = parseSQLiteDateTime(updatedAt)
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历偏好记录失败: %w", err)
	}

	return records, nil
}

// Count 获取偏好总数
func (s *SQLitePreferenceStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM preferences").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("获取偏好数量失败: %w", err)
	}

	return count, nil
}
