// Package store 提供数据存储层实现
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Open 打开应用数据库并初始化表结构。
// 所有读写共用单连接，配合 WAL 与 busy_timeout 避免 SQLITE_BUSY。
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("创建数据库目录失败: %w", err)
		}
	}

	dsn := dbPath + "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=10000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// InitSchema 建表与索引（幂等，可重复执行）。
func InitSchema(ctx context.Context, db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS run_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT UNIQUE NOT NULL,
			script TEXT NOT NULL,
			exit_code INTEGER NOT NULL DEFAULT 0,
			ok INTEGER NOT NULL DEFAULT 0,
			output TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_run_history_script ON run_history(script);
		CREATE INDEX IF NOT EXISTS idx_run_history_started_at ON run_history(started_at);

		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME NOT NULL DEFAULT (datetime('now', 'localtime'))
		);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("初始化表结构失败: %w", err)
	}

	return nil
}
