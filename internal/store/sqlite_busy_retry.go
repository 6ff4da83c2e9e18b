package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

const busyRetryMaxBackoff = 500 * time.Millisecond

// isSQLiteBusyError 用字符串判断，避免耦合具体 driver 的错误类型。
func isSQLiteBusyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "sqlite_busy") || strings.Contains(msg, "database is locked")
}

// queryRowsWithSQLiteBusyRetry 对 busy 错误做指数退避重试，直到成功或 ctx 结束。
func queryRowsWithSQLiteBusyRetry(ctx context.Context, queryFn func() (*sql.Rows, error)) (*sql.Rows, error) {
	if ctx == nil {
		return queryFn()
	}

	backoff := 30 * time.Millisecond
	for {
		rows, err := queryFn()
		if err == nil || !isSQLiteBusyError(err) {
			return rows, err
		}

		// 上层已取消/超时则直接返回最后一次的 busy 错误，便于诊断
		if ctx.Err() != nil {
			return nil, err
		}

		wait := backoff
		if wait > busyRetryMaxBackoff {
			wait = busyRetryMaxBackoff
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, err
		case <-timer.C:
		}

		backoff *= 2
	}
}
