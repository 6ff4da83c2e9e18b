// app_api_settings.go - 偏好设置与日志查询 API (Wails Bindings)

package main

import (
	"context"
	"errors"
	"time"

	"scripts-runner/internal/logging"
)

// ============================================================
// 偏好设置 API (SQLite)
// ============================================================

// GetPreference 获取单个偏好，不存在时返回空字符串
func (a *App) GetPreference(key string) (string, error) {
	if a.prefService == nil {
		return "", errors.New("偏好设置不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.prefService.GetString(ctx, key, ""), nil
}

// SetPreference 写入单个偏好
func (a *App) SetPreference(key, value string) error {
	if a.prefService == nil {
		return errors.New("偏好设置不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.prefService.Set(ctx, key, value)
}

// DeletePreference 删除单个偏好
func (a *App) DeletePreference(key string) error {
	if a.prefService == nil {
		return errors.New("偏好设置不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.prefService.Delete(ctx, key)
}

// GetAllPreferences 返回所有偏好的键值映射
func (a *App) GetAllPreferences() (map[string]string, error) {
	if a.prefService == nil {
		return nil, errors.New("偏好设置不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.prefService.GetAll(ctx)
}

// ============================================================
// 日志查询 API
// ============================================================

// GetRecentLogs 返回最近的 limit 条日志（供前端日志面板初始加载）
func (a *App) GetRecentLogs(limit int) []logging.LogEntry {
	if a.logHandler == nil {
		return nil
	}
	return a.logHandler.GetRecent(limit)
}
