// app_api.go - 暴露给前端的 API 方法 (Wails Bindings)
// 这些方法会被自动生成为 JavaScript 调用
//
// API 文件按功能模块拆分:
// - app_api.go          - 系统状态、路径命令 (本文件)
// - app_api_scripts.go  - 脚本列表、执行、运行历史
// - app_api_settings.go - 偏好设置、日志查询

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// 主目录不可确定时两个路径命令返回同一错误文本
const errHomeDirUnavailable = "无法确定用户主目录"

// ============================================================
// 路径命令 API
// ============================================================

// GetHomeDir 返回当前用户主目录
func (a *App) GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New(errHomeDirUnavailable)
	}
	return home, nil
}

// GetDefaultScriptsPath 返回默认脚本目录（主目录下的 scripts）。
// 主目录不可确定时返回与 GetHomeDir 相同的错误。
func (a *App) GetDefaultScriptsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New(errHomeDirUnavailable)
	}
	return filepath.Join(home, "scripts"), nil
}

// ============================================================
// 系统状态 API
// ============================================================

// SystemStatus 系统状态结构
type SystemStatus struct {
	Version       string `json:"version"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	StartTime     string `json:"start_time"` // ISO8601 格式的启动时间
	ScriptsDir    string `json:"scripts_dir"`
	ConfigPath    string `json:"config_path"`
	DatabaseOK    bool   `json:"database_ok"`
	WatcherOK     bool   `json:"watcher_ok"`
}

// GetSystemStatus 获取系统状态
func (a *App) GetSystemStatus() SystemStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()

	uptime := time.Since(a.startTime)

	return SystemStatus{
		Version:       Version,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: int64(uptime.Seconds()),
		StartTime:     a.startTime.Format(time.RFC3339),
		ScriptsDir:    a.scriptsDir,
		ConfigPath:    a.configPath,
		DatabaseOK:    a.db != nil,
		WatcherOK:     a.scriptsWatcher != nil,
	}
}

// formatDuration 格式化时长为人类可读形式
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d秒", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%d分%d秒", int(d.Minutes()), int(d.Seconds())%60)
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%d小时%d分", int(d.Hours()), int(d.Minutes())%60)
	}
	return fmt.Sprintf("%d天%d小时", int(d.Hours())/24, int(d.Hours())%24)
}
