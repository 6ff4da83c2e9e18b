// app_events.go - Wails 事件发射
// 将 Go 后端状态变化通知到前端

package main

import (
	"scripts-runner/internal/scripts"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// 事件名称常量
const (
	EventSystemStatus      = "system:status"
	EventScriptsChanged    = "scripts:changed"
	EventScriptFinished    = "script:finished"
	EventPreferenceChanged = "preference:changed"
	EventConfigReloaded    = "config:reloaded"
	EventNotification      = "notification"

	// EventWindowFocus 由前端在 webview 获得/失去焦点时发出，载荷为布尔值
	EventWindowFocus = "window:focus"
)

// emitSystemStatus 发送系统状态更新到前端
func (a *App) emitSystemStatus() {
	if a.ctx == nil {
		return
	}

	runtime.EventsEmit(a.ctx, EventSystemStatus, a.GetSystemStatus())
}

// emitScriptsChanged 通知前端脚本列表可能已变化
func (a *App) emitScriptsChanged() {
	if a.ctx == nil {
		return
	}

	if a.logger != nil {
		a.logger.Debug("📡 [Wails Event] 推送脚本列表变更")
	}

	runtime.EventsEmit(a.ctx, EventScriptsChanged)
}

// emitScriptFinished 发送脚本运行结果到前端
func (a *App) emitScriptFinished(result *scripts.RunResult) {
	if a.ctx == nil {
		return
	}

	runtime.EventsEmit(a.ctx, EventScriptFinished, result)
}

// emitPreferenceChanged 发送偏好变化到前端
func (a *App) emitPreferenceChanged(key, value string) {
	if a.ctx == nil {
		return
	}

	runtime.EventsEmit(a.ctx, EventPreferenceChanged, map[string]string{
		"key":   key,
		"value": value,
	})
}

// emitConfigReloaded 通知前端配置已热重载
func (a *App) emitConfigReloaded() {
	if a.ctx == nil {
		return
	}

	runtime.EventsEmit(a.ctx, EventConfigReloaded)
}

// emitNotification 发送通知到前端
func (a *App) emitNotification(level, title, message string) {
	if a.ctx == nil {
		return
	}

	runtime.EventsEmit(a.ctx, EventNotification, map[string]string{
		"level":   level, // "info", "warning", "error", "success"
		"title":   title,
		"message": message,
	})
}
