// app_api_scripts.go - 脚本管理 API (Wails Bindings)
// 脚本列表、执行与运行历史

package main

import (
	"context"
	"errors"
	"time"

	"scripts-runner/internal/scripts"
	"scripts-runner/internal/store"
)

// ============================================================
// 脚本 API
// ============================================================

// ListScripts 枚举脚本目录中的脚本
func (a *App) ListScripts() ([]scripts.ScriptInfo, error) {
	a.mu.RLock()
	dir := a.scriptsDir
	a.mu.RUnlock()

	return scripts.Discover(dir)
}

// RunScript 执行指定脚本并返回结果。
// 运行记录写入历史库，结果同时通过 script:finished 事件推送。
func (a *App) RunScript(name string) (*scripts.RunResult, error) {
	if a.runner == nil {
		return nil, errors.New("脚本执行器未初始化")
	}

	result, err := a.runner.Run(a.ctx, name)
	if err != nil {
		return nil, err
	}

	a.recordRun(result)
	a.emitScriptFinished(result)

	if !result.OK {
		a.emitNotification("warning", "脚本执行失败", result.Script)
	}

	return result, nil
}

// GetRunHistory 返回最近的运行记录
func (a *App) GetRunHistory(limit int) ([]*store.RunRecord, error) {
	if a.runStore == nil {
		return nil, errors.New("运行历史不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.runStore.List(ctx, limit)
}

// GetScriptRunCount 返回某脚本的历史运行次数
func (a *App) GetScriptRunCount(name string) (int, error) {
	if a.runStore == nil {
		return 0, errors.New("运行历史不可用")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	return a.runStore.CountByScript(ctx, name)
}

// recordRun 写入运行记录并清理超出保留条数的旧记录。
// 存储不可用或写入失败只告警，不影响脚本执行结果的返回。
func (a *App) recordRun(result *scripts.RunResult) {
	if a.runStore == nil {
		return
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	record := &store.RunRecord{
		RunID:      result.RunID,
		Script:     result.Script,
		ExitCode:   result.ExitCode,
		OK:         result.OK,
		Output:     result.Output,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		DurationMs: result.DurationMs,
	}

	if err := a.runStore.Insert(ctx, record); err != nil {
		a.logger.Warn("⚠️ 写入运行记录失败", "script", result.Script, "error", err)
		return
	}

	keep := a.getConfig().Runner.HistoryKeep
	if _, err := a.runStore.Prune(ctx, keep); err != nil {
		a.logger.Warn("⚠️ 清理运行历史失败", "error", err)
	}
}
