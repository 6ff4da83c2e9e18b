package scripts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RunResult 一次脚本执行的结果
type RunResult struct {
	RunID      string    `json:"run_id"`
	Script     string    `json:"script"`
	ExitCode   int       `json:"exit_code"`
	OK         bool      `json:"ok"`
	TimedOut   bool      `json:"timed_out"`
	Output     string    `json:"output"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMs int64     `json:"duration_ms"`
}

// Runner 在平台 shell 中执行脚本，捕获合并输出并截断。
type Runner struct {
	dir       string
	timeout   time.Duration
	maxOutput int
	logger    *slog.Logger
}

// NewRunner 创建脚本执行器。timeout <= 0 表示不限时。
func NewRunner(dir string, timeout time.Duration, maxOutput int, logger *slog.Logger) *Runner {
	if maxOutput <= 0 {
		maxOutput = 64 * 1024
	}
	return &Runner{
		dir:       dir,
		timeout:   timeout,
		maxOutput: maxOutput,
		logger:    logger,
	}
}

// Run 执行脚本目录下的一个脚本。
// name 只接受纯文件名，拒绝任何路径成分，防止逃出脚本目录。
func (r *Runner) Run(ctx context.Context, name string) (*RunResult, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("非法脚本名: %q", name)
	}

	path := filepath.Join(r.dir, name)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("脚本不存在: %w", err)
	}

	runCtx := ctx
	var cancel context.CancelFunc
	if r.timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	r.logger.Info("🔄 开始执行脚本", "script", name, "timeout", r.timeout)

	cmd := commandFor(runCtx, path)
	started := time.Now()
	output, runErr := cmd.CombinedOutput()
	finished := time.Now()

	result := &RunResult{
		RunID:      uuid.NewString(),
		Script:     name,
		Output:     truncateOutput(string(output), r.maxOutput),
		StartedAt:  started,
		FinishedAt: finished,
		DurationMs: finished.Sub(started).Milliseconds(),
	}

	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		result.TimedOut = true
	}

	switch {
	case runErr == nil:
		result.OK = true
		r.logger.Info("✅ 脚本执行成功", "script", name, "duration_ms", result.DurationMs)
	default:
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
			result.Output = result.Output + "\n" + runErr.Error()
		}
		r.logger.Warn("⚠️ 脚本执行失败",
			"script", name,
			"exit_code", result.ExitCode,
			"timed_out", result.TimedOut,
			"duration_ms", result.DurationMs)
	}

	return result, nil
}

// truncateOutput 截断过长的输出，保留开头并标注截断。
func truncateOutput(output string, max int) string {
	if len(output) <= max {
		return output
	}
	return output[:max] + "\n... [输出已截断]"
}
