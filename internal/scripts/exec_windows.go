//go:build windows

package scripts

import (
	"context"
	"os/exec"
)

// commandFor 通过 cmd.exe 执行脚本。
func commandFor(ctx context.Context, path string) *exec.Cmd {
	return exec.CommandContext(ctx, "cmd", "/C", path)
}
