//go:build !windows

package scripts

import (
	"context"
	"os/exec"
)

// commandFor 通过 /bin/sh 执行脚本，不依赖可执行位和 shebang。
func commandFor(ctx context.Context, path string) *exec.Cmd {
	return exec.CommandContext(ctx, "/bin/sh", path)
}
