package scripts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0755))
}

func TestRunnerCapturesOutputAndExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("测试脚本为 sh 语法")
	}

	dir := t.TempDir()
	writeScript(t, dir, "fail.sh", "#!/bin/sh\necho hello\nexit 3\n")

	r := NewRunner(dir, time.Minute, 0, testLogger())
	result, err := r.Run(context.Background(), "fail.sh")
	require.NoError(t, err)

	assert.Equal(t, "fail.sh", result.Script)
	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.OK)
	assert.False(t, result.TimedOut)
	assert.Contains(t, result.Output, "hello")
	assert.NotEmpty(t, result.RunID)
	assert.False(t, result.StartedAt.IsZero())
	assert.GreaterOrEqual(t, result.DurationMs, int64(0))
}

func TestRunnerSuccessfulScript(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("测试脚本为 sh 语法")
	}

	dir := t.TempDir()
	writeScript(t, dir, "ok.sh", "#!/bin/sh\necho done\n")

	r := NewRunner(dir, time.Minute, 0, testLogger())
	result, err := r.Run(context.Background(), "ok.sh")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, 0, result.ExitCode)
	assert.Contains(t, result.Output, "done")
}

func TestRunnerTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("测试脚本为 sh 语法")
	}

	dir := t.TempDir()
	writeScript(t, dir, "slow.sh", "#!/bin/sh\nsleep 10\n")

	r := NewRunner(dir, 100*time.Millisecond, 0, testLogger())
	result, err := r.Run(context.Background(), "slow.sh")
	require.NoError(t, err)

	assert.True(t, result.TimedOut)
	assert.False(t, result.OK)
	assert.Less(t, result.DurationMs, int64(5000), "超时后应尽快返回")
}

func TestRunnerRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	r := NewRunner(dir, time.Minute, 0, testLogger())

	for _, name := range []string{"", "../evil.sh", "sub/evil.sh", ".hidden.sh"} {
		_, err := r.Run(context.Background(), name)
		assert.Error(t, err, "脚本名 %q 应被拒绝", name)
	}
}

func TestRunnerMissingScript(t *testing.T) {
	r := NewRunner(t.TempDir(), time.Minute, 0, testLogger())

	_, err := r.Run(context.Background(), "nope.sh")
	assert.Error(t, err)
}

func TestRunnerTruncatesLongOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("测试脚本为 sh 语法")
	}

	dir := t.TempDir()
	writeScript(t, dir, "big.sh", "#!/bin/sh\ni=0\nwhile [ $i -lt 200 ]; do echo 0123456789; i=$((i+1)); done\n")

	r := NewRunner(dir, time.Minute, 512, testLogger())
	result, err := r.Run(context.Background(), "big.sh")
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Output), 512+64)
	assert.Contains(t, result.Output, "[输出已截断]")
}
