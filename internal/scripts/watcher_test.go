package scripts

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherNotifiesOnChange(t *testing.T) {
	dir := t.TempDir()

	var notified atomic.Int32
	w, err := NewWatcher(dir, testLogger(), func() {
		notified.Add(1)
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.sh"), []byte("echo hi"), 0755))

	assert.Eventually(t, func() bool {
		return notified.Load() >= 1
	}, 3*time.Second, 50*time.Millisecond, "文件创建后应收到变更通知")
}

func TestWatcherCreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "scripts")

	w, err := NewWatcher(dir, testLogger(), func() {})
	require.NoError(t, err, "目录不存在时应创建后监听")
	defer w.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
