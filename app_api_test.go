package main

import (
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDefaultScriptsPathExtendsHomeDir(t *testing.T) {
	app := NewApp()

	home, err := app.GetHomeDir()
	require.NoError(t, err)
	require.NotEmpty(t, home)

	path, err := app.GetDefaultScriptsPath()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "scripts"), path)
}

func TestPathCommandsFailIdenticallyWithoutHome(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("HOME 环境变量仅对 unix 生效")
	}

	t.Setenv("HOME", "")

	app := NewApp()

	_, homeErr := app.GetHomeDir()
	_, pathErr := app.GetDefaultScriptsPath()

	require.Error(t, homeErr)
	require.Error(t, pathErr)
	assert.Equal(t, homeErr.Error(), pathErr.Error(), "两个命令应返回相同的错误文本")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30秒"},
		{90 * time.Second, "1分30秒"},
		{2*time.Hour + 5*time.Minute, "2小时5分"},
		{26 * time.Hour, "1天2小时"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

func TestGetSystemStatus(t *testing.T) {
	app := NewApp()
	app.scriptsDir = "/tmp/scripts"

	status := app.GetSystemStatus()

	assert.Equal(t, Version, status.Version)
	assert.Equal(t, "/tmp/scripts", status.ScriptsDir)
	assert.False(t, status.DatabaseOK)
	assert.False(t, status.WatcherOK)
	assert.NotEmpty(t, status.StartTime)
}
