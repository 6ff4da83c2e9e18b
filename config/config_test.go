package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "scripts:\n  dir: /opt/scripts\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Scripts.Dir != "/opt/scripts" {
		t.Errorf("期望脚本目录 /opt/scripts，实际为 %s", cfg.Scripts.Dir)
	}
	if cfg.Tray.Tooltip != "Scripts Runner" {
		t.Errorf("期望默认 tooltip，实际为 %s", cfg.Tray.Tooltip)
	}
	if cfg.Runner.Timeout != 60*time.Second {
		t.Errorf("期望默认超时 60s，实际为 %v", cfg.Runner.Timeout)
	}
	if cfg.Runner.HistoryKeep != 500 {
		t.Errorf("期望默认保留 500 条历史，实际为 %d", cfg.Runner.HistoryKeep)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("期望默认日志级别 info，实际为 %s", cfg.Logging.Level)
	}
}

func TestLoadConfigRejectsInvalidLevel(t *testing.T) {
	path := writeConfigFile(t, "logging:\n  level: verbose\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("无效日志级别应加载失败")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("配置文件不存在应加载失败")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("默认配置应通过校验: %v", err)
	}
}

func TestSlogLevelMapping(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
	}

	for _, tt := range tests {
		cfg := &Config{Logging: LoggingConfig{Level: tt.level}}
		if got := cfg.SlogLevel().String(); got != tt.want {
			t.Errorf("级别 %s 期望映射为 %s，实际为 %s", tt.level, tt.want, got)
		}
	}
}
