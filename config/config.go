// Package config 提供应用配置的加载、校验与热重载
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// Config 应用配置
type Config struct {
	Tray    TrayConfig    `yaml:"tray"`
	Scripts ScriptsConfig `yaml:"scripts"`
	Runner  RunnerConfig  `yaml:"runner"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// TrayConfig 托盘配置
type TrayConfig struct {
	Tooltip string `yaml:"tooltip"`
}

// ScriptsConfig 脚本目录配置
type ScriptsConfig struct {
	// Dir 脚本目录，为空时使用 ~/scripts
	Dir string `yaml:"dir"`
}

// RunnerConfig 脚本执行配置
type RunnerConfig struct {
	// Timeout 单次执行超时，0 表示不限时
	Timeout time.Duration `yaml:"timeout"`

	// MaxOutput 单次运行保留的合并输出字节数
	MaxOutput int `yaml:"max_output"`

	// HistoryKeep 运行历史保留条数
	HistoryKeep int `yaml:"history_keep"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	// DatabasePath SQLite 文件路径，为空时使用应用数据目录
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig 日志配置
type LoggingConfig struct {
	Level       string `yaml:"level"`
	FileEnabled bool   `yaml:"file_enabled"`
	FilePath    string `yaml:"file_path"`
}

// Default 返回内置默认配置（没有配置文件时应用照常运行）
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// LoadConfig 从 YAML 文件加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SetDefaults 填充未设置的字段
func (c *Config) SetDefaults() {
	if c.Tray.Tooltip == "" {
		c.Tray.Tooltip = "Scripts Runner"
	}
	if c.Runner.Timeout == 0 {
		c.Runner.Timeout = 60 * time.Second
	}
	if c.Runner.MaxOutput == 0 {
		c.Runner.MaxOutput = 64 * 1024
	}
	if c.Runner.HistoryKeep == 0 {
		c.Runner.HistoryKeep = 500
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("无效的日志级别: %s", c.Logging.Level)
	}

	if c.Runner.Timeout < 0 {
		return fmt.Errorf("执行超时不能为负数: %v", c.Runner.Timeout)
	}
	if c.Runner.MaxOutput < 0 {
		return fmt.Errorf("输出上限不能为负数: %d", c.Runner.MaxOutput)
	}
	if c.Runner.HistoryKeep < 0 {
		return fmt.Errorf("历史保留条数不能为负数: %d", c.Runner.HistoryKeep)
	}

	return nil
}

// SlogLevel 将配置的日志级别映射到 slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.Logging.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigWatcher 监听配置文件并自动重载
type ConfigWatcher struct {
	configPath    string
	config        *Config
	mutex         sync.RWMutex
	watcher       *fsnotify.Watcher
	logger        *slog.Logger
	callbacks     []func(*Config)
	lastModTime   time.Time
	debounceTimer *time.Timer
}

// NewConfigWatcher 加载初始配置并启动文件监听
func NewConfigWatcher(configPath string, logger *slog.Logger) (*ConfigWatcher, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, fmt.Errorf("获取配置文件信息失败: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听器失败: %w", err)
	}

	cw := &ConfigWatcher{
		configPath:  configPath,
		config:      cfg,
		watcher:     watcher,
		logger:      logger,
		callbacks:   make([]func(*Config), 0),
		lastModTime: fileInfo.ModTime(),
	}

	if err := watcher.Add(configPath); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("监听配置文件失败: %w", err)
	}

	go cw.watchLoop()

	return cw, nil
}

// GetConfig 返回当前配置（线程安全）
func (cw *ConfigWatcher) GetConfig() *Config {
	cw.mutex.RLock()
	defer cw.mutex.RUnlock()
	return cw.config
}

// UpdateLogger 替换监听器使用的 logger
func (cw *ConfigWatcher) UpdateLogger(logger *slog.Logger) {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	cw.logger = logger
}

// AddReloadCallback 注册配置重载回调
func (cw *ConfigWatcher) AddReloadCallback(callback func(*Config)) {
	cw.mutex.Lock()
	defer cw.mutex.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// Close 停止监听
func (cw *ConfigWatcher) Close() error {
	cw.mutex.Lock()
	if cw.debounceTimer != nil {
		cw.debounceTimer.Stop()
	}
	cw.mutex.Unlock()
	return cw.watcher.Close()
}

func (cw *ConfigWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}

			if event.Has(fsnotify.Write) {
				fileInfo, err := os.Stat(cw.configPath)
				if err != nil {
					cw.logger.Warn(fmt.Sprintf("⚠️ 无法获取配置文件信息: %v", err))
					continue
				}

				// 修改时间没变说明是重复事件
				if !fileInfo.ModTime().After(cw.lastModTime) {
					continue
				}
				cw.lastModTime = fileInfo.ModTime()

				if cw.debounceTimer != nil {
					cw.debounceTimer.Stop()
				}
				cw.debounceTimer = time.AfterFunc(500*time.Millisecond, func() {
					cw.logger.Info(fmt.Sprintf("🔄 检测到配置文件变更，正在重新加载... - 文件: %s", event.Name))
					if err := cw.reloadConfig(); err != nil {
						cw.logger.Error(fmt.Sprintf("❌ 配置文件重新加载失败: %v", err))
					} else {
						cw.logger.Info("✅ 配置文件重新加载成功")
					}
				})
			}

			// 部分编辑器保存时重命名文件，文件重建后需要重新监听
			if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				time.Sleep(100 * time.Millisecond)
				if _, err := os.Stat(cw.configPath); err == nil {
					cw.watcher.Add(cw.configPath)
					cw.logger.Info(fmt.Sprintf("🔄 重新监听配置文件: %s", cw.configPath))
				}
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Error(fmt.Sprintf("⚠️ 配置文件监听错误: %v", err))
		}
	}
}

func (cw *ConfigWatcher) reloadConfig() error {
	newConfig, err := LoadConfig(cw.configPath)
	if err != nil {
		return err
	}

	cw.mutex.Lock()
	oldConfig := cw.config
	cw.config = newConfig
	callbacks := make([]func(*Config), len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mutex.Unlock()

	for _, callback := range callbacks {
		callback(newConfig)
	}

	if oldConfig.Logging.Level != newConfig.Logging.Level {
		cw.logger.Info("📊 日志级别变更",
			"old_level", oldConfig.Logging.Level,
			"new_level", newConfig.Logging.Level)
	}
	if oldConfig.Scripts.Dir != newConfig.Scripts.Dir {
		cw.logger.Info("📁 脚本目录变更",
			"old_dir", oldConfig.Scripts.Dir,
			"new_dir", newConfig.Scripts.Dir)
	}

	return nil
}
