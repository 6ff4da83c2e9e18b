// app.go - Wails 应用核心结构
// 封装所有业务组件，提供生命周期管理

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"scripts-runner/config"
	"scripts-runner/internal/logging"
	"scripts-runner/internal/scripts"
	"scripts-runner/internal/service"
	"scripts-runner/internal/store"
	"scripts-runner/internal/tray"
	"scripts-runner/internal/utils"
	"scripts-runner/internal/window"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App 是 Wails 应用的核心结构
// 它封装了所有业务组件，并暴露方法给前端调用
type App struct {
	// Wails 上下文
	ctx context.Context

	// 核心组件
	config        *config.Config
	configWatcher *config.ConfigWatcher
	logger        *slog.Logger
	logHandler    *logging.BroadcastHandler

	// 存储层 (SQLite)
	db          *sql.DB
	runStore    store.RunHistoryStore
	prefStore   store.PreferenceStore
	prefService *service.PreferencesService

	// 脚本子系统
	scriptsDir     string
	runner         *scripts.Runner
	scriptsWatcher *scripts.Watcher

	// 窗口与托盘
	winHost        *window.WailsHost
	winController  *window.Controller
	trayController tray.Controller

	// 应用状态
	startTime  time.Time
	configPath string

	// 并发控制
	mu       sync.RWMutex
	quitting int32
}

// NewApp 创建新的应用实例
func NewApp() *App {
	return &App{
		startTime: time.Now(),
	}
}

// startup 在 Wails 应用启动时调用，初始化所有组件
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	// 1. 加载配置
	a.loadConfig()

	// 2. 初始化日志
	a.logger, a.logHandler = setupLogger(a.config.Logging)
	if a.configWatcher != nil {
		a.configWatcher.UpdateLogger(a.logger)
	}

	a.logger.Info("🚀 Scripts Runner 启动中...",
		"version", Version,
		"config_file", a.configPath)

	// 3. macOS: 从 Dock 隐藏（accessory 激活策略）
	hideFromDock()

	// 4. 应用目录
	if err := utils.EnsureAppDirs(); err != nil {
		a.logger.Warn("⚠️ 创建应用目录失败", "error", err)
	}

	// 5. 存储层（数据库不可用时降级运行，历史/偏好功能缺失）
	a.setupStores()

	// 6. 脚本子系统
	a.setupScripts()

	// 7. 窗口可见性控制器与托盘
	a.setupWindowController()
	a.setupTray()
	a.setupFocusEvents()

	a.logger.Info("✅ Scripts Runner 启动完成",
		"scripts_dir", a.scriptsDir,
		"db_ok", a.db != nil)
}

// domReady 在前端 DOM 就绪后调用
func (a *App) domReady(ctx context.Context) {
	// 前端就绪后才开始推送日志批次
	a.logHandler.Emitter.Start(ctx)

	a.emitScriptsChanged()
	a.logger.Debug("📊 前端就绪")
}

// beforeClose 在窗口关闭前调用，返回 true 阻止关闭
// 托盘常驻应用：关闭按钮等同隐藏
func (a *App) beforeClose(ctx context.Context) bool {
	if atomic.LoadInt32(&a.quitting) == 1 {
		return false
	}

	if a.winHost != nil {
		_ = a.winHost.Hide()
	}
	return true
}

// shutdown 在应用退出时调用，逆序清理
func (a *App) shutdown(ctx context.Context) {
	atomic.StoreInt32(&a.quitting, 1)
	a.logger.Info("🔄 Scripts Runner 正在退出...")

	if a.trayController != nil {
		a.trayController.Stop()
	}
	if a.scriptsWatcher != nil {
		a.scriptsWatcher.Close()
	}
	if a.configWatcher != nil {
		a.configWatcher.Close()
	}
	if a.db != nil {
		a.db.Close()
	}

	a.logHandler.Emitter.Stop()
	a.logger.Info("✅ Scripts Runner 已退出")
}

// ============================================================
// 初始化步骤
// ============================================================

// loadConfig 加载配置。未指定配置文件或加载失败时使用内置默认配置，
// 指定了配置文件时同时启动热重载。
func (a *App) loadConfig() {
	if a.configPath == "" {
		a.config = config.Default()
		return
	}

	watcher, err := config.NewConfigWatcher(a.configPath, slog.Default())
	if err != nil {
		slog.Default().Warn("⚠️ 配置文件加载失败，使用默认配置", "path", a.configPath, "error", err)
		a.config = config.Default()
		return
	}

	a.configWatcher = watcher
	a.config = watcher.GetConfig()

	watcher.AddReloadCallback(func(newCfg *config.Config) {
		a.mu.Lock()
		a.config = newCfg
		a.mu.Unlock()
		a.emitConfigReloaded()
	})
}

// setupStores 打开数据库并构建存储与服务层
func (a *App) setupStores() {
	dbPath := a.config.Storage.DatabasePath
	if dbPath == "" {
		dbPath = filepath.Join(utils.GetDataDir(), "scripts-runner.db")
	}

	ctx, cancel := context.WithTimeout(a.ctx, 10*time.Second)
	defer cancel()

	db, err := store.Open(ctx, dbPath)
	if err != nil {
		a.logger.Warn("⚠️ 数据库不可用，运行历史与偏好设置功能降级", "path", dbPath, "error", err)
		return
	}

	a.db = db
	a.runStore = store.NewSQLiteRunHistoryStore(db)
	a.prefStore = store.NewSQLitePreferenceStore(db)
	a.prefService = service.NewPreferencesService(a.prefStore, a.logger)
	a.prefService.SetOnChangeCallback(func(key, value string) {
		a.emitPreferenceChanged(key, value)
	})

	a.logger.Info("✅ 数据库已就绪", "path", dbPath)
}

// setupScripts 确定脚本目录，构建执行器并启动目录监听
func (a *App) setupScripts() {
	dir := a.config.Scripts.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			a.logger.Warn("⚠️ 无法确定用户主目录，脚本目录退化为相对路径", "error", err)
			dir = "scripts"
		} else {
			dir = filepath.Join(home, "scripts")
		}
	}
	a.scriptsDir = dir

	a.runner = scripts.NewRunner(dir, a.config.Runner.Timeout, a.config.Runner.MaxOutput, a.logger)

	watcher, err := scripts.NewWatcher(dir, a.logger, func() {
		a.emitScriptsChanged()
	})
	if err != nil {
		a.logger.Warn("⚠️ 脚本目录监听不可用", "dir", dir, "error", err)
		return
	}
	a.scriptsWatcher = watcher
}

// setupWindowController 构建可见性控制器。
// 启动时窗口隐藏（StartHidden），镜像初值与之一致。
func (a *App) setupWindowController() {
	a.winHost = window.NewWailsHost(a.ctx, false, func() (window.Bounds, error) {
		if a.trayController == nil {
			return window.Bounds{}, window.ErrTrayBoundsUnavailable
		}
		r, err := a.trayController.Bounds()
		if err != nil {
			return window.Bounds{}, err
		}
		return window.Bounds{
			X:       r.X,
			Y:       r.Y,
			Width:   r.Width,
			Height:  r.Height,
			Logical: r.Logical,
		}, nil
	})
	a.winController = window.NewController(a.winHost)
}

// setupTray 启动系统托盘
func (a *App) setupTray() {
	ctrl, err := tray.Start(a.ctx, tray.Options{
		Icon:    tray.DefaultIcon(),
		Tooltip: a.config.Tray.Tooltip,
		OnToggle: func() {
			a.winController.Toggle()
		},
		OnLeftClick: func() {
			// 托盘库只投递左键抬起
			a.winController.HandleTrayClick(window.ButtonLeft, window.ButtonUp)
		},
		OnQuit: func() {
			// 菜单退出：立即终止进程，不走清理钩子
			os.Exit(0)
		},
	})
	if err != nil {
		a.logger.Warn("⚠️ 系统托盘启动失败", "error", err)
		return
	}

	a.trayController = ctrl
	a.logger.Info("✅ 系统托盘已启动")
}

// setupFocusEvents 订阅前端上报的窗口焦点事件。
// webview 在 blur/focus 时通过事件总线上报布尔值，失焦隐藏窗口。
func (a *App) setupFocusEvents() {
	runtime.EventsOn(a.ctx, EventWindowFocus, func(data ...interface{}) {
		focused := false
		if len(data) > 0 {
			if b, ok := data[0].(bool); ok {
				focused = b
			}
		}
		a.winController.HandleFocusChange(focused)
	})
}

// getConfig 返回当前配置（热重载后可能被替换）
func (a *App) getConfig() *config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.config
}
