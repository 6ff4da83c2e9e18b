// main.go - Scripts Runner Wails 应用入口
package main

import (
	"context"
	"embed"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"scripts-runner/config"
	"scripts-runner/internal/logging"
	"scripts-runner/internal/utils"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

// 版本信息
var (
	Version   = "1.0.0"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// 命令行参数
var (
	configPath  = flag.String("config", "", "配置文件路径（为空时使用内置默认配置）")
	showVersion = flag.Bool("version", false, "显示版本信息")
)

// 嵌入前端资源
//
//go:embed all:frontend/dist
var assets embed.FS

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Printf("Scripts Runner\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Commit: %s\n", Commit)
		fmt.Printf("Built: %s\n", BuildTime)
		os.Exit(0)
	}

	app := NewApp()
	app.configPath = *configPath

	// 托盘常驻应用：窗口小而固定，启动时隐藏，由托盘召出
	err := wails.Run(&options.App{
		Title:  "Scripts Runner",
		Width:  280,
		Height: 420,

		DisableResize: true,
		AlwaysOnTop:   true,
		StartHidden:   true,

		AssetServer: &assetserver.Options{
			Assets: assets,
		},

		BackgroundColour: &options.RGBA{R: 30, G: 30, B: 36, A: 1},

		OnStartup:     app.startup,
		OnDomReady:    app.domReady,
		OnBeforeClose: app.beforeClose,
		OnShutdown:    app.shutdown,

		Bind: []interface{}{
			app,
		},

		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  true,
				HideTitleBar:               false,
				FullSizeContent:            true,
				UseToolbar:                 false,
			},
			WebviewIsTransparent: true,
			WindowIsTranslucent:  false,
		},

		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
	})

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ============================================================
// 日志相关函数
// ============================================================

// setupLogger 配置结构化日志
func setupLogger(cfg config.LoggingConfig) (*slog.Logger, *logging.BroadcastHandler) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var logFile *os.File
	if cfg.FileEnabled {
		path := cfg.FilePath
		if path == "" {
			path = filepath.Join(utils.GetLogDir(), "scripts-runner.log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			fmt.Printf("警告：无法创建日志目录: %v\n", err)
		} else {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
			if err != nil {
				fmt.Printf("警告：无法打开日志文件: %v\n", err)
			} else {
				logFile = f
				fmt.Printf("🔧 文件日志已启用: 路径=%s\n", path)
			}
		}
	}

	simpleHandler := &SimpleHandler{
		level: level,
		file:  logFile,
	}

	// 用 BroadcastHandler 包装（环形缓冲 + 前端推送）
	broadcastHandler := logging.NewBroadcastHandler(simpleHandler, 1000)

	return slog.New(broadcastHandler), broadcastHandler
}

// SimpleHandler 控制台 + 可选文件输出的日志处理器
type SimpleHandler struct {
	level slog.Level
	file  *os.File
}

func (h *SimpleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *SimpleHandler) Handle(_ context.Context, r slog.Record) error {
	message := r.Message

	var attrs []string
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	if len(attrs) > 0 {
		message = message + " " + strings.Join(attrs, " ")
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	pid := os.Getpid()
	gid := getGoroutineID()
	level := "INFO"
	switch r.Level {
	case slog.LevelDebug:
		level = "DEBUG"
	case slog.LevelWarn:
		level = "WARN"
	case slog.LevelError:
		level = "ERROR"
	}

	formatted := fmt.Sprintf("[%s] [PID:%d] [GID:%d] [%s] %s", timestamp, pid, gid, level, message)

	if h.file != nil {
		h.file.WriteString(formatted + "\n")
	}

	fmt.Println(formatted)

	return nil
}

func (h *SimpleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return h
}

func (h *SimpleHandler) WithGroup(name string) slog.Handler {
	return h
}

func (h *SimpleHandler) Close() error {
	if h.file != nil {
		h.file.Sync()
		return h.file.Close()
	}
	return nil
}

func getGoroutineID() int {
	buf := make([]byte, 64)
	buf = buf[:runtime.Stack(buf, false)]
	idField := strings.Fields(string(buf))[1]
	id, err := strconv.Atoi(idField)
	if err != nil {
		return 0
	}
	return id
}
