package scripts

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// Watcher 监听脚本目录变化并去抖通知，供前端刷新脚本列表。
type Watcher struct {
	dir      string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	onChange func()

	mu            sync.Mutex
	debounceTimer *time.Timer
	closed        bool
}

// NewWatcher 创建脚本目录监听器。目录不存在时会先创建再监听。
func NewWatcher(dir string, logger *slog.Logger, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("创建文件监听器失败: %w", err)
	}

	if err := fsWatcher.Add(dir); err != nil {
		if mkErr := os.MkdirAll(dir, 0755); mkErr != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("监听脚本目录失败: %w", err)
		}
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("监听脚本目录失败: %w", err)
		}
	}

	w := &Watcher{
		dir:      dir,
		watcher:  fsWatcher,
		logger:   logger,
		onChange: onChange,
	}

	go w.watchLoop()
	w.logger.Info("✅ 脚本目录监听已启动", "dir", dir)

	return w, nil
}

func (w *Watcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleNotify()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("⚠️ 脚本目录监听错误", "error", err)
		}
	}
}

// scheduleNotify 去抖：批量文件操作只触发一次通知。
func (w *Watcher) scheduleNotify() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(watchDebounce, func() {
		w.logger.Debug("🔄 脚本目录发生变化", "dir", w.dir)
		if w.onChange != nil {
			w.onChange()
		}
	})
}

// Close 停止监听。
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.mu.Unlock()

	return w.watcher.Close()
}
