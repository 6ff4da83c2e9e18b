//go:build !stub

package tray

import (
	"context"
	"sync"

	"github.com/energye/systray"
)

type systrayController struct {
	opts      Options
	ctx       context.Context
	once      sync.Once
	running   bool
	runningMu sync.Mutex
}

func (c *systrayController) Stop() {
	c.once.Do(func() {
		c.runningMu.Lock()
		if c.running {
			systray.Quit()
			c.running = false
		}
		c.runningMu.Unlock()
	})
}

func (c *systrayController) Bounds() (Rect, error) {
	// systray 系列库都不暴露图标几何信息
	return Rect{}, ErrBoundsUnavailable
}

func start(ctx context.Context, opts Options) (Controller, error) {
	ctrl := &systrayController{
		opts: opts,
		ctx:  ctx,
	}

	// systray.Run 会阻塞，在单独的 goroutine 中运行
	go func() {
		ctrl.runningMu.Lock()
		ctrl.running = true
		ctrl.runningMu.Unlock()

		systray.Run(ctrl.onReady, ctrl.onExit)
	}()

	return ctrl, nil
}

func (c *systrayController) onReady() {
	if len(c.opts.Icon) > 0 {
		systray.SetIcon(c.opts.Icon)
	}

	if c.opts.Tooltip != "" {
		systray.SetTooltip(c.opts.Tooltip)
	} else {
		systray.SetTooltip("Scripts Runner")
	}

	// 左键抬起交给可见性控制器，右键弹出菜单
	systray.SetOnClick(func(menu systray.IMenu) {
		if c.opts.OnLeftClick != nil {
			c.opts.OnLeftClick()
		}
	})
	systray.SetOnRClick(func(menu systray.IMenu) {
		if menu != nil {
			_ = menu.ShowMenu()
		}
	})

	mToggle := systray.AddMenuItem("显示/隐藏", "显示或隐藏主窗口")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("退出", "退出应用")

	mToggle.Click(func() {
		if c.opts.OnToggle != nil {
			c.opts.OnToggle()
		}
	})
	mQuit.Click(func() {
		if c.opts.OnQuit != nil {
			c.opts.OnQuit()
		}
	})
}

func (c *systrayController) onExit() {
	// 清理
}
