package window

import (
	"context"
	"errors"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// ErrTrayBoundsUnavailable 当前平台或托盘库不提供图标矩形。
var ErrTrayBoundsUnavailable = errors.New("托盘图标矩形不可用")

// BoundsFunc 托盘矩形查询函数，由托盘集成注入，可为 nil。
type BoundsFunc func() (Bounds, error)

// WailsHost 通过 Wails Runtime 操作主窗口。
// Wails v2 没有窗口可见性查询接口，适配层维护一份与框架调用
// 同步的镜像；控制器本身仍然每次向 Host 查询。
type WailsHost struct {
	ctx context.Context

	mu      sync.Mutex
	visible bool

	trayBounds BoundsFunc
}

// NewWailsHost 创建 Wails 窗口适配器。startVisible 对应 StartHidden 的反值。
func NewWailsHost(ctx context.Context, startVisible bool, trayBounds BoundsFunc) *WailsHost {
	return &WailsHost{ctx: ctx, visible: startVisible, trayBounds: trayBounds}
}

// IsVisible 返回镜像的可见状态。
func (h *WailsHost) IsVisible() (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.visible, nil
}

// Show 显示窗口（同时恢复最小化状态）。
func (h *WailsHost) Show() error {
	runtime.WindowShow(h.ctx)
	runtime.WindowUnminimise(h.ctx)
	h.setVisible(true)
	return nil
}

// Hide 隐藏窗口。
func (h *WailsHost) Hide() error {
	runtime.WindowHide(h.ctx)
	h.setVisible(false)
	return nil
}

// Focus 请求焦点。Wails v2 没有独立的焦点接口，WindowShow 会把窗口带到前台。
func (h *WailsHost) Focus() error {
	runtime.WindowShow(h.ctx)
	return nil
}

// SetPosition 移动窗口左上角到屏幕坐标 (x, y)。
func (h *WailsHost) SetPosition(x, y int) error {
	runtime.WindowSetPosition(h.ctx, x, y)
	return nil
}

// TrayBounds 委托给注入的查询函数。
func (h *WailsHost) TrayBounds() (Bounds, error) {
	if h.trayBounds == nil {
		return Bounds{}, ErrTrayBoundsUnavailable
	}
	return h.trayBounds()
}

func (h *WailsHost) setVisible(v bool) {
	h.mu.Lock()
	h.visible = v
	h.mu.Unlock()
}
