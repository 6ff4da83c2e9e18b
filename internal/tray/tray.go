// Package tray 提供系统托盘集成（平台相关实现）。
package tray

import (
	"context"
	"errors"
)

// ErrBoundsUnavailable 托盘库不提供图标几何信息时由 Bounds 返回。
var ErrBoundsUnavailable = errors.New("托盘图标矩形不可用")

// Rect 托盘图标的屏幕矩形。Logical 标记坐标空间（逻辑/物理像素）。
type Rect struct {
	X, Y          float64
	Width, Height float64
	Logical       bool
}

// Controller 表示托盘控制器。
type Controller interface {
	// Stop 移除托盘图标并停止事件循环。
	Stop()

	// Bounds 查询托盘图标的屏幕矩形。
	// 当前使用的托盘库不暴露图标几何信息，所有平台都返回
	// ErrBoundsUnavailable；调用方按「矩形缺失」降级（跳过定位直接显示）。
	Bounds() (Rect, error)
}

// Options 托盘启动参数。
type Options struct {
	// Icon 托盘图标内容（PNG 字节，Windows 上库内部转换）。
	Icon []byte

	// Tooltip 托盘悬浮提示文本。
	Tooltip string

	// OnToggle 菜单「显示/隐藏」被选中时触发。
	OnToggle func()

	// OnLeftClick 托盘图标左键抬起时触发（库不投递按下事件）。
	OnLeftClick func()

	// OnQuit 用户选择「退出」时触发。
	OnQuit func()
}

// Start 启动系统托盘（平台相关实现）。
func Start(ctx context.Context, opts Options) (Controller, error) {
	return start(ctx, opts)
}
