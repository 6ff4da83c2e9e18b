// Package window 实现主窗口的显示/隐藏/定位控制。
// 决策逻辑与宿主框架调用分离，便于在没有真实窗口系统的环境下测试。
package window

// 托盘锚定偏移常量。
// 窗口固定宽度约 280 逻辑像素，水平偏移取一半，让窗口在图标正下方居中；
// 垂直方向留一条小缝隙。坐标不做 DPI 缩放（逻辑值按物理值处理），
// 高分屏下可能有偏差，属于已知简化。
const (
	anchorHorizontalOffset = 140
	anchorVerticalGap      = 5
)

// Point 屏幕坐标点（整数像素空间）。
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds 托盘图标的屏幕矩形。
// 宿主可能以物理像素或逻辑像素上报坐标；Logical 标记来源坐标空间，
// 归一化时两种空间都截断为同一整数像素空间。
type Bounds struct {
	X       float64
	Y       float64
	Width   float64
	Height  float64
	Logical bool
}

// Normalize 把矩形归一到统一的整数像素空间。
func (b Bounds) Normalize() (x, y, w, h int) {
	return int(b.X), int(b.Y), int(b.Width), int(b.Height)
}

// AnchorPosition 计算窗口从托盘召出时的左上角坐标：
// 水平方向左移半个窗口宽度使其居中于图标下方，垂直方向贴在图标下缘之下。
// 纯函数，不访问任何窗口系统状态。
func AnchorPosition(b Bounds) Point {
	x, y, _, h := b.Normalize()
	return Point{
		X: x - anchorHorizontalOffset,
		Y: y + h + anchorVerticalGap,
	}
}
