package window

// MouseButton 托盘图标点击的鼠标按键。
type MouseButton int

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
)

// ButtonState 按键状态。只有抬起（ButtonUp）会触发动作，按下被忽略。
type ButtonState int

const (
	ButtonUp ButtonState = iota
	ButtonDown
)

// Event 可见性控制器的输入事件。
type Event interface{ isEvent() }

// ToggleEvent 菜单「显示/隐藏」被选中。
type ToggleEvent struct{}

// TrayClickEvent 托盘图标被点击。
type TrayClickEvent struct {
	Button MouseButton
	State  ButtonState
}

// FocusEvent 窗口焦点变化。
type FocusEvent struct {
	Focused bool
}

func (ToggleEvent) isEvent()    {}
func (TrayClickEvent) isEvent() {}
func (FocusEvent) isEvent()     {}
