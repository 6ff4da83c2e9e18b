package window

// Op 控制器对窗口执行的操作。
type Op int

const (
	OpNone Op = iota
	OpHide
	// OpShow 显示窗口并请求焦点。
	OpShow
)

// Action 决策结果：要执行的操作，以及显示前是否先移动到 Position。
type Action struct {
	Op       Op
	Position *Point
}

// Host 抽象宿主框架持有的窗口与托盘句柄。
// 所有方法都允许失败；调用方把失败当作尽力而为的 UI 操作静默处理。
type Host interface {
	// IsVisible 查询窗口当前是否可见。查询失败按「不可见」处理。
	IsVisible() (bool, error)
	Show() error
	Hide() error
	Focus() error
	SetPosition(x, y int) error
	// TrayBounds 查询托盘图标的屏幕矩形，平台不支持时返回错误。
	TrayBounds() (Bounds, error)
}

// Decide 纯决策函数：根据事件、当前可见性和托盘矩形得出动作。
// 不触碰宿主框架，便于单测。
func Decide(ev Event, visible bool, bounds *Bounds) Action {
	switch e := ev.(type) {
	case ToggleEvent:
		if visible {
			return Action{Op: OpHide}
		}
		// 菜单路径不定位，窗口在原位置显示
		return Action{Op: OpShow}

	case TrayClickEvent:
		// 仅左键抬起触发，按下以及右键/中键不改变状态
		if e.Button != ButtonLeft || e.State != ButtonUp {
			return Action{Op: OpNone}
		}
		if visible {
			return Action{Op: OpHide}
		}
		action := Action{Op: OpShow}
		if bounds != nil {
			p := AnchorPosition(*bounds)
			action.Position = &p
		}
		return action

	case FocusEvent:
		// 失焦无条件隐藏，获得焦点不做任何事
		if !e.Focused {
			return Action{Op: OpHide}
		}
		return Action{Op: OpNone}
	}
	return Action{Op: OpNone}
}

// Controller 把决策结果施加到宿主窗口上。
// 不缓存可见性：每个事件都重新向宿主查询，宿主是唯一事实来源。
type Controller struct {
	host Host
}

// NewController 创建可见性控制器。
func NewController(host Host) *Controller {
	return &Controller{host: host}
}

// Toggle 处理菜单「显示/隐藏」。
func (c *Controller) Toggle() {
	c.apply(Decide(ToggleEvent{}, c.visible(), nil))
}

// HandleTrayClick 处理托盘图标点击。
func (c *Controller) HandleTrayClick(button MouseButton, state ButtonState) {
	var bounds *Bounds
	if b, err := c.host.TrayBounds(); err == nil {
		bounds = &b
	}
	// 矩形不可用时跳过定位，窗口仍在原位置显示
	c.apply(Decide(TrayClickEvent{Button: button, State: state}, c.visible(), bounds))
}

// HandleFocusChange 处理窗口焦点变化。
func (c *Controller) HandleFocusChange(focused bool) {
	c.apply(Decide(FocusEvent{Focused: focused}, c.visible(), nil))
}

// visible 查询宿主可见性，失败按隐藏处理（下一次动作是显示，不会把窗口弄丢）。
func (c *Controller) visible() bool {
	v, err := c.host.IsVisible()
	if err != nil {
		return false
	}
	return v
}

// apply 执行动作。宿主调用失败一律吞掉：这是 UI 便利路径，
// 不重试也不上抛，显示流程照常走完。
func (c *Controller) apply(a Action) {
	switch a.Op {
	case OpHide:
		_ = c.host.Hide()
	case OpShow:
		if a.Position != nil {
			_ = c.host.SetPosition(a.Position.X, a.Position.Y)
		}
		_ = c.host.Show()
		_ = c.host.Focus()
	}
}
