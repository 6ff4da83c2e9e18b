package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost 记录控制器对宿主的调用序列。
type fakeHost struct {
	visible   bool
	visErr    error
	bounds    Bounds
	boundsErr error

	calls   []string
	lastPos Point
}

func (f *fakeHost) IsVisible() (bool, error) {
	if f.visErr != nil {
		return false, f.visErr
	}
	return f.visible, nil
}

func (f *fakeHost) Show() error {
	f.calls = append(f.calls, "show")
	f.visible = true
	return nil
}

func (f *fakeHost) Hide() error {
	f.calls = append(f.calls, "hide")
	f.visible = false
	return nil
}

func (f *fakeHost) Focus() error {
	f.calls = append(f.calls, "focus")
	return nil
}

func (f *fakeHost) SetPosition(x, y int) error {
	f.calls = append(f.calls, "setpos")
	f.lastPos = Point{X: x, Y: y}
	return nil
}

func (f *fakeHost) TrayBounds() (Bounds, error) {
	if f.boundsErr != nil {
		return Bounds{}, f.boundsErr
	}
	return f.bounds, nil
}

func TestToggleHidesVisibleWindow(t *testing.T) {
	host := &fakeHost{visible: true}
	NewController(host).Toggle()

	assert.Equal(t, []string{"hide"}, host.calls)
}

func TestToggleShowsHiddenWindowWithoutMoving(t *testing.T) {
	host := &fakeHost{visible: false}
	NewController(host).Toggle()

	assert.Equal(t, []string{"show", "focus"}, host.calls, "菜单路径不应移动窗口")
}

func TestToggleTreatsQueryFailureAsHidden(t *testing.T) {
	host := &fakeHost{visible: true, visErr: errors.New("query failed")}
	NewController(host).Toggle()

	assert.Equal(t, []string{"show", "focus"}, host.calls)
}

func TestTrayClickPositionsThenShowsHiddenWindow(t *testing.T) {
	host := &fakeHost{
		visible: false,
		bounds:  Bounds{X: 100, Y: 20, Width: 22, Height: 22},
	}
	NewController(host).HandleTrayClick(ButtonLeft, ButtonUp)

	require.Equal(t, []string{"setpos", "show", "focus"}, host.calls, "必须先定位再显示")
	assert.Equal(t, Point{X: -40, Y: 47}, host.lastPos)
}

func TestTrayClickHidesVisibleWindowWithoutRepositioning(t *testing.T) {
	host := &fakeHost{
		visible: true,
		bounds:  Bounds{X: 100, Y: 20, Width: 22, Height: 22},
	}
	NewController(host).HandleTrayClick(ButtonLeft, ButtonUp)

	assert.Equal(t, []string{"hide"}, host.calls)
}

func TestTrayClickIgnoresNonTriggeringInput(t *testing.T) {
	tests := []struct {
		name   string
		button MouseButton
		state  ButtonState
	}{
		{"左键按下", ButtonLeft, ButtonDown},
		{"右键抬起", ButtonRight, ButtonUp},
		{"右键按下", ButtonRight, ButtonDown},
		{"中键抬起", ButtonMiddle, ButtonUp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := &fakeHost{visible: true}
			NewController(host).HandleTrayClick(tt.button, tt.state)
			assert.Empty(t, host.calls, "不应触发任何窗口操作")
		})
	}
}

func TestTrayClickWithoutBoundsStillShows(t *testing.T) {
	host := &fakeHost{visible: false, boundsErr: errors.New("not supported")}
	NewController(host).HandleTrayClick(ButtonLeft, ButtonUp)

	assert.Equal(t, []string{"show", "focus"}, host.calls, "矩形缺失时跳过定位但仍显示")
}

func TestFocusLostAlwaysHides(t *testing.T) {
	host := &fakeHost{visible: true}
	NewController(host).HandleFocusChange(false)
	assert.Equal(t, []string{"hide"}, host.calls)

	// 已隐藏时失焦同样发出 hide，多余但无害
	host2 := &fakeHost{visible: false}
	NewController(host2).HandleFocusChange(false)
	assert.Equal(t, []string{"hide"}, host2.calls)
}

func TestFocusGainedDoesNothing(t *testing.T) {
	host := &fakeHost{visible: true}
	NewController(host).HandleFocusChange(true)
	assert.Empty(t, host.calls)
}

func TestDecideTable(t *testing.T) {
	bounds := &Bounds{X: 100, Y: 20, Width: 22, Height: 22}

	tests := []struct {
		name    string
		ev      Event
		visible bool
		bounds  *Bounds
		want    Action
	}{
		{"toggle 可见", ToggleEvent{}, true, nil, Action{Op: OpHide}},
		{"toggle 隐藏", ToggleEvent{}, false, nil, Action{Op: OpShow}},
		{"左键抬起 可见", TrayClickEvent{ButtonLeft, ButtonUp}, true, bounds, Action{Op: OpHide}},
		{"左键抬起 隐藏 有矩形", TrayClickEvent{ButtonLeft, ButtonUp}, false, bounds,
			Action{Op: OpShow, Position: &Point{X: -40, Y: 47}}},
		{"左键抬起 隐藏 无矩形", TrayClickEvent{ButtonLeft, ButtonUp}, false, nil, Action{Op: OpShow}},
		{"左键按下", TrayClickEvent{ButtonLeft, ButtonDown}, false, bounds, Action{Op: OpNone}},
		{"失焦", FocusEvent{Focused: false}, true, nil, Action{Op: OpHide}},
		{"得焦", FocusEvent{Focused: true}, true, nil, Action{Op: OpNone}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.ev, tt.visible, tt.bounds))
		})
	}
}
