package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchorPosition(t *testing.T) {
	tests := []struct {
		name   string
		bounds Bounds
		want   Point
	}{
		{
			name:   "标准托盘矩形",
			bounds: Bounds{X: 100, Y: 20, Width: 22, Height: 22},
			want:   Point{X: -40, Y: 47},
		},
		{
			name:   "屏幕右上角",
			bounds: Bounds{X: 1890, Y: 0, Width: 24, Height: 24},
			want:   Point{X: 1750, Y: 29},
		},
		{
			name:   "零尺寸矩形",
			bounds: Bounds{X: 0, Y: 0, Width: 0, Height: 0},
			want:   Point{X: -140, Y: 5},
		},
		{
			name:   "逻辑坐标截断为整数",
			bounds: Bounds{X: 100.9, Y: 20.7, Width: 22.5, Height: 22.9, Logical: true},
			want:   Point{X: -40, Y: 47},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnchorPosition(tt.bounds))
		})
	}
}

func TestAnchorPositionIsPure(t *testing.T) {
	b := Bounds{X: 512, Y: 8, Width: 22, Height: 22}
	first := AnchorPosition(b)
	second := AnchorPosition(b)
	assert.Equal(t, first, second, "同一输入应得到同一结果")
}

func TestNormalizeTruncates(t *testing.T) {
	b := Bounds{X: 10.9, Y: -3.7, Width: 22.2, Height: 22.8, Logical: true}
	x, y, w, h := b.Normalize()
	assert.Equal(t, 10, x)
	assert.Equal(t, -3, y)
	assert.Equal(t, 22, w)
	assert.Equal(t, 22, h)
}
