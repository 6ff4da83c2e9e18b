package tray

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// DefaultIcon 生成 22x22 的托盘图标：圆环内一个向右的播放三角，PNG 编码。
// 程序生成避免在仓库里携带二进制资源。
func DefaultIcon() []byte {
	const size = 22
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	fg := color.RGBA{R: 235, G: 235, B: 240, A: 255}
	center := float64(size) / 2
	outer := center - 1
	inner := outer - 2

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x) + 0.5 - center
			dy := float64(y) + 0.5 - center
			d2 := dx*dx + dy*dy

			// 圆环
			if d2 <= outer*outer && d2 >= inner*inner {
				img.SetRGBA(x, y, fg)
				continue
			}

			// 播放三角：左边竖直，顶点朝右
			if inTriangle(x, y, size) {
				img.SetRGBA(x, y, fg)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}

func inTriangle(x, y, size int) bool {
	left := size*2/5 - 1
	right := size * 3 / 4
	if x < left || x > right {
		return false
	}
	// 随 x 前进收窄的竖直范围
	span := (right - x) * (size / 2) / (right - left)
	mid := size / 2
	return y >= mid-span/2-1 && y <= mid+span/2+1
}
