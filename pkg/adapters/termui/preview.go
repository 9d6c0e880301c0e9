package termui

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// layout maps between terminal cells and frame pixels.
type layout struct {
	frameW, frameH int // source frame size in pixels
	cols, rows     int // preview size in cells; each cell holds two pixel rows
	offX, offY     int // preview origin in cells
}

// fitLayout sizes a preview for a frame inside a cols x rows cell area,
// keeping the frame aspect ratio.
func fitLayout(frameW, frameH, cols, rows, offX, offY int) layout {
	l := layout{frameW: frameW, frameH: frameH, offX: offX, offY: offY}
	if frameW <= 0 || frameH <= 0 || cols <= 0 || rows <= 0 {
		return l
	}

	sx := float64(cols) / float64(frameW)
	sy := float64(rows*2) / float64(frameH)
	scale := sx
	if sy < scale {
		scale = sy
	}

	l.cols = int(float64(frameW) * scale)
	l.rows = int(float64(frameH)*scale) / 2
	if l.cols < 1 {
		l.cols = 1
	}
	if l.rows < 1 {
		l.rows = 1
	}
	return l
}

// cellToFrame converts a cell position to frame pixel coordinates.
func (l layout) cellToFrame(cx, cy int) (int, int, bool) {
	if l.cols == 0 || l.rows == 0 {
		return 0, 0, false
	}
	px := cx - l.offX
	py := cy - l.offY
	if px < 0 || py < 0 || px >= l.cols || py >= l.rows {
		return 0, 0, false
	}
	// Centre of the cell, in frame pixels.
	x := (2*px + 1) * l.frameW / (2 * l.cols)
	y := (2*py + 1) * l.frameH / (2 * l.rows)
	return x, y, true
}

// renderHalfBlocks scales img to the layout and renders it with upper
// half-block characters: foreground is the top pixel, background the bottom.
func renderHalfBlocks(img image.Image, l layout) string {
	if l.cols == 0 || l.rows == 0 {
		return ""
	}

	dst := image.NewRGBA(image.Rect(0, 0, l.cols, l.rows*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	var b strings.Builder
	b.Grow(l.rows * l.cols * 40)
	for row := 0; row < l.rows; row++ {
		for col := 0; col < l.cols; col++ {
			top := dst.RGBAAt(col, row*2)
			bottom := dst.RGBAAt(col, row*2+1)
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bottom.R, bottom.G, bottom.B)
		}
		b.WriteString("\x1b[0m")
		if row < l.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
