package mocks

import (
	"image"
	"image/color"
	"sync"

	"github.com/user/framescope/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	NewCanvasFunc   func(img image.Image) ports.Canvas
	EncodeImageFunc func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error)
	ResizeImageFunc func(img image.Image, width, height int) image.Image

	mu       sync.Mutex
	canvases []*Canvas
}

func (m *Renderer) NewCanvas(img image.Image) ports.Canvas {
	if m.NewCanvasFunc != nil {
		return m.NewCanvasFunc(img)
	}
	c := &Canvas{img: img}
	m.mu.Lock()
	m.canvases = append(m.canvases, c)
	m.mu.Unlock()
	return c
}

func (m *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	if m.EncodeImageFunc != nil {
		return m.EncodeImageFunc(img, format, quality)
	}
	return []byte{}, nil
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// LastCanvas returns the most recently created canvas, or nil.
func (m *Renderer) LastCanvas() *Canvas {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.canvases) == 0 {
		return nil
	}
	return m.canvases[len(m.canvases)-1]
}

var _ ports.Renderer = (*Renderer)(nil)

// TextCall records a call to Canvas.DrawText.
type TextCall struct {
	Text  string
	X, Y  int
	Style ports.TextStyle
}

// LineCall records a call to Canvas.DrawLine.
type LineCall struct {
	X1, Y1, X2, Y2 int
	Color          color.Color
	Width          float64
}

// RectCall records a call to Canvas.DrawRect.
type RectCall struct {
	X, Y, W, H int
	Color      color.Color
}

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	img image.Image

	mu    sync.Mutex
	Texts []TextCall
	Lines []LineCall
	Rects []RectCall
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rects = append(m.Rects, RectCall{X: x, Y: y, W: w, H: h, Color: c})
}

func (m *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Texts = append(m.Texts, TextCall{Text: text, X: x, Y: y, Style: style})
}

func (m *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	return float64(len(text)) * style.FontSize * 0.5, style.FontSize
}

func (m *Canvas) DrawLine(x1, y1, x2, y2 int, c color.Color, width float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = append(m.Lines, LineCall{X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c, Width: width})
}

func (m *Canvas) ToImage() image.Image {
	if m.img != nil {
		return m.img
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1))
}

var _ ports.Canvas = (*Canvas)(nil)
