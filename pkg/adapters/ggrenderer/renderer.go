// Package ggrenderer provides a renderer implementation using the gg library.
package ggrenderer

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/user/framescope/pkg/ports"
)

// Renderer implements ports.Renderer using the gg library.
type Renderer struct {
	mu    sync.Mutex
	font  *truetype.Font
	faces map[faceKey]font.Face
}

type faceKey struct {
	path string
	size float64
}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{faces: make(map[faceKey]font.Face)}
}

// NewCanvas creates a drawing canvas holding a copy of img.
func (r *Renderer) NewCanvas(img image.Image) ports.Canvas {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return &Canvas{dc: gg.NewContextForRGBA(dst), r: r}
}

// EncodeImage encodes an image to the specified format.
func (r *Renderer) EncodeImage(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case ports.FormatJPEG:
		opts := &jpeg.Options{Quality: quality}
		if err := jpeg.Encode(&buf, img, opts); err != nil {
			return nil, fmt.Errorf("encode JPEG: %w", err)
		}
	case ports.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encode PNG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %d", format)
	}

	return buf.Bytes(), nil
}

// ResizeImage resizes an image to the specified dimensions.
func (r *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

// face returns a font face for the style, loading the embedded Go font when
// no font file is given or the file cannot be loaded.
func (r *Renderer) face(style ports.TextStyle) font.Face {
	size := style.FontSize
	if size <= 0 {
		size = 24
	}
	key := faceKey{path: style.FontPath, size: size}

	r.mu.Lock()
	defer r.mu.Unlock()

	if f, ok := r.faces[key]; ok {
		return f
	}

	var f font.Face
	if style.FontPath != "" {
		if loaded, err := gg.LoadFontFace(style.FontPath, size); err == nil {
			f = loaded
		}
	}
	if f == nil {
		if r.font == nil {
			parsed, err := truetype.Parse(goregular.TTF)
			if err != nil {
				return nil
			}
			r.font = parsed
		}
		f = truetype.NewFace(r.font, &truetype.Options{Size: size})
	}
	r.faces[key] = f
	return f
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

// Canvas implements ports.Canvas using gg.Context.
type Canvas struct {
	dc *gg.Context
	r  *Renderer
}

// DrawRect draws a filled rectangle.
func (c *Canvas) DrawRect(x, y, w, h int, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(float64(x), float64(y), float64(w), float64(h))
	c.dc.Fill()
}

// DrawText draws text at the specified position.
func (c *Canvas) DrawText(text string, x, y int, style ports.TextStyle) {
	if f := c.r.face(style); f != nil {
		c.dc.SetFontFace(f)
	}
	c.dc.SetColor(style.Color)

	// Calculate alignment offset
	ax := 0.0
	switch style.Align {
	case ports.AlignCenter:
		ax = 0.5
	case ports.AlignRight:
		ax = 1.0
	}

	c.dc.DrawStringAnchored(text, float64(x), float64(y), ax, 0.5)
}

// MeasureText returns the width and height of the text.
func (c *Canvas) MeasureText(text string, style ports.TextStyle) (float64, float64) {
	if f := c.r.face(style); f != nil {
		c.dc.SetFontFace(f)
	}
	return c.dc.MeasureString(text)
}

// DrawLine draws a line between two points.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, col color.Color, width float64) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(float64(x1), float64(y1), float64(x2), float64(y2))
	c.dc.Stroke()
}

// ToImage returns the canvas as an image.Image.
func (c *Canvas) ToImage() image.Image {
	return c.dc.Image()
}

// Ensure Canvas implements ports.Canvas
var _ ports.Canvas = (*Canvas)(nil)
