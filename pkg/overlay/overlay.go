// Package overlay draws playback state and calibration geometry onto frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/user/framescope/pkg/annotator"
	"github.com/user/framescope/pkg/ports"
)

// Text anchors, in frame pixels.
var (
	StateTextPos  = image.Pt(50, 50)
	RoadTextPos   = image.Pt(50, 100)
	ObjectTextPos = image.Pt(50, 150)
)

// backdropPadding surrounds each caption's measured extent.
const backdropPadding = 6

// Style defines overlay colors and sizes.
type Style struct {
	FontSize    float64
	FontPath    string
	LineWidth   float64
	StateColor  color.Color
	RoadColor   color.Color
	ObjectColor color.Color
	Backdrop    color.Color // fill behind captions
}

// DefaultStyle returns the standard overlay style.
func DefaultStyle() Style {
	return Style{
		FontSize:    24,
		LineWidth:   3,
		StateColor:  color.RGBA{G: 255, A: 255},
		RoadColor:   color.RGBA{R: 255, G: 100, B: 255, A: 255},
		ObjectColor: color.RGBA{G: 255, B: 255, A: 255},
		Backdrop:    color.RGBA{A: 160},
	}
}

// Composer renders overlays through a ports.Renderer.
type Composer struct {
	renderer ports.Renderer
	style    Style
}

// New creates a Composer. Zero fields in style take DefaultStyle values.
func New(renderer ports.Renderer, style Style) *Composer {
	def := DefaultStyle()
	if style.FontSize <= 0 {
		style.FontSize = def.FontSize
	}
	if style.LineWidth <= 0 {
		style.LineWidth = def.LineWidth
	}
	if style.StateColor == nil {
		style.StateColor = def.StateColor
	}
	if style.RoadColor == nil {
		style.RoadColor = def.RoadColor
	}
	if style.ObjectColor == nil {
		style.ObjectColor = def.ObjectColor
	}
	if style.Backdrop == nil {
		style.Backdrop = def.Backdrop
	}
	return &Composer{renderer: renderer, style: style}
}

// Scene is everything drawn over one frame.
type Scene struct {
	State      string
	Geometry   annotator.Overlay
	HasOverlay bool
}

// Compose draws the scene onto a copy of frame.
func (c *Composer) Compose(frame image.Image, scene Scene) image.Image {
	canvas := c.renderer.NewCanvas(frame)

	c.caption(canvas, scene.State, StateTextPos, c.style.StateColor)

	if scene.HasOverlay {
		ov := scene.Geometry
		c.line(canvas, ov.Road, c.style.RoadColor)
		c.caption(canvas, RoadLabel(ov), RoadTextPos, c.style.RoadColor)

		if ov.Object != nil {
			c.line(canvas, *ov.Object, c.style.ObjectColor)
			c.caption(canvas, ObjectLabel(ov), ObjectTextPos, c.style.ObjectColor)
		}
	}

	return canvas.ToImage()
}

// caption draws text vertically centered on pos over a filled backdrop.
func (c *Composer) caption(canvas ports.Canvas, text string, pos image.Point, col color.Color) {
	style := c.text(col)
	w, h := canvas.MeasureText(text, style)
	canvas.DrawRect(
		pos.X-backdropPadding,
		pos.Y-int(math.Ceil(h/2))-backdropPadding,
		int(math.Ceil(w))+2*backdropPadding,
		int(math.Ceil(h))+2*backdropPadding,
		c.style.Backdrop,
	)
	canvas.DrawText(text, pos.X, pos.Y, style)
}

func (c *Composer) text(col color.Color) ports.TextStyle {
	return ports.TextStyle{
		FontSize: c.style.FontSize,
		FontPath: c.style.FontPath,
		Color:    col,
		Align:    ports.AlignLeft,
	}
}

func (c *Composer) line(canvas ports.Canvas, s annotator.Segment, col color.Color) {
	canvas.DrawLine(s.From.X, s.From.Y, s.To.X, s.To.Y, col, c.style.LineWidth)
}

// RoadLabel returns the road distance caption.
func RoadLabel(ov annotator.Overlay) string {
	return fmt.Sprintf("Distance Lane Road: %g(m)", ov.KnownRoadMeters)
}

// ObjectLabel returns the object distance caption.
func ObjectLabel(ov annotator.Overlay) string {
	if ov.Calibration == nil {
		return "Distance Roadside Hazard: uncalibrated"
	}
	return fmt.Sprintf("Distance Roadside Hazard: %.2f(m)", ov.Calibration.ObjectMeters)
}
