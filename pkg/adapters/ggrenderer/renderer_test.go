package ggrenderer

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/user/framescope/pkg/ports"
)

func solidFrame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestRenderer_NewCanvasCopiesFrame(t *testing.T) {
	r := New()
	src := solidFrame(40, 20, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	canvas := r.NewCanvas(src)
	canvas.DrawRect(0, 0, 10, 10, color.RGBA{R: 255, A: 255})

	out := canvas.ToImage()
	if out.Bounds().Dx() != 40 || out.Bounds().Dy() != 20 {
		t.Fatalf("expected 40x20, got %dx%d", out.Bounds().Dx(), out.Bounds().Dy())
	}

	r0, _, _, _ := out.At(5, 5).RGBA()
	if r0>>8 != 255 {
		t.Errorf("expected drawn rect on canvas, got red=%d", r0>>8)
	}

	sr, _, _, _ := src.At(5, 5).RGBA()
	if sr>>8 != 10 {
		t.Errorf("source frame was modified: red=%d", sr>>8)
	}
}

func TestRenderer_NewCanvasOffsetBounds(t *testing.T) {
	r := New()
	src := solidFrame(30, 30, color.RGBA{G: 200, A: 255}).SubImage(image.Rect(10, 10, 30, 30))

	out := r.NewCanvas(src).ToImage()
	if out.Bounds().Min != (image.Point{}) {
		t.Errorf("expected canvas at origin, got %v", out.Bounds().Min)
	}
	if out.Bounds().Dx() != 20 {
		t.Errorf("expected width 20, got %d", out.Bounds().Dx())
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	r := New()
	canvas := r.NewCanvas(solidFrame(100, 100, color.RGBA{A: 255}))

	canvas.DrawLine(10, 50, 90, 50, color.RGBA{R: 255, G: 100, B: 255, A: 255}, 3)

	_, g, b, _ := canvas.ToImage().At(50, 50).RGBA()
	if b>>8 < 200 || g>>8 < 50 {
		t.Errorf("expected magenta pixel on line, got g=%d b=%d", g>>8, b>>8)
	}
}

func TestCanvas_DrawTextAndMeasure(t *testing.T) {
	r := New()
	canvas := r.NewCanvas(solidFrame(300, 100, color.RGBA{A: 255}))
	style := ports.TextStyle{FontSize: 24, Color: color.RGBA{G: 255, A: 255}}

	w, h := canvas.MeasureText("PLAYING", style)
	if w <= 0 || h <= 0 {
		t.Fatalf("expected positive text size, got %.1fx%.1f", w, h)
	}

	canvas.DrawText("PLAYING", 10, 50, style)

	img := canvas.ToImage()
	found := false
	for x := 10; x < 10+int(w) && !found; x++ {
		for y := 30; y < 70; y++ {
			_, g, _, _ := img.At(x, y).RGBA()
			if g>>8 > 128 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("expected green text pixels near the anchor")
	}
}

func TestCanvas_MissingFontFallsBack(t *testing.T) {
	r := New()
	canvas := r.NewCanvas(solidFrame(100, 40, color.RGBA{A: 255}))

	w, _ := canvas.MeasureText("x", ports.TextStyle{FontSize: 20, FontPath: "/nonexistent/font.ttf"})
	if w <= 0 {
		t.Errorf("expected fallback font to measure text, got width %.1f", w)
	}
}

func TestRenderer_EncodeJPEG(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(solidFrame(50, 50, color.RGBA{R: 255, A: 255}), ports.FormatJPEG, 80)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty data")
	}

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("jpeg.Decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 50 || decoded.Bounds().Dy() != 50 {
		t.Errorf("expected 50x50, got %dx%d", decoded.Bounds().Dx(), decoded.Bounds().Dy())
	}
}

func TestRenderer_EncodePNG(t *testing.T) {
	r := New()

	data, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 30, 30)), ports.FormatPNG, 0)
	if err != nil {
		t.Fatalf("EncodeImage failed: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 30 {
		t.Errorf("expected width 30, got %d", decoded.Bounds().Dx())
	}
}

func TestRenderer_EncodeUnsupported(t *testing.T) {
	r := New()

	if _, err := r.EncodeImage(image.NewRGBA(image.Rect(0, 0, 1, 1)), ports.ImageFormat(99), 0); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRenderer_ResizeImage(t *testing.T) {
	r := New()

	resized := r.ResizeImage(solidFrame(100, 50, color.RGBA{B: 255, A: 255}), 40, 20)
	if resized.Bounds().Dx() != 40 || resized.Bounds().Dy() != 20 {
		t.Errorf("expected 40x20, got %dx%d", resized.Bounds().Dx(), resized.Bounds().Dy())
	}
}
