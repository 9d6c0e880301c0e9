package summarizer

import (
	"image"
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder_WithVideo(t *testing.T) {
	summary := NewBuilder().
		WithSession("abc").
		WithVideo("clip.mp4", 120, 29.97).
		Build()

	if summary.SessionID != "abc" {
		t.Errorf("expected session 'abc', got '%s'", summary.SessionID)
	}
	if summary.Video.Path != "clip.mp4" || summary.Video.Frames != 120 || summary.Video.Framerate != 29.97 {
		t.Errorf("unexpected video info %+v", summary.Video)
	}
}

func TestBuilder_WithPointsCopies(t *testing.T) {
	points := []image.Point{image.Pt(10, 20), image.Pt(30, 20)}
	summary := NewBuilder().WithPoints(points, 2).Build()

	points[0] = image.Pt(99, 99)

	if summary.Calibration.Points[0] != image.Pt(10, 20) {
		t.Errorf("points should be copied, got %v", summary.Calibration.Points)
	}
	if summary.Calibration.KnownRoadMeters != 2 {
		t.Errorf("expected known meters 2, got %g", summary.Calibration.KnownRoadMeters)
	}
	if summary.Calibration.Calibrated {
		t.Error("expected uncalibrated summary without a measurement")
	}
}

func TestBuilder_WithMeasurement(t *testing.T) {
	summary := NewBuilder().WithMeasurement(4).Build()

	if !summary.Calibration.Calibrated {
		t.Error("expected Calibrated to be true")
	}
	if summary.Calibration.ObjectMeters != 4 {
		t.Errorf("expected 4 m, got %g", summary.Calibration.ObjectMeters)
	}
}

func TestFormatFunc(t *testing.T) {
	var f Formatter = FormatFunc(func(s *Summary) string { return s.SessionID })

	if got := f.Format(&Summary{SessionID: "x"}); got != "x" {
		t.Errorf("expected 'x', got %q", got)
	}
}
