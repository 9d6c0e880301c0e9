package summarizer

import (
	"errors"
	"image"
	"strings"
	"testing"
	"time"

	"github.com/user/framescope/pkg/mocks"
)

func identity(s string) string { return s }

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	formatter := NewMarkdownFormatter(WithTranslator(identity))

	summary := &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		SessionID:   "5f1c",
		Video:       VideoInfo{Path: "road.mp4", Frames: 300, Framerate: 30},
		Playback: PlaybackInfo{
			Rate:          5,
			FinalPosition: 42,
			FramesShown:   120,
			FramesSkipped: 1,
			Seeks:         3,
			Screenshots:   2,
		},
		Calibration: CalibrationInfo{
			Points:          []image.Point{image.Pt(10, 20), image.Pt(30, 20), image.Pt(10, 40)},
			KnownRoadMeters: 2,
			Calibrated:      true,
			ObjectMeters:    2,
		},
	}

	result := formatter.Format(summary)

	checks := []string{
		"# Review Summary",
		"2024-01-15T10:30:00Z",
		"`5f1c`",
		"| File | road.mp4 |",
		"| Frame Count | 300 |",
		"| Framerate | 30.00 fps |",
		"| Rate | 5.00 fps |",
		"| Final Position | 42 |",
		"| Screenshots | 2 |",
		"(10, 20) (30, 20) (10, 40)",
		"| Known Road Distance | 2 m |",
		"| Roadside Hazard Distance | 2.00 m |",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
}

func TestMarkdownFormatter_Uncalibrated(t *testing.T) {
	formatter := NewMarkdownFormatter(WithTranslator(identity))

	result := formatter.Format(&Summary{GeneratedAt: time.Now()})

	if !strings.Contains(result, "| Reference Points | None |") {
		t.Error("expected 'None' for missing points")
	}
	if !strings.Contains(result, "| Roadside Hazard Distance | N/A |") {
		t.Error("expected 'N/A' for missing measurement")
	}
	if !strings.Contains(result, "| Framerate | N/A |") {
		t.Error("expected 'N/A' for unknown framerate")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Review Summary": "確認サマリー",
			"Frame Count":    "フレーム数",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	formatter := NewMarkdownFormatter(WithTranslator(translator))
	result := formatter.Format(&Summary{GeneratedAt: time.Now()})

	if !strings.Contains(result, "確認サマリー") {
		t.Error("expected translated 'Review Summary'")
	}
	if !strings.Contains(result, "フレーム数") {
		t.Error("expected translated 'Frame Count'")
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	formatter := NewMarkdownFormatter(WithTranslator(identity), WithVersion("v1.2.0"))

	result := formatter.Format(&Summary{GeneratedAt: time.Now()})

	if !strings.Contains(result, "framescope v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "report " + s.SessionID }), fs)

	if err := w.Write("out/session.md", &Summary{SessionID: "abc"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile("out/session.md")
	if !ok {
		t.Fatal("summary not written")
	}
	if string(data) != "report abc" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	diskErr := errors.New("disk full")
	fs.WriteFileFunc = func(path string, data []byte) error { return diskErr }

	err := NewWriter(NewMarkdownFormatter(), fs).Write("session.md", NewSummary())
	if !errors.Is(err, diskErr) {
		t.Errorf("expected wrapped disk error, got %v", err)
	}
}
