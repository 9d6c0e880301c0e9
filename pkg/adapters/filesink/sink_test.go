package filesink

import (
	"errors"
	"image"
	"path/filepath"
	"testing"

	"github.com/user/framescope/pkg/mocks"
	"github.com/user/framescope/pkg/ports"
)

func TestSink_SaveFrameDefaultName(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			if format != ports.FormatJPEG {
				t.Errorf("expected JPEG, got %d", format)
			}
			return []byte("jpeg"), nil
		},
	}
	sink := New(Options{}, fs, renderer)

	path, err := sink.SaveFrame(42, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}
	if path != "Frame_42.jpg" {
		t.Errorf("expected Frame_42.jpg, got %s", path)
	}

	saved, ok := fs.GetFile("Frame_42.jpg")
	if !ok {
		t.Fatal("expected file to be saved")
	}
	if string(saved) != "jpeg" {
		t.Errorf("expected encoded data, got %q", saved)
	}
}

func TestSink_SaveFrameInDir(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(Options{Dir: "shots", Pattern: "shot-%04d.png", Format: ports.FormatPNG}, fs, &mocks.Renderer{})

	path, err := sink.SaveFrame(7, image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}

	expected := filepath.Join("shots", "shot-0007.png")
	if path != expected {
		t.Errorf("expected %s, got %s", expected, path)
	}
	if _, ok := fs.GetFile(expected); !ok {
		t.Errorf("expected file at %s", expected)
	}
}

func TestSink_QualityDefault(t *testing.T) {
	var got int
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			got = quality
			return nil, nil
		},
	}
	sink := New(Options{Quality: 0}, mocks.NewFileSystem(), renderer)

	if _, err := sink.SaveFrame(0, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("SaveFrame failed: %v", err)
	}
	if got != 95 {
		t.Errorf("expected default quality 95, got %d", got)
	}
}

func TestSink_EncodeError(t *testing.T) {
	fs := mocks.NewFileSystem()
	renderer := &mocks.Renderer{
		EncodeImageFunc: func(img image.Image, format ports.ImageFormat, quality int) ([]byte, error) {
			return nil, errors.New("boom")
		},
	}
	sink := New(Options{}, fs, renderer)

	if _, err := sink.SaveFrame(1, image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil {
		t.Fatal("expected encode error")
	}
	if len(fs.GetAllFiles()) != 0 {
		t.Error("expected no file written on encode failure")
	}
}

func TestSink_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	writeErr := errors.New("disk full")
	fs.WriteFileFunc = func(path string, data []byte) error { return writeErr }
	sink := New(Options{}, fs, &mocks.Renderer{})

	_, err := sink.SaveFrame(3, image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if !errors.Is(err, writeErr) {
		t.Errorf("expected wrapped write error, got %v", err)
	}
}

func TestSink_NilImage(t *testing.T) {
	sink := New(Options{}, mocks.NewFileSystem(), &mocks.Renderer{})

	if _, err := sink.SaveFrame(0, nil); err == nil {
		t.Error("expected error for nil image")
	}
}
