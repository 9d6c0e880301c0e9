// Package filesink provides a file-based frame sink for screenshots.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framescope/pkg/ports"
)

// DefaultPattern is the screenshot file name pattern. %d is the frame index.
const DefaultPattern = "Frame_%d.jpg"

// Options configures a Sink.
type Options struct {
	Dir     string            // Output directory; empty means the working directory
	Pattern string            // fmt pattern taking the frame index
	Format  ports.ImageFormat // Encoding format
	Quality int               // JPEG quality (1-100)
}

// Sink saves frames to image files.
type Sink struct {
	opts     Options
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new file Sink.
func New(opts Options, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	if opts.Pattern == "" {
		opts.Pattern = DefaultPattern
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 95
	}
	return &Sink{
		opts:     opts,
		fs:       fs,
		renderer: renderer,
	}
}

// PathFor returns the file path used for the frame at index.
func (s *Sink) PathFor(index int) string {
	name := fmt.Sprintf(s.opts.Pattern, index)
	if s.opts.Dir == "" {
		return name
	}
	return filepath.Join(s.opts.Dir, name)
}

// SaveFrame encodes img and writes it to the path for index.
func (s *Sink) SaveFrame(index int, img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("save frame %d: no image", index)
	}
	data, err := s.renderer.EncodeImage(img, s.opts.Format, s.opts.Quality)
	if err != nil {
		return "", fmt.Errorf("encode frame %d: %w", index, err)
	}
	path := s.PathFor(index)
	if err := s.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// Ensure Sink implements ports.FrameSink
var _ ports.FrameSink = (*Sink)(nil)
