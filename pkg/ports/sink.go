package ports

import (
	"image"
)

// FrameSink persists single frames, such as screenshots.
type FrameSink interface {
	// SaveFrame writes the frame identified by index and returns the path written.
	SaveFrame(index int, img image.Image) (string, error)
}
