// Package ports defines interfaces for external dependencies.
package ports

import (
	"image"
)

// VideoSource abstracts a decodable video file addressed by frame index.
type VideoSource interface {
	// TotalFrames returns the number of frames in the video.
	TotalFrames() int

	// Framerate returns the nominal frame rate in frames per second.
	// It may be zero when the container does not declare one.
	Framerate() float64

	// Seek moves the read cursor to the given frame index.
	// Bounds are not enforced; an invalid index surfaces on the next read.
	Seek(index int)

	// ReadCurrent decodes the frame at the cursor and advances the cursor by one.
	ReadCurrent() (image.Image, error)

	// Close releases decoder resources.
	Close() error
}
