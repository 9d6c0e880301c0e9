package ports

import (
	"image"
)

// Display shows composed frames to the user.
type Display interface {
	// Show replaces the displayed image. Implementations must not retain
	// img beyond the call unless they copy it.
	Show(img image.Image) error

	// Close tears down the display surface.
	Close() error
}
