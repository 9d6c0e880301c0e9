package orchestrator

import (
	"errors"
	"image"

	"github.com/user/framescope/pkg/ports"
)

// multiDisplay fans each frame out to several displays.
type multiDisplay []ports.Display

func (m multiDisplay) Show(img image.Image) error {
	var errs []error
	for _, d := range m {
		if err := d.Show(img); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m multiDisplay) Close() error {
	var errs []error
	for _, d := range m {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Ensure multiDisplay implements ports.Display
var _ ports.Display = multiDisplay(nil)
