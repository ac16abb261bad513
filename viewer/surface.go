// SPDX-License-Identifier: MIT

package viewer

import (
	"context"
	"image"
)

// Control is one integer slider owned by a Surface.
type Control interface {
	// Position returns the current position in [0, max].
	Position() int

	// SetPosition moves the control. Surfaces deliver the change callback
	// for user-driven moves; programmatic moves may or may not trigger it.
	SetPosition(pos int)
}

// Surface is the display and control toolkit driven by a Viewer.
type Surface interface {
	// NewControl creates a control with range [0, max] at initial and
	// registers onChange, which the surface calls with the new position on
	// every change, from the goroutine running Wait.
	NewControl(label string, initial, max int, onChange func(pos int)) (Control, error)

	// Show displays img, replacing the previous image.
	Show(img image.Image) error

	// Wait blocks until the next batch of events has been delivered.
	// It returns false once the user asked to quit or ctx is done.
	Wait(ctx context.Context) (bool, error)
}
