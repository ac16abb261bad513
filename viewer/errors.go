// SPDX-License-Identifier: MIT

package viewer

import (
	"errors"
	"fmt"
)

var (
	// ErrNilSurface is returned by New when no Surface is given.
	ErrNilSurface = errors.New("viewer: nil surface")

	// ErrNilModel is returned by New when no model is given.
	ErrNilModel = errors.New("viewer: nil model")

	// ErrNoControls is returned by New for an empty coefficient vector.
	ErrNoControls = errors.New("viewer: no coefficients to control")

	// ErrInvalidShape signals an image shape that does not hold the samples
	// (rows·cols ≠ F) or tiles of unequal size in a montage.
	ErrInvalidShape = errors.New("viewer: invalid image shape")

	// ErrNonFinite signals NaN or ±Inf pixel intensities.
	ErrNonFinite = errors.New("viewer: NaN or Inf intensity")

	// ErrSurfaceUnsupported is returned by NewCVSurface in builds without the
	// gocv tag.
	ErrSurfaceUnsupported = errors.New("viewer: OpenCV surface not compiled in (build with -tags gocv)")

	// ErrSurfaceClosed is returned by surface operations after Close.
	ErrSurfaceClosed = errors.New("viewer: surface closed")
)

// viewerErrorf wraps err with an operation tag.
func viewerErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
