// SPDX-License-Identifier: MIT

//go:build !gocv

package viewer

import (
	"context"
	"image"
	"time"
)

// CVSurface is unavailable without the gocv build tag.
type CVSurface struct{}

// NewCVSurface always fails with ErrSurfaceUnsupported in this build.
func NewCVSurface(string, time.Duration) (*CVSurface, error) {
	return nil, ErrSurfaceUnsupported
}

// NewControl implements Surface.
func (*CVSurface) NewControl(string, int, int, func(int)) (Control, error) {
	return nil, ErrSurfaceUnsupported
}

// Show implements Surface.
func (*CVSurface) Show(image.Image) error { return ErrSurfaceUnsupported }

// Wait implements Surface.
func (*CVSurface) Wait(context.Context) (bool, error) { return false, ErrSurfaceUnsupported }

// Close implements io.Closer.
func (*CVSurface) Close() error { return nil }
