// SPDX-License-Identifier: MIT

//go:build !gocv

package datasource

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// Load fails with ErrVideoUnsupported in builds without the gocv tag.
func (v VideoFrames) Load(context.Context) (*mat.Dense, []float64, error) {
	return nil, nil, sourceErrorf("VideoFrames.Load", ErrVideoUnsupported)
}
