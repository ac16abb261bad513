// SPDX-License-Identifier: MIT

package datasource

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySource is returned when a source yields no samples.
	ErrEmptySource = errors.New("datasource: no samples")

	// ErrInconsistentSample is returned when samples differ in length
	// (rows with a different field count, images of a different size).
	ErrInconsistentSample = errors.New("datasource: inconsistent sample length")

	// ErrVideoUnsupported is returned by VideoFrames in builds without gocv.
	ErrVideoUnsupported = errors.New("datasource: video decoding not compiled in (build with -tags gocv)")

	// ErrNoLabels is returned by LoadLabels on an unlabeled source.
	ErrNoLabels = errors.New("datasource: source has no labels")
)

func sourceErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
