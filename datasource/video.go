// SPDX-License-Identifier: MIT

package datasource

import (
	"context"

	"gonum.org/v1/gonum/mat"
)

// VideoFile is one eye video and the label given to all of its frames.
type VideoFile struct {
	Path  string
	Label float64
}

// VideoFrames turns video frames into gray samples of Width×Height pixels.
type VideoFrames struct {
	Files  []VideoFile
	Width  int
	Height int

	// Step keeps every Step-th frame (0 or 1: all frames).
	Step int
}

// LoadSamples implements Source.
func (v VideoFrames) LoadSamples(ctx context.Context) (*mat.Dense, error) {
	samples, _, err := v.Load(ctx)

	return samples, err
}

// LoadLabels implements LabelSource.
func (v VideoFrames) LoadLabels(ctx context.Context) ([]float64, error) {
	_, labels, err := v.Load(ctx)

	return labels, err
}

func (v VideoFrames) step() int {
	if v.Step < 1 {
		return 1
	}

	return v.Step
}
