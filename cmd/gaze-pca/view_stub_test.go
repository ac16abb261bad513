// SPDX-License-Identifier: MIT

//go:build !gocv

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AndersHqst/estimating-gaze-direction/viewer"
)

func TestView_WithoutOpenCV(t *testing.T) {
	_, err := run(t, "--source", gridSamples(t), "--output", t.TempDir(), "view", "--sample", "3", "-k", "4")
	assert.True(t, errors.Is(err, viewer.ErrSurfaceUnsupported), "got %v", err)
}

func TestView_SampleOutOfRange(t *testing.T) {
	_, err := run(t, "--source", gridSamples(t), "--output", t.TempDir(), "view", "--sample", "8")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, viewer.ErrSurfaceUnsupported))
}
