// SPDX-License-Identifier: MIT
// Package: viewer
//
// Purpose:
//   - Turn a reconstructed sample (row of F intensities) into a displayable
//     8-bit gray image: min-max rescale → reshape → upscale.
//   - Tile many samples into one montage image.
//
// Notes:
//   - Samples are flattened row-major, so pixel (x, y) is value[y*cols+x].
//   - Conversion to uint8 truncates, like an unsigned cast of the rescaled value.

package viewer

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"
	"gonum.org/v1/gonum/floats"
)

// MaxIntensity is the upper end of the display range.
const MaxIntensity = 255.0

// Rescale maps values linearly so that min → 0 and max → top.
// A constant input maps to all zeros. The input is not modified.
//
// Errors:
//   - ErrNonFinite when any value is NaN or ±Inf.
func Rescale(values []float64, top float64) ([]float64, error) {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out, nil
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, viewerErrorf("Rescale", fmt.Errorf("index %d: %w", i, ErrNonFinite))
		}
	}
	lo, hi := floats.Min(values), floats.Max(values)
	span := hi - lo
	if span == 0 {
		return out, nil
	}
	scale := top / span
	for i, v := range values {
		out[i] = (v - lo) * scale
	}

	return out, nil
}

// GrayImage reshapes rows·cols intensities in [0, 255] into an image.
// Values outside the range are clamped.
//
// Errors:
//   - ErrInvalidShape when len(values) ≠ rows·cols or a dimension is ≤ 0.
func GrayImage(values []float64, rows, cols int) (*image.Gray, error) {
	if rows <= 0 || cols <= 0 || len(values) != rows*cols {
		return nil, viewerErrorf("GrayImage", fmt.Errorf("%d values into %dx%d: %w", len(values), rows, cols, ErrInvalidShape))
	}
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	var v float64
	for i := range values {
		v = values[i]
		switch {
		case v <= 0:
			img.Pix[i] = 0
		case v >= MaxIntensity:
			img.Pix[i] = 255
		default:
			img.Pix[i] = uint8(v)
		}
	}

	return img, nil
}

// SampleImage rescales one sample into [0, 255] and reshapes it.
func SampleImage(values []float64, rows, cols int) (*image.Gray, error) {
	scaled, err := Rescale(values, MaxIntensity)
	if err != nil {
		return nil, err
	}

	return GrayImage(scaled, rows, cols)
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling.
// A factor ≤ 1 returns img unchanged.
func Upscale(img *image.Gray, factor int) *image.Gray {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)

	return dst
}

// Montage tiles equally sized images into a grid with perRow tiles per row,
// filling row by row. Missing tiles in the last row stay black.
//
// Errors:
//   - ErrInvalidShape when tiles is empty, perRow ≤ 0, or sizes differ.
func Montage(tiles []*image.Gray, perRow int) (*image.Gray, error) {
	if len(tiles) == 0 || perRow <= 0 {
		return nil, viewerErrorf("Montage", ErrInvalidShape)
	}
	size := tiles[0].Bounds().Size()
	for i, t := range tiles {
		if t.Bounds().Size() != size {
			return nil, viewerErrorf("Montage", fmt.Errorf("tile %d is %v, want %v: %w", i, t.Bounds().Size(), size, ErrInvalidShape))
		}
	}
	if perRow > len(tiles) {
		perRow = len(tiles)
	}
	gridRows := (len(tiles) + perRow - 1) / perRow
	out := image.NewGray(image.Rect(0, 0, perRow*size.X, gridRows*size.Y))
	for i, t := range tiles {
		at := image.Pt((i%perRow)*size.X, (i/perRow)*size.Y)
		draw.Draw(out, image.Rectangle{Min: at, Max: at.Add(size)}, t, t.Bounds().Min, draw.Src)
	}

	return out, nil
}
