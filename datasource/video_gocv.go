// SPDX-License-Identifier: MIT

//go:build gocv

package datasource

import (
	"context"
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// Load decodes every file in order, converts frames to gray, resizes them to
// Width×Height and keeps every Step-th frame.
//
// Errors:
//   - ErrEmptySource when no frame was kept.
//   - open errors, tagged with the file path.
func (v VideoFrames) Load(ctx context.Context) (*mat.Dense, []float64, error) {
	const op = "VideoFrames.Load"

	if v.Width <= 0 || v.Height <= 0 {
		return nil, nil, sourceErrorf(op, fmt.Errorf("frame size %dx%d: %w", v.Width, v.Height, ErrInconsistentSample))
	}

	var (
		rows   [][]float64
		labels []float64
	)
	frame := gocv.NewMat()
	defer frame.Close()
	gray := gocv.NewMat()
	defer gray.Close()
	small := gocv.NewMat()
	defer small.Close()

	size := image.Pt(v.Width, v.Height)
	step := v.step()
	for _, file := range v.Files {
		capture, err := gocv.VideoCaptureFile(file.Path)
		if err != nil {
			return nil, nil, sourceErrorf(op, fmt.Errorf("%s: %w", file.Path, err))
		}

		for n := 0; capture.Read(&frame); n++ {
			if err := ctx.Err(); err != nil {
				capture.Close()
				return nil, nil, sourceErrorf(op, err)
			}
			if frame.Empty() || n%step != 0 {
				continue
			}
			gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)
			gocv.Resize(gray, &small, size, 0, 0, gocv.InterpolationArea)

			row := make([]float64, 0, v.Width*v.Height)
			for y := 0; y < v.Height; y++ {
				for x := 0; x < v.Width; x++ {
					row = append(row, float64(small.GetUCharAt(y, x)))
				}
			}
			rows = append(rows, row)
			labels = append(labels, file.Label)
		}
		capture.Close()
	}

	samples, err := denseFromRows(op, rows)
	if err != nil {
		return nil, nil, err
	}

	return samples, labels, nil
}
