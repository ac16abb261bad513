// SPDX-License-Identifier: MIT

package datasource

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Source yields an M×F sample matrix.
type Source interface {
	LoadSamples(ctx context.Context) (*mat.Dense, error)
}

// LabelSource yields one label per sample, aligned with LoadSamples.
type LabelSource interface {
	LoadLabels(ctx context.Context) ([]float64, error)
}

// denseFromRows packs equally long rows into a matrix.
func denseFromRows(op string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, sourceErrorf(op, ErrEmptySource)
	}
	f := len(rows[0])
	data := make([]float64, 0, len(rows)*f)
	for i, r := range rows {
		if len(r) != f {
			return nil, sourceErrorf(op, fmt.Errorf("sample %d has %d features, want %d: %w", i, len(r), f, ErrInconsistentSample))
		}
		data = append(data, r...)
	}

	return mat.NewDense(len(rows), f, data), nil
}
