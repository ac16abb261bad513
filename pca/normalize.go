// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Feature normalization: per-column zero mean and unit population variance.
//   - The exact inverse (Denormalize) and re-application of stored parameters
//     to new samples drawn from the same distribution (Params.Apply).
//
// Exposed API:
//   - Normalize(X)          -> (Z, params)  // Z[:,j] = (X[:,j] - mean_j) / std_j
//   - Denormalize(Z, p)     -> X            // X = Z*std + mean
//   - (*Params).Apply(X)    -> Z            // same transform with stored params
//
// Determinism & Performance:
//   - Fixed column-by-column traversal, no randomness.
//   - One copy of the input; column work happens on a reused scratch slice.
//
// Notes:
//   - std is the POPULATION standard deviation (divide by M), computed on the
//     mean-subtracted column.

package pca

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Operation name constants for unified error wrapping.
const (
	opNormalize   = "Normalize"
	opDenormalize = "Denormalize"
	opApply       = "Params.Apply"
)

// degenerateRelTol flags a feature as constant when its std is below this
// fraction of |mean|. A constant column rarely centers to exact zeros because
// the mean itself carries rounding error.
const degenerateRelTol = 1e-12

// Params holds the normalization parameters of a reference SampleMatrix.
// Params values are read-only once returned by Normalize.
type Params struct {
	// Mean is the per-feature arithmetic mean (len F).
	Mean []float64

	// Std is the per-feature population standard deviation (len F).
	// Entries listed in Degenerate are 0.
	Std []float64

	// Degenerate lists features with zero variance that were mapped to 0
	// under ZeroVarianceZero. Always empty under ZeroVarianceFail.
	Degenerate []int
}

// Features returns F, the number of features the params describe.
func (p *Params) Features() int { return len(p.Mean) }

// Normalize subtracts each column's mean and divides by its population std.
// Implementation:
//   - Stage 1: Validate X (non-nil, non-empty, finite).
//   - Stage 2: Per column: mean via stat.Mean, subtract, std of the centered
//     column, divide.
//   - Stage 3: Apply the zero-variance policy to constant columns.
//
// Returns:
//   - *mat.Dense: normalized copy (M×F); X is never mutated.
//   - *Params: means, stds and (policy Zero) degenerate feature indexes.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput, ErrNonFinite from validation.
//   - *DegenerateFeatureError (matches ErrDegenerateFeature) under ZeroVarianceFail.
//
// Complexity:
//   - Time O(M*F), Space O(M*F).
func Normalize(data mat.Matrix, opts ...Option) (*mat.Dense, *Params, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Validate).
	r, c, err := validateMatrix(data)
	if err != nil {
		return nil, nil, pcaErrorf(opNormalize, err)
	}
	if err = validateFinite(data); err != nil {
		return nil, nil, pcaErrorf(opNormalize, err)
	}

	// Stage 2 (Execute): work on a private copy, one column at a time.
	out := mat.DenseCopyOf(data)
	params := &Params{
		Mean: make([]float64, c),
		Std:  make([]float64, c),
	}
	col := make([]float64, r)
	var degenerate []int
	var j int
	var mean, std float64
	for j = 0; j < c; j++ {
		mat.Col(col, j, out)
		mean = stat.Mean(col, nil)
		floats.AddConst(-mean, col)
		std = math.Sqrt(floats.Dot(col, col) / float64(r))
		params.Mean[j] = mean

		if std == 0 || std <= degenerateRelTol*math.Abs(mean) {
			// Stage 3 (Policy): constant column.
			degenerate = append(degenerate, j)
			for i := range col {
				col[i] = 0
			}
			out.SetCol(j, col)
			continue
		}

		params.Std[j] = std
		floats.Scale(1/std, col)
		out.SetCol(j, col)
	}

	if len(degenerate) > 0 {
		if o.zeroVariance == ZeroVarianceFail {
			return nil, nil, pcaErrorf(opNormalize, &DegenerateFeatureError{Features: degenerate})
		}
		params.Degenerate = degenerate
	}

	return out, params, nil
}

// Denormalize maps normalized samples back into the original feature space:
// X = Z*std + mean, elementwise per feature.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput from validation.
//   - ErrDimensionMismatch when Z has a column count different from F.
//
// Complexity:
//   - Time O(M*F), Space O(M*F).
func Denormalize(normalized mat.Matrix, p *Params) (*mat.Dense, error) {
	if p == nil {
		return nil, pcaErrorf(opDenormalize, ErrNilInput)
	}
	r, c, err := validateMatrix(normalized)
	if err != nil {
		return nil, pcaErrorf(opDenormalize, err)
	}
	if err = validateWidth("validateWidth", c, p.Features()); err != nil {
		return nil, pcaErrorf(opDenormalize, err)
	}

	out := mat.DenseCopyOf(normalized)
	var row []float64
	for i := 0; i < r; i++ {
		row = out.RawRowView(i)
		floats.Mul(row, p.Std)
		floats.Add(row, p.Mean)
	}

	return out, nil
}

// Apply normalizes new samples with the stored parameters.
// Degenerate features (std 0) map to 0.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput, ErrNonFinite from validation.
//   - ErrDimensionMismatch when X has a column count different from F.
func (p *Params) Apply(data mat.Matrix) (*mat.Dense, error) {
	if p == nil {
		return nil, pcaErrorf(opApply, ErrNilInput)
	}
	r, c, err := validateMatrix(data)
	if err != nil {
		return nil, pcaErrorf(opApply, err)
	}
	if err = validateWidth("validateWidth", c, p.Features()); err != nil {
		return nil, pcaErrorf(opApply, err)
	}
	if err = validateFinite(data); err != nil {
		return nil, pcaErrorf(opApply, err)
	}

	out := mat.DenseCopyOf(data)
	var row []float64
	var i, j int
	for i = 0; i < r; i++ {
		row = out.RawRowView(i)
		for j = 0; j < c; j++ {
			if p.Std[j] == 0 {
				row[j] = 0
				continue
			}
			row[j] = (row[j] - p.Mean[j]) / p.Std[j]
		}
	}

	return out, nil
}
