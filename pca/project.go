// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Project: normalized samples → coordinates on the first k directions.
//   - Recover: k coordinates → rank-k approximation in normalized space.
//   - ReconstructionError: mean squared error between two equal-shape matrices.
//
// Contracts:
//   - 0 < k ≤ C, checked against the basis.
//   - Recover requires the projected width to equal k; a k that differs from
//     the one used at projection time is a hard ErrDimensionMismatch.
//   - Recover(Project(X, B, C), B, C) ≈ X; for k < C the result is the best
//     rank-k approximation in the mean-squared sense.

package pca

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	opProject             = "Project"
	opRecover             = "Recover"
	opReconstructionError = "ReconstructionError"
)

// Project computes X · U[:, :k].
//
// Errors:
//   - ErrNilInput, ErrEmptyInput from validation (including a nil basis).
//   - ErrDimensionMismatch when k ∉ (0, C] or X has a column count other than F.
//
// Complexity:
//   - Time O(M*F*k), Space O(M*k).
func Project(normalized mat.Matrix, basis *Basis, k int) (*mat.Dense, error) {
	if basis == nil {
		return nil, pcaErrorf(opProject, ErrNilInput)
	}
	r, c, err := validateMatrix(normalized)
	if err != nil {
		return nil, pcaErrorf(opProject, err)
	}
	if err = validateK(k, basis.Components()); err != nil {
		return nil, pcaErrorf(opProject, err)
	}
	if err = validateWidth("validateWidth", c, basis.Features()); err != nil {
		return nil, pcaErrorf(opProject, err)
	}

	out := mat.NewDense(r, k, nil)
	out.Mul(normalized, basis.leading(k))

	return out, nil
}

// Recover computes P · U[:, :k]ᵀ, mapping k coordinates back to F features.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput from validation (including a nil basis).
//   - ErrDimensionMismatch when k ∉ (0, C] or P does not have exactly k columns.
//
// Complexity:
//   - Time O(M*F*k), Space O(M*F).
func Recover(projected mat.Matrix, basis *Basis, k int) (*mat.Dense, error) {
	if basis == nil {
		return nil, pcaErrorf(opRecover, ErrNilInput)
	}
	r, c, err := validateMatrix(projected)
	if err != nil {
		return nil, pcaErrorf(opRecover, err)
	}
	if err = validateK(k, basis.Components()); err != nil {
		return nil, pcaErrorf(opRecover, err)
	}
	if err = validateWidth("validateWidth", c, k); err != nil {
		return nil, pcaErrorf(opRecover, err)
	}

	out := mat.NewDense(r, basis.Features(), nil)
	out.Mul(projected, basis.leading(k).T())

	return out, nil
}

// ReconstructionError returns the mean squared elementwise difference of a and b.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput from validation.
//   - ErrDimensionMismatch when shapes differ.
func ReconstructionError(a, b mat.Matrix) (float64, error) {
	ar, ac, err := validateMatrix(a)
	if err != nil {
		return 0, pcaErrorf(opReconstructionError, err)
	}
	br, bc, err := validateMatrix(b)
	if err != nil {
		return 0, pcaErrorf(opReconstructionError, err)
	}
	if ar != br || ac != bc {
		return 0, pcaErrorf(opReconstructionError, validatorErrorf(
			fmt.Sprintf("shape(%dx%d vs %dx%d)", ar, ac, br, bc), ErrDimensionMismatch))
	}

	var diff mat.Dense
	diff.Sub(a, b)
	var sum float64
	for i := 0; i < ar; i++ {
		row := diff.RawRowView(i)
		sum += floats.Dot(row, row)
	}

	return sum / float64(ar*ac), nil
}
