// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Feature-feature covariance of normalized data: Cov = (Xᵀ X) / M.
//
// Notes:
//   - The denominator is M (population), matching the normalization in
//     normalize.go; on normalized data the diagonal is 1 for every
//     non-degenerate feature.
//   - The result is a *mat.SymDense filled by a symmetric rank-k update, so it
//     is symmetric by construction; no transpose averaging is needed before
//     the decomposition.

package pca

import "gonum.org/v1/gonum/mat"

const opCovariance = "Covariance"

// Covariance computes (Xᵀ X)/M of a normalized M×F sample matrix.
// Implementation:
//   - Stage 1: Validate X (non-nil, non-empty).
//   - Stage 2: Cov = (1/M) · Xᵀ·(Xᵀ)ᵀ through SymOuterK on the transposed view.
//
// Returns:
//   - *mat.SymDense: F×F covariance, positive semi-definite up to rounding.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput.
//
// Complexity:
//   - Time O(M*F²), Space O(F²).
func Covariance(normalized mat.Matrix) (*mat.SymDense, error) {
	r, c, err := validateMatrix(normalized)
	if err != nil {
		return nil, pcaErrorf(opCovariance, err)
	}

	cov := mat.NewSymDense(c, nil)
	cov.SymOuterK(1/float64(r), normalized.T())

	return cov, nil
}
