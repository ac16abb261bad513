// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//  - Provide a single source of truth for the shape, nil and finiteness checks
//    shared by Normalize, Covariance, Decompose, Project and Recover.
//  - Return plain sentinel errors (tagged with the validator name) so call
//    sites can wrap uniformly with their operation tag.
//
// Determinism & Performance:
//  - All checks are pure and allocate nothing.
//  - validateFinite is O(r*c); every other check is O(1).

package pca

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// validatorErrorf wraps err with the validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// isNil reports whether m is nil or a typed nil pointer of a gonum concrete type.
// gonum methods dereference their receiver, so a typed nil would panic on Dims.
func isNil(m mat.Matrix) bool {
	switch v := m.(type) {
	case nil:
		return true
	case *mat.Dense:
		return v == nil
	case *mat.SymDense:
		return v == nil
	case *mat.VecDense:
		return v == nil
	}

	return false
}

// validateMatrix ensures m is non-nil and has at least one row and one column.
// Returns the dimensions for convenience.
func validateMatrix(m mat.Matrix) (rows, cols int, err error) {
	if isNil(m) {
		return 0, 0, validatorErrorf("validateMatrix", ErrNilInput)
	}
	if e, ok := m.(interface{ IsEmpty() bool }); ok && e.IsEmpty() {
		return 0, 0, validatorErrorf("validateMatrix", ErrEmptyInput)
	}
	rows, cols = m.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, validatorErrorf("validateMatrix", ErrEmptyInput)
	}

	return rows, cols, nil
}

// validateFinite rejects NaN and ±Inf anywhere in m.
// Assumes m was already validated with validateMatrix.
func validateFinite(m mat.Matrix) error {
	r, c := m.Dims()
	var i, j int
	var v float64
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			v = m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return validatorErrorf(fmt.Sprintf("validateFinite(%d,%d)", i, j), ErrNonFinite)
			}
		}
	}

	return nil
}

// validateK checks 0 < k ≤ components.
func validateK(k, components int) error {
	if k <= 0 || k > components {
		return validatorErrorf(fmt.Sprintf("validateK(k=%d, components=%d)", k, components), ErrDimensionMismatch)
	}

	return nil
}

// validateWidth checks that a matrix has exactly want columns.
func validateWidth(tag string, got, want int) error {
	if got != want {
		return validatorErrorf(fmt.Sprintf("%s(cols=%d, want=%d)", tag, got, want), ErrDimensionMismatch)
	}

	return nil
}
