// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Basis: orthonormal principal directions (columns) ordered by descending
//     singular value, plus the singular values themselves.
//   - Decompose: derive a Basis from a covariance matrix (SVD or Jacobi).
//
// Invariants:
//   - Columns are unit-norm and mutually orthogonal.
//   - Order is variance-descending; it is never re-sorted downstream, because
//     every truncation-by-k in Project/Recover relies on it.
//   - A Basis is immutable once constructed; accessors return copies or
//     read-only views.

package pca

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

const (
	opDecompose = "Decompose"
	opNewBasis  = "NewBasis"
)

// Basis is an F×C matrix of principal directions plus C singular values.
// Safe for concurrent readers.
type Basis struct {
	vectors *mat.Dense // F×C, column i is the i-th principal direction
	values  []float64  // len C, non-increasing
}

// NewBasis builds a Basis from explicit column vectors and singular values.
// The values must be non-increasing and len(values) must equal the column count.
// Vectors are copied.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput, ErrNonFinite from validation.
//   - ErrDimensionMismatch when len(values) differs from the column count or
//     the values are not in non-increasing order.
func NewBasis(vectors mat.Matrix, values []float64) (*Basis, error) {
	_, c, err := validateMatrix(vectors)
	if err != nil {
		return nil, pcaErrorf(opNewBasis, err)
	}
	if err = validateFinite(vectors); err != nil {
		return nil, pcaErrorf(opNewBasis, err)
	}
	if len(values) != c {
		return nil, pcaErrorf(opNewBasis, validatorErrorf(
			fmt.Sprintf("values(len=%d, cols=%d)", len(values), c), ErrDimensionMismatch))
	}
	for i := 1; i < len(values); i++ {
		if values[i] > values[i-1] {
			return nil, pcaErrorf(opNewBasis, validatorErrorf(
				fmt.Sprintf("values not descending at %d", i), ErrDimensionMismatch))
		}
	}

	vals := make([]float64, c)
	copy(vals, values)

	return &Basis{vectors: mat.DenseCopyOf(vectors), values: vals}, nil
}

// Features returns F, the length of each principal direction.
func (b *Basis) Features() int {
	r, _ := b.vectors.Dims()
	return r
}

// Components returns C, the number of principal directions.
func (b *Basis) Components() int { return len(b.values) }

// Values returns a copy of the singular values (non-increasing).
func (b *Basis) Values() []float64 {
	out := make([]float64, len(b.values))
	copy(out, b.values)

	return out
}

// Vectors returns a copy of the F×C basis matrix.
func (b *Basis) Vectors() *mat.Dense { return mat.DenseCopyOf(b.vectors) }

// Vector returns a copy of the i-th principal direction (len F).
// Panics if i is outside [0, C), like gonum column accessors.
func (b *Basis) Vector(i int) []float64 { return mat.Col(nil, i, b.vectors) }

// leading returns a read-only view of the first k columns (F×k).
// Callers must have validated k.
func (b *Basis) leading(k int) mat.Matrix {
	return b.vectors.Slice(0, b.Features(), 0, k)
}

// Decompose derives the principal basis of a covariance matrix.
// Implementation:
//   - Stage 1: Validate cov (non-nil, non-empty, finite).
//   - Stage 2: SolverSVD: full SVD, U columns are the directions and the
//     singular values come out non-increasing.
//     SolverJacobi: Jacobi rotations, then sort by descending |λ|
//     (for a symmetric PSD matrix |λ| equals the singular value).
//
// Returns:
//   - *Basis: F×F directions ordered by descending singular value.
//
// Errors:
//   - ErrNilInput, ErrEmptyInput, ErrNonFinite.
//   - ErrDecompositionFailed when the factorization fails or Jacobi does not converge.
//
// Complexity:
//   - Time O(F³), Space O(F²).
//
// Notes:
//   - Near-zero and tied singular values are accepted as returned; rank-deficient
//     inputs (M < F) simply yield trailing zero values.
func Decompose(cov mat.Symmetric, opts ...Option) (*Basis, error) {
	o := gatherOptions(opts...)

	// Stage 1 (Validate).
	if _, _, err := validateMatrix(cov); err != nil {
		return nil, pcaErrorf(opDecompose, err)
	}
	if err := validateFinite(cov); err != nil {
		return nil, pcaErrorf(opDecompose, err)
	}

	// Stage 2 (Execute).
	switch o.solver {
	case SolverJacobi:
		n := cov.SymmetricDim()
		eigs, q, err := jacobiEigen(cov, o.tol, o.maxSweeps*n*n)
		if err != nil {
			return nil, pcaErrorf(opDecompose, err)
		}

		return sortedBasis(eigs, q), nil
	default:
		var svd mat.SVD
		if ok := svd.Factorize(cov, mat.SVDFull); !ok {
			return nil, pcaErrorf(opDecompose, ErrDecompositionFailed)
		}
		var u mat.Dense
		svd.UTo(&u)

		return &Basis{vectors: &u, values: svd.Values(nil)}, nil
	}
}

// sortedBasis orders Jacobi output by descending |λ| (stable on ties).
func sortedBasis(eigs []float64, q *mat.Dense) *Basis {
	n := len(eigs)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return math.Abs(eigs[order[a]]) > math.Abs(eigs[order[b]])
	})

	vectors := mat.NewDense(n, n, nil)
	values := make([]float64, n)
	col := make([]float64, n)
	for dst, src := range order {
		values[dst] = math.Abs(eigs[src])
		mat.Col(col, src, q)
		vectors.SetCol(dst, col)
	}

	return &Basis{vectors: vectors, values: values}
}
