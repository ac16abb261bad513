// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Cyclic-pivot Jacobi eigen-decomposition of a symmetric matrix, used as
//     the SolverJacobi backend of Decompose and as an independent cross-check
//     of the SVD path in tests.
//
// Determinism:
//   - Fixed i→j pivot search and fixed update order produce stable results.

package pca

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const opJacobi = "Jacobi"

// jacobiEigen computes eigenvalues and eigenvectors of a symmetric matrix via Jacobi rotations.
// Implementation:
//   - Stage 1: Copy the full symmetric matrix into a row-major work buffer A; Q = I.
//   - Stage 2: Repeatedly pick (p,q) with the largest |A[p,q]| and rotate it to zero,
//     accumulating the rotation into Q.
//   - Stage 3: Verify convergence (max off-diagonal < tol) and read λ from diag(A).
//
// Inputs:
//   - s: symmetric n×n matrix.
//   - tol: convergence threshold on |A[p,q]|.
//   - maxIter: cap on the number of rotations.
//
// Returns:
//   - []float64: eigenvalues in pivot order (unsorted).
//   - *mat.Dense: Q whose columns are the matching unit eigenvectors.
//
// Errors:
//   - ErrDecompositionFailed when max |A[p,q]| ≥ tol after maxIter rotations.
//
// Complexity:
//   - Time O(maxIter * n²) for pivot search + O(maxIter * n) for rotations; Space O(n²).
func jacobiEigen(s mat.Symmetric, tol float64, maxIter int) ([]float64, *mat.Dense, error) {
	n := s.SymmetricDim()

	// Stage 1 (Prepare): full row-major copy of A, identity accumulator Q.
	a := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			v := s.At(i, j)
			a[i*n+j], a[j*n+i] = v, v
		}
	}
	q := make([]float64, n*n)
	for i = 0; i < n; i++ {
		q[i*n+i] = 1.0
	}

	var (
		iter           int
		p, r           int     // pivot indices (p < r)
		maxOff, off    float64 // current max |A[p,r]|
		app, arr, apr  float64 // A[p,p], A[r,r], A[p,r]
		aip, air       float64 // A[i,p], A[i,r]
		qip, qir       float64 // Q[i,p], Q[i,r]
		newIP, newIR   float64 // rotated A[i,p], A[i,r]
		theta, t, c, z float64 // rotation parameters (z = sine)
	)

	// Stage 2 (Execute): Jacobi rotations.
	for iter = 0; iter < maxIter; iter++ {
		// J.1: pivot search over the strict upper triangle.
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a[i*n+j])
				if off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		// J.2: converged.
		if maxOff < tol {
			break
		}

		// J.3: rotation parameters from A[p,p], A[r,r], A[p,r].
		app = a[p*n+p]
		arr = a[r*n+r]
		apr = a[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1.0 / math.Sqrt(t*t+1)
		z = t * c

		// J.4: rotate rows/cols p and r of A, keeping A symmetric.
		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip = a[i*n+p]
			air = a[i*n+r]
			newIP = c*aip - z*air
			newIR = z*aip + c*air
			a[i*n+p], a[p*n+i] = newIP, newIP
			a[i*n+r], a[r*n+i] = newIR, newIR
		}
		a[p*n+p] = c*c*app - 2*c*z*apr + z*z*arr
		a[r*n+r] = z*z*app + 2*c*z*apr + c*c*arr
		a[p*n+r], a[r*n+p] = 0, 0

		// J.5: accumulate into Q.
		for i = 0; i < n; i++ {
			qip = q[i*n+p]
			qir = q[i*n+r]
			q[i*n+p] = c*qip - z*qir
			q[i*n+r] = z*qip + c*qir
		}
	}

	// Stage 3 (Finalize): the loop may exit on the cap with work left.
	maxOff = 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if off = math.Abs(a[i*n+j]); off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, pcaErrorf(opJacobi, ErrDecompositionFailed)
	}

	eigs := make([]float64, n)
	for i = 0; i < n; i++ {
		eigs[i] = a[i*n+i]
	}

	return eigs, mat.NewDense(n, n, q), nil
}
