// Package pca implements principal component analysis for fixed-size samples
// such as flattened grayscale images or 2D points.
//
// The package provides:
//
//   - Normalize / Denormalize: per-feature zero mean and unit population
//     variance, and its exact inverse.
//   - Covariance: the F×F matrix (XᵀX)/M of normalized samples.
//   - Decompose: an orthonormal Basis of principal directions ordered by
//     descending singular value (SVD by default, Jacobi on request).
//   - Project / Recover: rank-k reduction and reconstruction.
//   - AnalyzeVariance / MinimumKForRetainedVariance: a candidate k for a
//     retained-variance target.
//   - Fit / Model: the stages above composed into an immutable model.
//
// All matrices are gonum mat types. Inputs are never mutated; every result is
// a fresh allocation. Params, Basis and Model are read-only after creation and
// may be shared between goroutines.
//
// Errors are package sentinels wrapped with the operation name; match them
// with errors.Is.
//
// See the examples in this package for usage patterns.
package pca
