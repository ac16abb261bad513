// SPDX-License-Identifier: MIT
// Package pca: sentinel error set.
// This file defines ONLY package-level sentinel errors and the structured
// DegenerateFeatureError. All routines return these sentinels (wrapped with
// an operation tag) and tests check them via errors.Is / errors.As.
// No routine panics on user-triggered error conditions.

package pca

import (
	"errors"
	"fmt"
	"strings"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "pca: ..." so that log lines stay greppable.
// Routines wrap the sentinel with the operation tag ("Project: pca: ...");
// callers match with errors.Is.

var (
	// ErrNilInput is returned when a nil matrix, basis or params value is passed.
	ErrNilInput = errors.New("pca: nil input")

	// ErrEmptyInput is returned for matrices with no samples or no features.
	ErrEmptyInput = errors.New("pca: empty input")

	// ErrDimensionMismatch indicates that k is outside (0, components], that k
	// differs between projection and recovery, or that a sample length does
	// not match the feature count of the params/basis.
	ErrDimensionMismatch = errors.New("pca: dimension mismatch")

	// ErrDegenerateFeature signals a zero standard deviation during normalization.
	// The concrete error is a *DegenerateFeatureError listing every such feature.
	ErrDegenerateFeature = errors.New("pca: degenerate feature (zero standard deviation)")

	// ErrDegenerateVarianceTarget signals that the total variance is zero, so no
	// retained-variance fraction can be computed.
	ErrDegenerateVarianceTarget = errors.New("pca: total variance is zero")

	// ErrInvalidTargetFraction rejects retained-variance targets outside (0,1].
	ErrInvalidTargetFraction = errors.New("pca: target fraction must be in (0,1]")

	// ErrNonFinite signals NaN or ±Inf in the input samples.
	ErrNonFinite = errors.New("pca: NaN or Inf encountered")

	// ErrDecompositionFailed indicates that the SVD did not factorize or the
	// Jacobi sweeps did not converge under the configured tolerance.
	ErrDecompositionFailed = errors.New("pca: decomposition failed")
)

// DegenerateFeatureError reports every feature whose standard deviation was zero.
// It matches ErrDegenerateFeature through errors.Is.
type DegenerateFeatureError struct {
	Features []int // feature (column) indexes in ascending order
}

// Error implements error.
func (e *DegenerateFeatureError) Error() string {
	parts := make([]string, len(e.Features))
	for i, f := range e.Features {
		parts[i] = fmt.Sprint(f)
	}

	return fmt.Sprintf("%s: features [%s]", ErrDegenerateFeature, strings.Join(parts, " "))
}

// Is makes errors.Is(err, ErrDegenerateFeature) true for this error.
func (e *DegenerateFeatureError) Is(target error) bool {
	return target == ErrDegenerateFeature
}

// pcaErrorf wraps err with an operation tag, preserving the cause via %w.
// Only call with a non-nil err.
func pcaErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
