// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Retained-variance analysis: how many leading directions capture a
//     target fraction of the total variance. Exploratory only; the caller
//     decides whether to accept the candidate k (usually after looking at
//     the shortfall curve).

package pca

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const (
	opAnalyzeVariance = "AnalyzeVariance"
	opMinimumK        = "MinimumKForRetainedVariance"
)

// VarianceReport is the result of AnalyzeVariance.
type VarianceReport struct {
	// K is the smallest k whose retained fraction meets the target,
	// or len(values) when no smaller k does.
	K int

	// Shortfall[i] = 1 − Σs[:i+1]/Σs for every k = i+1 that was scanned
	// (k = 1..K).
	Shortfall []float64

	// Target is the requested retained fraction.
	Target float64
}

// Retained returns the variance fraction captured by the first k directions,
// for k in [1, len(Shortfall)]. Returns NaN outside that range.
func (r *VarianceReport) Retained(k int) float64 {
	if k < 1 || k > len(r.Shortfall) {
		return math.NaN()
	}

	return 1 - r.Shortfall[k-1]
}

// AnalyzeVariance scans k = 1..len(values) and stops at the first k with
// 1 − Σs[:k]/Σs < 1 − target. The denominator is the sum of ALL values.
//
// Errors:
//   - ErrEmptyInput for an empty values slice.
//   - ErrInvalidTargetFraction when target ∉ (0, 1].
//   - ErrNonFinite for NaN/Inf values.
//   - ErrDegenerateVarianceTarget when Σs == 0.
func AnalyzeVariance(values []float64, target float64) (*VarianceReport, error) {
	if len(values) == 0 {
		return nil, pcaErrorf(opAnalyzeVariance, ErrEmptyInput)
	}
	if math.IsNaN(target) || target <= 0 || target > 1 {
		return nil, pcaErrorf(opAnalyzeVariance, ErrInvalidTargetFraction)
	}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, pcaErrorf(opAnalyzeVariance, ErrNonFinite)
		}
	}
	total := floats.Sum(values)
	if total == 0 {
		return nil, pcaErrorf(opAnalyzeVariance, ErrDegenerateVarianceTarget)
	}

	limit := 1 - target
	report := &VarianceReport{Target: target, Shortfall: make([]float64, 0, len(values))}
	var acc, shortfall float64
	for k := 1; k <= len(values); k++ {
		acc += values[k-1]
		shortfall = 1 - acc/total
		report.Shortfall = append(report.Shortfall, shortfall)
		report.K = k
		if shortfall < limit {
			break
		}
	}

	return report, nil
}

// MinimumKForRetainedVariance normalizes data, decomposes its covariance and
// returns the candidate k for the target fraction.
//
// Notes:
//   - target = 1.0 yields len(values) = F on non-degenerate data, since the
//     strict comparison against 0 never holds.
//   - opts are forwarded to Normalize and Decompose.
func MinimumKForRetainedVariance(data mat.Matrix, target float64, opts ...Option) (int, error) {
	if math.IsNaN(target) || target <= 0 || target > 1 {
		return 0, pcaErrorf(opMinimumK, ErrInvalidTargetFraction)
	}
	normalized, _, err := Normalize(data, opts...)
	if err != nil {
		return 0, pcaErrorf(opMinimumK, err)
	}
	cov, err := Covariance(normalized)
	if err != nil {
		return 0, pcaErrorf(opMinimumK, err)
	}
	basis, err := Decompose(cov, opts...)
	if err != nil {
		return 0, pcaErrorf(opMinimumK, err)
	}
	report, err := AnalyzeVariance(basis.Values(), target)
	if err != nil {
		return 0, pcaErrorf(opMinimumK, err)
	}

	return report.K, nil
}
