// SPDX-License-Identifier: MIT

package pca_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

func TestAnalyzeVariance_Thresholds(t *testing.T) {
	t.Parallel()

	values := []float64{4, 2, 1, 1}
	tests := []struct {
		name   string
		target float64
		wantK  int
	}{
		{"tiny target", 1e-9, 1},
		{"half is not strictly enough", 0.5, 2},
		{"seventy percent", 0.7, 2},
		{"ninety percent", 0.9, 4},
		{"everything", 1.0, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := pca.AnalyzeVariance(values, tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.wantK, r.K)
			assert.Len(t, r.Shortfall, tc.wantK)
			assert.Equal(t, tc.target, r.Target)
		})
	}
}

func TestAnalyzeVariance_ShortfallCurve(t *testing.T) {
	t.Parallel()

	r, err := pca.AnalyzeVariance([]float64{4, 2, 1, 1}, 1.0)
	require.NoError(t, err)
	want := []float64{0.5, 0.25, 0.125, 0}
	require.Len(t, r.Shortfall, len(want))
	for i := range want {
		assert.InDelta(t, want[i], r.Shortfall[i], epsTight)
	}
	assert.InDelta(t, 0.75, r.Retained(2), epsTight)
	assert.True(t, math.IsNaN(r.Retained(0)))
	assert.True(t, math.IsNaN(r.Retained(5)))
}

func TestAnalyzeVariance_DividesByAllValues(t *testing.T) {
	t.Parallel()

	// Dividing by the first three values only would stop at k=2.
	r, err := pca.AnalyzeVariance([]float64{5, 3, 1, 0.5, 0.3, 0.2}, 0.85)
	require.NoError(t, err)
	assert.Equal(t, 3, r.K)
	assert.InDelta(t, 0.1, r.Shortfall[2], epsTight)
}

func TestAnalyzeVariance_Errors(t *testing.T) {
	t.Parallel()

	for _, target := range []float64{0, -0.1, 1.01, math.NaN()} {
		_, err := pca.AnalyzeVariance([]float64{1, 2}, target)
		assert.ErrorIs(t, err, pca.ErrInvalidTargetFraction, "target %v", target)
	}

	_, err := pca.AnalyzeVariance([]float64{0, 0, 0}, 0.5)
	assert.ErrorIs(t, err, pca.ErrDegenerateVarianceTarget)

	_, err = pca.AnalyzeVariance(nil, 0.5)
	assert.ErrorIs(t, err, pca.ErrEmptyInput)

	_, err = pca.AnalyzeVariance([]float64{1, math.Inf(1)}, 0.5)
	assert.ErrorIs(t, err, pca.ErrNonFinite)
}

func TestMinimumKForRetainedVariance(t *testing.T) {
	t.Parallel()

	X := correlatedSamples(8, 60, 5)

	k, err := pca.MinimumKForRetainedVariance(X, 1.0)
	require.NoError(t, err)
	assert.Equal(t, 5, k)

	k, err = pca.MinimumKForRetainedVariance(X, 1e-9)
	require.NoError(t, err)
	assert.Equal(t, 1, k)

	// Three latent factors dominate the small noise term.
	k, err = pca.MinimumKForRetainedVariance(X, 0.95)
	require.NoError(t, err)
	assert.LessOrEqual(t, k, 3)

	_, err = pca.MinimumKForRetainedVariance(X, 0)
	assert.ErrorIs(t, err, pca.ErrInvalidTargetFraction)

	_, err = pca.MinimumKForRetainedVariance(mat.NewDense(3, 1, []float64{2, 2, 2}), 0.5)
	assert.ErrorIs(t, err, pca.ErrDegenerateFeature)

	k, err = pca.MinimumKForRetainedVariance(
		mat.NewDense(3, 2, []float64{1, 2, 2, 2, 3, 2}), 0.5,
		pca.WithZeroVariance(pca.ZeroVarianceZero),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, k)
}
