// SPDX-License-Identifier: MIT
// Package pca_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures (fixed seeds, finite values).
//   - Keep matrix comparisons in one place so tolerances stay consistent.

package pca_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

const (
	epsTight = 1e-12
	epsLoose = 1e-9
)

// pointsFixture is a 5-sample, 3-feature matrix with distinct singular values.
func pointsFixture() *mat.Dense {
	return mat.NewDense(5, 3, []float64{
		2.5, 2.4, 1.2,
		0.5, 0.7, 0.3,
		2.2, 2.9, 1.0,
		1.9, 2.2, 0.8,
		3.1, 3.0, 1.6,
	})
}

// correlatedSamples returns an m×f matrix whose features share a few latent
// factors plus noise, so the spectrum decays but never reaches zero.
func correlatedSamples(seed int64, m, f int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	const latent = 3
	weights := make([]float64, latent*f)
	for i := range weights {
		weights[i] = rng.NormFloat64()
	}
	out := mat.NewDense(m, f, nil)
	z := make([]float64, latent)
	var i, j, l int
	var v float64
	for i = 0; i < m; i++ {
		for l = range z {
			z[l] = rng.NormFloat64() * float64(latent-l)
		}
		for j = 0; j < f; j++ {
			v = 10 + 0.1*rng.NormFloat64()
			for l = 0; l < latent; l++ {
				v += z[l] * weights[l*f+j]
			}
			out.Set(i, j, v)
		}
	}

	return out
}

// mustFit fits a model or fails the test.
func mustFit(t testing.TB, data mat.Matrix, opts ...pca.Option) *pca.Model {
	t.Helper()
	m, err := pca.Fit(data, opts...)
	require.NoError(t, err)

	return m
}

// requireMatClose asserts elementwise |a-b| ≤ tol.
func requireMatClose(t testing.TB, want, got mat.Matrix, tol float64) {
	t.Helper()
	wr, wc := want.Dims()
	gr, gc := got.Dims()
	require.Equal(t, wr, gr, "rows")
	require.Equal(t, wc, gc, "cols")
	var i, j int
	for i = 0; i < wr; i++ {
		for j = 0; j < wc; j++ {
			require.InDelta(t, want.At(i, j), got.At(i, j), tol, "at (%d,%d)", i, j)
		}
	}
}

// requireOrthonormal asserts BᵀB ≈ I.
func requireOrthonormal(t testing.TB, b *mat.Dense, tol float64) {
	t.Helper()
	_, c := b.Dims()
	var gram mat.Dense
	gram.Mul(b.T(), b)
	var i, j int
	var want float64
	for i = 0; i < c; i++ {
		for j = 0; j < c; j++ {
			want = 0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, gram.At(i, j), tol, "gram (%d,%d)", i, j)
		}
	}
}

// requireNonIncreasing asserts v[i] ≥ v[i+1] for all i.
func requireNonIncreasing(t testing.TB, v []float64) {
	t.Helper()
	for i := 1; i < len(v); i++ {
		require.GreaterOrEqual(t, v[i-1], v[i], "values[%d] < values[%d]", i-1, i)
	}
}

// absDot returns |⟨a,b⟩|, used to compare directions up to sign.
func absDot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return math.Abs(s)
}
