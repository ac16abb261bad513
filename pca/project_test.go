// SPDX-License-Identifier: MIT

package pca_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// fitParts runs the three stages and returns normalized data and basis.
func fitParts(t *testing.T, X mat.Matrix) (*mat.Dense, *pca.Basis) {
	t.Helper()
	Z, _, err := pca.Normalize(X)
	require.NoError(t, err)
	cov, err := pca.Covariance(Z)
	require.NoError(t, err)
	b, err := pca.Decompose(cov)
	require.NoError(t, err)

	return Z, b
}

func TestProjectRecover_DimensionContract(t *testing.T) {
	t.Parallel()

	Z, b := fitParts(t, pointsFixture())

	tests := []struct {
		name string
		k    int
	}{
		{"zero", 0},
		{"negative", -1},
		{"above features", 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := pca.Project(Z, b, tc.k)
			assert.ErrorIs(t, err, pca.ErrDimensionMismatch)
			_, err = pca.Recover(mat.NewDense(5, 3, nil), b, tc.k)
			assert.ErrorIs(t, err, pca.ErrDimensionMismatch)
		})
	}

	P, err := pca.Project(Z, b, 2)
	require.NoError(t, err)
	_, err = pca.Recover(P, b, 1)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch, "k differs from projection")
	_, err = pca.Recover(P, b, 3)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch, "k differs from projection")

	_, err = pca.Project(mat.NewDense(5, 2, nil), b, 1)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch, "sample length differs from F")

	_, err = pca.Project(Z, nil, 1)
	assert.ErrorIs(t, err, pca.ErrNilInput)
	_, err = pca.Recover(P, nil, 2)
	assert.ErrorIs(t, err, pca.ErrNilInput)
}

func TestProjectRecover_MonotoneFidelity(t *testing.T) {
	t.Parallel()

	Z, b := fitParts(t, correlatedSamples(17, 40, 10))

	prev := -1.0
	for k := 1; k <= 10; k++ {
		P, err := pca.Project(Z, b, k)
		require.NoError(t, err)
		r, c := P.Dims()
		require.Equal(t, 40, r)
		require.Equal(t, k, c)

		R, err := pca.Recover(P, b, k)
		require.NoError(t, err)
		mse, err := pca.ReconstructionError(Z, R)
		require.NoError(t, err)

		if prev >= 0 {
			assert.LessOrEqual(t, mse, prev+epsTight, "k=%d", k)
		}
		prev = mse
	}
	assert.InDelta(t, 0.0, prev, epsLoose, "full rank reconstruction is exact")
}

func TestProjectRecover_BestRankTwo(t *testing.T) {
	t.Parallel()

	Z, b := fitParts(t, pointsFixture())

	P, err := pca.Project(Z, b, 2)
	require.NoError(t, err)
	got, err := pca.Recover(P, b, 2)
	require.NoError(t, err)

	// Reference: truncated SVD of the normalized samples themselves.
	var svd mat.SVD
	require.True(t, svd.Factorize(Z, mat.SVDThin))
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	sigma := mat.NewDiagDense(2, s[:2])
	var us, want mat.Dense
	us.Mul(u.Slice(0, 5, 0, 2), sigma)
	want.Mul(&us, v.Slice(0, 3, 0, 2).T())

	requireMatClose(t, &want, got, 1e-6)

	// Any other rank-2 reconstruction, e.g. keeping features 0 and 1, is worse.
	axes := mat.DenseCopyOf(Z)
	for i := 0; i < 5; i++ {
		axes.Set(i, 2, 0)
	}
	best, err := pca.ReconstructionError(Z, got)
	require.NoError(t, err)
	other, err := pca.ReconstructionError(Z, axes)
	require.NoError(t, err)
	assert.Less(t, best, other)
}

func TestReconstructionError(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := mat.NewDense(2, 2, []float64{1, 0, 3, 6})
	mse, err := pca.ReconstructionError(a, b)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, mse, epsTight)

	_, err = pca.ReconstructionError(a, mat.NewDense(1, 2, nil))
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch)

	_, err = pca.ReconstructionError(nil, a)
	assert.ErrorIs(t, err, pca.ErrNilInput)
}
