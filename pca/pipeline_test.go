// SPDX-License-Identifier: MIT

package pca_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

func TestFit_ReconstructFullRank(t *testing.T) {
	t.Parallel()

	X := correlatedSamples(13, 30, 6)
	m := mustFit(t, X)
	assert.Equal(t, 6, m.Features())

	back, err := m.Reconstruct(X, 6)
	require.NoError(t, err)
	requireMatClose(t, X, back, epsLoose)
}

func TestFit_ProjectMatchesStages(t *testing.T) {
	t.Parallel()

	X := correlatedSamples(14, 30, 6)
	m := mustFit(t, X)

	Z, _, err := pca.Normalize(X)
	require.NoError(t, err)
	want, err := pca.Project(Z, m.Basis(), 3)
	require.NoError(t, err)

	got, err := m.Project(X, 3)
	require.NoError(t, err)
	requireMatClose(t, want, got, epsLoose)

	rec, err := m.RecoverSamples(got, 3)
	require.NoError(t, err)
	viaReconstruct, err := m.Reconstruct(X, 3)
	require.NoError(t, err)
	requireMatClose(t, rec, viaReconstruct, epsTight)
}

func TestFit_DegenerateFeatureRecoversMean(t *testing.T) {
	t.Parallel()

	X := mat.NewDense(4, 3, []float64{
		1, 9, 2,
		2, 9, 5,
		3, 9, 4,
		4, 9, 9,
	})
	_, err := pca.Fit(X)
	require.ErrorIs(t, err, pca.ErrDegenerateFeature)

	m := mustFit(t, X, pca.WithZeroVariance(pca.ZeroVarianceZero))
	assert.Equal(t, []int{1}, m.Params().Degenerate)

	for k := 1; k <= 3; k++ {
		back, err := m.Reconstruct(X, k)
		require.NoError(t, err)
		for i := 0; i < 4; i++ {
			assert.InDelta(t, 9.0, back.At(i, 1), epsLoose, "k=%d row=%d", k, i)
		}
	}
}

func TestFit_Errors(t *testing.T) {
	t.Parallel()

	m := mustFit(t, pointsFixture())

	_, err := m.Project(mat.NewDense(1, 2, nil), 1)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch)

	_, err = m.Reconstruct(pointsFixture(), 0)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch)

	_, err = m.RecoverSamples(mat.NewDense(1, 2, nil), 3)
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch)

	_, err = pca.Fit(nil)
	assert.ErrorIs(t, err, pca.ErrNilInput)
}

func TestFit_LogsStages(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	mustFit(t, pointsFixture(), pca.WithLogger(logger), pca.WithSolver(pca.SolverJacobi))

	entries := hook.AllEntries()
	require.Len(t, entries, 3)
	last := hook.LastEntry()
	assert.Equal(t, "decomposed covariance", last.Message)
	assert.Equal(t, "jacobi", last.Data["solver"])
	assert.Equal(t, 5, last.Data["samples"])
	assert.Equal(t, 3, last.Data["features"])
	assert.Equal(t, "pca_fit", last.Data["action"])
}

func TestNewModel(t *testing.T) {
	t.Parallel()

	m := mustFit(t, pointsFixture())
	same, err := pca.NewModel(m.Params(), m.Basis())
	require.NoError(t, err)
	assert.Same(t, m.Basis(), same.Basis())

	other := mustFit(t, correlatedSamples(1, 10, 4))
	_, err = pca.NewModel(m.Params(), other.Basis())
	assert.ErrorIs(t, err, pca.ErrDimensionMismatch)

	_, err = pca.NewModel(nil, m.Basis())
	assert.ErrorIs(t, err, pca.ErrNilInput)
}
