// SPDX-License-Identifier: MIT
// Package: pca
//
// Purpose:
//   - Fit composes Normalize → Covariance → Decompose into an immutable Model.
//   - Model applies the stored normalization and basis to new data.

package pca

import (
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

const (
	opFit            = "Fit"
	opModelProject   = "Model.Project"
	opReconstruct    = "Model.Reconstruct"
	opRecoverSamples = "Model.RecoverSamples"
)

// Model bundles the normalization parameters and basis of a training set.
// It is never mutated after Fit and is safe for concurrent use.
type Model struct {
	params *Params
	basis  *Basis
}

// NewModel pairs existing params and basis.
// Returns ErrNilInput for nil arguments and ErrDimensionMismatch when the
// feature counts differ.
func NewModel(params *Params, basis *Basis) (*Model, error) {
	if params == nil || basis == nil {
		return nil, pcaErrorf("NewModel", ErrNilInput)
	}
	if err := validateWidth("validateWidth", params.Features(), basis.Features()); err != nil {
		return nil, pcaErrorf("NewModel", err)
	}

	return &Model{params: params, basis: basis}, nil
}

// Fit learns normalization parameters and the principal basis of data.
// Stage timings are logged at debug level through WithLogger.
func Fit(data mat.Matrix, opts ...Option) (*Model, error) {
	o := gatherOptions(opts...)
	log := o.logger.WithField("action", "pca_fit")

	start := time.Now()
	normalized, params, err := Normalize(data, opts...)
	if err != nil {
		return nil, pcaErrorf(opFit, err)
	}
	log.WithField("took", time.Since(start)).Debug("normalized samples")

	start = time.Now()
	cov, err := Covariance(normalized)
	if err != nil {
		return nil, pcaErrorf(opFit, err)
	}
	log.WithField("took", time.Since(start)).Debug("computed covariance")

	start = time.Now()
	basis, err := Decompose(cov, opts...)
	if err != nil {
		return nil, pcaErrorf(opFit, err)
	}
	r, c := normalized.Dims()
	log.WithFields(logrus.Fields{
		"took":       time.Since(start),
		"solver":     o.solver.String(),
		"samples":    r,
		"features":   c,
		"degenerate": len(params.Degenerate),
	}).Debug("decomposed covariance")

	return &Model{params: params, basis: basis}, nil
}

// Params returns the normalization parameters. Callers must not mutate them.
func (m *Model) Params() *Params { return m.params }

// Basis returns the principal basis.
func (m *Model) Basis() *Basis { return m.basis }

// Features returns F.
func (m *Model) Features() int { return m.basis.Features() }

// Project normalizes raw samples with the stored params and projects them on
// the first k directions.
func (m *Model) Project(data mat.Matrix, k int) (*mat.Dense, error) {
	normalized, err := m.params.Apply(data)
	if err != nil {
		return nil, pcaErrorf(opModelProject, err)
	}
	out, err := Project(normalized, m.basis, k)
	if err != nil {
		return nil, pcaErrorf(opModelProject, err)
	}

	return out, nil
}

// RecoverSamples maps k coordinates back to the original feature space.
func (m *Model) RecoverSamples(projected mat.Matrix, k int) (*mat.Dense, error) {
	recovered, err := Recover(projected, m.basis, k)
	if err != nil {
		return nil, pcaErrorf(opRecoverSamples, err)
	}
	out, err := Denormalize(recovered, m.params)
	if err != nil {
		return nil, pcaErrorf(opRecoverSamples, err)
	}

	return out, nil
}

// Reconstruct returns the rank-k approximation of raw samples in the
// original feature space: Apply → Project → Recover → Denormalize.
func (m *Model) Reconstruct(data mat.Matrix, k int) (*mat.Dense, error) {
	projected, err := m.Project(data, k)
	if err != nil {
		return nil, pcaErrorf(opReconstruct, err)
	}
	out, err := m.RecoverSamples(projected, k)
	if err != nil {
		return nil, pcaErrorf(opReconstruct, err)
	}

	return out, nil
}
