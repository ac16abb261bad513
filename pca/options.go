// SPDX-License-Identifier: MIT

// Package pca: functional configuration for normalization, decomposition and
// the Fit pipeline. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - Every option changes behavior and is covered by tests.
//   - Panic only on invalid parameters (programmer error), never on data.
package pca

import (
	"io"
	"math"

	"github.com/sirupsen/logrus"
)

// ZeroVariancePolicy selects what Normalize does with constant features.
type ZeroVariancePolicy int

const (
	// ZeroVarianceFail rejects the input with a *DegenerateFeatureError.
	ZeroVarianceFail ZeroVariancePolicy = iota

	// ZeroVarianceZero writes 0 for degenerate features and reports them in
	// Params.Degenerate. Denormalize maps them back to their mean.
	ZeroVarianceZero
)

// Solver selects the decomposition routine used by Decompose.
type Solver int

const (
	// SolverSVD factorizes the covariance with a full singular value decomposition.
	SolverSVD Solver = iota

	// SolverJacobi runs cyclic-pivot Jacobi rotations on the symmetric covariance.
	SolverJacobi
)

// String implements fmt.Stringer.
func (s Solver) String() string {
	switch s {
	case SolverSVD:
		return "svd"
	case SolverJacobi:
		return "jacobi"
	default:
		return "unknown"
	}
}

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultZeroVariance is the zero-variance policy applied by Normalize.
	DefaultZeroVariance = ZeroVarianceFail

	// DefaultSolver is the decomposition routine applied by Decompose.
	DefaultSolver = SolverSVD

	// DefaultTolerance is the Jacobi off-diagonal convergence threshold.
	DefaultTolerance = 1e-12

	// DefaultMaxSweeps caps Jacobi rotations at DefaultMaxSweeps·F² pivots.
	DefaultMaxSweeps = 100
)

const (
	panicToleranceInvalid = "pca: WithTolerance: tol must be finite and > 0"
	panicSweepsInvalid    = "pca: WithMaxSweeps: sweeps must be > 0"
	panicPolicyInvalid    = "pca: WithZeroVariance: unknown policy"
	panicSolverInvalid    = "pca: WithSolver: unknown solver"
)

// Option mutates internal options. Safe to apply repeatedly.
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	zeroVariance ZeroVariancePolicy
	solver       Solver
	tol          float64
	maxSweeps    int
	logger       logrus.FieldLogger
}

// WithZeroVariance selects the policy for constant features.
func WithZeroVariance(p ZeroVariancePolicy) Option {
	if p != ZeroVarianceFail && p != ZeroVarianceZero {
		panic(panicPolicyInvalid)
	}

	return func(o *Options) { o.zeroVariance = p }
}

// WithSolver selects the decomposition routine.
func WithSolver(s Solver) Option {
	if s != SolverSVD && s != SolverJacobi {
		panic(panicSolverInvalid)
	}

	return func(o *Options) { o.solver = s }
}

// WithTolerance sets the Jacobi convergence threshold on |A[p,q]|.
// Ignored by SolverSVD.
func WithTolerance(tol float64) Option {
	if math.IsNaN(tol) || math.IsInf(tol, 0) || tol <= 0 {
		panic(panicToleranceInvalid)
	}

	return func(o *Options) { o.tol = tol }
}

// WithMaxSweeps caps the Jacobi iteration count at sweeps·F² rotations.
// Ignored by SolverSVD.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithLogger attaches a logger for stage timings in Fit. A nil logger
// restores the default (discarding) logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *Options) { o.logger = l }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		zeroVariance: DefaultZeroVariance,
		solver:       DefaultSolver,
		tol:          DefaultTolerance,
		maxSweeps:    DefaultMaxSweeps,
	}
}

// gatherOptions applies opts over the defaults in order (last write wins).
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}

	return o
}

// discardLogger returns a logger that drops every entry.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.Out = io.Discard
	l.SetLevel(logrus.PanicLevel)

	return l
}
