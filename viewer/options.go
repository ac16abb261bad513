// SPDX-License-Identifier: MIT

package viewer

import (
	"io"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultControls is the number of sliders created when WithControls is not given.
	DefaultControls = 20

	// DefaultUpscale is the display enlargement factor.
	DefaultUpscale = 2
)

const (
	panicControlsInvalid = "viewer: WithControls: n must be > 0"
	panicUpscaleInvalid  = "viewer: WithUpscale: factor must be ≥ 1"
	panicMappingInvalid  = "viewer: WithMapping: need 0 ≤ bias ≤ range and range > 0"
	panicShapeInvalid    = "viewer: WithShape: rows and cols must be > 0"
	panicMaxKInvalid     = "viewer: WithMaxK: k must be > 0"
)

// Option configures a Viewer.
type Option func(*options)

type options struct {
	maxK       int // 0: len(coefficients)
	controls   int
	mapping    Mapping
	upscale    int
	rows, cols int // 0: 1×F
	logger     logrus.FieldLogger
	metrics    *Metrics
}

// WithMaxK sets the K used for recovery. It must equal len(coefficients).
func WithMaxK(k int) Option {
	if k <= 0 {
		panic(panicMaxKInvalid)
	}

	return func(o *options) { o.maxK = k }
}

// WithControls caps the number of sliders; coefficients past the cap keep
// their initial value.
func WithControls(n int) Option {
	if n <= 0 {
		panic(panicControlsInvalid)
	}

	return func(o *options) { o.controls = n }
}

// WithMapping replaces the 70/140 position mapping.
func WithMapping(m Mapping) Option {
	if m.Range <= 0 || m.Bias < 0 || m.Bias > m.Range {
		panic(panicMappingInvalid)
	}

	return func(o *options) { o.mapping = m }
}

// WithUpscale sets the nearest-neighbour enlargement factor (1 disables it).
func WithUpscale(factor int) Option {
	if factor < 1 {
		panic(panicUpscaleInvalid)
	}

	return func(o *options) { o.upscale = factor }
}

// WithShape sets the image shape; rows·cols must equal the model's F.
func WithShape(rows, cols int) Option {
	if rows <= 0 || cols <= 0 {
		panic(panicShapeInvalid)
	}

	return func(o *options) { o.rows, o.cols = rows, cols }
}

// WithLogger sets the logger used for render failures.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records render latency and failures.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func gatherOptions(opts ...Option) options {
	o := options{
		controls: DefaultControls,
		mapping:  DefaultMapping(),
		upscale:  DefaultUpscale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.logger == nil {
		l := logrus.New()
		l.Out = io.Discard
		o.logger = l
	}

	return o
}
