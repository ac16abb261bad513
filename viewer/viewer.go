// SPDX-License-Identifier: MIT
// Package: viewer
//
// State machine:
//   - Idle: constructed, no frame yet (only observable if the first render fails).
//   - Rendering: at least one frame shown; every control change re-renders.
//
// Concurrency:
//   - Render holds v.mu for the whole recover → show sequence, so renders never
//     overlap even if a surface delivers callbacks from several goroutines.

package viewer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// State is the viewer lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRendering
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == StateRendering {
		return "rendering"
	}

	return "idle"
}

// Viewer renders the rank-K reconstruction of one sample whose coefficients
// are driven by surface controls.
type Viewer struct {
	surface Surface
	model   *pca.Model
	k       int
	rows    int
	cols    int
	mapping Mapping
	upscale int
	log     logrus.FieldLogger
	metrics *Metrics

	mu       sync.Mutex
	coeffs   []float64
	controls []Control
	frame    image.Image
	state    State
}

// New creates one control per leading coefficient (at most WithControls) and
// performs the first render.
//
// Errors:
//   - ErrNilSurface, ErrNilModel, ErrNoControls.
//   - pca.ErrDimensionMismatch when len(coefficients) differs from WithMaxK
//     or exceeds the model's component count.
//   - ErrInvalidShape when rows·cols ≠ F.
//   - any error from the surface or from the first render.
func New(surface Surface, model *pca.Model, coefficients []float64, opts ...Option) (*Viewer, error) {
	if surface == nil {
		return nil, viewerErrorf("New", ErrNilSurface)
	}
	if model == nil {
		return nil, viewerErrorf("New", ErrNilModel)
	}
	if len(coefficients) == 0 {
		return nil, viewerErrorf("New", ErrNoControls)
	}
	o := gatherOptions(opts...)

	k := len(coefficients)
	if o.maxK != 0 && o.maxK != k {
		return nil, viewerErrorf("New", fmt.Errorf("%d coefficients for K=%d: %w", k, o.maxK, pca.ErrDimensionMismatch))
	}
	if k > model.Basis().Components() {
		return nil, viewerErrorf("New", fmt.Errorf("K=%d above %d components: %w", k, model.Basis().Components(), pca.ErrDimensionMismatch))
	}
	rows, cols := o.rows, o.cols
	if rows == 0 {
		rows, cols = 1, model.Features()
	}
	if rows*cols != model.Features() {
		return nil, viewerErrorf("New", fmt.Errorf("%dx%d for %d features: %w", rows, cols, model.Features(), ErrInvalidShape))
	}

	v := &Viewer{
		surface: surface,
		model:   model,
		k:       k,
		rows:    rows,
		cols:    cols,
		mapping: o.mapping,
		upscale: o.upscale,
		log:     o.logger.WithField("action", "pca_viewer"),
		metrics: o.metrics,
		coeffs:  append([]float64(nil), coefficients...),
	}

	n := o.controls
	if n > k {
		n = k
	}
	v.controls = make([]Control, n)
	for i := 0; i < n; i++ {
		c, err := surface.NewControl(fmt.Sprintf("coefficient %d", i), v.mapping.ToPosition(coefficients[i]), v.mapping.Range, v.onChange)
		if err != nil {
			return nil, viewerErrorf("New", err)
		}
		v.controls[i] = c
	}

	if err := v.Render(); err != nil {
		return nil, viewerErrorf("New", err)
	}

	return v, nil
}

// onChange is the callback shared by every control.
func (v *Viewer) onChange(int) {
	// Render already logged and counted the failure.
	_ = v.Render()
}

// Render reads every control, reconstructs the sample and shows it.
// On failure the previous frame stays displayed and the error is logged,
// counted and returned.
func (v *Viewer) Render() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	start := time.Now()
	for i, c := range v.controls {
		v.coeffs[i] = v.mapping.ToCoefficient(c.Position())
	}

	img, err := v.render()
	if err == nil {
		err = v.surface.Show(img)
	}
	if err != nil {
		v.metrics.renderFailed()
		v.log.WithError(err).WithField("state", v.state.String()).
			Warn("render failed, keeping previous frame")

		return err
	}

	v.frame = img
	v.state = StateRendering
	took := time.Since(start)
	v.metrics.observeRender(took)
	v.log.WithField("took", took).Debug("rendered frame")

	return nil
}

// render runs recover → denormalize → rescale → reshape → upscale.
func (v *Viewer) render() (image.Image, error) {
	projected := mat.NewDense(1, v.k, append([]float64(nil), v.coeffs...))
	recovered, err := v.model.RecoverSamples(projected, v.k)
	if err != nil {
		return nil, err
	}
	gray, err := SampleImage(recovered.RawRowView(0), v.rows, v.cols)
	if err != nil {
		return nil, err
	}

	return Upscale(gray, v.upscale), nil
}

// Run blocks in the surface event loop until the user quits or ctx is
// cancelled. Cancellation is a normal exit and returns nil.
func (v *Viewer) Run(ctx context.Context) error {
	for {
		more, err := v.surface.Wait(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return viewerErrorf("Run", err)
		}
		if !more {
			return nil
		}
	}
}

// Frame returns the last successfully rendered image (nil while Idle).
func (v *Viewer) Frame() image.Image {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.frame
}

// Coefficients returns a copy of the K signed coefficients of the last render.
func (v *Viewer) Coefficients() []float64 {
	v.mu.Lock()
	defer v.mu.Unlock()

	return append([]float64(nil), v.coeffs...)
}

// State returns the lifecycle state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.state
}

// Controls returns the number of surface controls.
func (v *Viewer) Controls() int { return len(v.controls) }

// K returns the number of coefficients used for recovery.
func (v *Viewer) K() int { return v.k }
