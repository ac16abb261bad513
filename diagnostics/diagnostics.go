// SPDX-License-Identifier: MIT

// Package diagnostics draws the plots a user inspects while choosing k:
// the retained-variance shortfall curve and, for 2D point data, the principal
// axes and the rank-1 reconstruction. Plots are written headlessly; the
// output format follows the file extension (.png, .svg, .pdf, ...).
package diagnostics

import (
	"errors"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

var (
	// ErrNilInput is returned for a nil report, matrix, params or basis.
	ErrNilInput = errors.New("diagnostics: nil input")

	// ErrNotTwoDimensional is returned by the point plots for F ≠ 2.
	ErrNotTwoDimensional = errors.New("diagnostics: point plots need exactly 2 features")

	// ErrShapeMismatch is returned when two matrices that are drawn together
	// differ in shape.
	ErrShapeMismatch = errors.New("diagnostics: shape mismatch")
)

// Figure size.
const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

// AxisScale stretches the principal axes drawn by PlotPrincipalAxes.
const AxisScale = 1.5

var (
	blue  = color.RGBA{B: 200, A: 255}
	red   = color.RGBA{R: 200, A: 255}
	black = color.RGBA{A: 255}
	gray  = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// PlotRetainedVariance plots the shortfall 1 − retained(k) against k with
// 'x' glyphs and a dashed line at the accepted shortfall 1 − target.
func PlotRetainedVariance(report *pca.VarianceReport, path string) error {
	if report == nil || len(report.Shortfall) == 0 {
		return fmt.Errorf("PlotRetainedVariance: %w", ErrNilInput)
	}

	pts := make(plotter.XYs, len(report.Shortfall))
	for i, s := range report.Shortfall {
		pts[i].X = float64(i + 1)
		pts[i].Y = s
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Variance not retained (target %.3g, k=%d)", report.Target, report.K)
	p.X.Label.Text = "k"
	p.Y.Label.Text = "1 - retained"

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("PlotRetainedVariance: %w", err)
	}
	sc.GlyphStyle.Shape = draw.CrossGlyph{}
	sc.GlyphStyle.Color = blue

	limit, err := plotter.NewLine(plotter.XYs{
		{X: 1, Y: 1 - report.Target},
		{X: float64(len(report.Shortfall)), Y: 1 - report.Target},
	})
	if err != nil {
		return fmt.Errorf("PlotRetainedVariance: %w", err)
	}
	limit.LineStyle.Color = gray
	limit.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(sc, limit)
	p.Legend.Add("shortfall", sc)
	p.Legend.Add("target", limit)

	return save(p, "PlotRetainedVariance", path)
}

// PlotPrincipalAxes scatters 2D raw samples and draws the first two
// principal directions from the feature mean, each scaled by AxisScale times
// its singular value.
func PlotPrincipalAxes(data mat.Matrix, params *pca.Params, basis *pca.Basis, path string) error {
	const op = "PlotPrincipalAxes"
	if data == nil || params == nil || basis == nil {
		return fmt.Errorf("%s: %w", op, ErrNilInput)
	}
	if _, c := data.Dims(); c != 2 || basis.Features() != 2 || params.Features() != 2 {
		return fmt.Errorf("%s: %w", op, ErrNotTwoDimensional)
	}

	p := plot.New()
	p.Title.Text = "Samples and principal axes"
	p.X.Label.Text = "x1"
	p.Y.Label.Text = "x2"

	sc, err := plotter.NewScatter(matrixXYs(data))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	sc.GlyphStyle.Shape = draw.RingGlyph{}
	sc.GlyphStyle.Color = blue
	p.Add(sc)

	values := basis.Values()
	for i := 0; i < basis.Components() && i < 2; i++ {
		u := basis.Vector(i)
		axis, err := plotter.NewLine(plotter.XYs{
			{X: params.Mean[0], Y: params.Mean[1]},
			{X: params.Mean[0] + AxisScale*values[i]*u[0], Y: params.Mean[1] + AxisScale*values[i]*u[1]},
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		axis.LineStyle.Color = black
		axis.LineStyle.Width = vg.Points(1.5)
		p.Add(axis)
	}

	return save(p, op, path)
}

// PlotRecovered scatters the reconstruction of 2D normalized samples and
// links every normalized sample to its reconstruction.
func PlotRecovered(normalized, recovered mat.Matrix, path string) error {
	const op = "PlotRecovered"
	if normalized == nil || recovered == nil {
		return fmt.Errorf("%s: %w", op, ErrNilInput)
	}
	nr, nc := normalized.Dims()
	rr, rc := recovered.Dims()
	if nc != 2 || rc != 2 {
		return fmt.Errorf("%s: %w", op, ErrNotTwoDimensional)
	}
	if nr != rr {
		return fmt.Errorf("%s: %d vs %d samples: %w", op, nr, rr, ErrShapeMismatch)
	}

	p := plot.New()
	p.Title.Text = "Recovered samples"
	p.X.Label.Text = "z1"
	p.Y.Label.Text = "z2"

	orig, err := plotter.NewScatter(matrixXYs(normalized))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	orig.GlyphStyle.Shape = draw.RingGlyph{}
	orig.GlyphStyle.Color = blue

	rec, err := plotter.NewScatter(matrixXYs(recovered))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rec.GlyphStyle.Shape = draw.CircleGlyph{}
	rec.GlyphStyle.Color = red
	p.Add(orig, rec)

	for i := 0; i < nr; i++ {
		seg, err := plotter.NewLine(plotter.XYs{
			{X: normalized.At(i, 0), Y: normalized.At(i, 1)},
			{X: recovered.At(i, 0), Y: recovered.At(i, 1)},
		})
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		seg.LineStyle.Color = gray
		p.Add(seg)
	}
	p.Legend.Add("normalized", orig)
	p.Legend.Add("recovered", rec)

	return save(p, op, path)
}

func matrixXYs(m mat.Matrix) plotter.XYs {
	r, _ := m.Dims()
	pts := make(plotter.XYs, r)
	for i := range pts {
		pts[i].X = m.At(i, 0)
		pts[i].Y = m.At(i, 1)
	}

	return pts
}

func save(p *plot.Plot, op, path string) error {
	if err := p.Save(plotWidth, plotHeight, path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
