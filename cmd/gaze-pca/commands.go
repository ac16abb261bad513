// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"image"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/diagnostics"
	"github.com/AndersHqst/estimating-gaze-direction/pca"
	"github.com/AndersHqst/estimating-gaze-direction/viewer"
)

// montagePerRow is the number of tiles per montage row.
const montagePerRow = 10

type analyzeCommand struct {
	app    *app
	Target float64 `short:"t" long:"target" description:"retained variance fraction in (0,1] (default: pca.target)"`
}

// Execute prints the candidate k and writes the shortfall plot.
func (c *analyzeCommand) Execute([]string) error {
	a := c.app
	if c.Target != 0 {
		a.cfg.PCA.Target = c.Target
	}
	ds, err := a.load()
	if err != nil {
		return err
	}
	model, err := a.fit(ds.samples)
	if err != nil {
		return err
	}
	report, err := pca.AnalyzeVariance(model.Basis().Values(), a.cfg.PCA.Target)
	if err != nil {
		return pkgerrors.Wrap(err, "analyze variance")
	}
	fmt.Fprintf(a.stdout, "k=%d retained=%.6f target=%g\n", report.K, report.Retained(report.K), report.Target)

	path, err := a.outputPath("retained_variance." + a.cfg.Output.Format)
	if err != nil {
		return err
	}
	if err := diagnostics.PlotRetainedVariance(report, path); err != nil {
		return err
	}
	written := []string{path}

	if _, f := ds.samples.Dims(); f == 2 {
		more, err := c.plotPoints(ds.samples, model)
		if err != nil {
			return err
		}
		written = append(written, more...)
	}
	a.logger.WithFields(logrus.Fields{"action": "analyze", "k": report.K, "files": written}).Info("analysis written")

	return nil
}

// plotPoints writes the principal-axes and rank-1 recovery plots of 2D data.
func (c *analyzeCommand) plotPoints(samples *mat.Dense, model *pca.Model) ([]string, error) {
	a := c.app
	axes, err := a.outputPath("principal_axes." + a.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	if err := diagnostics.PlotPrincipalAxes(samples, model.Params(), model.Basis(), axes); err != nil {
		return nil, err
	}

	normalized, err := model.Params().Apply(samples)
	if err != nil {
		return nil, err
	}
	projected, err := pca.Project(normalized, model.Basis(), 1)
	if err != nil {
		return nil, err
	}
	recovered, err := pca.Recover(projected, model.Basis(), 1)
	if err != nil {
		return nil, err
	}
	rec, err := a.outputPath("recovered." + a.cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	if err := diagnostics.PlotRecovered(normalized, recovered, rec); err != nil {
		return nil, err
	}

	return []string{axes, rec}, nil
}

type reconstructCommand struct {
	app *app
	K   int `short:"k" long:"k" description:"number of leading components (default: pca.k)"`
}

// Execute reports the reconstruction MSE and writes three montages.
func (c *reconstructCommand) Execute([]string) error {
	a := c.app
	if c.K != 0 {
		a.cfg.PCA.K = c.K
	}
	ds, err := a.load()
	if err != nil {
		return err
	}
	model, err := a.fit(ds.samples)
	if err != nil {
		return err
	}
	k := a.cfg.PCA.K
	if comps := model.Basis().Components(); k > comps {
		return fmt.Errorf("k=%d above %d components: %w", k, comps, pca.ErrDimensionMismatch)
	}

	start := time.Now()
	reconstructed, err := model.Reconstruct(ds.samples, k)
	if err != nil {
		return pkgerrors.Wrap(err, "reconstruct samples")
	}
	mse, err := pca.ReconstructionError(ds.samples, reconstructed)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "k=%d mse=%.6g\n", k, mse)

	m, _ := ds.samples.Dims()
	tiles := a.cfg.Output.Tiles
	if tiles > m {
		tiles = m
	}
	montages := []struct {
		name string
		rows func(i int) []float64
		n    int
	}{
		{"originals.png", func(i int) []float64 { return ds.samples.RawRowView(i) }, tiles},
		{"reconstructed.png", func(i int) []float64 { return reconstructed.RawRowView(i) }, tiles},
		{"principal_directions.png", model.Basis().Vector, k},
	}
	written := make([]string, 0, len(montages))
	for _, mt := range montages {
		path, err := a.writeMontage(mt.name, mt.n, mt.rows, ds.rows, ds.cols)
		if err != nil {
			return err
		}
		written = append(written, path)
	}
	a.logger.WithFields(logrus.Fields{
		"action": "reconstruct",
		"k":      k,
		"mse":    mse,
		"took":   time.Since(start),
		"files":  written,
	}).Info("reconstruction written")

	return nil
}

// writeMontage rescales n vectors to gray tiles and writes them as one PNG.
func (a *app) writeMontage(name string, n int, vector func(i int) []float64, rows, cols int) (string, error) {
	tiles := make([]*image.Gray, n)
	for i := 0; i < n; i++ {
		img, err := viewer.SampleImage(vector(i), rows, cols)
		if err != nil {
			return "", pkgerrors.Wrapf(err, "%s tile %d", name, i)
		}
		tiles[i] = img
	}
	montage, err := viewer.Montage(tiles, montagePerRow)
	if err != nil {
		return "", pkgerrors.Wrap(err, name)
	}

	return a.writePNG(name, montage)
}

type viewCommand struct {
	app    *app
	Sample int `long:"sample" default:"-1" description:"row index of the sample to explore (default: viewer.sample)"`
	K      int `short:"k" long:"k" description:"number of coefficients (default: pca.k)"`
}

// Execute opens the slider window for one sample and blocks until it closes.
func (c *viewCommand) Execute([]string) error {
	a := c.app
	if c.Sample >= 0 {
		a.cfg.Viewer.Sample = c.Sample
	}
	if c.K != 0 {
		a.cfg.PCA.K = c.K
	}
	ds, err := a.load()
	if err != nil {
		return err
	}
	m, _ := ds.samples.Dims()
	if a.cfg.Viewer.Sample >= m {
		return fmt.Errorf("sample %d out of range [0,%d)", a.cfg.Viewer.Sample, m)
	}
	model, err := a.fit(ds.samples)
	if err != nil {
		return err
	}
	coefficients, err := model.Project(ds.samples.Slice(a.cfg.Viewer.Sample, a.cfg.Viewer.Sample+1, 0, model.Features()), a.cfg.PCA.K)
	if err != nil {
		return pkgerrors.Wrap(err, "project sample")
	}

	surface, err := viewer.NewCVSurface(fmt.Sprintf("sample %d", a.cfg.Viewer.Sample), time.Duration(a.cfg.Viewer.PollMillis)*time.Millisecond)
	if err != nil {
		return err
	}
	defer surface.Close()

	v, err := viewer.New(surface, model, coefficients.RawRowView(0), a.viewerOptions(ds)...)
	if err != nil {
		return err
	}

	return v.Run(a.ctx)
}

func (a *app) viewerOptions(ds *dataset) []viewer.Option {
	vc := a.cfg.Viewer

	return []viewer.Option{
		viewer.WithMaxK(a.cfg.PCA.K),
		viewer.WithControls(vc.Controls),
		viewer.WithMapping(viewer.Mapping{Bias: vc.Bias, Range: vc.Range}),
		viewer.WithUpscale(vc.Upscale),
		viewer.WithShape(ds.rows, ds.cols),
		viewer.WithLogger(a.logger),
		viewer.WithMetrics(viewer.NewMetrics(a.registry)),
	}
}
