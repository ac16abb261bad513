// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"

	"github.com/AndersHqst/estimating-gaze-direction/config"
	"github.com/AndersHqst/estimating-gaze-direction/datasource"
	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// globalOptions are flags shared by every command. Non-zero values override
// the config file and environment.
type globalOptions struct {
	Config      string `short:"c" long:"config" env:"GAZE_PCA_CONFIG" description:"config file (.yaml, .yml or .json)"`
	Kind        string `long:"kind" choice:"points" choice:"images" choice:"video" description:"data source kind"`
	Source      string `short:"s" long:"source" description:"points file or image directory"`
	Output      string `short:"o" long:"output" description:"output directory for plots and montages"`
	Solver      string `long:"solver" choice:"svd" choice:"jacobi" description:"decomposition routine"`
	LogLevel    string `long:"log-level" description:"logrus level (debug, info, warn, ...)"`
	MetricsAddr string `long:"metrics-addr" description:"serve Prometheus metrics on this address"`
}

// app carries what the commands share: options, loaded config and logger.
type app struct {
	ctx    context.Context
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions

	cfg      config.Config
	logger   *logrus.Logger
	registry *prometheus.Registry
}

func newApp(ctx context.Context, stdout, stderr io.Writer) *app {
	return &app{ctx: ctx, stdout: stdout, stderr: stderr}
}

// handle runs before every command: config, logger, optional metrics server.
func (a *app) handle(cmd flags.Commander, args []string) error {
	if cmd == nil {
		return nil
	}
	if err := a.setup(); err != nil {
		return err
	}
	stopMetrics := a.serveMetrics()
	defer stopMetrics()

	return cmd.Execute(args)
}

func (a *app) setup() error {
	cfg, err := config.Load(a.opts.Config, a.applyFlags)
	if err != nil {
		return pkgerrors.Wrap(err, "load config")
	}
	logger, err := cfg.Logging.NewLogger(a.stderr)
	if err != nil {
		return pkgerrors.Wrap(err, "configure logging")
	}
	a.cfg, a.logger = cfg, logger
	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector())

	return nil
}

// applyFlags is the last configuration layer.
func (a *app) applyFlags(c *config.Config) {
	if a.opts.Kind != "" {
		c.Source.Kind = a.opts.Kind
	}
	if a.opts.Source != "" {
		c.Source.Path = a.opts.Source
	}
	if a.opts.Output != "" {
		c.Output.Dir = a.opts.Output
	}
	if a.opts.Solver != "" {
		c.PCA.Solver = a.opts.Solver
	}
	if a.opts.LogLevel != "" {
		c.Logging.Level = a.opts.LogLevel
	}
	if a.opts.MetricsAddr != "" {
		c.Metrics.Enabled = true
		c.Metrics.Addr = a.opts.MetricsAddr
	}
}

// serveMetrics starts the /metrics endpoint when enabled and returns its stop
// function.
func (a *app) serveMetrics() func() {
	if !a.cfg.Metrics.Enabled {
		return func() {}
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	log := a.logger.WithField("action", "metrics_server")
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", a.cfg.Metrics.Addr).Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

// dataset is a loaded sample matrix and the image shape of one sample.
type dataset struct {
	samples    *mat.Dense
	rows, cols int
}

// load reads samples from the configured source.
func (a *app) load() (*dataset, error) {
	src := a.cfg.Source
	log := a.logger.WithFields(logrus.Fields{"action": "load_samples", "kind": src.Kind})
	start := time.Now()

	var (
		ds  dataset
		err error
	)
	switch src.Kind {
	case config.SourcePoints:
		var delim rune
		if src.Delimiter != "" {
			delim = []rune(src.Delimiter)[0]
		}
		ds.samples, err = datasource.PointsFile{Path: src.Path, Delimiter: delim, Labeled: src.Labeled}.LoadSamples(a.ctx)
		if err == nil {
			_, f := ds.samples.Dims()
			ds.rows, ds.cols = 1, f
		}
	case config.SourceImages:
		var size image.Point
		ds.samples, size, err = datasource.ImageDir{Dir: src.Path, Limit: src.Workers, Logger: a.logger}.Load(a.ctx)
		ds.rows, ds.cols = size.Y, size.X
	case config.SourceVideo:
		files := make([]datasource.VideoFile, len(src.Videos))
		for i, v := range src.Videos {
			files[i] = datasource.VideoFile{Path: v.Path, Label: v.Label}
		}
		ds.samples, err = datasource.VideoFrames{Files: files, Width: src.Width, Height: src.Height, Step: src.Step}.LoadSamples(a.ctx)
		ds.rows, ds.cols = src.Height, src.Width
	default:
		err = fmt.Errorf("unknown source kind %q", src.Kind)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "load samples")
	}
	if a.cfg.Viewer.Rows > 0 {
		ds.rows, ds.cols = a.cfg.Viewer.Rows, a.cfg.Viewer.Cols
	}

	m, f := ds.samples.Dims()
	if ds.rows*ds.cols != f {
		return nil, fmt.Errorf("image shape %dx%d does not hold %d features", ds.rows, ds.cols, f)
	}
	log.WithFields(logrus.Fields{"samples": m, "features": f, "took": time.Since(start)}).Info("loaded samples")

	return &ds, nil
}

// fit fits the model with the configured options.
func (a *app) fit(data mat.Matrix) (*pca.Model, error) {
	opts, err := a.cfg.PCA.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, pca.WithLogger(a.logger))
	model, err := pca.Fit(data, opts...)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "fit model")
	}

	return model, nil
}

// outputPath joins name with the output directory, creating it.
func (a *app) outputPath(name string) (string, error) {
	if err := os.MkdirAll(a.cfg.Output.Dir, 0o755); err != nil {
		return "", pkgerrors.Wrap(err, "create output directory")
	}

	return filepath.Join(a.cfg.Output.Dir, name), nil
}

// writePNG encodes img into the output directory.
func (a *app) writePNG(name string, img image.Image) (string, error) {
	path, err := a.outputPath(name)
	if err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", pkgerrors.Wrap(err, "create image file")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", pkgerrors.Wrapf(err, "encode %s", name)
	}

	return path, pkgerrors.Wrapf(f.Close(), "close %s", name)
}
