// SPDX-License-Identifier: MIT

// Package config holds the gaze-pca settings. Values are layered in this
// order, later layers winning: defaults, config file, GAZE_PCA_* environment
// variables, command line flags (applied by the CLI).
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

// Source kinds.
const (
	SourcePoints = "points"
	SourceImages = "images"
	SourceVideo  = "video"
)

// Config is the full application configuration.
type Config struct {
	Source  Source  `json:"source" yaml:"source"`
	PCA     PCA     `json:"pca" yaml:"pca"`
	Viewer  Viewer  `json:"viewer" yaml:"viewer"`
	Output  Output  `json:"output" yaml:"output"`
	Logging Logging `json:"logging" yaml:"logging"`
	Metrics Metrics `json:"metrics" yaml:"metrics"`
}

// Source selects and parameterizes the data source.
type Source struct {
	Kind      string  `json:"kind" yaml:"kind"`
	Path      string  `json:"path" yaml:"path"`
	Delimiter string  `json:"delimiter" yaml:"delimiter"`
	Labeled   bool    `json:"labeled" yaml:"labeled"`
	Workers   int     `json:"workers" yaml:"workers"`
	Videos    []Video `json:"videos" yaml:"videos"`
	Width     int     `json:"width" yaml:"width"`
	Height    int     `json:"height" yaml:"height"`
	Step      int     `json:"step" yaml:"step"`
}

// Video is one labeled eye video.
type Video struct {
	Path  string  `json:"path" yaml:"path"`
	Label float64 `json:"label" yaml:"label"`
}

// PCA configures the fit.
type PCA struct {
	K            int     `json:"k" yaml:"k"`
	Target       float64 `json:"target" yaml:"target"`
	Solver       string  `json:"solver" yaml:"solver"`
	ZeroVariance string  `json:"zeroVariance" yaml:"zeroVariance"`
}

// Viewer configures the interactive viewer.
type Viewer struct {
	Sample     int `json:"sample" yaml:"sample"`
	Controls   int `json:"controls" yaml:"controls"`
	Bias       int `json:"bias" yaml:"bias"`
	Range      int `json:"range" yaml:"range"`
	Upscale    int `json:"upscale" yaml:"upscale"`
	Rows       int `json:"rows" yaml:"rows"`
	Cols       int `json:"cols" yaml:"cols"`
	PollMillis int `json:"pollMillis" yaml:"pollMillis"`
}

// Output configures where plots and montages go.
type Output struct {
	Dir    string `json:"dir" yaml:"dir"`
	Format string `json:"format" yaml:"format"`
	Tiles  int    `json:"tiles" yaml:"tiles"`
}

// Logging configures logrus.
type Logging struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// Metrics configures the optional Prometheus endpoint.
type Metrics struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Addr    string `json:"addr" yaml:"addr"`
}

// Default returns the built-in configuration: the 28×42 eye images with
// K=20 and 20 sliders.
func Default() Config {
	return Config{
		Source: Source{Kind: SourcePoints, Width: 42, Height: 28, Step: 1},
		PCA:    PCA{K: 20, Target: 0.99, Solver: "svd", ZeroVariance: "fail"},
		Viewer: Viewer{
			Controls:   20,
			Bias:       70,
			Range:      140,
			Upscale:    2,
			PollMillis: 10,
		},
		Output:  Output{Dir: "out", Format: "png", Tiles: 100},
		Logging: Logging{Level: "info", Format: "text"},
		Metrics: Metrics{Addr: ":9090"},
	}
}

// Load returns Default overlaid with the file at path (if non-empty), the
// environment and then every override in order, validated last.
func Load(path string, overrides ...func(*Config)) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "read config file")
		}
		if err := parseConfigFile(raw, path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := FromEnv(&cfg); err != nil {
		return cfg, err
	}
	for _, override := range overrides {
		override(&cfg)
	}

	return cfg, cfg.Validate()
}

// parseConfigFile decodes raw over cfg; the format follows the extension.
// Unknown keys are rejected.
func parseConfigFile(raw []byte, name string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return errors.Wrap(err, "unmarshal json config file")
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return errors.Wrap(err, "unmarshal yaml config file")
		}
	default:
		return fmt.Errorf("unsupported config file extension %q, use .yaml, .yml or .json", ext)
	}

	return nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var result *multierror.Error
	add := func(format string, args ...interface{}) {
		result = multierror.Append(result, fmt.Errorf(format, args...))
	}

	switch c.Source.Kind {
	case SourcePoints, SourceImages:
		if c.Source.Path == "" {
			add("source.path is required for kind %q", c.Source.Kind)
		}
	case SourceVideo:
		if len(c.Source.Videos) == 0 {
			add("source.videos is required for kind %q", c.Source.Kind)
		}
		if c.Source.Width <= 0 || c.Source.Height <= 0 {
			add("source.width and source.height must be > 0 for video, got %dx%d", c.Source.Width, c.Source.Height)
		}
	default:
		add("source.kind must be one of %q, %q, %q, got %q", SourcePoints, SourceImages, SourceVideo, c.Source.Kind)
	}
	if len([]rune(c.Source.Delimiter)) > 1 {
		add("source.delimiter must be a single character, got %q", c.Source.Delimiter)
	}
	if c.Source.Workers < 0 {
		add("source.workers must be ≥ 0, got %d", c.Source.Workers)
	}

	if c.PCA.K <= 0 {
		add("pca.k must be > 0, got %d", c.PCA.K)
	}
	if !(c.PCA.Target > 0 && c.PCA.Target <= 1) {
		add("pca.target must be in (0,1], got %v", c.PCA.Target)
	}
	if _, err := c.PCA.solver(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.PCA.zeroVariance(); err != nil {
		result = multierror.Append(result, err)
	}

	if c.Viewer.Sample < 0 {
		add("viewer.sample must be ≥ 0, got %d", c.Viewer.Sample)
	}
	if c.Viewer.Controls <= 0 {
		add("viewer.controls must be > 0, got %d", c.Viewer.Controls)
	}
	if c.Viewer.Range <= 0 || c.Viewer.Bias < 0 || c.Viewer.Bias > c.Viewer.Range {
		add("viewer.bias/range must satisfy 0 ≤ bias ≤ range, range > 0, got %d/%d", c.Viewer.Bias, c.Viewer.Range)
	}
	if c.Viewer.Upscale < 1 {
		add("viewer.upscale must be ≥ 1, got %d", c.Viewer.Upscale)
	}
	if (c.Viewer.Rows == 0) != (c.Viewer.Cols == 0) || c.Viewer.Rows < 0 || c.Viewer.Cols < 0 {
		add("viewer.rows and viewer.cols must both be set (> 0) or both be 0, got %dx%d", c.Viewer.Rows, c.Viewer.Cols)
	}

	if c.Output.Dir == "" {
		add("output.dir is required")
	}
	switch c.Output.Format {
	case "png", "svg", "pdf", "jpg", "jpeg":
	default:
		add("output.format must be png, svg, pdf or jpg, got %q", c.Output.Format)
	}
	if c.Output.Tiles <= 0 {
		add("output.tiles must be > 0, got %d", c.Output.Tiles)
	}

	if _, err := c.Logging.level(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		add("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		add("metrics.addr is required when metrics are enabled")
	}

	return result.ErrorOrNil()
}

// Options translates the section into pca options.
func (p PCA) Options() ([]pca.Option, error) {
	s, err := p.solver()
	if err != nil {
		return nil, err
	}
	z, err := p.zeroVariance()
	if err != nil {
		return nil, err
	}

	return []pca.Option{pca.WithSolver(s), pca.WithZeroVariance(z)}, nil
}

func (p PCA) solver() (pca.Solver, error) {
	switch strings.ToLower(p.Solver) {
	case "", "svd":
		return pca.SolverSVD, nil
	case "jacobi":
		return pca.SolverJacobi, nil
	default:
		return 0, fmt.Errorf("pca.solver must be svd or jacobi, got %q", p.Solver)
	}
}

func (p PCA) zeroVariance() (pca.ZeroVariancePolicy, error) {
	switch strings.ToLower(p.ZeroVariance) {
	case "", "fail":
		return pca.ZeroVarianceFail, nil
	case "zero":
		return pca.ZeroVarianceZero, nil
	default:
		return 0, fmt.Errorf("pca.zeroVariance must be fail or zero, got %q", p.ZeroVariance)
	}
}
