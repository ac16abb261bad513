// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AndersHqst/estimating-gaze-direction/pca"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	path := writeConfig(t, "gaze.yaml", `
source:
  kind: images
  path: ./faces
pca:
  k: 100
viewer:
  rows: 32
  cols: 32
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceImages, cfg.Source.Kind)
	assert.Equal(t, "./faces", cfg.Source.Path)
	assert.Equal(t, 100, cfg.PCA.K)
	assert.Equal(t, 0.99, cfg.PCA.Target, "default kept")
	assert.Equal(t, 32, cfg.Viewer.Rows)
	assert.Equal(t, 70, cfg.Viewer.Bias, "default kept")
}

func TestLoad_JSON(t *testing.T) {
	path := writeConfig(t, "gaze.json", `{"source":{"kind":"points","path":"ex7data1.txt"},"pca":{"solver":"jacobi"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "jacobi", cfg.PCA.Solver)
}

func TestLoad_RejectsUnknownKeysAndExtensions(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.yaml", "pca:\n  kk: 3\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "bad.json", `{"nope":1}`))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "gaze.toml", "k = 3"))
	assert.ErrorContains(t, err, "unsupported config file extension")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "gaze.yml", "source:\n  kind: points\n  path: a.txt\npca:\n  k: 5\n")
	t.Setenv("GAZE_PCA_PCA_K", "7")
	t.Setenv("GAZE_PCA_SOURCE_PATH", "b.txt")
	t.Setenv("GAZE_PCA_METRICS_ENABLED", "true")
	t.Setenv("GAZE_PCA_LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.PCA.K)
	assert.Equal(t, "b.txt", cfg.Source.Path)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_OverridesWinOverEnv(t *testing.T) {
	path := writeConfig(t, "gaze.yaml", "source:\n  kind: points\n  path: a.txt\n")
	t.Setenv("GAZE_PCA_PCA_K", "7")

	cfg, err := Load(path, func(c *Config) { c.PCA.K = 9 })
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.PCA.K)

	_, err = Load(path, func(c *Config) { c.PCA.K = -1 })
	assert.ErrorContains(t, err, "pca.k")
}

func TestFromEnv_ParseErrors(t *testing.T) {
	t.Setenv("GAZE_PCA_PCA_K", "many")
	cfg := Default()
	assert.ErrorContains(t, FromEnv(&cfg), "GAZE_PCA_PCA_K")

	t.Setenv("GAZE_PCA_PCA_K", "")
	t.Setenv("GAZE_PCA_PCA_TARGET", "most")
	assert.ErrorContains(t, FromEnv(&cfg), "GAZE_PCA_PCA_TARGET")
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Source.Kind = "webcam"
	cfg.PCA.K = 0
	cfg.PCA.Target = 1.5
	cfg.PCA.Solver = "qr"
	cfg.Viewer.Bias = 200
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 6)
	assert.Contains(t, err.Error(), "source.kind")
	assert.Contains(t, err.Error(), "pca.solver")
	assert.Contains(t, err.Error(), "logging.level")
}

func TestValidate_Video(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Source.Kind = SourceVideo
	assert.ErrorContains(t, cfg.Validate(), "source.videos")

	cfg.Source.Videos = []Video{{Path: "left.mov", Label: -1}, {Path: "right.mov", Label: 1}}
	assert.NoError(t, cfg.Validate())

	cfg.Viewer.Rows = 28
	assert.ErrorContains(t, cfg.Validate(), "viewer.rows")
}

func TestPCAOptions(t *testing.T) {
	t.Parallel()

	opts, err := PCA{Solver: "Jacobi", ZeroVariance: "zero"}.Options()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	_, err = PCA{ZeroVariance: "ignore"}.Options()
	assert.Error(t, err)

	// The translated options select the solver: Jacobi fits the same model.
	opts, err = PCA{Solver: "jacobi"}.Options()
	require.NoError(t, err)
	_, err = pca.Fit(pcaFixture(), opts...)
	assert.NoError(t, err)
}

func TestLogging_NewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger, err := Logging{Level: "debug", Format: "json"}.NewLogger(&buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("action", "test").Debug("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	_, err = Logging{Level: "chatty"}.NewLogger(&buf)
	assert.Error(t, err)
}
