// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "GAZE_PCA_"

// FromEnv overrides the values of config that have a non-empty
// GAZE_PCA_* variable and leaves the rest untouched.
func FromEnv(config *Config) error {
	if v := env("SOURCE_KIND"); v != "" {
		config.Source.Kind = v
	}
	if v := env("SOURCE_PATH"); v != "" {
		config.Source.Path = v
	}
	if v := env("SOURCE_DELIMITER"); v != "" {
		config.Source.Delimiter = v
	}
	if v := env("SOURCE_LABELED"); v != "" {
		config.Source.Labeled = enabled(v)
	}
	if err := envInt("SOURCE_WORKERS", &config.Source.Workers); err != nil {
		return err
	}

	if err := envInt("PCA_K", &config.PCA.K); err != nil {
		return err
	}
	if v := env("PCA_TARGET"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return errors.Wrapf(err, "parse %sPCA_TARGET as float", EnvPrefix)
		}
		config.PCA.Target = f
	}
	if v := env("PCA_SOLVER"); v != "" {
		config.PCA.Solver = v
	}
	if v := env("PCA_ZERO_VARIANCE"); v != "" {
		config.PCA.ZeroVariance = v
	}

	if err := envInt("VIEWER_SAMPLE", &config.Viewer.Sample); err != nil {
		return err
	}
	if err := envInt("VIEWER_CONTROLS", &config.Viewer.Controls); err != nil {
		return err
	}

	if v := env("OUTPUT_DIR"); v != "" {
		config.Output.Dir = v
	}
	if v := env("OUTPUT_FORMAT"); v != "" {
		config.Output.Format = v
	}

	if v := env("LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := env("LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}

	if v := env("METRICS_ENABLED"); v != "" {
		config.Metrics.Enabled = enabled(v)
	}
	if v := env("METRICS_ADDR"); v != "" {
		config.Metrics.Addr = v
	}

	return nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}

func envInt(name string, dst *int) error {
	v := env(name)
	if v == "" {
		return nil
	}
	asInt, err := strconv.Atoi(v)
	if err != nil {
		return errors.Wrapf(err, "parse %s%s as int", EnvPrefix, name)
	}
	*dst = asInt

	return nil
}

func enabled(value string) bool {
	switch strings.ToLower(value) {
	case "on", "enabled", "1", "true":
		return true
	default:
		return false
	}
}
