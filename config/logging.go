// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus logger writing to out with the configured level
// and formatter.
func (l Logging) NewLogger(out io.Writer) (*logrus.Logger, error) {
	level, err := l.level()
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)
	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger, nil
}

func (l Logging) level() (logrus.Level, error) {
	level, err := logrus.ParseLevel(l.Level)
	if err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}

	return level, nil
}
