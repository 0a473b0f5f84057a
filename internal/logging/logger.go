// Package logging wraps logrus the way the teacher's pkg/logging wraps
// its structured logger: one constructor, a small level/format config,
// fields attached per call site rather than a giant bespoke logging
// framework.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Config configures the process-wide logger.
type Config struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
}

// New builds a *logrus.Logger from cfg, defaulting to info/text when
// cfg's fields are empty.
func New(cfg Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return logger
}
