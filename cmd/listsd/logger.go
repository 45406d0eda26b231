package main

import (
	"io"
	"os"

	"github.com/mdouchement/lists/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// setupLogger configures the global logger.
// When a file is configured, logs are written both to stderr and to the rotated file.
func setupLogger(c config.Log) (io.Closer, error) {
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse log level")
	}
	logrus.SetLevel(level)

	switch c.Format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	if c.File == "" {
		logrus.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	rotated := &lumberjack.Logger{
		Filename:   c.File,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
	logrus.SetOutput(io.MultiWriter(os.Stderr, rotated))
	return rotated, nil
}
