// Package logging builds the service logger: console output plus the info
// and error log files.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"

	"github.com/resume-platform/jwtauth/internal/config"
)

// New returns a logger writing to console at cfg.Level, to cfg.InfoFile for
// Info and above, and to cfg.ErrorFile for Error and above. Empty file paths
// disable that sink. The returned close function releases the files.
func New(cfg config.Logging, console io.Writer) (*logrus.Logger, func() error, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	logger := logrus.New()
	logger.SetOutput(console)
	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	var files []*os.File
	closeAll := func() error {
		var errs []error
		for _, f := range files {
			errs = append(errs, f.Close())
		}
		return errors.Join(errs...)
	}

	sinks := []struct {
		path     string
		minLevel logrus.Level
	}{
		{cfg.InfoFile, logrus.InfoLevel},
		{cfg.ErrorFile, logrus.ErrorLevel},
	}
	for _, sink := range sinks {
		if sink.path == "" {
			continue
		}
		f, err := os.OpenFile(sink.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			_ = closeAll()
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		files = append(files, f)
		logger.AddHook(&writer.Hook{
			Writer:    f,
			LogLevels: levelsFrom(sink.minLevel),
		})
	}

	return logger, closeAll, nil
}

// levelsFrom returns threshold and every more severe level.
func levelsFrom(threshold logrus.Level) []logrus.Level {
	var levels []logrus.Level
	for _, level := range logrus.AllLevels {
		if level <= threshold {
			levels = append(levels, level)
		}
	}
	return levels
}
