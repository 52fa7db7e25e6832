// Package log is a thin logrus façade for Reel's command surface and
// bridge. Emissions are discarded until Setup enables them, so library
// consumers that never configure logging stay silent.
package log

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// enabled gates all emissions for the active process.
var enabled bool

// Options configures the logging backend.
type Options struct {
	// Level is a logrus level name (panic..trace). Unparseable values
	// fall back to info.
	Level string

	// JSON switches the formatter from text to JSON.
	JSON bool

	// File appends log output to the given path instead of stderr.
	// Requires Fs.
	File string

	// Fs opens the log file. Ignored when File is empty.
	Fs afero.Fs
}

// Setup configures logrus and enables the proxies below.
func Setup(opts Options) error {
	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{})
	}

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)

	if opts.File != "" {
		if opts.Fs == nil {
			return fmt.Errorf("log file %q requested without a filesystem", opts.File)
		}
		f, err := opts.Fs.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logrus.SetOutput(f)
	}

	enabled = true
	return nil
}

// Enabled reports whether Setup has been called.
func Enabled() bool { return enabled }

// Severity proxies. Each forwards to logrus when logging is enabled.

func Error(args ...any) {
	if enabled {
		logrus.Error(args...)
	}
}

func Errorf(format string, args ...any) {
	if enabled {
		logrus.Errorf(format, args...)
	}
}

func Warn(args ...any) {
	if enabled {
		logrus.Warn(args...)
	}
}

func Warnf(format string, args ...any) {
	if enabled {
		logrus.Warnf(format, args...)
	}
}

func Info(args ...any) {
	if enabled {
		logrus.Info(args...)
	}
}

func Infof(format string, args ...any) {
	if enabled {
		logrus.Infof(format, args...)
	}
}

func Debug(args ...any) {
	if enabled {
		logrus.Debug(args...)
	}
}

func Debugf(format string, args ...any) {
	if enabled {
		logrus.Debugf(format, args...)
	}
}

// WithFields returns a structured entry when enabled, or a discarding
// entry otherwise.
func WithFields(fields map[string]any) *logrus.Entry {
	if !enabled {
		discard := logrus.New()
		discard.SetOutput(nopWriter{})
		return logrus.NewEntry(discard)
	}
	return logrus.WithFields(logrus.Fields(fields))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
