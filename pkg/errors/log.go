package errors

import (
	"github.com/sirupsen/logrus"
)

// LogHandler is a Handler that logs reported errors through logrus.
type LogHandler struct {
	// Verbose includes stack traces in the log entry.
	Verbose bool

	// Logger overrides the logrus standard logger.
	Logger *logrus.Logger
}

// Handle logs a ReelError with its operation, kind, and source as
// structured fields.
func (h *LogHandler) Handle(err *ReelError) {
	if err == nil {
		return
	}

	logger := h.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	entry := logger.WithFields(logrus.Fields{
		"op":   err.Op,
		"kind": err.Kind.String(),
	})
	if err.Source != "" {
		entry = entry.WithField("source", err.Source)
	}
	if h.Verbose && err.StackTrace != "" {
		entry = entry.WithField("stack", err.StackTrace)
	}

	entry.Error(err.Err)
}
