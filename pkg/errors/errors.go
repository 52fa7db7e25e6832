// Package errors provides structured error reporting for Reel. Failures
// on asynchronous paths — bridge connections, host callbacks, config
// loading — are wrapped in a ReelError and handed to a pluggable handler
// chain instead of being returned up a call stack that no longer exists.
//
// The playback core never imports this package: clock operations have no
// failure modes (invalid input is clamped, disposed instances no-op).
package errors

import (
	"fmt"
	"time"
)

// Kind identifies the category of an error.
type Kind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown Kind = iota
	// KindPlayback indicates a failure in playback wiring (store or
	// listener callbacks supplied by the host).
	KindPlayback
	// KindTransport indicates a remote bridge or connection error.
	KindTransport
	// KindConfig indicates a settings or project file error.
	KindConfig
	// KindHost indicates a failure in a host-provided capability.
	KindHost
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k Kind) String() string {
	switch k {
	case KindPlayback:
		return "playback"
	case KindTransport:
		return "transport"
	case KindConfig:
		return "config"
	case KindHost:
		return "host"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// ReelError is a structured error reported through the handler chain.
type ReelError struct {
	// Op is the operation that failed (e.g., "remote.Bridge.writePump").
	Op string
	// Kind categorizes the error.
	Kind Kind
	// Err is the underlying error.
	Err error
	// Source identifies the origin, if applicable (e.g., a bridge client
	// ID or a project file path).
	Source string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ReelError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s [%s] source=%s: %v", e.Op, e.Kind, e.Source, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ReelError) Unwrap() error {
	return e.Err
}

// New builds a ReelError for op with the current timestamp.
func New(op string, kind Kind, err error) *ReelError {
	return &ReelError{Op: op, Kind: kind, Err: err, Timestamp: time.Now()}
}
