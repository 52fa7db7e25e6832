package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Handler receives errors reported by Reel components.
type Handler interface {
	Handle(err *ReelError)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(err *ReelError)

// Handle calls the function.
func (f HandlerFunc) Handle(err *ReelError) { f(err) }

var (
	handlerMu sync.RWMutex
	handlers  = []Handler{&LogHandler{}}
)

// SetHandler replaces the handler chain with a single handler.
// Pass nil to restore the default LogHandler.
func SetHandler(h Handler) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	if h == nil {
		handlers = []Handler{&LogHandler{}}
	} else {
		handlers = []Handler{h}
	}
}

// AddHandler appends a handler to the chain. Handlers run in the order
// they were added.
func AddHandler(h Handler) {
	if h == nil {
		return
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	handlers = append(handlers, h)
}

func currentHandlers() []Handler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	hs := make([]Handler, len(handlers))
	copy(hs, handlers)
	return hs
}

// Report sends an error through the handler chain.
// If err.Timestamp is zero, it is set to the current time.
func Report(err *ReelError) {
	if err == nil {
		return
	}
	if err.Timestamp.IsZero() {
		err.Timestamp = time.Now()
	}
	for _, h := range currentHandlers() {
		h.Handle(err)
	}
}

// Recover is a helper for deferred panic recovery on goroutine
// boundaries (bridge read/write pumps, host callbacks).
// Usage: defer errors.Recover("remote.Bridge.readPump")
func Recover(op string) {
	if r := recover(); r != nil {
		Report(&ReelError{
			Op:         op,
			Kind:       KindPanic,
			Err:        &panicValue{value: r},
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
	}
}

// RecoverWithCallback is like Recover but also calls the provided
// callback with the panic value after reporting it.
func RecoverWithCallback(op string, callback func(r any)) {
	if r := recover(); r != nil {
		Report(&ReelError{
			Op:         op,
			Kind:       KindPanic,
			Err:        &panicValue{value: r},
			StackTrace: CaptureStack(),
			Timestamp:  time.Now(),
		})
		if callback != nil {
			callback(r)
		}
	}
}

// panicValue wraps a recovered panic value as an error.
type panicValue struct {
	value any
}

func (p *panicValue) Error() string {
	if err, ok := p.value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("panic: %v", p.value)
}

// CaptureStack returns the current goroutine's stack trace, trimmed of
// the capture frames themselves.
func CaptureStack() string {
	buf := make([]byte, 16*1024)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])

	lines := strings.Split(stack, "\n")
	if len(lines) > 5 {
		// Drop the goroutine header plus the two capture frames.
		return lines[0] + "\n" + strings.Join(lines[5:], "\n")
	}
	return stack
}
