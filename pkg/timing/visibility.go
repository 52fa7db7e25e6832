package timing

import "sync"

// VisibilitySource reports whether the host surface is visible and
// notifies handlers on transitions. The playback clock uses it to choose
// between frame-synced and timer-based scheduling.
type VisibilitySource interface {
	Visible() bool
	AddHandler(fn func(visible bool)) (remove func())
}

// Visibility is the concrete VisibilitySource hosts feed. It starts
// visible; the host pushes transitions through Set. Same-state updates
// are dropped without notifying handlers.
type Visibility struct {
	mu       sync.RWMutex
	visible  bool
	nextID   int
	handlers []visibilityHandler
}

type visibilityHandler struct {
	id int
	fn func(visible bool)
}

// NewVisibility creates a Visibility in the visible state.
func NewVisibility() *Visibility {
	return &Visibility{visible: true}
}

// Visible returns the current state.
func (v *Visibility) Visible() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.visible
}

// AddHandler registers a handler to be called on visibility changes.
// Returns a function that can be called to remove the handler.
func (v *Visibility) AddHandler(fn func(visible bool)) (remove func()) {
	v.mu.Lock()
	v.nextID++
	id := v.nextID
	v.handlers = append(v.handlers, visibilityHandler{id: id, fn: fn})
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		for i, h := range v.handlers {
			if h.id == id {
				v.handlers = append(v.handlers[:i], v.handlers[i+1:]...)
				break
			}
		}
		v.mu.Unlock()
	}
}

// Set updates the state and notifies handlers in registration order.
// Setting the current state again is a no-op.
func (v *Visibility) Set(visible bool) {
	v.mu.Lock()
	if v.visible == visible {
		v.mu.Unlock()
		return
	}
	v.visible = visible
	// Copy so handlers run outside the lock.
	handlers := make([]visibilityHandler, len(v.handlers))
	copy(handlers, v.handlers)
	v.mu.Unlock()

	for _, h := range handlers {
		h.fn(visible)
	}
}
