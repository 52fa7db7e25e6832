package playback

import "fmt"

// EventKind identifies a clock event.
type EventKind int

const (
	// EventPlay fires when playback starts.
	EventPlay EventKind = iota

	// EventPaused fires when playback is paused explicitly. Reaching the
	// end of the timeline fires EventEnded instead.
	EventPaused

	// EventEnded fires once when the position reaches the duration
	// without looping, after the final time update.
	EventEnded

	// EventTimeUpdate fires on every processed tick with the new
	// position in Event.Time.
	EventTimeUpdate

	// EventBeforeSetTime fires before a seek mutates the position, with
	// the already-clamped target in Event.Time.
	EventBeforeSetTime

	// EventAfterSetTime fires after a seek has mutated the position and
	// pushed it to the store.
	EventAfterSetTime

	// EventDurationChange fires when the duration is set, with the
	// clamped value in Event.Duration.
	EventDurationChange

	// EventPlaybackRateChange fires when the rate is set, with the
	// clamped value in Event.Rate.
	EventPlaybackRateChange

	// EventVisibilityChange fires when the scheduler switches between
	// foreground and background mode, with Event.Backgrounded set.
	EventVisibilityChange
)

// String returns the wire name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPlay:
		return "play"
	case EventPaused:
		return "paused"
	case EventEnded:
		return "ended"
	case EventTimeUpdate:
		return "timeUpdate"
	case EventBeforeSetTime:
		return "beforeSetTime"
	case EventAfterSetTime:
		return "afterSetTime"
	case EventDurationChange:
		return "durationChange"
	case EventPlaybackRateChange:
		return "playbackRateChange"
	case EventVisibilityChange:
		return "visibilityChange"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is the payload delivered to listeners. Kind is always set; the
// remaining fields are populated per kind as documented on the kind
// constants.
type Event struct {
	Kind         EventKind
	Time         float64
	Duration     float64
	Rate         float64
	Backgrounded bool
}

// Listener receives clock events.
type Listener func(Event)

type listenerEntry struct {
	id int
	fn Listener
}

// On registers a listener for the given event kind. Listeners for one
// kind fire in registration order. Returns a function that can be called
// to remove the listener; removing twice is a no-op. Registering on a
// disposed clock returns a no-op remove function without registering.
func (c *Clock) On(kind EventKind, fn Listener) (remove func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return func() {}
	}
	c.nextListenerID++
	id := c.nextListenerID
	c.listeners[kind] = append(c.listeners[kind], listenerEntry{id: id, fn: fn})
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		entries := c.listeners[kind]
		for i, e := range entries {
			if e.id == id {
				c.listeners[kind] = append(entries[:i], entries[i+1:]...)
				break
			}
		}
		c.mu.Unlock()
	}
}

// emit dispatches ev to the listeners registered for its kind. The entry
// list is copied under the lock and invoked outside it, so listeners may
// re-enter the clock (seek from a time update, dispose from an ended
// handler) without deadlocking.
func (c *Clock) emit(ev Event) {
	c.mu.RLock()
	if c.disposed {
		c.mu.RUnlock()
		return
	}
	entries := c.listeners[ev.Kind]
	if len(entries) == 0 {
		c.mu.RUnlock()
		return
	}
	fns := make([]Listener, len(entries))
	for i, e := range entries {
		fns[i] = e.fn
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
