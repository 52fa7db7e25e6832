package remote

import (
	"github.com/openreelio/reel/pkg/playback"
	"github.com/openreelio/reel/pkg/state"
)

// Outbound message types.
const (
	MessageState = "state"
	MessageEvent = "event"
)

// Message is an outbound frame. Exactly one of State and Event is set,
// selected by Type.
type Message struct {
	Type  string          `json:"type"`
	State *state.Snapshot `json:"state,omitempty"`
	Event *EventPayload   `json:"event,omitempty"`
}

// EventPayload mirrors a clock event onto the wire. Kind uses the
// event's wire name (play, paused, timeUpdate, ...).
type EventPayload struct {
	Kind         string  `json:"kind"`
	Time         float64 `json:"time,omitempty"`
	Duration     float64 `json:"duration,omitempty"`
	Rate         float64 `json:"rate,omitempty"`
	Backgrounded bool    `json:"backgrounded,omitempty"`
}

func eventPayload(ev playback.Event) *EventPayload {
	return &EventPayload{
		Kind:         ev.Kind.String(),
		Time:         ev.Time,
		Duration:     ev.Duration,
		Rate:         ev.Rate,
		Backgrounded: ev.Backgrounded,
	}
}
