package playback

import "fmt"

// Status identifies the clock's transport state.
//
// State diagram:
//
//	            Play()
//	  Paused ────────────▶ Playing
//	     ▲                    │
//	     │  Pause() or        │
//	     └─ end of timeline ◀─┘
//
// Reaching the end of the timeline without looping settles back into
// [StatusPaused] with the position held at the duration; "ended" is an
// event, not a persistent status.
type Status int

const (
	// StatusPaused means the clock holds its position and no ticks are
	// scheduled. This is the initial status.
	StatusPaused Status = iota

	// StatusPlaying means the clock is advancing and ticks are scheduled.
	StatusPlaying
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusPaused:
		return "paused"
	case StatusPlaying:
		return "playing"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}
