// Package timing provides the time capabilities consumed by the playback
// clock: a monotonic clock, a frame-synchronized tick source, a one-shot
// wall timer source, and a visibility signal.
//
// # Capabilities
//
//   - [Clock]: monotonic now. Production code uses [System]; tests use
//     [ManualClock] to control time explicitly.
//
//   - [FrameSource]: one-shot callbacks aligned with the host's frame
//     pump. [FramePump] is the production implementation for Go hosts
//     that own a render loop; it doubles as a manual frame driver in
//     tests.
//
//   - [TimerSource]: one-shot callbacks after a wall-clock delay.
//     [SystemTimers] wraps the runtime timer; [ManualClock.Timers]
//     returns a source fired deterministically by [ManualClock.Advance].
//
//   - [VisibilitySource]: an observable foreground/background flag the
//     host feeds through [Visibility.Set].
//
// All capabilities are plain interfaces so hosts can substitute their
// own scheduling primitives without touching the clock core.
package timing

import "time"

// Clock provides monotonic time. The default implementation uses system
// time. Tests can inject a manual clock to control playback timing
// deterministically.
type Clock interface {
	Now() time.Time
}

// systemClock uses system time.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the system-time Clock.
func System() Clock { return systemClock{} }
