// Package playback provides a drift-free playback clock for timeline
// hosts: video previews, editors, and headless render services.
//
// The clock keeps an accurate timeline position while the host's timing
// guarantees change underneath it. Position is never accumulated from
// per-tick deltas; it is recomputed from a time anchor (a wall-clock
// timestamp paired with the timeline position captured at the last
// rate-affecting transition), so any number of ticks between two anchor
// events yields the same final position as a single large tick.
//
// # Core Types
//
// Clock is the playback state machine. It owns the current time,
// duration, playback rate, and loop flag, and schedules its own ticks.
//
//	clk := playback.New(playback.Options{Duration: 12.5})
//	clk.On(playback.EventTimeUpdate, func(ev playback.Event) {
//	    render(ev.Time)
//	})
//	clk.Play()
//
// # Scheduling
//
// While the host surface is visible the clock ticks on a
// frame-synchronized source; when the host reports the surface as
// backgrounded it switches to a fixed-interval wall timer that is not
// subject to frame throttling. The switch re-anchors the position so the
// handoff is seamless. Both sources keep at most one outstanding
// scheduling handle.
//
// Optional target-rate throttling (Options.TargetFPS) processes ticks at
// a reduced cadence, records dropped frames, and estimates the effective
// frame rate over a sliding window. Skipped ticks are pure pass-throughs:
// no state changes, no events.
//
// # Environment
//
// The clock never touches ambient time. Its capabilities — monotonic
// clock, frame source, timer source, visibility signal — come from
// [github.com/openreelio/reel/pkg/timing] and are injectable, so tests
// drive the clock with manual time.
//
// # Errors
//
// Operations never fail: invalid numeric inputs are sanitized by
// clamping, and every operation on a disposed clock is a silent no-op.
package playback
