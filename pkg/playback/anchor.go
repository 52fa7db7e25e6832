package playback

import "time"

// anchor is the (wall-clock time, timeline position) pair from which the
// current position is derived. Re-anchoring on every rate-affecting
// event — play start, seek, rate change, loop wrap, scheduler-mode
// switch — is what keeps the position a pure function of wall-clock time
// instead of an accumulation of per-tick deltas.
type anchor struct {
	wall time.Time
	pos  float64
}

func anchorAt(now time.Time, pos float64) anchor {
	return anchor{wall: now, pos: pos}
}

// positionAt derives the timeline position at wall time now for the
// given playback rate. The result is unclamped; callers apply duration
// handling (loop wrap or end clamp).
func (a anchor) positionAt(now time.Time, rate float64) float64 {
	return a.pos + now.Sub(a.wall).Seconds()*rate
}
