package playback

import (
	"math"
	"time"
)

const (
	// defaultMaxFrameSkip caps the processed delta after a stall to this
	// many target intervals, so one late tick cannot advance the
	// timeline by the whole stall.
	defaultMaxFrameSkip = 4

	// fpsWindowSize is the number of processed tick timestamps kept for
	// the rolling frame-rate estimate.
	fpsWindowSize = 30
)

// frameThrottle gates tick processing to a target rate and tracks frame
// pacing. With interval zero it admits every tick and only records
// statistics.
type frameThrottle struct {
	interval      time.Duration
	maxSkip       int
	lastProcessed time.Time
	processed     uint64
	dropped       uint64
	window        []time.Time
	lastDelta     time.Duration
	fps           float64
}

func newFrameThrottle(targetFPS float64) frameThrottle {
	t := frameThrottle{maxSkip: defaultMaxFrameSkip}
	if targetFPS > 0 && !math.IsNaN(targetFPS) && !math.IsInf(targetFPS, 0) {
		t.interval = time.Duration(float64(time.Second) / targetFPS)
	}
	return t
}

func (t *frameThrottle) enabled() bool { return t.interval > 0 }

// admit decides whether a tick observed at now is processed. The
// returned delta is the wall time since the last processed tick, capped
// to maxSkip target intervals when gating is enabled. Skipped ticks
// leave all pacing state untouched.
func (t *frameThrottle) admit(now time.Time) (delta time.Duration, process bool) {
	if t.lastProcessed.IsZero() {
		t.record(now, 0)
		return 0, true
	}
	delta = now.Sub(t.lastProcessed)
	if t.interval <= 0 {
		t.record(now, delta)
		return delta, true
	}
	if delta < t.interval {
		return 0, false
	}
	framesElapsed := int(delta / t.interval)
	if framesElapsed > 1 {
		t.dropped += uint64(framesElapsed - 1)
	}
	if limit := t.interval * time.Duration(t.maxSkip); delta > limit {
		delta = limit
	}
	t.record(now, delta)
	return delta, true
}

func (t *frameThrottle) record(now time.Time, delta time.Duration) {
	t.processed++
	t.lastDelta = delta
	t.lastProcessed = now
	t.window = append(t.window, now)
	if len(t.window) > fpsWindowSize {
		t.window = t.window[1:]
	}
	if len(t.window) >= 2 {
		span := t.window[len(t.window)-1].Sub(t.window[0]).Seconds()
		if span > 0 {
			t.fps = float64(len(t.window)-1) / span
		}
	}
}

// reset clears per-session pacing state while keeping the cumulative
// processed and dropped counters. Called when playback starts so the
// first tick of a session is not charged for the pause before it.
func (t *frameThrottle) reset() {
	t.lastProcessed = time.Time{}
	t.window = t.window[:0]
	t.lastDelta = 0
	t.fps = 0
}

func (t *frameThrottle) stats() FrameStats {
	return FrameStats{
		ProcessedFrames: t.processed,
		DroppedFrames:   t.dropped,
		EstimatedFPS:    t.fps,
		LastDelta:       t.lastDelta,
	}
}

// FrameStats reports frame pacing observed by the scheduler. Dropped
// frames are an observability metric only; they never affect the
// position, which stays anchored to wall-clock time.
type FrameStats struct {
	ProcessedFrames uint64
	DroppedFrames   uint64
	EstimatedFPS    float64
	LastDelta       time.Duration
}
