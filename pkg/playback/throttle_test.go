package playback

import (
	"testing"
	"time"
)

func TestFrameThrottle_DisabledAdmitsEverything(t *testing.T) {
	th := newFrameThrottle(0)
	now := time.Unix(0, 0)

	for i := 0; i < 5; i++ {
		now = now.Add(time.Millisecond)
		if _, ok := th.admit(now); !ok {
			t.Fatalf("tick %d rejected with throttling disabled", i)
		}
	}
	if got := th.stats().ProcessedFrames; got != 5 {
		t.Errorf("ProcessedFrames: got %d, want 5", got)
	}
}

func TestFrameThrottle_GatesBelowInterval(t *testing.T) {
	th := newFrameThrottle(30) // ~33.3ms interval
	now := time.Unix(0, 0)

	if _, ok := th.admit(now); !ok {
		t.Fatal("first tick must always be admitted")
	}

	now = now.Add(10 * time.Millisecond)
	if _, ok := th.admit(now); ok {
		t.Error("tick 10ms after the last processed one must pass through")
	}

	now = now.Add(25 * time.Millisecond) // 35ms since last processed
	delta, ok := th.admit(now)
	if !ok {
		t.Fatal("tick past the interval must be admitted")
	}
	if delta != 35*time.Millisecond {
		t.Errorf("delta: got %v, want 35ms", delta)
	}
}

func TestFrameThrottle_SkippedTickLeavesStateUntouched(t *testing.T) {
	th := newFrameThrottle(30)
	now := time.Unix(0, 0)
	th.admit(now)

	before := th.stats()
	th.admit(now.Add(time.Millisecond))
	after := th.stats()

	if before != after {
		t.Errorf("stats changed on a pass-through: %+v -> %+v", before, after)
	}
}

func TestFrameThrottle_DropAccounting(t *testing.T) {
	tests := []struct {
		name        string
		gap         time.Duration
		wantDropped uint64
	}{
		{"one interval", 34 * time.Millisecond, 0},
		{"two intervals", 70 * time.Millisecond, 1},
		{"three intervals", 105 * time.Millisecond, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newFrameThrottle(30)
			now := time.Unix(0, 0)
			th.admit(now)
			th.admit(now.Add(tt.gap))
			if got := th.stats().DroppedFrames; got != tt.wantDropped {
				t.Errorf("DroppedFrames: got %d, want %d", got, tt.wantDropped)
			}
		})
	}
}

func TestFrameThrottle_CapsDeltaAfterStall(t *testing.T) {
	th := newFrameThrottle(30)
	now := time.Unix(0, 0)
	th.admit(now)

	delta, ok := th.admit(now.Add(10 * time.Second))
	if !ok {
		t.Fatal("post-stall tick must be admitted")
	}
	limit := th.interval * time.Duration(th.maxSkip)
	if delta != limit {
		t.Errorf("delta after stall: got %v, want cap %v", delta, limit)
	}
}

func TestFrameThrottle_FPSEstimate(t *testing.T) {
	th := newFrameThrottle(0)
	now := time.Unix(0, 0)

	// 61 ticks at exactly 60Hz; the window holds the last 30.
	for i := 0; i <= 60; i++ {
		th.admit(now)
		now = now.Add(time.Second / 60)
	}

	fps := th.stats().EstimatedFPS
	if fps < 59 || fps > 61 {
		t.Errorf("EstimatedFPS: got %v, want ~60", fps)
	}
}

func TestFrameThrottle_ResetKeepsCumulativeCounters(t *testing.T) {
	th := newFrameThrottle(30)
	now := time.Unix(0, 0)
	th.admit(now)
	th.admit(now.Add(70 * time.Millisecond))

	th.reset()

	stats := th.stats()
	if stats.ProcessedFrames != 2 || stats.DroppedFrames != 1 {
		t.Errorf("cumulative counters lost on reset: %+v", stats)
	}
	if stats.EstimatedFPS != 0 || stats.LastDelta != 0 {
		t.Errorf("per-session state not cleared on reset: %+v", stats)
	}

	// The first tick after a reset is not charged for the idle gap.
	delta, ok := th.admit(now.Add(time.Hour))
	if !ok || delta != 0 {
		t.Errorf("first post-reset tick: got (%v, %v), want (0, true)", delta, ok)
	}
}
