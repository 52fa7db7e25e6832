package playback

import (
	"math"
	"time"
)

// backgroundTickInterval is the wall-timer cadence used while the host
// reports the surface as backgrounded. Frame-synchronized sources are
// throttled by hosts that lose display priority; a plain timer is not.
const backgroundTickInterval = time.Second / 60

// startSchedulerLocked begins ticking on the source for the current
// mode. Starting while a handle is outstanding is a no-op: at most one
// scheduling primitive is ever live.
func (c *Clock) startSchedulerLocked() {
	if c.schedCancel != nil {
		return
	}
	c.schedGen++
	c.armLocked(c.schedGen)
}

// stopSchedulerLocked cancels the outstanding primitive, if any, and
// invalidates in-flight callbacks by bumping the generation. Stopping
// when already stopped is a no-op.
func (c *Clock) stopSchedulerLocked() {
	c.schedGen++
	if c.schedCancel != nil {
		c.schedCancel()
		c.schedCancel = nil
	}
}

// armLocked schedules the next one-shot tick for generation gen. The
// frame source drives foreground mode; the timer source drives
// background mode and stands in for the frame source when the host has
// none.
func (c *Clock) armLocked(gen int) {
	if c.backgrounded || c.frames == nil {
		c.schedCancel = c.timers.AfterFunc(backgroundTickInterval, func() {
			c.tick(gen, c.clk.Now())
		})
		return
	}
	c.schedCancel = c.frames.RequestFrame(func(now time.Time) {
		c.tick(gen, now)
	})
}

// tick advances the clock for a tick observed at now. Stale callbacks —
// anything scheduled before the latest stop, mode switch, or dispose —
// are discarded by the generation check before touching state.
func (c *Clock) tick(gen int, now time.Time) {
	c.mu.Lock()
	if c.disposed || gen != c.schedGen || !c.playing {
		c.mu.Unlock()
		return
	}
	c.schedCancel = nil

	delta, process := c.throttle.admit(now)
	if !process {
		// Throttle pass-through: re-arm and skip without processing.
		c.armLocked(gen)
		c.mu.Unlock()
		return
	}

	// With throttling enabled the position advances by the capped,
	// rate-scaled delta between processed ticks; otherwise it derives
	// straight from the anchor. Both stay wall-clock accurate, the
	// throttled path just refuses to replay an entire stall.
	var candidate float64
	if c.throttle.enabled() {
		candidate = c.current + delta.Seconds()*c.rate
		c.anchor = anchorAt(now, candidate)
	} else {
		candidate = c.anchor.positionAt(now, c.rate)
	}

	var ended bool
	var pos float64
	switch {
	case candidate < c.duration:
		pos = candidate
		c.current = pos
	case c.loop && c.duration > 0:
		pos = math.Mod(candidate, c.duration)
		c.anchor = anchorAt(now, pos)
		c.current = pos
	default:
		pos = c.duration
		c.current = pos
		c.playing = false
		c.stopSchedulerLocked()
		ended = true
	}
	c.mu.Unlock()

	c.pushCurrentTime(pos)
	c.emit(Event{Kind: EventTimeUpdate, Time: pos})

	if ended {
		c.pushIsPlaying(false)
		c.emit(Event{Kind: EventEnded})
		return
	}

	// Re-arm after the listeners have run, unless one of them paused,
	// disposed, or restarted the clock (which swaps the generation).
	c.mu.Lock()
	if !c.disposed && gen == c.schedGen && c.playing && c.schedCancel == nil {
		c.armLocked(gen)
	}
	c.mu.Unlock()
}

// onVisibility handles transitions from the injected visibility source.
// While playing, the live tick source is swapped for the new mode with a
// re-anchor in between, so the position is identical on both sides of
// the switch.
func (c *Clock) onVisibility(visible bool) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	bg := !visible
	if bg == c.backgrounded {
		c.mu.Unlock()
		return
	}
	c.backgrounded = bg
	if c.playing {
		now := c.clk.Now()
		c.current = clampTime(c.anchor.positionAt(now, c.rate), c.duration)
		c.anchor = anchorAt(now, c.current)
		c.stopSchedulerLocked()
		c.startSchedulerLocked()
	}
	c.mu.Unlock()

	c.emit(Event{Kind: EventVisibilityChange, Backgrounded: bg})
}
