package playback

import (
	"math"
	"sync"

	"github.com/openreelio/reel/pkg/timing"
)

// Playback rate bounds. Rates outside this range are clamped, never
// rejected.
const (
	MinPlaybackRate = 0.25
	MaxPlaybackRate = 4.0
)

// Options configures a Clock. All fields are optional: numeric fields
// are sanitized, a zero PlaybackRate means 1.0, and nil capabilities
// fall back to production defaults (system clock, runtime timers). With
// a nil Frames source the clock ticks on the timer source in both
// scheduler modes; with a nil Visibility source it never leaves
// foreground mode.
type Options struct {
	// Duration is the timeline length in seconds. Clamped to >= 0.
	Duration float64

	// PlaybackRate is the initial rate. Zero means 1.0; other values are
	// clamped to [MinPlaybackRate, MaxPlaybackRate].
	PlaybackRate float64

	// Loop wraps the position past the end instead of stopping.
	Loop bool

	// TargetFPS enables target-rate throttling when > 0: ticks arriving
	// faster than the target interval are skipped as pass-throughs and
	// late ticks record dropped frames.
	TargetFPS float64

	// Clock supplies monotonic time. Defaults to timing.System().
	Clock timing.Clock

	// Frames delivers frame-synchronized ticks while foregrounded.
	Frames timing.FrameSource

	// Timers delivers fixed-interval ticks while backgrounded (and in
	// the foreground when Frames is nil). Defaults to
	// timing.SystemTimers{}.
	Timers timing.TimerSource

	// Visibility drives scheduler-mode selection.
	Visibility timing.VisibilitySource

	// Store receives state pushes; equivalent to calling SyncWithStore
	// right after construction.
	Store StateStore
}

// Clock is a drift-free playback clock. It holds the transport state
// (position, duration, rate, loop), derives the position from a
// wall-clock anchor, and schedules its own ticks on the injected time
// sources.
//
// All methods are safe for concurrent use, but the clock is designed for
// a cooperative host loop: store pushes and event listeners are invoked
// synchronously, outside internal locks, in registration order, so
// listeners may call back into the clock.
//
// Create with [New] and release with [Clock.Dispose]. Every operation on
// a disposed clock is a silent no-op.
type Clock struct {
	mu sync.RWMutex

	current  float64
	duration float64
	rate     float64
	loop     bool
	playing  bool
	disposed bool

	anchor   anchor
	throttle frameThrottle

	clk    timing.Clock
	frames timing.FrameSource
	timers timing.TimerSource

	backgrounded bool
	schedGen     int
	schedCancel  func()

	store         StateStore
	removeVisible func()

	nextListenerID int
	listeners      map[EventKind][]listenerEntry
}

// New creates a paused clock at position zero.
func New(opts Options) *Clock {
	rate := opts.PlaybackRate
	if rate == 0 {
		rate = 1.0
	}

	c := &Clock{
		duration:  sanitizeDuration(opts.Duration),
		rate:      sanitizeRate(rate),
		loop:      opts.Loop,
		throttle:  newFrameThrottle(opts.TargetFPS),
		clk:       opts.Clock,
		frames:    opts.Frames,
		timers:    opts.Timers,
		store:     opts.Store,
		listeners: make(map[EventKind][]listenerEntry),
	}
	if c.clk == nil {
		c.clk = timing.System()
	}
	if c.timers == nil {
		c.timers = timing.SystemTimers{}
	}
	if vis := opts.Visibility; vis != nil {
		c.backgrounded = !vis.Visible()
		c.removeVisible = vis.AddHandler(c.onVisibility)
	}
	if c.store != nil {
		c.store.SetDuration(c.duration)
	}
	return c
}

// Play starts playback. It is a no-op if the clock is disposed, already
// playing, has a non-positive duration, or is already at (or past) the
// end. Otherwise it re-anchors at the current position, starts the
// scheduler, pushes isPlaying to the store, and emits [EventPlay].
func (c *Clock) Play() {
	c.mu.Lock()
	if c.disposed || c.playing || c.duration <= 0 || c.current >= c.duration {
		c.mu.Unlock()
		return
	}
	c.anchor = anchorAt(c.clk.Now(), c.current)
	c.playing = true
	c.throttle.reset()
	c.startSchedulerLocked()
	c.mu.Unlock()

	c.pushIsPlaying(true)
	c.emit(Event{Kind: EventPlay})
}

// Pause stops playback, holding the position at the last tick. It is a
// no-op if the clock is not playing. Pushes isPlaying to the store and
// emits [EventPaused].
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.disposed || !c.playing {
		c.mu.Unlock()
		return
	}
	c.stopSchedulerLocked()
	c.playing = false
	c.mu.Unlock()

	c.pushIsPlaying(false)
	c.emit(Event{Kind: EventPaused})
}

// TogglePlayback plays when paused and pauses when playing.
func (c *Clock) TogglePlayback() {
	if c.IsPlaying() {
		c.Pause()
	} else {
		c.Play()
	}
}

// Seek moves the position to seconds, clamped to [0, duration]. The
// clamped target is announced with [EventBeforeSetTime], then the
// position is mutated, pushed to the store, re-anchored if playing, and
// confirmed with [EventAfterSetTime]. Seeking to the duration while
// playing pauses the clock after the confirmation, exactly as if Pause
// had been called.
func (c *Clock) Seek(seconds float64) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	clamped := clampTime(seconds, c.duration)
	c.mu.Unlock()

	c.emit(Event{Kind: EventBeforeSetTime, Time: clamped})

	c.mu.Lock()
	if c.disposed {
		// A before listener disposed the clock mid-seek.
		c.mu.Unlock()
		return
	}
	c.current = clamped
	if c.playing {
		c.anchor = anchorAt(c.clk.Now(), clamped)
	}
	atEnd := clamped == c.duration
	c.mu.Unlock()

	c.pushCurrentTime(clamped)
	c.emit(Event{Kind: EventAfterSetTime, Time: clamped})

	if atEnd && c.IsPlaying() {
		c.Pause()
	}
}

// SeekForward seeks delta seconds ahead of the current position.
func (c *Clock) SeekForward(delta float64) {
	c.Seek(c.CurrentTime() + delta)
}

// SeekBackward seeks delta seconds behind the current position.
func (c *Clock) SeekBackward(delta float64) {
	c.Seek(c.CurrentTime() - delta)
}

// GoToStart seeks to the beginning of the timeline.
func (c *Clock) GoToStart() { c.Seek(0) }

// GoToEnd seeks to the end of the timeline, pausing if playing.
func (c *Clock) GoToEnd() { c.Seek(c.Duration()) }

// StepForward advances by one frame at the given frame rate. It is a
// no-op if fps is not a positive finite number.
func (c *Clock) StepForward(fps float64) { c.stepFrame(fps, +1) }

// StepBackward rewinds by one frame at the given frame rate. It is a
// no-op if fps is not a positive finite number.
func (c *Clock) StepBackward(fps float64) { c.stepFrame(fps, -1) }

func (c *Clock) stepFrame(fps, direction float64) {
	if math.IsNaN(fps) || math.IsInf(fps, 0) || fps <= 0 {
		return
	}
	c.Seek(c.CurrentTime() + direction/fps)
}

// SetDuration sets the timeline length, clamped to >= 0, pushes it to
// the store, and emits [EventDurationChange]. If the current position
// exceeds the new duration the clock cascades into Seek(duration), which
// pauses playback per the Seek contract.
func (c *Clock) SetDuration(seconds float64) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	d := sanitizeDuration(seconds)
	c.duration = d
	needClamp := c.current > d
	c.mu.Unlock()

	c.pushDuration(d)
	c.emit(Event{Kind: EventDurationChange, Duration: d})

	if needClamp {
		c.Seek(d)
	}
}

// SetPlaybackRate sets the rate, clamped to [MinPlaybackRate,
// MaxPlaybackRate]. While playing, the position is re-anchored at the
// old rate first so the new rate takes effect cleanly from now. Emits
// [EventPlaybackRateChange].
func (c *Clock) SetPlaybackRate(rate float64) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	r := sanitizeRate(rate)
	if c.playing {
		now := c.clk.Now()
		c.current = clampTime(c.anchor.positionAt(now, c.rate), c.duration)
		c.anchor = anchorAt(now, c.current)
	}
	c.rate = r
	c.mu.Unlock()

	c.emit(Event{Kind: EventPlaybackRateChange, Rate: r})
}

// SetLoop sets whether playback wraps at the end of the timeline.
func (c *Clock) SetLoop(loop bool) {
	c.mu.Lock()
	if !c.disposed {
		c.loop = loop
	}
	c.mu.Unlock()
}

// ToggleLoop flips the loop flag.
func (c *Clock) ToggleLoop() {
	c.mu.Lock()
	if !c.disposed {
		c.loop = !c.loop
	}
	c.mu.Unlock()
}

// SyncWithStore attaches the store the clock pushes state into,
// replacing any previous one, and immediately pushes the current
// duration. A nil store detaches.
func (c *Clock) SyncWithStore(store StateStore) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.store = store
	d := c.duration
	c.mu.Unlock()

	if store != nil {
		store.SetDuration(d)
	}
}

// Dispose stops scheduling, detaches the visibility handler and store,
// and clears the listener registry. After disposal every operation is a
// silent no-op and pending ticks are discarded. Dispose is idempotent;
// calling it more than once is safe.
func (c *Clock) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.stopSchedulerLocked()
	c.playing = false
	c.store = nil
	c.listeners = nil
	removeVisible := c.removeVisible
	c.removeVisible = nil
	c.mu.Unlock()

	if removeVisible != nil {
		removeVisible()
	}
}

// IsPlaying reports whether the clock is advancing.
func (c *Clock) IsPlaying() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playing
}

// CurrentTime returns the position committed by the last tick or seek.
func (c *Clock) CurrentTime() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

// Duration returns the timeline length in seconds.
func (c *Clock) Duration() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.duration
}

// PlaybackRate returns the current rate.
func (c *Clock) PlaybackRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.rate
}

// Loop reports whether playback wraps at the end of the timeline.
func (c *Clock) Loop() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loop
}

// IsBackgrounded reports whether the scheduler is in background mode.
func (c *Clock) IsBackgrounded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.backgrounded
}

// IsDisposed reports whether Dispose has been called.
func (c *Clock) IsDisposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

// Status returns the transport status.
func (c *Clock) Status() Status {
	if c.IsPlaying() {
		return StatusPlaying
	}
	return StatusPaused
}

// FrameStats returns the scheduler's frame-pacing counters.
func (c *Clock) FrameStats() FrameStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.throttle.stats()
}

// storeRef returns the attached store, or nil once disposed, so pushes
// racing a dispose are dropped.
func (c *Clock) storeRef() StateStore {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.disposed {
		return nil
	}
	return c.store
}

func (c *Clock) pushCurrentTime(seconds float64) {
	if s := c.storeRef(); s != nil {
		s.SetCurrentTime(seconds)
	}
}

func (c *Clock) pushIsPlaying(playing bool) {
	if s := c.storeRef(); s != nil {
		s.SetIsPlaying(playing)
	}
}

func (c *Clock) pushDuration(seconds float64) {
	if s := c.storeRef(); s != nil {
		s.SetDuration(seconds)
	}
}

// sanitizeDuration clamps durations to >= 0; non-finite input means the
// host has no usable length, which maps to 0 (nothing playable).
func sanitizeDuration(d float64) float64 {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0
	}
	return d
}

// sanitizeRate clamps rates to [MinPlaybackRate, MaxPlaybackRate];
// non-finite input falls back to 1.0 before clamping.
func sanitizeRate(r float64) float64 {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		r = 1.0
	}
	if r < MinPlaybackRate {
		return MinPlaybackRate
	}
	if r > MaxPlaybackRate {
		return MaxPlaybackRate
	}
	return r
}

// clampTime clamps a seek target to [0, duration]; NaN maps to 0.
func clampTime(t, duration float64) float64 {
	if math.IsNaN(t) || t < 0 {
		return 0
	}
	if t > duration {
		return duration
	}
	return t
}
