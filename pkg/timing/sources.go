package timing

import (
	"sync"
	"time"
)

// FrameSource schedules one-shot callbacks aligned with the host's frame
// cadence. The callback receives the frame timestamp. The returned cancel
// function discards the request if it has not fired yet; canceling twice
// is a no-op.
type FrameSource interface {
	RequestFrame(fn func(now time.Time)) (cancel func())
}

// TimerSource schedules one-shot callbacks after a wall-clock delay.
// The returned cancel function stops the timer if it has not fired yet;
// canceling twice is a no-op.
type TimerSource interface {
	AfterFunc(d time.Duration, fn func()) (cancel func())
}

// SystemTimers is a TimerSource backed by the runtime timer. Callbacks
// fire on their own goroutine, as with time.AfterFunc.
type SystemTimers struct{}

// AfterFunc schedules fn to run after d.
func (SystemTimers) AfterFunc(d time.Duration, fn func()) (cancel func()) {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// FramePump is a FrameSource driven by the host loop. The host calls
// Step once per frame; requests registered before that call fire in
// request order. Requests made during a Step (typically a tick callback
// re-arming itself) are deferred to the next Step.
//
// FramePump is the production frame source for Go hosts that own a
// render or event loop, and serves as the manual frame driver in tests.
type FramePump struct {
	mu      sync.Mutex
	nextID  int
	pending []frameRequest
}

type frameRequest struct {
	id int
	fn func(now time.Time)
}

// NewFramePump creates an empty pump.
func NewFramePump() *FramePump {
	return &FramePump{}
}

// RequestFrame registers fn for the next Step.
func (p *FramePump) RequestFrame(fn func(now time.Time)) (cancel func()) {
	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.pending = append(p.pending, frameRequest{id: id, fn: fn})
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		for i, req := range p.pending {
			if req.id == id {
				p.pending = append(p.pending[:i], p.pending[i+1:]...)
				break
			}
		}
		p.mu.Unlock()
	}
}

// Step fires all requests pending at the time of the call, in request
// order, passing now as the frame timestamp.
func (p *FramePump) Step(now time.Time) {
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		return
	}
	// Take the current batch so callbacks re-arming during the step land
	// in the next one.
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, req := range batch {
		req.fn(now)
	}
}

// Pending returns the number of requests waiting for the next Step.
func (p *FramePump) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}
