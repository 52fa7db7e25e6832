// Package state holds the UI-visible playback state. Store is the
// reference implementation of the clock's store contract: the clock
// pushes into it synchronously, subscribers (TUI, remote bridge) observe
// snapshots of it.
package state

import "sync"

// Snapshot is a copy of the playback state at one instant. It doubles as
// the wire payload of the remote bridge.
type Snapshot struct {
	CurrentTime  float64 `json:"current_time"`
	Duration     float64 `json:"duration"`
	PlaybackRate float64 `json:"playback_rate"`
	IsPlaying    bool    `json:"is_playing"`
	Loop         bool    `json:"loop"`
}

// Store is an observable playback state container. The clock writes to
// it from the host loop; the bridge reads snapshots from its own
// goroutines, so access is guarded by a lock. Subscribers are notified
// in registration order after each mutation, outside the lock.
type Store struct {
	mu      sync.RWMutex
	snap    Snapshot
	nextID  int
	subs    []subscriber
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// NewStore creates a store with rate 1.0 and everything else zero.
func NewStore() *Store {
	return &Store{snap: Snapshot{PlaybackRate: 1.0}}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Subscribe registers fn to be called with a snapshot after every
// mutation. Returns a function that can be called to remove the
// subscription; removing twice is a no-op.
func (s *Store) Subscribe(fn func(Snapshot)) (remove func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
	}
}

// SetCurrentTime records the playback position.
func (s *Store) SetCurrentTime(seconds float64) {
	s.mutate(func(snap *Snapshot) { snap.CurrentTime = seconds })
}

// SetIsPlaying records the transport state.
func (s *Store) SetIsPlaying(playing bool) {
	s.mutate(func(snap *Snapshot) { snap.IsPlaying = playing })
}

// SetDuration records the timeline length.
func (s *Store) SetDuration(seconds float64) {
	s.mutate(func(snap *Snapshot) { snap.Duration = seconds })
}

// SetPlaybackRate records the playback rate. Not part of the clock's
// store contract; hosts mirror it from the rate-change event.
func (s *Store) SetPlaybackRate(rate float64) {
	s.mutate(func(snap *Snapshot) { snap.PlaybackRate = rate })
}

// SetLoop records the loop flag, mirrored by hosts alongside the rate.
func (s *Store) SetLoop(loop bool) {
	s.mutate(func(snap *Snapshot) { snap.Loop = loop })
}

// mutate applies fn under the lock and notifies subscribers outside it.
func (s *Store) mutate(fn func(*Snapshot)) {
	s.mu.Lock()
	fn(&s.snap)
	snap := s.snap
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(snap)
	}
}
