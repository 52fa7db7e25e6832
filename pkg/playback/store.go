package playback

// StateStore receives the clock's UI-visible state. The clock pushes
// synchronously after each internal mutation and before listeners fire;
// it never reads back. The reference is non-owning and is released on
// Dispose.
type StateStore interface {
	SetCurrentTime(seconds float64)
	SetIsPlaying(playing bool)
	SetDuration(seconds float64)
}

// StoreFuncs adapts plain functions to the StateStore interface. Nil
// fields are skipped.
type StoreFuncs struct {
	CurrentTime func(seconds float64)
	IsPlaying   func(playing bool)
	Duration    func(seconds float64)
}

// SetCurrentTime calls the CurrentTime func if set.
func (s StoreFuncs) SetCurrentTime(seconds float64) {
	if s.CurrentTime != nil {
		s.CurrentTime(seconds)
	}
}

// SetIsPlaying calls the IsPlaying func if set.
func (s StoreFuncs) SetIsPlaying(playing bool) {
	if s.IsPlaying != nil {
		s.IsPlaying(playing)
	}
}

// SetDuration calls the Duration func if set.
func (s StoreFuncs) SetDuration(seconds float64) {
	if s.Duration != nil {
		s.Duration(seconds)
	}
}
