package state

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStore_Defaults(t *testing.T) {
	s := NewStore()
	snap := s.Snapshot()
	require.Equal(t, 1.0, snap.PlaybackRate)
	require.Zero(t, snap.CurrentTime)
	require.Zero(t, snap.Duration)
	require.False(t, snap.IsPlaying)
	require.False(t, snap.Loop)
}

func TestStore_MutationsAreVisibleInSnapshot(t *testing.T) {
	s := NewStore()

	s.SetDuration(12.5)
	s.SetCurrentTime(3.25)
	s.SetIsPlaying(true)
	s.SetPlaybackRate(2.0)
	s.SetLoop(true)

	snap := s.Snapshot()
	require.Equal(t, 12.5, snap.Duration)
	require.Equal(t, 3.25, snap.CurrentTime)
	require.True(t, snap.IsPlaying)
	require.Equal(t, 2.0, snap.PlaybackRate)
	require.True(t, snap.Loop)
}

func TestStore_SubscribersSeeEveryMutation(t *testing.T) {
	s := NewStore()

	var seen []Snapshot
	s.Subscribe(func(snap Snapshot) { seen = append(seen, snap) })

	s.SetDuration(10)
	s.SetCurrentTime(1)
	s.SetCurrentTime(2)

	require.Len(t, seen, 3)
	require.Equal(t, 10.0, seen[0].Duration)
	require.Equal(t, 1.0, seen[1].CurrentTime)
	require.Equal(t, 2.0, seen[2].CurrentTime)
}

func TestStore_SubscriberOrderAndRemoval(t *testing.T) {
	s := NewStore()

	var order []int
	s.Subscribe(func(Snapshot) { order = append(order, 1) })
	remove := s.Subscribe(func(Snapshot) { order = append(order, 2) })
	s.Subscribe(func(Snapshot) { order = append(order, 3) })

	s.SetCurrentTime(1)
	require.Equal(t, []int{1, 2, 3}, order)

	order = nil
	remove()
	remove() // second removal is a no-op
	s.SetCurrentTime(2)
	require.Equal(t, []int{1, 3}, order)
}

func TestStore_ConcurrentReadersAndWriter(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			s.SetCurrentTime(float64(i))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			_ = s.Snapshot()
		}
	}()
	wg.Wait()

	require.Equal(t, 999.0, s.Snapshot().CurrentTime)
}
