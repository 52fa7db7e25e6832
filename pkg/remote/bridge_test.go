package remote

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/openreelio/reel/pkg/playback"
	"github.com/openreelio/reel/pkg/state"
	"github.com/openreelio/reel/pkg/timing"
)

// dial connects a test client to the bridge.
func dial(t *testing.T, b *Bridge) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readMessage decodes the next frame with a read deadline.
func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

// awaitEvent reads frames until one carries an event of the given kind.
func awaitEvent(t *testing.T, conn *websocket.Conn, kind string) EventPayload {
	t.Helper()
	for i := 0; i < 20; i++ {
		msg := readMessage(t, conn)
		if msg.Type == MessageEvent && msg.Event.Kind == kind {
			return *msg.Event
		}
	}
	t.Fatalf("no %q event within 20 frames", kind)
	return EventPayload{}
}

func TestBridge_InitialSnapshotOnConnect(t *testing.T) {
	store := state.NewStore()
	store.SetDuration(42)

	b := NewBridge(store, Options{})
	defer b.Close()

	conn := dial(t, b)

	msg := readMessage(t, conn)
	require.Equal(t, MessageState, msg.Type)
	require.NotNil(t, msg.State)
	require.Equal(t, 42.0, msg.State.Duration)
}

func TestBridge_BroadcastsStoreMutations(t *testing.T) {
	store := state.NewStore()
	b := NewBridge(store, Options{})
	defer b.Close()

	conn := dial(t, b)
	readMessage(t, conn) // initial snapshot

	store.SetCurrentTime(3.5)

	msg := readMessage(t, conn)
	require.Equal(t, MessageState, msg.Type)
	require.Equal(t, 3.5, msg.State.CurrentTime)
}

func TestBridge_MirrorsClockEvents(t *testing.T) {
	store := state.NewStore()
	mc := timing.NewManualClock()
	clk := playback.New(playback.Options{
		Duration: 10,
		Clock:    mc,
		Timers:   mc.Timers(),
		Store:    store,
	})
	defer clk.Dispose()

	b := NewBridge(store, Options{})
	defer b.Close()
	b.AttachClock(clk)

	conn := dial(t, b)
	readMessage(t, conn) // initial snapshot

	clk.Seek(2.5)

	ev := awaitEvent(t, conn, "afterSetTime")
	require.Equal(t, 2.5, ev.Time)
}

func TestBridge_QueuesInboundCommands(t *testing.T) {
	b := NewBridge(state.NewStore(), Options{})
	defer b.Close()

	conn := dial(t, b)

	require.NoError(t, conn.WriteJSON(Command{Action: ActionSeek, Time: 7.5}))

	select {
	case cmd := <-b.Commands():
		require.Equal(t, ActionSeek, cmd.Action)
		require.Equal(t, 7.5, cmd.Time)
	case <-time.After(2 * time.Second):
		t.Fatal("command not queued")
	}
}

func TestBridge_MalformedCommandIsIgnored(t *testing.T) {
	b := NewBridge(state.NewStore(), Options{})
	defer b.Close()

	conn := dial(t, b)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	require.NoError(t, conn.WriteJSON(Command{Action: ActionPlay}))

	select {
	case cmd := <-b.Commands():
		require.Equal(t, ActionPlay, cmd.Action)
	case <-time.After(2 * time.Second):
		t.Fatal("valid command after a malformed one was not queued")
	}
}

func TestBridge_ClientCountTracksConnections(t *testing.T) {
	b := NewBridge(state.NewStore(), Options{})
	defer b.Close()

	conn := dial(t, b)
	require.Eventually(t, func() bool { return b.ClientCount() == 1 },
		2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return b.ClientCount() == 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestBridge_CloseDetachesStore(t *testing.T) {
	store := state.NewStore()
	b := NewBridge(store, Options{})

	conn := dial(t, b)
	readMessage(t, conn)

	b.Close()

	// Mutations after Close must not panic or broadcast.
	store.SetCurrentTime(1)
	require.Zero(t, b.ClientCount())
}

func TestCommand_Apply(t *testing.T) {
	mc := timing.NewManualClock()
	clk := playback.New(playback.Options{Duration: 10, Clock: mc, Timers: mc.Timers()})
	defer clk.Dispose()

	Command{Action: ActionSeek, Time: 4}.Apply(clk)
	require.Equal(t, 4.0, clk.CurrentTime())

	Command{Action: ActionRate, Rate: 2}.Apply(clk)
	require.Equal(t, 2.0, clk.PlaybackRate())

	Command{Action: ActionLoop, Loop: true}.Apply(clk)
	require.True(t, clk.Loop())

	Command{Action: ActionPlay}.Apply(clk)
	require.True(t, clk.IsPlaying())

	Command{Action: ActionPause}.Apply(clk)
	require.False(t, clk.IsPlaying())

	Command{Action: ActionToggle}.Apply(clk)
	require.True(t, clk.IsPlaying())
	Command{Action: ActionPause}.Apply(clk)

	Command{Action: ActionStep, FPS: 25}.Apply(clk)
	require.InDelta(t, 4.04, clk.CurrentTime(), 1e-9)

	Command{Action: ActionStep, FPS: 25, Direction: -1}.Apply(clk)
	require.InDelta(t, 4.0, clk.CurrentTime(), 1e-9)

	// Unknown actions are ignored.
	Command{Action: "reboot"}.Apply(clk)
	require.Equal(t, 4.0, clk.CurrentTime())
}
