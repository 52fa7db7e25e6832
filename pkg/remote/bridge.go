// Package remote broadcasts playback state to websocket clients and
// queues their transport commands for the host loop. It is the
// collaborative-preview surface of Reel: companion apps subscribe to
// state and event frames and drive the clock with play/pause/seek
// commands.
package remote

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/openreelio/reel/pkg/errors"
	"github.com/openreelio/reel/pkg/log"
	"github.com/openreelio/reel/pkg/playback"
	"github.com/openreelio/reel/pkg/state"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096

	// sendQueueSize bounds the per-client outbound queue. A client that
	// cannot drain it is evicted rather than blocking the broadcast.
	sendQueueSize = 64

	commandQueueSize = 32
)

// Options tunes the bridge. The zero value is production-ready.
type Options struct {
	// CheckOrigin overrides the websocket origin check. Nil allows all
	// origins, which suits the LAN preview use case.
	CheckOrigin func(r *http.Request) bool
}

// Bridge is a websocket hub. It implements http.Handler: each request is
// upgraded and registered as a client. Attach a store (and optionally a
// clock) to feed it, drain Commands from the host loop to let clients
// drive playback.
type Bridge struct {
	upgrader websocket.Upgrader
	store    *state.Store
	commands chan Command

	mu       sync.Mutex
	clients  map[string]*client
	removes  []func()
	closed   bool
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

// NewBridge creates a bridge publishing the given store. Every store
// mutation is broadcast as a state frame.
func NewBridge(store *state.Store, opts Options) *Bridge {
	check := opts.CheckOrigin
	if check == nil {
		check = func(*http.Request) bool { return true }
	}

	b := &Bridge{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     check,
		},
		store:    store,
		commands: make(chan Command, commandQueueSize),
		clients:  make(map[string]*client),
	}

	if store != nil {
		remove := store.Subscribe(func(snap state.Snapshot) {
			b.broadcast(Message{Type: MessageState, State: &snap})
		})
		b.removes = append(b.removes, remove)
	}
	return b
}

// AttachClock mirrors every clock event onto the wire as an event frame.
// Detached again on Close.
func (b *Bridge) AttachClock(clk *playback.Clock) {
	kinds := []playback.EventKind{
		playback.EventPlay,
		playback.EventPaused,
		playback.EventEnded,
		playback.EventTimeUpdate,
		playback.EventBeforeSetTime,
		playback.EventAfterSetTime,
		playback.EventDurationChange,
		playback.EventPlaybackRateChange,
		playback.EventVisibilityChange,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, kind := range kinds {
		remove := clk.On(kind, func(ev playback.Event) {
			b.broadcast(Message{Type: MessageEvent, Event: eventPayload(ev)})
		})
		b.removes = append(b.removes, remove)
	}
}

// Commands returns the queue of inbound transport commands. The host
// loop drains it and applies each command to the clock.
func (b *Bridge) Commands() <-chan Command {
	return b.commands
}

// ClientCount returns the number of connected clients.
func (b *Bridge) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// ServeHTTP upgrades the request and runs the client until it
// disconnects or is evicted.
func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		errors.Report(errors.New("remote.Bridge.ServeHTTP", errors.KindTransport, err))
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		conn.Close()
		return
	}
	b.clients[c.id] = c
	// Queue the initial snapshot before the registration lock drops so a
	// concurrent Close cannot close the send queue first.
	if b.store != nil {
		snap := b.store.Snapshot()
		if data, err := json.Marshal(Message{Type: MessageState, State: &snap}); err == nil {
			c.send <- data
		}
	}
	b.mu.Unlock()

	log.Infof("bridge: client %s connected", c.id)

	go b.writePump(c)
	b.readPump(c)
}

// Close evicts all clients and detaches the store and clock
// subscriptions. The bridge cannot be reused afterwards.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	clients := make([]*client, 0, len(b.clients))
	for _, c := range b.clients {
		clients = append(clients, c)
	}
	b.clients = map[string]*client{}
	removes := b.removes
	b.removes = nil
	b.mu.Unlock()

	for _, remove := range removes {
		remove()
	}
	for _, c := range clients {
		c.close()
	}
}

// broadcast fans data out to every client. A client with a full send
// queue is evicted: a stalled preview must not hold back the rest.
func (b *Bridge) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		errors.Report(errors.New("remote.Bridge.broadcast", errors.KindTransport, err))
		return
	}

	b.mu.Lock()
	var evicted []*client
	for id, c := range b.clients {
		select {
		case c.send <- data:
		default:
			delete(b.clients, id)
			evicted = append(evicted, c)
		}
	}
	b.mu.Unlock()

	for _, c := range evicted {
		log.Warnf("bridge: client %s evicted (send queue full)", c.id)
		c.close()
	}
}

func (b *Bridge) drop(c *client) {
	b.mu.Lock()
	delete(b.clients, c.id)
	b.mu.Unlock()
	c.close()
}

// readPump decodes inbound commands and queues them for the host loop.
// Runs on the connection's reader goroutine and returns on error.
func (b *Bridge) readPump(c *client) {
	defer errors.Recover("remote.Bridge.readPump")
	defer b.drop(c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				e := errors.New("remote.Bridge.readPump", errors.KindTransport, err)
				e.Source = c.id
				errors.Report(e)
			}
			log.Infof("bridge: client %s disconnected", c.id)
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			log.Warnf("bridge: client %s sent malformed command: %v", c.id, err)
			continue
		}

		select {
		case b.commands <- cmd:
		default:
			log.Warnf("bridge: command queue full, dropping %q from %s", cmd.Action, c.id)
		}
	}
}

// writePump drains the client's send queue and keeps the connection
// alive with pings. Runs on its own goroutine per client.
func (b *Bridge) writePump(c *client) {
	defer errors.Recover("remote.Bridge.writePump")

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		b.drop(c)
	}()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				c.conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
					time.Now().Add(writeWait))
				return
			}
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}
