// Package events pushes session changes to WebSocket subscribers.
// Each client watches exactly one session.
package events

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/backend/internal/planner"
)

// Encoder turns a session snapshot into the payload clients receive.
type Encoder func(planner.Snapshot) any

type delivery struct {
	sessionID uuid.UUID
	data      []byte
	target    *Client // only this client when set
	close     bool    // drop the session's clients after delivering
}

// Hub maintains the WebSocket clients of every session and fans messages out
// to them. Run must be running for Register, Unregister and Publish to make
// progress.
type Hub struct {
	logger *slog.Logger
	encode Encoder

	// clients by session
	clients map[uuid.UUID]map[*Client]bool
	mu      sync.RWMutex

	broadcast  chan delivery
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. A nil encode publishes snapshots unchanged.
func NewHub(logger *slog.Logger, encode Encoder) *Hub {
	if encode == nil {
		encode = func(s planner.Snapshot) any { return s }
	}
	return &Hub{
		logger:     logger,
		encode:     encode,
		clients:    make(map[uuid.UUID]map[*Client]bool),
		broadcast:  make(chan delivery, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run is the hub's event loop. It returns when ctx is cancelled, after
// closing every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for id, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case c := <-h.register:
			h.mu.Lock()
			set, ok := h.clients[c.sessionID]
			if !ok {
				set = make(map[*Client]bool)
				h.clients[c.sessionID] = set
			}
			set[c] = true
			n := len(set)
			h.mu.Unlock()
			h.logger.Debug("websocket client connected", "session_id", c.sessionID, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			h.remove(c)
			h.mu.Unlock()
			h.logger.Debug("websocket client disconnected", "session_id", c.sessionID)

		case d := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients[d.sessionID] {
				if d.target != nil && c != d.target {
					continue
				}
				select {
				case c.send <- d.data:
				default:
					// Send buffer full; drop the client.
					h.remove(c)
				}
			}
			if d.close {
				for c := range h.clients[d.sessionID] {
					h.remove(c)
				}
			}
			h.mu.Unlock()
		}
	}
}

// remove deletes c and closes its send channel. Callers hold h.mu.
func (h *Hub) remove(c *Client) {
	set := h.clients[c.sessionID]
	if !set[c] {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.sessionID)
	}
}

// Publish queues msg for every client of its session. Messages are dropped,
// with a warning, when the queue is full.
func (h *Hub) Publish(msg Message) {
	h.enqueue(msg, delivery{})
}

// reply queues msg for c alone.
func (h *Hub) reply(c *Client, msg Message) {
	h.enqueue(msg, delivery{target: c})
}

func (h *Hub) enqueue(msg Message, d delivery) {
	data, err := msg.JSON()
	if err != nil {
		h.logger.Error("encode websocket message", "type", msg.Type, "error", err)
		return
	}
	d.sessionID = msg.SessionID
	d.data = data
	select {
	case h.broadcast <- d:
	case <-h.done:
	default:
		h.logger.Warn("broadcast channel full, dropping message", "type", msg.Type, "session_id", msg.SessionID)
	}
}

// SessionChanged publishes a session snapshot under the given event kind.
func (h *Hub) SessionChanged(kind string, snap planner.Snapshot) {
	h.Publish(NewMessage(MessageType(kind), snap.ID, h.encode(snap)))
}

// SessionClosed tells the session's clients it is gone and disconnects them.
func (h *Hub) SessionClosed(id uuid.UUID) {
	h.enqueue(NewMessage(TypeSessionClosed, id, nil), delivery{close: true})
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
		close(c.send)
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// ClientCount returns the number of clients watching a session.
func (h *Hub) ClientCount(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}
