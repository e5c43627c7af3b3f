package events

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxMessageSize = 4096
	sendBuffer     = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are already filtered by the CORS middleware.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Client is one WebSocket connection watching one session.
type Client struct {
	hub       *Hub
	sessionID uuid.UUID
	send      chan []byte
}

// NewClient creates a client for sessionID. It is not connected until
// registered with the hub.
func NewClient(hub *Hub, sessionID uuid.UUID) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, sendBuffer),
	}
}

// Send returns the client's outbound channel.
func (c *Client) Send() <-chan []byte {
	return c.send
}

// ServeWS upgrades the request to a WebSocket and streams the session's
// events to it until either side hangs up.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID uuid.UUID) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written an HTTP error.
		h.logger.Warn("websocket upgrade failed", "session_id", sessionID, "error", err)
		return
	}

	c := NewClient(h, sessionID)
	h.Register(c)

	go c.writePump(conn)
	go c.readPump(conn)
}

// writePump moves messages from the hub to the connection and keeps it alive
// with pings.
func (c *Client) writePump(conn *websocket.Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump reads client commands until the connection fails.
func (c *Client) readPump(conn *websocket.Conn) {
	defer func() {
		c.hub.Unregister(c)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read failed", "session_id", c.sessionID, "error", err)
			}
			return
		}
		c.hub.handleCommand(c, data)
	}
}

// handleCommand answers a client frame. Replies are queued like any other
// message since the hub loop owns the send channels.
func (h *Hub) handleCommand(c *Client, data []byte) {
	var cmd command
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.reply(c, NewMessage(TypeError, c.sessionID, ErrorPayload{Code: "bad_request", Message: "frame is not valid JSON"}))
		return
	}
	switch cmd.Type {
	case TypePing:
		h.reply(c, NewMessage(TypePong, c.sessionID, nil))
	default:
		h.reply(c, NewMessage(TypeError, c.sessionID, ErrorPayload{Code: "bad_request", Message: "unknown command " + string(cmd.Type)}))
	}
}
