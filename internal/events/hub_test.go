package events_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/backend/internal/events"
	"github.com/pkordes/trip-planner/backend/internal/planner"
)

type received struct {
	Type      events.MessageType `json:"type"`
	SessionID uuid.UUID          `json:"session_id"`
	Payload   json.RawMessage    `json:"payload"`
}

// startHub runs a hub and an HTTP server that attaches every WebSocket
// connection to sessionID.
func startHub(t *testing.T, sessionID uuid.UUID, encode events.Encoder) (*events.Hub, string) {
	t.Helper()
	hub := events.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)), encode)

	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, sessionID)
	}))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, hub *events.Hub, url string, sessionID uuid.UUID, want int) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount(sessionID) == want },
		time.Second, 10*time.Millisecond)
	return conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg received
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHub_SessionChanged(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, func(s planner.Snapshot) any {
		return map[string]string{"phase": string(s.Phase)}
	})
	conn := dial(t, hub, url, id, 1)

	hub.SessionChanged("session.updated", planner.Snapshot{ID: id, Phase: planner.PhaseCurating})

	msg := read(t, conn)
	assert.Equal(t, events.TypeSessionUpdated, msg.Type)
	assert.Equal(t, id, msg.SessionID)
	assert.JSONEq(t, `{"phase":"curating"}`, string(msg.Payload))
}

func TestHub_FansOutToEverySubscriber(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	first := dial(t, hub, url, id, 1)
	second := dial(t, hub, url, id, 2)

	hub.SessionChanged("curation.decided", planner.Snapshot{ID: id})

	assert.Equal(t, events.TypeCurationDecided, read(t, first).Type)
	assert.Equal(t, events.TypeCurationDecided, read(t, second).Type)
}

func TestHub_OtherSessionsNotNotified(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	conn := dial(t, hub, url, id, 1)

	hub.SessionChanged("session.updated", planner.Snapshot{ID: uuid.New()})
	hub.SessionChanged("session.reset", planner.Snapshot{ID: id})

	assert.Equal(t, events.TypeSessionReset, read(t, conn).Type)
}

func TestHub_PingPong(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	conn := dial(t, hub, url, id, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "ping"}))

	assert.Equal(t, events.TypePong, read(t, conn).Type)
}

func TestHub_UnknownCommand(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	conn := dial(t, hub, url, id, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))

	assert.Equal(t, events.TypeError, read(t, conn).Type)
}

func TestHub_SessionClosedDisconnects(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	conn := dial(t, hub, url, id, 1)

	hub.SessionClosed(id)

	assert.Equal(t, events.TypeSessionClosed, read(t, conn).Type)
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	assert.Eventually(t, func() bool { return hub.ClientCount(id) == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_ClientHangUp(t *testing.T) {
	id := uuid.New()
	hub, url := startHub(t, id, nil)
	conn := dial(t, hub, url, id, 1)

	require.NoError(t, conn.Close())

	assert.Eventually(t, func() bool { return hub.ClientCount(id) == 0 }, time.Second, 10*time.Millisecond)
}
