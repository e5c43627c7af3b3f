package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MessageType identifies the type of a WebSocket message.
type MessageType string

const (
	// Server -> Client event types
	TypeSessionStarted    MessageType = "session.started"
	TypeSessionUpdated    MessageType = "session.updated"
	TypeSessionReset      MessageType = "session.reset"
	TypeSessionClosed     MessageType = "session.closed"
	TypeCurationStarted   MessageType = "curation.started"
	TypeCurationDecided   MessageType = "curation.decided"
	TypeCurationCompleted MessageType = "curation.completed"

	// Client -> Server command types
	TypePing MessageType = "ping"

	// Server -> Client response types
	TypePong  MessageType = "pong"
	TypeError MessageType = "error"
)

// Message is the envelope for every frame the server sends.
type Message struct {
	Type      MessageType `json:"type"`
	SessionID uuid.UUID   `json:"session_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage creates a message stamped with the current time.
func NewMessage(msgType MessageType, sessionID uuid.UUID, payload any) Message {
	return Message{
		Type:      msgType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON serializes the message.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ErrorPayload is the payload of error frames.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// command is what clients send. Only the type is read.
type command struct {
	Type MessageType `json:"type"`
}
