package ws

import (
	"encoding/json"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// MessageType constants for the WebSocket feed.
const (
	// Server -> Client
	TypeParticipants = "participants"
	TypeError        = "error"

	// Client -> Server
	TypePing = "ping"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ParticipantsPayload is the live snapshot pushed on every change: the full
// participant list plus the count for the home-page counter.
type ParticipantsPayload struct {
	Participants []participant.Participant `json:"participants"`
	Count        int                       `json:"count"`
}

// Error is a protocol-level failure reported over the socket.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}
