package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// maxFrameSize guards against corrupted frames or runaway payloads.
const maxFrameSize = 1 << 20

// frameConn is the part of *websocket.Conn the protocol needs.
type frameConn interface {
	ReadMessage() (int, []byte, error)
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Envelope is one message in the game server's wire format: a flat JSON
// object with a "type" discriminator. Data holds the whole object so handlers
// can decode their concrete type from it.
type Envelope struct {
	Type string
	Data json.RawMessage
}

// NewEnvelope marshals data and stamps msgType into it. data must encode as a
// JSON object.
func NewEnvelope(msgType string, data any) (Envelope, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal data: %w", err)
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Envelope{}, fmt.Errorf("message %q is not an object: %w", msgType, err)
	}
	typ, _ := json.Marshal(msgType)
	fields["type"] = typ

	out, err := json.Marshal(fields)
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal envelope: %w", err)
	}
	return Envelope{Type: msgType, Data: out}, nil
}

// Decode unmarshals the envelope into its concrete message type.
func Decode[T any](env Envelope) (T, error) {
	var out T
	if len(env.Data) == 0 {
		return out, fmt.Errorf("empty payload for type %q", env.Type)
	}
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return out, fmt.Errorf("unmarshal %s: %w", env.Type, err)
	}
	return out, nil
}

// ReadEnvelope reads a single JSON message from the connection.
func ReadEnvelope(conn frameConn) (Envelope, error) {
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return Envelope{}, fmt.Errorf("read frame: %w", err)
	}
	if len(payload) == 0 || len(payload) > maxFrameSize {
		return Envelope{}, fmt.Errorf("invalid message length: %d", len(payload))
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &head); err != nil {
		return Envelope{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if head.Type == "" {
		return Envelope{}, fmt.Errorf("message without type: %.80s", payload)
	}
	return Envelope{Type: head.Type, Data: payload}, nil
}

func WriteEnvelope(conn frameConn, env Envelope) error {
	if err := conn.WriteMessage(websocket.TextMessage, env.Data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}
