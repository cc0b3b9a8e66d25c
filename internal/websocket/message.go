package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	TypeCompareRequest MessageType = "compare_request"
	TypeCompareResult  MessageType = "compare_result"
	TypeError          MessageType = "error"
	TypePing           MessageType = "ping"
	TypePong           MessageType = "pong"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// CompareRequestPayload is what an interactive client sends on every
// input change: the selected range plus the display filters. The
// result payload is the same comparison response the HTTP API returns.
type CompareRequestPayload struct {
	From       string   `json:"from"`
	To         string   `json:"to"`
	Search     string   `json:"search"`
	Categories []string `json:"categories"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	var payloadBytes json.RawMessage
	if payload != nil {
		bytes, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		payloadBytes = bytes
	}

	return &Message{
		Type:      msgType,
		Timestamp: time.Now(),
		Payload:   payloadBytes,
	}, nil
}

func (m *Message) UnmarshalPayload(v interface{}) error {
	if m.Payload == nil {
		return nil
	}
	return json.Unmarshal(m.Payload, v)
}
