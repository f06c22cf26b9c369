package models

import "time"

// Message types for the live calculator socket
const (
	MessageTypeInput     = "input"
	MessageTypeInputs    = "inputs"
	MessageTypeReset     = "reset"
	MessageTypeResult    = "result"
	MessageTypeHeartbeat = "heartbeat"
	MessageTypeError     = "error"
)

// ClientMessage represents a message from client to server
type ClientMessage struct {
	Type    string                 `json:"type"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// ServerMessage represents a message from server to client
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SessionStats represents live connection statistics
type SessionStats struct {
	SessionID        string    `json:"session_id"`
	ConnectedAt      time.Time `json:"connected_at"`
	MessagesSent     int64     `json:"messages_sent"`
	MessagesReceived int64     `json:"messages_received"`
	Recalculations   int64     `json:"recalculations"`
	LastMessageAt    time.Time `json:"last_message_at"`
}

// ErrorMessage represents an error message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
