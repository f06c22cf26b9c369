package live

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/FooleanBool/MBTools/internal/calculator"
	"github.com/FooleanBool/MBTools/internal/display"
	"github.com/FooleanBool/MBTools/internal/form"
	"github.com/FooleanBool/MBTools/pkg/models"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Buffer size for outbound messages
	sendBufferSize = 64
)

// SessionHub defines what a session needs from the hub
type SessionHub interface {
	Unregister(session *Session)
	RecordRecalculation()
}

// Session is one open calculator page. It keeps the raw text of the input
// boxes for as long as the socket is open and recalculates on every change.
type Session struct {
	ID     string
	conn   *websocket.Conn
	Send   chan models.ServerMessage // Exported for hub access
	hub    SessionHub
	logger logrus.FieldLogger

	// closed is set once Send has been closed; guarded by sendMu
	closed bool
	sendMu sync.Mutex

	form   form.Form
	formMu sync.Mutex

	connectedAt      time.Time
	messagesSent     int64
	messagesReceived int64
	recalculations   int64
	lastMessageAt    time.Time
	mu               sync.Mutex
}

// NewSession creates a session for an upgraded connection
func NewSession(id string, conn *websocket.Conn, hub SessionHub, logger logrus.FieldLogger) *Session {
	return &Session{
		ID:          id,
		conn:        conn,
		Send:        make(chan models.ServerMessage, sendBufferSize),
		hub:         hub,
		logger:      logger.WithField("session_id", id),
		form:        form.Form{},
		connectedAt: time.Now(),
	}
}

// ReadPump reads form changes from the connection until it closes
func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-ctx.Done():
			return
		default:
			var msg models.ClientMessage
			if err := s.conn.ReadJSON(&msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					s.logger.WithError(err).Warn("unexpected close")
				}
				return
			}

			s.updateReceived()
			s.HandleMessage(msg)
		}
	}
}

// WritePump writes queued messages and keepalive pings to the connection
func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case message, ok := <-s.Send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteJSON(message); err != nil {
				s.logger.WithError(err).Warn("write failed")
				return
			}

			s.updateSent()

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// TrySend queues a message without blocking. It returns false when the
// client is not keeping up or the session has been closed.
func (s *Session) TrySend(msg models.ServerMessage) bool {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.Send <- msg:
		return true
	default:
		return false
	}
}

// closeSend closes Send once. Only the hub calls it.
func (s *Session) closeSend() {
	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	close(s.Send)
}

// HandleMessage applies one client message
func (s *Session) HandleMessage(msg models.ClientMessage) {
	switch msg.Type {
	case models.MessageTypeInput:
		s.handleInput(msg.Payload)
	case models.MessageTypeInputs:
		s.handleInputs(msg.Payload)
	case models.MessageTypeReset:
		s.handleReset()
	case models.MessageTypeHeartbeat:
		s.sendHeartbeat()
	default:
		s.sendError("unknown_message_type", fmt.Sprintf("unknown message type: %s", msg.Type))
	}
}

// Inputs returns the current form snapshot coerced to numbers
func (s *Session) Inputs() calculator.BetInputs {
	s.formMu.Lock()
	defer s.formMu.Unlock()
	return s.form.Inputs()
}

// GetStats returns connection statistics
func (s *Session) GetStats() models.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SessionStats{
		SessionID:        s.ID,
		ConnectedAt:      s.connectedAt,
		MessagesSent:     s.messagesSent,
		MessagesReceived: s.messagesReceived,
		Recalculations:   s.recalculations,
		LastMessageAt:    s.lastMessageAt,
	}
}

// handleInput updates a single box: {"field": "h1LayOdds", "value": "3.2"}
func (s *Session) handleInput(payload map[string]interface{}) {
	field, _ := payload["field"].(string)
	value, ok := rawValue(payload["value"])
	if !ok {
		s.sendError("invalid_input", "value must be a string or number")
		return
	}

	s.formMu.Lock()
	err := s.form.Set(field, value)
	s.formMu.Unlock()
	if err != nil {
		s.sendError("unknown_field", err.Error())
		return
	}

	s.recalculate()
}

// handleInputs updates several boxes at once: {"mainBackStake": "10", ...}.
// Nothing is applied unless every field name is known.
func (s *Session) handleInputs(payload map[string]interface{}) {
	updates := make(map[string]string, len(payload))
	for field, v := range payload {
		if !form.IsField(field) {
			s.sendError("unknown_field", fmt.Sprintf("unknown field: %s", field))
			return
		}
		value, ok := rawValue(v)
		if !ok {
			s.sendError("invalid_input", fmt.Sprintf("value for %s must be a string or number", field))
			return
		}
		updates[field] = value
	}

	s.formMu.Lock()
	for field, value := range updates {
		s.form[field] = value
	}
	s.formMu.Unlock()

	s.recalculate()
}

// handleReset empties every box
func (s *Session) handleReset() {
	s.formMu.Lock()
	s.form = form.Form{}
	s.formMu.Unlock()

	s.recalculate()
}

// recalculate runs the calculator on the current snapshot and queues the result
func (s *Session) recalculate() {
	in := s.Inputs()
	result, err := calculator.Calculate(in)

	s.mu.Lock()
	s.recalculations++
	s.mu.Unlock()
	s.hub.RecordRecalculation()

	if !s.TrySend(models.ServerMessage{
		Type:      models.MessageTypeResult,
		Payload:   display.Response(in, result, err),
		Timestamp: time.Now(),
	}) {
		s.logger.Warn("send buffer full, dropping result")
	}
}

// sendHeartbeat sends a heartbeat response
func (s *Session) sendHeartbeat() {
	s.TrySend(models.ServerMessage{
		Type:      models.MessageTypeHeartbeat,
		Payload:   s.GetStats(),
		Timestamp: time.Now(),
	})
}

// sendError sends an error message to the client
func (s *Session) sendError(code, message string) {
	s.TrySend(models.ServerMessage{
		Type: models.MessageTypeError,
		Payload: models.ErrorMessage{
			Code:    code,
			Message: message,
		},
		Timestamp: time.Now(),
	})
}

// updateSent increments the sent message counter
func (s *Session) updateSent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messagesSent++
	s.lastMessageAt = time.Now()
}

// updateReceived increments the received message counter
func (s *Session) updateReceived() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messagesReceived++
	s.lastMessageAt = time.Now()
}

// rawValue turns a JSON scalar back into input box text
func rawValue(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return "", true
	default:
		return "", false
	}
}
