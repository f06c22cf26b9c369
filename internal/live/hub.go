package live

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

var _ SessionHub = (*Hub)(nil)

// Hub keeps track of open calculator sessions. Sessions never talk to each
// other; the hub exists for lifecycle and metrics.
type Hub struct {
	sessions   map[*Session]bool
	sessionsMu sync.RWMutex

	register   chan *Session
	unregister chan *Session
	done       chan struct{}

	totalConnections int64
	recalculations   int64

	logger logrus.FieldLogger
}

// NewHub creates a new Hub instance
func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		sessions:   make(map[*Session]bool),
		register:   make(chan *Session),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run starts the hub's main loop
func (h *Hub) Run(ctx context.Context) {
	h.logger.Info("hub started")
	defer close(h.done)

	go h.reportMetrics(ctx)

	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case s := <-h.register:
			h.registerSession(s)

		case s := <-h.unregister:
			h.unregisterSession(s)
		}
	}
}

// Register adds a session to the hub
func (h *Hub) Register(s *Session) {
	select {
	case h.register <- s:
	case <-h.done:
	}
}

// Unregister removes a session from the hub
func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// RecordRecalculation counts one recalculation for metrics
func (h *Hub) RecordRecalculation() {
	atomic.AddInt64(&h.recalculations, 1)
}

// GetSessionCount returns the number of open sessions
func (h *Hub) GetSessionCount() int {
	h.sessionsMu.RLock()
	defer h.sessionsMu.RUnlock()
	return len(h.sessions)
}

// GetMetrics returns hub metrics
func (h *Hub) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"active_sessions":   h.GetSessionCount(),
		"total_connections": atomic.LoadInt64(&h.totalConnections),
		"recalculations":    atomic.LoadInt64(&h.recalculations),
	}
}

// registerSession adds a session to the active set
func (h *Hub) registerSession(s *Session) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	h.sessions[s] = true
	atomic.AddInt64(&h.totalConnections, 1)

	h.logger.WithFields(logrus.Fields{
		"session_id": s.ID,
		"total":      len(h.sessions),
	}).Info("session connected")
}

// unregisterSession removes a session and closes its send channel
func (h *Hub) unregisterSession(s *Session) {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	if _, ok := h.sessions[s]; ok {
		delete(h.sessions, s)
		s.closeSend()
		h.logger.WithFields(logrus.Fields{
			"session_id": s.ID,
			"total":      len(h.sessions),
		}).Info("session disconnected")
	}
}

// shutdown closes every session
func (h *Hub) shutdown() {
	h.sessionsMu.Lock()
	defer h.sessionsMu.Unlock()

	h.logger.WithField("active_sessions", len(h.sessions)).Info("shutting down hub")

	for s := range h.sessions {
		s.closeSend()
		delete(h.sessions, s)
	}
}

// reportMetrics periodically logs hub metrics
func (h *Hub) reportMetrics(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.logger.WithFields(logrus.Fields(h.GetMetrics())).Debug("hub metrics")
		}
	}
}

// Logger returns the hub's logger for sessions to share
func (h *Hub) Logger() logrus.FieldLogger {
	return h.logger
}
