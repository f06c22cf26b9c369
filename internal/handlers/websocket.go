package handlers

import (
	"context"
	"net/http"

	"github.com/FooleanBool/MBTools/internal/live"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// LiveHandler upgrades browser connections to live calculator sessions
type LiveHandler struct {
	hub      *live.Hub
	ctx      context.Context
	upgrader websocket.Upgrader
}

// NewLiveHandler creates a live handler. Sessions live until ctx is cancelled
// or the client disconnects. allowedOrigins mirrors the CORS configuration;
// an empty list accepts any origin.
func NewLiveHandler(ctx context.Context, hub *live.Hub, allowedOrigins []string) *LiveHandler {
	return &LiveHandler{
		hub: hub,
		ctx: ctx,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// HandleWebSocket upgrades HTTP connections to WebSocket
func (h *LiveHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	logger := h.hub.Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := live.NewSession(uuid.New().String(), conn, h.hub, logger)
	h.hub.Register(s)

	// Pumps use the handler context, not the request context
	go s.WritePump(h.ctx)
	go s.ReadPump(h.ctx)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		if len(allowed) == 0 {
			return true
		}
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}
