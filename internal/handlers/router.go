package handlers

import (
	"net/http"
	"time"

	"github.com/FooleanBool/MBTools/internal/middleware"
	"github.com/FooleanBool/MBTools/internal/ratelimit"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

// RouterConfig holds everything the router wires together
type RouterConfig struct {
	Handler     *Handler
	Live        *LiveHandler
	Limiter     ratelimit.Allower // nil disables rate limiting
	CORSOrigins []string
	Logger      logrus.FieldLogger
}

// NewRouter builds the service's HTTP routes
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	r.Get("/health", cfg.Handler.HealthCheck)
	r.Get("/metrics", cfg.Handler.Metrics)

	r.Group(func(r chi.Router) {
		if cfg.Limiter != nil {
			r.Use(ratelimit.Middleware(cfg.Limiter, cfg.Logger))
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(chimiddleware.Timeout(30 * time.Second))
			r.Post("/calculate", cfg.Handler.Calculate)
			r.Get("/calculate", cfg.Handler.CalculateQuery)
		})

		if cfg.Live != nil {
			r.Get("/ws", cfg.Live.HandleWebSocket)
		}
	})

	return r
}
