package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/FooleanBool/MBTools/internal/config"
	"github.com/FooleanBool/MBTools/internal/handlers"
	"github.com/FooleanBool/MBTools/internal/live"
	"github.com/FooleanBool/MBTools/internal/ratelimit"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config (optional)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	logger := log.StandardLogger()
	if err := cfg.ConfigureLogger(logger); err != nil {
		log.WithError(err).Fatal("Failed to configure logger")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect to Redis when rate limiting is enabled
	var limiter ratelimit.Allower
	var redisClient *redis.Client
	if cfg.RateLimitEnabled() {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Fatal("Failed to parse Redis URL")
		}
		redisClient = redis.NewClient(redisOpts)

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		log.WithField("requests_per_minute", cfg.RateLimit.RequestsPerMinute).Info("Connected to Redis, rate limiting enabled")

		limiter = ratelimit.NewLimiter(redisClient, cfg.RateLimit.RequestsPerMinute)
	} else {
		log.Info("Rate limiting disabled")
	}

	// Create hub
	hub := live.NewHub(logger)
	go hub.Run(ctx)

	router := handlers.NewRouter(handlers.RouterConfig{
		Handler:     handlers.NewHandler(hub, logger),
		Live:        handlers.NewLiveHandler(ctx, hub, cfg.Server.CORSOrigins),
		Limiter:     limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithFields(log.Fields{
			"addr":         cfg.Server.Addr,
			"cors_origins": cfg.Server.CORSOrigins,
		}).Info("Handicap calculator started")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down gracefully...")

	// Stop live sessions
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Shutdown error")
	}

	if redisClient != nil {
		redisClient.Close()
	}

	log.Info("Handicap calculator stopped")
}
