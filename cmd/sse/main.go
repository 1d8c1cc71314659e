package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/events"
	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/api/middleware"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

func main() {
	addr := flag.String("addr", ":8081", "listen address for the event stream server")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("tourism-directory-sse", cfg.Server.Environment)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis carries the directory events published by the API
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)

	gate, err := auth.NewGate()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load authorization policy")
	}
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize token manager")
	}

	sseHandler := handlers.NewSSEHandler(eventBus, gate)
	health := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"redis": redisClient.Ping,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", health.Health)
	mux.HandleFunc("GET /admin/events", sseHandler.StreamDirectoryEvents)
	mux.HandleFunc("GET /admin/events/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]int{"connectedClients": sseHandler.GetClientCount()},
		})
	})

	// Streams must not pass through the buffering response middleware
	var handler http.Handler = mux
	handler = middleware.SessionMiddleware(tokens, cfg.Auth.CookieName)(handler)
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.CORSMiddleware(cfg.Server.AllowedOrigins)(handler)

	server := &http.Server{
		Addr:         *addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // No timeout for SSE streaming
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("SSE server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("SSE server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("SSE server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if err := eventBus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}

	logger.Info().Msg("SSE server stopped")
}
