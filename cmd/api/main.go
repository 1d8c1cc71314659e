package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/cache"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/database"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/events"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/search"
	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/api/middleware"
	"github.com/zatekoja/tourism-directory/backend/internal/api/routes"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/openai"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Environment)
	logger := observability.GetLogger()

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Msg("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}
	registry := observability.NewRegistry()
	directoryMetrics := observability.NewDirectoryMetrics(registry)

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := pgClient.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Redis backs the response cache and the event bus. Without it only the
	// recommendation cache runs, in memory.
	var (
		redisClient   *redis.Client
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without response cache")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient)
			eventBus = events.NewRedisEventBus(redisClient)
			defer eventBus.Close()
			logger.Info().Msg("Redis client initialized successfully")
		}
	}
	recommendationCache := cacheProvider
	if recommendationCache == nil {
		recommendationCache = cache.NewMemoryAdapter()
	}

	// Typesense is optional; search falls back to SQL
	var placeSearch providers.PlaceSearchProvider
	if cfg.Typesense.Enabled {
		typesenseClient, err := typesense.NewClient(ctx, &cfg.Typesense)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Typesense client, search falls back to SQL")
		} else {
			adapter := search.NewTypesenseAdapter(typesenseClient)
			if err := adapter.InitSchema(ctx); err != nil {
				logger.Warn().Err(err).Msg("Failed to initialize Typesense schema")
			} else {
				placeSearch = adapter
				logger.Info().Msg("Typesense client initialized successfully")
			}
		}
	}

	var completion providers.CompletionProvider
	if cfg.OpenAI.APIKey != "" {
		client, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize OpenAI client")
		} else {
			completion = client
		}
	}

	// Auth primitives
	gate, err := auth.NewGate()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load authorization policy")
	}
	tokens, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize token manager")
	}
	hasher := auth.NewBcryptHasher(0)

	// Initialize adapters
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	locationAdapter := database.NewLocationAdapter(pgClient)
	amenityAdapter := database.NewAmenityAdapter(pgClient)
	placeAdapter := database.NewPlaceAdapter(pgClient)
	reviewAdapter := database.NewReviewAdapter(pgClient)
	favoriteAdapter := database.NewFavoriteAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	roleAdapter := database.NewRoleAdapter(pgClient)

	// Initialize services
	authService := services.NewAuthService(userAdapter, roleAdapter, tokens, hasher, directoryMetrics)
	categoryService := services.NewCategoryService(categoryAdapter, placeAdapter, gate)
	locationService := services.NewLocationService(locationAdapter, placeAdapter, gate)
	amenityService := services.NewAmenityService(amenityAdapter, gate)
	placeService := services.NewPlaceService(placeAdapter, locationAdapter, categoryAdapter, amenityAdapter, pgClient, placeSearch, gate)
	reviewService := services.NewReviewService(reviewAdapter, placeAdapter, pgClient, gate, directoryMetrics)
	favoriteService := services.NewFavoriteService(favoriteAdapter, placeAdapter, gate, directoryMetrics)
	userService := services.NewUserService(userAdapter, roleAdapter, reviewAdapter, placeAdapter, pgClient, hasher, gate, directoryMetrics)
	roleService := services.NewRoleService(roleAdapter, gate)
	statsService := services.NewStatsService(userAdapter, categoryAdapter, roleAdapter, locationAdapter, placeAdapter, reviewAdapter, gate)
	recommendationService := services.NewRecommendationService(categoryAdapter, locationAdapter, completion, recommendationCache, cfg.Cache.RecommendationTTL, directoryMetrics)

	var cacheMiddleware *middleware.CacheMiddleware
	var cacheInvalidationService *services.CacheInvalidationService
	if eventBus != nil {
		categoryService.SetEventBus(eventBus)
		locationService.SetEventBus(eventBus)
		amenityService.SetEventBus(eventBus)
		placeService.SetEventBus(eventBus)
		reviewService.SetEventBus(eventBus)

		cacheInvalidationService = services.NewCacheInvalidationService(cacheProvider, eventBus)
		if err := cacheInvalidationService.Start(); err != nil {
			logger.Warn().Err(err).Msg("Failed to start cache invalidation, response cache disabled")
			cacheInvalidationService = nil
		} else {
			cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, cfg.Cache.PublicTTL, metrics)
		}
	}

	if cfg.Auth.BootstrapAdmin() {
		created, err := authService.BootstrapAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to bootstrap administrator account")
		}
		if created {
			logger.Info().Str("email", cfg.Auth.AdminEmail).Msg("Bootstrap administrator created")
		}
	}

	healthChecks := map[string]handlers.HealthCheck{
		"postgres": pgClient.Ping,
		"redis":    nil,
	}
	if redisClient != nil {
		healthChecks["redis"] = redisClient.Ping
	}

	router := routes.NewRouter(routes.Handlers{
		Auth:      handlers.NewAuthHandler(authService, handlers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}),
		Category:  handlers.NewCategoryHandler(categoryService, recommendationService),
		Location:  handlers.NewLocationHandler(locationService),
		Amenity:   handlers.NewAmenityHandler(amenityService),
		Place:     handlers.NewPlaceHandler(placeService),
		Review:    handlers.NewReviewHandler(reviewService),
		Favorite:  handlers.NewFavoriteHandler(favoriteService),
		User:      handlers.NewUserHandler(userService),
		Admin:     handlers.NewAdminHandler(roleService, statsService),
		Health:    handlers.NewHealthHandler(healthChecks),
		Telemetry: observability.MetricsHandler(registry),
	}, routes.Options{
		AllowedOrigins:           cfg.Server.AllowedOrigins,
		Session:                  authService,
		SessionCookie:            cfg.Auth.CookieName,
		Cache:                    cacheMiddleware,
		Metrics:                  metrics,
		AuthPerMinute:            cfg.Auth.LoginPerMinute,
		RecommendationsPerMinute: cfg.OpenAI.RequestsPerMin,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if cacheInvalidationService != nil {
		cacheInvalidationService.Stop()
	}

	logger.Info().Msg("Server exited")
}
