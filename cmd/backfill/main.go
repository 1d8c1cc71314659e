package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/cache"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/database"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/openai"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/redis"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

// backfill pre-generates category recommendations into the shared redis cache
func main() {
	var workers int
	var maxAttempts int

	flag.IntVar(&workers, "workers", 3, "Number of concurrent workers")
	flag.IntVar(&maxAttempts, "max-attempts", 3, "Attempts per category and location pair")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	observability.InitLogger("tourism-directory-backfill", cfg.Server.Environment)
	logger := observability.GetLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pgClient.Close()

	// Warming targets the redis cache the API reads from
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	completion, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create OpenAI client")
	}

	categoryAdapter := database.NewCategoryAdapter(pgClient)
	locationAdapter := database.NewLocationAdapter(pgClient)

	recommendations := services.NewRecommendationService(
		categoryAdapter,
		locationAdapter,
		completion,
		cache.NewRedisAdapter(redisClient),
		cfg.Cache.RecommendationTTL,
		observability.NewDirectoryMetrics(prometheus.NewRegistry()),
	)
	warmer := services.NewCacheWarmingService(categoryAdapter, locationAdapter, recommendations, workers, maxAttempts)

	start := time.Now()
	logger.Info().Int("workers", workers).Msg("Starting recommendation backfill")

	summary, err := warmer.WarmRecommendations(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Backfill failed")
	}
	if summary != nil {
		logger.Info().
			Dur("took", time.Since(start)).
			Int("processed", summary.TotalProcessed).
			Int("generated", summary.Generated).
			Int("already_cached", summary.AlreadyCached).
			Int("failed", summary.FailureCount).
			Msg("Backfill complete")
	}
}
