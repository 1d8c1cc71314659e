package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/database"
	"github.com/zatekoja/tourism-directory/backend/internal/adapters/search"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/typesense"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	var batchSize int
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.IntVar(&batchSize, "batch", 100, "places loaded per page")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatal().Err(err).Str("interval", intervalValue).Msg("Invalid interval")
		}
		if interval <= 0 {
			log.Fatal().Msg("Interval must be greater than zero")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger("tourism-directory-indexer", cfg.Server.Environment)
	logger := observability.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pgClient.Close()

	typesenseClient, err := typesense.NewClient(ctx, &cfg.Typesense)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Typesense")
	}
	adapter := search.NewTypesenseAdapter(typesenseClient)

	gate, err := auth.NewGate()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load authorization policy")
	}

	placeService := services.NewPlaceService(
		database.NewPlaceAdapter(pgClient),
		database.NewLocationAdapter(pgClient),
		database.NewCategoryAdapter(pgClient),
		database.NewAmenityAdapter(pgClient),
		pgClient,
		adapter,
		gate,
	)

	for {
		if err := indexOnce(ctx, adapter, placeService, reset, batchSize); err != nil {
			logger.Error().Err(err).Msg("Reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		logger.Info().Dur("interval", interval).Msg("Reindex complete, waiting for next run")

		select {
		case <-ctx.Done():
			logger.Info().Msg("Reindex loop stopped")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, adapter *search.TypesenseAdapter, placeService *services.PlaceService, reset bool, batchSize int) error {
	logger := observability.GetLogger()
	start := time.Now()

	if reset {
		if err := adapter.ResetSchema(ctx); err != nil {
			return err
		}
		logger.Info().Msg("Places collection recreated")
	} else if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	indexed, err := placeService.Reindex(ctx, batchSize)
	if err != nil {
		return err
	}

	logger.Info().Int("places", indexed).Dur("took", time.Since(start)).Msg("Indexed places")
	return nil
}
