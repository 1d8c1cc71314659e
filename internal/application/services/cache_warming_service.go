package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/retry"
)

// warmingPageSize is how many locations are loaded per page
const warmingPageSize = 100

// Recommender produces recommendation text for a category in a location
type Recommender interface {
	Recommend(ctx context.Context, categoryQuery, locationName string) (*Recommendation, error)
}

// WarmingSummary reports the outcome of a warming run
type WarmingSummary struct {
	TotalProcessed int
	Generated      int
	AlreadyCached  int
	FailureCount   int
}

type warmingJob struct {
	category string
	location string
}

// CacheWarmingService pre-generates recommendations for every active
// category and location pair so visitors rarely wait on the completion API
type CacheWarmingService struct {
	categories  repositories.CategoryRepository
	locations   repositories.LocationRepository
	recommender Recommender
	workerCount int
	maxAttempts int
}

// NewCacheWarmingService creates a new cache warming service
func NewCacheWarmingService(
	categories repositories.CategoryRepository,
	locations repositories.LocationRepository,
	recommender Recommender,
	workers int,
	maxAttempts int,
) *CacheWarmingService {
	if workers <= 0 {
		workers = 1
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return &CacheWarmingService{
		categories:  categories,
		locations:   locations,
		recommender: recommender,
		workerCount: workers,
		maxAttempts: maxAttempts,
	}
}

// WarmRecommendations fills the recommendation cache. Failed pairs are
// counted and logged; only listing failures abort the run.
func (s *CacheWarmingService) WarmRecommendations(ctx context.Context) (*WarmingSummary, error) {
	logger := observability.LoggerFromContext(ctx)

	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	prompted := make([]*entities.Category, 0, len(categories))
	for _, category := range categories {
		if _, ok := category.RenderPrompt(""); ok {
			prompted = append(prompted, category)
		}
	}

	locations, err := s.activeLocations(ctx)
	if err != nil {
		return nil, err
	}

	var processed, generated, cached, failure int64
	jobs := make(chan warmingJob, warmingPageSize)
	var wg sync.WaitGroup

	for i := 0; i < s.workerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				rec, err := s.warm(ctx, job)
				atomic.AddInt64(&processed, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&failure, 1)
					logger.Warn().Err(err).
						Str("category", job.category).
						Str("location", job.location).
						Msg("Failed to warm recommendation")
				case rec.Cached:
					atomic.AddInt64(&cached, 1)
				default:
					atomic.AddInt64(&generated, 1)
				}
			}
		}()
	}

produce:
	for _, category := range prompted {
		for _, location := range locations {
			select {
			case jobs <- warmingJob{category: category.Query, location: location}:
			case <-ctx.Done():
				break produce
			}
		}
	}

	close(jobs)
	wg.Wait()

	summary := &WarmingSummary{
		TotalProcessed: int(processed),
		Generated:      int(generated),
		AlreadyCached:  int(cached),
		FailureCount:   int(failure),
	}
	return summary, ctx.Err()
}

func (s *CacheWarmingService) warm(ctx context.Context, job warmingJob) (*Recommendation, error) {
	cfg := retry.RequestConfig()
	cfg.MaxAttempts = s.maxAttempts
	cfg.MaxTotalTimeout = time.Minute

	var rec *Recommendation
	err := retry.DoWithLog(ctx, cfg, "recommendation", func() error {
		result, err := s.recommender.Recommend(ctx, job.category, job.location)
		if err != nil {
			if !apperrors.IsType(err, apperrors.ErrorTypeExternal) {
				return retry.Permanent(err)
			}
			return err
		}
		rec = result
		return nil
	}, retry.LogAttempt("recommendation"))
	return rec, err
}

// activeLocations returns the names of every active location
func (s *CacheWarmingService) activeLocations(ctx context.Context) ([]string, error) {
	active := true
	var names []string
	for number := 1; ; number++ {
		page := entities.NewPage(number, warmingPageSize)
		locations, total, err := s.locations.List(ctx, repositories.LocationFilter{IsActive: &active, Page: page})
		if err != nil {
			return nil, fmt.Errorf("failed to list locations: %w", err)
		}
		for _, location := range locations {
			names = append(names, location.Name)
		}
		if len(locations) == 0 || page.Number*page.Limit >= total {
			return names, nil
		}
	}
}
