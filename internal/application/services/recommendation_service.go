package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// RecommendationCachePrefix namespaces cached recommendation texts
const RecommendationCachePrefix = "recommendations:"

// Recommendation is generated guidance for a category in a location
type Recommendation struct {
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Text        string    `json:"text"`
	Cached      bool      `json:"cached"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// RecommendationService renders category prompts for a location and asks the
// completion provider for suggestions, caching the answer
type RecommendationService struct {
	categories repositories.CategoryRepository
	locations  repositories.LocationRepository
	completion providers.CompletionProvider
	cache      providers.CacheProvider
	breaker    *gobreaker.CircuitBreaker[string]
	ttl        time.Duration
	metrics    *observability.DirectoryMetrics
}

// NewRecommendationService creates a new recommendation service. completion
// and cache may be nil.
func NewRecommendationService(
	categories repositories.CategoryRepository,
	locations repositories.LocationRepository,
	completion providers.CompletionProvider,
	cache providers.CacheProvider,
	ttl time.Duration,
	metrics *observability.DirectoryMetrics,
) *RecommendationService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "completion",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			observability.GetLogger().Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	})

	return &RecommendationService{
		categories: categories,
		locations:  locations,
		completion: completion,
		cache:      cache,
		breaker:    breaker,
		ttl:        ttl,
		metrics:    metrics,
	}
}

// Recommend returns suggestions for an active category in a named location
func (s *RecommendationService) Recommend(ctx context.Context, categoryQuery, locationName string) (*Recommendation, error) {
	locationName = strings.TrimSpace(locationName)
	if locationName == "" {
		return nil, apperrors.NewValidationError("location is required")
	}

	category, err := s.categories.GetByQuery(ctx, categoryQuery)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperrors.NewNotFoundError("Category not found")
	}

	location, err := s.locations.GetByName(ctx, locationName)
	if err != nil {
		return nil, err
	}

	prompt, ok := category.RenderPrompt(location.DisplayName)
	if !ok {
		return nil, apperrors.NewValidationError("category has no recommendation prompt")
	}

	key := recommendationKey(location.Name, prompt)
	if cached := s.lookup(ctx, key); cached != nil {
		s.metrics.Recommendation("hit")
		cached.Cached = true
		return cached, nil
	}

	if s.completion == nil {
		s.metrics.Recommendation("error")
		return nil, apperrors.NewExternalError("Recommendations are not configured", nil)
	}

	text, err := s.breaker.Execute(func() (string, error) {
		return s.completion.Complete(ctx, prompt)
	})
	if err != nil {
		s.metrics.Recommendation("error")
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.NewExternalError("Recommendations are temporarily unavailable", err)
		}
		return nil, apperrors.NewExternalError("Failed to generate recommendations", err)
	}

	rec := &Recommendation{
		Category:    category.Query,
		Location:    location.Name,
		Text:        text,
		GeneratedAt: time.Now().UTC(),
	}
	s.store(ctx, key, rec)
	s.metrics.Recommendation("generated")
	return rec, nil
}

func (s *RecommendationService) lookup(ctx context.Context, key string) *Recommendation {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, providers.ErrCacheMiss) {
			observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Recommendation cache read failed")
		}
		return nil
	}
	var rec Recommendation
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil
	}
	return &rec
}

func (s *RecommendationService) store(ctx context.Context, key string, rec *Recommendation) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, int(s.ttl.Seconds())); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Recommendation cache write failed")
	}
}

func recommendationKey(location, prompt string) string {
	sum := sha256.Sum256([]byte(location + "\x00" + prompt))
	return RecommendationCachePrefix + hex.EncodeToString(sum[:])
}
