package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
)

// ResponseCachePrefix prefixes every cached public GET response
const ResponseCachePrefix = "http:cache:"

// invalidationRoutes maps a written resource to the cached routes it can make stale.
// Place writes change location place counts.
var invalidationRoutes = map[entities.DirectoryResource][]string{
	entities.ResourceCategory: {"/categories"},
	entities.ResourceLocation: {"/locations"},
	entities.ResourceAmenity:  {"/amenities"},
	entities.ResourcePlace:    {"/locations"},
}

// CacheInvalidationService drops cached public responses when the catalog changes
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start begins listening for directory events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelDirectoryUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to directory updates: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the listener and waits for it to exit
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	<-s.done
	observability.GetLogger().Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.DirectoryEvent) {
	defer close(s.done)
	for {
		select {
		case <-s.ctx.Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.DirectoryEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger().With().
		Str("event_id", event.ID).
		Str("resource", string(event.Resource)).
		Str("resource_id", event.ResourceID).
		Str("event_type", string(event.EventType)).
		Logger()

	for _, route := range invalidationRoutes[event.Resource] {
		if err := s.InvalidateRoute(ctx, route); err != nil {
			logger.Warn().Err(err).Str("route", route).Msg("Failed to invalidate cached responses")
			continue
		}
		logger.Debug().Str("route", route).Msg("Invalidated cached responses")
	}
}

// InvalidateRoute drops every cached response under a route prefix
func (s *CacheInvalidationService) InvalidateRoute(ctx context.Context, route string) error {
	pattern := ResponseCachePrefix + route + "*"
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		return fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
	}
	return nil
}

// InvalidateAll drops every cached public response
func (s *CacheInvalidationService) InvalidateAll(ctx context.Context) error {
	return s.cache.DeletePattern(ctx, ResponseCachePrefix+"*")
}
