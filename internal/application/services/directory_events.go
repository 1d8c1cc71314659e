package services

import (
	"context"
	"strconv"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
)

// eventPublisher announces committed catalog writes. Publishing never fails the write.
type eventPublisher struct {
	bus providers.EventBus
}

// SetEventBus attaches the bus used to announce writes
func (p *eventPublisher) SetEventBus(bus providers.EventBus) {
	p.bus = bus
}

func (p *eventPublisher) publish(ctx context.Context, resource entities.DirectoryResource, resourceID string, eventType entities.DirectoryEventType) {
	if p.bus == nil {
		return
	}

	event := entities.NewDirectoryEvent(resource, resourceID, eventType)
	if err := p.bus.Publish(ctx, providers.EventChannelDirectoryUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("resource", string(resource)).
			Str("resource_id", resourceID).
			Msg("Failed to publish directory event")
	}
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
