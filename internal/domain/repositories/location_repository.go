package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// LocationRepository defines the interface for location operations.
// Reads fill PlaceCount.
type LocationRepository interface {
	Create(ctx context.Context, location *entities.Location) error
	GetByID(ctx context.Context, id int64) (*entities.Location, error)
	GetByName(ctx context.Context, name string) (*entities.Location, error)
	Update(ctx context.Context, location *entities.Location) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter LocationFilter) ([]*entities.Location, int, error)
	Count(ctx context.Context) (int, error)
}

// LocationFilter defines filters for listing locations
type LocationFilter struct {
	Search   string
	IsActive *bool
	Page     entities.Page
}
