package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// AmenityRepository defines the interface for amenity operations
type AmenityRepository interface {
	Create(ctx context.Context, amenity *entities.Amenity) error
	GetByID(ctx context.Context, id int64) (*entities.Amenity, error)
	GetByName(ctx context.Context, name string) (*entities.Amenity, error)

	// ExistingIDs returns the subset of ids that exist
	ExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	Update(ctx context.Context, amenity *entities.Amenity) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter AmenityFilter) ([]*entities.Amenity, int, error)

	// CountUsage returns how many places reference the amenity
	CountUsage(ctx context.Context, id int64) (int, error)
}

// AmenityFilter defines filters for listing amenities
type AmenityFilter struct {
	Search   string
	IsActive *bool
	Page     entities.Page
}
