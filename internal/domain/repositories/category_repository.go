package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// CategoryRepository defines the interface for category operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id int64) (*entities.Category, error)
	GetByQuery(ctx context.Context, query string) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	Delete(ctx context.Context, id int64) error

	// ListActive returns active categories ordered by display order
	ListActive(ctx context.Context) ([]*entities.Category, error)

	// List returns a page of categories matching the filter and the total count
	List(ctx context.Context, filter CategoryFilter) ([]*entities.Category, int, error)

	Count(ctx context.Context) (int, error)
}

// CategoryFilter defines filters for the administrative category list
type CategoryFilter struct {
	Search string
	Page   entities.Page
}
