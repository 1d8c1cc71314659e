package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// FavoriteRepository defines the interface for favorite operations
type FavoriteRepository interface {
	Create(ctx context.Context, favorite *entities.Favorite) error
	Get(ctx context.Context, userID, placeID string) (*entities.Favorite, error)
	Delete(ctx context.Context, userID, placeID string) error

	// ListByUser returns a page of the user's favorites, newest first, with places attached
	ListByUser(ctx context.Context, userID string, page entities.Page) ([]*entities.Favorite, int, error)
}
