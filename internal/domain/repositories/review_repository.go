package repositories

import (
	"context"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// ReviewRepository defines the interface for review operations
type ReviewRepository interface {
	Create(ctx context.Context, review *entities.Review) error
	GetByID(ctx context.Context, id string) (*entities.Review, error)
	GetByPlaceAndUser(ctx context.Context, placeID, userID string) (*entities.Review, error)
	Update(ctx context.Context, review *entities.Review) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ReviewFilter) ([]*entities.Review, int, error)

	// RatingsForPlace returns every rating recorded for a place
	RatingsForPlace(ctx context.Context, placeID string) ([]int, error)
	// PlaceIDsReviewedBy returns the distinct places a user has reviewed, in id order
	PlaceIDsReviewedBy(ctx context.Context, userID string) ([]string, error)

	Count(ctx context.Context) (int, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

// ReviewFilter defines filters for listing reviews
type ReviewFilter struct {
	PlaceID string
	UserID  string
	Rating  *int
	Page    entities.Page
}
