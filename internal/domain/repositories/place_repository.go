package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// PlaceRepository defines the interface for places and their owned child
// collections. Child replacements delete every existing row for the place and
// insert the given set; callers run them inside a transaction.
type PlaceRepository interface {
	// Create inserts the base place row
	Create(ctx context.Context, place *entities.Place) error

	// GetByID retrieves the base place with location and category summaries
	GetByID(ctx context.Context, id string) (*entities.Place, error)

	// GetByIDs retrieves base places preserving the order of ids; missing ids are skipped
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Place, error)

	GetBySlug(ctx context.Context, slug string) (*entities.Place, error)

	// Update writes the base place columns, never the rating
	Update(ctx context.Context, place *entities.Place) error

	// Delete removes the place; owned rows go with it
	Delete(ctx context.Context, id string) error

	// List returns a page of places matching the filter and the total count
	List(ctx context.Context, filter PlaceFilter) ([]*entities.Place, int, error)

	// LoadDetails fills images, amenities, business hours, contact info and SEO
	LoadDetails(ctx context.Context, place *entities.Place) error

	// LockByID takes a row lock on the place for the rest of the transaction
	LockByID(ctx context.Context, id string) error

	// SetRating writes the rating projection
	SetRating(ctx context.Context, id string, rating *float64) error

	ReplaceImages(ctx context.Context, placeID string, images []entities.PlaceImage) error
	ReplaceAmenities(ctx context.Context, placeID string, amenityIDs []int64) error
	ReplaceBusinessHours(ctx context.Context, placeID string, hours []entities.BusinessHours) error
	ReplaceContactInfo(ctx context.Context, placeID string, contacts []entities.ContactInfo) error
	UpsertSEO(ctx context.Context, placeID string, seo *entities.SEO) error
	DeleteSEO(ctx context.Context, placeID string) error

	CountByLocation(ctx context.Context, locationID int64) (int, error)
	CountByCategory(ctx context.Context, categoryID int64) (int, error)
	Count(ctx context.Context) (int, error)
}

// PlaceFilter defines filters for listing places
type PlaceFilter struct {
	Search     string
	Location   string
	Category   string
	MinRating  *float64
	IncludeAll bool
	Page       entities.Page
}
