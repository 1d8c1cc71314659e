package providers

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// PlaceSearchQuery is a full-text query against the place index
type PlaceSearchQuery struct {
	Text     string
	Location string
	Category string
	Page     entities.Page
}

// PlaceSearchProvider indexes places for full-text search
type PlaceSearchProvider interface {
	// Index upserts the searchable view of a place
	Index(ctx context.Context, place *entities.Place) error

	// Delete removes a place from the index
	Delete(ctx context.Context, placeID string) error

	// Search returns matching place ids in relevance order and the total hit count
	Search(ctx context.Context, query PlaceSearchQuery) ([]string, int, error)
}
