package services

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
)

// RatingProjector maintains Place.rating as the rounded mean of the place's
// review ratings. It is the only writer of the rating column and runs inside
// the transaction of the review write that triggered it, after the place row
// has been locked.
type RatingProjector struct {
	places  repositories.PlaceRepository
	reviews repositories.ReviewRepository
	metrics *observability.DirectoryMetrics
}

// NewRatingProjector creates a new rating projector
func NewRatingProjector(places repositories.PlaceRepository, reviews repositories.ReviewRepository, metrics *observability.DirectoryMetrics) *RatingProjector {
	return &RatingProjector{
		places:  places,
		reviews: reviews,
		metrics: metrics,
	}
}

// Recompute reads every rating of the place and writes the new projection
func (p *RatingProjector) Recompute(ctx context.Context, placeID string) (*float64, error) {
	ratings, err := p.reviews.RatingsForPlace(ctx, placeID)
	if err != nil {
		return nil, err
	}

	rating := entities.AverageRating(ratings)
	if err := p.places.SetRating(ctx, placeID, rating); err != nil {
		return nil, err
	}

	p.metrics.RatingRecomputed()
	return rating, nil
}
