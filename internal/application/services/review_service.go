package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// ReviewInput is a submitted review
type ReviewInput struct {
	PlaceID string  `json:"placeId" validate:"required"`
	Rating  int     `json:"rating" validate:"required,rating"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// ReviewPatch is a partial review update
type ReviewPatch struct {
	Rating  optional.Field[int]    `json:"rating"`
	Comment optional.Field[string] `json:"comment"`
}

// ReviewService handles reviews and keeps place ratings in step with them
type ReviewService struct {
	eventPublisher
	repo      repositories.ReviewRepository
	places    repositories.PlaceRepository
	tx        repositories.Transactor
	projector *RatingProjector
	gate      auth.Authorizer
	metrics   *observability.DirectoryMetrics
}

// NewReviewService creates a new review service
func NewReviewService(
	repo repositories.ReviewRepository,
	places repositories.PlaceRepository,
	tx repositories.Transactor,
	gate auth.Authorizer,
	metrics *observability.DirectoryMetrics,
) *ReviewService {
	return &ReviewService{
		repo:      repo,
		places:    places,
		tx:        tx,
		projector: NewRatingProjector(places, repo, metrics),
		gate:      gate,
		metrics:   metrics,
	}
}

// List returns a page of reviews, newest first
func (s *ReviewService) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, int, error) {
	return s.repo.List(ctx, filter)
}

// Get retrieves a review with its author
func (s *ReviewService) Get(ctx context.Context, id string) (*entities.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// Create stores the caller's review of a place and recomputes the place rating
func (s *ReviewService) Create(ctx context.Context, identity *auth.Identity, input ReviewInput) (*entities.Review, error) {
	ctx, span := observability.StartSpan(ctx, "ReviewService.Create")
	defer span.End()

	if err := s.gate.Authorize(identity, auth.PermCreateReview); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	review := &entities.Review{
		ID:      uuid.New().String(),
		PlaceID: input.PlaceID,
		UserID:  identity.UserID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.places.LockByID(ctx, review.PlaceID); err != nil {
			return err
		}

		_, err := s.repo.GetByPlaceAndUser(ctx, review.PlaceID, review.UserID)
		if err == nil {
			return apperrors.NewConflictError("You have already reviewed this place")
		}
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return err
		}

		if err := s.repo.Create(ctx, review); err != nil {
			return err
		}
		_, err = s.projector.Recompute(ctx, review.PlaceID)
		return err
	})
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	s.metrics.ReviewWritten("create")
	s.publish(ctx, entities.ResourceReview, review.ID, entities.DirectoryEventCreated)
	return s.repo.GetByID(ctx, review.ID)
}

// Update changes a review owned by the caller, or any review for moderators
func (s *ReviewService) Update(ctx context.Context, identity *auth.Identity, id string, patch ReviewPatch) (*entities.Review, error) {
	if err := s.gate.Authorize(identity, auth.PermCreateReview); err != nil {
		return nil, err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AuthorizeOwner(identity, review.UserID, auth.PermModerateReviews); err != nil {
		return nil, err
	}

	input := ReviewInput{PlaceID: review.PlaceID, Rating: review.Rating, Comment: review.Comment}
	if patch.Rating.Set {
		input.Rating = patch.Rating.Value
	}
	patch.Comment.ApplyToPtr(&input.Comment)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	review.Rating = input.Rating
	review.Comment = input.Comment

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.places.LockByID(ctx, review.PlaceID); err != nil {
			return err
		}
		if err := s.repo.Update(ctx, review); err != nil {
			return err
		}
		_, err := s.projector.Recompute(ctx, review.PlaceID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.metrics.ReviewWritten("update")
	s.publish(ctx, entities.ResourceReview, id, entities.DirectoryEventUpdated)
	return s.repo.GetByID(ctx, id)
}

// Delete removes a review owned by the caller, or any review for moderators
func (s *ReviewService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	if err := s.gate.Authorize(identity, auth.PermCreateReview); err != nil {
		return err
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate.AuthorizeOwner(identity, review.UserID, auth.PermModerateReviews); err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.places.LockByID(ctx, review.PlaceID); err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}
		_, err := s.projector.Recompute(ctx, review.PlaceID)
		return err
	})
	if err != nil {
		return err
	}

	s.metrics.ReviewWritten("delete")
	s.publish(ctx, entities.ResourceReview, id, entities.DirectoryEventDeleted)
	return nil
}
