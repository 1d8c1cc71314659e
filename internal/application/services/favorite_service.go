package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// FavoriteInput names the place to save
type FavoriteInput struct {
	PlaceID string `json:"placeId" validate:"required"`
}

// FavoriteService manages the caller's saved places
type FavoriteService struct {
	repo    repositories.FavoriteRepository
	places  repositories.PlaceRepository
	gate    auth.Authorizer
	metrics *observability.DirectoryMetrics
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(repo repositories.FavoriteRepository, places repositories.PlaceRepository, gate auth.Authorizer, metrics *observability.DirectoryMetrics) *FavoriteService {
	return &FavoriteService{
		repo:    repo,
		places:  places,
		gate:    gate,
		metrics: metrics,
	}
}

// List returns the caller's favorites, newest first
func (s *FavoriteService) List(ctx context.Context, identity *auth.Identity, page entities.Page) ([]*entities.Favorite, int, error) {
	if err := s.gate.Authorize(identity, auth.PermManageFavorites); err != nil {
		return nil, 0, err
	}
	return s.repo.ListByUser(ctx, identity.UserID, page)
}

// IsFavorited reports whether the caller has saved the place
func (s *FavoriteService) IsFavorited(ctx context.Context, identity *auth.Identity, placeID string) (bool, error) {
	if err := s.gate.Authorize(identity, auth.PermManageFavorites); err != nil {
		return false, err
	}

	_, err := s.repo.Get(ctx, identity.UserID, placeID)
	if err == nil {
		return true, nil
	}
	if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return false, nil
	}
	return false, err
}

// Add saves a place for the caller. Saving it twice is a conflict.
func (s *FavoriteService) Add(ctx context.Context, identity *auth.Identity, input FavoriteInput) (*entities.Favorite, error) {
	if err := s.gate.Authorize(identity, auth.PermManageFavorites); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	place, err := s.places.GetByID(ctx, input.PlaceID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Get(ctx, identity.UserID, input.PlaceID); err == nil {
		return nil, apperrors.NewConflictError("Place is already in favorites")
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	favorite := &entities.Favorite{
		ID:      uuid.New().String(),
		PlaceID: input.PlaceID,
		UserID:  identity.UserID,
	}
	if err := s.repo.Create(ctx, favorite); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeConflict) {
			return nil, apperrors.NewConflictError("Place is already in favorites")
		}
		return nil, err
	}

	favorite.Place = place
	s.metrics.FavoriteWritten("create")
	return favorite, nil
}

// Remove deletes a saved place. ownerID selects another user's favorite and
// requires user management rights; empty means the caller's own.
func (s *FavoriteService) Remove(ctx context.Context, identity *auth.Identity, placeID, ownerID string) error {
	if err := s.gate.Authorize(identity, auth.PermManageFavorites); err != nil {
		return err
	}
	if ownerID == "" {
		ownerID = identity.UserID
	}
	if err := s.gate.AuthorizeOwner(identity, ownerID, auth.PermManageUsers); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, ownerID, placeID); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return apperrors.NewNotFoundError("Place is not in favorites")
		}
		return err
	}

	s.metrics.FavoriteWritten("delete")
	return nil
}
