package services

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// AmenityInput is the full set of writable amenity fields
type AmenityInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Icon        *string `json:"icon" validate:"omitempty,max=100"`
	IsActive    *bool   `json:"isActive"`
}

// AmenityPatch is a partial amenity update
type AmenityPatch struct {
	Name        optional.Field[string] `json:"name"`
	Description optional.Field[string] `json:"description"`
	Icon        optional.Field[string] `json:"icon"`
	IsActive    optional.Field[bool]   `json:"isActive"`
}

func (in AmenityInput) applyTo(a *entities.Amenity) {
	a.Name = in.Name
	a.Description = in.Description
	a.Icon = in.Icon
	a.IsActive = boolOr(in.IsActive, true)
}

// AmenityService handles business logic for amenities
type AmenityService struct {
	eventPublisher
	repo repositories.AmenityRepository
	gate auth.Authorizer
}

// NewAmenityService creates a new amenity service
func NewAmenityService(repo repositories.AmenityRepository, gate auth.Authorizer) *AmenityService {
	return &AmenityService{repo: repo, gate: gate}
}

// List returns amenities ordered by name
func (s *AmenityService) List(ctx context.Context, filter repositories.AmenityFilter) ([]*entities.Amenity, int, error) {
	return s.repo.List(ctx, filter)
}

// GetByID retrieves an amenity
func (s *AmenityService) GetByID(ctx context.Context, id int64) (*entities.Amenity, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new amenity
func (s *AmenityService) Create(ctx context.Context, identity *auth.Identity, input AmenityInput) (*entities.Amenity, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteAmenities); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByName(ctx, input.Name)
	if err := ensureAvailable(err, false, "name"); err != nil {
		return nil, err
	}

	amenity := &entities.Amenity{}
	input.applyTo(amenity)
	if err := s.repo.Create(ctx, amenity); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceAmenity, idString(amenity.ID), entities.DirectoryEventCreated)
	return amenity, nil
}

// Update applies a partial update to an amenity
func (s *AmenityService) Update(ctx context.Context, identity *auth.Identity, id int64, patch AmenityPatch) (*entities.Amenity, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteAmenities); err != nil {
		return nil, err
	}

	amenity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := amenity.IsActive
	input := AmenityInput{
		Name:        amenity.Name,
		Description: amenity.Description,
		Icon:        amenity.Icon,
		IsActive:    &active,
	}
	if patch.Name.Set {
		input.Name = patch.Name.Value
	}
	patch.Description.ApplyToPtr(&input.Description)
	patch.Icon.ApplyToPtr(&input.Icon)
	if patch.IsActive.HasValue() {
		input.IsActive = patch.IsActive.Ptr()
	}

	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	if input.Name != amenity.Name {
		existing, err := s.repo.GetByName(ctx, input.Name)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "name"); err != nil {
			return nil, err
		}
	}

	input.applyTo(amenity)
	if err := s.repo.Update(ctx, amenity); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceAmenity, idString(id), entities.DirectoryEventUpdated)
	return amenity, nil
}

// Delete removes an amenity that no place offers
func (s *AmenityService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	if err := s.gate.Authorize(identity, auth.PermWriteAmenities); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	usage, err := s.repo.CountUsage(ctx, id)
	if err != nil {
		return err
	}
	if usage > 0 {
		return apperrors.NewConflictError("Cannot delete amenity that is assigned to places")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.ResourceAmenity, idString(id), entities.DirectoryEventDeleted)
	return nil
}
