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

// LocationInput is the full set of writable location fields
type LocationInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	DisplayName string  `json:"displayName" validate:"required,max=200"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// LocationPatch is a partial location update
type LocationPatch struct {
	Name        optional.Field[string] `json:"name"`
	DisplayName optional.Field[string] `json:"displayName"`
	Description optional.Field[string] `json:"description"`
	IsActive    optional.Field[bool]   `json:"isActive"`
}

func (p LocationPatch) apply(in *LocationInput) {
	if p.Name.Set {
		in.Name = p.Name.Value
	}
	if p.DisplayName.Set {
		in.DisplayName = p.DisplayName.Value
	}
	p.Description.ApplyToPtr(&in.Description)
	if p.IsActive.HasValue() {
		in.IsActive = p.IsActive.Ptr()
	}
}

func (in LocationInput) applyTo(l *entities.Location) {
	l.Name = in.Name
	l.DisplayName = in.DisplayName
	l.Description = in.Description
	l.IsActive = boolOr(in.IsActive, true)
}

// LocationService handles business logic for locations
type LocationService struct {
	eventPublisher
	repo   repositories.LocationRepository
	places repositories.PlaceRepository
	gate   auth.Authorizer
}

// NewLocationService creates a new location service
func NewLocationService(repo repositories.LocationRepository, places repositories.PlaceRepository, gate auth.Authorizer) *LocationService {
	return &LocationService{
		repo:   repo,
		places: places,
		gate:   gate,
	}
}

// List returns locations with their place counts
func (s *LocationService) List(ctx context.Context, filter repositories.LocationFilter) ([]*entities.Location, int, error) {
	return s.repo.List(ctx, filter)
}

// GetByID retrieves a location with its place count
func (s *LocationService) GetByID(ctx context.Context, id int64) (*entities.Location, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new location
func (s *LocationService) Create(ctx context.Context, identity *auth.Identity, input LocationInput) (*entities.Location, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteLocations); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByName(ctx, input.Name)
	if err := ensureAvailable(err, false, "name"); err != nil {
		return nil, err
	}

	location := &entities.Location{}
	input.applyTo(location)
	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceLocation, idString(location.ID), entities.DirectoryEventCreated)
	return location, nil
}

// Update applies a partial update to a location
func (s *LocationService) Update(ctx context.Context, identity *auth.Identity, id int64, patch LocationPatch) (*entities.Location, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteLocations); err != nil {
		return nil, err
	}

	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	active := location.IsActive
	input := LocationInput{
		Name:        location.Name,
		DisplayName: location.DisplayName,
		Description: location.Description,
		IsActive:    &active,
	}
	patch.apply(&input)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	if input.Name != location.Name {
		existing, err := s.repo.GetByName(ctx, input.Name)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "name"); err != nil {
			return nil, err
		}
	}

	input.applyTo(location)
	if err := s.repo.Update(ctx, location); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceLocation, idString(id), entities.DirectoryEventUpdated)
	return location, nil
}

// Delete removes a location that no place references
func (s *LocationService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	if err := s.gate.Authorize(identity, auth.PermWriteLocations); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.places.CountByLocation(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("Cannot delete location with associated places")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.ResourceLocation, idString(id), entities.DirectoryEventDeleted)
	return nil
}
