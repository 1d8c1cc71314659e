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

// CategoryInput is the full set of writable category fields
type CategoryInput struct {
	Query        string  `json:"query" validate:"required,slug,max=100"`
	Label        string  `json:"label" validate:"required,max=200"`
	Keyphrase    string  `json:"keyphrase" validate:"required,max=200"`
	Description  *string `json:"description"`
	Icon         *string `json:"icon" validate:"omitempty,max=100"`
	Color        *string `json:"color" validate:"omitempty,max=50"`
	Prompt       *string `json:"prompt"`
	DisplayOrder int     `json:"displayOrder" validate:"gte=0"`
	IsActive     *bool   `json:"isActive"`
}

// CategoryPatch is a partial category update
type CategoryPatch struct {
	Query        optional.Field[string] `json:"query"`
	Label        optional.Field[string] `json:"label"`
	Keyphrase    optional.Field[string] `json:"keyphrase"`
	Description  optional.Field[string] `json:"description"`
	Icon         optional.Field[string] `json:"icon"`
	Color        optional.Field[string] `json:"color"`
	Prompt       optional.Field[string] `json:"prompt"`
	DisplayOrder optional.Field[int]    `json:"displayOrder"`
	IsActive     optional.Field[bool]   `json:"isActive"`
}

func categoryInputFrom(c *entities.Category) CategoryInput {
	active := c.IsActive
	return CategoryInput{
		Query:        c.Query,
		Label:        c.Label,
		Keyphrase:    c.Keyphrase,
		Description:  c.Description,
		Icon:         c.Icon,
		Color:        c.Color,
		Prompt:       c.Prompt,
		DisplayOrder: c.DisplayOrder,
		IsActive:     &active,
	}
}

func (p CategoryPatch) apply(in *CategoryInput) {
	// Required fields take null as empty so validation rejects them.
	if p.Query.Set {
		in.Query = p.Query.Value
	}
	if p.Label.Set {
		in.Label = p.Label.Value
	}
	if p.Keyphrase.Set {
		in.Keyphrase = p.Keyphrase.Value
	}
	p.Description.ApplyToPtr(&in.Description)
	p.Icon.ApplyToPtr(&in.Icon)
	p.Color.ApplyToPtr(&in.Color)
	p.Prompt.ApplyToPtr(&in.Prompt)
	p.DisplayOrder.ApplyTo(&in.DisplayOrder)
	if p.IsActive.HasValue() {
		in.IsActive = p.IsActive.Ptr()
	}
}

func (in CategoryInput) applyTo(c *entities.Category) {
	c.Query = in.Query
	c.Label = in.Label
	c.Keyphrase = in.Keyphrase
	c.Description = in.Description
	c.Icon = in.Icon
	c.Color = in.Color
	c.Prompt = in.Prompt
	c.DisplayOrder = in.DisplayOrder
	c.IsActive = boolOr(in.IsActive, true)
}

// CategoryService handles business logic for categories
type CategoryService struct {
	eventPublisher
	repo   repositories.CategoryRepository
	places repositories.PlaceRepository
	gate   auth.Authorizer
}

// NewCategoryService creates a new category service
func NewCategoryService(repo repositories.CategoryRepository, places repositories.PlaceRepository, gate auth.Authorizer) *CategoryService {
	return &CategoryService{
		repo:   repo,
		places: places,
		gate:   gate,
	}
}

// ListActive returns the public category list ordered by display order
func (s *CategoryService) ListActive(ctx context.Context) ([]*entities.Category, error) {
	return s.repo.ListActive(ctx)
}

// GetByQuery retrieves an active category by its slug
func (s *CategoryService) GetByQuery(ctx context.Context, query string) (*entities.Category, error) {
	category, err := s.repo.GetByQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if !category.IsActive {
		return nil, apperrors.NewNotFoundError("Category not found")
	}
	return category, nil
}

// List returns the administrative category list
func (s *CategoryService) List(ctx context.Context, identity *auth.Identity, filter repositories.CategoryFilter) ([]*entities.Category, int, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// GetByID retrieves any category, active or not
func (s *CategoryService) GetByID(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Create validates and stores a new category
func (s *CategoryService) Create(ctx context.Context, identity *auth.Identity, input CategoryInput) (*entities.Category, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return nil, err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByQuery(ctx, input.Query)
	if err := ensureAvailable(err, false, "query"); err != nil {
		return nil, err
	}

	category := &entities.Category{}
	input.applyTo(category)
	if err := s.repo.Create(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceCategory, idString(category.ID), entities.DirectoryEventCreated)
	return category, nil
}

// Update applies a partial update to a category
func (s *CategoryService) Update(ctx context.Context, identity *auth.Identity, id int64, patch CategoryPatch) (*entities.Category, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := categoryInputFrom(category)
	patch.apply(&input)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	if input.Query != category.Query {
		existing, err := s.repo.GetByQuery(ctx, input.Query)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "query"); err != nil {
			return nil, err
		}
	}

	input.applyTo(category)
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceCategory, idString(id), entities.DirectoryEventUpdated)
	return category, nil
}

// Toggle flips a category's visibility
func (s *CategoryService) Toggle(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error) {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return nil, err
	}

	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	category.IsActive = !category.IsActive
	if err := s.repo.Update(ctx, category); err != nil {
		return nil, err
	}

	s.publish(ctx, entities.ResourceCategory, idString(id), entities.DirectoryEventUpdated)
	return category, nil
}

// Delete removes a category that no place uses
func (s *CategoryService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	if err := s.gate.Authorize(identity, auth.PermWriteCategories); err != nil {
		return err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.places.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflictError("Cannot delete category with associated places")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, entities.ResourceCategory, idString(id), entities.DirectoryEventDeleted)
	return nil
}
