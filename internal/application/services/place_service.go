package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// PlaceImageInput is one submitted image; order and primary flag come from its position
type PlaceImageInput struct {
	URL     string  `json:"url" validate:"required,max=2048"`
	Alt     *string `json:"alt" validate:"omitempty,max=255"`
	Caption *string `json:"caption" validate:"omitempty,max=500"`
}

// BusinessHoursInput is one submitted day of opening hours
type BusinessHoursInput struct {
	DayOfWeek int     `json:"dayOfWeek" validate:"weekday"`
	OpenTime  *string `json:"openTime" validate:"omitempty,max=10"`
	CloseTime *string `json:"closeTime" validate:"omitempty,max=10"`
	IsClosed  bool    `json:"isClosed"`
}

// ContactInfoInput is one submitted contact channel
type ContactInfoInput struct {
	Type      string  `json:"type" validate:"required,max=50"`
	Value     string  `json:"value" validate:"required,max=255"`
	Label     *string `json:"label" validate:"omitempty,max=100"`
	IsPrimary bool    `json:"isPrimary"`
}

// SEOInput is the submitted search metadata
type SEOInput struct {
	Title       *string `json:"title" validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Keywords    *string `json:"keywords"`
	Canonical   *string `json:"canonical" validate:"omitempty,max=2048"`
}

// PlaceInput is a full place write including its owned collections
type PlaceInput struct {
	Name          string               `json:"name" validate:"required,max=200"`
	Slug          string               `json:"slug" validate:"required,slug,max=200"`
	Description   string               `json:"description" validate:"required"`
	Address       *string              `json:"address"`
	Phone         *string              `json:"phone" validate:"omitempty,max=50"`
	Website       *string              `json:"website" validate:"omitempty,max=2048"`
	Hours         *string              `json:"hours"`
	PriceRange    *string              `json:"priceRange" validate:"omitempty,max=20"`
	Highlights    []string             `json:"highlights" validate:"omitempty,dive,required"`
	IsActive      *bool                `json:"isActive"`
	IsVerified    *bool                `json:"isVerified"`
	LocationID    int64                `json:"locationId" validate:"required"`
	CategoryID    int64                `json:"categoryId" validate:"required"`
	Images        []PlaceImageInput    `json:"images" validate:"omitempty,dive"`
	AmenityIDs    []int64              `json:"amenityIds" validate:"omitempty,dive,gt=0"`
	BusinessHours []BusinessHoursInput `json:"businessHours" validate:"omitempty,dive"`
	ContactInfo   []ContactInfoInput   `json:"contactInfo" validate:"omitempty,dive"`
	SEO           *SEOInput            `json:"seo"`
}

// PlacePatch is a partial place update. A present collection key replaces the
// whole stored collection; an absent key leaves it alone.
type PlacePatch struct {
	Name          optional.Field[string]               `json:"name"`
	Slug          optional.Field[string]               `json:"slug"`
	Description   optional.Field[string]               `json:"description"`
	Address       optional.Field[string]               `json:"address"`
	Phone         optional.Field[string]               `json:"phone"`
	Website       optional.Field[string]               `json:"website"`
	Hours         optional.Field[string]               `json:"hours"`
	PriceRange    optional.Field[string]               `json:"priceRange"`
	Highlights    optional.Field[[]string]             `json:"highlights"`
	IsActive      optional.Field[bool]                 `json:"isActive"`
	IsVerified    optional.Field[bool]                 `json:"isVerified"`
	LocationID    optional.Field[int64]                `json:"locationId"`
	CategoryID    optional.Field[int64]                `json:"categoryId"`
	Images        optional.Field[[]PlaceImageInput]    `json:"images"`
	AmenityIDs    optional.Field[[]int64]              `json:"amenityIds"`
	BusinessHours optional.Field[[]BusinessHoursInput] `json:"businessHours"`
	ContactInfo   optional.Field[[]ContactInfoInput]   `json:"contactInfo"`
	SEO           optional.Field[SEOInput]             `json:"seo"`
}

type seoOp int

const (
	seoKeep seoOp = iota
	seoUpsert
	seoDelete
)

// placeWrite is one logical place write: base columns plus whole-collection replacements
type placeWrite struct {
	place     *entities.Place
	images    entities.CollectionUpdate[entities.PlaceImage]
	amenities entities.CollectionUpdate[int64]
	hours     entities.CollectionUpdate[entities.BusinessHours]
	contacts  entities.CollectionUpdate[entities.ContactInfo]
	seoOp     seoOp
	seo       *entities.SEO
}

func (in PlaceInput) applyTo(p *entities.Place) {
	p.Name = in.Name
	p.Slug = in.Slug
	p.Description = in.Description
	p.Address = in.Address
	p.Phone = in.Phone
	p.Website = in.Website
	p.Hours = in.Hours
	p.PriceRange = in.PriceRange
	p.Highlights = in.Highlights
	p.IsActive = boolOr(in.IsActive, true)
	p.IsVerified = boolOr(in.IsVerified, false)
	p.LocationID = in.LocationID
	p.CategoryID = in.CategoryID
}

func imagesFrom(inputs []PlaceImageInput) []entities.PlaceImage {
	images := make([]entities.PlaceImage, len(inputs))
	for i, in := range inputs {
		images[i] = entities.PlaceImage{URL: in.URL, Alt: in.Alt, Caption: in.Caption}
	}
	return entities.OrderImages(images)
}

func hoursFrom(inputs []BusinessHoursInput) []entities.BusinessHours {
	hours := make([]entities.BusinessHours, len(inputs))
	for i, in := range inputs {
		hours[i] = entities.BusinessHours{
			DayOfWeek: in.DayOfWeek,
			OpenTime:  in.OpenTime,
			CloseTime: in.CloseTime,
			IsClosed:  in.IsClosed,
		}
	}
	return hours
}

func contactsFrom(inputs []ContactInfoInput) []entities.ContactInfo {
	contacts := make([]entities.ContactInfo, len(inputs))
	for i, in := range inputs {
		contacts[i] = entities.ContactInfo{
			Type:      in.Type,
			Value:     in.Value,
			Label:     in.Label,
			IsPrimary: in.IsPrimary,
		}
	}
	return contacts
}

func seoFrom(in SEOInput) *entities.SEO {
	return &entities.SEO{
		Title:       in.Title,
		Description: in.Description,
		Keywords:    in.Keywords,
		Canonical:   in.Canonical,
	}
}

// PlaceService handles business logic for places and their owned collections
type PlaceService struct {
	eventPublisher
	repo       repositories.PlaceRepository
	locations  repositories.LocationRepository
	categories repositories.CategoryRepository
	amenities  repositories.AmenityRepository
	tx         repositories.Transactor
	search     providers.PlaceSearchProvider
	gate       auth.Authorizer
}

// NewPlaceService creates a new place service. search may be nil.
func NewPlaceService(
	repo repositories.PlaceRepository,
	locations repositories.LocationRepository,
	categories repositories.CategoryRepository,
	amenities repositories.AmenityRepository,
	tx repositories.Transactor,
	search providers.PlaceSearchProvider,
	gate auth.Authorizer,
) *PlaceService {
	return &PlaceService{
		repo:       repo,
		locations:  locations,
		categories: categories,
		amenities:  amenities,
		tx:         tx,
		search:     search,
		gate:       gate,
	}
}

// List returns a page of places. Inactive places are only included for
// identities allowed to see them.
func (s *PlaceService) List(ctx context.Context, identity *auth.Identity, filter repositories.PlaceFilter) ([]*entities.Place, int, error) {
	if filter.IncludeAll && !s.gate.Can(identity, auth.PermReadInactivePlaces) {
		filter.IncludeAll = false
	}
	return s.repo.List(ctx, filter)
}

// Get retrieves a place with all of its details
func (s *PlaceService) Get(ctx context.Context, identity *auth.Identity, id string) (*entities.Place, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, identity, place)
}

// GetBySlug retrieves a place by slug with all of its details
func (s *PlaceService) GetBySlug(ctx context.Context, identity *auth.Identity, slug string) (*entities.Place, error) {
	place, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.withDetails(ctx, identity, place)
}

func (s *PlaceService) withDetails(ctx context.Context, identity *auth.Identity, place *entities.Place) (*entities.Place, error) {
	if !place.IsActive && !s.gate.Can(identity, auth.PermReadInactivePlaces) {
		return nil, apperrors.NewNotFoundError("Place not found")
	}
	if err := s.repo.LoadDetails(ctx, place); err != nil {
		return nil, err
	}
	return place, nil
}

// Search runs a full-text query against the search index, falling back to
// the database list when no index is configured or the index fails.
func (s *PlaceService) Search(ctx context.Context, query providers.PlaceSearchQuery) ([]*entities.Place, int, error) {
	if s.search != nil {
		ids, total, err := s.search.Search(ctx, query)
		if err == nil {
			places, err := s.repo.GetByIDs(ctx, ids)
			if err != nil {
				return nil, 0, err
			}
			active := places[:0]
			for _, p := range places {
				if p.IsActive {
					active = append(active, p)
				}
			}
			return active, total, nil
		}
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("Place search index unavailable, falling back to database")
	}

	return s.repo.List(ctx, repositories.PlaceFilter{
		Search:   query.Text,
		Location: query.Location,
		Category: query.Category,
		Page:     query.Page,
	})
}

// Create stores a place and all of its collections as one transaction
func (s *PlaceService) Create(ctx context.Context, identity *auth.Identity, input PlaceInput) (*entities.Place, error) {
	ctx, span := observability.StartSpan(ctx, "PlaceService.Create")
	defer span.End()

	if err := s.gate.Authorize(identity, auth.PermWritePlaces); err != nil {
		return nil, err
	}

	if input.Slug == "" {
		input.Slug = entities.Slugify(input.Name)
	}
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	_, err := s.repo.GetBySlug(ctx, input.Slug)
	if err := ensureAvailable(err, false, "slug"); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, &input.LocationID, &input.CategoryID, input.AmenityIDs); err != nil {
		return nil, err
	}

	place := &entities.Place{ID: uuid.New().String()}
	input.applyTo(place)

	write := placeWrite{
		place:     place,
		images:    entities.ReplaceCollection(imagesFrom(input.Images)),
		amenities: entities.ReplaceCollection(input.AmenityIDs),
		hours:     entities.ReplaceCollection(hoursFrom(input.BusinessHours)),
		contacts:  entities.ReplaceCollection(contactsFrom(input.ContactInfo)),
	}
	if input.SEO != nil {
		write.seoOp = seoUpsert
		write.seo = seoFrom(*input.SEO)
	}

	observability.SetSpanAttributes(span, attribute.String("place.id", place.ID))

	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, place); err != nil {
			return err
		}
		return s.writeCollections(ctx, write)
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return s.afterWrite(ctx, place.ID, entities.DirectoryEventCreated)
}

// Update applies a partial update. Supplied collections replace the stored
// ones inside the same transaction as the base columns.
func (s *PlaceService) Update(ctx context.Context, identity *auth.Identity, id string, patch PlacePatch) (*entities.Place, error) {
	ctx, span := observability.StartSpan(ctx, "PlaceService.Update")
	defer span.End()
	observability.SetSpanAttributes(span, attribute.String("place.id", id))

	if err := s.gate.Authorize(identity, auth.PermWritePlaces); err != nil {
		return nil, err
	}

	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input := placeInputFrom(place)
	patch.apply(&input)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	if input.Slug != place.Slug {
		existing, err := s.repo.GetBySlug(ctx, input.Slug)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "slug"); err != nil {
			return nil, err
		}
	}

	var locationID, categoryID *int64
	if input.LocationID != place.LocationID {
		locationID = &input.LocationID
	}
	if input.CategoryID != place.CategoryID {
		categoryID = &input.CategoryID
	}
	if err := s.checkReferences(ctx, locationID, categoryID, input.AmenityIDs); err != nil {
		return nil, err
	}

	input.applyTo(place)
	write := patch.collections(place, input)

	if err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, place); err != nil {
			return err
		}
		return s.writeCollections(ctx, write)
	}); err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	return s.afterWrite(ctx, id, entities.DirectoryEventUpdated)
}

// Delete removes a place; its owned rows cascade
func (s *PlaceService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	if err := s.gate.Authorize(identity, auth.PermDeletePlaces); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.Delete(ctx, id); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).Str("place_id", id).Msg("Failed to remove place from search index")
		}
	}

	s.publish(ctx, entities.ResourcePlace, id, entities.DirectoryEventDeleted)
	return nil
}

// Reindex pushes every active place into the search index and returns how many were indexed
func (s *PlaceService) Reindex(ctx context.Context, batchSize int) (int, error) {
	if s.search == nil {
		return 0, apperrors.NewExternalError("search index is not configured", nil)
	}

	indexed := 0
	for number := 1; ; number++ {
		page := entities.NewPage(number, batchSize)
		places, total, err := s.repo.List(ctx, repositories.PlaceFilter{Page: page})
		if err != nil {
			return indexed, err
		}

		for _, place := range places {
			if err := s.repo.LoadDetails(ctx, place); err != nil {
				return indexed, err
			}
			if err := s.search.Index(ctx, place); err != nil {
				return indexed, apperrors.NewExternalError("failed to index place "+place.ID, err)
			}
			indexed++
		}

		if len(places) == 0 || page.Number*page.Limit >= total {
			return indexed, nil
		}
	}
}

// checkReferences verifies that referenced rows exist. Nil ids are skipped.
func (s *PlaceService) checkReferences(ctx context.Context, locationID, categoryID *int64, amenityIDs []int64) error {
	if locationID != nil {
		_, err := s.locations.GetByID(ctx, *locationID)
		if err := ensureReference(err, "locationId"); err != nil {
			return err
		}
	}
	if categoryID != nil {
		_, err := s.categories.GetByID(ctx, *categoryID)
		if err := ensureReference(err, "categoryId"); err != nil {
			return err
		}
	}
	if len(amenityIDs) > 0 {
		existing, err := s.amenities.ExistingIDs(ctx, amenityIDs)
		if err != nil {
			return err
		}
		found := make(map[int64]struct{}, len(existing))
		for _, id := range existing {
			found[id] = struct{}{}
		}
		for _, id := range amenityIDs {
			if _, ok := found[id]; !ok {
				return apperrors.NewValidationError("amenityIds references a record that does not exist")
			}
		}
	}
	return nil
}

func (s *PlaceService) writeCollections(ctx context.Context, w placeWrite) error {
	id := w.place.ID
	if w.images.Replaces() {
		if err := s.repo.ReplaceImages(ctx, id, w.images.Items); err != nil {
			return err
		}
	}
	if w.amenities.Replaces() {
		if err := s.repo.ReplaceAmenities(ctx, id, w.amenities.Items); err != nil {
			return err
		}
	}
	if w.hours.Replaces() {
		if err := s.repo.ReplaceBusinessHours(ctx, id, w.hours.Items); err != nil {
			return err
		}
	}
	if w.contacts.Replaces() {
		if err := s.repo.ReplaceContactInfo(ctx, id, w.contacts.Items); err != nil {
			return err
		}
	}
	switch w.seoOp {
	case seoUpsert:
		return s.repo.UpsertSEO(ctx, id, w.seo)
	case seoDelete:
		return s.repo.DeleteSEO(ctx, id)
	}
	return nil
}

// afterWrite reloads the committed place, syncs the search index and announces the write
func (s *PlaceService) afterWrite(ctx context.Context, id string, eventType entities.DirectoryEventType) (*entities.Place, error) {
	place, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.LoadDetails(ctx, place); err != nil {
		return nil, err
	}

	s.syncIndex(ctx, place)
	s.publish(ctx, entities.ResourcePlace, id, eventType)
	return place, nil
}

func (s *PlaceService) syncIndex(ctx context.Context, place *entities.Place) {
	if s.search == nil {
		return
	}

	var err error
	if place.IsActive {
		err = s.search.Index(ctx, place)
	} else {
		err = s.search.Delete(ctx, place.ID)
	}
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Str("place_id", place.ID).Msg("Failed to sync place search index")
	}
}

func placeInputFrom(p *entities.Place) PlaceInput {
	active, verified := p.IsActive, p.IsVerified
	return PlaceInput{
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Address:     p.Address,
		Phone:       p.Phone,
		Website:     p.Website,
		Hours:       p.Hours,
		PriceRange:  p.PriceRange,
		Highlights:  p.Highlights,
		IsActive:    &active,
		IsVerified:  &verified,
		LocationID:  p.LocationID,
		CategoryID:  p.CategoryID,
	}
}

func (p PlacePatch) apply(in *PlaceInput) {
	if p.Name.Set {
		in.Name = p.Name.Value
	}
	if p.Slug.Set {
		in.Slug = p.Slug.Value
	}
	if p.Description.Set {
		in.Description = p.Description.Value
	}
	p.Address.ApplyToPtr(&in.Address)
	p.Phone.ApplyToPtr(&in.Phone)
	p.Website.ApplyToPtr(&in.Website)
	p.Hours.ApplyToPtr(&in.Hours)
	p.PriceRange.ApplyToPtr(&in.PriceRange)
	if p.Highlights.Set {
		in.Highlights = p.Highlights.Value
	}
	if p.IsActive.HasValue() {
		in.IsActive = p.IsActive.Ptr()
	}
	if p.IsVerified.HasValue() {
		in.IsVerified = p.IsVerified.Ptr()
	}
	if p.LocationID.Set {
		in.LocationID = p.LocationID.Value
	}
	if p.CategoryID.Set {
		in.CategoryID = p.CategoryID.Value
	}

	// Supplied collections are validated with the rest of the input.
	if p.Images.Set {
		in.Images = p.Images.Value
	}
	if p.AmenityIDs.Set {
		in.AmenityIDs = p.AmenityIDs.Value
	}
	if p.BusinessHours.Set {
		in.BusinessHours = p.BusinessHours.Value
	}
	if p.ContactInfo.Set {
		in.ContactInfo = p.ContactInfo.Value
	}
	if p.SEO.HasValue() {
		seo := p.SEO.Value
		in.SEO = &seo
	}
}

func (p PlacePatch) collections(place *entities.Place, in PlaceInput) placeWrite {
	write := placeWrite{
		place:     place,
		images:    entities.KeepCollection[entities.PlaceImage](),
		amenities: entities.KeepCollection[int64](),
		hours:     entities.KeepCollection[entities.BusinessHours](),
		contacts:  entities.KeepCollection[entities.ContactInfo](),
	}
	if p.Images.Set {
		write.images = entities.ReplaceCollection(imagesFrom(in.Images))
	}
	if p.AmenityIDs.Set {
		write.amenities = entities.ReplaceCollection(in.AmenityIDs)
	}
	if p.BusinessHours.Set {
		write.hours = entities.ReplaceCollection(hoursFrom(in.BusinessHours))
	}
	if p.ContactInfo.Set {
		write.contacts = entities.ReplaceCollection(contactsFrom(in.ContactInfo))
	}
	switch {
	case p.SEO.Null:
		write.seoOp = seoDelete
	case p.SEO.Set:
		write.seoOp = seoUpsert
		write.seo = seoFrom(p.SEO.Value)
	}
	return write
}
