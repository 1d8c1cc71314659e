package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// PlaceAdapter implements PlaceRepository
type PlaceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPlaceAdapter creates a new place adapter
func NewPlaceAdapter(client *postgres.Client) repositories.PlaceRepository {
	return &PlaceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var placeColumns = []interface{}{
	"p.id", "p.name", "p.slug", "p.description", "p.address", "p.phone", "p.website",
	"p.hours", "p.price_range", "p.highlights", "p.rating", "p.is_active", "p.is_verified",
	"p.location_id", "p.category_id", "p.created_at", "p.updated_at",
	goqu.L("(SELECT COUNT(*) FROM reviews r WHERE r.place_id = p.id)").As("review_count"),
	"l.name", "l.display_name",
	"c.query", "c.label", "c.icon", "c.color",
}

func (a *PlaceAdapter) baseQuery() *goqu.SelectDataset {
	return a.db.From(goqu.T("places").As("p")).
		Join(goqu.T("locations").As("l"), goqu.On(goqu.I("l.id").Eq(goqu.I("p.location_id")))).
		Join(goqu.T("categories").As("c"), goqu.On(goqu.I("c.id").Eq(goqu.I("p.category_id"))))
}

func placeRecord(p *entities.Place) goqu.Record {
	highlights := p.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	return goqu.Record{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"address":     nullString(p.Address),
		"phone":       nullString(p.Phone),
		"website":     nullString(p.Website),
		"hours":       nullString(p.Hours),
		"price_range": nullString(p.PriceRange),
		"highlights":  pq.Array(highlights),
		"is_active":   p.IsActive,
		"is_verified": p.IsVerified,
		"location_id": p.LocationID,
		"category_id": p.CategoryID,
		"updated_at":  p.UpdatedAt,
	}
}

// Create inserts the base place row
func (a *PlaceAdapter) Create(ctx context.Context, place *entities.Place) error {
	now := time.Now().UTC()
	place.CreatedAt = now
	place.UpdatedAt = now

	record := placeRecord(place)
	record["id"] = place.ID
	record["created_at"] = place.CreatedAt

	query, args, err := a.db.Insert("places").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to create place")
	}
	return nil
}

// GetByID retrieves the base place with location and category summaries
func (a *PlaceAdapter) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	return a.getBy(ctx, goqu.Ex{"p.id": id}, fmt.Sprintf("place %s not found", id))
}

// GetBySlug retrieves a place by slug
func (a *PlaceAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Place, error) {
	return a.getBy(ctx, goqu.Ex{"p.slug": slug}, fmt.Sprintf("place %s not found", slug))
}

// GetByIDs retrieves places in the order of ids, skipping ids that no longer exist
func (a *PlaceAdapter) GetByIDs(ctx context.Context, ids []string) ([]*entities.Place, error) {
	if len(ids) == 0 {
		return []*entities.Place{}, nil
	}

	query, args, err := a.baseQuery().Select(placeColumns...).Where(goqu.Ex{"p.id": ids}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	found, err := a.query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Place, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]*entities.Place, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

// Update writes the base place columns; rating is owned by SetRating
func (a *PlaceAdapter) Update(ctx context.Context, place *entities.Place) error {
	place.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("places").
		Set(placeRecord(place)).
		Where(goqu.Ex{"id": place.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("place %s not found", place.ID), "failed to update place")
}

// Delete removes a place; child rows, reviews and favorites cascade
func (a *PlaceAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("places").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("place %s not found", id), "failed to delete place")
}

// List returns a page of places, newest first
func (a *PlaceAdapter) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, int, error) {
	ds := a.baseQuery()
	if !filter.IncludeAll {
		ds = ds.Where(goqu.Ex{"p.is_active": true})
	}
	if filter.Search != "" {
		ds = ds.Where(containsAny(filter.Search, "p.name", "p.description", "p.address"))
	}
	if filter.Location != "" {
		ds = ds.Where(goqu.Ex{"l.name": filter.Location})
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"c.query": filter.Category})
	}
	if filter.MinRating != nil {
		ds = ds.Where(goqu.I("p.rating").Gte(*filter.MinRating))
	}

	total, err := countRows(ctx, a.client, ds, "failed to count places")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(
		ds.Select(placeColumns...).Order(goqu.I("p.created_at").Desc(), goqu.I("p.id").Asc()),
		filter.Page,
	).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	places, err := a.query(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return places, total, nil
}

// LockByID takes a row lock on the place until the surrounding transaction ends
func (a *PlaceAdapter) LockByID(ctx context.Context, id string) error {
	query, args, err := a.db.Select("id").
		From("places").
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build lock query", err)
	}

	var lockedID string
	err = a.client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&lockedID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("place %s not found", id))
	}
	if err != nil {
		return translateError(err, "failed to lock place")
	}
	return nil
}

// SetRating writes the rating projection
func (a *PlaceAdapter) SetRating(ctx context.Context, id string, rating *float64) error {
	query, args, err := a.db.Update("places").
		Set(goqu.Record{"rating": nullFloat(rating)}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("place %s not found", id), "failed to update place rating")
}

// ReplaceImages deletes the stored images and inserts images in order
func (a *PlaceAdapter) ReplaceImages(ctx context.Context, placeID string, images []entities.PlaceImage) error {
	rows := make([]interface{}, 0, len(images))
	for i := range images {
		img := &images[i]
		if img.ID == "" {
			img.ID = uuid.New().String()
		}
		img.PlaceID = placeID
		rows = append(rows, goqu.Record{
			"id":         img.ID,
			"place_id":   placeID,
			"url":        img.URL,
			"alt":        nullString(img.Alt),
			"caption":    nullString(img.Caption),
			"sort_order": img.Order,
			"is_primary": img.IsPrimary,
		})
	}
	return a.replace(ctx, "place_images", placeID, rows, "images")
}

// ReplaceAmenities deletes the stored amenity links and inserts amenityIDs
func (a *PlaceAdapter) ReplaceAmenities(ctx context.Context, placeID string, amenityIDs []int64) error {
	rows := make([]interface{}, 0, len(amenityIDs))
	seen := make(map[int64]struct{}, len(amenityIDs))
	for _, id := range amenityIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, goqu.Record{"place_id": placeID, "amenity_id": id})
	}
	return a.replace(ctx, "place_amenities", placeID, rows, "amenities")
}

// ReplaceBusinessHours deletes the stored hours and inserts hours
func (a *PlaceAdapter) ReplaceBusinessHours(ctx context.Context, placeID string, hours []entities.BusinessHours) error {
	rows := make([]interface{}, 0, len(hours))
	for i := range hours {
		h := &hours[i]
		if h.ID == "" {
			h.ID = uuid.New().String()
		}
		h.PlaceID = placeID
		rows = append(rows, goqu.Record{
			"id":          h.ID,
			"place_id":    placeID,
			"day_of_week": h.DayOfWeek,
			"open_time":   nullString(h.OpenTime),
			"close_time":  nullString(h.CloseTime),
			"is_closed":   h.IsClosed,
		})
	}
	return a.replace(ctx, "business_hours", placeID, rows, "business hours")
}

// ReplaceContactInfo deletes the stored contacts and inserts contacts
func (a *PlaceAdapter) ReplaceContactInfo(ctx context.Context, placeID string, contacts []entities.ContactInfo) error {
	rows := make([]interface{}, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		c.PlaceID = placeID
		rows = append(rows, goqu.Record{
			"id":         c.ID,
			"place_id":   placeID,
			"type":       c.Type,
			"value":      c.Value,
			"label":      nullString(c.Label),
			"is_primary": c.IsPrimary,
		})
	}
	return a.replace(ctx, "contact_info", placeID, rows, "contact info")
}

// UpsertSEO inserts or overwrites the place's SEO row
func (a *PlaceAdapter) UpsertSEO(ctx context.Context, placeID string, seo *entities.SEO) error {
	if seo.ID == "" {
		seo.ID = uuid.New().String()
	}
	seo.PlaceID = placeID

	query, args, err := a.db.Insert("seo").
		Rows(goqu.Record{
			"id":          seo.ID,
			"place_id":    placeID,
			"title":       nullString(seo.Title),
			"description": nullString(seo.Description),
			"keywords":    nullString(seo.Keywords),
			"canonical":   nullString(seo.Canonical),
		}).
		OnConflict(goqu.DoUpdate("place_id", goqu.Record{
			"title":       goqu.L("EXCLUDED.title"),
			"description": goqu.L("EXCLUDED.description"),
			"keywords":    goqu.L("EXCLUDED.keywords"),
			"canonical":   goqu.L("EXCLUDED.canonical"),
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build seo upsert", err)
	}

	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to save seo")
	}
	return nil
}

// DeleteSEO removes the place's SEO row if any
func (a *PlaceAdapter) DeleteSEO(ctx context.Context, placeID string) error {
	query, args, err := a.db.Delete("seo").Where(goqu.Ex{"place_id": placeID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to delete seo")
	}
	return nil
}

// LoadDetails fills the owned collections of place
func (a *PlaceAdapter) LoadDetails(ctx context.Context, place *entities.Place) error {
	var err error
	if place.Images, err = a.loadImages(ctx, place.ID); err != nil {
		return err
	}
	if place.Amenities, err = a.loadAmenities(ctx, place.ID); err != nil {
		return err
	}
	if place.BusinessHours, err = a.loadBusinessHours(ctx, place.ID); err != nil {
		return err
	}
	if place.ContactInfo, err = a.loadContactInfo(ctx, place.ID); err != nil {
		return err
	}
	place.SEO, err = a.loadSEO(ctx, place.ID)
	return err
}

// CountByLocation returns how many places reference a location
func (a *PlaceAdapter) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	return countRows(ctx, a.client, a.db.From("places").Where(goqu.Ex{"location_id": locationID}), "failed to count places")
}

// CountByCategory returns how many places reference a category
func (a *PlaceAdapter) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	return countRows(ctx, a.client, a.db.From("places").Where(goqu.Ex{"category_id": categoryID}), "failed to count places")
}

// Count returns the number of places
func (a *PlaceAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("places"), "failed to count places")
}

func (a *PlaceAdapter) replace(ctx context.Context, table, placeID string, rows []interface{}, label string) error {
	exec := a.client.Executor(ctx)

	query, args, err := a.db.Delete(table).Where(goqu.Ex{"place_id": placeID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, fmt.Sprintf("failed to clear %s", label))
	}

	if len(rows) == 0 {
		return nil
	}

	query, args, err = a.db.Insert(table).Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return translateError(err, fmt.Sprintf("failed to save %s", label))
	}
	return nil
}

func (a *PlaceAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Place, error) {
	query, args, err := a.baseQuery().Select(placeColumns...).Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	place, err := scanPlace(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get place")
	}
	return place, nil
}

func (a *PlaceAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Place, error) {
	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list places")
	}
	defer rows.Close()

	places := []*entities.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan place", err)
		}
		places = append(places, place)
	}
	return places, rows.Err()
}

func scanPlace(row rowScanner) (*entities.Place, error) {
	p := &entities.Place{
		Location: &entities.LocationSummary{},
		Category: &entities.CategorySummary{},
	}
	var address, phone, website, hours, priceRange, categoryIcon, categoryColor sql.NullString
	var rating sql.NullFloat64

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&address,
		&phone,
		&website,
		&hours,
		&priceRange,
		pq.Array(&p.Highlights),
		&rating,
		&p.IsActive,
		&p.IsVerified,
		&p.LocationID,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.ReviewCount,
		&p.Location.Name,
		&p.Location.DisplayName,
		&p.Category.Query,
		&p.Category.Label,
		&categoryIcon,
		&categoryColor,
	)
	if err != nil {
		return nil, err
	}

	p.Address = stringPtr(address)
	p.Phone = stringPtr(phone)
	p.Website = stringPtr(website)
	p.Hours = stringPtr(hours)
	p.PriceRange = stringPtr(priceRange)
	p.Rating = floatPtr(rating)
	p.Location.ID = p.LocationID
	p.Category.ID = p.CategoryID
	p.Category.Icon = stringPtr(categoryIcon)
	p.Category.Color = stringPtr(categoryColor)
	if p.Highlights == nil {
		p.Highlights = []string{}
	}
	return p, nil
}
