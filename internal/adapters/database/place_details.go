package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func (a *PlaceAdapter) loadImages(ctx context.Context, placeID string) ([]entities.PlaceImage, error) {
	query, args, err := a.db.Select("id", "place_id", "url", "alt", "caption", "sort_order", "is_primary").
		From("place_images").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.C("sort_order").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to load images")
	}
	defer rows.Close()

	images := []entities.PlaceImage{}
	for rows.Next() {
		var img entities.PlaceImage
		var alt, caption sql.NullString
		if err := rows.Scan(&img.ID, &img.PlaceID, &img.URL, &alt, &caption, &img.Order, &img.IsPrimary); err != nil {
			return nil, apperrors.NewInternalError("failed to scan image", err)
		}
		img.Alt = stringPtr(alt)
		img.Caption = stringPtr(caption)
		images = append(images, img)
	}
	return images, rows.Err()
}

func (a *PlaceAdapter) loadAmenities(ctx context.Context, placeID string) ([]entities.Amenity, error) {
	query, args, err := a.db.Select("am.id", "am.name", "am.description", "am.icon", "am.is_active", "am.created_at", "am.updated_at").
		From(goqu.T("place_amenities").As("pa")).
		Join(goqu.T("amenities").As("am"), goqu.On(goqu.I("am.id").Eq(goqu.I("pa.amenity_id")))).
		Where(goqu.Ex{"pa.place_id": placeID}).
		Order(goqu.I("am.name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to load amenities")
	}
	defer rows.Close()

	amenities := []entities.Amenity{}
	for rows.Next() {
		am, err := scanAmenity(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity", err)
		}
		amenities = append(amenities, *am)
	}
	return amenities, rows.Err()
}

func (a *PlaceAdapter) loadBusinessHours(ctx context.Context, placeID string) ([]entities.BusinessHours, error) {
	query, args, err := a.db.Select("id", "place_id", "day_of_week", "open_time", "close_time", "is_closed").
		From("business_hours").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.C("day_of_week").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to load business hours")
	}
	defer rows.Close()

	hours := []entities.BusinessHours{}
	for rows.Next() {
		var h entities.BusinessHours
		var openTime, closeTime sql.NullString
		if err := rows.Scan(&h.ID, &h.PlaceID, &h.DayOfWeek, &openTime, &closeTime, &h.IsClosed); err != nil {
			return nil, apperrors.NewInternalError("failed to scan business hours", err)
		}
		h.OpenTime = stringPtr(openTime)
		h.CloseTime = stringPtr(closeTime)
		hours = append(hours, h)
	}
	return hours, rows.Err()
}

func (a *PlaceAdapter) loadContactInfo(ctx context.Context, placeID string) ([]entities.ContactInfo, error) {
	query, args, err := a.db.Select("id", "place_id", "type", "value", "label", "is_primary").
		From("contact_info").
		Where(goqu.Ex{"place_id": placeID}).
		Order(goqu.C("is_primary").Desc(), goqu.C("type").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to load contact info")
	}
	defer rows.Close()

	contacts := []entities.ContactInfo{}
	for rows.Next() {
		var c entities.ContactInfo
		var label sql.NullString
		if err := rows.Scan(&c.ID, &c.PlaceID, &c.Type, &c.Value, &label, &c.IsPrimary); err != nil {
			return nil, apperrors.NewInternalError("failed to scan contact info", err)
		}
		c.Label = stringPtr(label)
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (a *PlaceAdapter) loadSEO(ctx context.Context, placeID string) (*entities.SEO, error) {
	query, args, err := a.db.Select("id", "place_id", "title", "description", "keywords", "canonical").
		From("seo").
		Where(goqu.Ex{"place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	seo := &entities.SEO{}
	var title, description, keywords, canonical sql.NullString
	err = a.client.Executor(ctx).QueryRowContext(ctx, query, args...).
		Scan(&seo.ID, &seo.PlaceID, &title, &description, &keywords, &canonical)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError(err, "failed to load seo")
	}

	seo.Title = stringPtr(title)
	seo.Description = stringPtr(description)
	seo.Keywords = stringPtr(keywords)
	seo.Canonical = stringPtr(canonical)
	return seo, nil
}
