package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// AmenityAdapter implements AmenityRepository
type AmenityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAmenityAdapter creates a new amenity adapter
func NewAmenityAdapter(client *postgres.Client) repositories.AmenityRepository {
	return &AmenityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var amenityColumns = []interface{}{"id", "name", "description", "icon", "is_active", "created_at", "updated_at"}

// Create inserts an amenity and fills its generated id
func (a *AmenityAdapter) Create(ctx context.Context, amenity *entities.Amenity) error {
	now := time.Now().UTC()
	amenity.CreatedAt = now
	amenity.UpdatedAt = now

	record := goqu.Record{
		"name":        amenity.Name,
		"description": nullString(amenity.Description),
		"icon":        nullString(amenity.Icon),
		"is_active":   amenity.IsActive,
		"created_at":  amenity.CreatedAt,
		"updated_at":  amenity.UpdatedAt,
	}

	query, args, err := a.db.Insert("amenities").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&amenity.ID); err != nil {
		return translateError(err, "failed to create amenity")
	}
	return nil
}

// GetByID retrieves an amenity by id
func (a *AmenityAdapter) GetByID(ctx context.Context, id int64) (*entities.Amenity, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("amenity %d not found", id))
}

// GetByName retrieves an amenity by its unique name
func (a *AmenityAdapter) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	return a.getBy(ctx, goqu.Ex{"name": name}, fmt.Sprintf("amenity %s not found", name))
}

// ExistingIDs returns the subset of ids present in the table
func (a *AmenityAdapter) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}

	query, args, err := a.db.Select("id").From("amenities").Where(goqu.Ex{"id": ids}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to look up amenities")
	}
	defer rows.Close()

	found := make([]int64, 0, len(ids))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError("failed to scan amenity id", err)
		}
		found = append(found, id)
	}
	return found, rows.Err()
}

// Update writes every mutable column
func (a *AmenityAdapter) Update(ctx context.Context, amenity *entities.Amenity) error {
	amenity.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("amenities").
		Set(goqu.Record{
			"name":        amenity.Name,
			"description": nullString(amenity.Description),
			"icon":        nullString(amenity.Icon),
			"is_active":   amenity.IsActive,
			"updated_at":  amenity.UpdatedAt,
		}).
		Where(goqu.Ex{"id": amenity.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("amenity %d not found", amenity.ID), "failed to update amenity")
}

// Delete removes an amenity
func (a *AmenityAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("amenities").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("amenity %d not found", id), "failed to delete amenity")
}

// List returns a page of amenities ordered by name
func (a *AmenityAdapter) List(ctx context.Context, filter repositories.AmenityFilter) ([]*entities.Amenity, int, error) {
	ds := a.db.From("amenities")
	if filter.Search != "" {
		ds = ds.Where(containsAny(filter.Search, "name", "description"))
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	total, err := countRows(ctx, a.client, ds, "failed to count amenities")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(ds.Select(amenityColumns...).Order(goqu.C("name").Asc()), filter.Page).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err, "failed to list amenities")
	}
	defer rows.Close()

	amenities := []*entities.Amenity{}
	for rows.Next() {
		amenity, err := scanAmenity(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan amenity", err)
		}
		amenities = append(amenities, amenity)
	}
	return amenities, total, rows.Err()
}

// CountUsage returns how many places offer the amenity
func (a *AmenityAdapter) CountUsage(ctx context.Context, id int64) (int, error) {
	return countRows(ctx, a.client, a.db.From("place_amenities").Where(goqu.Ex{"amenity_id": id}), "failed to count amenity usage")
}

func (a *AmenityAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Amenity, error) {
	query, args, err := a.db.Select(amenityColumns...).From("amenities").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	amenity, err := scanAmenity(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get amenity")
	}
	return amenity, nil
}

func scanAmenity(row rowScanner) (*entities.Amenity, error) {
	am := &entities.Amenity{}
	var description, icon sql.NullString

	if err := row.Scan(&am.ID, &am.Name, &description, &icon, &am.IsActive, &am.CreatedAt, &am.UpdatedAt); err != nil {
		return nil, err
	}

	am.Description = stringPtr(description)
	am.Icon = stringPtr(icon)
	return am, nil
}
