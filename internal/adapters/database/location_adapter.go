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

// LocationAdapter implements LocationRepository
type LocationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewLocationAdapter creates a new location adapter
func NewLocationAdapter(client *postgres.Client) repositories.LocationRepository {
	return &LocationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var locationColumns = []interface{}{
	"l.id", "l.name", "l.display_name", "l.description", "l.is_active", "l.created_at", "l.updated_at",
	goqu.L("(SELECT COUNT(*) FROM places p WHERE p.location_id = l.id)").As("place_count"),
}

func (a *LocationAdapter) from() *goqu.SelectDataset {
	return a.db.From(goqu.T("locations").As("l"))
}

// Create inserts a location and fills its generated id
func (a *LocationAdapter) Create(ctx context.Context, location *entities.Location) error {
	now := time.Now().UTC()
	location.CreatedAt = now
	location.UpdatedAt = now

	record := goqu.Record{
		"name":         location.Name,
		"display_name": location.DisplayName,
		"description":  nullString(location.Description),
		"is_active":    location.IsActive,
		"created_at":   location.CreatedAt,
		"updated_at":   location.UpdatedAt,
	}

	query, args, err := a.db.Insert("locations").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&location.ID); err != nil {
		return translateError(err, "failed to create location")
	}
	return nil
}

// GetByID retrieves a location by id
func (a *LocationAdapter) GetByID(ctx context.Context, id int64) (*entities.Location, error) {
	return a.getBy(ctx, goqu.Ex{"l.id": id}, fmt.Sprintf("location %d not found", id))
}

// GetByName retrieves a location by its unique name
func (a *LocationAdapter) GetByName(ctx context.Context, name string) (*entities.Location, error) {
	return a.getBy(ctx, goqu.Ex{"l.name": name}, fmt.Sprintf("location %s not found", name))
}

// Update writes every mutable column
func (a *LocationAdapter) Update(ctx context.Context, location *entities.Location) error {
	location.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("locations").
		Set(goqu.Record{
			"name":         location.Name,
			"display_name": location.DisplayName,
			"description":  nullString(location.Description),
			"is_active":    location.IsActive,
			"updated_at":   location.UpdatedAt,
		}).
		Where(goqu.Ex{"id": location.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("location %d not found", location.ID), "failed to update location")
}

// Delete removes a location; the places foreign key rejects it while places reference it
func (a *LocationAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("locations").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("location %d not found", id), "failed to delete location")
}

// List returns a page of locations ordered by display name
func (a *LocationAdapter) List(ctx context.Context, filter repositories.LocationFilter) ([]*entities.Location, int, error) {
	ds := a.from()
	if filter.Search != "" {
		ds = ds.Where(containsAny(filter.Search, "l.name", "l.display_name", "l.description"))
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"l.is_active": *filter.IsActive})
	}

	total, err := countRows(ctx, a.client, ds, "failed to count locations")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(
		ds.Select(locationColumns...).Order(goqu.I("l.display_name").Asc()),
		filter.Page,
	).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err, "failed to list locations")
	}
	defer rows.Close()

	locations := []*entities.Location{}
	for rows.Next() {
		location, err := scanLocation(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan location", err)
		}
		locations = append(locations, location)
	}
	return locations, total, rows.Err()
}

// Count returns the number of locations
func (a *LocationAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("locations"), "failed to count locations")
}

func (a *LocationAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Location, error) {
	query, args, err := a.from().Select(locationColumns...).Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	location, err := scanLocation(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get location")
	}
	return location, nil
}

func scanLocation(row rowScanner) (*entities.Location, error) {
	l := &entities.Location{}
	var description sql.NullString

	err := row.Scan(
		&l.ID,
		&l.Name,
		&l.DisplayName,
		&description,
		&l.IsActive,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.PlaceCount,
	)
	if err != nil {
		return nil, err
	}

	l.Description = stringPtr(description)
	return l, nil
}
