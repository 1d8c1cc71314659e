package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// FavoriteAdapter implements FavoriteRepository
type FavoriteAdapter struct {
	client *postgres.Client
	db     *goqu.Database
	places *PlaceAdapter
}

// NewFavoriteAdapter creates a new favorite adapter
func NewFavoriteAdapter(client *postgres.Client) repositories.FavoriteRepository {
	return &FavoriteAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
		places: NewPlaceAdapter(client).(*PlaceAdapter),
	}
}

// Create inserts a favorite; the (place, user) unique constraint rejects duplicates
func (a *FavoriteAdapter) Create(ctx context.Context, favorite *entities.Favorite) error {
	favorite.CreatedAt = time.Now().UTC()

	query, args, err := a.db.Insert("favorites").Rows(goqu.Record{
		"id":         favorite.ID,
		"place_id":   favorite.PlaceID,
		"user_id":    favorite.UserID,
		"created_at": favorite.CreatedAt,
	}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to add favorite")
	}
	return nil
}

// Get retrieves the user's favorite for a place
func (a *FavoriteAdapter) Get(ctx context.Context, userID, placeID string) (*entities.Favorite, error) {
	query, args, err := a.db.Select("id", "place_id", "user_id", "created_at").
		From("favorites").
		Where(goqu.Ex{"user_id": userID, "place_id": placeID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	f := &entities.Favorite{}
	err = a.client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&f.ID, &f.PlaceID, &f.UserID, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError("Place is not in favorites")
	}
	if err != nil {
		return nil, translateError(err, "failed to get favorite")
	}
	return f, nil
}

// Delete removes the user's favorite for a place
func (a *FavoriteAdapter) Delete(ctx context.Context, userID, placeID string) error {
	query, args, err := a.db.Delete("favorites").Where(goqu.Ex{"user_id": userID, "place_id": placeID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, "Place is not in favorites", "failed to remove favorite")
}

// ListByUser returns a page of the user's favorites with places attached, newest first
func (a *FavoriteAdapter) ListByUser(ctx context.Context, userID string, page entities.Page) ([]*entities.Favorite, int, error) {
	ds := a.db.From("favorites").Where(goqu.Ex{"user_id": userID})

	total, err := countRows(ctx, a.client, ds, "failed to count favorites")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(
		ds.Select("id", "place_id", "user_id", "created_at").Order(goqu.C("created_at").Desc(), goqu.C("id").Asc()),
		page,
	).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err, "failed to list favorites")
	}
	defer rows.Close()

	favorites := []*entities.Favorite{}
	placeIDs := []string{}
	for rows.Next() {
		f := &entities.Favorite{}
		if err := rows.Scan(&f.ID, &f.PlaceID, &f.UserID, &f.CreatedAt); err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan favorite", err)
		}
		favorites = append(favorites, f)
		placeIDs = append(placeIDs, f.PlaceID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translateError(err, "failed to list favorites")
	}

	places, err := a.places.GetByIDs(ctx, placeIDs)
	if err != nil {
		return nil, 0, err
	}
	byID := make(map[string]*entities.Place, len(places))
	for _, p := range places {
		byID[p.ID] = p
	}
	for _, f := range favorites {
		f.Place = byID[f.PlaceID]
	}

	return favorites, total, nil
}
