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

// ReviewAdapter implements ReviewRepository
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var reviewColumns = []interface{}{
	"rv.id", "rv.place_id", "rv.user_id", "rv.rating", "rv.comment", "rv.created_at", "rv.updated_at",
	"u.username", "u.first_name", "u.last_name", "p.name",
}

func (a *ReviewAdapter) baseQuery() *goqu.SelectDataset {
	return a.db.From(goqu.T("reviews").As("rv")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("rv.user_id")))).
		Join(goqu.T("places").As("p"), goqu.On(goqu.I("p.id").Eq(goqu.I("rv.place_id"))))
}

// Create inserts a review
func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	now := time.Now().UTC()
	review.CreatedAt = now
	review.UpdatedAt = now

	record := goqu.Record{
		"id":         review.ID,
		"place_id":   review.PlaceID,
		"user_id":    review.UserID,
		"rating":     review.Rating,
		"comment":    nullString(review.Comment),
		"created_at": review.CreatedAt,
		"updated_at": review.UpdatedAt,
	}

	query, args, err := a.db.Insert("reviews").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to create review")
	}
	return nil
}

// GetByID retrieves a review with its author
func (a *ReviewAdapter) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	return a.getBy(ctx, goqu.Ex{"rv.id": id}, fmt.Sprintf("review %s not found", id))
}

// GetByPlaceAndUser retrieves the user's review of a place
func (a *ReviewAdapter) GetByPlaceAndUser(ctx context.Context, placeID, userID string) (*entities.Review, error) {
	return a.getBy(ctx, goqu.Ex{"rv.place_id": placeID, "rv.user_id": userID}, "review not found")
}

// Update writes rating and comment
func (a *ReviewAdapter) Update(ctx context.Context, review *entities.Review) error {
	review.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("reviews").
		Set(goqu.Record{
			"rating":     review.Rating,
			"comment":    nullString(review.Comment),
			"updated_at": review.UpdatedAt,
		}).
		Where(goqu.Ex{"id": review.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("review %s not found", review.ID), "failed to update review")
}

// Delete removes a review
func (a *ReviewAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("reviews").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("review %s not found", id), "failed to delete review")
}

// List returns a page of reviews, newest first
func (a *ReviewAdapter) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, int, error) {
	ds := a.baseQuery()
	if filter.PlaceID != "" {
		ds = ds.Where(goqu.Ex{"rv.place_id": filter.PlaceID})
	}
	if filter.UserID != "" {
		ds = ds.Where(goqu.Ex{"rv.user_id": filter.UserID})
	}
	if filter.Rating != nil {
		ds = ds.Where(goqu.Ex{"rv.rating": *filter.Rating})
	}

	total, err := countRows(ctx, a.client, ds, "failed to count reviews")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(
		ds.Select(reviewColumns...).Order(goqu.I("rv.created_at").Desc(), goqu.I("rv.id").Asc()),
		filter.Page,
	).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err, "failed to list reviews")
	}
	defer rows.Close()

	reviews := []*entities.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	return reviews, total, rows.Err()
}

// RatingsForPlace returns every rating recorded for a place
func (a *ReviewAdapter) RatingsForPlace(ctx context.Context, placeID string) ([]int, error) {
	query, args, err := a.db.Select("rating").From("reviews").Where(goqu.Ex{"place_id": placeID}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to read ratings")
	}
	defer rows.Close()

	ratings := []int{}
	for rows.Next() {
		var rating int
		if err := rows.Scan(&rating); err != nil {
			return nil, apperrors.NewInternalError("failed to scan rating", err)
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}

// PlaceIDsReviewedBy returns the distinct places a user has reviewed, in id order
func (a *ReviewAdapter) PlaceIDsReviewedBy(ctx context.Context, userID string) ([]string, error) {
	query, args, err := a.db.From("reviews").
		Select("place_id").
		Distinct().
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("place_id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to read reviewed places")
	}
	defer rows.Close()

	placeIDs := []string{}
	for rows.Next() {
		var placeID string
		if err := rows.Scan(&placeID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan place id", err)
		}
		placeIDs = append(placeIDs, placeID)
	}
	return placeIDs, rows.Err()
}

// Count returns the number of reviews
func (a *ReviewAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("reviews"), "failed to count reviews")
}

// CountSince returns the number of reviews written at or after since
func (a *ReviewAdapter) CountSince(ctx context.Context, since time.Time) (int, error) {
	return countRows(ctx, a.client, a.db.From("reviews").Where(goqu.C("created_at").Gte(since)), "failed to count reviews")
}

func (a *ReviewAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Review, error) {
	query, args, err := a.baseQuery().Select(reviewColumns...).Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	review, err := scanReview(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get review")
	}
	return review, nil
}

func scanReview(row rowScanner) (*entities.Review, error) {
	r := &entities.Review{Author: &entities.UserSummary{}}
	var comment, firstName, lastName sql.NullString

	err := row.Scan(
		&r.ID,
		&r.PlaceID,
		&r.UserID,
		&r.Rating,
		&comment,
		&r.CreatedAt,
		&r.UpdatedAt,
		&r.Author.Username,
		&firstName,
		&lastName,
		&r.PlaceName,
	)
	if err != nil {
		return nil, err
	}

	r.Comment = stringPtr(comment)
	r.Author.ID = r.UserID
	r.Author.FirstName = stringPtr(firstName)
	r.Author.LastName = stringPtr(lastName)
	return r, nil
}
