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

// CategoryAdapter implements CategoryRepository
type CategoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCategoryAdapter creates a new category adapter
func NewCategoryAdapter(client *postgres.Client) repositories.CategoryRepository {
	return &CategoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var categoryColumns = []interface{}{
	"id", "query", "label", "keyphrase", "description", "icon", "color", "prompt",
	"display_order", "is_active", "created_at", "updated_at",
}

func categoryRecord(c *entities.Category) goqu.Record {
	return goqu.Record{
		"query":         c.Query,
		"label":         c.Label,
		"keyphrase":     c.Keyphrase,
		"description":   nullString(c.Description),
		"icon":          nullString(c.Icon),
		"color":         nullString(c.Color),
		"prompt":        nullString(c.Prompt),
		"display_order": c.DisplayOrder,
		"is_active":     c.IsActive,
		"updated_at":    c.UpdatedAt,
	}
}

// Create inserts a category and fills its generated id
func (a *CategoryAdapter) Create(ctx context.Context, category *entities.Category) error {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	record := categoryRecord(category)
	record["created_at"] = category.CreatedAt

	query, args, err := a.db.Insert("categories").Rows(record).Returning("id").ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if err := a.client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&category.ID); err != nil {
		return translateError(err, "failed to create category")
	}
	return nil
}

// GetByID retrieves a category by id
func (a *CategoryAdapter) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("category %d not found", id))
}

// GetByQuery retrieves a category by its query slug
func (a *CategoryAdapter) GetByQuery(ctx context.Context, query string) (*entities.Category, error) {
	return a.getBy(ctx, goqu.Ex{"query": query}, fmt.Sprintf("category %s not found", query))
}

// Update writes every mutable column
func (a *CategoryAdapter) Update(ctx context.Context, category *entities.Category) error {
	category.UpdatedAt = time.Now().UTC()

	query, args, err := a.db.Update("categories").
		Set(categoryRecord(category)).
		Where(goqu.Ex{"id": category.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("category %d not found", category.ID), "failed to update category")
}

// Delete removes a category
func (a *CategoryAdapter) Delete(ctx context.Context, id int64) error {
	query, args, err := a.db.Delete("categories").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("category %d not found", id), "failed to delete category")
}

// ListActive returns active categories ordered by display order
func (a *CategoryAdapter) ListActive(ctx context.Context) ([]*entities.Category, error) {
	query, args, err := a.db.Select(categoryColumns...).
		From("categories").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.C("display_order").Asc(), goqu.C("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.query(ctx, query, args)
}

// List returns a page of categories matching the search across label, query and keyphrase
func (a *CategoryAdapter) List(ctx context.Context, filter repositories.CategoryFilter) ([]*entities.Category, int, error) {
	ds := a.db.From("categories")
	if filter.Search != "" {
		ds = ds.Where(containsAny(filter.Search, "label", "query", "keyphrase"))
	}

	total, err := countRows(ctx, a.client, ds, "failed to count categories")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(
		ds.Select(categoryColumns...).Order(goqu.C("display_order").Asc(), goqu.C("id").Asc()),
		filter.Page,
	).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	categories, err := a.query(ctx, query, args)
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

// Count returns the number of categories
func (a *CategoryAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("categories"), "failed to count categories")
}

func (a *CategoryAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Category, error) {
	query, args, err := a.db.Select(categoryColumns...).From("categories").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	category, err := scanCategory(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get category")
	}
	return category, nil
}

func (a *CategoryAdapter) query(ctx context.Context, query string, args []interface{}) ([]*entities.Category, error) {
	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list categories")
	}
	defer rows.Close()

	categories := []*entities.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan category", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func scanCategory(row rowScanner) (*entities.Category, error) {
	c := &entities.Category{}
	var description, icon, color, prompt sql.NullString

	err := row.Scan(
		&c.ID,
		&c.Query,
		&c.Label,
		&c.Keyphrase,
		&description,
		&icon,
		&color,
		&prompt,
		&c.DisplayOrder,
		&c.IsActive,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Description = stringPtr(description)
	c.Icon = stringPtr(icon)
	c.Color = stringPtr(color)
	c.Prompt = stringPtr(prompt)
	return c, nil
}
