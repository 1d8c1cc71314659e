package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/database"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

var categoryCols = []string{
	"id", "query", "label", "keyphrase", "description", "icon", "color", "prompt",
	"display_order", "is_active", "created_at", "updated_at",
}

func TestCategoryAdapter_Create_ReturnsGeneratedID(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewCategoryAdapter(client)

	mock.ExpectQuery(`INSERT INTO "categories" .* RETURNING "id"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	category := &entities.Category{Query: "museums", Label: "Museums", Keyphrase: "top-museums", IsActive: true}
	require.NoError(t, adapter.Create(context.Background(), category))
	assert.Equal(t, int64(7), category.ID)
}

func TestCategoryAdapter_Create_DuplicateQueryIsConflict(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewCategoryAdapter(client)

	mock.ExpectQuery(`INSERT INTO "categories"`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "categories_query_key"})

	err := adapter.Create(context.Background(), &entities.Category{Query: "museums", Label: "Museums", Keyphrase: "top-museums"})

	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrorTypeConflict, appErr.Type)
	assert.Equal(t, "query already exists", appErr.Message)
}

func TestCategoryAdapter_GetByQuery_NotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewCategoryAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "categories" WHERE \("query" = 'hotels'\)`).
		WillReturnRows(sqlmock.NewRows(categoryCols))

	_, err := adapter.GetByQuery(context.Background(), "hotels")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestCategoryAdapter_List_CountsBeforePaging(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewCategoryAdapter(client)
	now := time.Now()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "categories" WHERE .*ILIKE '%hotel%'`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT .* FROM "categories" .* ORDER BY "display_order" ASC, "id" ASC LIMIT 10 OFFSET 10`).
		WillReturnRows(sqlmock.NewRows(categoryCols).
			AddRow(3, "hotels", "Hotels", "best-hotels", nil, "bed", "#fff", "Recommend hotels in <selectedLocation>", 1, true, now, now))

	categories, total, err := adapter.List(context.Background(), repositories.CategoryFilter{
		Search: "hotel",
		Page:   entities.NewPage(2, 10),
	})

	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, categories, 1)
	assert.Equal(t, "hotels", categories[0].Query)
	assert.Nil(t, categories[0].Description)
	require.NotNil(t, categories[0].Prompt)
}
