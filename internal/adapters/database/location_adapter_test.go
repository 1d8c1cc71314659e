package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/database"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func TestLocationAdapter_Delete_StillReferencedIsConflict(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewLocationAdapter(client)

	mock.ExpectExec(`DELETE FROM "locations" WHERE \("id" = 4\)`).
		WillReturnError(&pq.Error{
			Code:       "23503",
			Constraint: "places_location_id_fkey",
			Detail:     `Key (id)=(4) is still referenced from table "places".`,
		})

	err := adapter.Delete(context.Background(), 4)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
}

func TestLocationAdapter_Delete_MissingRowIsNotFound(t *testing.T) {
	client, mock := newMockClient(t)
	adapter := database.NewLocationAdapter(client)

	mock.ExpectExec(`DELETE FROM "locations"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Delete(context.Background(), 99)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
