package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

var (
	admin     = &auth.Identity{UserID: "admin-1", Role: entities.RoleAdministrator}
	publisher = &auth.Identity{UserID: "publisher-1", Role: entities.RolePublisher}
	member    = &auth.Identity{UserID: "user-1", Role: entities.RoleUser}
	otherUser = &auth.Identity{UserID: "user-2", Role: entities.RoleUser}
)

func newGate(t *testing.T) *auth.Gate {
	t.Helper()
	gate, err := auth.NewGate()
	require.NoError(t, err)
	return gate
}

func assertErrorType(t *testing.T, err error, errorType apperrors.ErrorType, message string) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, errorType, appErr.Type)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
}

func strPtr(s string) *string {
	return &s
}
