package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func TestGate_RoleMatrix(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	user := &Identity{UserID: "u", Role: entities.RoleUser}
	publisher := &Identity{UserID: "p", Role: entities.RolePublisher}
	admin := &Identity{UserID: "a", Role: entities.RoleAdministrator}

	tests := []struct {
		perm    Permission
		allowed map[*Identity]bool
	}{
		{PermWriteCategories, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermWriteLocations, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermWriteAmenities, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermManageUsers, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermWritePlaces, map[*Identity]bool{user: false, publisher: true, admin: true}},
		{PermDeletePlaces, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermCreateReview, map[*Identity]bool{user: true, publisher: true, admin: true}},
		{PermManageFavorites, map[*Identity]bool{user: true, publisher: true, admin: true}},
		{PermModerateReviews, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermReadStats, map[*Identity]bool{user: false, publisher: false, admin: true}},
		{PermStreamEvents, map[*Identity]bool{user: false, publisher: true, admin: true}},
	}

	for _, tt := range tests {
		for identity, want := range tt.allowed {
			assert.Equal(t, want, gate.Can(identity, tt.perm), "%s as %s", tt.perm, identity.Role)
		}
	}
}

func TestGate_Authorize_DistinguishesAnonymousFromForbidden(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	err = gate.Authorize(nil, PermWritePlaces)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnauthorized))

	err = gate.Authorize(&Identity{UserID: "u", Role: entities.RoleUser}, PermWritePlaces)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))

	assert.NoError(t, gate.Authorize(&Identity{UserID: "p", Role: entities.RolePublisher}, PermWritePlaces))
}

func TestGate_AuthorizeOwner(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	owner := &Identity{UserID: "owner", Role: entities.RoleUser}
	other := &Identity{UserID: "other", Role: entities.RolePublisher}
	admin := &Identity{UserID: "admin", Role: entities.RoleAdministrator}

	assert.NoError(t, gate.AuthorizeOwner(owner, "owner", PermModerateReviews))
	assert.NoError(t, gate.AuthorizeOwner(admin, "owner", PermModerateReviews))
	assert.True(t, apperrors.IsType(gate.AuthorizeOwner(other, "owner", PermModerateReviews), apperrors.ErrorTypeForbidden))
	assert.True(t, apperrors.IsType(gate.AuthorizeOwner(nil, "owner", PermModerateReviews), apperrors.ErrorTypeUnauthorized))
}

func TestGate_UnknownRoleHoldsNothing(t *testing.T) {
	gate, err := NewGate()
	require.NoError(t, err)

	assert.False(t, gate.Can(&Identity{UserID: "x", Role: "guest"}, PermCreateReview))
}
