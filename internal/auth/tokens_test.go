package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_RoundTrip(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	user := &entities.User{ID: "user-1", Role: &entities.Role{Name: "publisher"}}
	token, expiresAt, err := tm.Issue(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, entities.RolePublisher, identity.Role)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	issuer, _ := NewTokenManager(testSecret, time.Hour)
	verifier, _ := NewTokenManager("ffffffffffffffffffffffffffffffff", time.Hour)

	token, _, err := issuer.Issue(&entities.User{ID: "u", Role: &entities.Role{Name: "user"}})
	require.NoError(t, err)

	_, err = verifier.Parse(token)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tm, _ := NewTokenManager(testSecret, -time.Minute)

	token, _, err := tm.Issue(&entities.User{ID: "u", Role: &entities.Role{Name: "user"}})
	require.NoError(t, err)

	_, err = tm.Parse(token)
	assert.Error(t, err)
}

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Compare(hash, "correct horse"))
	assert.False(t, h.Compare(hash, "wrong"))
}

func TestTokenManager_ResolveIsAnonymousOnFailure(t *testing.T) {
	tm, err := NewTokenManager(testSecret, time.Hour)
	require.NoError(t, err)

	token, _, err := tm.Issue(&entities.User{ID: "user-2", Role: &entities.Role{Name: "user"}})
	require.NoError(t, err)

	assert.Equal(t, "user-2", tm.Resolve(token).UserID)
	assert.Nil(t, tm.Resolve(""))
	assert.Nil(t, tm.Resolve("not-a-jwt"))
}
