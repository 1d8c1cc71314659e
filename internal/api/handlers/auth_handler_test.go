package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	require.FailNow(t, "session cookie not set")
	return nil
}

func TestAuthHandler_Login(t *testing.T) {
	cookie := handlers.CookieConfig{Name: "td_session"}

	t.Run("sets an http-only session cookie", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := handlers.NewAuthHandler(svc, cookie)

		expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		svc.On("Login", mock.Anything, services.LoginInput{Email: "ana@example.com", Password: "secret-pass"}).
			Return(&services.Session{Token: "signed.jwt.token", ExpiresAt: expires, User: &entities.User{ID: "u-1"}}, nil)

		w := httptest.NewRecorder()
		handler.Login(w, newRequest(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret-pass"}`, nil))

		assert.Equal(t, http.StatusOK, w.Code)
		c := sessionCookie(t, w, "td_session")
		assert.Equal(t, "signed.jwt.token", c.Value)
		assert.True(t, c.HttpOnly)
		data := decodeEnvelope(t, w).Data.(map[string]interface{})
		assert.Equal(t, "signed.jwt.token", data["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := new(MockAuthService)
		handler := handlers.NewAuthHandler(svc, cookie)

		svc.On("Login", mock.Anything, mock.Anything).
			Return(nil, apperrors.NewUnauthorizedError("Invalid email or password"))

		w := httptest.NewRecorder()
		handler.Login(w, newRequest(http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"nope"}`, nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	handler := handlers.NewAuthHandler(new(MockAuthService), handlers.CookieConfig{})

	w := httptest.NewRecorder()
	handler.Logout(w, newRequest(http.MethodPost, "/auth/logout", "", userIdentity))

	assert.Equal(t, http.StatusOK, w.Code)
	c := sessionCookie(t, w, "session")
	assert.Empty(t, c.Value)
	assert.Less(t, c.MaxAge, 0)
}

func TestAuthHandler_Me(t *testing.T) {
	svc := new(MockAuthService)
	handler := handlers.NewAuthHandler(svc, handlers.CookieConfig{})

	svc.On("Me", mock.Anything, userIdentity).
		Return(&entities.User{ID: userIdentity.UserID, Email: "ana@example.com", PasswordHash: "$2a$12$hash"}, nil)

	w := httptest.NewRecorder()
	handler.Me(w, newRequest(http.MethodGet, "/auth/me", "", userIdentity))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "$2a$12$hash")
}

func TestAuthHandler_Register(t *testing.T) {
	svc := new(MockAuthService)
	handler := handlers.NewAuthHandler(svc, handlers.CookieConfig{})

	svc.On("Register", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewConflictError("username already exists"))

	w := httptest.NewRecorder()
	handler.Register(w, newRequest(http.MethodPost, "/auth/register", `{"email":"a@b.co","username":"ana","password":"longenough"}`, nil))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "username already exists", decodeEnvelope(t, w).Error)
}
