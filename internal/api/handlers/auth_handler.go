package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// AuthService is the sign-in behaviour the handler depends on
type AuthService interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.Session, error)
	Login(ctx context.Context, input services.LoginInput) (*services.Session, error)
	Me(ctx context.Context, identity *auth.Identity) (*entities.User, error)
}

// CookieConfig controls the session cookie
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler handles sign-up, sign-in and session requests
type AuthHandler struct {
	service AuthService
	cookie  CookieConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, cookie CookieConfig) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "session"
	}
	return &AuthHandler{service: service, cookie: cookie}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	session, err := h.service.Register(r.Context(), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to register")
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	respondWithData(w, session, "Account created successfully")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	session, err := h.service.Login(r.Context(), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to sign in")
		return
	}

	h.setSessionCookie(w, session.Token, session.ExpiresAt)
	respondWithData(w, session, "Signed in successfully")
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithMessage(w, "Signed out successfully")
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.Me(r.Context(), identityOf(r))
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch account")
		return
	}
	respondWithData(w, user, "")
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
