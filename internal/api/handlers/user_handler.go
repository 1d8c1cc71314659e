package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

// UserService is the account management behaviour the handler depends on
type UserService interface {
	List(ctx context.Context, identity *auth.Identity, filter repositories.UserFilter) ([]*entities.User, int, error)
	Get(ctx context.Context, identity *auth.Identity, id string) (*entities.User, error)
	Create(ctx context.Context, identity *auth.Identity, input services.UserInput) (*entities.User, error)
	Update(ctx context.Context, identity *auth.Identity, id string, patch services.UserPatch) (*entities.User, error)
	ResetPassword(ctx context.Context, identity *auth.Identity, id string, input services.PasswordReset) error
	Delete(ctx context.Context, identity *auth.Identity, id string) error
}

// UserHandler handles administrative account requests
type UserHandler struct {
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(service UserService) *UserHandler {
	return &UserHandler{service: service}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	filter := repositories.UserFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   pageFrom(r),
	}

	users, total, err := h.service.List(r.Context(), identityOf(r), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch users")
		return
	}
	respondWithPage(w, users, filter.Page, total)
}

// GetUser handles GET /admin/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	user, err := h.service.Get(r.Context(), identityOf(r), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch user")
		return
	}
	respondWithData(w, user, "")
}

// CreateUser handles POST /admin/users
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var input services.UserInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	user, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create user")
		return
	}
	respondWithData(w, user, "User created successfully")
}

// UpdateUser handles PUT /admin/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.UserPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	user, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update user")
		return
	}
	respondWithData(w, user, "User updated successfully")
}

// ResetPassword handles POST /admin/users/{id}/reset-password
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var input services.PasswordReset
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.ResetPassword(r.Context(), identityOf(r), id, input); err != nil {
		respondWithError(w, r, err, "Failed to reset password")
		return
	}
	respondWithMessage(w, "Password reset successfully")
}

// DeleteUser handles DELETE /admin/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete user")
		return
	}
	respondWithMessage(w, "User deleted successfully")
}
