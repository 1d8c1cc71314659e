package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// RoleService lists access roles
type RoleService interface {
	List(ctx context.Context, identity *auth.Identity) ([]*entities.Role, error)
}

// StatsService computes dashboard totals
type StatsService interface {
	Get(ctx context.Context, identity *auth.Identity) (*entities.DirectoryStats, error)
}

// AdminHandler serves the administration dashboard lookups
type AdminHandler struct {
	roles RoleService
	stats StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(roles RoleService, stats StatsService) *AdminHandler {
	return &AdminHandler{roles: roles, stats: stats}
}

// ListRoles handles GET /admin/roles
func (h *AdminHandler) ListRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.roles.List(r.Context(), identityOf(r))
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch roles")
		return
	}
	respondWithData(w, roles, "")
}

// GetStats handles GET /admin/stats
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Get(r.Context(), identityOf(r))
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch statistics")
		return
	}
	respondWithData(w, stats, "")
}
