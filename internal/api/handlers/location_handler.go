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

// LocationService is the location behaviour the handler depends on
type LocationService interface {
	List(ctx context.Context, filter repositories.LocationFilter) ([]*entities.Location, int, error)
	GetByID(ctx context.Context, id int64) (*entities.Location, error)
	Create(ctx context.Context, identity *auth.Identity, input services.LocationInput) (*entities.Location, error)
	Update(ctx context.Context, identity *auth.Identity, id int64, patch services.LocationPatch) (*entities.Location, error)
	Delete(ctx context.Context, identity *auth.Identity, id int64) error
}

// LocationHandler handles location requests
type LocationHandler struct {
	service LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// ListLocations handles GET /locations
func (h *LocationHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	filter := repositories.LocationFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		IsActive: boolQuery(r, "isActive"),
		Page:     pageFrom(r),
	}

	locations, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch locations")
		return
	}
	respondWithPage(w, locations, filter.Page, total)
}

// GetLocation handles GET /locations/{id}
func (h *LocationHandler) GetLocation(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	location, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch location")
		return
	}
	respondWithData(w, location, "")
}

// CreateLocation handles POST /locations
func (h *LocationHandler) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var input services.LocationInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	location, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create location")
		return
	}
	respondWithData(w, location, "Location created successfully")
}

// UpdateLocation handles PUT /locations/{id}
func (h *LocationHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.LocationPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	location, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update location")
		return
	}
	respondWithData(w, location, "Location updated successfully")
}

// DeleteLocation handles DELETE /locations/{id}
func (h *LocationHandler) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete location")
		return
	}
	respondWithMessage(w, "Location deleted successfully")
}
