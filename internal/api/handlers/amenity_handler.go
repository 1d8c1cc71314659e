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

// AmenityService is the amenity behaviour the handler depends on
type AmenityService interface {
	List(ctx context.Context, filter repositories.AmenityFilter) ([]*entities.Amenity, int, error)
	GetByID(ctx context.Context, id int64) (*entities.Amenity, error)
	Create(ctx context.Context, identity *auth.Identity, input services.AmenityInput) (*entities.Amenity, error)
	Update(ctx context.Context, identity *auth.Identity, id int64, patch services.AmenityPatch) (*entities.Amenity, error)
	Delete(ctx context.Context, identity *auth.Identity, id int64) error
}

// AmenityHandler handles amenity requests
type AmenityHandler struct {
	service AmenityService
}

// NewAmenityHandler creates a new amenity handler
func NewAmenityHandler(service AmenityService) *AmenityHandler {
	return &AmenityHandler{service: service}
}

// ListAmenities handles GET /amenities
func (h *AmenityHandler) ListAmenities(w http.ResponseWriter, r *http.Request) {
	filter := repositories.AmenityFilter{
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
		IsActive: boolQuery(r, "isActive"),
		Page:     pageFrom(r),
	}

	amenities, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch amenities")
		return
	}
	respondWithPage(w, amenities, filter.Page, total)
}

// GetAmenity handles GET /amenities/{id}
func (h *AmenityHandler) GetAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	amenity, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch amenity")
		return
	}
	respondWithData(w, amenity, "")
}

// CreateAmenity handles POST /amenities
func (h *AmenityHandler) CreateAmenity(w http.ResponseWriter, r *http.Request) {
	var input services.AmenityInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	amenity, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create amenity")
		return
	}
	respondWithData(w, amenity, "Amenity created successfully")
}

// UpdateAmenity handles PUT /amenities/{id}
func (h *AmenityHandler) UpdateAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.AmenityPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	amenity, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update amenity")
		return
	}
	respondWithData(w, amenity, "Amenity updated successfully")
}

// DeleteAmenity handles DELETE /amenities/{id}
func (h *AmenityHandler) DeleteAmenity(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete amenity")
		return
	}
	respondWithMessage(w, "Amenity deleted successfully")
}
