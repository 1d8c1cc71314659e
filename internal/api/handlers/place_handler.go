package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// PlaceService is the place behaviour the handler depends on
type PlaceService interface {
	List(ctx context.Context, identity *auth.Identity, filter repositories.PlaceFilter) ([]*entities.Place, int, error)
	Get(ctx context.Context, identity *auth.Identity, id string) (*entities.Place, error)
	GetBySlug(ctx context.Context, identity *auth.Identity, slug string) (*entities.Place, error)
	Search(ctx context.Context, query providers.PlaceSearchQuery) ([]*entities.Place, int, error)
	Create(ctx context.Context, identity *auth.Identity, input services.PlaceInput) (*entities.Place, error)
	Update(ctx context.Context, identity *auth.Identity, id string, patch services.PlacePatch) (*entities.Place, error)
	Delete(ctx context.Context, identity *auth.Identity, id string) error
}

// PlaceHandler handles place requests
type PlaceHandler struct {
	service PlaceService
}

// NewPlaceHandler creates a new place handler
func NewPlaceHandler(service PlaceService) *PlaceHandler {
	return &PlaceHandler{service: service}
}

// ListPlaces handles GET /places
func (h *PlaceHandler) ListPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.PlaceFilter{
		Search:     strings.TrimSpace(q.Get("search")),
		Location:   strings.TrimSpace(q.Get("location")),
		Category:   strings.TrimSpace(q.Get("category")),
		IncludeAll: q.Get("includeInactive") == "true",
		Page:       pageFrom(r),
	}
	if raw := q.Get("minRating"); raw != "" {
		minRating, err := strconv.ParseFloat(raw, 64)
		if err != nil || minRating < 0 || minRating > 5 {
			respondWithError(w, r, apperrors.NewValidationError("minRating must be between 0 and 5"), "")
			return
		}
		filter.MinRating = &minRating
	}

	places, total, err := h.service.List(r.Context(), identityOf(r), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch places")
		return
	}
	respondWithPage(w, places, filter.Page, total)
}

// SearchPlaces handles GET /places/search?q=
func (h *PlaceHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := providers.PlaceSearchQuery{
		Text:     strings.TrimSpace(q.Get("q")),
		Location: strings.TrimSpace(q.Get("location")),
		Category: strings.TrimSpace(q.Get("category")),
		Page:     pageFrom(r),
	}

	places, total, err := h.service.Search(r.Context(), query)
	if err != nil {
		respondWithError(w, r, err, "Failed to search places")
		return
	}
	respondWithPage(w, places, query.Page, total)
}

// GetPlace handles GET /places/{id}
func (h *PlaceHandler) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	place, err := h.service.Get(r.Context(), identityOf(r), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch place")
		return
	}
	respondWithData(w, place, "")
}

// GetPlaceBySlug handles GET /places/slug/{slug}
func (h *PlaceHandler) GetPlaceBySlug(w http.ResponseWriter, r *http.Request) {
	place, err := h.service.GetBySlug(r.Context(), identityOf(r), r.PathValue("slug"))
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch place")
		return
	}
	respondWithData(w, place, "")
}

// CreatePlace handles POST /places
func (h *PlaceHandler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	var input services.PlaceInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	place, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create place")
		return
	}
	respondWithData(w, place, "Place created successfully")
}

// UpdatePlace handles PUT /places/{id}
func (h *PlaceHandler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.PlacePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	place, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update place")
		return
	}
	respondWithData(w, place, "Place updated successfully")
}

// DeletePlace handles DELETE /places/{id}
func (h *PlaceHandler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete place")
		return
	}
	respondWithMessage(w, "Place deleted successfully")
}
