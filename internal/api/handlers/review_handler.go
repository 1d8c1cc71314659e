package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// ReviewService is the review behaviour the handler depends on
type ReviewService interface {
	List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, int, error)
	Get(ctx context.Context, id string) (*entities.Review, error)
	Create(ctx context.Context, identity *auth.Identity, input services.ReviewInput) (*entities.Review, error)
	Update(ctx context.Context, identity *auth.Identity, id string, patch services.ReviewPatch) (*entities.Review, error)
	Delete(ctx context.Context, identity *auth.Identity, id string) error
}

// ReviewHandler handles review requests
type ReviewHandler struct {
	service ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// ListReviews handles GET /reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.ReviewFilter{
		PlaceID: strings.TrimSpace(q.Get("placeId")),
		UserID:  strings.TrimSpace(q.Get("userId")),
		Page:    pageFrom(r),
	}
	if raw := q.Get("rating"); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || !entities.ValidRating(rating) {
			respondWithError(w, r, apperrors.NewValidationError("rating must be between 1 and 5"), "")
			return
		}
		filter.Rating = &rating
	}

	reviews, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch reviews")
		return
	}
	respondWithPage(w, reviews, filter.Page, total)
}

// GetReview handles GET /reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	review, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch review")
		return
	}
	respondWithData(w, review, "")
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input services.ReviewInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	review, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create review")
		return
	}
	respondWithData(w, review, "Review created successfully")
}

// UpdateReview handles PUT /reviews/{id}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.ReviewPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	review, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update review")
		return
	}
	respondWithData(w, review, "Review updated successfully")
}

// DeleteReview handles DELETE /reviews/{id}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, err := uuidPath(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete review")
		return
	}
	respondWithMessage(w, "Review deleted successfully")
}
