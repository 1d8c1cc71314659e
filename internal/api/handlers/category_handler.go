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

// CategoryService is the category behaviour the handler depends on
type CategoryService interface {
	ListActive(ctx context.Context) ([]*entities.Category, error)
	GetByQuery(ctx context.Context, query string) (*entities.Category, error)
	List(ctx context.Context, identity *auth.Identity, filter repositories.CategoryFilter) ([]*entities.Category, int, error)
	GetByID(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error)
	Create(ctx context.Context, identity *auth.Identity, input services.CategoryInput) (*entities.Category, error)
	Update(ctx context.Context, identity *auth.Identity, id int64, patch services.CategoryPatch) (*entities.Category, error)
	Toggle(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error)
	Delete(ctx context.Context, identity *auth.Identity, id int64) error
}

// RecommendationService generates category recommendations for a location
type RecommendationService interface {
	Recommend(ctx context.Context, categoryQuery, locationName string) (*services.Recommendation, error)
}

// CategoryHandler handles public and administrative category requests
type CategoryHandler struct {
	service         CategoryService
	recommendations RecommendationService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service CategoryService, recommendations RecommendationService) *CategoryHandler {
	return &CategoryHandler{
		service:         service,
		recommendations: recommendations,
	}
}

// ListCategories handles GET /categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListActive(r.Context())
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch categories")
		return
	}
	respondWithData(w, categories, "")
}

// GetCategory handles GET /categories/{query}
func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.service.GetByQuery(r.Context(), r.PathValue("query"))
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch category")
		return
	}
	respondWithData(w, category, "")
}

// GetRecommendations handles GET /categories/{query}/recommendations?location=
func (h *CategoryHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	rec, err := h.recommendations.Recommend(r.Context(), r.PathValue("query"), strings.TrimSpace(r.URL.Query().Get("location")))
	if err != nil {
		respondWithError(w, r, err, "Failed to generate recommendations")
		return
	}
	respondWithData(w, rec, "")
}

// AdminListCategories handles GET /admin/categories
func (h *CategoryHandler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	filter := repositories.CategoryFilter{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Page:   pageFrom(r),
	}

	categories, total, err := h.service.List(r.Context(), identityOf(r), filter)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch categories")
		return
	}
	respondWithPage(w, categories, filter.Page, total)
}

// AdminGetCategory handles GET /admin/categories/{id}
func (h *CategoryHandler) AdminGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	category, err := h.service.GetByID(r.Context(), identityOf(r), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch category")
		return
	}
	respondWithData(w, category, "")
}

// CreateCategory handles POST /admin/categories
func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input services.CategoryInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	category, err := h.service.Create(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to create category")
		return
	}
	respondWithData(w, category, "Category created successfully")
}

// UpdateCategory handles PUT /admin/categories/{id}
func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	var patch services.CategoryPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	category, err := h.service.Update(r.Context(), identityOf(r), id, patch)
	if err != nil {
		respondWithError(w, r, err, "Failed to update category")
		return
	}
	respondWithData(w, category, "Category updated successfully")
}

// ToggleCategory handles POST /admin/categories/{id}/toggle
func (h *CategoryHandler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	category, err := h.service.Toggle(r.Context(), identityOf(r), id)
	if err != nil {
		respondWithError(w, r, err, "Failed to update category")
		return
	}

	message := "Category deactivated successfully"
	if category.IsActive {
		message = "Category activated successfully"
	}
	respondWithData(w, category, message)
}

// DeleteCategory handles DELETE /admin/categories/{id}
func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := int64Path(r, "id")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Delete(r.Context(), identityOf(r), id); err != nil {
		respondWithError(w, r, err, "Failed to delete category")
		return
	}
	respondWithMessage(w, "Category deleted successfully")
}
