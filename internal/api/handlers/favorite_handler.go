package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// FavoriteService is the favorite behaviour the handler depends on
type FavoriteService interface {
	List(ctx context.Context, identity *auth.Identity, page entities.Page) ([]*entities.Favorite, int, error)
	IsFavorited(ctx context.Context, identity *auth.Identity, placeID string) (bool, error)
	Add(ctx context.Context, identity *auth.Identity, input services.FavoriteInput) (*entities.Favorite, error)
	Remove(ctx context.Context, identity *auth.Identity, placeID, ownerID string) error
}

// FavoriteHandler handles the caller's saved places
type FavoriteHandler struct {
	service FavoriteService
}

// NewFavoriteHandler creates a new favorite handler
func NewFavoriteHandler(service FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{service: service}
}

// ListFavorites handles GET /favorites
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	page := pageFrom(r)
	favorites, total, err := h.service.List(r.Context(), identityOf(r), page)
	if err != nil {
		respondWithError(w, r, err, "Failed to fetch favorites")
		return
	}
	respondWithPage(w, favorites, page, total)
}

// GetFavoriteStatus handles GET /favorites/{placeId}
func (h *FavoriteHandler) GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
	placeID, err := uuidPath(r, "placeId")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	favorited, err := h.service.IsFavorited(r.Context(), identityOf(r), placeID)
	if err != nil {
		respondWithError(w, r, err, "Failed to check favorite")
		return
	}
	respondWithData(w, map[string]bool{"isFavorited": favorited}, "")
}

// AddFavorite handles POST /favorites
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var input services.FavoriteInput
	if err := decodeJSON(w, r, &input); err != nil {
		respondWithError(w, r, err, "")
		return
	}

	favorite, err := h.service.Add(r.Context(), identityOf(r), input)
	if err != nil {
		respondWithError(w, r, err, "Failed to add favorite")
		return
	}
	respondWithData(w, favorite, "Place added to favorites")
}

// RemoveFavorite handles DELETE /favorites/{placeId}. Administrators may pass
// ?userId= to remove another user's favorite.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	placeID, err := uuidPath(r, "placeId")
	if err != nil {
		respondWithError(w, r, err, "")
		return
	}

	if err := h.service.Remove(r.Context(), identityOf(r), placeID, r.URL.Query().Get("userId")); err != nil {
		respondWithError(w, r, err, "Failed to remove favorite")
		return
	}
	respondWithMessage(w, "Place removed from favorites")
}
