package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/api/handlers"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func TestFavoriteHandler_AddFavoriteTwice(t *testing.T) {
	svc := new(MockFavoriteService)
	handler := handlers.NewFavoriteHandler(svc)
	body := `{"placeId":"` + placeID + `"}`

	svc.On("Add", mock.Anything, userIdentity, services.FavoriteInput{PlaceID: placeID}).
		Return(&entities.Favorite{ID: "fav-1", PlaceID: placeID, UserID: userIdentity.UserID}, nil).Once()
	svc.On("Add", mock.Anything, userIdentity, services.FavoriteInput{PlaceID: placeID}).
		Return(nil, apperrors.NewConflictError("Place is already in favorites")).Once()

	first := httptest.NewRecorder()
	handler.AddFavorite(first, newRequest(http.MethodPost, "/favorites", body, userIdentity))
	second := httptest.NewRecorder()
	handler.AddFavorite(second, newRequest(http.MethodPost, "/favorites", body, userIdentity))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.True(t, decodeEnvelope(t, first).Success)
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Place is already in favorites", decodeEnvelope(t, second).Error)
	svc.AssertExpectations(t)
}

func TestFavoriteHandler_GetFavoriteStatus(t *testing.T) {
	svc := new(MockFavoriteService)
	handler := handlers.NewFavoriteHandler(svc)

	svc.On("IsFavorited", mock.Anything, userIdentity, placeID).Return(true, nil)

	req := newRequest(http.MethodGet, "/favorites/"+placeID, "", userIdentity)
	req.SetPathValue("placeId", placeID)
	w := httptest.NewRecorder()
	handler.GetFavoriteStatus(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"isFavorited":true}}`, w.Body.String())
}

func TestFavoriteHandler_RemoveFavorite(t *testing.T) {
	t.Run("missing favorite", func(t *testing.T) {
		svc := new(MockFavoriteService)
		handler := handlers.NewFavoriteHandler(svc)

		svc.On("Remove", mock.Anything, userIdentity, placeID, "").
			Return(apperrors.NewNotFoundError("Place is not in favorites"))

		req := newRequest(http.MethodDelete, "/favorites/"+placeID, "", userIdentity)
		req.SetPathValue("placeId", placeID)
		w := httptest.NewRecorder()
		handler.RemoveFavorite(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Place is not in favorites", decodeEnvelope(t, w).Error)
	})

	t.Run("administrator removes another user's favorite", func(t *testing.T) {
		svc := new(MockFavoriteService)
		handler := handlers.NewFavoriteHandler(svc)

		svc.On("Remove", mock.Anything, adminIdentity, placeID, userIdentity.UserID).Return(nil)

		req := newRequest(http.MethodDelete, "/favorites/"+placeID+"?userId="+userIdentity.UserID, "", adminIdentity)
		req.SetPathValue("placeId", placeID)
		w := httptest.NewRecorder()
		handler.RemoveFavorite(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})
}

func TestFavoriteHandler_ListFavorites_Anonymous(t *testing.T) {
	svc := new(MockFavoriteService)
	handler := handlers.NewFavoriteHandler(svc)

	svc.On("List", mock.Anything, mock.AnythingOfType("*auth.Identity"), entities.Page{Number: 1, Limit: 10}).
		Return(nil, 0, apperrors.NewUnauthorizedError("Authentication required"))

	w := httptest.NewRecorder()
	handler.ListFavorites(w, newRequest(http.MethodGet, "/favorites", "", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
