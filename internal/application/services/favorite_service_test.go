package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/mocks"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func TestFavoriteService_AddThenAddAgain(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewFavoriteRepository(t)
	places := mocks.NewPlaceRepository(t)
	service := services.NewFavoriteService(repo, places, newGate(t), nil)

	places.On("GetByID", mock.Anything, "place-1").Return(storedPlace(), nil)
	repo.On("Get", mock.Anything, member.UserID, "place-1").
		Return(nil, apperrors.NewNotFoundError("Favorite not found")).Once()
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *entities.Favorite) bool {
		return f.UserID == member.UserID && f.PlaceID == "place-1"
	})).Return(nil).Once()

	favorite, err := service.Add(ctx, member, services.FavoriteInput{PlaceID: "place-1"})
	require.NoError(t, err)
	assert.Equal(t, "Blue Lagoon", favorite.Place.Name)

	repo.On("Get", mock.Anything, member.UserID, "place-1").
		Return(&entities.Favorite{ID: "fav-1"}, nil).Once()

	_, err = service.Add(ctx, member, services.FavoriteInput{PlaceID: "place-1"})
	assertErrorType(t, err, apperrors.ErrorTypeConflict, "Place is already in favorites")
}

func TestFavoriteService_Add_RaceLostIsConflict(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewFavoriteRepository(t)
	places := mocks.NewPlaceRepository(t)
	service := services.NewFavoriteService(repo, places, newGate(t), nil)

	places.On("GetByID", mock.Anything, "place-1").Return(storedPlace(), nil)
	repo.On("Get", mock.Anything, member.UserID, "place-1").
		Return(nil, apperrors.NewNotFoundError("Favorite not found"))
	repo.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.NewConflictError("place_id already exists"))

	_, err := service.Add(ctx, member, services.FavoriteInput{PlaceID: "place-1"})
	assertErrorType(t, err, apperrors.ErrorTypeConflict, "Place is already in favorites")
}

func TestFavoriteService_Add_UnknownPlace(t *testing.T) {
	ctx := context.Background()
	places := mocks.NewPlaceRepository(t)
	service := services.NewFavoriteService(mocks.NewFavoriteRepository(t), places, newGate(t), nil)

	places.On("GetByID", mock.Anything, "missing").Return(nil, apperrors.NewNotFoundError("Place not found"))

	_, err := service.Add(ctx, member, services.FavoriteInput{PlaceID: "missing"})
	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "Place not found")
}

func TestFavoriteService_RequiresSignIn(t *testing.T) {
	service := services.NewFavoriteService(mocks.NewFavoriteRepository(t), mocks.NewPlaceRepository(t), newGate(t), nil)

	_, _, err := service.List(context.Background(), nil, entities.NewPage(1, 10))
	assertErrorType(t, err, apperrors.ErrorTypeUnauthorized, "")
}

func TestFavoriteService_Remove(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewFavoriteRepository(t)
	service := services.NewFavoriteService(repo, mocks.NewPlaceRepository(t), newGate(t), nil)

	repo.On("Delete", mock.Anything, member.UserID, "place-1").Return(nil).Once()
	require.NoError(t, service.Remove(ctx, member, "place-1", ""))

	repo.On("Delete", mock.Anything, member.UserID, "place-1").
		Return(apperrors.NewNotFoundError("Favorite not found")).Once()
	err := service.Remove(ctx, member, "place-1", "")
	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "Place is not in favorites")
}

func TestFavoriteService_Remove_OtherUsersFavorite(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewFavoriteRepository(t)
	service := services.NewFavoriteService(repo, mocks.NewPlaceRepository(t), newGate(t), nil)

	err := service.Remove(ctx, otherUser, "place-1", member.UserID)
	assertErrorType(t, err, apperrors.ErrorTypeForbidden, "You can only modify your own records")

	repo.On("Delete", mock.Anything, member.UserID, "place-1").Return(nil)
	require.NoError(t, service.Remove(ctx, admin, "place-1", member.UserID))
}

func TestFavoriteService_IsFavorited(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewFavoriteRepository(t)
	service := services.NewFavoriteService(repo, mocks.NewPlaceRepository(t), newGate(t), nil)

	repo.On("Get", mock.Anything, member.UserID, "place-1").Return(&entities.Favorite{}, nil)
	repo.On("Get", mock.Anything, member.UserID, "place-2").Return(nil, apperrors.NewNotFoundError("Favorite not found"))

	saved, err := service.IsFavorited(ctx, member, "place-1")
	require.NoError(t, err)
	assert.True(t, saved)

	saved, err = service.IsFavorited(ctx, member, "place-2")
	require.NoError(t, err)
	assert.False(t, saved)
}
