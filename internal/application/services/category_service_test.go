package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/mocks"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
)

func museumsInput() services.CategoryInput {
	return services.CategoryInput{
		Query:     "museums",
		Label:     "Museums",
		Keyphrase: "best museums",
	}
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	places := mocks.NewPlaceRepository(t)
	bus := mocks.NewEventBus(t)

	service := services.NewCategoryService(repo, places, newGate(t))
	service.SetEventBus(bus)

	repo.On("GetByQuery", mock.Anything, "museums").
		Return(nil, apperrors.NewNotFoundError("category not found"))
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Category")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Category).ID = 7
		}).
		Return(nil)
	bus.On("Publish", mock.Anything, providers.EventChannelDirectoryUpdates, mock.MatchedBy(func(e *entities.DirectoryEvent) bool {
		return e.Resource == entities.ResourceCategory && e.ResourceID == "7" && e.EventType == entities.DirectoryEventCreated
	})).Return(nil)

	category, err := service.Create(ctx, admin, museumsInput())

	require.NoError(t, err)
	assert.Equal(t, int64(7), category.ID)
	assert.True(t, category.IsActive)
	assert.Equal(t, "Museums", category.Label)
}

func TestCategoryService_Create_DuplicateQueryConflicts(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	service := services.NewCategoryService(repo, mocks.NewPlaceRepository(t), newGate(t))

	repo.On("GetByQuery", mock.Anything, "museums").
		Return(&entities.Category{ID: 1, Query: "museums"}, nil)

	_, err := service.Create(ctx, admin, museumsInput())

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "query already exists")
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryService_Create_RequiresAdministrator(t *testing.T) {
	ctx := context.Background()
	service := services.NewCategoryService(mocks.NewCategoryRepository(t), mocks.NewPlaceRepository(t), newGate(t))

	_, err := service.Create(ctx, nil, museumsInput())
	assertErrorType(t, err, apperrors.ErrorTypeUnauthorized, "")

	_, err = service.Create(ctx, publisher, museumsInput())
	assertErrorType(t, err, apperrors.ErrorTypeForbidden, "")
}

func TestCategoryService_Create_ValidatesFields(t *testing.T) {
	ctx := context.Background()
	service := services.NewCategoryService(mocks.NewCategoryRepository(t), mocks.NewPlaceRepository(t), newGate(t))

	input := museumsInput()
	input.Label = ""
	_, err := service.Create(ctx, admin, input)
	assertErrorType(t, err, apperrors.ErrorTypeValidation, "label is required")
}

func TestCategoryService_Update_NullingRequiredFieldFails(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	service := services.NewCategoryService(repo, mocks.NewPlaceRepository(t), newGate(t))

	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&entities.Category{ID: 3, Query: "parks", Label: "Parks", Keyphrase: "parks", IsActive: true}, nil)

	_, err := service.Update(ctx, admin, 3, services.CategoryPatch{Label: optional.Null[string]()})

	assertErrorType(t, err, apperrors.ErrorTypeValidation, "label is required")
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryService_Update_ClearsOptionalField(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	service := services.NewCategoryService(repo, mocks.NewPlaceRepository(t), newGate(t))

	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&entities.Category{ID: 3, Query: "parks", Label: "Parks", Keyphrase: "parks", Icon: strPtr("tree"), IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool {
		return c.Icon == nil && c.Label == "Green Parks" && c.IsActive
	})).Return(nil)

	category, err := service.Update(ctx, admin, 3, services.CategoryPatch{
		Label: optional.Of("Green Parks"),
		Icon:  optional.Null[string](),
	})

	require.NoError(t, err)
	assert.Nil(t, category.Icon)
}

func TestCategoryService_Toggle(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	service := services.NewCategoryService(repo, mocks.NewPlaceRepository(t), newGate(t))

	repo.On("GetByID", mock.Anything, int64(3)).
		Return(&entities.Category{ID: 3, Query: "parks", IsActive: true}, nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool { return !c.IsActive })).
		Return(nil)

	category, err := service.Toggle(ctx, admin, 3)

	require.NoError(t, err)
	assert.False(t, category.IsActive)
}

func TestCategoryService_GetByQuery_HidesInactive(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	service := services.NewCategoryService(repo, mocks.NewPlaceRepository(t), newGate(t))

	repo.On("GetByQuery", mock.Anything, "parks").
		Return(&entities.Category{ID: 3, Query: "parks", IsActive: false}, nil)

	_, err := service.GetByQuery(ctx, "parks")
	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "Category not found")
}

func TestCategoryService_Delete_BlockedByPlaces(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	places := mocks.NewPlaceRepository(t)
	service := services.NewCategoryService(repo, places, newGate(t))

	repo.On("GetByID", mock.Anything, int64(3)).Return(&entities.Category{ID: 3}, nil)
	places.On("CountByCategory", mock.Anything, int64(3)).Return(2, nil)

	err := service.Delete(ctx, admin, 3)

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "Cannot delete category with associated places")
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCategoryService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewCategoryRepository(t)
	places := mocks.NewPlaceRepository(t)
	service := services.NewCategoryService(repo, places, newGate(t))

	repo.On("GetByID", mock.Anything, int64(3)).Return(&entities.Category{ID: 3}, nil)
	places.On("CountByCategory", mock.Anything, int64(3)).Return(0, nil)
	repo.On("Delete", mock.Anything, int64(3)).Return(nil)

	assert.NoError(t, service.Delete(ctx, admin, 3))
}
