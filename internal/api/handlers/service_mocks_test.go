package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) ListActive(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Category), args.Error(1)
}

func (m *MockCategoryService) GetByQuery(ctx context.Context, query string) (*entities.Category, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryService) List(ctx context.Context, identity *auth.Identity, filter repositories.CategoryFilter) ([]*entities.Category, int, error) {
	args := m.Called(ctx, identity, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Category), args.Int(1), args.Error(2)
}

func (m *MockCategoryService) GetByID(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryService) Create(ctx context.Context, identity *auth.Identity, input services.CategoryInput) (*entities.Category, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryService) Update(ctx context.Context, identity *auth.Identity, id int64, patch services.CategoryPatch) (*entities.Category, error) {
	args := m.Called(ctx, identity, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryService) Toggle(ctx context.Context, identity *auth.Identity, id int64) (*entities.Category, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Category), args.Error(1)
}

func (m *MockCategoryService) Delete(ctx context.Context, identity *auth.Identity, id int64) error {
	return m.Called(ctx, identity, id).Error(0)
}

type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) Recommend(ctx context.Context, categoryQuery, locationName string) (*services.Recommendation, error) {
	args := m.Called(ctx, categoryQuery, locationName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Recommendation), args.Error(1)
}

type MockPlaceService struct {
	mock.Mock
}

func (m *MockPlaceService) List(ctx context.Context, identity *auth.Identity, filter repositories.PlaceFilter) ([]*entities.Place, int, error) {
	args := m.Called(ctx, identity, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Place), args.Int(1), args.Error(2)
}

func (m *MockPlaceService) Get(ctx context.Context, identity *auth.Identity, id string) (*entities.Place, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockPlaceService) GetBySlug(ctx context.Context, identity *auth.Identity, slug string) (*entities.Place, error) {
	args := m.Called(ctx, identity, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockPlaceService) Search(ctx context.Context, query providers.PlaceSearchQuery) ([]*entities.Place, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Place), args.Int(1), args.Error(2)
}

func (m *MockPlaceService) Create(ctx context.Context, identity *auth.Identity, input services.PlaceInput) (*entities.Place, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockPlaceService) Update(ctx context.Context, identity *auth.Identity, id string, patch services.PlacePatch) (*entities.Place, error) {
	args := m.Called(ctx, identity, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Place), args.Error(1)
}

func (m *MockPlaceService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	return m.Called(ctx, identity, id).Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Review), args.Int(1), args.Error(2)
}

func (m *MockReviewService) Get(ctx context.Context, id string) (*entities.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, identity *auth.Identity, input services.ReviewInput) (*entities.Review, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, identity *auth.Identity, id string, patch services.ReviewPatch) (*entities.Review, error) {
	args := m.Called(ctx, identity, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	return m.Called(ctx, identity, id).Error(0)
}

type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) List(ctx context.Context, identity *auth.Identity, page entities.Page) ([]*entities.Favorite, int, error) {
	args := m.Called(ctx, identity, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Favorite), args.Int(1), args.Error(2)
}

func (m *MockFavoriteService) IsFavorited(ctx context.Context, identity *auth.Identity, placeID string) (bool, error) {
	args := m.Called(ctx, identity, placeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteService) Add(ctx context.Context, identity *auth.Identity, input services.FavoriteInput) (*entities.Favorite, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Favorite), args.Error(1)
}

func (m *MockFavoriteService) Remove(ctx context.Context, identity *auth.Identity, placeID, ownerID string) error {
	return m.Called(ctx, identity, placeID, ownerID).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context, identity *auth.Identity, filter repositories.UserFilter) ([]*entities.User, int, error) {
	args := m.Called(ctx, identity, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.User), args.Int(1), args.Error(2)
}

func (m *MockUserService) Get(ctx context.Context, identity *auth.Identity, id string) (*entities.User, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, identity *auth.Identity, input services.UserInput) (*entities.User, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, identity *auth.Identity, id string, patch services.UserPatch) (*entities.User, error) {
	args := m.Called(ctx, identity, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserService) ResetPassword(ctx context.Context, identity *auth.Identity, id string, input services.PasswordReset) error {
	return m.Called(ctx, identity, id, input).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	return m.Called(ctx, identity, id).Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, input services.RegisterInput) (*services.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, input services.LoginInput) (*services.Session, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Session), args.Error(1)
}

func (m *MockAuthService) Me(ctx context.Context, identity *auth.Identity) (*entities.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}
