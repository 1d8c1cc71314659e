package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

// ReviewRepository is a mock of repositories.ReviewRepository
type ReviewRepository struct {
	mock.Mock
}

// NewReviewRepository creates a mock that asserts its expectations on cleanup
func NewReviewRepository(t TestingT) *ReviewRepository {
	m := &ReviewRepository{}
	register(&m.Mock, t)
	return m
}

func (m *ReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*entities.Review)
	return review, args.Error(1)
}

func (m *ReviewRepository) GetByPlaceAndUser(ctx context.Context, placeID, userID string) (*entities.Review, error) {
	args := m.Called(ctx, placeID, userID)
	review, _ := args.Get(0).(*entities.Review)
	return review, args.Error(1)
}

func (m *ReviewRepository) Update(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ReviewRepository) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, int, error) {
	args := m.Called(ctx, filter)
	reviews, _ := args.Get(0).([]*entities.Review)
	return reviews, args.Int(1), args.Error(2)
}

func (m *ReviewRepository) RatingsForPlace(ctx context.Context, placeID string) ([]int, error) {
	args := m.Called(ctx, placeID)
	ratings, _ := args.Get(0).([]int)
	return ratings, args.Error(1)
}

func (m *ReviewRepository) PlaceIDsReviewedBy(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	placeIDs, _ := args.Get(0).([]string)
	return placeIDs, args.Error(1)
}

func (m *ReviewRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}

func (m *ReviewRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	return count(m.Called(ctx, since))
}

// FavoriteRepository is a mock of repositories.FavoriteRepository
type FavoriteRepository struct {
	mock.Mock
}

// NewFavoriteRepository creates a mock that asserts its expectations on cleanup
func NewFavoriteRepository(t TestingT) *FavoriteRepository {
	m := &FavoriteRepository{}
	register(&m.Mock, t)
	return m
}

func (m *FavoriteRepository) Create(ctx context.Context, favorite *entities.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *FavoriteRepository) Get(ctx context.Context, userID, placeID string) (*entities.Favorite, error) {
	args := m.Called(ctx, userID, placeID)
	favorite, _ := args.Get(0).(*entities.Favorite)
	return favorite, args.Error(1)
}

func (m *FavoriteRepository) Delete(ctx context.Context, userID, placeID string) error {
	return m.Called(ctx, userID, placeID).Error(0)
}

func (m *FavoriteRepository) ListByUser(ctx context.Context, userID string, page entities.Page) ([]*entities.Favorite, int, error) {
	args := m.Called(ctx, userID, page)
	favorites, _ := args.Get(0).([]*entities.Favorite)
	return favorites, args.Int(1), args.Error(2)
}

// UserRepository is a mock of repositories.UserRepository
type UserRepository struct {
	mock.Mock
}

// NewUserRepository creates a mock that asserts its expectations on cleanup
func NewUserRepository(t TestingT) *UserRepository {
	m := &UserRepository{}
	register(&m.Mock, t)
	return m
}

func (m *UserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *UserRepository) Update(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *UserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *UserRepository) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, int, error) {
	args := m.Called(ctx, filter)
	users, _ := args.Get(0).([]*entities.User)
	return users, args.Int(1), args.Error(2)
}

func (m *UserRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}

// RoleRepository is a mock of repositories.RoleRepository
type RoleRepository struct {
	mock.Mock
}

// NewRoleRepository creates a mock that asserts its expectations on cleanup
func NewRoleRepository(t TestingT) *RoleRepository {
	m := &RoleRepository{}
	register(&m.Mock, t)
	return m
}

func (m *RoleRepository) List(ctx context.Context) ([]*entities.Role, error) {
	args := m.Called(ctx)
	roles, _ := args.Get(0).([]*entities.Role)
	return roles, args.Error(1)
}

func (m *RoleRepository) GetByID(ctx context.Context, id int64) (*entities.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*entities.Role)
	return role, args.Error(1)
}

func (m *RoleRepository) GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error) {
	args := m.Called(ctx, name)
	role, _ := args.Get(0).(*entities.Role)
	return role, args.Error(1)
}

func (m *RoleRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}
