package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

// CategoryRepository is a mock of repositories.CategoryRepository
type CategoryRepository struct {
	mock.Mock
}

// NewCategoryRepository creates a mock that asserts its expectations on cleanup
func NewCategoryRepository(t TestingT) *CategoryRepository {
	m := &CategoryRepository{}
	register(&m.Mock, t)
	return m
}

func (m *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*entities.Category)
	return category, args.Error(1)
}

func (m *CategoryRepository) GetByQuery(ctx context.Context, query string) (*entities.Category, error) {
	args := m.Called(ctx, query)
	category, _ := args.Get(0).(*entities.Category)
	return category, args.Error(1)
}

func (m *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CategoryRepository) ListActive(ctx context.Context) ([]*entities.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]*entities.Category)
	return categories, args.Error(1)
}

func (m *CategoryRepository) List(ctx context.Context, filter repositories.CategoryFilter) ([]*entities.Category, int, error) {
	args := m.Called(ctx, filter)
	categories, _ := args.Get(0).([]*entities.Category)
	return categories, args.Int(1), args.Error(2)
}

func (m *CategoryRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}

// LocationRepository is a mock of repositories.LocationRepository
type LocationRepository struct {
	mock.Mock
}

// NewLocationRepository creates a mock that asserts its expectations on cleanup
func NewLocationRepository(t TestingT) *LocationRepository {
	m := &LocationRepository{}
	register(&m.Mock, t)
	return m
}

func (m *LocationRepository) Create(ctx context.Context, location *entities.Location) error {
	return m.Called(ctx, location).Error(0)
}

func (m *LocationRepository) GetByID(ctx context.Context, id int64) (*entities.Location, error) {
	args := m.Called(ctx, id)
	location, _ := args.Get(0).(*entities.Location)
	return location, args.Error(1)
}

func (m *LocationRepository) GetByName(ctx context.Context, name string) (*entities.Location, error) {
	args := m.Called(ctx, name)
	location, _ := args.Get(0).(*entities.Location)
	return location, args.Error(1)
}

func (m *LocationRepository) Update(ctx context.Context, location *entities.Location) error {
	return m.Called(ctx, location).Error(0)
}

func (m *LocationRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *LocationRepository) List(ctx context.Context, filter repositories.LocationFilter) ([]*entities.Location, int, error) {
	args := m.Called(ctx, filter)
	locations, _ := args.Get(0).([]*entities.Location)
	return locations, args.Int(1), args.Error(2)
}

func (m *LocationRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}

// AmenityRepository is a mock of repositories.AmenityRepository
type AmenityRepository struct {
	mock.Mock
}

// NewAmenityRepository creates a mock that asserts its expectations on cleanup
func NewAmenityRepository(t TestingT) *AmenityRepository {
	m := &AmenityRepository{}
	register(&m.Mock, t)
	return m
}

func (m *AmenityRepository) Create(ctx context.Context, amenity *entities.Amenity) error {
	return m.Called(ctx, amenity).Error(0)
}

func (m *AmenityRepository) GetByID(ctx context.Context, id int64) (*entities.Amenity, error) {
	args := m.Called(ctx, id)
	amenity, _ := args.Get(0).(*entities.Amenity)
	return amenity, args.Error(1)
}

func (m *AmenityRepository) GetByName(ctx context.Context, name string) (*entities.Amenity, error) {
	args := m.Called(ctx, name)
	amenity, _ := args.Get(0).(*entities.Amenity)
	return amenity, args.Error(1)
}

func (m *AmenityRepository) ExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	args := m.Called(ctx, ids)
	existing, _ := args.Get(0).([]int64)
	return existing, args.Error(1)
}

func (m *AmenityRepository) Update(ctx context.Context, amenity *entities.Amenity) error {
	return m.Called(ctx, amenity).Error(0)
}

func (m *AmenityRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AmenityRepository) List(ctx context.Context, filter repositories.AmenityFilter) ([]*entities.Amenity, int, error) {
	args := m.Called(ctx, filter)
	amenities, _ := args.Get(0).([]*entities.Amenity)
	return amenities, args.Int(1), args.Error(2)
}

func (m *AmenityRepository) CountUsage(ctx context.Context, id int64) (int, error) {
	return count(m.Called(ctx, id))
}
