package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
)

// PlaceRepository is a mock of repositories.PlaceRepository
type PlaceRepository struct {
	mock.Mock
}

// NewPlaceRepository creates a mock that asserts its expectations on cleanup
func NewPlaceRepository(t TestingT) *PlaceRepository {
	m := &PlaceRepository{}
	register(&m.Mock, t)
	return m
}

func (m *PlaceRepository) Create(ctx context.Context, place *entities.Place) error {
	return m.Called(ctx, place).Error(0)
}

func (m *PlaceRepository) GetByID(ctx context.Context, id string) (*entities.Place, error) {
	args := m.Called(ctx, id)
	place, _ := args.Get(0).(*entities.Place)
	return place, args.Error(1)
}

func (m *PlaceRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Place, error) {
	args := m.Called(ctx, ids)
	places, _ := args.Get(0).([]*entities.Place)
	return places, args.Error(1)
}

func (m *PlaceRepository) GetBySlug(ctx context.Context, slug string) (*entities.Place, error) {
	args := m.Called(ctx, slug)
	place, _ := args.Get(0).(*entities.Place)
	return place, args.Error(1)
}

func (m *PlaceRepository) Update(ctx context.Context, place *entities.Place) error {
	return m.Called(ctx, place).Error(0)
}

func (m *PlaceRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PlaceRepository) List(ctx context.Context, filter repositories.PlaceFilter) ([]*entities.Place, int, error) {
	args := m.Called(ctx, filter)
	places, _ := args.Get(0).([]*entities.Place)
	return places, args.Int(1), args.Error(2)
}

func (m *PlaceRepository) LoadDetails(ctx context.Context, place *entities.Place) error {
	return m.Called(ctx, place).Error(0)
}

func (m *PlaceRepository) LockByID(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *PlaceRepository) SetRating(ctx context.Context, id string, rating *float64) error {
	return m.Called(ctx, id, rating).Error(0)
}

func (m *PlaceRepository) ReplaceImages(ctx context.Context, placeID string, images []entities.PlaceImage) error {
	return m.Called(ctx, placeID, images).Error(0)
}

func (m *PlaceRepository) ReplaceAmenities(ctx context.Context, placeID string, amenityIDs []int64) error {
	return m.Called(ctx, placeID, amenityIDs).Error(0)
}

func (m *PlaceRepository) ReplaceBusinessHours(ctx context.Context, placeID string, hours []entities.BusinessHours) error {
	return m.Called(ctx, placeID, hours).Error(0)
}

func (m *PlaceRepository) ReplaceContactInfo(ctx context.Context, placeID string, contacts []entities.ContactInfo) error {
	return m.Called(ctx, placeID, contacts).Error(0)
}

func (m *PlaceRepository) UpsertSEO(ctx context.Context, placeID string, seo *entities.SEO) error {
	return m.Called(ctx, placeID, seo).Error(0)
}

func (m *PlaceRepository) DeleteSEO(ctx context.Context, placeID string) error {
	return m.Called(ctx, placeID).Error(0)
}

func (m *PlaceRepository) CountByLocation(ctx context.Context, locationID int64) (int, error) {
	return count(m.Called(ctx, locationID))
}

func (m *PlaceRepository) CountByCategory(ctx context.Context, categoryID int64) (int, error) {
	return count(m.Called(ctx, categoryID))
}

func (m *PlaceRepository) Count(ctx context.Context) (int, error) {
	return count(m.Called(ctx))
}
