package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/adapters/cache"
	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/internal/mocks"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

func museumsCategory() *entities.Category {
	return &entities.Category{
		ID:       1,
		Query:    "museums",
		Label:    "Museums",
		Prompt:   strPtr("List museums in <selectedLocation>, <selectedProvince>."),
		IsActive: true,
	}
}

func TestRecommendationService_GeneratesThenServesFromCache(t *testing.T) {
	ctx := context.Background()
	categories := mocks.NewCategoryRepository(t)
	locations := mocks.NewLocationRepository(t)
	completion := mocks.NewCompletionProvider(t)
	metrics := observability.NewDirectoryMetrics(prometheus.NewRegistry())

	service := services.NewRecommendationService(categories, locations, completion, cache.NewMemoryAdapter(), time.Minute, metrics)

	categories.On("GetByQuery", mock.Anything, "museums").Return(museumsCategory(), nil)
	locations.On("GetByName", mock.Anything, "reykjavik").
		Return(&entities.Location{ID: 1, Name: "reykjavik", DisplayName: "Reykjavík"}, nil)
	completion.On("Complete", mock.Anything, "List museums in Reykjavík, Reykjavík.").
		Return("National Museum", nil).Once()

	first, err := service.Recommend(ctx, "museums", "reykjavik")
	require.NoError(t, err)
	assert.Equal(t, "National Museum", first.Text)
	assert.False(t, first.Cached)

	second, err := service.Recommend(ctx, "museums", "reykjavik")
	require.NoError(t, err)
	assert.Equal(t, "National Museum", second.Text)
	assert.True(t, second.Cached)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RecommendationResults.WithLabelValues("generated")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RecommendationResults.WithLabelValues("hit")))
}

func TestRecommendationService_RequiresLocation(t *testing.T) {
	service := services.NewRecommendationService(mocks.NewCategoryRepository(t), mocks.NewLocationRepository(t), nil, nil, 0, nil)

	_, err := service.Recommend(context.Background(), "museums", "  ")

	assertErrorType(t, err, apperrors.ErrorTypeValidation, "location is required")
}

func TestRecommendationService_InactiveCategory(t *testing.T) {
	categories := mocks.NewCategoryRepository(t)
	service := services.NewRecommendationService(categories, mocks.NewLocationRepository(t), nil, nil, 0, nil)

	inactive := museumsCategory()
	inactive.IsActive = false
	categories.On("GetByQuery", mock.Anything, "museums").Return(inactive, nil)

	_, err := service.Recommend(context.Background(), "museums", "reykjavik")

	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "Category not found")
}

func TestRecommendationService_WithoutProvider(t *testing.T) {
	categories := mocks.NewCategoryRepository(t)
	locations := mocks.NewLocationRepository(t)
	service := services.NewRecommendationService(categories, locations, nil, nil, 0, nil)

	categories.On("GetByQuery", mock.Anything, "museums").Return(museumsCategory(), nil)
	locations.On("GetByName", mock.Anything, "reykjavik").Return(&entities.Location{Name: "reykjavik", DisplayName: "Reykjavík"}, nil)

	_, err := service.Recommend(context.Background(), "museums", "reykjavik")

	assertErrorType(t, err, apperrors.ErrorTypeExternal, "")
}

func TestRecommendationService_CategoryWithoutPrompt(t *testing.T) {
	categories := mocks.NewCategoryRepository(t)
	locations := mocks.NewLocationRepository(t)
	service := services.NewRecommendationService(categories, locations, mocks.NewCompletionProvider(t), nil, 0, nil)

	category := museumsCategory()
	category.Prompt = nil
	categories.On("GetByQuery", mock.Anything, "museums").Return(category, nil)
	locations.On("GetByName", mock.Anything, "reykjavik").Return(&entities.Location{Name: "reykjavik", DisplayName: "Reykjavík"}, nil)

	_, err := service.Recommend(context.Background(), "museums", "reykjavik")

	assertErrorType(t, err, apperrors.ErrorTypeValidation, "")
}

func TestRecommendationService_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	categories := mocks.NewCategoryRepository(t)
	locations := mocks.NewLocationRepository(t)
	completion := mocks.NewCompletionProvider(t)
	service := services.NewRecommendationService(categories, locations, completion, nil, 0, nil)

	categories.On("GetByQuery", mock.Anything, "museums").Return(museumsCategory(), nil)
	locations.On("GetByName", mock.Anything, "reykjavik").Return(&entities.Location{Name: "reykjavik", DisplayName: "Reykjavík"}, nil)
	completion.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("upstream 500")).Times(5)

	for i := 0; i < 5; i++ {
		_, err := service.Recommend(ctx, "museums", "reykjavik")
		assertErrorType(t, err, apperrors.ErrorTypeExternal, "Failed to generate recommendations")
	}

	_, err := service.Recommend(ctx, "museums", "reykjavik")
	assertErrorType(t, err, apperrors.ErrorTypeExternal, "Recommendations are temporarily unavailable")
}
