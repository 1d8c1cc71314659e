package services_test

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/internal/mocks"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
)

type reviewFixture struct {
	reviews *mocks.ReviewRepository
	places  *mocks.PlaceRepository
	tx      *mocks.Transactor
	metrics *observability.DirectoryMetrics
	service *services.ReviewService
}

func newReviewFixture(t *testing.T) *reviewFixture {
	f := &reviewFixture{
		reviews: mocks.NewReviewRepository(t),
		places:  mocks.NewPlaceRepository(t),
		tx:      &mocks.Transactor{},
		metrics: observability.NewDirectoryMetrics(prometheus.NewRegistry()),
	}
	f.service = services.NewReviewService(f.reviews, f.places, f.tx, newGate(t), f.metrics)
	return f
}

func ratingOf(v float64) interface{} {
	return mock.MatchedBy(func(r *float64) bool { return r != nil && *r == v })
}

func TestReviewService_Create_RecomputesRating(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	f.places.On("LockByID", mock.Anything, "place-1").Return(nil)
	f.reviews.On("GetByPlaceAndUser", mock.Anything, "place-1", member.UserID).
		Return(nil, apperrors.NewNotFoundError("review not found"))
	f.reviews.On("Create", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.PlaceID == "place-1" && r.UserID == member.UserID && r.Rating == 3
	})).Return(nil)
	f.reviews.On("RatingsForPlace", mock.Anything, "place-1").Return([]int{5, 3}, nil)
	f.places.On("SetRating", mock.Anything, "place-1", ratingOf(4.0)).Return(nil)
	f.reviews.On("GetByID", mock.Anything, mock.AnythingOfType("string")).
		Return(&entities.Review{ID: "review-2", PlaceID: "place-1", UserID: member.UserID, Rating: 3}, nil)

	review, err := f.service.Create(ctx, member, services.ReviewInput{PlaceID: "place-1", Rating: 3})

	require.NoError(t, err)
	assert.Equal(t, 3, review.Rating)
	assert.Equal(t, 1, f.tx.Calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.RatingRecomputations))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ReviewWrites.WithLabelValues("create")))
}

func TestReviewService_Create_SecondReviewConflicts(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	f.places.On("LockByID", mock.Anything, "place-1").Return(nil)
	f.reviews.On("GetByPlaceAndUser", mock.Anything, "place-1", member.UserID).
		Return(&entities.Review{ID: "review-1"}, nil)

	_, err := f.service.Create(ctx, member, services.ReviewInput{PlaceID: "place-1", Rating: 4})

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "You have already reviewed this place")
	f.reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.places.AssertNotCalled(t, "SetRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewService_Create_RejectsOutOfRangeRating(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	for _, rating := range []int{0, 6} {
		_, err := f.service.Create(ctx, member, services.ReviewInput{PlaceID: "place-1", Rating: rating})
		assertErrorType(t, err, apperrors.ErrorTypeValidation, "")
	}
	assert.Equal(t, 0, f.tx.Calls)
}

func TestReviewService_Create_RequiresSignIn(t *testing.T) {
	f := newReviewFixture(t)

	_, err := f.service.Create(context.Background(), nil, services.ReviewInput{PlaceID: "place-1", Rating: 4})

	assertErrorType(t, err, apperrors.ErrorTypeUnauthorized, "Authentication required")
}

func TestReviewService_Update_OnlyOwnerOrAdministrator(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	stored := &entities.Review{ID: "review-1", PlaceID: "place-1", UserID: member.UserID, Rating: 2}
	f.reviews.On("GetByID", mock.Anything, "review-1").Return(stored, nil)

	_, err := f.service.Update(ctx, otherUser, "review-1", services.ReviewPatch{Rating: optional.Of(5)})
	assertErrorType(t, err, apperrors.ErrorTypeForbidden, "You can only modify your own records")

	_, err = f.service.Update(ctx, publisher, "review-1", services.ReviewPatch{Rating: optional.Of(5)})
	assertErrorType(t, err, apperrors.ErrorTypeForbidden, "")

	assert.Equal(t, 0, f.tx.Calls)
}

func TestReviewService_Update_AdministratorModerates(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	stored := &entities.Review{ID: "review-1", PlaceID: "place-1", UserID: member.UserID, Rating: 2, Comment: strPtr("meh")}
	f.reviews.On("GetByID", mock.Anything, "review-1").Return(stored, nil)
	f.places.On("LockByID", mock.Anything, "place-1").Return(nil)
	f.reviews.On("Update", mock.Anything, mock.MatchedBy(func(r *entities.Review) bool {
		return r.Rating == 5 && r.Comment == nil
	})).Return(nil)
	f.reviews.On("RatingsForPlace", mock.Anything, "place-1").Return([]int{5}, nil)
	f.places.On("SetRating", mock.Anything, "place-1", ratingOf(5.0)).Return(nil)

	review, err := f.service.Update(ctx, admin, "review-1", services.ReviewPatch{
		Rating:  optional.Of(5),
		Comment: optional.Null[string](),
	})

	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
}

func TestReviewService_Delete_LastReviewClearsRating(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	f.reviews.On("GetByID", mock.Anything, "review-1").
		Return(&entities.Review{ID: "review-1", PlaceID: "place-1", UserID: member.UserID, Rating: 4}, nil)
	f.places.On("LockByID", mock.Anything, "place-1").Return(nil)
	f.reviews.On("Delete", mock.Anything, "review-1").Return(nil)
	f.reviews.On("RatingsForPlace", mock.Anything, "place-1").Return([]int{}, nil)
	f.places.On("SetRating", mock.Anything, "place-1", mock.MatchedBy(func(r *float64) bool { return r == nil })).Return(nil)

	require.NoError(t, f.service.Delete(ctx, member, "review-1"))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.ReviewWrites.WithLabelValues("delete")))
}

func TestReviewService_Delete_MissingReview(t *testing.T) {
	f := newReviewFixture(t)

	f.reviews.On("GetByID", mock.Anything, "nope").Return(nil, apperrors.NewNotFoundError("Review not found"))

	err := f.service.Delete(context.Background(), member, "nope")
	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "Review not found")
}
