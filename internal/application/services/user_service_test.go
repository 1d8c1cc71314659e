package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/application/services"
	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/mocks"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
)

type userFixture struct {
	service *services.UserService
	users   *mocks.UserRepository
	roles   *mocks.RoleRepository
	reviews *mocks.ReviewRepository
	places  *mocks.PlaceRepository
	tx      *mocks.Transactor
}

func newUserFixture(t *testing.T) *userFixture {
	f := &userFixture{
		users:   mocks.NewUserRepository(t),
		roles:   mocks.NewRoleRepository(t),
		reviews: mocks.NewReviewRepository(t),
		places:  mocks.NewPlaceRepository(t),
		tx:      &mocks.Transactor{},
	}
	f.service = services.NewUserService(f.users, f.roles, f.reviews, f.places, f.tx, auth.NewBcryptHasher(4), newGate(t), nil)
	return f
}

func newUserService(t *testing.T) (*services.UserService, *mocks.UserRepository, *mocks.RoleRepository) {
	f := newUserFixture(t)
	return f.service, f.users, f.roles
}

func TestUserService_Delete_SelfIsConflict(t *testing.T) {
	service, users, _ := newUserService(t)

	err := service.Delete(context.Background(), admin, admin.UserID)

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "Cannot delete your own account")
	users.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	f := newUserFixture(t)
	f.reviews.On("PlaceIDsReviewedBy", mock.Anything, member.UserID).Return([]string{}, nil)
	f.users.On("Delete", mock.Anything, member.UserID).Return(nil)

	assert.NoError(t, f.service.Delete(context.Background(), admin, member.UserID))
	assert.Equal(t, 1, f.tx.Calls)
}

func TestUserService_Delete_RecomputesReviewedPlaces(t *testing.T) {
	f := newUserFixture(t)
	var order []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { order = append(order, step) }
	}

	f.reviews.On("PlaceIDsReviewedBy", mock.Anything, member.UserID).Return([]string{"place-1", "place-2"}, nil)
	f.places.On("LockByID", mock.Anything, "place-1").Return(nil).Run(record("lock place-1"))
	f.places.On("LockByID", mock.Anything, "place-2").Return(nil).Run(record("lock place-2"))
	f.users.On("Delete", mock.Anything, member.UserID).Return(nil).Run(record("delete user"))

	// place-1 keeps another user's 3, place-2 had only the deleted user's review
	f.reviews.On("RatingsForPlace", mock.Anything, "place-1").Return([]int{3}, nil)
	f.reviews.On("RatingsForPlace", mock.Anything, "place-2").Return([]int{}, nil)
	f.places.On("SetRating", mock.Anything, "place-1", ratingOf(3.0)).Return(nil).Run(record("rate place-1"))
	f.places.On("SetRating", mock.Anything, "place-2", (*float64)(nil)).Return(nil).Run(record("rate place-2"))

	require.NoError(t, f.service.Delete(context.Background(), admin, member.UserID))

	assert.Equal(t, []string{"lock place-1", "lock place-2", "delete user", "rate place-1", "rate place-2"}, order)
	assert.Equal(t, 1, f.tx.Calls)
}

func TestUserService_Delete_FailureSkipsRecompute(t *testing.T) {
	f := newUserFixture(t)
	f.reviews.On("PlaceIDsReviewedBy", mock.Anything, member.UserID).Return([]string{"place-1"}, nil)
	f.places.On("LockByID", mock.Anything, "place-1").Return(nil)
	f.users.On("Delete", mock.Anything, member.UserID).Return(apperrors.NewNotFoundError("User not found"))

	err := f.service.Delete(context.Background(), admin, member.UserID)

	assertErrorType(t, err, apperrors.ErrorTypeNotFound, "User not found")
	f.places.AssertNotCalled(t, "SetRating", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserService_RequiresAdministrator(t *testing.T) {
	service, _, _ := newUserService(t)

	_, _, err := service.List(context.Background(), publisher, repositories.UserFilter{})
	assertErrorType(t, err, apperrors.ErrorTypeForbidden, "Insufficient permissions")
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	ctx := context.Background()
	service, users, roles := newUserService(t)

	roles.On("GetByID", mock.Anything, int64(2)).Return(&entities.Role{ID: 2, Name: "publisher"}, nil)
	users.On("GetByEmail", mock.Anything, "ana@example.com").Return(nil, apperrors.NewNotFoundError("User not found"))
	users.On("GetByUsername", mock.Anything, "ana").Return(nil, apperrors.NewNotFoundError("User not found"))
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.PasswordHash != "" && u.PasswordHash != "s3cret-pass" && u.RoleID == 2
	})).Return(nil)

	user, err := service.Create(ctx, admin, services.UserInput{
		Email:    " Ana@Example.com ",
		Username: "ana",
		Password: "s3cret-pass",
		RoleID:   2,
	})

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, entities.RolePublisher, user.RoleName())
	assert.True(t, user.IsActive)
}

func TestUserService_Create_UnknownRole(t *testing.T) {
	service, _, roles := newUserService(t)
	roles.On("GetByID", mock.Anything, int64(9)).Return(nil, apperrors.NewNotFoundError("Role not found"))

	_, err := service.Create(context.Background(), admin, services.UserInput{
		Email:    "ana@example.com",
		Username: "ana",
		Password: "s3cret-pass",
		RoleID:   9,
	})

	assertErrorType(t, err, apperrors.ErrorTypeValidation, "roleId references a record that does not exist")
}

func TestUserService_Create_EmailTaken(t *testing.T) {
	service, users, roles := newUserService(t)

	roles.On("GetByID", mock.Anything, int64(1)).Return(&entities.Role{ID: 1, Name: "user"}, nil)
	users.On("GetByEmail", mock.Anything, "ana@example.com").
		Return(&entities.User{ID: "user-9", Email: "ana@example.com"}, nil)

	_, err := service.Create(context.Background(), admin, services.UserInput{
		Email:    "ANA@example.com",
		Username: "ana2",
		Password: "s3cret-pass",
		RoleID:   1,
	})

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "email already exists")
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	service, users, _ := newUserService(t)

	users.On("GetByID", mock.Anything, "user-1").
		Return(&entities.User{ID: "user-1", Email: "ana@example.com", Username: "ana", RoleID: 1}, nil)
	users.On("GetByEmail", mock.Anything, "bo@example.com").
		Return(&entities.User{ID: "user-2", Email: "bo@example.com"}, nil)

	_, err := service.Update(context.Background(), admin, "user-1", services.UserPatch{Email: optional.Of("bo@example.com")})

	assertErrorType(t, err, apperrors.ErrorTypeConflict, "email already exists")
}

func TestUserService_ResetPassword(t *testing.T) {
	service, users, _ := newUserService(t)

	err := service.ResetPassword(context.Background(), admin, "user-1", services.PasswordReset{NewPassword: "short"})
	assertErrorType(t, err, apperrors.ErrorTypeValidation, "newPassword must be at least 8 characters")

	users.On("UpdatePassword", mock.Anything, "user-1", mock.AnythingOfType("string")).Return(nil)
	require.NoError(t, service.ResetPassword(context.Background(), admin, "user-1", services.PasswordReset{NewPassword: "long-enough"}))
}
