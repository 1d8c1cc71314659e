package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/optional"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// UserInput is an administrator-created account
type UserInput struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	RoleID    int64   `json:"roleId" validate:"required"`
	IsActive  *bool   `json:"isActive"`
}

// UserPatch is a partial account update. A supplied password is re-hashed.
type UserPatch struct {
	Email     optional.Field[string] `json:"email"`
	Username  optional.Field[string] `json:"username"`
	Password  optional.Field[string] `json:"password"`
	FirstName optional.Field[string] `json:"firstName"`
	LastName  optional.Field[string] `json:"lastName"`
	RoleID    optional.Field[int64]  `json:"roleId"`
	IsActive  optional.Field[bool]   `json:"isActive"`
}

// PasswordReset sets a new password for an account
type PasswordReset struct {
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}

// userFields is the validated shape of an account after a patch
type userFields struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Password  *string `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	RoleID    int64   `json:"roleId" validate:"required"`
}

// UserService handles administrative account management
type UserService struct {
	repo      repositories.UserRepository
	roles     repositories.RoleRepository
	reviews   repositories.ReviewRepository
	places    repositories.PlaceRepository
	tx        repositories.Transactor
	projector *RatingProjector
	hasher    auth.PasswordHasher
	gate      auth.Authorizer
}

// NewUserService creates a new user service
func NewUserService(
	repo repositories.UserRepository,
	roles repositories.RoleRepository,
	reviews repositories.ReviewRepository,
	places repositories.PlaceRepository,
	tx repositories.Transactor,
	hasher auth.PasswordHasher,
	gate auth.Authorizer,
	metrics *observability.DirectoryMetrics,
) *UserService {
	return &UserService{
		repo:      repo,
		roles:     roles,
		reviews:   reviews,
		places:    places,
		tx:        tx,
		projector: NewRatingProjector(places, reviews, metrics),
		hasher:    hasher,
		gate:      gate,
	}
}

// List returns a page of accounts matching the search
func (s *UserService) List(ctx context.Context, identity *auth.Identity, filter repositories.UserFilter) ([]*entities.User, int, error) {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return nil, 0, err
	}
	return s.repo.List(ctx, filter)
}

// Get retrieves an account
func (s *UserService) Get(ctx context.Context, identity *auth.Identity, id string) (*entities.User, error) {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// Create stores a new account with the given role
func (s *UserService) Create(ctx context.Context, identity *auth.Identity, input UserInput) (*entities.User, error) {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return nil, err
	}

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	role, err := s.roles.GetByID(ctx, input.RoleID)
	if err := ensureReference(err, "roleId"); err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:        uuid.New().String(),
		Email:     input.Email,
		Username:  input.Username,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		RoleID:    role.ID,
		Role:      role,
		IsActive:  boolOr(input.IsActive, true),
	}
	if err := createAccount(ctx, s.repo, s.hasher, user, input.Password); err != nil {
		return nil, err
	}
	return user, nil
}

// Update applies a partial update to an account
func (s *UserService) Update(ctx context.Context, identity *auth.Identity, id string, patch UserPatch) (*entities.User, error) {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := userFields{
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		RoleID:    user.RoleID,
	}
	if patch.Email.Set {
		fields.Email = strings.ToLower(strings.TrimSpace(patch.Email.Value))
	}
	if patch.Username.Set {
		fields.Username = strings.TrimSpace(patch.Username.Value)
	}
	if patch.Password.HasValue() {
		fields.Password = patch.Password.Ptr()
	}
	patch.FirstName.ApplyToPtr(&fields.FirstName)
	patch.LastName.ApplyToPtr(&fields.LastName)
	if patch.RoleID.Set {
		fields.RoleID = patch.RoleID.Value
	}
	if err := validation.ValidateStruct(fields); err != nil {
		return nil, err
	}

	if fields.Email != user.Email {
		existing, err := s.repo.GetByEmail(ctx, fields.Email)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "email"); err != nil {
			return nil, err
		}
	}
	if fields.Username != user.Username {
		existing, err := s.repo.GetByUsername(ctx, fields.Username)
		if err := ensureAvailable(err, existing != nil && existing.ID == id, "username"); err != nil {
			return nil, err
		}
	}
	if fields.RoleID != user.RoleID {
		role, err := s.roles.GetByID(ctx, fields.RoleID)
		if err := ensureReference(err, "roleId"); err != nil {
			return nil, err
		}
		user.Role = role
	}

	user.Email = fields.Email
	user.Username = fields.Username
	user.FirstName = fields.FirstName
	user.LastName = fields.LastName
	user.RoleID = fields.RoleID
	patch.IsActive.ApplyTo(&user.IsActive)

	if fields.Password != nil {
		hash, err := s.hasher.Hash(*fields.Password)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to hash password", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword replaces an account's password
func (s *UserService) ResetPassword(ctx context.Context, identity *auth.Identity, id string, input PasswordReset) error {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return err
	}
	if err := validation.ValidateStruct(input); err != nil {
		return err
	}

	hash, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	return s.repo.UpdatePassword(ctx, id, hash)
}

// Delete removes an account other than the caller's own. The account's
// reviews go with it, so every place it reviewed is re-rated in the same
// transaction.
func (s *UserService) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return err
	}
	if identity.UserID == id {
		return apperrors.NewConflictError("Cannot delete your own account")
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		placeIDs, err := s.reviews.PlaceIDsReviewedBy(ctx, id)
		if err != nil {
			return err
		}
		// Locks are taken in id order, the same order every user delete uses
		for _, placeID := range placeIDs {
			if err := s.places.LockByID(ctx, placeID); err != nil {
				return err
			}
		}

		if err := s.repo.Delete(ctx, id); err != nil {
			return err
		}

		for _, placeID := range placeIDs {
			if _, err := s.projector.Recompute(ctx, placeID); err != nil {
				return err
			}
		}
		return nil
	})
}

// RoleService lists the fixed access roles
type RoleService struct {
	repo repositories.RoleRepository
	gate auth.Authorizer
}

// NewRoleService creates a new role service
func NewRoleService(repo repositories.RoleRepository, gate auth.Authorizer) *RoleService {
	return &RoleService{repo: repo, gate: gate}
}

// List returns every role ordered by id
func (s *RoleService) List(ctx context.Context, identity *auth.Identity) ([]*entities.Role, error) {
	if err := s.gate.Authorize(identity, auth.PermManageUsers); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}
