package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zatekoja/tourism-directory/backend/internal/auth"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
	"github.com/zatekoja/tourism-directory/backend/pkg/validation"
)

// RegisterInput is a self-service sign-up
type RegisterInput struct {
	Email     string  `json:"email" validate:"required,email,max=255"`
	Username  string  `json:"username" validate:"required,min=3,max=50"`
	Password  string  `json:"password" validate:"required,min=8,max=72"`
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
}

// LoginInput identifies an account by email or username
type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is an issued session token
type Session struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expiresAt"`
	User      *entities.User `json:"user"`
}

// AuthService registers accounts, issues session tokens and resolves them back to identities
type AuthService struct {
	users   repositories.UserRepository
	roles   repositories.RoleRepository
	tokens  *auth.TokenManager
	hasher  auth.PasswordHasher
	metrics *observability.DirectoryMetrics
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	roles repositories.RoleRepository,
	tokens *auth.TokenManager,
	hasher auth.PasswordHasher,
	metrics *observability.DirectoryMetrics,
) *AuthService {
	return &AuthService{
		users:   users,
		roles:   roles,
		tokens:  tokens,
		hasher:  hasher,
		metrics: metrics,
	}
}

// Register creates a user-role account and signs it in
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	role, err := s.roles.GetByName(ctx, entities.RoleUser)
	if err != nil {
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
		IsActive:  true,
	}
	if err := createAccount(ctx, s.users, s.hasher, user, input.Password); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login verifies credentials and issues a session
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*Session, error) {
	if err := validation.ValidateStruct(input); err != nil {
		return nil, err
	}

	identifier := strings.TrimSpace(input.Email)
	var (
		user *entities.User
		err  error
	)
	if strings.Contains(identifier, "@") {
		user, err = s.users.GetByEmail(ctx, strings.ToLower(identifier))
	} else {
		user, err = s.users.GetByUsername(ctx, identifier)
	}
	if err != nil && !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return nil, err
	}

	if user == nil || !s.hasher.Compare(user.PasswordHash, input.Password) {
		s.metrics.Login("failure")
		return nil, apperrors.NewUnauthorizedError("Invalid email or password")
	}
	if !user.IsActive {
		s.metrics.Login("inactive")
		return nil, apperrors.NewForbiddenError("Account is disabled")
	}

	s.metrics.Login("success")
	return s.issue(user)
}

// Me returns the caller's account
func (s *AuthService) Me(ctx context.Context, identity *auth.Identity) (*entities.User, error) {
	if identity == nil {
		return nil, apperrors.NewUnauthorizedError("Authentication required")
	}
	return s.users.GetByID(ctx, identity.UserID)
}

// Resolve maps a session token to an identity. Any failure yields anonymity.
func (s *AuthService) Resolve(token string) *auth.Identity {
	return s.tokens.Resolve(token)
}

// SessionTTL is the lifetime of issued sessions
func (s *AuthService) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// BootstrapAdmin creates the configured administrator unless an account with that email exists
func (s *AuthService) BootstrapAdmin(ctx context.Context, email, username, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
		return false, err
	}

	role, err := s.roles.GetByName(ctx, entities.RoleAdministrator)
	if err != nil {
		return false, err
	}

	user := &entities.User{
		ID:       uuid.New().String(),
		Email:    email,
		Username: username,
		RoleID:   role.ID,
		Role:     role,
		IsActive: true,
	}
	if err := createAccount(ctx, s.users, s.hasher, user, password); err != nil {
		return false, err
	}

	observability.LoggerFromContext(ctx).Info().Str("email", email).Msg("Bootstrap administrator created")
	return true, nil
}

func (s *AuthService) issue(user *entities.User) (*Session, error) {
	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue session", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// createAccount checks email and username uniqueness, hashes the password and stores the user
func createAccount(ctx context.Context, users repositories.UserRepository, hasher auth.PasswordHasher, user *entities.User, password string) error {
	_, err := users.GetByEmail(ctx, user.Email)
	if err := ensureAvailable(err, false, "email"); err != nil {
		return err
	}
	_, err = users.GetByUsername(ctx, user.Username)
	if err := ensureAvailable(err, false, "username"); err != nil {
		return err
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return apperrors.NewInternalError("failed to hash password", err)
	}
	user.PasswordHash = hash

	return users.Create(ctx, user)
}
