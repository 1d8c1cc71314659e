package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// UserAdapter implements UserRepository
type UserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var userColumns = []interface{}{
	"u.id", "u.email", "u.username", "u.password", "u.first_name", "u.last_name",
	"u.role_id", "u.is_active", "u.created_at", "u.updated_at",
	"r.name", "r.description", "r.created_at",
}

func (a *UserAdapter) baseQuery() *goqu.SelectDataset {
	return a.db.From(goqu.T("users").As("u")).
		Join(goqu.T("roles").As("r"), goqu.On(goqu.I("r.id").Eq(goqu.I("u.role_id"))))
}

// Create inserts a user
func (a *UserAdapter) Create(ctx context.Context, user *entities.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	record := goqu.Record{
		"id":         user.ID,
		"email":      user.Email,
		"username":   user.Username,
		"password":   user.PasswordHash,
		"first_name": nullString(user.FirstName),
		"last_name":  nullString(user.LastName),
		"role_id":    user.RoleID,
		"is_active":  user.IsActive,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}

	query, args, err := a.db.Insert("users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.Executor(ctx).ExecContext(ctx, query, args...); err != nil {
		return translateError(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by id
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"u.id": id}, fmt.Sprintf("user %s not found", id))
}

// GetByEmail retrieves a user by email
func (a *UserAdapter) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"u.email": email}, "user not found")
}

// GetByUsername retrieves a user by username
func (a *UserAdapter) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return a.getBy(ctx, goqu.Ex{"u.username": username}, "user not found")
}

// Update writes profile, role and status columns
func (a *UserAdapter) Update(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = time.Now().UTC()

	record := goqu.Record{
		"email":      user.Email,
		"username":   user.Username,
		"first_name": nullString(user.FirstName),
		"last_name":  nullString(user.LastName),
		"role_id":    user.RoleID,
		"is_active":  user.IsActive,
		"updated_at": user.UpdatedAt,
	}
	if user.PasswordHash != "" {
		record["password"] = user.PasswordHash
	}

	query, args, err := a.db.Update("users").Set(record).Where(goqu.Ex{"id": user.ID}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("user %s not found", user.ID), "failed to update user")
}

// UpdatePassword replaces the stored password hash
func (a *UserAdapter) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	query, args, err := a.db.Update("users").
		Set(goqu.Record{"password": passwordHash, "updated_at": time.Now().UTC()}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("user %s not found", id), "failed to reset password")
}

// Delete removes a user together with their reviews and favorites
func (a *UserAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("users").Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	return execAffectingOne(ctx, a.client, query, args, fmt.Sprintf("user %s not found", id), "failed to delete user")
}

// List returns a page of users, newest first
func (a *UserAdapter) List(ctx context.Context, filter repositories.UserFilter) ([]*entities.User, int, error) {
	ds := a.baseQuery()
	if filter.Search != "" {
		ds = ds.Where(containsAny(filter.Search, "u.email", "u.username", "u.first_name", "u.last_name"))
	}

	total, err := countRows(ctx, a.client, ds, "failed to count users")
	if err != nil {
		return nil, 0, err
	}

	query, args, err := paginate(ds.Select(userColumns...).Order(goqu.I("u.created_at").Desc()), filter.Page).ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, translateError(err, "failed to list users")
	}
	defer rows.Close()

	users := []*entities.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	return users, total, rows.Err()
}

// Count returns the number of users
func (a *UserAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("users"), "failed to count users")
}

func (a *UserAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.User, error) {
	query, args, err := a.baseQuery().Select(userColumns...).Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanUser(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get user")
	}
	return user, nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{Role: &entities.Role{}}
	var firstName, lastName, roleDescription sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&firstName,
		&lastName,
		&user.RoleID,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Role.Name,
		&roleDescription,
		&user.Role.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	user.FirstName = stringPtr(firstName)
	user.LastName = stringPtr(lastName)
	user.Role.ID = user.RoleID
	user.Role.Description = stringPtr(roleDescription)
	return user, nil
}
