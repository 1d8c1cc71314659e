package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/repositories"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

// RoleAdapter implements RoleRepository
type RoleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRoleAdapter creates a new role adapter
func NewRoleAdapter(client *postgres.Client) repositories.RoleRepository {
	return &RoleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var roleColumns = []interface{}{"id", "name", "description", "created_at"}

// List returns every role ordered by id
func (a *RoleAdapter) List(ctx context.Context) ([]*entities.Role, error) {
	query, args, err := a.db.Select(roleColumns...).From("roles").Order(goqu.C("id").Asc()).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.Executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to list roles")
	}
	defer rows.Close()

	roles := []*entities.Role{}
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan role", err)
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetByID retrieves a role by id
func (a *RoleAdapter) GetByID(ctx context.Context, id int64) (*entities.Role, error) {
	return a.getBy(ctx, goqu.Ex{"id": id}, fmt.Sprintf("role %d not found", id))
}

// GetByName retrieves a role by name
func (a *RoleAdapter) GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error) {
	return a.getBy(ctx, goqu.Ex{"name": string(name)}, fmt.Sprintf("role %s not found", name))
}

// Count returns the number of roles
func (a *RoleAdapter) Count(ctx context.Context) (int, error) {
	return countRows(ctx, a.client, a.db.From("roles"), "failed to count roles")
}

func (a *RoleAdapter) getBy(ctx context.Context, where goqu.Ex, notFound string) (*entities.Role, error) {
	query, args, err := a.db.Select(roleColumns...).From("roles").Where(where).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	role, err := scanRole(a.client.Executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(notFound)
	}
	if err != nil {
		return nil, translateError(err, "failed to get role")
	}
	return role, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRole(row rowScanner) (*entities.Role, error) {
	role := &entities.Role{}
	var description sql.NullString
	if err := row.Scan(&role.ID, &role.Name, &description, &role.CreatedAt); err != nil {
		return nil, err
	}
	role.Description = stringPtr(description)
	return role, nil
}

// countRows runs SELECT COUNT(*) over ds with its existing filters
func countRows(ctx context.Context, client *postgres.Client, ds *goqu.SelectDataset, message string) (int, error) {
	query, args, err := ds.Select(goqu.COUNT("*")).ToSQL()
	if err != nil {
		return 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var total int
	if err := client.Executor(ctx).QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, translateError(err, message)
	}
	return total, nil
}
