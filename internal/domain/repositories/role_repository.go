package repositories

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// RoleRepository defines the interface for role lookups
type RoleRepository interface {
	// List returns every role ordered by id
	List(ctx context.Context) ([]*entities.Role, error)

	// GetByID retrieves a role by id
	GetByID(ctx context.Context, id int64) (*entities.Role, error)

	// GetByName retrieves a role by its unique name
	GetByName(ctx context.Context, name entities.RoleName) (*entities.Role, error)

	// Count returns the number of roles
	Count(ctx context.Context) (int, error)
}
