package auth

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	apperrors "github.com/zatekoja/tourism-directory/backend/pkg/errors"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Permission is an action on a resource type
type Permission struct {
	Resource string
	Action   string
}

func (p Permission) String() string {
	return p.Resource + ":" + p.Action
}

var (
	PermCreateReview       = Permission{"review", "create"}
	PermModerateReviews    = Permission{"review", "moderate"}
	PermManageFavorites    = Permission{"favorite", "manage"}
	PermReadProfile        = Permission{"profile", "read"}
	PermWritePlaces        = Permission{"place", "write"}
	PermReadInactivePlaces = Permission{"place", "read_inactive"}
	PermDeletePlaces       = Permission{"place", "delete"}
	PermWriteCategories    = Permission{"category", "write"}
	PermWriteLocations     = Permission{"location", "write"}
	PermWriteAmenities     = Permission{"amenity", "write"}
	PermManageUsers        = Permission{"user", "manage"}
	PermReadStats          = Permission{"stats", "read"}
	PermStreamEvents       = Permission{"event", "stream"}
)

// Authorizer decides whether an identity may perform an operation
type Authorizer interface {
	// Authorize returns nil when allowed, UNAUTHORIZED for anonymous callers
	// and FORBIDDEN for identities without the permission.
	Authorize(identity *Identity, perm Permission) error

	// AuthorizeOwner allows the owner of a record, or anyone holding override.
	AuthorizeOwner(identity *Identity, ownerID string, override Permission) error

	// Can reports whether the identity holds perm; anonymous callers hold nothing.
	Can(identity *Identity, perm Permission) bool
}

// Gate is the casbin-backed Authorizer
type Gate struct {
	enforcer *casbin.SyncedEnforcer
}

// NewGate builds the gate from the embedded role model and policy
func NewGate() (*Gate, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse authorization model: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	if err := loadPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	return &Gate{enforcer: enforcer}, nil
}

func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch {
		case parts[0] == "p" && len(parts) == 4:
			if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", parts[1:], err)
			}
		case parts[0] == "g" && len(parts) == 3:
			if _, err := enforcer.AddGroupingPolicy(parts[1], parts[2]); err != nil {
				return fmt.Errorf("failed to add role link %v: %w", parts[1:], err)
			}
		default:
			return fmt.Errorf("malformed policy line %q", line)
		}
	}
	return nil
}

// Can reports whether identity holds perm
func (g *Gate) Can(identity *Identity, perm Permission) bool {
	if identity == nil {
		return false
	}
	allowed, err := g.enforcer.Enforce(string(identity.Role), perm.Resource, perm.Action)
	return err == nil && allowed
}

// Authorize distinguishes a missing identity from an insufficient role
func (g *Gate) Authorize(identity *Identity, perm Permission) error {
	if identity == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if !g.Can(identity, perm) {
		return apperrors.NewForbiddenError("Insufficient permissions")
	}
	return nil
}

// AuthorizeOwner lets the owner through before consulting the override permission
func (g *Gate) AuthorizeOwner(identity *Identity, ownerID string, override Permission) error {
	if identity == nil {
		return apperrors.NewUnauthorizedError("Authentication required")
	}
	if ownerID != "" && identity.UserID == ownerID {
		return nil
	}
	if !g.Can(identity, override) {
		return apperrors.NewForbiddenError("You can only modify your own records")
	}
	return nil
}
