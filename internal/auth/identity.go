// Package auth resolves who is calling and decides what they may do.
package auth

import (
	"context"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

// Identity is an authenticated caller. A nil *Identity means anonymous.
type Identity struct {
	UserID string
	Role   entities.RoleName
}

// IsAdministrator reports whether the identity holds the administrator role
func (i *Identity) IsAdministrator() bool {
	return i != nil && i.Role == entities.RoleAdministrator
}

type identityKey struct{}

// WithIdentity stores the resolved identity on ctx; nil stores anonymity
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFromContext returns the identity resolved for the request, or nil
func IdentityFromContext(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey{}).(*Identity)
	return identity
}
