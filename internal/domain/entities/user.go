package entities

import (
	"time"
)

// User represents an account that can sign in, review and favorite places
type User struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password"`
	FirstName    *string   `json:"firstName" db:"first_name"`
	LastName     *string   `json:"lastName" db:"last_name"`
	RoleID       int64     `json:"roleId" db:"role_id"`
	Role         *Role     `json:"role,omitempty" db:"-"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// RoleName returns the user's role name, or the empty role when it was not loaded
func (u *User) RoleName() RoleName {
	if u.Role == nil {
		return ""
	}
	return RoleName(u.Role.Name)
}

// UserSummary is the public author view attached to reviews
type UserSummary struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}
