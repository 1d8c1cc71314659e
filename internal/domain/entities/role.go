package entities

import "time"

// RoleName identifies one of the fixed access roles
type RoleName string

const (
	RoleUser          RoleName = "user"
	RolePublisher     RoleName = "publisher"
	RoleAdministrator RoleName = "administrator"
)

// Roles lists every seeded role in ascending privilege
var Roles = []RoleName{RoleUser, RolePublisher, RoleAdministrator}

// Valid reports whether r is a known role
func (r RoleName) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Role groups users by access level
type Role struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
