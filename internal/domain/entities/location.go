package entities

import "time"

// Location is a geographic region places belong to
type Location struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Description *string   `json:"description" db:"description"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	PlaceCount  int       `json:"placeCount" db:"place_count"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// LocationSummary is the location view embedded in places
type LocationSummary struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
}
