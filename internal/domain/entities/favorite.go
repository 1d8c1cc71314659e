package entities

import "time"

// Favorite marks a place as saved by a user; unique per (place, user)
type Favorite struct {
	ID        string    `json:"id" db:"id"`
	PlaceID   string    `json:"placeId" db:"place_id"`
	UserID    string    `json:"userId" db:"user_id"`
	Place     *Place    `json:"place,omitempty" db:"-"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
