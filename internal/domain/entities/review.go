package entities

import (
	"math"
	"time"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review is a user's rating of a place; at most one per user and place
type Review struct {
	ID        string       `json:"id" db:"id"`
	PlaceID   string       `json:"placeId" db:"place_id"`
	UserID    string       `json:"userId" db:"user_id"`
	Rating    int          `json:"rating" db:"rating"`
	Comment   *string      `json:"comment" db:"comment"`
	Author    *UserSummary `json:"user,omitempty" db:"-"`
	PlaceName string       `json:"placeName,omitempty" db:"-"`
	CreatedAt time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time    `json:"updatedAt" db:"updated_at"`
}

// ValidRating reports whether r is within the accepted star range
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// AverageRating returns the mean of ratings rounded to one decimal place,
// or nil when there are no ratings.
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}
