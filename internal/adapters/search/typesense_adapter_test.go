package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
)

func TestPlaceDocument(t *testing.T) {
	rating := 4.5
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	place := &entities.Place{
		ID:          "p-1",
		Name:        "Harbour Café",
		Slug:        "harbour-cafe",
		Description: "Coffee by the water",
		Highlights:  []string{" Sea view ", "", "sea view", "Pastries"},
		Rating:      &rating,
		ReviewCount: 2,
		Location:    &entities.LocationSummary{ID: 1, Name: "reykjavik", DisplayName: "Reykjavík"},
		Category:    &entities.CategorySummary{ID: 2, Query: "cafes", Label: "Cafés"},
		Amenities: []entities.Amenity{
			{Name: "WiFi", IsActive: true},
			{Name: "wifi", IsActive: true},
			{Name: "Parking", IsActive: false},
		},
		CreatedAt: created,
	}

	doc := placeDocument(place)

	assert.Equal(t, "p-1", doc["id"])
	assert.Equal(t, []string{"Sea view", "Pastries"}, doc["highlights"])
	assert.Equal(t, []string{"wifi"}, doc["amenities"])
	assert.Equal(t, 4.5, doc["rating"])
	assert.Equal(t, "reykjavik", doc["location_name"])
	assert.Equal(t, "cafes", doc["category_query"])
	assert.Equal(t, created.Unix(), doc["created_at"])
}

func TestPlaceDocument_Unrated(t *testing.T) {
	doc := placeDocument(&entities.Place{ID: "p-2", Name: "New"})

	_, hasRating := doc["rating"]
	assert.False(t, hasRating)
	assert.Equal(t, "", doc["location_name"])
	assert.Empty(t, doc["amenities"])
}

func TestSearchParams(t *testing.T) {
	t.Run("wildcard when text is blank", func(t *testing.T) {
		params := searchParams(providers.PlaceSearchQuery{Text: "  ", Page: entities.NewPage(2, 5)})

		assert.Equal(t, "*", *params.Q)
		assert.Equal(t, 2, *params.Page)
		assert.Equal(t, 5, *params.PerPage)
		assert.Nil(t, params.FilterBy)
	})

	t.Run("filters by location and category", func(t *testing.T) {
		params := searchParams(providers.PlaceSearchQuery{
			Text:     "museum",
			Location: "reykjavik",
			Category: "art-galleries",
			Page:     entities.NewPage(1, 10),
		})

		require.NotNil(t, params.FilterBy)
		assert.Equal(t, "location_name:=`reykjavik` && category_query:=`art-galleries`", *params.FilterBy)
		assert.Equal(t, "museum", *params.Q)
	})
}

func TestAmenityTermsSortedAndCapped(t *testing.T) {
	amenities := make([]entities.Amenity, 0, MaxIndexedTerms+10)
	for i := 0; i < MaxIndexedTerms+10; i++ {
		amenities = append(amenities, entities.Amenity{Name: string(rune('a'+i%26)) + string(rune('a'+i/26)), IsActive: true})
	}

	terms := amenityTerms(amenities)

	assert.Len(t, terms, MaxIndexedTerms)
	assert.IsIncreasing(t, terms)
}
