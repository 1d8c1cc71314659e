package entities

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Place is a listing in the directory. Rating is a projection of its reviews
// and is only written by the rating projector.
type Place struct {
	ID          string   `json:"id" db:"id"`
	Name        string   `json:"name" db:"name"`
	Slug        string   `json:"slug" db:"slug"`
	Description string   `json:"description" db:"description"`
	Address     *string  `json:"address" db:"address"`
	Phone       *string  `json:"phone" db:"phone"`
	Website     *string  `json:"website" db:"website"`
	Hours       *string  `json:"hours" db:"hours"`
	PriceRange  *string  `json:"priceRange" db:"price_range"`
	Highlights  []string `json:"highlights" db:"highlights"`
	Rating      *float64 `json:"rating" db:"rating"`
	ReviewCount int      `json:"reviewCount" db:"review_count"`
	IsActive    bool     `json:"isActive" db:"is_active"`
	IsVerified  bool     `json:"isVerified" db:"is_verified"`
	LocationID  int64    `json:"locationId" db:"location_id"`
	CategoryID  int64    `json:"categoryId" db:"category_id"`

	Location *LocationSummary `json:"location,omitempty" db:"-"`
	Category *CategorySummary `json:"category,omitempty" db:"-"`

	Images        []PlaceImage    `json:"images,omitempty" db:"-"`
	Amenities     []Amenity       `json:"amenities,omitempty" db:"-"`
	BusinessHours []BusinessHours `json:"businessHours,omitempty" db:"-"`
	ContactInfo   []ContactInfo   `json:"contactInfo,omitempty" db:"-"`
	SEO           *SEO            `json:"seo,omitempty" db:"-"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// PrimaryImage returns the image flagged primary, falling back to the first one
func (p *Place) PrimaryImage() *PlaceImage {
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			return &p.Images[i]
		}
	}
	if len(p.Images) > 0 {
		return &p.Images[0]
	}
	return nil
}

// PlaceImage is an ordered photo of a place
type PlaceImage struct {
	ID        string  `json:"id" db:"id"`
	PlaceID   string  `json:"placeId" db:"place_id"`
	URL       string  `json:"url" db:"url"`
	Alt       *string `json:"alt" db:"alt"`
	Caption   *string `json:"caption" db:"caption"`
	Order     int     `json:"order" db:"sort_order"`
	IsPrimary bool    `json:"isPrimary" db:"is_primary"`
}

// BusinessHours describes opening times for one day of the week (0 = Sunday)
type BusinessHours struct {
	ID        string  `json:"id" db:"id"`
	PlaceID   string  `json:"placeId" db:"place_id"`
	DayOfWeek int     `json:"dayOfWeek" db:"day_of_week"`
	OpenTime  *string `json:"openTime" db:"open_time"`
	CloseTime *string `json:"closeTime" db:"close_time"`
	IsClosed  bool    `json:"isClosed" db:"is_closed"`
}

// ContactInfo is a typed contact channel such as phone, email or social handle
type ContactInfo struct {
	ID        string  `json:"id" db:"id"`
	PlaceID   string  `json:"placeId" db:"place_id"`
	Type      string  `json:"type" db:"type"`
	Value     string  `json:"value" db:"value"`
	Label     *string `json:"label" db:"label"`
	IsPrimary bool    `json:"isPrimary" db:"is_primary"`
}

// SEO holds per-place search metadata
type SEO struct {
	ID          string  `json:"id" db:"id"`
	PlaceID     string  `json:"placeId" db:"place_id"`
	Title       *string `json:"title" db:"title"`
	Description *string `json:"description" db:"description"`
	Keywords    *string `json:"keywords" db:"keywords"`
	Canonical   *string `json:"canonical" db:"canonical"`
}

// OrderImages assigns order by position and flags the first image primary
func OrderImages(images []PlaceImage) []PlaceImage {
	ordered := make([]PlaceImage, len(images))
	for i, img := range images {
		img.Order = i
		img.IsPrimary = i == 0
		ordered[i] = img
	}
	return ordered
}

// Slugify derives a URL slug from a place name: lowercase ASCII letters and
// digits separated by single hyphens. Accents are folded first.
func Slugify(name string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range norm.NFD.String(strings.ToLower(name)) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}
	return b.String()
}
