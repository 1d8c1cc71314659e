package entities

import (
	"strings"
	"time"
)

const (
	// PromptLocationPlaceholder is replaced with the selected location's display name
	PromptLocationPlaceholder = "<selectedLocation>"
	// PromptProvincePlaceholder is replaced with the selected province (the location's display name)
	PromptProvincePlaceholder = "<selectedProvince>"
)

// Category groups places by kind, addressed publicly by its query slug
type Category struct {
	ID           int64     `json:"id" db:"id"`
	Query        string    `json:"query" db:"query"`
	Label        string    `json:"label" db:"label"`
	Keyphrase    string    `json:"keyphrase" db:"keyphrase"`
	Description  *string   `json:"description" db:"description"`
	Icon         *string   `json:"icon" db:"icon"`
	Color        *string   `json:"color" db:"color"`
	Prompt       *string   `json:"prompt" db:"prompt"`
	DisplayOrder int       `json:"displayOrder" db:"display_order"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// RenderPrompt fills the category prompt template for a location.
// It returns false when the category has no prompt.
func (c *Category) RenderPrompt(locationDisplayName string) (string, bool) {
	if c.Prompt == nil || strings.TrimSpace(*c.Prompt) == "" {
		return "", false
	}
	replacer := strings.NewReplacer(
		PromptLocationPlaceholder, locationDisplayName,
		PromptProvincePlaceholder, locationDisplayName,
	)
	return replacer.Replace(*c.Prompt), true
}

// CategorySummary is the category view embedded in places
type CategorySummary struct {
	ID    int64   `json:"id"`
	Query string  `json:"query"`
	Label string  `json:"label"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}
