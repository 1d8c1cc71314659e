package search

import (
	"sort"
	"strings"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
)

const MaxIndexedTerms = 100

// amenityTerms returns the lowercased, de-duplicated names of active amenities
func amenityTerms(amenities []entities.Amenity) []string {
	set := make(map[string]struct{})
	for _, a := range amenities {
		if !a.IsActive {
			continue
		}
		add(set, a.Name)
	}
	return toSlice(set, MaxIndexedTerms)
}

// highlightTerms returns the trimmed, non-empty highlights in input order
func highlightTerms(highlights []string) []string {
	result := make([]string, 0, len(highlights))
	seen := make(map[string]struct{})
	for _, h := range highlights {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		key := strings.ToLower(h)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, h)
		if len(result) >= MaxIndexedTerms {
			break
		}
	}
	return result
}

func add(set map[string]struct{}, terms ...string) {
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			set[t] = struct{}{}
		}
	}
}

func toSlice(set map[string]struct{}, limit int) []string {
	result := make([]string, 0, len(set))
	for k := range set {
		result = append(result, k)
	}
	sort.Strings(result)
	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
