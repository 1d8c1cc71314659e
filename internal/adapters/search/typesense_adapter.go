package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/tourism-directory/backend/internal/domain/entities"
	"github.com/zatekoja/tourism-directory/backend/internal/domain/providers"
	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	tsclient "github.com/zatekoja/tourism-directory/backend/internal/infrastructure/clients/typesense"
)

const queryBy = "name,highlights,amenities,description,category_label,location_display_name"

// TypesenseAdapter implements place search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ providers.PlaceSearchProvider = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	return a.client.InitSchema(ctx)
}

// ResetSchema drops the collection and recreates it empty
func (a *TypesenseAdapter) ResetSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Delete(ctx)
	if err != nil && !tsclient.IsNotFound(err) {
		return fmt.Errorf("failed to drop %s collection: %w", tsclient.PlacesCollection, err)
	}
	return a.client.InitSchema(ctx)
}

// Index upserts a place document
func (a *TypesenseAdapter) Index(ctx context.Context, place *entities.Place) error {
	document := placeDocument(place)

	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index place %s: %w", place.ID, err)
	}

	observability.LoggerFromContext(ctx).Debug().Str("place_id", place.ID).Msg("Indexed place")
	return nil
}

// Delete removes a place document; a missing document is not an error
func (a *TypesenseAdapter) Delete(ctx context.Context, placeID string) error {
	_, err := a.client.Client().Collection(tsclient.PlacesCollection).Document(placeID).Delete(ctx)
	if err != nil && !tsclient.IsNotFound(err) {
		return fmt.Errorf("failed to delete place %s from index: %w", placeID, err)
	}
	return nil
}

// Search returns matching place ids in relevance order and the hit count
func (a *TypesenseAdapter) Search(ctx context.Context, query providers.PlaceSearchQuery) ([]string, int, error) {
	result, err := a.client.Client().Collection(tsclient.PlacesCollection).Documents().Search(ctx, searchParams(query))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search places: %w", err)
	}

	total := 0
	if result.Found != nil {
		total = *result.Found
	}
	if result.Hits == nil {
		return []string{}, total, nil
	}

	ids := make([]string, 0, len(*result.Hits))
	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		if id, ok := (*hit.Document)["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, total, nil
}

func placeDocument(place *entities.Place) map[string]interface{} {
	document := map[string]interface{}{
		"id":           place.ID,
		"name":         place.Name,
		"slug":         place.Slug,
		"description":  place.Description,
		"highlights":   highlightTerms(place.Highlights),
		"amenities":    amenityTerms(place.Amenities),
		"review_count": place.ReviewCount,
		"is_verified":  place.IsVerified,
		"created_at":   place.CreatedAt.Unix(),

		"location_name":         "",
		"location_display_name": "",
		"category_query":        "",
		"category_label":        "",
	}
	if place.Rating != nil {
		document["rating"] = *place.Rating
	}
	if place.Location != nil {
		document["location_name"] = place.Location.Name
		document["location_display_name"] = place.Location.DisplayName
	}
	if place.Category != nil {
		document["category_query"] = place.Category.Query
		document["category_label"] = place.Category.Label
	}
	return document
}

func searchParams(query providers.PlaceSearchQuery) *api.SearchCollectionParams {
	q := strings.TrimSpace(query.Text)
	if q == "" {
		q = "*"
	}

	params := &api.SearchCollectionParams{
		Q:       pointer.String(q),
		QueryBy: pointer.String(queryBy),
		Page:    pointer.Int(query.Page.Number),
		PerPage: pointer.Int(query.Page.Limit),
	}

	var filters []string
	if query.Location != "" {
		filters = append(filters, "location_name:="+filterValue(query.Location))
	}
	if query.Category != "" {
		filters = append(filters, "category_query:="+filterValue(query.Category))
	}
	if len(filters) > 0 {
		params.FilterBy = pointer.String(strings.Join(filters, " && "))
	}
	return params
}

// filterValue wraps a value in backticks so commas and spaces survive filter_by parsing
func filterValue(v string) string {
	return "`" + strings.ReplaceAll(v, "`", "") + "`"
}
