package typesense

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/typesense/typesense-go/v2/typesense"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/zatekoja/tourism-directory/backend/internal/infrastructure/observability"
	"github.com/zatekoja/tourism-directory/backend/pkg/config"
	"github.com/zatekoja/tourism-directory/backend/pkg/retry"
)

const (
	PlacesCollection = "places"
)

// Client represents a Typesense client
type Client struct {
	client *typesense.Client
}

// NewClient creates a new Typesense client, retrying the health check while the server starts
func NewClient(ctx context.Context, cfg *config.TypesenseConfig) (*Client, error) {
	client := typesense.NewClient(
		typesense.WithServer(cfg.URL),
		typesense.WithAPIKey(cfg.APIKey),
		typesense.WithConnectionTimeout(5*time.Second),
	)

	err := retry.DoWithLog(ctx, retry.DefaultConfig(), "typesense", func() error {
		healthCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		healthy, err := client.Health(healthCtx, 2*time.Second)
		if err != nil {
			return err
		}
		if !healthy {
			return errors.New("typesense reported unhealthy")
		}
		return nil
	}, retry.LogAttempt("typesense"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Typesense after retries: %w", err)
	}

	observability.GetLogger().Info().Str("url", cfg.URL).Msg("Connected to Typesense")
	return &Client{client: client}, nil
}

// NewClientFromTypesense wraps an existing typesense-go client
func NewClientFromTypesense(client *typesense.Client) *Client {
	return &Client{client: client}
}

// Client returns the underlying Typesense client
func (c *Client) Client() *typesense.Client {
	return c.client
}

// PlacesSchema is the collection schema for searchable places
func PlacesSchema() *api.CollectionSchema {
	return &api.CollectionSchema{
		Name: PlacesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "slug", Type: "string", Index: pointer.False()},
			{Name: "description", Type: "string"},
			{Name: "highlights", Type: "string[]", Optional: pointer.True()},
			{Name: "location_name", Type: "string", Facet: pointer.True()},
			{Name: "location_display_name", Type: "string"},
			{Name: "category_query", Type: "string", Facet: pointer.True()},
			{Name: "category_label", Type: "string"},
			{Name: "amenities", Type: "string[]", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "rating", Type: "float", Optional: pointer.True()},
			{Name: "review_count", Type: "int32"},
			{Name: "is_verified", Type: "bool"},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}
}

// InitSchema ensures the places collection exists
func (c *Client) InitSchema(ctx context.Context) error {
	_, err := c.client.Collection(PlacesCollection).Retrieve(ctx)
	if err == nil {
		return nil
	}
	if !IsNotFound(err) {
		return fmt.Errorf("failed to retrieve collection: %w", err)
	}

	if _, err := c.client.Collections().Create(ctx, PlacesSchema()); err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	observability.GetLogger().Info().Str("collection", PlacesCollection).Msg("Created Typesense collection")
	return nil
}

// IsNotFound reports whether err is a Typesense 404
func IsNotFound(err error) bool {
	var httpErr *typesense.HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusNotFound
}
