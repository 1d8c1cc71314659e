package typesense

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/typesense/typesense-go/v2/typesense"
)

func TestPlacesSchema(t *testing.T) {
	schema := PlacesSchema()

	assert.Equal(t, PlacesCollection, schema.Name)
	fields := map[string]string{}
	for _, f := range schema.Fields {
		fields[f.Name] = f.Type
	}
	assert.Equal(t, "string", fields["location_name"])
	assert.Equal(t, "string", fields["category_query"])
	assert.Equal(t, "string[]", fields["amenities"])
	assert.Equal(t, "float", fields["rating"])
	assert.Equal(t, "created_at", *schema.DefaultSortingField)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(fmt.Errorf("retrieve: %w", &typesense.HTTPError{Status: 404})))
	assert.False(t, IsNotFound(&typesense.HTTPError{Status: 500}))
	assert.False(t, IsNotFound(nil))
}
