package optional

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name        Field[string] `json:"name"`
	Description Field[string] `json:"description"`
	Order       Field[int]    `json:"order"`
}

func TestField_DistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Cebu","description":null}`), &p))

	assert.True(t, p.Name.Set)
	assert.True(t, p.Name.HasValue())
	assert.Equal(t, "Cebu", p.Name.Value)

	assert.True(t, p.Description.Set)
	assert.True(t, p.Description.Null)
	assert.Nil(t, p.Description.Ptr())

	assert.False(t, p.Order.Set)
}

func TestField_ApplyTo(t *testing.T) {
	name := "old"
	Of("new").ApplyTo(&name)
	assert.Equal(t, "new", name)

	Null[string]().ApplyTo(&name)
	assert.Equal(t, "new", name, "null must not clear a non-nullable value")

	desc := "kept"
	descPtr := &desc
	Field[string]{}.ApplyToPtr(&descPtr)
	require.NotNil(t, descPtr)

	Null[string]().ApplyToPtr(&descPtr)
	assert.Nil(t, descPtr)
}
