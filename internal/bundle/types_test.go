package bundle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMetadataJSONFieldNaming(t *testing.T) {
	md := Metadata{
		ID:           "b1",
		Source:       "node-a",
		Destination:  "node-b",
		CreationTime: 1000,
		Size:         3,
		Constraints:  5,
	}
	data, err := json.Marshal(md)
	require.NoError(t, err)

	// Verify snake_case JSON tags
	assert.Contains(t, string(data), `"creation_time"`)
	assert.Contains(t, string(data), `"destination"`)
	assert.NotContains(t, string(data), `"creationTime"`)
}

func TestMetadataYAMLRoundTrip(t *testing.T) {
	in := `
id: b1
source: node-a
destination: node-b
creation_time: 1000
size: 3
constraints: 6
`
	var md Metadata
	require.NoError(t, yaml.Unmarshal([]byte(in), &md))

	assert.Equal(t, "b1", md.ID)
	assert.Equal(t, "node-a", md.Source)
	assert.Equal(t, "node-b", md.Destination)
	assert.Equal(t, uint64(1000), md.CreationTime)
	assert.Equal(t, uint64(3), md.Size)
	assert.Equal(t, Constraints(6), md.Constraints)
}

func TestConstraintsBits(t *testing.T) {
	var c Constraints

	c = c.With(0b0101)
	assert.True(t, c.Has(0b0001))
	assert.True(t, c.Has(0b0101))
	assert.False(t, c.Has(0b0010))
	assert.False(t, c.Has(0b0111))

	c = c.Without(0b0001)
	assert.False(t, c.Has(0b0001))
	assert.True(t, c.Has(0b0100))
}
