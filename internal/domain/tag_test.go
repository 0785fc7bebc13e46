package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRef_UnmarshalBareTag(t *testing.T) {
	var ref TagRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"name":"Bug","color":"#ef4444"}`), &ref))
	assert.Equal(t, 3, ref.TagID())
	assert.Equal(t, "Bug", ref.Tag().Name)
}

func TestTagRef_UnmarshalWrappedRecord(t *testing.T) {
	// The association row's own id must not shadow the nested tag's id.
	var ref TagRef
	require.NoError(t, json.Unmarshal([]byte(`{"id":99,"task":5,"tag":{"id":3,"name":"Bug","color":"#ef4444"}}`), &ref))
	assert.Equal(t, 3, ref.TagID())
	assert.Equal(t, "Bug", ref.Tag().Name)
}

func TestPlaceholderTags(t *testing.T) {
	tags := PlaceholderTags()
	require.Len(t, tags, 4)
	for _, tag := range tags {
		assert.True(t, tag.IsPlaceholder(), "tag %q", tag.Name)
		assert.NotEmpty(t, tag.Color)
	}

	// Each call returns a fresh slice safe to mutate.
	tags[0].Name = "mutated"
	assert.Equal(t, "Important", PlaceholderTags()[0].Name)
}

func TestContrastColor(t *testing.T) {
	tests := []struct {
		hex  string
		want string
	}{
		{"#ffffff", "#1e293b"},
		{"#000000", "#ffffff"},
		{"#f97316", "#1e293b"}, // bright orange reads dark text
		{"#3b82f6", "#ffffff"}, // mid blue reads light text
		{"nonsense", "#1e293b"},
		{"", "#1e293b"},
		{"#zzzzzz", "#1e293b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContrastColor(tt.hex), "hex %q", tt.hex)
	}
}
