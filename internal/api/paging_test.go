package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zenban/internal/domain"
)

func TestDecodeList_BareArray(t *testing.T) {
	body := []byte(`[{"id":1,"name":"Bug"},{"id":2,"name":"Feature"}]`)
	tags := decodeList[domain.Tag](body)
	require.Len(t, tags, 2)
	assert.Equal(t, "Bug", tags[0].Name)
}

func TestDecodeList_WrappedResults(t *testing.T) {
	body := []byte(`{"count":2,"results":[{"id":1,"name":"Bug"},{"id":2,"name":"Feature"}]}`)
	tags := decodeList[domain.Tag](body)
	require.Len(t, tags, 2)
	assert.Equal(t, "Feature", tags[1].Name)
}

func TestDecodeList_UnexpectedShapeIsEmpty(t *testing.T) {
	// A malformed or unrecognized body reads as an empty list, never an
	// error: list endpoints degrade to empty rather than failing a view.
	assert.Empty(t, decodeList[domain.Tag]([]byte(`{"detail":"nope"}`)))
	assert.Empty(t, decodeList[domain.Tag]([]byte(`not json`)))
	assert.Empty(t, decodeList[domain.Tag](nil))
}
