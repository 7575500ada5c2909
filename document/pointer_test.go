package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointerRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(treeJSON))
	require.NoError(t, err)

	tests := []string{
		"",
		"/openapi",
		"/paths/~1a~1{id}",
		"/paths/~1a~1{id}/get/x-two",
		"/tags/1",
		"/tags/1/name",
	}
	for _, ptr := range tests {
		t.Run(ptr, func(t *testing.T) {
			id, ok := doc.Lookup(ptr)
			require.True(t, ok)
			got, ok := doc.Pointer(id)
			require.True(t, ok)
			assert.Equal(t, ptr, got)
		})
	}
}

func TestLookupMisses(t *testing.T) {
	doc, err := Parse([]byte(treeJSON))
	require.NoError(t, err)

	for _, ptr := range []string{"openapi", "/nope", "/tags/2", "/tags/-1", "/tags/01", "/tags/x", "/openapi/deeper"} {
		_, ok := doc.Lookup(ptr)
		assert.False(t, ok, "pointer %q", ptr)
	}
}

func TestPointerDetached(t *testing.T) {
	doc, err := Parse([]byte(treeJSON))
	require.NoError(t, err)

	get := mustLookup(t, doc, "/paths/~1a~1{id}/get")
	removed, ok := doc.RemoveMember(get, "x-one")
	require.True(t, ok)

	_, ok = doc.Pointer(removed)
	assert.False(t, ok)

	ptr, ok := doc.Pointer(mustLookup(t, doc, "/paths/~1a~1{id}/get/x-two"))
	require.True(t, ok)
	assert.Equal(t, "/paths/~1a~1{id}/get/x-two", ptr)
}

func TestEscapePointerToken(t *testing.T) {
	assert.Equal(t, "~1pets~1{id}", EscapePointerToken("/pets/{id}"))
	assert.Equal(t, "a~0b", EscapePointerToken("a~b"))
}
