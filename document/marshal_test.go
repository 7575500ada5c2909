package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalIndent(t *testing.T) {
	input := `{"openapi":"3.0.0","info":{"title":"T","version":"1"},"paths":{},"tags":[],"x-list":[1,"a",null,true]}`
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.MarshalIndent("", "    ")
	require.NoError(t, err)

	expected := `{
    "openapi": "3.0.0",
    "info": {
        "title": "T",
        "version": "1"
    },
    "paths": {},
    "tags": [],
    "x-list": [
        1,
        "a",
        null,
        true
    ]
}`
	assert.Equal(t, expected, string(out))
}

func TestMarshalJSONCompact(t *testing.T) {
	input := `{"openapi":"3.0.0","b":{"z":1,"a":2},"a":[]}`
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, input, string(out))

	out, err = json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, input, string(out))
}

func TestMarshalPreservesLiterals(t *testing.T) {
	input := `{"openapi":"3.0.0","num":1.0,"exp":1E+2,"big":123456789012345678901234567890,"html":"<a href=\"x\">&</a>","uni":"café"}`
	doc, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.0","num":1.0,"exp":1E+2,"big":123456789012345678901234567890,"html":"<a href=\"x\">&</a>","uni":"café"}`, string(out))
}

func TestMarshalYAMLToJSON(t *testing.T) {
	doc, err := Parse([]byte("swagger: \"2.0\"\ninfo:\n  title: Pets\n  version: 1.0.0\npaths: {}\n"))
	require.NoError(t, err)

	out, err := doc.MarshalIndent("", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"swagger\": \"2.0\",\n  \"info\": {\n    \"title\": \"Pets\",\n    \"version\": \"1.0.0\"\n  },\n  \"paths\": {}\n}", string(out))
}

func TestMarshalSkipsRemovedMembers(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi":"3.0.0","x-a":1,"info":{"x-b":2,"title":"T"}}`))
	require.NoError(t, err)

	_, ok := doc.RemoveMember(doc.Root(), "x-a")
	require.True(t, ok)
	info, _ := doc.Member(doc.Root(), "info")
	_, ok = doc.RemoveMember(info, "x-b")
	require.True(t, ok)

	out, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.0","info":{"title":"T"}}`, string(out))
}

func TestValue(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi":"3.0.0","n":2.5,"l":[true,null],"o":{"k":"v"}}`))
	require.NoError(t, err)

	v := doc.Value(doc.Root())
	assert.Equal(t, map[string]any{
		"openapi": "3.0.0",
		"n":       json.Number("2.5"),
		"l":       []any{true, nil},
		"o":       map[string]any{"k": "v"},
	}, v)
}

func TestClone(t *testing.T) {
	doc, err := Parse([]byte(`{"openapi":"3.1.0","x-gone":true,"info":{"title":"T"}}`))
	require.NoError(t, err)
	_, _ = doc.RemoveMember(doc.Root(), "x-gone")

	clone := doc.Clone()
	assert.Equal(t, doc.Version, clone.Version)
	assert.Equal(t, doc.OASVersion, clone.OASVersion)
	assert.Less(t, clone.Len(), doc.Len())

	title, _ := clone.Lookup("/info/title")
	clone.SetString(title, "changed")

	orig, err := doc.MarshalJSON()
	require.NoError(t, err)
	cloned, err := clone.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.1.0","info":{"title":"T"}}`, string(orig))
	assert.Equal(t, `{"openapi":"3.1.0","info":{"title":"changed"}}`, string(cloned))
}
