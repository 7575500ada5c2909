package mcpserver

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastransform/transformer"
)

// specWithDateAndExtension has one date-time property and one extension.
const specWithDateAndExtension = `openapi: "3.0.0"
info:
  title: Transform Test
  version: "1.0.0"
  x-audience: internal
paths: {}
components:
  schemas:
    Event:
      type: object
      properties:
        at:
          type: string
          format: date-time
`

func TestTransformTool_AllRules(t *testing.T) {
	input := transformInput{
		Spec:            specInput{Content: specWithDateAndExtension},
		IncludeDocument: true,
	}
	result, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "3.0.0", output.Version)
	assert.Equal(t, 2, output.ChangeCount)
	assert.Equal(t, 2, output.Returned)
	assert.Equal(t, []string{"utc-date", "strip-extension"}, output.Rules)

	require.Len(t, output.Changes, 2)
	assert.Equal(t, string(transformer.ChangeTypeUTCDate), output.Changes[0].Type)
	assert.Equal(t, "$.components.schemas['Event'].properties['at']", output.Changes[0].Path)
	assert.Equal(t, "/components/schemas/Event/properties/at/format", output.Changes[0].Pointer)
	assert.Equal(t, string(transformer.ChangeTypeStripExtension), output.Changes[1].Type)
	assert.Equal(t, "$.info['x-audience']", output.Changes[1].Path)

	assert.Contains(t, output.Document, `"format": "utc-date"`)
	assert.NotContains(t, output.Document, "x-audience")
	assert.Contains(t, output.Document, "\n        \"title\"", "document uses four-space indentation")
}

func TestTransformTool_SelectedRule(t *testing.T) {
	input := transformInput{
		Spec:  specInput{Content: specWithDateAndExtension},
		Rules: []string{"strip-extension"},
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 1, output.ChangeCount)
	assert.Equal(t, []string{"strip-extension"}, output.Rules)
	assert.Empty(t, output.Document)
}

func TestTransformTool_UnknownRule(t *testing.T) {
	input := transformInput{
		Spec:  specInput{Content: specWithDateAndExtension},
		Rules: []string{"rename-everything"},
	}
	result, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestTransformTool_DryRunSkipsOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	input := transformInput{
		Spec:            specInput{Content: specWithDateAndExtension},
		DryRun:          true,
		IncludeDocument: true,
		Output:          path,
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.True(t, output.DryRun)
	assert.Equal(t, 2, output.ChangeCount)
	assert.Empty(t, output.Document)
	assert.Empty(t, output.WrittenTo)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestTransformTool_WritesOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	input := transformInput{
		Spec:   specInput{File: "../../testdata/petstore-3.0.json"},
		Output: path,
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, path, output.WrittenTo)
	assert.Equal(t, 8, output.ChangeCount)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"x-logo"`)
	assert.Contains(t, string(data), `"x-notAnExtension"`)
	assert.NotEqual(t, byte('\n'), data[len(data)-1], "no trailing newline")
}

func TestTransformTool_Patch(t *testing.T) {
	input := transformInput{
		Spec:         specInput{Content: specWithDateAndExtension},
		IncludePatch: true,
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Contains(t, output.Patch, `"op": "replace"`)
	assert.Contains(t, output.Patch, `"op": "remove"`)
	assert.Contains(t, output.Patch, `"path": "/info/x-audience"`)
}

func TestTransformTool_Pagination(t *testing.T) {
	input := transformInput{
		Spec:   specInput{File: "../../testdata/petstore-3.0.json"},
		Offset: 2,
		Limit:  3,
	}
	_, output, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 8, output.ChangeCount)
	assert.Equal(t, 3, output.Returned)
	require.Len(t, output.Changes, 3)
	assert.Equal(t, string(transformer.ChangeTypeStripExtension), output.Changes[0].Type)
}

func TestTransformTool_CachedInputUnchanged(t *testing.T) {
	specCache.reset()
	input := transformInput{Spec: specInput{Content: specWithDateAndExtension}}

	_, first, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	_, second, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, first.ChangeCount, second.ChangeCount, "cached document is not mutated by a run")
}

func TestTransformTool_InvalidSpec(t *testing.T) {
	input := transformInput{Spec: specInput{Content: `{"info": {"title": "no version"}}`}}
	result, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.IsError)
}

func TestTransformTool_LogsToSlogDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	input := transformInput{Spec: specInput{Content: specWithDateAndExtension}}
	_, _, err := handleTransform(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	logs := buf.String()
	assert.Contains(t, logs, "tool=transform")
	assert.Contains(t, logs, "rule=utc-date")
	assert.Contains(t, logs, "transformation complete")
}
