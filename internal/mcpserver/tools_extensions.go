package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastransform/walker"
)

type listExtensionsInput struct {
	Spec    specInput `json:"spec"               jsonschema:"The OAS document to inspect"`
	Name    string    `json:"name,omitempty"     jsonschema:"Filter by extension name (supports * glob)"`
	GroupBy string    `json:"group_by,omitempty" jsonschema:"Group results and return counts instead of individual items. Values: name\\, owner"`
	Offset  int       `json:"offset,omitempty"   jsonschema:"Skip the first N results (for pagination)"`
	Limit   int       `json:"limit,omitempty"    jsonschema:"Maximum number of results to return (default 100)"`
}

type extensionSummary struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Path  string `json:"path"`
	Line  int    `json:"line,omitempty"`
}

type listExtensionsOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Extensions []extensionSummary `json:"extensions,omitempty"`
	Groups     []groupCount       `json:"groups,omitempty"`
}

func handleListExtensions(_ context.Context, _ *mcp.CallToolRequest, input listExtensionsInput) (*mcp.CallToolResult, listExtensionsOutput, error) {
	if err := validateGroupBy(input.GroupBy, []string{"name", "owner"}); err != nil {
		return errResult(err), listExtensionsOutput{}, nil
	}
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), listExtensionsOutput{}, nil
	}

	doc, err := input.Spec.resolve()
	if err != nil {
		return errResult(err), listExtensionsOutput{}, nil
	}

	collector, err := walker.CollectExtensions(doc)
	if err != nil {
		return errResult(err), listExtensionsOutput{}, nil
	}

	var matched []*walker.ExtensionInfo
	for _, ext := range collector.All {
		if matchGlobName(ext.Name, input.Name) {
			matched = append(matched, ext)
		}
	}

	output := listExtensionsOutput{
		Total:   len(collector.All),
		Matched: len(matched),
	}

	if input.GroupBy != "" {
		keyFn := func(e *walker.ExtensionInfo) string { return e.Name }
		if strings.EqualFold(input.GroupBy, "owner") {
			keyFn = func(e *walker.ExtensionInfo) string { return e.Owner.String() }
		}
		output.Groups = paginate(groupAndSort(matched, keyFn), input.Offset, input.Limit)
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	page := paginate(matched, input.Offset, input.Limit)
	output.Extensions = makeSlice[extensionSummary](len(page))
	for _, ext := range page {
		output.Extensions = append(output.Extensions, extensionSummary{
			Name:  ext.Name,
			Owner: ext.Owner.String(),
			Path:  ext.JSONPath,
			Line:  doc.Line(ext.Node),
		})
	}
	output.Returned = len(output.Extensions)

	return nil, output, nil
}
