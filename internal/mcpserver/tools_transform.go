package mcpserver

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastransform/internal/fileutil"
	"github.com/erraggy/oastransform/transformer"
)

type transformInput struct {
	Spec            specInput `json:"spec"                       jsonschema:"The OAS document to transform"`
	Rules           []string  `json:"rules,omitempty"            jsonschema:"Rules to apply (utc-date\\, strip-extension). Omit to apply all rules."`
	DryRun          bool      `json:"dry_run,omitempty"          jsonschema:"Preview changes without producing a transformed document"`
	IncludeDocument bool      `json:"include_document,omitempty" jsonschema:"Include the full transformed document in output"`
	IncludePatch    bool      `json:"include_patch,omitempty"    jsonschema:"Include an RFC 6902 JSON Patch of the changes"`
	Output          string    `json:"output,omitempty"           jsonschema:"File path to write the transformed document. If omitted the document is returned inline when include_document is true."`
	Offset          int       `json:"offset,omitempty"           jsonschema:"Skip the first N changes (for pagination)"`
	Limit           int       `json:"limit,omitempty"            jsonschema:"Maximum number of changes to return (default 100)"`
}

type changeApplied struct {
	Type        string `json:"type"`
	Path        string `json:"path"`
	Pointer     string `json:"pointer,omitempty"`
	Description string `json:"description"`
	Line        int    `json:"line,omitempty"`
}

type transformOutput struct {
	ChangeCount int             `json:"change_count"`
	Returned    int             `json:"returned"`
	Changes     []changeApplied `json:"changes,omitempty"`
	Version     string          `json:"version"`
	Rules       []string        `json:"rules,omitempty"`
	DryRun      bool            `json:"dry_run,omitempty"`
	WrittenTo   string          `json:"written_to,omitempty"`
	Document    string          `json:"document,omitempty"`
	Patch       string          `json:"patch,omitempty"`
}

func handleTransform(_ context.Context, _ *mcp.CallToolRequest, input transformInput) (*mcp.CallToolResult, transformOutput, error) {
	opts, err := buildTransformerOptions(input)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	result, err := transformer.TransformWithOptions(opts...)
	if err != nil {
		return errResult(err), transformOutput{}, nil
	}

	output := transformOutput{
		ChangeCount: result.ChangeCount,
		Version:     result.SourceVersion,
		DryRun:      result.DryRun,
	}
	for _, r := range result.Rules {
		output.Rules = append(output.Rules, string(r))
	}

	output.Changes = makeSlice[changeApplied](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, changeApplied{
			Type:        string(c.Type),
			Path:        c.Path,
			Pointer:     c.Pointer,
			Description: c.Description,
			Line:        c.Line,
		})
	}
	output.Changes = paginate(output.Changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)

	if input.IncludePatch {
		patch, err := result.Patch()
		if err != nil {
			return errResult(err), transformOutput{}, nil
		}
		output.Patch = string(patch)
	}

	needsDocument := !input.DryRun && (input.Output != "" || input.IncludeDocument)
	if needsDocument {
		data, err := result.Output()
		if err != nil {
			return errResult(err), transformOutput{}, nil
		}

		if input.Output != "" {
			if err := fileutil.WriteAtomic(input.Output, data, fileutil.OwnerReadWrite); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), transformOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(data)
		}
	}

	return nil, output, nil
}

// buildTransformerOptions translates the MCP input into transformer options.
// The spec is resolved through the session cache; the transformer never
// modifies the document it is given.
func buildTransformerOptions(input transformInput) ([]transformer.Option, error) {
	doc, err := input.Spec.resolve()
	if err != nil {
		return nil, err
	}
	opts := []transformer.Option{
		transformer.WithDocument(doc),
		transformer.WithLogger(transformer.NewSlogAdapter(slog.Default().With("tool", "transform"))),
	}

	rules := cfg.Rules
	if len(input.Rules) > 0 {
		rules = make([]transformer.ChangeType, 0, len(input.Rules))
		for _, r := range input.Rules {
			t, err := transformer.ParseChangeType(r)
			if err != nil {
				return nil, err
			}
			rules = append(rules, t)
		}
	}
	if len(rules) > 0 {
		opts = append(opts, transformer.WithEnabledRules(rules...))
	}

	if input.DryRun {
		opts = append(opts, transformer.WithDryRun(true))
	}
	return opts, nil
}
