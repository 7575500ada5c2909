// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oastransform pipeline as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oastransform"
)

const serverInstructions = `oastransform MCP server: rewrites OpenAPI specs by applying transformation rules (utc-date, strip-extension) and lists vendor extensions.

Configuration: defaults are configurable via OASTRANSFORM_* environment variables set in your MCP client config.

Key settings:
- OASTRANSFORM_RULES (default: all rules) - comma-separated rules applied when a call names none
- OASTRANSFORM_CACHE_FILE_TTL (default: 15m) - cache TTL for local file specs
- OASTRANSFORM_CACHE_ENABLED (default: true) - disable spec caching entirely
- OASTRANSFORM_CHANGE_LIMIT (default: 100) - default result limit for change and extension lists
- OASTRANSFORM_MAX_INLINE_SIZE (default: 10 MiB) - maximum size of inline spec content

Caching: Parsed specs are cached per session. File entries use path+mtime as key (auto-invalidated on change). A background sweeper removes expired entries.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		specCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oastransform", Version: oastransform.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "transform",
		Description: "Transform an OpenAPI Specification document. Rules: utc-date (property schemas with format date-time get format utc-date) and strip-extension (removes x-* vendor extensions from OpenAPI objects). Rules run in that order; omit rules to apply all. Returns the change list with JSON paths. Use dry_run=true to preview changes, output to write the transformed JSON to a file, include_document to return it inline, and include_patch for an RFC 6902 JSON Patch. Use offset/limit to paginate through changes.",
	}, handleTransform)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_extensions",
		Description: "List the vendor extensions (x-* members of OpenAPI objects) in an OpenAPI Specification document, i.e. what the strip-extension rule would remove. Filter by name (supports * glob, e.g. x-amazon-*). Use group_by (name or owner) to get distribution counts instead of individual items.",
	}, handleListExtensions)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ChangeLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ChangeLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		counts[keyFn(item)]++
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is one of the allowed values.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" {
		return nil
	}
	for _, a := range allowed {
		if strings.EqualFold(groupBy, a) {
			return nil
		}
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}

// validateGlobPattern checks whether a glob pattern is syntactically valid.
// Call this once before a filter loop so matchGlobName never encounters an
// invalid pattern at match time.
func validateGlobPattern(pattern string) error {
	if pattern == "" || !strings.ContainsAny(pattern, "*?[") {
		return nil
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
	}
	return nil
}

// matchGlobName reports whether name matches pattern. Patterns without glob
// metacharacters match exactly. An empty pattern matches everything.
func matchGlobName(name, pattern string) bool {
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return name == pattern
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
