package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/erraggy/oastransform/oaserrors"
)

const (
	// defaultMaxAliasExpansion caps the number of nodes created by expanding
	// YAML aliases, guarding against "billion laughs" inputs.
	defaultMaxAliasExpansion = 100_000

	// defaultMaxNestingDepth caps the nesting depth of the document tree.
	defaultMaxNestingDepth = 10_000
)

// parseConfig holds configuration for a parse operation
type parseConfig struct {
	sourcePath        string
	maxAliasExpansion int
	maxNestingDepth   int
}

// Option configures a parse operation.
type Option func(*parseConfig)

// WithSourcePath records the path the bytes were read from. It is used in
// error messages and to detect the source format from the file extension.
func WithSourcePath(path string) Option {
	return func(cfg *parseConfig) { cfg.sourcePath = path }
}

// WithMaxAliasExpansion sets the maximum number of nodes YAML alias expansion
// may create. Values <= 0 keep the default.
func WithMaxAliasExpansion(n int) Option {
	return func(cfg *parseConfig) {
		if n > 0 {
			cfg.maxAliasExpansion = n
		}
	}
}

// WithMaxNestingDepth sets the maximum nesting depth of the tree.
// Values <= 0 keep the default.
func WithMaxNestingDepth(n int) Option {
	return func(cfg *parseConfig) {
		if n > 0 {
			cfg.maxNestingDepth = n
		}
	}
}

// ParseFile reads and parses an OpenAPI document from a file.
func ParseFile(path string, opts ...Option) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided CLI input
	if err != nil {
		return nil, &oaserrors.ParseError{Path: path, Message: "failed to read file", Cause: err}
	}
	return Parse(data, append([]Option{WithSourcePath(path)}, opts...)...)
}

// ParseReader reads and parses an OpenAPI document from r.
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ParseError{Message: "failed to read data", Cause: err}
	}
	return Parse(data, opts...)
}

// Parse parses an OpenAPI document from JSON or YAML bytes.
//
// The bytes are decoded as UTF-8; a leading byte order mark (UTF-8 or UTF-16)
// is honored and stripped. The root must be an object carrying an "openapi"
// (3.x) or "swagger" ("2.0") member.
func Parse(data []byte, opts ...Option) (*Document, error) {
	cfg := &parseConfig{
		maxAliasExpansion: defaultMaxAliasExpansion,
		maxNestingDepth:   defaultMaxNestingDepth,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: cfg.sourcePath, Message: "input is not valid text", Cause: err}
	}

	doc := &Document{
		SourcePath: cfg.sourcePath,
		SourceSize: int64(len(data)),
	}
	rootID, err := parseTree(text, doc, cfg)
	if err != nil {
		return nil, err
	}
	doc.root = rootID

	if err := detectVersion(doc); err != nil {
		return nil, err
	}

	doc.SourceFormat = detectFormatFromPath(cfg.sourcePath)
	if doc.SourceFormat == SourceFormatUnknown {
		doc.SourceFormat = detectFormatFromContent(text)
	}
	return doc, nil
}

// parseTree builds the node tree. Text that looks like JSON goes through the
// JSON decoder; if that fails with a syntax error the YAML decoder gets a
// chance, since YAML flow style also starts with '{' or '['.
func parseTree(text []byte, doc *Document, cfg *parseConfig) (NodeID, error) {
	if detectFormatFromContent(text) != SourceFormatJSON {
		return parseYAML(text, doc, cfg)
	}

	root, jsonErr := parseJSON(text, doc, cfg)
	if jsonErr == nil {
		return root, nil
	}
	var parseErr *oaserrors.ParseError
	if !errors.As(jsonErr, &parseErr) {
		return NoNode, jsonErr
	}

	doc.nodes = nil
	root, err := parseYAML(text, doc, cfg)
	if err != nil {
		doc.nodes = nil
		return NoNode, jsonErr
	}
	return root, nil
}

// parseYAML builds the node tree from YAML text.
func parseYAML(text []byte, doc *Document, cfg *parseConfig) (NodeID, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(text, &root); err != nil {
		return NoNode, &oaserrors.ParseError{Path: cfg.sourcePath, Message: "failed to parse JSON/YAML", Cause: err}
	}
	content := &root
	if content.Kind == yaml.DocumentNode {
		if len(content.Content) == 0 {
			content = nil
		} else {
			content = content.Content[0]
		}
	}
	if content == nil || content.Kind == 0 {
		return NoNode, &oaserrors.ParseError{Path: cfg.sourcePath, Message: "document is empty"}
	}

	b := &yamlBuilder{doc: doc, cfg: cfg}
	return b.build(content, NoNode, "", 0)
}

// decodeText converts the input to UTF-8, honoring a byte order mark.
// Invalid UTF-8 sequences are replaced with U+FFFD.
func decodeText(data []byte) ([]byte, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	return out, err
}

// detectVersion reads the root version member and sets Version and OASVersion.
func detectVersion(doc *Document) error {
	root := doc.root
	if doc.Kind(root) != Object {
		return &oaserrors.ParseError{
			Path:    doc.SourcePath,
			Line:    doc.Line(root),
			Message: fmt.Sprintf("document root must be an object, got %s", doc.Kind(root)),
		}
	}

	for _, field := range []string{"openapi", "swagger"} {
		id, ok := doc.Member(root, field)
		if !ok {
			continue
		}
		// An unquoted YAML version such as `openapi: 3.0` resolves to a number.
		if k := doc.Kind(id); k != String && k != Number {
			return &oaserrors.ParseError{
				Path:    doc.SourcePath,
				Line:    doc.Line(id),
				Column:  doc.Column(id),
				Message: fmt.Sprintf("%q must be a string, got %s", field, k),
			}
		}
		doc.Version = doc.Text(id)
		doc.OASVersion = ParseVersion(doc.Version)
		if doc.OASVersion == Unknown || (field == "swagger") != doc.OASVersion.IsOAS2() {
			return &oaserrors.ParseError{
				Path:    doc.SourcePath,
				Line:    doc.Line(id),
				Column:  doc.Column(id),
				Message: fmt.Sprintf("unsupported %s version %q", field, doc.Version),
			}
		}
		return nil
	}

	return &oaserrors.ParseError{
		Path:    doc.SourcePath,
		Message: "not an OpenAPI document: missing 'openapi' or 'swagger' field",
	}
}

// yamlBuilder converts a yaml.Node tree into arena nodes. YAML forbids
// repeated mapping keys, so a duplicate is an error.
type yamlBuilder struct {
	doc      *Document
	cfg      *parseConfig
	expanded int
}

func (b *yamlBuilder) build(n *yaml.Node, parent NodeID, key string, depth int) (NodeID, error) {
	if depth > b.cfg.maxNestingDepth {
		return NoNode, &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(b.cfg.maxNestingDepth),
			Message:      fmt.Sprintf("at line %d", n.Line),
		}
	}

	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return NoNode, b.errorAt(n, "unresolved alias", nil)
		}
		b.expanded++
		if b.expanded > b.cfg.maxAliasExpansion {
			return NoNode, &oaserrors.ResourceLimitError{
				ResourceType: "alias_expansion",
				Limit:        int64(b.cfg.maxAliasExpansion),
				Actual:       int64(b.expanded),
			}
		}
		return b.build(n.Alias, parent, key, depth+1)

	case yaml.MappingNode:
		id := b.doc.newNode(Object, parent, key, n.Line, n.Column)
		if len(n.Content)%2 != 0 {
			return NoNode, b.errorAt(n, "mapping has an odd number of nodes", nil)
		}
		seen := make(map[string]bool, len(n.Content)/2)
		for i := 0; i < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return NoNode, b.errorAt(k, "object keys must be scalars", nil)
			}
			if seen[k.Value] {
				return NoNode, b.errorAt(k, fmt.Sprintf("duplicate key %q", k.Value), nil)
			}
			seen[k.Value] = true
			if _, err := b.build(n.Content[i+1], id, k.Value, depth+1); err != nil {
				return NoNode, err
			}
		}
		return id, nil

	case yaml.SequenceNode:
		id := b.doc.newNode(Array, parent, "", n.Line, n.Column)
		for _, item := range n.Content {
			if _, err := b.build(item, id, "", depth+1); err != nil {
				return NoNode, err
			}
		}
		return id, nil

	case yaml.ScalarNode:
		kind, value, err := scalarValue(n)
		if err != nil {
			return NoNode, b.errorAt(n, "invalid scalar", err)
		}
		id := b.doc.newNode(kind, parent, key, n.Line, n.Column)
		b.doc.nodes[id].value = value
		return id, nil

	default:
		return NoNode, b.errorAt(n, fmt.Sprintf("unsupported node kind %v", n.Kind), nil)
	}
}

func (b *yamlBuilder) errorAt(n *yaml.Node, msg string, cause error) error {
	return &oaserrors.ParseError{
		Path:    b.cfg.sourcePath,
		Line:    n.Line,
		Column:  n.Column,
		Message: msg,
		Cause:   cause,
	}
}

// scalarValue resolves a YAML scalar to a JSON kind and its canonical literal.
func scalarValue(n *yaml.Node) (Kind, string, error) {
	switch n.ShortTag() {
	case "!!null":
		return Null, "null", nil
	case "!!bool":
		switch strings.ToLower(n.Value) {
		case "true":
			return Bool, "true", nil
		case "false":
			return Bool, "false", nil
		}
		return 0, "", fmt.Errorf("invalid boolean %q", n.Value)
	case "!!int":
		if isJSONNumber(n.Value) {
			return Number, n.Value, nil
		}
		i, err := strconv.ParseInt(strings.ReplaceAll(n.Value, "_", ""), 0, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid integer %q: %w", n.Value, err)
		}
		return Number, strconv.FormatInt(i, 10), nil
	case "!!float":
		if isJSONNumber(n.Value) {
			return Number, n.Value, nil
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(n.Value, "_", ""), 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid number %q: %w", n.Value, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return 0, "", fmt.Errorf("number %q cannot be represented in JSON", n.Value)
		}
		return Number, strconv.FormatFloat(f, 'g', -1, 64), nil
	default:
		// Strings, timestamps and binary values are all kept as their text.
		return String, n.Value, nil
	}
}

// isJSONNumber reports whether s is a valid JSON number literal.
func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	return json.Valid([]byte(s))
}
