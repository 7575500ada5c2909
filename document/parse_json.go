package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/erraggy/oastransform/oaserrors"
)

// jsonBuilder converts a JSON token stream into arena nodes. Unlike the YAML
// scanner it accepts every escape JSON allows (\/, surrogate pairs, \u0000).
type jsonBuilder struct {
	doc        *Document
	cfg        *parseConfig
	dec        *json.Decoder
	text       []byte
	lineStarts []int
}

// parseJSON builds the document tree from JSON text and returns the root ID.
// Number literals are kept verbatim. A repeated object key replaces the
// earlier value in place, as JSON.parse does.
func parseJSON(text []byte, doc *Document, cfg *parseConfig) (NodeID, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	b := &jsonBuilder{doc: doc, cfg: cfg, dec: dec, text: text, lineStarts: []int{0}}
	for i, c := range text {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}

	root, err := b.value(NoNode, "", 0)
	if err != nil {
		return NoNode, err
	}

	off := b.next()
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		return NoNode, b.errorAt(off, fmt.Sprintf("unexpected data after top-level value: %v", tok), err)
	}
	return root, nil
}

func (b *jsonBuilder) value(parent NodeID, key string, depth int) (NodeID, error) {
	off := b.next()
	line, column := b.position(off)
	if depth > b.cfg.maxNestingDepth {
		return NoNode, &oaserrors.ResourceLimitError{
			ResourceType: "nesting_depth",
			Limit:        int64(b.cfg.maxNestingDepth),
			Message:      fmt.Sprintf("at line %d", line),
		}
	}

	tok, err := b.dec.Token()
	if err != nil {
		return NoNode, b.errorAt(off, "failed to parse JSON/YAML", err)
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return b.object(parent, key, depth, line, column)
		case '[':
			return b.array(parent, key, depth, line, column)
		}
		return NoNode, b.errorAt(off, fmt.Sprintf("unexpected delimiter %q", rune(t)), nil)
	case string:
		return b.scalar(String, t, parent, key, line, column), nil
	case json.Number:
		return b.scalar(Number, t.String(), parent, key, line, column), nil
	case bool:
		if t {
			return b.scalar(Bool, "true", parent, key, line, column), nil
		}
		return b.scalar(Bool, "false", parent, key, line, column), nil
	case nil:
		return b.scalar(Null, "null", parent, key, line, column), nil
	default:
		return NoNode, b.errorAt(off, fmt.Sprintf("unexpected token %v", tok), nil)
	}
}

func (b *jsonBuilder) object(parent NodeID, key string, depth, line, column int) (NodeID, error) {
	id := b.doc.newNode(Object, parent, key, line, column)
	for b.dec.More() {
		off := b.next()
		tok, err := b.dec.Token()
		if err != nil {
			return NoNode, b.errorAt(off, "failed to parse JSON/YAML", err)
		}
		name, ok := tok.(string)
		if !ok {
			return NoNode, b.errorAt(off, "object keys must be strings", nil)
		}

		earlier, dup := b.doc.Member(id, name)
		child, err := b.value(id, name, depth+1)
		if err != nil {
			return NoNode, err
		}
		if dup {
			b.doc.replaceChild(id, earlier, child)
		}
	}
	if err := b.closing(); err != nil {
		return NoNode, err
	}
	return id, nil
}

func (b *jsonBuilder) array(parent NodeID, key string, depth, line, column int) (NodeID, error) {
	id := b.doc.newNode(Array, parent, key, line, column)
	for b.dec.More() {
		if _, err := b.value(id, "", depth+1); err != nil {
			return NoNode, err
		}
	}
	if err := b.closing(); err != nil {
		return NoNode, err
	}
	return id, nil
}

// closing consumes the '}' or ']' ending the current container.
func (b *jsonBuilder) closing() error {
	off := b.next()
	if _, err := b.dec.Token(); err != nil {
		return b.errorAt(off, "failed to parse JSON/YAML", err)
	}
	return nil
}

func (b *jsonBuilder) scalar(kind Kind, value string, parent NodeID, key string, line, column int) NodeID {
	id := b.doc.newNode(kind, parent, key, line, column)
	b.doc.nodes[id].value = value
	return id
}

// next returns the offset of the next token, skipping whitespace and the
// separators the decoder consumes implicitly.
func (b *jsonBuilder) next() int {
	off := int(b.dec.InputOffset())
	for off < len(b.text) && isJSONSeparator(b.text[off]) {
		off++
	}
	return off
}

func isJSONSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', ',', ':':
		return true
	}
	return false
}

// position converts a byte offset to a 1-based line and column.
func (b *jsonBuilder) position(off int) (line, column int) {
	i := sort.Search(len(b.lineStarts), func(i int) bool { return b.lineStarts[i] > off }) - 1
	start := b.lineStarts[i]
	end := min(off, len(b.text))
	return i + 1, utf8.RuneCount(b.text[start:end]) + 1
}

func (b *jsonBuilder) errorAt(off int, msg string, cause error) error {
	line, column := b.position(off)
	return &oaserrors.ParseError{
		Path:    b.cfg.sourcePath,
		Line:    line,
		Column:  column,
		Message: msg,
		Cause:   cause,
	}
}
