package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// MarshalJSON encodes the document as compact JSON, preserving member order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.encode(&buf, d.root, "", "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalIndent encodes the document as JSON with each member and element on
// its own line, beginning with prefix and indented by one copy of indent per
// nesting level. Empty objects and arrays are written as {} and [].
// The output has no trailing newline.
func (d *Document) MarshalIndent(prefix, indent string) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.encode(&buf, d.root, prefix, indent, 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NodeJSON encodes the subtree rooted at id as compact JSON.
func (d *Document) NodeJSON(id NodeID) ([]byte, error) {
	var buf bytes.Buffer
	if err := d.encode(&buf, id, "", "", 0); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) encode(buf *bytes.Buffer, id NodeID, prefix, indent string, depth int) error {
	n := d.at(id)
	pretty := indent != "" || prefix != ""

	newline := func(level int) {
		if !pretty {
			return
		}
		buf.WriteByte('\n')
		buf.WriteString(prefix)
		buf.WriteString(strings.Repeat(indent, level))
	}

	switch n.kind {
	case Null, Bool, Number:
		buf.WriteString(n.value)
	case String:
		if err := writeString(buf, n.value); err != nil {
			return err
		}
	case Array, Object:
		open, closing := byte('['), byte(']')
		if n.kind == Object {
			open, closing = '{', '}'
		}
		buf.WriteByte(open)
		if len(n.children) == 0 {
			buf.WriteByte(closing)
			return nil
		}
		for i, c := range n.children {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(depth + 1)
			if n.kind == Object {
				if err := writeString(buf, d.nodes[c].key); err != nil {
					return err
				}
				buf.WriteByte(':')
				if pretty {
					buf.WriteByte(' ')
				}
			}
			if err := d.encode(buf, c, prefix, indent, depth+1); err != nil {
				return err
			}
		}
		newline(depth)
		buf.WriteByte(closing)
	default:
		return fmt.Errorf("document: cannot encode node %d of kind %s", id, n.kind)
	}
	return nil
}

// writeString writes s as a JSON string literal without HTML escaping.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}

// Value converts the subtree rooted at id into plain Go values: map[string]any,
// []any, string, bool, json.Number and nil. Member order is lost.
func (d *Document) Value(id NodeID) any {
	n := d.at(id)
	switch n.kind {
	case Null:
		return nil
	case Bool:
		return n.value == "true"
	case Number:
		return json.Number(n.value)
	case String:
		return n.value
	case Array:
		out := make([]any, 0, len(n.children))
		for _, c := range n.children {
			out = append(out, d.Value(c))
		}
		return out
	default:
		out := make(map[string]any, len(n.children))
		for _, c := range n.children {
			out[d.nodes[c].key] = d.Value(c)
		}
		return out
	}
}

// Clone returns a deep copy of the document containing only attached nodes.
// Node IDs are not preserved across the copy.
func (d *Document) Clone() *Document {
	out := &Document{
		nodes:        make([]node, 0, len(d.nodes)),
		Version:      d.Version,
		OASVersion:   d.OASVersion,
		SourcePath:   d.SourcePath,
		SourceFormat: d.SourceFormat,
		SourceSize:   d.SourceSize,
	}
	out.root = out.copyFrom(d, d.root, NoNode)
	return out
}

func (d *Document) copyFrom(src *Document, id, parent NodeID) NodeID {
	n := src.at(id)
	nid := d.newNode(n.kind, parent, n.key, n.line, n.column)
	d.nodes[nid].value = n.value
	for _, c := range n.children {
		d.copyFrom(src, c, nid)
	}
	return nid
}
