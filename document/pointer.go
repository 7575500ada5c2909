package document

import (
	"strconv"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Pointer returns the RFC 6901 JSON Pointer of an attached node.
// The root is "". Detached nodes return "" and false.
func (d *Document) Pointer(id NodeID) (string, bool) {
	var segments []string
	cur := id
	for cur != d.root {
		p := d.at(cur).parent
		if p == NoNode {
			return "", false
		}
		if d.nodes[p].kind == Array {
			idx := indexOf(d.nodes[p].children, cur)
			if idx < 0 {
				return "", false
			}
			segments = append(segments, strconv.Itoa(idx))
		} else {
			segments = append(segments, pointerEscaper.Replace(d.nodes[cur].key))
		}
		cur = p
	}

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(segments[i])
	}
	return sb.String(), true
}

// Lookup resolves an RFC 6901 JSON Pointer against the document.
func (d *Document) Lookup(pointer string) (NodeID, bool) {
	if pointer == "" {
		return d.root, true
	}
	if !strings.HasPrefix(pointer, "/") {
		return NoNode, false
	}
	cur := d.root
	for _, raw := range strings.Split(pointer[1:], "/") {
		seg := pointerUnescaper.Replace(raw)
		switch d.Kind(cur) {
		case Object:
			next, ok := d.Member(cur, seg)
			if !ok {
				return NoNode, false
			}
			cur = next
		case Array:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= d.ChildCount(cur) || (len(seg) > 1 && seg[0] == '0') {
				return NoNode, false
			}
			cur = d.nodes[cur].children[i]
		default:
			return NoNode, false
		}
	}
	return cur, true
}

// EscapePointerToken escapes a single reference token for use in a JSON Pointer.
func EscapePointerToken(s string) string {
	return pointerEscaper.Replace(s)
}

func indexOf(ids []NodeID, id NodeID) int {
	for i, c := range ids {
		if c == id {
			return i
		}
	}
	return -1
}
