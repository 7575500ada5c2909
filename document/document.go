package document

import (
	"fmt"
	"slices"
)

// Kind is the JSON value kind of a node.
type Kind uint8

const (
	// Null is a JSON null.
	Null Kind = iota
	// Bool is a JSON boolean.
	Bool
	// Number is a JSON number. Its literal text is preserved.
	Number
	// String is a JSON string.
	String
	// Array is a JSON array.
	Array
	// Object is a JSON object. Member order is preserved.
	Object
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsScalar reports whether the kind holds a single value rather than children.
func (k Kind) IsScalar() bool {
	return k <= String
}

// NodeID addresses a node inside a Document. IDs are stable for the lifetime
// of the document, including after the node has been detached.
type NodeID int32

// NoNode is the parent of the root and of detached nodes.
const NoNode NodeID = -1

// node is one arena slot.
type node struct {
	kind     Kind
	parent   NodeID
	key      string
	value    string
	children []NodeID
	line     int
	column   int
}

// Document is a parsed OpenAPI document stored as an index-based tree.
//
// Nodes live in a single arena and reference their parent and children by
// NodeID, so a node can be removed from its parent without ownership cycles.
// A Document is owned by one caller at a time and is not safe for concurrent use.
type Document struct {
	nodes []node
	root  NodeID

	// Version is the value of the root "openapi" or "swagger" member (e.g., "3.0.3", "2.0")
	Version string
	// OASVersion is the enumerated OpenAPI version family
	OASVersion OASVersion
	// SourcePath is the path the document was read from, if any
	SourcePath string
	// SourceFormat is the format of the source bytes (JSON or YAML)
	SourceFormat SourceFormat
	// SourceSize is the size of the source in bytes
	SourceSize int64
}

// Root returns the ID of the root object.
func (d *Document) Root() NodeID {
	return d.root
}

// Len returns the number of arena slots, including detached nodes.
func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

func (d *Document) at(id NodeID) *node {
	if !d.valid(id) {
		panic(fmt.Sprintf("document: node %d out of range [0,%d)", id, len(d.nodes)))
	}
	return &d.nodes[id]
}

// Kind returns the value kind of a node.
func (d *Document) Kind(id NodeID) Kind {
	return d.at(id).kind
}

// Parent returns the parent of a node, or NoNode for the root and detached nodes.
func (d *Document) Parent(id NodeID) NodeID {
	return d.at(id).parent
}

// Key returns the member name of a node whose parent is an object.
// It is empty for array elements and the root.
func (d *Document) Key(id NodeID) string {
	return d.at(id).key
}

// Line returns the 1-based source line of a node (0 if unknown).
func (d *Document) Line(id NodeID) int {
	return d.at(id).line
}

// Column returns the 1-based source column of a node (0 if unknown).
func (d *Document) Column(id NodeID) int {
	return d.at(id).column
}

// Text returns the literal text of a scalar node: the string value for
// strings, the number literal for numbers, "true"/"false" and "null".
// It is empty for objects and arrays.
func (d *Document) Text(id NodeID) string {
	return d.at(id).value
}

// StringValue returns the value of a string node. ok is false for other kinds.
func (d *Document) StringValue(id NodeID) (s string, ok bool) {
	n := d.at(id)
	if n.kind != String {
		return "", false
	}
	return n.value, true
}

// Children returns a snapshot of the children of an object or array in
// document order. The returned slice is owned by the caller, so the document
// may be mutated while iterating over it.
func (d *Document) Children(id NodeID) []NodeID {
	return slices.Clone(d.at(id).children)
}

// ChildCount returns the number of children of an object or array.
func (d *Document) ChildCount(id NodeID) int {
	return len(d.at(id).children)
}

// Member returns the child of an object with the given key.
func (d *Document) Member(obj NodeID, key string) (NodeID, bool) {
	n := d.at(obj)
	if n.kind != Object {
		return NoNode, false
	}
	for _, c := range n.children {
		if d.nodes[c].key == key {
			return c, true
		}
	}
	return NoNode, false
}

// MemberString returns the string value of an object member.
func (d *Document) MemberString(obj NodeID, key string) (string, bool) {
	c, ok := d.Member(obj, key)
	if !ok {
		return "", false
	}
	return d.StringValue(c)
}

// Attached reports whether a node is still reachable from the root.
func (d *Document) Attached(id NodeID) bool {
	for cur := id; ; {
		if cur == d.root {
			return true
		}
		p := d.at(cur).parent
		if p == NoNode {
			return false
		}
		cur = p
	}
}

// SetString replaces the value of a node with the string s.
// If the node was an object or array its children are detached.
func (d *Document) SetString(id NodeID, s string) {
	n := d.at(id)
	for _, c := range n.children {
		d.nodes[c].parent = NoNode
	}
	n.children = nil
	n.kind = String
	n.value = s
}

// RemoveMember removes the member named key from an object and detaches it.
// It returns the removed node, or false if the object has no such member.
func (d *Document) RemoveMember(obj NodeID, key string) (NodeID, bool) {
	n := d.at(obj)
	if n.kind != Object {
		return NoNode, false
	}
	for i, c := range n.children {
		if d.nodes[c].key != key {
			continue
		}
		n.children = slices.Delete(slices.Clone(n.children), i, i+1)
		d.nodes[c].parent = NoNode
		return c, true
	}
	return NoNode, false
}

// replaceChild moves the last child of parent into the slot held by old and
// detaches old.
func (d *Document) replaceChild(parent, old, replacement NodeID) {
	n := d.at(parent)
	last := len(n.children) - 1
	if last < 0 || n.children[last] != replacement {
		return
	}
	idx := slices.Index(n.children, old)
	if idx < 0 {
		return
	}
	n.children[idx] = replacement
	n.children = n.children[:last]
	d.nodes[old].parent = NoNode
}

// newNode appends a node to the arena and links it to its parent.
func (d *Document) newNode(kind Kind, parent NodeID, key string, line, column int) NodeID {
	id := NodeID(len(d.nodes))
	d.nodes = append(d.nodes, node{
		kind:   kind,
		parent: parent,
		key:    key,
		line:   line,
		column: column,
	})
	if parent != NoNode {
		p := &d.nodes[parent]
		p.children = append(p.children, id)
	}
	return id
}
