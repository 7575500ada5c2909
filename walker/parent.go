package walker

import "github.com/erraggy/oastransform/document"

// ParentInfo provides information about a parent node in the traversal.
// This enables handlers to access ancestor nodes for context-aware processing.
type ParentInfo struct {
	// Node is the parent object node.
	Node document.NodeID

	// NodeType is the OpenAPI type of the parent.
	NodeType NodeType

	// JSONPath is the JSON path to this parent node
	JSONPath string

	// Parent is the grandparent, enabling ancestor chain traversal.
	// nil for the root-level parent.
	Parent *ParentInfo
}

// nearest returns the closest ancestor matching one of the types.
func (wc *WalkContext) nearest(types ...NodeType) (*ParentInfo, bool) {
	for p := wc.Parent; p != nil; p = p.Parent {
		for _, t := range types {
			if p.NodeType == t {
				return p, true
			}
		}
	}
	return nil, false
}

// ParentSchema returns the nearest ancestor that is a Schema, if any.
// This is useful for detecting when a schema is nested within another schema
// (e.g., a property within an object schema).
func (wc *WalkContext) ParentSchema() (*ParentInfo, bool) {
	return wc.nearest(NodeSchema, NodePropertySchema)
}

// ParentOperation returns the nearest ancestor that is an Operation, if any.
func (wc *WalkContext) ParentOperation() (*ParentInfo, bool) {
	return wc.nearest(NodeOperation)
}

// ParentPathItem returns the nearest ancestor that is a PathItem, if any.
func (wc *WalkContext) ParentPathItem() (*ParentInfo, bool) {
	return wc.nearest(NodePathItem)
}

// ParentResponse returns the nearest ancestor that is a Response, if any.
func (wc *WalkContext) ParentResponse() (*ParentInfo, bool) {
	return wc.nearest(NodeResponse)
}

// Ancestors returns all ancestors from immediate parent to root.
// The first element is the immediate parent, the last is the root-level ancestor.
// Returns nil if parent tracking is not enabled or there are no ancestors.
func (wc *WalkContext) Ancestors() []*ParentInfo {
	var ancestors []*ParentInfo
	for p := wc.Parent; p != nil; p = p.Parent {
		ancestors = append(ancestors, p)
	}
	return ancestors
}

// Depth returns the number of ancestors (nesting depth).
// Returns 0 if at root level or parent tracking is not enabled.
func (wc *WalkContext) Depth() int {
	depth := 0
	for p := wc.Parent; p != nil; p = p.Parent {
		depth++
	}
	return depth
}
