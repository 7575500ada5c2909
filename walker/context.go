package walker

import (
	"context"

	"github.com/erraggy/oastransform/document"
)

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// Document is the document being walked. Handlers may mutate it.
	Document *document.Document

	// Node is the current node. For extensions it is the extension value,
	// whose parent is the owning object.
	Node document.NodeID

	// NodeType is the OpenAPI type of the current node.
	NodeType NodeType

	// JSONPath is the full JSON path to the current node.
	// Always populated. Example: "$.paths['/pets'].get.responses['200']"
	JSONPath string

	// PathTemplate is the URL path template when walking within $.paths scope.
	// Empty when not in paths scope. Example: "/pets/{petId}"
	PathTemplate string

	// Method is the HTTP method when walking within an operation scope.
	// Empty when not in operation scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response scope.
	// Empty when not in response scope. Example: "200", "default"
	StatusCode string

	// Name is the map key for named items like properties, headers, schemas
	// and extensions. Empty for array items and fixed fields.
	// Example: "Pet", "X-Rate-Limit", "x-logo"
	Name string

	// IsComponent is true when the current node is within the components section
	// (OAS 3.x) or definitions/parameters/responses/securityDefinitions at
	// document root (OAS 2.0).
	IsComponent bool

	// Parent is the nearest enclosing OpenAPI object. Only populated when
	// parent tracking is enabled with WithParentTracking.
	Parent *ParentInfo

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// WithContext returns a shallow copy of WalkContext with the new context.
func (wc *WalkContext) WithContext(ctx context.Context) *WalkContext {
	wc2 := *wc
	wc2.ctx = ctx
	return &wc2
}

// InPathsScope returns true if currently walking within $.paths.
func (wc *WalkContext) InPathsScope() bool {
	return wc.PathTemplate != ""
}

// InOperationScope returns true if currently walking within an operation.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

// Pointer returns the RFC 6901 JSON Pointer of the current node.
func (wc *WalkContext) Pointer() string {
	p, _ := wc.Document.Pointer(wc.Node)
	return p
}

// Line returns the source line of the current node (0 if unknown).
func (wc *WalkContext) Line() int {
	return wc.Document.Line(wc.Node)
}

// walkState tracks context as we descend through the document.
// This is internal to the walker and used to build WalkContext instances.
type walkState struct {
	pathTemplate string
	method       string
	statusCode   string
	name         string
	isComponent  bool
	parent       *ParentInfo
	ctx          context.Context
}

// buildContext creates a WalkContext from the current walk state.
func (s *walkState) buildContext(doc *document.Document, id document.NodeID, t NodeType, jsonPath string) *WalkContext {
	return &WalkContext{
		Document:     doc,
		Node:         id,
		NodeType:     t,
		JSONPath:     jsonPath,
		PathTemplate: s.pathTemplate,
		Method:       s.method,
		StatusCode:   s.statusCode,
		Name:         s.name,
		IsComponent:  s.isComponent,
		Parent:       s.parent,
		ctx:          s.ctx,
	}
}

// clone creates a copy of the walk state for child traversal.
func (s *walkState) clone() *walkState {
	c := *s
	return &c
}
