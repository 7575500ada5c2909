package walker

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/erraggy/oastransform/document"
)

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Handler is called for each visited node of the type it is registered for.
type Handler func(wc *WalkContext) Action

// SchemaSkippedHandler is called when a schema is not visited.
// The reason is "depth" when the schema exceeds the maximum schema depth.
type SchemaSkippedHandler func(wc *WalkContext, reason string)

const (
	// DefaultMaxDepth is the default maximum schema nesting depth.
	DefaultMaxDepth = 100

	// UnlimitedDepth disables the schema depth limit. The document's own
	// nesting limit, enforced at parse time, still bounds recursion.
	UnlimitedDepth = math.MaxInt
)

// Walker traverses OpenAPI documents and calls handlers for each node type.
type Walker struct {
	handlers        map[NodeType][]Handler
	onSchemaSkipped SchemaSkippedHandler

	// Configuration
	maxDepth    int
	trackParent bool
	userCtx     context.Context

	// Input for WalkWithOptions
	filePath *string
	parsed   *document.Document

	// Internal state
	doc     *document.Document
	grammar grammar
	stopped bool
}

// New creates a new Walker with default settings.
func New() *Walker {
	return &Walker{
		handlers: make(map[NodeType][]Handler),
		maxDepth: DefaultMaxDepth,
	}
}

// Walk traverses the document depth-first and calls registered handlers for
// each node. Handlers for a node run before its children are visited.
//
// Members are visited in document order over a snapshot taken when the owning
// object is entered; members a handler removes before they are reached are not
// visited.
func Walk(doc *document.Document, opts ...Option) error {
	if doc == nil {
		return fmt.Errorf("walker: nil Document")
	}

	w := New()
	for _, opt := range opts {
		opt(w)
	}

	return w.walk(doc)
}

// walk performs the actual traversal.
func (w *Walker) walk(doc *document.Document) error {
	g, ok := grammarFor(doc.OASVersion)
	if !ok {
		return fmt.Errorf("walker: unsupported OpenAPI version %q", doc.Version)
	}
	if doc.Kind(doc.Root()) != document.Object {
		return fmt.Errorf("walker: document root must be an object")
	}

	w.doc = doc
	w.grammar = g
	w.stopped = false

	state := &walkState{ctx: w.userCtx}
	return w.walkObject(doc.Root(), NodeDocument, "$", 0, state)
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}

// visit calls every handler registered for t. Property schemas are also
// reported to schema handlers, which run first.
func (w *Walker) visit(t NodeType, wc *WalkContext) bool {
	handlers := w.handlers[t]
	if t == NodePropertySchema {
		handlers = append(append([]Handler(nil), w.handlers[NodeSchema]...), handlers...)
	}
	continueToChildren := true
	for _, h := range handlers {
		if !w.handleAction(h(wc)) {
			continueToChildren = false
		}
		if w.stopped {
			return false
		}
	}
	return continueToChildren
}

// walkObject visits an object node of type t and descends into its members.
// depth is the schema nesting depth and only grows across schema-to-schema edges.
func (w *Walker) walkObject(id document.NodeID, t NodeType, path string, depth int, state *walkState) error {
	if w.stopped {
		return nil
	}
	if state.ctx != nil {
		if err := state.ctx.Err(); err != nil {
			return fmt.Errorf("walker: %w", err)
		}
	}
	// Values with an unexpected shape are opaque.
	if w.doc.Kind(id) != document.Object {
		return nil
	}

	if t.IsSchema() && depth > w.maxDepth {
		if w.onSchemaSkipped != nil {
			w.onSchemaSkipped(state.buildContext(w.doc, id, t, path), "depth")
		}
		return nil
	}

	if !w.visit(t, state.buildContext(w.doc, id, t, path)) {
		return nil
	}

	og := w.grammar[t]
	if og == nil {
		return nil
	}

	childBase := state.clone()
	if w.trackParent {
		childBase.parent = &ParentInfo{Node: id, NodeType: t, JSONPath: path, Parent: state.parent}
	}

	for _, c := range w.doc.Children(id) {
		if w.stopped {
			return nil
		}
		// Removed by a handler while this object was being walked.
		if w.doc.Parent(c) != id {
			continue
		}
		key := w.doc.Key(c)

		if og.extensible && strings.HasPrefix(key, "x-") {
			w.visitExtension(c, path+member(key), childBase)
			continue
		}

		f, fixed := og.fields[key]
		if !fixed {
			if og.patterned == nil {
				continue
			}
			f = *og.patterned
		}

		childPath := path + "." + key
		childState := childBase.clone()
		childState.name = ""
		if !fixed {
			childPath = path + member(key)
			childState.name = key
			switch t {
			case NodePaths:
				childState.pathTemplate = key
			case NodeResponses:
				childState.statusCode = key
			}
		}
		if f.component {
			childState.isComponent = true
		}
		if f.node == NodeOperation && f.shape == single {
			childState.method = key
		}

		if err := w.walkField(c, t, f, childPath, depth, childState); err != nil {
			return err
		}
	}
	return nil
}

// walkField descends into the value of a member according to its shape.
func (w *Walker) walkField(id document.NodeID, owner NodeType, f field, path string, depth int, state *walkState) error {
	childDepth := 0
	if owner.IsSchema() && f.node.IsSchema() {
		childDepth = depth + 1
	}

	kind := w.doc.Kind(id)
	switch {
	case f.shape == mapOf && kind == document.Object:
		for _, e := range w.doc.Children(id) {
			if w.stopped {
				return nil
			}
			if w.doc.Parent(e) != id {
				continue
			}
			key := w.doc.Key(e)
			entryState := state.clone()
			entryState.name = key
			if f.node == NodeOperation {
				entryState.method = key
			}
			if err := w.walkObject(e, f.node, path+member(key), childDepth, entryState); err != nil {
				return err
			}
		}
	case (f.shape == listOf || f.shape == singleOrList) && kind == document.Array:
		for i, e := range w.doc.Children(id) {
			if w.stopped {
				return nil
			}
			if w.doc.Parent(e) != id {
				continue
			}
			if err := w.walkObject(e, f.node, path+"["+strconv.Itoa(i)+"]", childDepth, state); err != nil {
				return err
			}
		}
	case f.shape == single || f.shape == singleOrList:
		return w.walkObject(id, f.node, path, childDepth, state)
	}
	return nil
}

// visitExtension reports a vendor extension. Extension values are opaque and
// never descended into.
func (w *Walker) visitExtension(id document.NodeID, path string, state *walkState) {
	handlers := w.handlers[NodeExtension]
	if len(handlers) == 0 {
		return
	}
	extState := state.clone()
	extState.name = w.doc.Key(id)
	wc := extState.buildContext(w.doc, id, NodeExtension, path)
	for _, h := range handlers {
		w.handleAction(h(wc))
		if w.stopped {
			return
		}
	}
}

// member formats a map key as a JSONPath bracket segment.
func member(key string) string {
	return "['" + strings.ReplaceAll(key, "'", `\'`) + "']"
}
