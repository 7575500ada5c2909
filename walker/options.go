package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/oastransform/document"
)

// Option configures the Walker.
type Option func(*Walker)

// WithHandler registers a handler for nodes of type t. Several handlers may be
// registered for the same type; they run in registration order.
func WithHandler(t NodeType, fn Handler) Option {
	return func(w *Walker) {
		if fn != nil {
			w.handlers[t] = append(w.handlers[t], fn)
		}
	}
}

// WithDocumentHandler sets the handler for the root document object.
func WithDocumentHandler(fn Handler) Option {
	return WithHandler(NodeDocument, fn)
}

// WithInfoHandler sets the handler for Info objects.
func WithInfoHandler(fn Handler) Option {
	return WithHandler(NodeInfo, fn)
}

// WithPathItemHandler sets the handler for PathItem objects.
func WithPathItemHandler(fn Handler) Option {
	return WithHandler(NodePathItem, fn)
}

// WithOperationHandler sets the handler for Operation objects.
func WithOperationHandler(fn Handler) Option {
	return WithHandler(NodeOperation, fn)
}

// WithParameterHandler sets the handler for Parameter objects.
func WithParameterHandler(fn Handler) Option {
	return WithHandler(NodeParameter, fn)
}

// WithResponseHandler sets the handler for Response objects.
func WithResponseHandler(fn Handler) Option {
	return WithHandler(NodeResponse, fn)
}

// WithSchemaHandler sets the handler for every Schema object, including
// property schemas. Use wc.NodeType to tell them apart.
func WithSchemaHandler(fn Handler) Option {
	return WithHandler(NodeSchema, fn)
}

// WithPropertySchemaHandler sets the handler for schemas that are values of a
// "properties" map. wc.Name is the property name.
func WithPropertySchemaHandler(fn Handler) Option {
	return WithHandler(NodePropertySchema, fn)
}

// WithExtensionHandler sets the handler for vendor extensions. wc.Node is the
// extension value, wc.Name the extension name, and the owning object is
// wc.Document.Parent(wc.Node). Returning SkipChildren has no effect.
func WithExtensionHandler(fn Handler) Option {
	return WithHandler(NodeExtension, fn)
}

// WithSchemaSkippedHandler sets a handler called when a schema is skipped.
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSchemaSkipped = fn }
}

// WithMaxDepth sets the maximum recursion depth for schema traversal.
// Default is 100. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
		// If depth <= 0, keep the default (100)
	}
}

// WithUserContext sets the context for cancellation and deadline propagation.
// The context is available to handlers via wc.Context(), and a cancelled
// context ends the walk with the context's error.
func WithUserContext(ctx context.Context) Option {
	return func(w *Walker) {
		w.userCtx = ctx
	}
}

// WithParentTracking enables tracking of parent nodes during traversal.
// When enabled, WalkContext.Parent provides access to ancestor nodes,
// and helper methods like ParentSchema(), ParentOperation(), ParentPathItem(),
// ParentResponse(), Ancestors(), and Depth() become available.
//
// By default, parent tracking is disabled.
func WithParentTracking() Option {
	return func(w *Walker) {
		w.trackParent = true
	}
}

// WithFilePath specifies a file path to parse and walk.
func WithFilePath(path string) Option {
	return func(w *Walker) {
		w.filePath = &path
	}
}

// WithParsed specifies a pre-parsed document to walk.
func WithParsed(doc *document.Document) Option {
	return func(w *Walker) {
		w.parsed = doc
	}
}

// WalkWithOptions walks a document using functional options for input, handlers, and configuration.
//
// Example:
//
//	walker.WalkWithOptions(
//	    walker.WithFilePath("openapi.yaml"),
//	    walker.WithSchemaHandler(func(wc *walker.WalkContext) walker.Action {
//	        fmt.Println(wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
func WalkWithOptions(opts ...Option) error {
	w := New()
	for _, opt := range opts {
		opt(w)
	}

	// Validate input
	if w.parsed == nil && w.filePath == nil {
		return fmt.Errorf("walker: no input source specified: use WithFilePath or WithParsed")
	}
	if w.parsed != nil && w.filePath != nil {
		return fmt.Errorf("walker: multiple input sources specified: use only one")
	}

	doc := w.parsed
	if doc == nil {
		var err error
		doc, err = document.ParseFile(*w.filePath)
		if err != nil {
			return fmt.Errorf("walker: failed to parse: %w", err)
		}
	}

	return w.walk(doc)
}
