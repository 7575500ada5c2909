// Package walker provides a document traversal API for OpenAPI specifications.
//
// The walker enables single-pass traversal of OAS 2.0, 3.0.x, 3.1.x, and 3.2.0 documents,
// allowing handlers to receive and optionally mutate nodes. The document tree from
// the document package carries no OpenAPI types; the walker assigns a [NodeType]
// to each object from its position, using a per-version grammar.
//
// # Quick Start
//
// Walk a document and print every property schema:
//
//	doc, _ := document.ParseFile("api.json")
//
//	err := walker.Walk(doc,
//	    walker.WithPropertySchemaHandler(func(wc *walker.WalkContext) walker.Action {
//	        fmt.Println(wc.Name, wc.JSONPath)
//	        return walker.Continue
//	    }),
//	)
//
// # Handlers
//
// [WithHandler] registers a handler for any [NodeType]. Shorthands exist for the
// common ones: [WithDocumentHandler], [WithInfoHandler], [WithPathItemHandler],
// [WithOperationHandler], [WithParameterHandler], [WithResponseHandler],
// [WithSchemaHandler], [WithPropertySchemaHandler] and [WithExtensionHandler].
// A property schema is also a schema: schema handlers run for it first.
//
// Other options: [WithParentTracking] fills [WalkContext.Parent],
// [WithUserContext] makes the walk cancellable, and [WithFilePath] or
// [WithParsed] select the input for [WalkWithOptions].
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: continue traversing children and siblings normally
//   - [SkipChildren]: skip all children of the current node, continue with siblings
//   - [Stop]: stop the entire walk immediately
//
// # Extensions
//
// Members whose name starts with "x-" are reported as [NodeExtension] only when
// the owning object is extensible. Keys of name-keyed maps (properties,
// components.schemas, headers, ...) and members inside opaque values (example,
// default, enum, extension values) are never extensions.
//
// # Mutation
//
// Handlers may edit the document. Members of an object are visited from a
// snapshot taken when the object is entered, and members removed before they
// are reached are skipped, so an extension handler can remove its own member:
//
//	walker.WithExtensionHandler(func(wc *walker.WalkContext) walker.Action {
//	    wc.Document.RemoveMember(wc.Document.Parent(wc.Node), wc.Name)
//	    return walker.Continue
//	})
//
// # Limits
//
// Schema nesting is bounded by [WithMaxDepth] (default 100). Deeper schemas are
// not visited and are reported to the [WithSchemaSkippedHandler] handler with
// the reason "depth". Pass [UnlimitedDepth] to visit every schema, as the
// transformation rules do.
package walker
