// Package oastransform normalizes OpenAPI Specification (OAS) documents by applying
// a fixed pipeline of structural rules and writing the result as pretty-printed JSON.
//
// Two rules ship with the module:
//
//   - utc-date: every property schema whose format is "date-time" is rewritten to "utc-date"
//   - strip-extension: every vendor extension (x-* member of an extensible object) is removed
//
// Both OAS 2.0 (Swagger) and OAS 3.x documents are supported.
//
// # Packages
//
//   - document: order-preserving, index-based document tree with parse and JSON output
//   - walker: depth-first OpenAPI-aware traversal with per-node-type handlers
//   - transformer: the rules, the pipeline, change records and JSON Patch output
//   - oaserrors: structured error types for errors.Is and errors.As
//
// # Quick Start
//
// Transform a file using functional options:
//
//	import "github.com/erraggy/oastransform/transformer"
//
//	result, err := transformer.TransformWithOptions(
//		transformer.WithFilePath("openapi.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := result.Document.MarshalIndent("", "    ")
//
// Or walk a document yourself:
//
//	doc, err := document.ParseFile("openapi.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	err = walker.Walk(doc,
//		walker.WithPropertySchemaHandler(func(wc *walker.WalkContext) walker.Action {
//			fmt.Println(wc.JSONPath)
//			return walker.Continue
//		}),
//	)
//
// # Command Line
//
//	oastransform transform openapi.json normalized.json
//
// See cmd/oastransform for the full command reference.
package oastransform
