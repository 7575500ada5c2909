// Package document provides an order-preserving tree for OpenAPI Specification documents.
//
// A [Document] stores every JSON value in a single arena and addresses nodes by
// [NodeID]. Parents and children reference each other by index, which makes it
// cheap to remove a member from its parent while a traversal is in progress:
// the removed node is detached (its parent becomes [NoNode]) but its ID stays valid.
//
// # Parsing
//
// JSON and YAML inputs are both accepted. A leading byte order mark is honored.
//
//	doc, err := document.ParseFile("openapi.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(doc.Version, doc.OASVersion)
//
// [WithSourcePath] records where in-memory bytes came from.
// [WithMaxAliasExpansion] and [WithMaxNestingDepth] tune the parser limits.
//
// The root must be an object with an "openapi" (3.0, 3.1 or 3.2) or "swagger"
// ("2.0") member. Anything else is rejected with an [oaserrors.ParseError].
// YAML alias expansion and nesting depth are bounded; exceeding either limit
// returns an [oaserrors.ResourceLimitError].
//
// # Output
//
// [Document.MarshalIndent] writes JSON in source member order:
//
//	out, err := doc.MarshalIndent("", "    ")
//
// Numbers keep their source literal, so "1.0" stays "1.0".
//
// # Addressing
//
// [Document.Pointer] and [Document.Lookup] convert between node IDs and
// RFC 6901 JSON Pointers.
package document
