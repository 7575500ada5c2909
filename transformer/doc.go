// Package transformer normalizes OpenAPI Specification documents by running a
// fixed pipeline of rules over a parsed document.
//
// Each rule is a [Transformation]: a plain function that performs one full
// walk of the document, mutates matching nodes in place and records what it
// changed. The [DefaultPipeline] runs two rules in order:
//
//   - utc-date: every property schema (a value of a "properties" map) whose
//     format is exactly "date-time" gets the format "utc-date"
//   - strip-extension: every vendor extension ("x-*" member of an extensible
//     OpenAPI object) is removed from its owner
//
// The rules touch disjoint parts of the document, so either order gives the
// same result, and running the pipeline twice changes nothing the second time.
//
// # Quick Start
//
// Transform a file using functional options:
//
//	result, err := transformer.TransformWithOptions(
//		transformer.WithFilePath("openapi.json"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d changes\n", result.ChangeCount)
//	out, err := result.Output() // four-space indented JSON
//
// Or use a reusable Transformer instance:
//
//	t := transformer.New()
//	t.EnabledRules = []transformer.ChangeType{transformer.ChangeTypeStripExtension}
//	result1, _ := t.Transform("api1.json")
//	result2, _ := t.Transform("api2.json")
//
// # Options
//
//   - [WithFilePath]: parse and transform a file
//   - [WithDocument]: transform an already-parsed document
//   - [WithPipeline]: run a custom ordered list of steps instead of [DefaultPipeline]
//   - [WithEnabledRules]: run only the named rules (pipeline order is kept)
//   - [WithDryRun]: compute the changes and return the unmodified document
//   - [WithLogger]: receive structured log output
//
// # Failure Semantics
//
// A run is all-or-nothing. The first rule that fails stops the pipeline and
// no [Result] is returned; nothing partial is exposed. Rules work on a copy of
// the input, so a document passed with [WithDocument] is never modified.
//
// # Patches
//
// [Result.Patch] renders the changes as an RFC 6902 JSON Patch, and
// [VerifyPatch] checks that applying it to the input yields the output.
package transformer
