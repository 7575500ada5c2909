package transformer

import (
	"fmt"

	"github.com/erraggy/oastransform/document"
	"github.com/erraggy/oastransform/oaserrors"
	"github.com/erraggy/oastransform/walker"
)

const (
	formatDateTime = "date-time"
	formatUTCDate  = "utc-date"
)

// Transformation is one rule of the pipeline. It performs a full walk of doc,
// mutating matching nodes in place and recording each change on rec.
// A fault stops the walk and is returned as an *oaserrors.TransformError;
// mutations made before the fault are not undone.
type Transformation func(doc *document.Document, rec *Recorder) error

// fullWalk returns the walker options every rule uses: no schema depth limit,
// and a schema the walker still skips becomes a fault, since a rule must
// reach every node.
func fullWalk(rule ChangeType, fault *error) []walker.Option {
	return []walker.Option{
		walker.WithMaxDepth(walker.UnlimitedDepth),
		walker.WithSchemaSkippedHandler(func(wc *walker.WalkContext, reason string) {
			if *fault == nil {
				*fault = &oaserrors.TransformError{
					Rule:    string(rule),
					Path:    wc.JSONPath,
					Line:    wc.Line(),
					Message: fmt.Sprintf("schema not visited (%s)", reason),
				}
			}
		}),
	}
}

// UTCDate rewrites the format of every property schema from "date-time" to
// "utc-date". Any other format, including one that is not a string, is left
// alone.
func UTCDate(doc *document.Document, rec *Recorder) error {
	var fault error

	opts := append(fullWalk(ChangeTypeUTCDate, &fault),
		walker.WithPropertySchemaHandler(func(wc *walker.WalkContext) walker.Action {
			format, ok := doc.Member(wc.Node, "format")
			if !ok {
				return walker.Continue
			}
			if value, isString := doc.StringValue(format); !isString || value != formatDateTime {
				return walker.Continue
			}

			pointer, _ := doc.Pointer(format)
			doc.SetString(format, formatUTCDate)
			rec.Record(Change{
				Type:        ChangeTypeUTCDate,
				Path:        wc.JSONPath,
				Pointer:     pointer,
				Description: fmt.Sprintf("Changed format of property '%s' from %s to %s", wc.Name, formatDateTime, formatUTCDate),
				Before:      formatDateTime,
				After:       formatUTCDate,
				Line:        doc.Line(format),
				Column:      doc.Column(format),
			})
			return walker.Continue
		}),
	)
	if err := walker.Walk(doc, opts...); err != nil {
		return &oaserrors.TransformError{Rule: string(ChangeTypeUTCDate), Message: "walk failed", Cause: err}
	}
	return fault
}

// StripExtensions removes every vendor extension from its owning object.
// Extensions are only recognized on extensible OpenAPI objects, so "x-" keys
// in name-keyed maps and opaque values survive.
func StripExtensions(doc *document.Document, rec *Recorder) error {
	var fault error

	opts := append(fullWalk(ChangeTypeStripExtension, &fault),
		walker.WithParentTracking(),
		walker.WithExtensionHandler(func(wc *walker.WalkContext) walker.Action {
			owner := doc.Parent(wc.Node)
			if owner == document.NoNode {
				fault = &oaserrors.TransformError{
					Rule:    string(ChangeTypeStripExtension),
					Path:    wc.JSONPath,
					Message: "extension has no owning object",
				}
				return walker.Stop
			}

			pointer, _ := doc.Pointer(wc.Node)
			before := doc.Value(wc.Node)
			line, column := doc.Line(wc.Node), doc.Column(wc.Node)

			if _, ok := doc.RemoveMember(owner, wc.Name); !ok {
				fault = &oaserrors.TransformError{
					Rule:    string(ChangeTypeStripExtension),
					Path:    wc.JSONPath,
					Line:    line,
					Message: fmt.Sprintf("failed to remove extension %q", wc.Name),
				}
				return walker.Stop
			}

			ownerType := "object"
			if wc.Parent != nil {
				ownerType = wc.Parent.NodeType.String()
			}
			rec.Record(Change{
				Type:        ChangeTypeStripExtension,
				Path:        wc.JSONPath,
				Pointer:     pointer,
				Description: fmt.Sprintf("Removed extension '%s' from %s", wc.Name, ownerType),
				Before:      before,
				Line:        line,
				Column:      column,
			})
			return walker.Continue
		}),
	)
	if err := walker.Walk(doc, opts...); err != nil {
		return &oaserrors.TransformError{Rule: string(ChangeTypeStripExtension), Message: "walk failed", Cause: err}
	}
	return fault
}
