package transformer

import (
	"slices"

	"github.com/erraggy/oastransform/document"
)

// Step is one named transformation of a pipeline.
type Step struct {
	Type  ChangeType
	Apply Transformation
}

// Pipeline is an ordered list of transformations.
type Pipeline []Step

// DefaultPipeline returns the UTC-date rule followed by the extension-stripping rule.
func DefaultPipeline() Pipeline {
	return Pipeline{
		{Type: ChangeTypeUTCDate, Apply: UTCDate},
		{Type: ChangeTypeStripExtension, Apply: StripExtensions},
	}
}

// Only returns the steps whose type is listed, keeping pipeline order.
// An empty list keeps every step.
func (p Pipeline) Only(types ...ChangeType) Pipeline {
	if len(types) == 0 {
		return p
	}
	out := make(Pipeline, 0, len(p))
	for _, s := range p {
		if slices.Contains(types, s.Type) {
			out = append(out, s)
		}
	}
	return out
}

// Types returns the step types in order.
func (p Pipeline) Types() []ChangeType {
	out := make([]ChangeType, len(p))
	for i, s := range p {
		out[i] = s.Type
	}
	return out
}

// Run applies each step in order. The first error stops the pipeline and is
// returned; changes made by earlier steps stay in doc.
func (p Pipeline) Run(doc *document.Document, rec *Recorder) error {
	for _, step := range p {
		before := len(rec.Changes())
		rec.Logger().Debug("applying rule", "rule", string(step.Type))
		if err := step.Apply(doc, rec); err != nil {
			return err
		}
		rec.Logger().Debug("rule applied", "rule", string(step.Type), "changes", len(rec.Changes())-before)
	}
	return nil
}
