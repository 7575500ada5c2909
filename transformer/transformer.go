package transformer

import (
	"fmt"
	"time"

	"github.com/erraggy/oastransform/document"
	"github.com/erraggy/oastransform/oaserrors"
	"github.com/erraggy/oastransform/walker"
)

// OutputIndent is the indentation used for transformed documents.
const OutputIndent = "    "

// Result contains the results of a transform operation
type Result struct {
	// Document is the transformed document. For a dry run it is the unmodified input.
	Document *document.Document
	// SourceVersion is the detected source OAS version string
	SourceVersion string
	// SourceOASVersion is the enumerated source OAS version
	SourceOASVersion document.OASVersion
	// SourceFormat is the format of the source file (JSON or YAML)
	SourceFormat document.SourceFormat
	// SourcePath is the path to the source file
	SourcePath string
	// Rules lists the rules that ran, in order
	Rules []ChangeType
	// Changes contains all changes applied, in order
	Changes []Change
	// ChangeCount is the total number of changes applied
	ChangeCount int
	// DryRun is true if the changes were computed but not kept
	DryRun bool
	// Stats contains statistical information about the input document
	Stats *walker.Stats
	// Duration is the time spent running the pipeline
	Duration time.Duration
	// Success is true if the pipeline completed without errors
	Success bool
}

// HasChanges returns true if any changes were applied
func (r *Result) HasChanges() bool {
	return r.ChangeCount > 0
}

// ChangesOfType returns the changes made by one rule.
func (r *Result) ChangesOfType(t ChangeType) []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Output serializes the document as JSON with four-space indentation and no
// trailing newline.
func (r *Result) Output() ([]byte, error) {
	data, err := r.Document.MarshalIndent("", OutputIndent)
	if err != nil {
		return nil, &oaserrors.OutputError{Path: r.SourcePath, Message: "failed to serialize document", Cause: err}
	}
	return data, nil
}

// Transformer applies the rule pipeline to OpenAPI documents
type Transformer struct {
	// Pipeline is the ordered rule set. If nil, DefaultPipeline is used.
	Pipeline Pipeline
	// EnabledRules specifies which rules to apply.
	// If nil or empty, all rules are applied.
	EnabledRules []ChangeType
	// DryRun computes changes without keeping them in the returned document.
	DryRun bool
	// Logger receives structured log output. Defaults to NopLogger.
	Logger Logger
}

// New creates a new Transformer instance with default settings
func New() *Transformer {
	return &Transformer{
		EnabledRules: nil, // all rules enabled
		Logger:       NopLogger{},
	}
}

// Option is a function that configures a transform operation
type Option func(*transformConfig) error

// transformConfig holds configuration for a transform operation
type transformConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	doc      *document.Document

	// Configuration options
	pipeline     Pipeline
	enabledRules []ChangeType
	dryRun       bool
	logger       Logger
}

// TransformWithOptions transforms an OpenAPI specification using functional options.
//
// Example:
//
//	result, err := transformer.TransformWithOptions(
//	    transformer.WithFilePath("openapi.json"),
//	    transformer.WithEnabledRules(transformer.ChangeTypeUTCDate),
//	)
func TransformWithOptions(opts ...Option) (*Result, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("transformer: invalid options: %w", err)
	}

	t := &Transformer{
		Pipeline:     cfg.pipeline,
		EnabledRules: cfg.enabledRules,
		DryRun:       cfg.dryRun,
		Logger:       cfg.logger,
	}

	if cfg.filePath != nil {
		return t.Transform(*cfg.filePath)
	}
	return t.TransformDocument(cfg.doc)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*transformConfig, error) {
	cfg := &transformConfig{logger: NopLogger{}}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate that exactly one input source is specified
	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.doc != nil {
		sources++
	}

	if sources == 0 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "no input source specified: use WithFilePath or WithDocument"}
	}
	if sources > 1 {
		return nil, &oaserrors.ConfigError{Option: "input", Message: "multiple input sources specified: use only one of WithFilePath or WithDocument"}
	}

	return cfg, nil
}

// WithFilePath specifies the file path to transform
func WithFilePath(path string) Option {
	return func(cfg *transformConfig) error {
		if path == "" {
			return &oaserrors.ConfigError{Option: "file path", Message: "file path cannot be empty"}
		}
		cfg.filePath = &path
		return nil
	}
}

// WithDocument specifies an already-parsed document to transform.
// The document itself is not modified.
func WithDocument(doc *document.Document) Option {
	return func(cfg *transformConfig) error {
		if doc == nil {
			return &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
		}
		cfg.doc = doc
		return nil
	}
}

// WithPipeline replaces the default rule pipeline. Steps run in the order
// given; WithEnabledRules still filters them by type.
func WithPipeline(p Pipeline) Option {
	return func(cfg *transformConfig) error {
		if len(p) == 0 {
			return &oaserrors.ConfigError{Option: "pipeline", Message: "pipeline cannot be empty"}
		}
		for i, step := range p {
			if step.Apply == nil {
				return &oaserrors.ConfigError{Option: "pipeline", Message: fmt.Sprintf("step %d (%s) has no transformation", i, step.Type)}
			}
		}
		cfg.pipeline = p
		return nil
	}
}

// WithEnabledRules specifies which rules to apply
func WithEnabledRules(rules ...ChangeType) Option {
	return func(cfg *transformConfig) error {
		for _, r := range rules {
			if _, err := ParseChangeType(string(r)); err != nil {
				return err
			}
		}
		cfg.enabledRules = rules
		return nil
	}
}

// WithDryRun computes changes without keeping them in the result document
func WithDryRun(dryRun bool) Option {
	return func(cfg *transformConfig) error {
		cfg.dryRun = dryRun
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger Logger) Option {
	return func(cfg *transformConfig) error {
		if logger != nil {
			cfg.logger = logger
		}
		return nil
	}
}

// Transform parses and transforms an OpenAPI specification file
func (t *Transformer) Transform(specPath string) (*Result, error) {
	t.logger().Debug("parsing specification", "path", specPath)
	doc, err := document.ParseFile(specPath)
	if err != nil {
		return nil, fmt.Errorf("transformer: failed to parse specification: %w", err)
	}
	return t.TransformDocument(doc)
}

// TransformDocument transforms an already-parsed document. The pipeline runs
// on a copy, so doc is never modified. If any rule fails, no result is
// returned.
func (t *Transformer) TransformDocument(doc *document.Document) (*Result, error) {
	if doc == nil {
		return nil, fmt.Errorf("transformer: nil document")
	}
	logger := t.logger().With("source", doc.SourcePath, "version", doc.Version)

	stats, err := walker.CollectStats(doc)
	if err != nil {
		return nil, fmt.Errorf("transformer: failed to collect statistics: %w", err)
	}

	pipeline := t.Pipeline
	if pipeline == nil {
		pipeline = DefaultPipeline()
	}
	pipeline = pipeline.Only(t.EnabledRules...)
	working := doc.Clone()
	rec := NewRecorder(logger)

	start := time.Now()
	if err := pipeline.Run(working, rec); err != nil {
		logger.Error("transformation failed", "error", err)
		return nil, fmt.Errorf("transformer: %w", err)
	}

	result := &Result{
		Document:         working,
		SourceVersion:    doc.Version,
		SourceOASVersion: doc.OASVersion,
		SourceFormat:     doc.SourceFormat,
		SourcePath:       doc.SourcePath,
		Rules:            pipeline.Types(),
		Changes:          rec.Changes(),
		ChangeCount:      len(rec.Changes()),
		DryRun:           t.DryRun,
		Stats:            stats,
		Duration:         time.Since(start),
		Success:          true,
	}
	if t.DryRun {
		result.Document = doc.Clone()
	}

	logger.Info("transformation complete", "changes", result.ChangeCount, "dry_run", t.DryRun)
	return result, nil
}

func (t *Transformer) logger() Logger {
	if t.Logger == nil {
		return NopLogger{}
	}
	return t.Logger
}
