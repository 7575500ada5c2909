package transformer

import (
	"fmt"
	"strings"

	"github.com/erraggy/oastransform/oaserrors"
)

// ChangeType identifies the rule that produced a change
type ChangeType string

const (
	// ChangeTypeUTCDate indicates a property schema format was rewritten from "date-time" to "utc-date"
	ChangeTypeUTCDate ChangeType = "utc-date"
	// ChangeTypeStripExtension indicates a vendor extension was removed
	ChangeTypeStripExtension ChangeType = "strip-extension"
)

// AllChangeTypes returns every change type in pipeline order.
func AllChangeTypes() []ChangeType {
	return []ChangeType{ChangeTypeUTCDate, ChangeTypeStripExtension}
}

// ParseChangeType converts a rule name to a ChangeType.
func ParseChangeType(s string) (ChangeType, error) {
	for _, t := range AllChangeTypes() {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", &oaserrors.ConfigError{
		Option:  "rules",
		Value:   s,
		Message: fmt.Sprintf("unknown rule (valid rules: %s, %s)", ChangeTypeUTCDate, ChangeTypeStripExtension),
	}
}

// ParseChangeTypes converts a comma-separated list of rule names.
// Empty entries are ignored.
func ParseChangeTypes(list string) ([]ChangeType, error) {
	var types []ChangeType
	for _, s := range strings.Split(list, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		t, err := ParseChangeType(s)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, nil
}

// Change represents a single change applied to the document
type Change struct {
	// Type identifies the rule that made the change
	Type ChangeType
	// Path is the JSON path to the changed location (e.g., "$.components.schemas['Pet'].properties['createdAt']")
	Path string
	// Pointer is the RFC 6901 JSON Pointer to the changed member in the document
	// as it was when the change was made
	Pointer string
	// Description is a human-readable description of the change
	Description string
	// Before is the value before the change
	Before any
	// After is the value after the change (nil for removals)
	After any
	// Line is the 1-based source line of the changed member (0 if unknown)
	Line int
	// Column is the 1-based source column of the changed member (0 if unknown)
	Column int
}

// String returns a one-line summary of the change.
func (c Change) String() string {
	if c.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", c.Type, c.Description, c.Line)
	}
	return fmt.Sprintf("%s: %s", c.Type, c.Description)
}

// Recorder collects the changes made by transformations.
// A nil *Recorder discards changes.
type Recorder struct {
	changes []Change
	logger  Logger
}

// NewRecorder creates a Recorder. A nil logger discards log output.
func NewRecorder(logger Logger) *Recorder {
	if logger == nil {
		logger = NopLogger{}
	}
	return &Recorder{changes: make([]Change, 0), logger: logger}
}

// Record appends a change.
func (r *Recorder) Record(c Change) {
	if r == nil {
		return
	}
	r.changes = append(r.changes, c)
	r.logger.Debug("change applied", "rule", string(c.Type), "path", c.Path)
}

// Changes returns the recorded changes in the order they were made.
func (r *Recorder) Changes() []Change {
	if r == nil {
		return nil
	}
	return r.changes
}

// Logger returns the recorder's logger.
func (r *Recorder) Logger() Logger {
	if r == nil || r.logger == nil {
		return NopLogger{}
	}
	return r.logger
}
