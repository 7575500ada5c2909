// Package testutil provides test utilities and fixtures for unit tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oastransform/document"
)

// ParseString parses an inline JSON or YAML document, failing the test on error.
func ParseString(t testing.TB, s string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(s))
	if err != nil {
		t.Fatalf("Failed to parse document: %v", err)
	}
	return doc
}

// ParseFixture parses a document from disk, failing the test on error.
func ParseFixture(t testing.TB, path string) *document.Document {
	t.Helper()
	doc, err := document.ParseFile(path)
	if err != nil {
		t.Fatalf("Failed to parse fixture %s: %v", path, err)
	}
	return doc
}

// WriteTempFile writes content to name inside a fresh temporary directory and
// returns the file path.
func WriteTempFile(t testing.TB, name, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}

	return tmpFile
}

// WriteTempYAML marshals doc to YAML and writes it to a temporary file.
// Returns the path to the file.
func WriteTempYAML(t testing.TB, doc any) string {
	t.Helper()

	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return WriteTempFile(t, "test.yaml", string(data))
}

// WriteTempJSON marshals doc to JSON and writes it to a temporary file.
// Returns the path to the file.
func WriteTempJSON(t testing.TB, doc any) string {
	t.Helper()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return WriteTempFile(t, "test.json", string(data))
}
