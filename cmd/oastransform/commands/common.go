// Package commands provides CLI command handlers for oastransform.
package commands

import (
	"fmt"
	"path/filepath"
)

// Progress messages printed on stdout by transform and watch.
const (
	msgTransforming = "Transforming OpenAPI specification at: %s\n"
	msgCompleted    = "Transformation completed successfully!"
)

// ValidateOutputPath rejects an output path that resolves to the input path.
func ValidateOutputPath(outputPath, inputPath string) error {
	absOutputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	absInputPath, err := filepath.Abs(inputPath)
	if err != nil {
		return fmt.Errorf("invalid input path %s: %w", inputPath, err)
	}
	if absOutputPath == absInputPath {
		return fmt.Errorf("output file %s would overwrite input file %s", outputPath, inputPath)
	}
	return nil
}
