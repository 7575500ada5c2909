// Package cliutil provides helpers shared by the oastransform commands:
// terminal output, colored diffs, and the console logger.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// WriteError reports err on w in the "Error: <message>" form used by every
// command when it exits with a failure status.
func WriteError(w io.Writer, err error) {
	if err == nil {
		return
	}
	Writef(w, "Error: %v\n", err)
}
