package cliutil

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// UseColor reports whether w is an interactive terminal.
func UseColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Palette formats diff and summary output. The zero value leaves text unchanged.
type Palette struct {
	Added   func(a ...any) string
	Removed func(a ...any) string
	Header  func(a ...any) string
	Faint   func(a ...any) string
}

// NewPalette returns a Palette that colors output when enabled is true and
// passes text through otherwise.
func NewPalette(enabled bool) Palette {
	if !enabled {
		return Palette{}
	}
	return Palette{
		Added:   sprint(color.FgGreen),
		Removed: sprint(color.FgRed),
		Header:  sprint(color.FgCyan, color.Bold),
		Faint:   sprint(color.Faint),
	}
}

func sprint(attrs ...color.Attribute) func(a ...any) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.SprintFunc()
}

func apply(f func(a ...any) string, s string) string {
	if f == nil {
		return s
	}
	return f(s)
}
