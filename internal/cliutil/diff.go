package cliutil

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// DiffContext is the number of unchanged lines shown around each change.
const DiffContext = 3

// RenderDiff returns a line-oriented diff from before to after. Removed lines
// are prefixed with "-", added lines with "+", and unchanged context lines
// with a space. Runs of unchanged lines longer than the context are collapsed
// into a single "..." line. Identical inputs produce an empty string.
func RenderDiff(beforeName, afterName, before, after string, p Palette) string {
	if before == after {
		return ""
	}

	dmp := diffpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString(apply(p.Header, "--- "+beforeName))
	sb.WriteByte('\n')
	sb.WriteString(apply(p.Header, "+++ "+afterName))
	sb.WriteByte('\n')

	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffpatch.DiffDelete:
			for _, l := range text {
				sb.WriteString(apply(p.Removed, "-"+l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffInsert:
			for _, l := range text {
				sb.WriteString(apply(p.Added, "+"+l))
				sb.WriteByte('\n')
			}
		case diffpatch.DiffEqual:
			writeContext(&sb, text, i == 0, i == len(diffs)-1, p)
		}
	}
	return sb.String()
}

// writeContext writes the unchanged lines that border a change. Leading
// context keeps only its tail, trailing context only its head.
func writeContext(sb *strings.Builder, text []string, first, last bool, p Palette) {
	head, tail := DiffContext, DiffContext
	if first {
		head = 0
	}
	if last {
		tail = 0
	}
	if head+tail >= len(text) {
		for _, l := range text {
			sb.WriteString(" " + l + "\n")
		}
		return
	}
	for _, l := range text[:head] {
		sb.WriteString(" " + l + "\n")
	}
	sb.WriteString(apply(p.Faint, "..."))
	sb.WriteByte('\n')
	for _, l := range text[len(text)-tail:] {
		sb.WriteString(" " + l + "\n")
	}
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}
