package cliutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderDiff_Identical(t *testing.T) {
	assert.Empty(t, RenderDiff("a", "b", "same\n", "same\n", Palette{}))
}

func TestRenderDiff_ChangedLine(t *testing.T) {
	before := "{\n    \"format\": \"date-time\",\n    \"type\": \"string\"\n}"
	after := "{\n    \"format\": \"utc-date\",\n    \"type\": \"string\"\n}"

	got := RenderDiff("in.json", "out.json", before, after, Palette{})

	want := "--- in.json\n" +
		"+++ out.json\n" +
		" {\n" +
		"-    \"format\": \"date-time\",\n" +
		"+    \"format\": \"utc-date\",\n" +
		"     \"type\": \"string\"\n" +
		" }\n"
	assert.Equal(t, want, got)
}

func TestRenderDiff_RemovedLines(t *testing.T) {
	before := "a\nx-one\nx-two\nb\n"
	after := "a\nb\n"

	got := RenderDiff("before", "after", before, after, Palette{})

	assert.Contains(t, got, "-x-one\n")
	assert.Contains(t, got, "-x-two\n")
	assert.NotContains(t, got, "+")
	assert.Contains(t, got, " a\n")
	assert.Contains(t, got, " b\n")
}

func TestRenderDiff_CollapsesLongContext(t *testing.T) {
	var lines []string
	for i := 1; i <= 20; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
	}
	before := strings.Join(lines, "\n") + "\n"
	lines[9] = "changed"
	after := strings.Join(lines, "\n") + "\n"

	got := RenderDiff("before", "after", before, after, Palette{})

	assert.Contains(t, got, "-line 10\n+changed\n")
	assert.Contains(t, got, "...\n line 7\n line 8\n line 9\n")
	assert.Contains(t, got, " line 11\n line 12\n line 13\n...\n")
	assert.NotContains(t, got, " line 1\n")
	assert.NotContains(t, got, " line 20\n")
}

func TestRenderDiff_Colored(t *testing.T) {
	got := RenderDiff("before", "after", "a\n", "b\n", NewPalette(true))
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, "-a")
	assert.Contains(t, got, "+b")
}
