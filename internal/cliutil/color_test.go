package cliutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseColor(t *testing.T) {
	assert.False(t, UseColor(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, UseColor(f), "regular files are not terminals")
}

func TestNewPalette(t *testing.T) {
	plain := NewPalette(false)
	assert.Equal(t, "+added", apply(plain.Added, "+added"))
	assert.Equal(t, "-removed", apply(plain.Removed, "-removed"))

	colored := NewPalette(true)
	out := apply(colored.Added, "+added")
	assert.Contains(t, out, "+added")
	assert.Contains(t, out, "\x1b[")
	assert.NotEqual(t, apply(colored.Added, "x"), apply(colored.Removed, "x"))
}
