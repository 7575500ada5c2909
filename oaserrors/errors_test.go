package oaserrors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *ParseError
		want string
	}{
		{
			name: "all fields",
			err: &ParseError{
				Path:    "/path/to/file.json",
				Line:    42,
				Column:  10,
				Message: "invalid syntax",
				Cause:   errors.New("underlying error"),
			},
			want: "parse error in /path/to/file.json at line 42, column 10: invalid syntax: underlying error",
		},
		{name: "minimal", err: &ParseError{}, want: "parse error"},
		{name: "path only", err: &ParseError{Path: "api.json"}, want: "parse error in api.json"},
		{name: "line without column", err: &ParseError{Line: 10}, want: "parse error at line 10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestParseError_Chain(t *testing.T) {
	err := fmt.Errorf("transformer: %w", &ParseError{Path: "missing.json", Cause: fs.ErrNotExist})

	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.False(t, errors.Is(err, ErrTransform))

	var pErr *ParseError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, "missing.json", pErr.Path)
}

func TestTransformError(t *testing.T) {
	err := &TransformError{
		Rule:    "utc-date",
		Path:    "$.components.schemas['Foo'].properties['ts']",
		Line:    7,
		Message: "format must be a string",
	}
	assert.Equal(t, "transform error (utc-date) at $.components.schemas['Foo'].properties['ts'] (line 7): format must be a string", err.Error())
	assert.True(t, errors.Is(err, ErrTransform))
	assert.False(t, errors.Is(err, ErrParse))
	assert.Nil(t, err.Unwrap())

	assert.Equal(t, "transform error", (&TransformError{}).Error())
}

func TestOutputError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &OutputError{Path: "out.json", Message: "writing output file", Cause: cause}

	assert.Equal(t, "output error for out.json: writing output file: permission denied", err.Error())
	assert.True(t, errors.Is(err, ErrOutput))
	assert.True(t, errors.Is(err, cause))
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "alias_expansion", Limit: 10000, Actual: 10001}
	assert.Equal(t, "resource limit exceeded: alias_expansion (limit: 10000, actual: 10001)", err.Error())
	assert.True(t, errors.Is(err, ErrResourceLimit))

	assert.Equal(t, "resource limit exceeded", (&ResourceLimitError{}).Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "rules", Value: "bogus", Message: "unknown rule"}
	assert.Equal(t, "configuration error for rules (value: bogus): unknown rule", err.Error())
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Nil(t, err.Unwrap())
}
