package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastransform/document"
	"github.com/erraggy/oastransform/internal/testutil"
	"github.com/erraggy/oastransform/oaserrors"
	"github.com/erraggy/oastransform/transformer"
)

const scenarioDateTime = `{"openapi":"3.0.0","components":{"schemas":{"Foo":{"properties":{"ts":{"type":"string","format":"date-time"}}}}}}`

const scenarioDateTimeWant = `{
    "openapi": "3.0.0",
    "components": {
        "schemas": {
            "Foo": {
                "properties": {
                    "ts": {
                        "type": "string",
                        "format": "utc-date"
                    }
                }
            }
        }
    }
}`

func runTransform(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = RunTransform(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestSetupTransformFlags(t *testing.T) {
	fs, flags := SetupTransformFlags()

	t.Run("default values", func(t *testing.T) {
		assert.False(t, flags.Quiet)
		assert.False(t, flags.Verbose)
		assert.False(t, flags.DryRun)
		assert.False(t, flags.Diff)
		assert.Empty(t, flags.Patch)
		assert.Empty(t, flags.Rules)
	})

	t.Run("parse flags", func(t *testing.T) {
		args := []string{"-q", "-v", "--dry-run", "--diff", "--patch", "p.json", "--rules", "utc-date", "in.yaml", "out.json"}
		require.NoError(t, fs.Parse(args))

		assert.True(t, flags.Quiet)
		assert.True(t, flags.Verbose)
		assert.True(t, flags.DryRun)
		assert.True(t, flags.Diff)
		assert.Equal(t, "p.json", flags.Patch)
		assert.Equal(t, "utc-date", flags.Rules)
		assert.Equal(t, []string{"in.yaml", "out.json"}, fs.Args())
	})

	t.Run("long flags", func(t *testing.T) {
		fs2, flags2 := SetupTransformFlags()
		require.NoError(t, fs2.Parse([]string{"--quiet", "--verbose", "in.yaml", "out.json"}))
		assert.True(t, flags2.Quiet)
		assert.True(t, flags2.Verbose)
	})
}

func TestRunTransform_DateTimeScenario(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)
	out := filepath.Join(filepath.Dir(in), "out.json")

	stdout, _, err := runTransform(t, in, out)
	require.NoError(t, err)

	assert.Equal(t, "Transforming OpenAPI specification at: "+in+"\nTransformation completed successfully!\n", stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, scenarioDateTimeWant, string(data))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRunTransform_ExtensionScenario(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{"openapi":"3.0.0","info":{"title":"T","x-internal-id":"abc123","version":"1"}}`)
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, _, err := runTransform(t, "-q", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"openapi\": \"3.0.0\",\n    \"info\": {\n        \"title\": \"T\",\n        \"version\": \"1\"\n    }\n}", string(data))
}

func TestRunTransform_InPlace(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)

	_, _, err := runTransform(t, "-q", in, in)
	require.NoError(t, err)

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, scenarioDateTimeWant, string(data))
}

func TestRunTransform_NoChangesScenario(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.yaml", "openapi: 3.0.0\ninfo:\n  title: T\n  version: '1'\npaths: {}\n")
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, _, err := runTransform(t, "-q", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"openapi":"3.0.0","info":{"title":"T","version":"1"},"paths":{}}`, string(data))
}

func TestRunTransform_UnreadableInput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")

	stdout, _, err := runTransform(t, filepath.Join(dir, "missing.json"), out)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
	assert.NotContains(t, stdout, "completed")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output file is created")
}

func TestRunTransform_RuleFailureWritesNothing(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)
	out := filepath.Join(filepath.Dir(in), "out.json")

	var stdout, stderr bytes.Buffer
	job, err := newTransformJob(in, out, &TransformFlags{}, &stdout, &stderr)
	require.NoError(t, err)
	job.pipeline = append(transformer.DefaultPipeline(), transformer.Step{
		Type: "fail",
		Apply: func(*document.Document, *transformer.Recorder) error {
			return &oaserrors.TransformError{Rule: "fail", Message: "cannot apply"}
		},
	})

	err = job.run()
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrTransform)
	assert.NotContains(t, stdout.String(), "completed")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunTransform_NonStringFormatPassesThrough(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{"openapi":"3.0.0","components":{"schemas":{"A":{"properties":{"n":{"format":42}}}}}}`)
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, _, err := runTransform(t, "-q", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format": 42`)
}

func TestRunTransform_DryRun(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)
	out := filepath.Join(filepath.Dir(in), "out.json")
	patch := filepath.Join(filepath.Dir(in), "patch.json")

	stdout, _, err := runTransform(t, "--dry-run", "--patch", patch, in, out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Transformation completed successfully!")

	for _, p := range []string{out, patch} {
		_, statErr := os.Stat(p)
		assert.True(t, os.IsNotExist(statErr), "%s must not be written on a dry run", p)
	}
}

func TestRunTransform_Diff(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, stderr, err := runTransform(t, "-q", "--diff", in, out)
	require.NoError(t, err)

	assert.Contains(t, stderr, "--- "+in)
	assert.Contains(t, stderr, "+++ "+out)
	assert.Contains(t, stderr, "-                        \"format\": \"date-time\"")
	assert.Contains(t, stderr, "+                        \"format\": \"utc-date\"")
}

func TestRunTransform_Patch(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{"openapi":"3.0.0","info":{"title":"T","version":"1","x-a":1}}`)
	out := filepath.Join(filepath.Dir(in), "out.json")
	patch := filepath.Join(filepath.Dir(in), "patch.json")

	_, _, err := runTransform(t, "-q", "--patch", patch, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(patch)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"op":"remove","path":"/info/x-a"}]`, string(data))
}

func TestRunTransform_Rules(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", `{"openapi":"3.0.0","info":{"title":"T","version":"1","x-a":1},"components":{"schemas":{"A":{"properties":{"t":{"format":"date-time"}}}}}}`)
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, _, err := runTransform(t, "-q", "--rules", "utc-date", in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"x-a": 1`)
	assert.Contains(t, string(data), `"format": "utc-date"`)
}

func TestRunTransform_UnknownRule(t *testing.T) {
	_, _, err := runTransform(t, "--rules", "bogus", "in.json", "out.json")
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestRunTransform_Verbose(t *testing.T) {
	in := testutil.WriteTempFile(t, "in.json", scenarioDateTime)
	out := filepath.Join(filepath.Dir(in), "out.json")

	_, stderr, err := runTransform(t, "-q", "-v", in, out)
	require.NoError(t, err)

	assert.Contains(t, stderr, "Changed format of property 'ts' from date-time to utc-date")
	assert.Contains(t, stderr, "run=")
}

func TestRunTransform_Usage(t *testing.T) {
	t.Run("missing arguments", func(t *testing.T) {
		_, stderr, err := runTransform(t, "only-input.json")
		require.Error(t, err)
		assert.Contains(t, stderr, "Usage: oastransform transform")
	})

	t.Run("help", func(t *testing.T) {
		_, stderr, err := runTransform(t, "--help")
		require.NoError(t, err)
		assert.Contains(t, stderr, "strip-extension")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, _, err := runTransform(t, "--bogus", "in.json", "out.json")
		assert.Error(t, err)
	})
}

func TestValidateOutputPath(t *testing.T) {
	assert.NoError(t, ValidateOutputPath("out.json", "in.json"))

	err := ValidateOutputPath("./in.json", "in.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "would overwrite input file")
}
