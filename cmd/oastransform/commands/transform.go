package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/erraggy/oastransform/document"
	"github.com/erraggy/oastransform/internal/cliutil"
	"github.com/erraggy/oastransform/internal/fileutil"
	"github.com/erraggy/oastransform/oaserrors"
	"github.com/erraggy/oastransform/transformer"
)

// TransformFlags contains flags for the transform command
type TransformFlags struct {
	Quiet   bool
	Verbose bool
	DryRun  bool
	Diff    bool
	Patch   string
	Rules   string
}

// bindTransformFlags registers the transform flags on fs.
func bindTransformFlags(fs *flag.FlagSet, flags *TransformFlags) {
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: no progress messages")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: no progress messages")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose mode: log every rule and change to stderr")
	fs.BoolVar(&flags.Verbose, "verbose", false, "verbose mode: log every rule and change to stderr")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "run the transformation without writing any file")
	fs.BoolVar(&flags.Diff, "diff", false, "print a line diff of the changes to stderr")
	fs.StringVar(&flags.Patch, "patch", "", "also write the changes as an RFC 6902 JSON Patch to this file")
	fs.StringVar(&flags.Rules, "rules", "", "comma-separated rules to apply (default: all)")
}

// SetupTransformFlags creates and configures a FlagSet for the transform command.
// Returns the FlagSet and a TransformFlags struct with bound flag variables.
func SetupTransformFlags() (*flag.FlagSet, *TransformFlags) {
	fs := flag.NewFlagSet("transform", flag.ContinueOnError)
	flags := &TransformFlags{}
	bindTransformFlags(fs, flags)

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastransform transform [flags] <inputSpec> <outputSpec>\n\n")
		cliutil.Writef(fs.Output(), "Apply transformation rules to an OpenAPI specification and write the result as JSON.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		writeRulesHelp(fs.Output())
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oastransform transform openapi.yaml openapi.out.json\n")
		cliutil.Writef(fs.Output(), "  oastransform transform --rules utc-date swagger.json out.json\n")
		cliutil.Writef(fs.Output(), "  oastransform transform --dry-run --diff openapi.json out.json\n")
		cliutil.Writef(fs.Output(), "  oastransform transform --patch changes.json openapi.json out.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - Output is always JSON with four-space indentation\n")
		cliutil.Writef(fs.Output(), "  - The output file is only written when every rule succeeds\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Transformation completed\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, transform, or write the specification\n")
	}

	return fs, flags
}

func writeRulesHelp(w io.Writer) {
	cliutil.Writef(w, "\nRules (applied in this order):\n")
	cliutil.Writef(w, "  utc-date          Property schemas with format date-time get format utc-date\n")
	cliutil.Writef(w, "  strip-extension   Vendor extensions (x-*) are removed from OpenAPI objects\n")
}

// HandleTransform executes the transform command
func HandleTransform(args []string) error {
	return RunTransform(args, os.Stdout, os.Stderr)
}

// RunTransform executes the transform command with explicit output streams.
func RunTransform(args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupTransformFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("transform command requires an input and an output file path")
	}

	job, err := newTransformJob(fs.Arg(0), fs.Arg(1), flags, stdout, stderr)
	if err != nil {
		return err
	}
	return job.run()
}

// transformJob is one configured transform run. Watch reuses a job for
// every change of the input file.
type transformJob struct {
	input  string
	output string
	flags  *TransformFlags
	rules  []transformer.ChangeType
	stdout io.Writer
	stderr io.Writer
	logger zerolog.Logger

	// pipeline overrides the default rules when set.
	pipeline transformer.Pipeline
}

func newTransformJob(input, output string, flags *TransformFlags, stdout, stderr io.Writer) (*transformJob, error) {
	rules, err := transformer.ParseChangeTypes(flags.Rules)
	if err != nil {
		return nil, err
	}
	return &transformJob{
		input:  input,
		output: output,
		flags:  flags,
		rules:  rules,
		stdout: stdout,
		stderr: stderr,
		logger: cliutil.NewConsoleLogger(stderr, flags.Verbose),
	}, nil
}

// run performs a single transformation. Nothing is written unless parsing,
// every rule, serialization, and patch verification succeed.
func (j *transformJob) run() error {
	if !j.flags.Quiet {
		cliutil.Writef(j.stdout, msgTransforming, j.input)
	}

	doc, err := document.ParseFile(j.input)
	if err != nil {
		return err
	}

	opts := []transformer.Option{
		transformer.WithDocument(doc),
		transformer.WithEnabledRules(j.rules...),
		transformer.WithLogger(cliutil.NewZerologAdapter(j.logger)),
	}
	if j.pipeline != nil {
		opts = append(opts, transformer.WithPipeline(j.pipeline))
	}
	result, err := transformer.TransformWithOptions(opts...)
	if err != nil {
		return err
	}
	result.SourcePath = j.input

	data, err := result.Output()
	if err != nil {
		return err
	}

	for _, c := range result.Changes {
		j.logger.Debug().
			Str("rule", string(c.Type)).
			Str("path", c.Path).
			Int("line", c.Line).
			Msg(c.Description)
	}

	var patch []byte
	if j.flags.Patch != "" || j.flags.Diff {
		before, err := doc.MarshalIndent("", transformer.OutputIndent)
		if err != nil {
			return &oaserrors.OutputError{Path: j.input, Message: "failed to serialize input document", Cause: err}
		}
		if j.flags.Patch != "" {
			if patch, err = result.Patch(); err != nil {
				return err
			}
			if err := transformer.VerifyPatch(before, data, patch); err != nil {
				return &oaserrors.OutputError{Path: j.flags.Patch, Message: "patch verification failed", Cause: err}
			}
		}
		if j.flags.Diff {
			palette := cliutil.NewPalette(cliutil.UseColor(j.stderr))
			cliutil.Writef(j.stderr, "%s", cliutil.RenderDiff(j.input, j.output, string(before), string(data), palette))
		}
	}

	if j.flags.DryRun {
		j.logger.Info().Int("changes", result.ChangeCount).Msg("dry run: no files written")
	} else {
		if err := fileutil.WriteAtomic(j.output, data, fileutil.OwnerReadWrite); err != nil {
			return &oaserrors.OutputError{Path: j.output, Message: "failed to write output file", Cause: err}
		}
		if patch != nil {
			if err := fileutil.WriteAtomic(j.flags.Patch, patch, fileutil.OwnerReadWrite); err != nil {
				return &oaserrors.OutputError{Path: j.flags.Patch, Message: "failed to write patch file", Cause: err}
			}
		}
	}

	j.logger.Info().
		Str("input", j.input).
		Int("changes", result.ChangeCount).
		Dur("duration", result.Duration).
		Msg("transformation finished")

	if !j.flags.Quiet {
		msg := msgCompleted
		if cliutil.UseColor(j.stdout) {
			msg = color.GreenString(msg)
		}
		cliutil.Writef(j.stdout, "%s\n", msg)
	}
	return nil
}
