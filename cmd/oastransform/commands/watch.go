package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/oastransform/internal/cliutil"
)

// DefaultDebounce is how long watch waits after the last change to the input
// file before transforming it again.
const DefaultDebounce = 200 * time.Millisecond

// WatchFlags contains flags for the watch command
type WatchFlags struct {
	TransformFlags
	Debounce time.Duration
}

// SetupWatchFlags creates and configures a FlagSet for the watch command.
// Returns the FlagSet and a WatchFlags struct with bound flag variables.
func SetupWatchFlags() (*flag.FlagSet, *WatchFlags) {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	flags := &WatchFlags{}
	bindTransformFlags(fs, &flags.TransformFlags)
	fs.DurationVar(&flags.Debounce, "debounce", DefaultDebounce, "quiet period after a change before re-running")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastransform watch [flags] <inputSpec> <outputSpec>\n\n")
		cliutil.Writef(fs.Output(), "Transform the specification, then transform it again every time the input file changes.\n")
		cliutil.Writef(fs.Output(), "Stop with Ctrl+C.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		writeRulesHelp(fs.Output())
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  oastransform watch openapi.yaml build/openapi.json\n")
		cliutil.Writef(fs.Output(), "  oastransform watch -q --debounce 1s openapi.yaml build/openapi.json\n")
		cliutil.Writef(fs.Output(), "\nNotes:\n")
		cliutil.Writef(fs.Output(), "  - A failed run is reported and watching continues\n")
		cliutil.Writef(fs.Output(), "  - The output file must differ from the input file\n")
	}

	return fs, flags
}

// HandleWatch executes the watch command until SIGINT or SIGTERM.
func HandleWatch(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, args, os.Stdout, os.Stderr)
}

// RunWatch executes the watch command until ctx is cancelled.
func RunWatch(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs, flags := SetupWatchFlags()
	fs.SetOutput(stderr)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("watch command requires an input and an output file path")
	}
	input, output := fs.Arg(0), fs.Arg(1)
	if err := ValidateOutputPath(output, input); err != nil {
		return err
	}

	job, err := newTransformJob(input, output, &flags.TransformFlags, stdout, stderr)
	if err != nil {
		return err
	}
	runOnce := func() {
		if err := job.run(); err != nil {
			cliutil.WriteError(stderr, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file instead of writing it, so the directory
	// is watched and events are filtered by name.
	dir := filepath.Dir(input)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch: failed to watch %s: %w", dir, err)
	}
	base := filepath.Base(input)

	runOnce()
	job.logger.Info().Str("input", input).Msg("watching for changes")

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			job.logger.Info().Msg("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				job.logger.Debug().Str("event", event.Op.String()).Msg("input changed")
				debounce = time.After(flags.Debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			job.logger.Warn().Err(err).Msg("file watcher error")
		case <-debounce:
			debounce = nil
			runOnce()
		}
	}
}
