package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oastransform/internal/cliutil"
	"github.com/erraggy/oastransform/internal/mcpserver"
)

// HandleMCP serves the MCP tools over stdio until the client disconnects or
// the process is interrupted.
func HandleMCP(args []string) error {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oastransform mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the transform and list_extensions tools over the Model Context Protocol (stdio).\n")
		cliutil.Writef(fs.Output(), "Defaults are read from OASTRANSFORM_* environment variables.\n")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("mcp command takes no arguments")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
