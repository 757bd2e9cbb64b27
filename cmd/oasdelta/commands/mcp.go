package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/erraggy/oasdelta/internal/cliutil"
	"github.com/erraggy/oasdelta/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command. It takes no flags;
// the server is configured through OASDELTA_* environment variables.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: oasdelta mcp\n\n")
		cliutil.Writef(fs.Output(), "Run an MCP (Model Context Protocol) server over stdio exposing the\n")
		cliutil.Writef(fs.Output(), "diff and summarize tools.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_CACHE_ENABLED         cache parsed documents (default true)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_CACHE_FILE_TTL        cache TTL for files (default 15m)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_CACHE_CONTENT_TTL     cache TTL for inline content (default 15m)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_CACHE_MAX_SIZE        maximum cached documents (default 10)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_CACHE_SWEEP_INTERVAL  expired entry sweep interval (default 60s)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_MAX_INLINE_SIZE       maximum inline content bytes (default 10MiB)\n")
		cliutil.Writef(fs.Output(), "  OASDELTA_DETECT_RENAMES        run schema rename detection (default true)\n")
	}
	return fs
}

// HandleMCP runs the MCP server until stdin closes or the process is interrupted.
func HandleMCP(args []string, stderr io.Writer) error {
	fs := SetupMCPFlags()
	fs.SetOutput(stderr)
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return mcpserver.Run(ctx)
}
