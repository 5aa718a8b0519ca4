package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wesleyorama2/scribe/internal/output"
)

var version = "0.1.0"

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	timeout    time.Duration
	noColor    bool
	verbose    bool
	format     string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	globals := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "scribe",
		Short:   "Build, inspect and send OAuth provider requests",
		Version: version,
		Long: `Scribe assembles requests the way an OAuth client library does: query and
form parameters are percent-encoded with %20 for spaces, Content-Length and
Content-Type are derived from the body, and caller headers always win.
It prints the exact request that goes on the wire and the response that
comes back.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.configPath, "config", "", "Provider and transport config file (YAML or JSON)")
	flags.DurationVarP(&globals.timeout, "timeout", "t", 0, "Transfer timeout (overrides the config file)")
	flags.BoolVar(&globals.noColor, "no-color", false, "Disable colored output")
	flags.BoolVarP(&globals.verbose, "verbose", "v", false, "Show timing, response headers and debug logs")
	flags.StringVarP(&globals.format, "output", "o", string(output.FormatText), "Output format: text, json or yaml")

	rootCmd.AddCommand(newSendCmd(globals))
	for _, verb := range shortcutVerbs {
		rootCmd.AddCommand(newVerbCmd(globals, verb))
	}

	return rootCmd
}

// Execute runs the command line. Interrupts cancel the in-flight request.
// This is called by main.main().
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger returns a text logger on w, at debug level when verbose.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// colorDisabled reports whether output to w should be plain: either the
// user asked for it or w is not a terminal.
func colorDisabled(w io.Writer, noColor bool) bool {
	if noColor {
		return true
	}
	if f, ok := w.(*os.File); ok {
		return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return true
}
