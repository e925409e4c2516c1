// Package cmd provides the CLI commands for amangrep.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amangrep/internal/config"
	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
	"github.com/Aman-CERP/amangrep/internal/logging"
	"github.com/Aman-CERP/amangrep/internal/output"
	"github.com/Aman-CERP/amangrep/internal/profiling"
	"github.com/Aman-CERP/amangrep/pkg/version"
)

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug        bool
	profileCPU   string
	profileMem   string
	profileTrace string

	profiler       *profiling.Profiler
	loggingCleanup func()
}

// NewRootCmd creates the root command for amangrep CLI. The root command
// itself runs a search.
func NewRootCmd() *cobra.Command {
	globals := &globalFlags{}
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "amangrep [flags] <path> <pattern>",
		Short: "Parallel file name and content search",
		Long: `amangrep searches a directory tree for a pattern, either in file names
(default) or in file contents (--content), using several workers in parallel.

Patterns are case-insensitive literals unless --regex is given, in which
case they are case-sensitive regular expressions.

Defaults come from ~/.config/amangrep/config.yaml, then .amangrep.yaml in
the searched directory, then AMANGREP_* environment variables. Flags
override all of them.`,
		Example: `  # Find files whose name contains "main"
  amangrep ./src main

  # Search file contents with 8 workers
  amangrep -c -t 8 . TODO

  # Regex content search with a benchmark report
  amangrep -c -r -b . 'func \w+\('`,
		Version:       version.Version,
		Args:          validateSearchArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runSearch(cmd, args[0], args[1], opts)
			if err != nil {
				// PersistentPostRunE is skipped on error.
				_ = globals.stop(cmd, nil)
			}
			return err
		},
	}

	cmd.SetVersionTemplate("amangrep version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return amanerrors.ValidationError(err.Error(), err).
			WithSuggestion("Run 'amangrep --help' for usage")
	})

	opts.register(cmd)

	cmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "Enable debug logging to ~/.amangrep/logs/")
	cmd.PersistentFlags().StringVar(&globals.profileCPU, "profile-cpu", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&globals.profileMem, "profile-mem", "", "Write memory profile to file")
	cmd.PersistentFlags().StringVar(&globals.profileTrace, "profile-trace", "", "Write execution trace to file")

	cmd.PersistentPreRunE = globals.start
	cmd.PersistentPostRunE = globals.stop

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newReportCmd())

	return cmd
}

// start installs the logger and starts profiling.
func (g *globalFlags) start(cmd *cobra.Command, _ []string) error {
	// Logging settings come from user config and env only; the project file
	// is read once the search root is known.
	cfg, err := config.Load("")
	if err != nil {
		cfg = config.NewConfig()
	}

	if g.debug {
		logCfg := logging.DebugConfig()
		logCfg.MaxSizeMB = cfg.Logging.MaxSizeMB
		logCfg.MaxFiles = cfg.Logging.MaxFiles

		cleanup, err := logging.SetupDefault(logCfg)
		if err != nil {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		g.loggingCleanup = cleanup
		slog.Info("debug logging enabled",
			slog.String("log_file", logCfg.FilePath),
			slog.String("version", version.Version))
	} else {
		slog.SetDefault(logging.NewStderrLogger(cmd.ErrOrStderr(), cfg.Logging.Level))
	}

	profOpts := profiling.Options{
		CPUPath:   g.profileCPU,
		HeapPath:  g.profileMem,
		TracePath: g.profileTrace,
	}
	if profOpts.Enabled() {
		p, err := profiling.Start(profOpts)
		if err != nil {
			g.closeLogging()
			return err
		}
		g.profiler = p
	}

	return nil
}

// stop ends profiling, which writes the heap profile, and closes the log.
func (g *globalFlags) stop(_ *cobra.Command, _ []string) error {
	var err error
	if g.profiler != nil {
		err = g.profiler.Stop()
		g.profiler = nil
	}
	g.closeLogging()
	return err
}

func (g *globalFlags) closeLogging() {
	if g.loggingCleanup != nil {
		slog.Info("debug logging stopped")
		g.loggingCleanup()
		g.loggingCleanup = nil
	}
}

// validateSearchArgs requires exactly <path> and <pattern>.
func validateSearchArgs(_ *cobra.Command, args []string) error {
	if len(args) != 2 {
		return amanerrors.ValidationError(
			fmt.Sprintf("expected <path> and <pattern>, got %d argument(s)", len(args)), nil).
			WithSuggestion("Usage: amangrep [flags] <path> <pattern>")
	}
	if args[0] == "" {
		return amanerrors.New(amanerrors.ErrCodeInvalidPath, "search path must not be empty", nil)
	}
	if args[1] == "" {
		return amanerrors.New(amanerrors.ErrCodeQueryEmpty, "search pattern must not be empty", nil).
			WithSuggestion("Pass the text or expression to look for as the second argument")
	}
	return nil
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		printError(os.Stderr, cmd, err)
		attrs := make([]any, 0, 8)
		for k, v := range amanerrors.FormatForLog(err) {
			attrs = append(attrs, slog.Any(k, v))
		}
		slog.Debug("command failed", attrs...)
	}
	return err
}

// printError renders err to w: JSON when the search ran with --format json,
// the verbose form with --debug, the concise form otherwise. Fatal errors
// get a leading line saying the search was aborted.
func printError(w io.Writer, cmd *cobra.Command, err error) {
	if format, _ := cmd.Flags().GetString("format"); strings.EqualFold(format, config.FormatJSON) {
		if data, jerr := amanerrors.FormatJSON(err); jerr == nil {
			_, _ = fmt.Fprintln(w, string(data))
			return
		}
	}
	if debug, _ := cmd.PersistentFlags().GetBool("debug"); debug {
		_, _ = fmt.Fprintln(w, amanerrors.FormatForUser(err, true))
		return
	}
	if amanerrors.IsFatal(err) {
		output.New(w).Error("Search aborted, no results were reported")
	}
	_, _ = fmt.Fprint(w, amanerrors.FormatForCLI(err))
}
