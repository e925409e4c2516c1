package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/amangrep/internal/config"
	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
	"github.com/Aman-CERP/amangrep/internal/output"
	"github.com/Aman-CERP/amangrep/internal/search"
)

// searchOptions are the root command's search flags.
type searchOptions struct {
	content        bool
	regex          bool
	threads        int
	benchmark      bool
	exclude        []string
	followSymlinks bool
	format         string
	reportPath     string
	noProgress     bool
}

func (o *searchOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVarP(&o.content, "content", "c", false, "Search file contents instead of file names")
	f.BoolVarP(&o.regex, "regex", "r", false, "Treat the pattern as a case-sensitive regular expression")
	f.IntVarP(&o.threads, "threads", "t", 4, "Number of parallel workers (default from config)")
	f.BoolVarP(&o.benchmark, "benchmark", "b", false, "Print performance statistics and save a JSON report")
	f.StringArrayVar(&o.exclude, "exclude", nil, "Glob of paths to skip, relative to <path> (repeatable)")
	f.BoolVar(&o.followSymlinks, "follow-symlinks", false, "Include symbolic links to regular files")
	f.StringVar(&o.format, "format", config.FormatText, "Output format: text or json")
	f.StringVar(&o.reportPath, "report", config.DefaultReportPath, "Write the JSON report to this file")
	f.BoolVar(&o.noProgress, "no-progress", false, "Disable the progress bar")
}

// resolve merges flags over the loaded configuration. Only flags the user
// actually set take precedence.
func (o *searchOptions) resolve(cmd *cobra.Command, root, pattern string, cfg *config.Config) (search.Config, string, string, error) {
	flags := cmd.Flags()

	workers := cfg.Search.Workers
	if flags.Changed("threads") {
		workers = o.threads
	}
	if workers < 1 {
		return search.Config{}, "", "", amanerrors.ValidationError(
			fmt.Sprintf("--threads must be at least 1, got %d", workers), nil)
	}

	format := cfg.Output.Format
	if flags.Changed("format") {
		format = o.format
	}
	format = strings.ToLower(format)
	if format != config.FormatText && format != config.FormatJSON {
		return search.Config{}, "", "", amanerrors.ValidationError(
			fmt.Sprintf("--format must be 'text' or 'json', got %s", format), nil)
	}

	reportPath := ""
	if o.benchmark || flags.Changed("report") {
		reportPath = cfg.Output.ReportPath
		if flags.Changed("report") {
			reportPath = o.reportPath
		}
	}

	exclude := append(append([]string{}, cfg.Search.Exclude...), o.exclude...)

	return search.Config{
		Root:            root,
		Pattern:         pattern,
		SearchContent:   o.content,
		UseRegex:        o.regex,
		Workers:         workers,
		Benchmark:       o.benchmark,
		ExcludePatterns: exclude,
		FollowSymlinks:  o.followSymlinks || cfg.Search.FollowSymlinks,
	}, format, reportPath, nil
}

func runSearch(cmd *cobra.Command, root, pattern string, opts *searchOptions) error {
	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	searchCfg, format, reportPath, err := opts.resolve(cmd, root, pattern, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := output.New(cmd.OutOrStdout())

	var engineOpts []search.EngineOption
	showProgress := format == config.FormatText && !opts.noProgress && !cfg.Output.NoProgress &&
		output.IsTTY(cmd.ErrOrStderr())
	if showProgress {
		engineOpts = append(engineOpts, search.WithProgress(newProgressPrinter(output.New(cmd.ErrOrStderr())).update))
	}

	engine, err := search.New(searchCfg, engineOpts...)
	if err != nil {
		return err
	}

	if format == config.FormatText {
		out.Header(engine.Config())
	}

	report, err := engine.Search(ctx)
	if err != nil {
		if amanerrors.GetCode(err) == "" {
			// cancellation by signal or parent context
			return amanerrors.New(amanerrors.ErrCodeSearchFailed, "search interrupted", err)
		}
		return err
	}

	if format == config.FormatJSON {
		if err := out.JSON(report); err != nil {
			return amanerrors.InternalError("failed to write JSON output", err)
		}
	} else {
		out.Report(report, searchCfg.Benchmark)
	}

	if reportPath != "" {
		// Saving is best effort: the results were already printed.
		status := output.New(cmd.ErrOrStderr())
		if err := output.SaveReport(reportPath, report); err != nil {
			slog.Warn("report not saved", slog.String("path", reportPath), slog.String("error", err.Error()))
			status.Warning(amanerrors.FormatForCLI(err))
		} else if format == config.FormatText {
			out.Newline()
			out.Statusf("📄", "Report saved to %s", reportPath)
		}
	}

	return nil
}

// progressPrinter serialises progress callbacks from the scan workers and
// redraws the bar at most once per percent.
type progressPrinter struct {
	mu   sync.Mutex
	out  *output.Writer
	last int
}

func newProgressPrinter(out *output.Writer) *progressPrinter {
	return &progressPrinter{out: out}
}

func (p *progressPrinter) update(scanned, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Callbacks can arrive out of order.
	if scanned <= p.last {
		return
	}
	step := max(1, total/100)
	if scanned != total && scanned-p.last < step {
		return
	}
	p.last = scanned
	p.out.Progress(scanned, total, "files")
}
