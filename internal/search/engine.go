package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/Aman-CERP/amangrep/internal/matcher"
	"github.com/Aman-CERP/amangrep/internal/scanner"
)

// ProgressFunc receives the number of files scanned so far and the total.
type ProgressFunc func(scanned, total int)

// Engine runs searches for one configuration. The matcher is built once in
// New and shared read-only by every scan worker.
type Engine struct {
	config   Config
	matcher  matcher.Matcher
	scanner  *scanner.Scanner
	progress ProgressFunc
}

// EngineOption configures the search engine.
type EngineOption func(*Engine)

// WithProgress reports scan progress after every file. fn is called from
// several goroutines at once.
func WithProgress(fn ProgressFunc) EngineOption {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New validates cfg and prepares the matcher. An invalid regular expression
// fails here with ERR_407_INVALID_PATTERN, before the filesystem is touched.
func New(cfg Config, opts ...EngineOption) (*Engine, error) {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	m, err := matcher.New(cfg.Pattern, cfg.UseRegex)
	if err != nil {
		return nil, err
	}

	sc, err := scanner.New(scanner.Options{
		RootDir:         cfg.Root,
		ExcludePatterns: cfg.ExcludePatterns,
		FollowSymlinks:  cfg.FollowSymlinks,
	})
	if err != nil {
		return nil, err
	}

	e := &Engine{
		config:  cfg,
		matcher: m,
		scanner: sc,
	}
	for _, opt := range opts {
		opt(e)
	}

	slog.Debug("search engine ready",
		slog.String("root", cfg.Root),
		slog.Bool("content", cfg.SearchContent),
		slog.Bool("regex", cfg.UseRegex),
		slog.Int("workers", cfg.Workers))

	return e, nil
}

// Config returns the effective configuration, with Workers clamped.
func (e *Engine) Config() Config {
	return e.config
}

// Search enumerates the tree, scans every file in parallel and builds the
// report. Traversal failures abort the search with no partial report;
// per-file read failures only drop that file.
func (e *Engine) Search(ctx context.Context) (*Report, error) {
	start := time.Now()

	files, err := e.scanner.Enumerate(ctx)
	if err != nil {
		return nil, err
	}

	searchContent := e.config.SearchContent
	scan := func(path string) Result {
		return scanFile(path, searchContent, e.matcher)
	}

	results, err := dispatch(ctx, files, e.config.Workers, scan, e.progress)
	if err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	report := buildReport(results, len(files), e.config.Workers, elapsed)

	slog.Debug("search complete",
		slog.Int("files", report.TotalFilesScanned),
		slog.Int("matched_files", len(report.Results)),
		slog.Int("matches", report.TotalMatches),
		slog.Duration("elapsed", elapsed))

	return report, nil
}
