// Package search is the parallel search engine: it enumerates a directory
// tree, fans the file list out to concurrent scan workers, and folds the
// per-file matches into an immutable Report with performance statistics.
package search

import (
	"time"

	"github.com/Aman-CERP/amangrep/internal/matcher"
)

// Config is the input to one search. It is read-only to the engine.
type Config struct {
	// Root is the directory to search.
	Root string `json:"path"`

	// Pattern is the literal text or regular expression to look for.
	Pattern string `json:"pattern"`

	// SearchContent searches file contents instead of file names.
	SearchContent bool `json:"search_content"`

	// UseRegex compiles Pattern as a regular expression (case-sensitive).
	// Otherwise Pattern is a case-insensitive literal.
	UseRegex bool `json:"use_regex"`

	// Workers is the requested number of concurrent scan tasks.
	// Values below 1 are clamped to 1.
	Workers int `json:"max_threads"`

	// Benchmark is a rendering hint for callers; the engine ignores it.
	Benchmark bool `json:"benchmark"`

	// ExcludePatterns are doublestar globs pruned during enumeration.
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`

	// FollowSymlinks includes symbolic links to regular files.
	FollowSymlinks bool `json:"follow_symlinks"`
}

// Match is one occurrence of the pattern. Line 0 means the file name matched.
type Match = matcher.Match

// Result is one file with at least one match.
type Result struct {
	Path         string        `json:"file_path"`
	Matches      []Match       `json:"matches"`
	ScanDuration time.Duration `json:"scan_duration_ns"`
}

// PerformanceStats are derived once after all scanning completes.
type PerformanceStats struct {
	FilesPerSecond    float64       `json:"files_per_second"`
	AverageScanTime   time.Duration `json:"average_scan_time_ns"`
	ThreadUtilization float64       `json:"thread_utilization"`
}

// Report is the immutable outcome of a search.
// Results are in worker completion order, which varies between runs.
type Report struct {
	TotalFilesScanned int              `json:"total_files_scanned"`
	TotalMatches      int              `json:"total_matches"`
	TotalDuration     time.Duration    `json:"total_duration_ns"`
	Results           []Result         `json:"results"`
	Performance       PerformanceStats `json:"performance"`
}
