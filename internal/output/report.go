package output

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Aman-CERP/amangrep/internal/search"
)

// Header prints the search parameters before a run.
func (w *Writer) Header(cfg search.Config) {
	mode := "file names"
	if cfg.SearchContent {
		mode = "file contents"
	}
	kind := "literal"
	if cfg.UseRegex {
		kind = "regex"
	}

	w.Statusf("🔍", "%s %s", w.styles.Header.Render("Searching"), cfg.Root)
	w.Statusf("", "%s %q (%s, %s)", w.styles.Label.Render("Pattern:"), cfg.Pattern, kind, mode)
	w.Statusf("", "%s %d", w.styles.Label.Render("Workers:"), cfg.Workers)
	w.Newline()
}

// Report prints the summary and every match. With benchmark set the
// performance statistics follow.
func (w *Writer) Report(report *search.Report, benchmark bool) {
	w.Statusf("📊", "%s", w.styles.Header.Render("Search results"))
	w.Statusf("", "%s %d", w.styles.Label.Render("Files scanned:"), report.TotalFilesScanned)
	w.Statusf("", "%s %d", w.styles.Label.Render("Matches found:"), report.TotalMatches)
	w.Statusf("", "%s %s", w.styles.Label.Render("Total time:"), formatDuration(report.TotalDuration))

	if len(report.Results) == 0 {
		w.Newline()
		w.Status("❌", "No matches found.")
	}

	for _, result := range report.Results {
		w.Newline()
		w.Statusf("📁", "%s", w.styles.Path.Render(result.Path))
		for _, m := range result.Matches {
			if m.Line == 0 {
				w.Status("", w.styles.Dim.Render("file name matched"))
				continue
			}
			w.Statusf("", "%s %s", w.styles.LineNo.Render(fmt.Sprintf("Line %d:", m.Line)), w.highlight(m))
		}
	}

	if benchmark {
		perf := report.Performance
		w.Newline()
		w.Statusf("⚡", "%s", w.styles.Header.Render("Performance"))
		w.Statusf("", "%s %.2f", w.styles.Label.Render("Files/second:"), perf.FilesPerSecond)
		w.Statusf("", "%s %s", w.styles.Label.Render("Average per file:"), formatDuration(perf.AverageScanTime))
		w.Statusf("", "%s %.1f%%", w.styles.Label.Render("Thread utilization:"), perf.ThreadUtilization*100)
	}
}

// JSON writes the report as indented JSON.
func (w *Writer) JSON(report *search.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w.out, string(data))
	return err
}

// highlight styles the matched span of m.Text. Out-of-range spans print
// the line unchanged.
func (w *Writer) highlight(m search.Match) string {
	if !w.useColor || m.Start < 0 || m.End > len(m.Text) || m.Start >= m.End {
		return m.Text
	}
	return m.Text[:m.Start] + w.styles.Match.Render(m.Text[m.Start:m.End]) + m.Text[m.End:]
}

// formatDuration rounds d for display.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Second:
		return d.Round(time.Millisecond).String()
	case d >= time.Millisecond:
		return d.Round(time.Microsecond).String()
	default:
		return d.String()
	}
}
