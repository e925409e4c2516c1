package search

import "time"

// buildReport derives the performance statistics and assembles the report.
// It takes ownership of results.
func buildReport(results []Result, totalFiles, workers int, elapsed time.Duration) *Report {
	if workers < 1 {
		workers = 1
	}

	totalMatches := 0
	for _, r := range results {
		totalMatches += len(r.Matches)
	}

	// A scan that finishes below the clock resolution reports zero
	// throughput rather than +Inf or NaN.
	var filesPerSecond float64
	if secs := elapsed.Seconds(); secs > 0 {
		filesPerSecond = float64(totalFiles) / secs
	}

	var avg time.Duration
	if totalFiles > 0 {
		avg = elapsed / time.Duration(totalFiles)
	}

	if results == nil {
		results = []Result{}
	}

	return &Report{
		TotalFilesScanned: totalFiles,
		TotalMatches:      totalMatches,
		TotalDuration:     elapsed,
		Results:           results,
		Performance: PerformanceStats{
			FilesPerSecond:    filesPerSecond,
			AverageScanTime:   avg,
			ThreadUtilization: float64(min(workers, totalFiles)) / float64(workers),
		},
	}
}
