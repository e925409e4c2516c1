package search

import (
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/Aman-CERP/amangrep/internal/matcher"
)

// scanFile scans one file and returns its matches, possibly none.
//
// In name mode only the final path component is tested and at most one
// Match (line 0) is produced. In content mode the file is decoded as UTF-8
// text; unreadable or undecodable files are treated as empty.
func scanFile(path string, searchContent bool, m matcher.Matcher) Result {
	start := time.Now()

	var matches []Match
	if searchContent {
		matches = m.FindMatches(readText(path))
	} else {
		name := filepath.Base(path)
		if from, to, ok := m.Locate(name); ok {
			matches = []Match{{Line: 0, Text: name, Start: from, End: to}}
		}
	}

	return Result{
		Path:         path,
		Matches:      matches,
		ScanDuration: time.Since(start),
	}
}

// readText returns the file contents, or "" when the file cannot be read or
// is not valid UTF-8.
func readText(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return ""
	}
	return string(data)
}
