// Package matcher implements the two pattern strategies used by the search
// engine: a case-insensitive literal substring match and a case-sensitive
// regular expression match.
//
// A Matcher is immutable after construction and safe for concurrent use by
// any number of scan workers.
package matcher

import (
	"strings"
)

// Match is one located occurrence of the pattern inside a line.
// Start and End are byte offsets into Text, half-open.
// Line is 1-based; 0 marks a file-name match with no line context.
type Match struct {
	Line  int    `json:"line_number"`
	Text  string `json:"content"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Matcher tests text against a pattern and extracts per-line matches.
type Matcher interface {
	// Matches reports whether the pattern occurs anywhere in text.
	Matches(text string) bool

	// FindMatches scans text line by line and returns every match with its
	// 1-based line number, in line order.
	FindMatches(text string) []Match

	// Locate returns the span of the first occurrence in text.
	Locate(text string) (start, end int, ok bool)
}

// New builds the matcher for pattern. With useRegex the pattern is compiled
// as a regular expression and a compile failure is returned as an
// ERR_407_INVALID_PATTERN error.
func New(pattern string, useRegex bool) (Matcher, error) {
	if useRegex {
		p, err := NewPattern(pattern)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return NewLiteral(pattern), nil
}

// splitLines splits content into lines the way a text reader would: "\n"
// separates lines, a trailing "\r" is dropped, and a final newline does not
// produce an extra empty line.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// compile-time interface checks
var (
	_ Matcher = (*Literal)(nil)
	_ Matcher = (*Pattern)(nil)
)
