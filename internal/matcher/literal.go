package matcher

import (
	"strings"
	"unicode/utf8"
)

// Literal is a case-insensitive substring matcher.
type Literal struct {
	pattern string // lower-cased at construction
}

// NewLiteral creates a Literal matcher for pattern.
func NewLiteral(pattern string) *Literal {
	return &Literal{pattern: strings.ToLower(pattern)}
}

// Matches reports whether the lower-cased text contains the pattern.
func (l *Literal) Matches(text string) bool {
	return strings.Contains(strings.ToLower(text), l.pattern)
}

// FindMatches records at most one match per line, at the first occurrence.
// Text is the original-case line.
func (l *Literal) FindMatches(text string) []Match {
	var matches []Match
	for i, line := range splitLines(text) {
		start, end, ok := l.Locate(line)
		if !ok {
			continue
		}
		matches = append(matches, Match{
			Line:  i + 1,
			Text:  line,
			Start: start,
			End:   end,
		})
	}
	return matches
}

// Locate finds the first case-insensitive occurrence and returns its span in
// the original text. Lower-casing can change the byte width of some runes, so
// the offsets found in the lower-cased copy are mapped back by rune position.
func (l *Literal) Locate(text string) (start, end int, ok bool) {
	lowered := strings.ToLower(text)
	idx := strings.Index(lowered, l.pattern)
	if idx < 0 {
		return 0, 0, false
	}
	if isASCII(text) {
		return idx, idx + len(l.pattern), true
	}

	startRune := utf8.RuneCountInString(lowered[:idx])
	endRune := startRune + utf8.RuneCountInString(lowered[idx:idx+len(l.pattern)])
	return byteOffset(text, startRune), byteOffset(text, endRune), true
}

// byteOffset returns the byte index of the n-th rune of s, or len(s).
func byteOffset(s string, n int) int {
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
