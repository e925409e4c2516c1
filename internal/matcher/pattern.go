package matcher

import (
	"regexp"

	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
)

// Pattern is a case-sensitive regular expression matcher.
type Pattern struct {
	re *regexp.Regexp
}

// NewPattern compiles pattern. Compilation errors are reported before any
// file is touched.
func NewPattern(pattern string) (*Pattern, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, amanerrors.InvalidPattern(pattern, err)
	}
	return &Pattern{re: re}, nil
}

// Matches reports an unanchored match anywhere in text.
func (p *Pattern) Matches(text string) bool {
	return p.re.MatchString(text)
}

// FindMatches records every non-overlapping match on every line.
func (p *Pattern) FindMatches(text string) []Match {
	var matches []Match
	for i, line := range splitLines(text) {
		for _, loc := range p.re.FindAllStringIndex(line, -1) {
			matches = append(matches, Match{
				Line:  i + 1,
				Text:  line,
				Start: loc[0],
				End:   loc[1],
			})
		}
	}
	return matches
}

// Locate returns the leftmost match in text.
func (p *Pattern) Locate(text string) (start, end int, ok bool) {
	loc := p.re.FindStringIndex(text)
	if loc == nil {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}

// String returns the source expression.
func (p *Pattern) String() string {
	return p.re.String()
}
