package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	amanerrors "github.com/Aman-CERP/amangrep/internal/errors"
)

// Scanner lists the files a search will visit.
type Scanner struct {
	opts Options
}

// New validates opts and creates a Scanner.
func New(opts Options) (*Scanner, error) {
	if opts.RootDir == "" {
		opts.RootDir = "."
	}
	for _, pattern := range opts.ExcludePatterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, amanerrors.ValidationError(fmt.Sprintf("invalid exclude pattern %q", pattern), nil).
				WithDetail("pattern", pattern)
		}
	}
	return &Scanner{opts: opts}, nil
}

// Enumerate returns every regular file under the root, depth-first. Paths
// are joined onto RootDir as given.
//
// A missing root, a root that is not a directory, or any directory that
// cannot be read aborts the whole enumeration with ERR_207_TRAVERSAL_FAILED.
func (s *Scanner) Enumerate(ctx context.Context) ([]string, error) {
	root := s.opts.RootDir

	info, err := os.Stat(root)
	if err != nil {
		return nil, amanerrors.TraversalError(root, err).
			WithSuggestion("Check that the search root exists and is readable")
	}
	if !info.IsDir() {
		return nil, amanerrors.TraversalError(root, fmt.Errorf("not a directory"))
	}

	var files []string
	if err := s.walk(ctx, root, "", &files); err != nil {
		return nil, err
	}

	slog.Debug("enumeration complete",
		slog.String("root", root),
		slog.Int("files", len(files)))

	return files, nil
}

// walk lists dir (rel is its slash path relative to the root) and recurses
// into subdirectories.
func (s *Scanner) walk(ctx context.Context, dir, rel string, files *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return amanerrors.TraversalError(dir, err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		entryRel := entry.Name()
		if rel != "" {
			entryRel = rel + "/" + entry.Name()
		}

		mode := entry.Type()
		switch {
		case mode.IsDir():
			if s.excluded(entryRel, true) {
				continue
			}
			if err := s.walk(ctx, path, entryRel, files); err != nil {
				return err
			}

		case mode&fs.ModeSymlink != 0:
			if !s.opts.FollowSymlinks || s.excluded(entryRel, false) {
				continue
			}
			target, err := os.Stat(path)
			if err != nil || !target.Mode().IsRegular() {
				continue // dangling link or link to a directory
			}
			*files = append(*files, path)

		case mode.IsRegular():
			if s.excluded(entryRel, false) {
				continue
			}
			*files = append(*files, path)
		}
	}

	return nil
}

// excluded reports whether rel matches any exclusion pattern.
func (s *Scanner) excluded(rel string, isDir bool) bool {
	if len(s.opts.ExcludePatterns) == 0 {
		return false
	}
	base := rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		base = rel[i+1:]
	}

	for _, pattern := range s.opts.ExcludePatterns {
		if match(pattern, rel) {
			return true
		}
		// "vendor/**" should prune the vendor directory itself
		if isDir && match(pattern, rel+"/") {
			return true
		}
		if !strings.Contains(pattern, "/") && match(pattern, base) {
			return true
		}
	}
	return false
}

func match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}
