// Package scanner enumerates the regular files under a search root.
// It walks the tree depth-first, never descends symbolic links, and prunes
// paths matching exclusion globs.
package scanner

// Options configures the enumeration.
type Options struct {
	// RootDir is the directory to enumerate.
	RootDir string

	// ExcludePatterns are doublestar globs matched against the slash-separated
	// path relative to RootDir. A pattern without "/" also matches the base
	// name at any depth. Matching directories are not descended.
	ExcludePatterns []string

	// FollowSymlinks lists symbolic links that resolve to regular files.
	// Links to directories are never descended (default: false).
	FollowSymlinks bool
}
