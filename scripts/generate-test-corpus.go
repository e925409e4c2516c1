//go:build ignore

// Package main generates a synthetic directory tree for benchmarking
// amangrep.
// Usage: go run scripts/generate-test-corpus.go -files 5000 -depth 4 -output testdata/bench
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
)

var (
	numFiles  = flag.Int("files", 1000, "Number of files to generate")
	depth     = flag.Int("depth", 3, "Maximum directory depth")
	fanout    = flag.Int("fanout", 4, "Subdirectories per directory")
	lines     = flag.Int("lines", 200, "Lines per file")
	needle    = flag.String("needle", "NEEDLE", "Token planted in roughly one line in a hundred")
	outputDir = flag.String("output", "testdata/bench", "Output directory")
	seed      = flag.Int64("seed", 42, "Random seed for reproducibility")
)

var words = []string{
	"alpha", "beta", "gamma", "delta", "buffer", "worker", "channel", "context",
	"request", "response", "handler", "config", "matcher", "scanner", "report",
	"func", "return", "error", "value", "index", "chunk", "result", "engine",
}

var extensions = []string{".go", ".txt", ".md", ".rs", ".py", ".json"}

func main() {
	flag.Parse()
	rng := rand.New(rand.NewSource(*seed))

	dirs := buildDirs(*outputDir, *depth, *fanout)
	planted := 0

	for i := 0; i < *numFiles; i++ {
		dir := dirs[rng.Intn(len(dirs))]
		name := fmt.Sprintf("%s_%05d%s", words[rng.Intn(len(words))], i, extensions[rng.Intn(len(extensions))])

		var sb strings.Builder
		for l := 0; l < *lines; l++ {
			n := 4 + rng.Intn(8)
			for w := 0; w < n; w++ {
				if w > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(words[rng.Intn(len(words))])
			}
			if rng.Intn(100) == 0 {
				sb.WriteString(" " + *needle)
				planted++
			}
			sb.WriteByte('\n')
		}

		if err := os.WriteFile(filepath.Join(dir, name), []byte(sb.String()), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Generated %d files in %d directories under %s (%d %q lines)\n",
		*numFiles, len(dirs), *outputDir, planted, *needle)
}

// buildDirs creates the directory tree and returns every directory in it.
func buildDirs(root string, depth, fanout int) []string {
	dirs := []string{root}
	level := []string{root}
	for d := 0; d < depth; d++ {
		var next []string
		for _, parent := range level {
			for f := 0; f < fanout; f++ {
				next = append(next, filepath.Join(parent, fmt.Sprintf("d%d_%d", d, f)))
			}
		}
		dirs = append(dirs, next...)
		level = next
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "mkdir failed: %v\n", err)
			os.Exit(1)
		}
	}
	return dirs
}
