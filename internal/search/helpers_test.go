package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root from a path -> content map.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for path, content := range files {
		fullPath := filepath.Join(root, path)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

// resultsByName indexes report results by base file name.
func resultsByName(r *Report) map[string]Result {
	out := make(map[string]Result, len(r.Results))
	for _, res := range r.Results {
		out[filepath.Base(res.Path)] = res
	}
	return out
}
