package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func fileList(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("f%03d", i)
	}
	return files
}

func TestChunkFiles(t *testing.T) {
	tests := []struct {
		name      string
		files     int
		workers   int
		wantSizes []int
	}{
		{name: "empty", files: 0, workers: 4, wantSizes: nil},
		{name: "even split", files: 8, workers: 4, wantSizes: []int{2, 2, 2, 2}},
		{name: "uneven adds trailing chunk", files: 10, workers: 3, wantSizes: []int{3, 3, 3, 1}},
		{name: "more workers than files", files: 3, workers: 8, wantSizes: []int{1, 1, 1}},
		{name: "single worker", files: 5, workers: 1, wantSizes: []int{5}},
		{name: "zero workers clamps", files: 2, workers: 0, wantSizes: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := fileList(tt.files)
			chunks := chunkFiles(files, tt.workers)

			var sizes []int
			var flat []string
			for _, c := range chunks {
				sizes = append(sizes, len(c))
				flat = append(flat, c...)
			}
			assert.Equal(t, tt.wantSizes, sizes)
			if tt.files > 0 {
				// contiguous and complete
				assert.Equal(t, files, flat)
			}
		})
	}
}

func TestDispatch_DropsEmptyResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	files := fileList(20)
	scan := func(path string) Result {
		// every third file matches
		var idx int
		_, _ = fmt.Sscanf(path, "f%03d", &idx)
		if idx%3 != 0 {
			return Result{Path: path}
		}
		return Result{Path: path, Matches: []Match{{Line: 1, Text: path, End: len(path)}}}
	}

	results, err := dispatch(context.Background(), files, 4, scan, nil)

	require.NoError(t, err)
	var got []string
	for _, r := range results {
		assert.NotEmpty(t, r.Matches)
		got = append(got, r.Path)
	}
	sort.Strings(got)
	assert.Equal(t, []string{"f000", "f003", "f006", "f009", "f012", "f015", "f018"}, got)
}

func TestDispatch_PreservesOrderWithinChunk(t *testing.T) {
	defer goleak.VerifyNone(t)

	files := fileList(12)
	scan := func(path string) Result {
		return Result{Path: path, Matches: []Match{{Line: 1}}}
	}

	results, err := dispatch(context.Background(), files, 3, scan, nil)
	require.NoError(t, err)
	require.Len(t, results, 12)

	// Chunks may interleave, but each chunk's files appear contiguously and
	// in file order.
	pos := make(map[string]int, len(results))
	for i, r := range results {
		pos[r.Path] = i
	}
	for _, chunk := range chunkFiles(files, 3) {
		for i := 1; i < len(chunk); i++ {
			assert.Equal(t, pos[chunk[i-1]]+1, pos[chunk[i]], "chunk %v", chunk)
		}
	}
}

func TestDispatch_ScansEveryFileOnce(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	seen := make(map[string]int)
	scan := func(path string) Result {
		mu.Lock()
		seen[path]++
		mu.Unlock()
		return Result{Path: path}
	}

	files := fileList(101)
	results, err := dispatch(context.Background(), files, 7, scan, nil)

	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Len(t, seen, 101)
	for path, n := range seen {
		assert.Equal(t, 1, n, path)
	}
}

func TestDispatch_ReportsProgress(t *testing.T) {
	defer goleak.VerifyNone(t)

	var mu sync.Mutex
	var calls []int
	progress := func(scanned, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, 9, total)
		calls = append(calls, scanned)
	}

	_, err := dispatch(context.Background(), fileList(9), 2, func(p string) Result { return Result{Path: p} }, progress)

	require.NoError(t, err)
	sort.Ints(calls)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, calls)
}

func TestDispatch_CancelledContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := dispatch(ctx, fileList(10), 2, func(p string) Result {
		return Result{Path: p, Matches: []Match{{Line: 1}}}
	}, nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestDispatch_NoFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	results, err := dispatch(context.Background(), nil, 4, func(p string) Result {
		t.Fatalf("unexpected scan of %s", p)
		return Result{}
	}, nil)

	require.NoError(t, err)
	assert.Empty(t, results)
}

func BenchmarkDispatch(b *testing.B) {
	files := fileList(1000)
	scan := func(path string) Result {
		return Result{Path: path, Matches: []Match{{Line: 1, Text: path}}}
	}

	for _, workers := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := dispatch(context.Background(), files, workers, scan, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
