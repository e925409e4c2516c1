package search

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// scanFunc scans a single file.
type scanFunc func(path string) Result

// chunkFiles splits files into contiguous chunks of max(1, len/workers)
// files. The last chunk holds whatever is left, so the number of chunks can
// exceed workers when the division is uneven.
func chunkFiles(files []string, workers int) [][]string {
	if len(files) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	size := max(1, len(files)/workers)

	chunks := make([][]string, 0, (len(files)+size-1)/size)
	for start := 0; start < len(files); start += size {
		end := min(start+size, len(files))
		chunks = append(chunks, files[start:end])
	}
	return chunks
}

// dispatch scans files concurrently, one goroutine per chunk, and returns
// every result that has at least one match.
//
// Each chunk collects its results locally in file order; a chunk's results
// are appended to the merged list once, when the chunk finishes, so chunk
// order in the output follows completion order. dispatch blocks until every
// chunk is done. It only fails when ctx is cancelled.
//
// progress, when set, is called from the worker goroutines after each file
// and must be safe for concurrent use.
func dispatch(ctx context.Context, files []string, workers int, scan scanFunc, progress ProgressFunc) ([]Result, error) {
	chunks := chunkFiles(files, workers)
	total := len(files)

	var (
		mu      sync.Mutex
		merged  []Result
		scanned atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			var local []Result
			for _, path := range chunk {
				if err := gctx.Err(); err != nil {
					return err
				}
				if r := scan(path); len(r.Matches) > 0 {
					local = append(local, r)
				}
				n := scanned.Add(1)
				if progress != nil {
					progress(int(n), total)
				}
			}

			if len(local) > 0 {
				mu.Lock()
				merged = append(merged, local...)
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}
