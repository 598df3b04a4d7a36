package silkprint

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent renders.
	MaxPoolSize = 16
)

// ResolvePoolSize determines the worker count for batch rendering.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers), clamped to [MinPoolSize, MaxPoolSize].
func ResolvePoolSize(workers int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	return min(max(n, MinPoolSize), MaxPoolSize)
}

// FileResult is the outcome of rendering one file in a batch.
type FileResult struct {
	Path   string
	Result *Result
	Err    error
}

// RenderFiles renders every path with at most workers concurrent renders.
// Results are returned in the order of paths. Each document's SourceDir is
// the directory containing it. Cancelling ctx stops queued files; they
// report ctx.Err().
func (c *Converter) RenderFiles(ctx context.Context, paths []string, opts Options, workers int) []FileResult {
	results := make([]FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range min(ResolvePoolSize(workers), max(len(paths), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.renderFile(ctx, paths[i], opts)
			}
		}()
	}

	for i, path := range paths {
		if ctx.Err() != nil {
			results[i] = FileResult{Path: path, Err: ctx.Err()}
			continue
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return results
}

func (c *Converter) renderFile(ctx context.Context, path string, opts Options) FileResult {
	if err := ctx.Err(); err != nil {
		return FileResult{Path: path, Err: err}
	}
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	res, err := c.Render(ctx, Input{Markdown: string(data), SourceDir: filepath.Dir(path)}, opts)
	return FileResult{Path: path, Result: res, Err: err}
}
