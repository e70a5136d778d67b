// Package parallel splits index ranges across goroutines.
package parallel

import (
	"context"
	"runtime"

	"github.com/YuminosukeSato/basketmine/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Workers resolves a requested worker count: n <= 0 means one worker per CPU.
func Workers(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ForEachChunk splits items into at most workers contiguous chunks and runs
// each chunk in its own goroutine. The first
// error (or a recovered panic) cancels the remaining chunks. Chunks must write
// only to their own [start, end) range so the caller can merge after return.
//
// With workers == 1 or items <= threshold the work runs on the calling
// goroutine.
func ForEachChunk(ctx context.Context, items, workers, threshold int, fn func(ctx context.Context, start, end int) error) error {
	if items == 0 {
		return ctx.Err()
	}
	workers = Workers(workers)
	if workers == 1 || items <= threshold {
		return errors.SafeExecute("parallel.chunk", func() error {
			return fn(ctx, 0, items)
		})
	}
	if workers > items {
		workers = items
	}
	chunkSize := (items + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < items; start += chunkSize {
		s, e := start, start+chunkSize
		if e > items {
			e = items
		}
		g.Go(func() (err error) {
			defer errors.Recover(&err, "parallel.chunk")
			return fn(gctx, s, e)
		})
	}
	return g.Wait()
}
