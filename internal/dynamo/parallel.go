package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunAll calls fn for every index in [0, n) with at most limit calls in
// flight and returns the results in index order. A limit <= 0 uses
// GOMAXPROCS. The first error cancels the shared context and is returned.
func RunAll[T any](ctx context.Context, n, limit int, fn func(ctx context.Context, idx int) (T, error)) ([]T, error) {
	results := make([]T, n)
	if n == 0 {
		return results, nil
	}
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i := 0; i < n; i++ {
		idx := i
		g.Go(func() error {
			res, err := fn(gctx, idx)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
