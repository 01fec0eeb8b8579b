package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Map runs fn for indices 0..n-1 with at most limit calls in flight and returns the
// results in index order. A limit <= 0 means unbounded. fn must not fail; callers that
// can fail fold the failure into T.
func Map[T any](ctx context.Context, limit, n int, fn func(ctx context.Context, i int) T) []T {
	if n <= 0 {
		return nil
	}

	results := make([]T, n)
	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = fn(ctx, i)
			return nil
		})
	}

	_ = g.Wait()
	return results
}
