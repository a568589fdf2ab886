package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pool runs fn over jobs on n workers and returns the results in job order.
// The first error cancels the remaining work and is returned.
func Pool[J, R any](ctx context.Context, n int, jobs []J, fn func(ctx context.Context, worker int, job J) (R, error)) ([]R, error) {
	if n < 1 {
		n = 1
	}
	type item struct {
		idx int
		job J
	}

	results := make([]R, len(jobs))
	queue := make(chan item)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(queue)
		for i, j := range jobs {
			select {
			case queue <- item{idx: i, job: j}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for id := 1; id <= n; id++ {
		g.Go(func() error {
			for it := range queue {
				r, err := fn(gctx, id, it.job)
				if err != nil {
					return err
				}
				results[it.idx] = r
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
