package sheets

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the fan-out used by MapRows when workers is zero.
const DefaultWorkers = 8

// MapRows applies fn to every row with at most workers goroutines in
// flight. Results keep the input ordering. The first failure cancels the
// remaining work and is returned; partial results are discarded.
func MapRows[T, R any](
	ctx context.Context, rows []T, workers int, fn func(ctx context.Context, row T) (R, error),
) ([]R, error) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make([]R, len(rows))
	for i, row := range rows {
		g.Go(func() error {
			out, err := fn(ctx, row)
			if err != nil {
				return err
			}
			results[i] = out
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
