package resolv

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ResolveAll resolves every raw locator, using at most workers concurrent
// resolutions (one per locator if workers < 1).  Results are in the order of
// the input.
//
// Resolutions share nothing but the querier, so results do not depend on how
// calls interleave.  A cancelled context surfaces through the querier as
// Unavailable results; ResolveAll itself always returns a full slice.
func (r *Resolver) ResolveAll(ctx context.Context, raws []string, workers int) []Result {
	results := make([]Result, len(raws))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			results[i] = r.Resolve(ctx, raw)
			return nil
		})
	}

	_ = g.Wait()
	return results
}
