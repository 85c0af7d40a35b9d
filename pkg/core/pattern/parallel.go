package pattern

import (
	"context"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/random"
	"github.com/matzehuels/truchet/pkg/core/triangle"
)

// PlanParallel plans every leaf concurrently. Leaf i draws from
// random.Derive(seed, i), so the result depends only on the seed and the
// leaf order, not on scheduling or the number of workers. Instructions are
// returned in leaf order. A workers value <= 0 uses GOMAXPROCS.
func PlanParallel(ctx context.Context, leaves []triangle.Triangle, s Style, seed uint64, workers int) ([]draw.Instruction, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	parts := make([][]draw.Instruction, len(leaves))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, t := range leaves {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i] = PlanTriangle(t, s, random.Derive(seed, i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Concat(parts...), nil
}
