package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/grid"
	"github.com/matzehuels/truchet/pkg/core/pattern"
	"github.com/matzehuels/truchet/pkg/core/random"
	"github.com/matzehuels/truchet/pkg/core/subdivide"
	"github.com/matzehuels/truchet/pkg/render"
)

// =============================================================================
// Generation
// =============================================================================

// Style returns the pattern style for p.
func (p Params) Style() pattern.Style {
	return pattern.Style{
		LineSpacing:  p.LineSpacing,
		StrokeWeight: p.StrokeWeight,
		Foreground:   p.Foreground,
		Background:   p.Background,
	}
}

// Generate builds the hexagon grid, subdivides it and plans the arcs of every
// leaf. Subdivision and sequential planning share one source seeded with
// p.Seed, so the scene is a pure function of p. With p.Parallel, leaves are
// planned concurrently from per-leaf sources instead.
func Generate(ctx context.Context, p Params) (render.Scene, Stats, error) {
	start := time.Now()
	if err := grid.Validate(float64(p.Width), p.Border); err != nil {
		return render.Scene{}, Stats{}, err
	}
	if err := p.Policy().Validate(); err != nil {
		return render.Scene{}, Stats{}, err
	}

	src := random.New(p.Seed)
	hex := grid.Hexagon(float64(p.Width), p.Border, p.MaxLines)
	res := subdivide.Subdivide(hex, p.Policy(), src)

	if err := ctx.Err(); err != nil {
		return render.Scene{}, Stats{}, err
	}

	var ins []draw.Instruction
	if p.Parallel {
		var err error
		ins, err = pattern.PlanParallel(ctx, res.Leaves, p.Style(), p.Seed, 0)
		if err != nil {
			return render.Scene{}, Stats{}, err
		}
	} else {
		ins = pattern.Plan(res.Leaves, p.Style(), src)
	}

	scene := render.Scene{
		Width:        p.Width,
		Height:       p.Height,
		Rotation:     p.Rotation,
		Background:   p.Background,
		Instructions: ins,
	}
	stats := Stats{
		Leaves:       len(res.Leaves),
		Instructions: len(ins),
		Levels:       res.Levels,
		GenerateTime: time.Since(start),
	}
	return scene, stats, nil
}
