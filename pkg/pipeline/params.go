package pipeline

import (
	"github.com/matzehuels/truchet/pkg/cache"
	"github.com/matzehuels/truchet/pkg/core/grid"
	"github.com/matzehuels/truchet/pkg/core/random"
	"github.com/matzehuels/truchet/pkg/core/subdivide"
	"github.com/matzehuels/truchet/pkg/errors"
)

// paramStream selects the random stream used for parameter draws. It is kept
// apart from the generation stream so that feeding resolved parameters back in
// explicitly reproduces the same picture.
const paramStream = -1

// Ranges for randomized parameters, inclusive.
const (
	maxDepthCeiling = 6
	splitChanceLow  = 10
	splitChanceHigh = 79
)

// Params are fully resolved generation parameters. Every field is concrete;
// a Params value determines the generated scene completely.
type Params struct {
	Seed         uint64  `json:"seed"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	Border       float64 `json:"border"`
	Rotation     float64 `json:"rotation"`
	Foreground   string  `json:"foreground"`
	Background   string  `json:"background"`
	MinDepth     int     `json:"min_depth"`
	MaxDepth     int     `json:"max_depth"`
	SplitChance  int     `json:"split_chance"`
	MinLines     int     `json:"min_lines"`
	MaxLines     float64 `json:"max_lines"`
	LineSpacing  float64 `json:"line_spacing"`
	StrokeWeight float64 `json:"stroke_weight"`
	Parallel     bool    `json:"parallel,omitempty"`
}

// Policy returns the subdivision policy.
func (p Params) Policy() subdivide.Policy {
	return subdivide.Policy{MinDepth: p.MinDepth, MaxDepth: p.MaxDepth, SplitChance: p.SplitChance}
}

// Options converts p back into explicit options. Resolving them again yields
// p unchanged.
func (p Params) Options() Options {
	return Options{
		Width:        p.Width,
		Height:       p.Height,
		Border:       Float(p.Border),
		Rotation:     Float(p.Rotation),
		Foreground:   p.Foreground,
		Background:   p.Background,
		Seed:         p.Seed,
		MinDepth:     Int(p.MinDepth),
		MaxDepth:     p.MaxDepth,
		SplitChance:  Int(p.SplitChance),
		MinLines:     p.MinLines,
		LineSpacing:  p.LineSpacing,
		StrokeWeight: p.StrokeWeight,
		Parallel:     p.Parallel,
	}
}

// SceneKeyOpts returns cache key options for the generated scene.
func (p Params) SceneKeyOpts() cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Seed:         p.Seed,
		Width:        p.Width,
		Height:       p.Height,
		Border:       p.Border,
		MinDepth:     p.MinDepth,
		MaxDepth:     p.MaxDepth,
		SplitChance:  p.SplitChance,
		MaxLines:     p.MaxLines,
		LineSpacing:  p.LineSpacing,
		StrokeWeight: p.StrokeWeight,
		Foreground:   p.Foreground,
		Background:   p.Background,
		Rotation:     p.Rotation,
		Parallel:     p.Parallel,
	}
}

// ResolveParams validates opts, applies defaults and draws every unset
// generation parameter from the seed, in this order:
//
//  1. min depth: 0 or 1
//  2. max depth: uniform in [min depth + 2, 6]
//  3. split chance: uniform in [10, 79] percent
//  4. min lines: 2 for max depth 5, else uniform in [3, 4], [3, 5] or [3, 6]
//     for max depth 4, 3 and anything else
//
// Explicit values never consume a draw. The initial line capacity is then
// 2^maxDepth · minLines, and unset line spacing and stroke weight follow from
// it and the canvas width.
func ResolveParams(opts Options) (Params, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return Params{}, err
	}
	src := random.Derive(opts.Seed, paramStream)

	p := Params{
		Seed:       opts.Seed,
		Width:      opts.Width,
		Height:     opts.Height,
		Border:     *opts.Border,
		Rotation:   *opts.Rotation,
		Foreground: opts.Foreground,
		Background: opts.Background,
		Parallel:   opts.Parallel,
	}

	switch {
	case opts.MinDepth != nil:
		p.MinDepth = *opts.MinDepth
	case opts.MaxDepth > 0:
		p.MinDepth = src.IntN(min(2, opts.MaxDepth))
	default:
		p.MinDepth = src.IntN(2)
	}

	if opts.MaxDepth > 0 {
		p.MaxDepth = opts.MaxDepth
	} else {
		lo := p.MinDepth + 2
		p.MaxDepth = random.Range(src, lo, max(lo, maxDepthCeiling))
		p.MaxDepth = min(p.MaxDepth, MaxDepthLimit)
	}

	if opts.SplitChance != nil {
		p.SplitChance = *opts.SplitChance
	} else {
		p.SplitChance = random.Range(src, splitChanceLow, splitChanceHigh)
	}

	if opts.MinLines > 0 {
		p.MinLines = opts.MinLines
	} else {
		p.MinLines = drawMinLines(src, p.MaxDepth)
	}

	p.MaxLines = float64(int(1)<<p.MaxDepth) * float64(p.MinLines)
	if p.MaxLines == 0 {
		return Params{}, errors.New(errors.ErrCodeInvalidConfig, "initial line capacity is zero")
	}

	p.LineSpacing = opts.LineSpacing
	if p.LineSpacing == 0 {
		p.LineSpacing = grid.Side(float64(p.Width), p.Border) / p.MaxLines
	}
	p.StrokeWeight = opts.StrokeWeight
	if p.StrokeWeight == 0 {
		p.StrokeWeight = p.LineSpacing / 2
	}

	if err := p.Policy().Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

func drawMinLines(src random.Source, maxDepth int) int {
	switch maxDepth {
	case 5:
		return 2
	case 4:
		return random.Range(src, 3, 4)
	case 3:
		return random.Range(src, 3, 5)
	default:
		return random.Range(src, 3, 6)
	}
}
