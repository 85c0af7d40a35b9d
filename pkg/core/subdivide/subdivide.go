// Package subdivide refines a set of triangles level by level into a flat
// list of leaf triangles.
//
// # Policy
//
// Refinement runs for [Policy.MaxDepth] levels. Below [Policy.MinDepth]
// every triangle is split unconditionally. From MinDepth on, each triangle
// still in play draws a uniform integer in [0, 100) from the random source
// and splits only if the draw is below [Policy.SplitChance]; otherwise it
// becomes a leaf and is never looked at again. Triangles still in play after
// the last level become leaves too, so MaxDepth is a hard ceiling.
//
// # Ordering
//
// Triangles are visited in slice order and children are appended in
// [triangle.Triangle.Split] order. Leaves finalized at a level are appended
// before the next level runs and the triangles remaining after the last
// level come last. The resulting order is the painter's order used by the
// renderer, and together with the single random stream it makes the output
// reproducible for a fixed seed.
package subdivide

import (
	"github.com/matzehuels/truchet/pkg/core/random"
	"github.com/matzehuels/truchet/pkg/core/triangle"
	"github.com/matzehuels/truchet/pkg/errors"
)

// Policy controls how deep and how often triangles are split.
type Policy struct {
	MinDepth    int // levels of mandatory splitting
	MaxDepth    int // total number of levels
	SplitChance int // percent chance, 0-100, of splitting past MinDepth
}

// Validate checks the policy preconditions.
func (p Policy) Validate() error {
	switch {
	case p.MaxDepth < 1:
		return errors.New(errors.ErrCodeInvalidConfig, "max depth must be positive, got %d", p.MaxDepth)
	case p.MinDepth < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "min depth must not be negative, got %d", p.MinDepth)
	case p.MinDepth >= p.MaxDepth:
		return errors.New(errors.ErrCodeInvalidConfig, "min depth (%d) must be less than max depth (%d)", p.MinDepth, p.MaxDepth)
	case p.SplitChance < 0 || p.SplitChance > 100:
		return errors.New(errors.ErrCodeInvalidConfig, "split chance must be within 0-100, got %d", p.SplitChance)
	}
	return nil
}

// Mandatory reports whether level is inside the unconditional phase.
func (p Policy) Mandatory(level int) bool { return level < p.MinDepth }

// LevelStats records what happened at one level.
type LevelStats struct {
	Level  int
	Split  int // triangles split into four
	Leaves int // triangles finalized as leaves
}

// Result is the outcome of [Subdivide].
type Result struct {
	Leaves []triangle.Triangle
	Levels []LevelStats
}

// RefineLevel runs one level over the triangles in play. It returns the
// triangles that became leaves at this level and the children that continue
// to the next one. The input slice is not modified.
//
// The source is only consulted for levels at or past the policy's MinDepth,
// once per triangle.
func RefineLevel(inPlay []triangle.Triangle, level int, p Policy, src random.Source) (leaves, next []triangle.Triangle) {
	next = make([]triangle.Triangle, 0, 4*len(inPlay))
	for _, t := range inPlay {
		if p.Mandatory(level) || src.IntN(100) < p.SplitChance {
			children := t.Split()
			next = append(next, children[:]...)
			continue
		}
		leaves = append(leaves, t)
	}
	return leaves, next
}

// Subdivide refines initial for p.MaxDepth levels and returns every leaf.
// The caller is responsible for p being valid; see [Policy.Validate].
func Subdivide(initial []triangle.Triangle, p Policy, src random.Source) Result {
	var res Result
	inPlay := initial

	for level := 0; level < p.MaxDepth; level++ {
		leaves, next := RefineLevel(inPlay, level, p, src)
		res.Leaves = append(res.Leaves, leaves...)
		res.Levels = append(res.Levels, LevelStats{
			Level:  level,
			Split:  len(next) / 4,
			Leaves: len(leaves),
		})
		inPlay = next
	}

	res.Leaves = append(res.Leaves, inPlay...)
	return res
}
