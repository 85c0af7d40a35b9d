// Package pattern plans the Truchet arcs drawn inside each leaf triangle.
//
// # Arc Budget
//
// A triangle's line capacity c says how many unit-spaced arcs fit along its
// inradius. The planner derives three counts from it:
//
//	n  = floor(cos(30°) · c)     arcs at the first two visited corners
//	m  = min(c − n, n)           lower bound for the split draw
//	p1 ∈ [m, n]                  drawn uniformly, p2 = c − p1
//
// If the outermost of n arcs, including half a stroke, would reach past
// cos(30°) of the side length, n is reduced by one. This correction is
// applied once and not re-checked.
//
// # Corners
//
// One of the three corners is picked at random as the first one. The first
// two visited corners get n arcs and the third gets min(p1, p2), which
// breaks the symmetry of the tile and produces the characteristic broken
// flow lines. Arc radii run from count·spacing down to spacing, so the
// outermost arc is painted first and each inner wedge masks the one behind
// it. Every corner also gets a dot of half the stroke weight to cap the
// joint where arcs from adjacent triangles meet.
//
// # Angles
//
// Which 60° sector an arc occupies is fixed per (orientation, corner) by
// [Angles], chosen so that the sector at a shared vertex continues the arc
// of the triangle on the other side.
//
// # Randomness
//
// [Plan] consumes a single source sequentially: per triangle, one draw for
// the start corner and one for p1. [PlanParallel] gives each triangle a
// source derived from the seed and the triangle's index, which yields a
// different but equally deterministic picture.
package pattern
