// Package geometry holds the small set of planar helpers shared by the grid,
// subdivision and pattern packages.
//
// Points are [geom.Coord] values so that vector arithmetic (Plus, Minus,
// Times, DistanceFrom) comes from github.com/jbeda/geom rather than being
// re-implemented here. Angles are radians measured from the positive x axis,
// increasing towards positive y. With the y axis pointing down (SVG and
// raster conventions) that is clockwise on screen.
package geometry

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a 2-D coordinate.
type Point = geom.Coord

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return a.Plus(b).Times(0.5)
}

// Polar returns the point at distance r from center in direction angle.
func Polar(center Point, r, angle float64) Point {
	return Point{
		X: center.X + r*math.Cos(angle),
		Y: center.Y + r*math.Sin(angle),
	}
}

// Rotate rotates p around the origin by angle.
func Rotate(p Point, angle float64) Point {
	sin, cos := math.Sincos(angle)
	return Point{X: p.X*cos - p.Y*sin, Y: p.X*sin + p.Y*cos}
}

// Bounds returns the smallest rectangle containing all points.
// It returns the zero rectangle when called without points.
func Bounds(points ...Point) geom.Rect {
	if len(points) == 0 {
		return geom.Rect{}
	}
	r := geom.Rect{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.ExpandToContainCoord(p)
	}
	return r
}

// ArcSpan is a circular arc between two angles, resolved into the endpoint
// form used by SVG path "A" commands.
type ArcSpan struct {
	Center   Point
	Radius   float64
	From, To float64 // start and end angle
	Start    Point
	End      Point
	LargeArc bool
	Sweep    bool
}

// NewArcSpan resolves the arc of the given radius around center from angle
// from to angle to. The arc is always swept in the positive angle direction.
func NewArcSpan(center Point, radius, from, to float64) ArcSpan {
	return ArcSpan{
		Center:   center,
		Radius:   radius,
		From:     from,
		To:       to,
		Start:    Polar(center, radius, from),
		End:      Polar(center, radius, to),
		LargeArc: math.Abs(to-from) > math.Pi,
		Sweep:    true,
	}
}

// Degenerate reports whether the arc has no extent.
func (a ArcSpan) Degenerate() bool { return a.Radius <= 0 }
