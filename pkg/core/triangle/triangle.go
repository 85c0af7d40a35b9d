// Package triangle defines the equilateral triangle that the grid,
// subdivision and pattern stages pass between each other.
//
// A Triangle is a value: splitting one produces four new values and leaves
// the parent untouched.
package triangle

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"

	"github.com/matzehuels/truchet/pkg/core/geometry"
)

// Orientation selects which of the two angle tables governs the arcs drawn
// at a triangle's corners.
type Orientation int

const (
	Up   Orientation = 0
	Down Orientation = 1
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation { return (o + 1) % 2 }

func (o Orientation) String() string {
	switch o {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
}

// Triangle is one cell of the pattern.
type Triangle struct {
	// Vertices are ordered; the order defines corner indices 0, 1, 2.
	Vertices [3]geometry.Point

	Orientation Orientation

	// LineCapacity is the number of unit-spaced concentric arcs that fit
	// along the inradius at this depth. It halves on every split.
	LineCapacity float64
}

// New builds a triangle from its three corners.
func New(p1, p2, p3 geometry.Point, o Orientation, capacity float64) Triangle {
	return Triangle{
		Vertices:     [3]geometry.Point{p1, p2, p3},
		Orientation:  o,
		LineCapacity: capacity,
	}
}

// Vertex returns corner i modulo 3.
func (t Triangle) Vertex(i int) geometry.Point {
	return t.Vertices[((i%3)+3)%3]
}

// Split divides t at its edge midpoints into four children: the three
// corner triangles, which keep t's orientation, followed by the medial
// triangle, which has the opposite one. Every child gets half of t's line
// capacity.
func (t Triangle) Split() [4]Triangle {
	p1, p2, p3 := t.Vertices[0], t.Vertices[1], t.Vertices[2]
	m12 := geometry.Midpoint(p1, p2)
	m23 := geometry.Midpoint(p2, p3)
	m13 := geometry.Midpoint(p1, p3)
	c := t.LineCapacity / 2

	return [4]Triangle{
		New(p1, m12, m13, t.Orientation, c),
		New(m12, p2, m23, t.Orientation, c),
		New(m13, m23, p3, t.Orientation, c),
		New(m13, m23, m12, t.Orientation.Flip(), c),
	}
}

// SideLength is the distance between the first two vertices. For the
// equilateral triangles produced by the grid all sides are equal.
func (t Triangle) SideLength() float64 {
	return t.Vertices[0].DistanceFrom(t.Vertices[1])
}

// Area returns the unsigned area.
func (t Triangle) Area() float64 {
	a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() geometry.Point {
	return t.Vertices[0].Plus(t.Vertices[1]).Plus(t.Vertices[2]).Times(1.0 / 3)
}

// Bounds returns the axis-aligned bounding rectangle.
func (t Triangle) Bounds() geom.Rect {
	return (&geom.Triangle{A: t.Vertices[0], B: t.Vertices[1], C: t.Vertices[2]}).Bounds()
}
