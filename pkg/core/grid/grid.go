// Package grid builds the six equilateral triangles that tile the initial
// hexagon.
package grid

import (
	"math"

	"github.com/matzehuels/truchet/pkg/core/geometry"
	"github.com/matzehuels/truchet/pkg/core/triangle"
	"github.com/matzehuels/truchet/pkg/errors"
)

// Count is the number of triangles in the initial grid.
const Count = 6

// Side returns the edge length of each grid triangle for a canvas of the
// given width and border.
func Side(width, border float64) float64 {
	return (width - 2*border) / 2
}

// Validate reports whether width and border leave room for a hexagon.
func Validate(width, border float64) error {
	if width <= 2*border {
		return errors.New(errors.ErrCodeInvalidConfig,
			"width (%g) must exceed twice the border (%g)", width, border)
	}
	return nil
}

// Hexagon returns the six triangles of a regular hexagon centred on the
// origin. The triangles form two rows of three sharing the horizontal axis,
// alternating orientation so neighbours share an edge. All triangles carry
// the given line capacity.
//
// Callers must ensure width > 2*border; see [Validate].
func Hexagon(width, border, capacity float64) []triangle.Triangle {
	b := Side(width, border)
	h := b * math.Sin(math.Pi/3)
	x, y := -b, 0.0

	pt := geometry.Pt
	up, down := triangle.Up, triangle.Down

	return []triangle.Triangle{
		// upper row
		triangle.New(pt(x, y), pt(x+b, y), pt(x+b/2, y-h), up, capacity),
		triangle.New(pt(x+b/2, y-h), pt(x+3*b/2, y-h), pt(x+b, y), down, capacity),
		triangle.New(pt(x+b, y), pt(x+2*b, y), pt(x+3*b/2, y-h), up, capacity),
		// lower row, mirrored
		triangle.New(pt(x, y), pt(x+b, y), pt(x+b/2, y+h), down, capacity),
		triangle.New(pt(x+b/2, y+h), pt(x+3*b/2, y+h), pt(x+b, y), up, capacity),
		triangle.New(pt(x+b, y), pt(x+2*b, y), pt(x+3*b/2, y+h), down, capacity),
	}
}
