package pattern

import (
	"math"

	"github.com/matzehuels/truchet/pkg/core/triangle"
)

// Sector is the angular range of the arcs drawn at one corner.
type Sector struct {
	From, To float64
}

// Angles holds the arc sectors indexed by orientation and corner.
var Angles = [2][3]Sector{
	triangle.Up: {
		{5 * math.Pi / 3, 2 * math.Pi},
		{math.Pi, 4 * math.Pi / 3},
		{math.Pi / 3, 2 * math.Pi / 3},
	},
	triangle.Down: {
		{0, math.Pi / 3},
		{2 * math.Pi / 3, math.Pi},
		{4 * math.Pi / 3, 5 * math.Pi / 3},
	},
}

// SectorFor returns the sector for corner of a triangle with orientation o.
func SectorFor(o triangle.Orientation, corner int) Sector {
	return Angles[o][corner%3]
}
