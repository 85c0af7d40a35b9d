package pattern

import (
	"fmt"
	"math"

	"github.com/matzehuels/truchet/pkg/core/random"
)

// cos30 is cos(π/6), the ratio of an equilateral triangle's height to its side.
var cos30 = math.Cos(math.Pi / 6)

// Budget is the arc allocation for one triangle.
type Budget struct {
	Capacity float64
	N        int // arcs at the first two visited corners
	M        int // lower bound of the P1 draw
}

// ComputeBudget derives N and M from the triangle's line capacity and side
// length.
func ComputeBudget(capacity, sideLength float64, s Style) Budget {
	n := int(math.Floor(cos30 * capacity))
	if n > 0 && Overflows(n, sideLength, s) {
		n--
	}

	m := int(capacity - float64(n))
	if m > n {
		m = n
	}
	return Budget{Capacity: capacity, N: n, M: m}
}

// Overflows reports whether n arcs of the given style would reach past the
// triangle's usable radius.
func Overflows(n int, sideLength float64, s Style) bool {
	return float64(n)*s.LineSpacing+s.StrokeWeight/1.2 >= cos30*sideLength
}

// Split is the outcome of the P1 draw.
type Split struct {
	P1 int
	P2 float64
}

// Third returns the arc count for the third visited corner.
func (s Split) Third() int {
	return int(math.Min(float64(s.P1), s.P2))
}

// Draw picks P1 uniformly in [M, N] and sets P2 = Capacity − P1.
//
// ComputeBudget clamps M to N, so M > N here means the budget was built by
// hand and broken; Draw panics rather than return a meaningless split.
func (b Budget) Draw(src random.Source) Split {
	if b.M > b.N {
		panic(fmt.Sprintf("pattern: invalid budget, m=%d > n=%d", b.M, b.N))
	}
	p1 := random.Range(src, b.M, b.N)
	return Split{P1: p1, P2: b.Capacity - float64(p1)}
}
