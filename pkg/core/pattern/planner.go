package pattern

import (
	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/random"
	"github.com/matzehuels/truchet/pkg/core/triangle"
)

// Style holds the drawing parameters shared by all triangles.
type Style struct {
	LineSpacing  float64 // radial distance between successive arcs
	StrokeWeight float64 // line thickness
	Foreground   string
	Background   string
}

func (s Style) paint() draw.Paint {
	return draw.Paint{
		Foreground:  s.Foreground,
		Background:  s.Background,
		StrokeWidth: s.StrokeWeight,
	}
}

// Corner is the plan for one visited corner.
type Corner struct {
	Index  int // physical vertex index
	Sector Sector
	Arcs   int
}

// Layout is the arc plan for one triangle.
type Layout struct {
	Start   int // first visited corner
	Budget  Budget
	Split   Split
	Corners [3]Corner
}

// Radii returns the arc radii at a corner, outermost first.
func (c Corner) Radii(spacing float64) []float64 {
	radii := make([]float64, c.Arcs)
	for j := range radii {
		radii[j] = float64(c.Arcs-j) * spacing
	}
	return radii
}

// LayoutTriangle decides the arc counts and sectors for t. It draws from src
// exactly twice: the start corner, then P1.
func LayoutTriangle(t triangle.Triangle, s Style, src random.Source) Layout {
	start := src.IntN(3)
	budget := ComputeBudget(t.LineCapacity, t.SideLength(), s)
	split := budget.Draw(src)

	l := Layout{Start: start, Budget: budget, Split: split}
	for i := range l.Corners {
		idx := (start + i) % 3
		arcs := budget.N
		if i == 2 {
			arcs = split.Third()
		}
		l.Corners[i] = Corner{
			Index:  idx,
			Sector: SectorFor(t.Orientation, idx),
			Arcs:   arcs,
		}
	}
	return l
}

// Instructions renders a layout into drawing instructions: for each visited
// corner its arcs, outermost first, then the corner dot.
func (l Layout) Instructions(t triangle.Triangle, s Style) []draw.Instruction {
	p := s.paint()
	var out []draw.Instruction
	for _, c := range l.Corners {
		center := t.Vertex(c.Index)
		for _, r := range c.Radii(s.LineSpacing) {
			out = append(out, draw.Arc(center, r, c.Sector.From, c.Sector.To, p)...)
		}
		out = append(out, draw.Dot(center, s.StrokeWeight/2, s.Foreground))
	}
	return out
}

// PlanTriangle lays out t and returns its drawing instructions.
func PlanTriangle(t triangle.Triangle, s Style, src random.Source) []draw.Instruction {
	return LayoutTriangle(t, s, src).Instructions(t, s)
}

// Plan plans every leaf in order from a single source.
func Plan(leaves []triangle.Triangle, s Style, src random.Source) []draw.Instruction {
	var out []draw.Instruction
	for _, t := range leaves {
		out = append(out, PlanTriangle(t, s, src)...)
	}
	return out
}
