// Package draw defines the drawing instructions handed from the pattern
// planner to a renderer.
//
// The core never rasterizes or serializes anything itself. It emits an
// ordered list of [Instruction] values (wedge fills, stroked arcs and corner
// dots) in painter's order, and renderers in pkg/render/sink turn them into
// SVG, PNG, PDF or JSON.
package draw

import (
	"github.com/matzehuels/truchet/pkg/core/geometry"
)

// Kind identifies an instruction type.
type Kind string

const (
	// KindWedge is a closed pie slice: center, start point, arc to end
	// point, back to center. Filled, never stroked.
	KindWedge Kind = "wedge"
	// KindArc is an open arc from start point to end point. Stroked with a
	// round cap, never filled.
	KindArc Kind = "arc"
	// KindDot is a filled circle.
	KindDot Kind = "dot"
)

// Instruction is one drawing primitive. Fields that do not apply to a kind
// are left zero.
type Instruction struct {
	Kind        Kind           `json:"kind"`
	Center      geometry.Point `json:"center"`
	Radius      float64        `json:"radius"`
	Start       geometry.Point `json:"start,omitzero"`
	End         geometry.Point `json:"end,omitzero"`
	LargeArc    bool           `json:"large_arc,omitempty"`
	Sweep       bool           `json:"sweep,omitempty"`
	Fill        string         `json:"fill,omitempty"`
	Stroke      string         `json:"stroke,omitempty"`
	StrokeWidth float64        `json:"stroke_width,omitempty"`
	RoundCap    bool           `json:"round_cap,omitempty"`
}

// Span returns the arc geometry of a wedge or arc instruction.
func (in Instruction) Span() geometry.ArcSpan {
	return geometry.ArcSpan{
		Center:   in.Center,
		Radius:   in.Radius,
		Start:    in.Start,
		End:      in.End,
		LargeArc: in.LargeArc,
		Sweep:    in.Sweep,
	}
}

// Paint holds the colours and stroke width used for arcs.
type Paint struct {
	Foreground  string
	Background  string
	StrokeWidth float64
}

// Arc returns the two instructions that draw one visible arc: a wedge filled
// with the background colour that masks whatever lies beneath, followed by
// the stroked arc in the foreground colour. A radius <= 0 yields nil.
func Arc(center geometry.Point, radius, from, to float64, p Paint) []Instruction {
	span := geometry.NewArcSpan(center, radius, from, to)
	if span.Degenerate() {
		return nil
	}
	wedge := Instruction{
		Kind:     KindWedge,
		Center:   center,
		Radius:   radius,
		Start:    span.Start,
		End:      span.End,
		LargeArc: span.LargeArc,
		Sweep:    span.Sweep,
		Fill:     p.Background,
	}
	stroke := wedge
	stroke.Kind = KindArc
	stroke.Fill = ""
	stroke.Stroke = p.Foreground
	stroke.StrokeWidth = p.StrokeWidth
	stroke.RoundCap = true
	return []Instruction{wedge, stroke}
}

// Dot returns a filled circle.
func Dot(center geometry.Point, radius float64, color string) Instruction {
	return Instruction{Kind: KindDot, Center: center, Radius: radius, Fill: color}
}

// Count tallies instructions by kind.
func Count(ins []Instruction) map[Kind]int {
	counts := make(map[Kind]int, 3)
	for _, in := range ins {
		counts[in.Kind]++
	}
	return counts
}
