package geometry

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestMidpoint(t *testing.T) {
	m := Midpoint(Pt(0, 0), Pt(4, -2))
	if !near(m.X, 2) || !near(m.Y, -1) {
		t.Errorf("Midpoint = %v, want (2, -1)", m)
	}
}

func TestPolar(t *testing.T) {
	tests := []struct {
		name  string
		angle float64
		wantX float64
		wantY float64
	}{
		{"zero", 0, 11, 5},
		{"quarter", math.Pi / 2, 10, 6},
		{"half", math.Pi, 9, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Polar(Pt(10, 5), 1, tt.angle)
			if !near(p.X, tt.wantX) || !near(p.Y, tt.wantY) {
				t.Errorf("Polar(%v) = %v, want (%v, %v)", tt.angle, p, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestRotate(t *testing.T) {
	p := Rotate(Pt(1, 0), math.Pi/2)
	if !near(p.X, 0) || !near(p.Y, 1) {
		t.Errorf("Rotate = %v, want (0, 1)", p)
	}
}

func TestBounds(t *testing.T) {
	r := Bounds(Pt(1, 2), Pt(-3, 5), Pt(0, -1))
	if !near(r.Min.X, -3) || !near(r.Min.Y, -1) || !near(r.Max.X, 1) || !near(r.Max.Y, 5) {
		t.Errorf("Bounds = %+v", r)
	}
	if r.Width() != 4 || r.Height() != 6 {
		t.Errorf("Bounds size = %v x %v, want 4 x 6", r.Width(), r.Height())
	}
}

func TestNewArcSpan(t *testing.T) {
	a := NewArcSpan(Pt(0, 0), 2, 0, math.Pi/3)
	if a.LargeArc {
		t.Error("60 degree arc should not be a large arc")
	}
	if !a.Sweep {
		t.Error("arcs always sweep in the positive direction")
	}
	if !near(a.Start.X, 2) || !near(a.Start.Y, 0) {
		t.Errorf("Start = %v, want (2, 0)", a.Start)
	}
	if !near(a.End.DistanceFrom(a.Center), 2) {
		t.Errorf("End is not on the circle: %v", a.End)
	}

	big := NewArcSpan(Pt(0, 0), 1, 0, 3*math.Pi/2)
	if !big.LargeArc {
		t.Error("270 degree arc should be a large arc")
	}
}

func TestArcSpanDegenerate(t *testing.T) {
	for _, r := range []float64{0, -1} {
		if !NewArcSpan(Pt(0, 0), r, 0, 1).Degenerate() {
			t.Errorf("radius %v should be degenerate", r)
		}
	}
	if NewArcSpan(Pt(0, 0), 0.1, 0, 1).Degenerate() {
		t.Error("positive radius should not be degenerate")
	}
}
