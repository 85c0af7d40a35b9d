package grid

import (
	"math"
	"testing"

	"github.com/matzehuels/truchet/pkg/core/geometry"
	"github.com/matzehuels/truchet/pkg/core/triangle"
	"github.com/matzehuels/truchet/pkg/errors"
)

const eps = 1e-9

func TestHexagonShape(t *testing.T) {
	tris := Hexagon(2000, 150, 64)
	if len(tris) != Count {
		t.Fatalf("got %d triangles, want %d", len(tris), Count)
	}

	b := Side(2000, 150)
	if b != 850 {
		t.Fatalf("Side = %v, want 850", b)
	}

	for i, tri := range tris {
		for j := 0; j < 3; j++ {
			side := tri.Vertex(j).DistanceFrom(tri.Vertex(j + 1))
			if math.Abs(side-b) > eps {
				t.Errorf("triangle %d side %d = %v, want %v", i, j, side, b)
			}
		}
		if tri.LineCapacity != 64 {
			t.Errorf("triangle %d capacity = %v, want 64", i, tri.LineCapacity)
		}
	}
}

func TestHexagonOrientations(t *testing.T) {
	want := []triangle.Orientation{
		triangle.Up, triangle.Down, triangle.Up,
		triangle.Down, triangle.Up, triangle.Down,
	}
	for i, tri := range Hexagon(100, 10, 4) {
		if tri.Orientation != want[i] {
			t.Errorf("triangle %d orientation = %v, want %v", i, tri.Orientation, want[i])
		}
	}
}

func TestHexagonArea(t *testing.T) {
	tris := Hexagon(1000, 100, 8)
	b := Side(1000, 100)

	var sum float64
	for _, tri := range tris {
		sum += tri.Area()
	}
	want := 3 * math.Sqrt(3) / 2 * b * b
	if math.Abs(sum-want) > 1e-6 {
		t.Errorf("total area = %v, want %v", sum, want)
	}
}

func TestHexagonSharedEdges(t *testing.T) {
	tris := Hexagon(600, 50, 8)

	shared := func(a, b triangle.Triangle) int {
		n := 0
		for _, p := range a.Vertices {
			for _, q := range b.Vertices {
				if p.DistanceFrom(q) < eps {
					n++
				}
			}
		}
		return n
	}

	// neighbours around the hexagon: 0-1, 1-2, 3-4, 4-5 and across the axis 0-3, 2-5
	pairs := [][2]int{{0, 1}, {1, 2}, {3, 4}, {4, 5}, {0, 3}, {2, 5}}
	for _, p := range pairs {
		if n := shared(tris[p[0]], tris[p[1]]); n != 2 {
			t.Errorf("triangles %d and %d share %d vertices, want 2", p[0], p[1], n)
		}
	}
}

func TestHexagonCentred(t *testing.T) {
	var pts []geometry.Point
	for _, tri := range Hexagon(400, 0, 1) {
		pts = append(pts, tri.Vertices[:]...)
	}
	r := geometry.Bounds(pts...)
	if math.Abs(r.Min.X+r.Max.X) > eps || math.Abs(r.Min.Y+r.Max.Y) > eps {
		t.Errorf("hexagon not centred on origin: %+v", r)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		width, border float64
		wantErr       bool
	}{
		{"ok", 2000, 150, false},
		{"zero border", 10, 0, false},
		{"border too wide", 300, 150, true},
		{"negative extent", 100, 80, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.width, tt.border)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate(%v, %v) error = %v, wantErr %v", tt.width, tt.border, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidConfig)
			}
		})
	}
}
