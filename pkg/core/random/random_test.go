package random

import "testing"

func TestNewDeterministic(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestRangeInclusive(t *testing.T) {
	src := New(7)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := Range(src, 2, 6)
		if v < 2 || v > 6 {
			t.Fatalf("Range(2, 6) = %d, out of bounds", v)
		}
		seen[v] = true
	}
	for v := 2; v <= 6; v++ {
		if !seen[v] {
			t.Errorf("Range(2, 6) never produced %d", v)
		}
	}
}

func TestRangeSingleValue(t *testing.T) {
	src := New(1)
	for i := 0; i < 10; i++ {
		if v := Range(src, 3, 3); v != 3 {
			t.Fatalf("Range(3, 3) = %d", v)
		}
	}
}

func TestRangePanicsOnInvertedBounds(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Range(5, 4) should panic")
		}
	}()
	Range(New(1), 5, 4)
}

func TestDeriveIndependent(t *testing.T) {
	a1, a2 := Derive(42, 3), Derive(42, 3)
	if a1.Uint64() != a2.Uint64() {
		t.Error("Derive should be deterministic for equal seed and index")
	}

	b, c := Derive(42, 0), Derive(42, 1)
	same := true
	for i := 0; i < 8; i++ {
		if b.Uint64() != c.Uint64() {
			same = false
		}
	}
	if same {
		t.Error("different indices should give different streams")
	}
}
