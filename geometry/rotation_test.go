package geometry

import "testing"

func TestIdentityIsNoOp(t *testing.T) {
	t.Parallel()
	p := Point{1, -2, 3}
	if got := Identity.Apply(p); got != p {
		t.Errorf("Identity.Apply(%v) = %v, want %v", p, got, p)
	}
}

func TestComposeMatchesSequentialApply(t *testing.T) {
	t.Parallel()
	p := Point{1, 2, 3}
	for a := Rotation(0); a < 24; a++ {
		for b := Rotation(0); b < 24; b++ {
			got := a.Compose(b).Apply(p)
			want := b.Apply(a.Apply(p))
			if got != want {
				t.Fatalf("Compose(%d,%d).Apply(%v) = %v, want %v", a, b, p, got, want)
			}
		}
	}
}

func TestInverseUndoesRotation(t *testing.T) {
	t.Parallel()
	p := Point{2, -1, 4}
	for r := Rotation(0); r < 24; r++ {
		got := r.Inverse().Apply(r.Apply(p))
		if got != p {
			t.Errorf("rotation %d: inverse did not round-trip: got %v, want %v", r, got, p)
		}
	}
}

func TestZAxisRotationsFixZ(t *testing.T) {
	t.Parallel()
	rs := ZAxisRotations()
	if len(rs) != 4 {
		t.Fatalf("len(ZAxisRotations()) = %d, want 4", len(rs))
	}
	z := Point{0, 0, 1}
	for _, r := range rs {
		if got := r.Apply(z); got != z {
			t.Errorf("z-axis rotation %d moved z unit vector to %v", r, got)
		}
	}
}

func TestPointParity(t *testing.T) {
	t.Parallel()
	tests := []struct {
		p    Point
		want int
	}{
		{Point{0, 0, 0}, 1},
		{Point{1, 0, 0}, -1},
		{Point{1, 1, 0}, 1},
		{Point{1, 1, 1}, -1},
		{Point{-1, -1, 0}, 1},
	}
	for _, tt := range tests {
		if got := tt.p.Parity(); got != tt.want {
			t.Errorf("%v.Parity() = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestApplyBoxStaysInBoundsForCube(t *testing.T) {
	t.Parallel()
	dims := Point{3, 3, 3}
	for r := Rotation(0); r < 24; r++ {
		if !r.PreservesBox(dims) {
			t.Fatalf("rotation %d should preserve a cube box", r)
		}
		for x := 0; x < 3; x++ {
			for y := 0; y < 3; y++ {
				for z := 0; z < 3; z++ {
					got := r.ApplyBox(Point{x, y, z}, dims)
					if got.X < 0 || got.X >= 3 || got.Y < 0 || got.Y >= 3 || got.Z < 0 || got.Z >= 3 {
						t.Fatalf("rotation %d mapped %v out of bounds to %v", r, Point{x, y, z}, got)
					}
				}
			}
		}
	}
}

func TestApplyBoxBijectiveOnCube(t *testing.T) {
	t.Parallel()
	dims := Point{2, 2, 2}
	for r := Rotation(0); r < 24; r++ {
		seen := map[Point]bool{}
		for x := 0; x < 2; x++ {
			for y := 0; y < 2; y++ {
				for z := 0; z < 2; z++ {
					got := r.ApplyBox(Point{x, y, z}, dims)
					if seen[got] {
						t.Fatalf("rotation %d is not injective on the box: collision at %v", r, got)
					}
					seen[got] = true
				}
			}
		}
	}
}

func TestPreservesBoxRejectsNonCubeMismatch(t *testing.T) {
	t.Parallel()
	dims := Point{2, 3, 5}
	any := false
	rejected := 0
	for r := Rotation(0); r < 24; r++ {
		if r.PreservesBox(dims) {
			any = true
		} else {
			rejected++
		}
	}
	if !any {
		t.Fatal("expected at least the identity to preserve an asymmetric box")
	}
	if rejected == 0 {
		t.Error("expected rotations that permute unequal axes to be rejected for a 2x3x5 box")
	}
	if !Identity.PreservesBox(dims) {
		t.Error("identity must always preserve any box")
	}
}

func TestSortPoints(t *testing.T) {
	t.Parallel()
	pts := []Point{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {0, 0, 0}}
	SortPoints(pts)
	want := []Point{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {1, 0, 0}}
	for i := range pts {
		if pts[i] != want[i] {
			t.Errorf("SortPoints()[%d] = %v, want %v", i, pts[i], want[i])
		}
	}
}
