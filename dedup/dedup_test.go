package dedup

import (
	"testing"

	"github.com/bpasanek/puzzlecode/placement"
)

func TestNormalizeRenumbersInFirstAppearanceOrder(t *testing.T) {
	t.Parallel()
	got := Normalize([]int{0, 5, 5, 2, 2, 9})
	want := []int{0, 1, 1, 2, 2, 3}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Normalize() = %v, want %v", got, want)
		}
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	t.Parallel()
	once := Normalize([]int{0, 3, 1, 1, 2})
	twice := Normalize(once)
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("Normalize(Normalize(x)) = %v, want %v", twice, once)
		}
	}
}

func TestFilterDropsRotationalDuplicate(t *testing.T) {
	t.Parallel()
	// 2x2 grid, ids 0,1,2,3 laid out:
	//   2 3
	//   0 1
	// 180-degree rotation about the centre swaps (0<->3, 1<->2).
	perm180 := placement.Permutation{3, 2, 1, 0}
	identity := placement.Permutation{0, 1, 2, 3}

	f := NewFilter[uint8]([]placement.Permutation{identity, perm180})

	stateA := []int{1, 1, 2, 2} // piece 1 at cells 0,1; piece 2 at cells 2,3
	stateB := []int{2, 2, 1, 1} // the 180-degree rotation of stateA

	if !f.Keep(stateA) {
		t.Fatal("first solution should be kept")
	}
	if f.Keep(stateB) {
		t.Error("rotational duplicate of an already-seen solution should be dropped")
	}
}

func TestFilterKeepsGenuinelyDistinctSolutions(t *testing.T) {
	t.Parallel()
	identity := placement.Permutation{0, 1, 2, 3}
	f := NewFilter[uint16]([]placement.Permutation{identity})

	if !f.Keep([]int{1, 1, 2, 2}) {
		t.Fatal("first solution should be kept")
	}
	if !f.Keep([]int{1, 2, 1, 2}) {
		t.Error("a genuinely different piece layout should be kept")
	}
}

func TestFilterLenTracksRotationsRecorded(t *testing.T) {
	t.Parallel()
	identity := placement.Permutation{0, 1, 2, 3}
	perm180 := placement.Permutation{3, 2, 1, 0}
	f := NewFilter[uint32]([]placement.Permutation{identity, perm180})
	f.Keep([]int{1, 1, 2, 2})
	if f.Len() == 0 {
		t.Error("Len() should reflect recorded rotations after a Keep")
	}
}
