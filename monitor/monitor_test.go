package monitor

import "testing"

func TestParityMonitorDetectsImpossibleTarget(t *testing.T) {
	t.Parallel()
	// Scenario 3 from the test suite: one piece of parity magnitude 1,
	// one piece of parity magnitude 1 (a domino-shaped triomino has
	// parity +-1, a monomino has parity +-1 too) but we want a target
	// unreachable by any sign combination, e.g. target 3 with magnitudes {1,1}.
	m := NewParityMonitor([]int{1, 1})
	if m.CheckParity(3) {
		t.Error("target 3 should be unreachable with two magnitude-1 pieces (max is 2)")
	}
	if !m.CheckParity(2) {
		t.Error("target 2 should be reachable (1+1)")
	}
	if !m.CheckParity(0) {
		t.Error("target 0 should be reachable (1-1)")
	}
}

func TestParityMonitorPlaceUnplaceRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewParityMonitor([]int{1, 2, 2})
	before := append([]int(nil), m.counts...)
	m.Place(2)
	m.Place(1)
	m.Unplace(1)
	m.Unplace(2)
	for i := range before {
		if m.counts[i] != before[i] {
			t.Fatalf("counts not restored: got %v want %v", m.counts, before)
		}
	}
}

func TestParityMonitorEmptyStateOnlyReachesZero(t *testing.T) {
	t.Parallel()
	m := NewParityMonitor([]int{1})
	m.Place(1)
	if !m.CheckParity(0) {
		t.Error("with no pieces remaining, only target 0 is reachable")
	}
	if m.CheckParity(1) {
		t.Error("with no pieces remaining, target 1 should be unreachable")
	}
}

func TestVolumeMonitorSubsetSumReachability(t *testing.T) {
	t.Parallel()
	// pieces of size 2, 3, 3: reachable totals are 0,2,3,5,6,8.
	m := NewVolumeMonitor([]int{2, 3, 3})
	reachable := map[int]bool{0: true, 2: true, 3: true, 5: true, 6: true, 8: true}
	for v := 0; v <= 8; v++ {
		want := reachable[v]
		got := m.CheckVolume(v)
		if got != want {
			t.Errorf("CheckVolume(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestVolumeMonitorOutOfRange(t *testing.T) {
	t.Parallel()
	m := NewVolumeMonitor([]int{1, 1})
	if m.CheckVolume(-1) {
		t.Error("negative volume should never be reachable")
	}
	if m.CheckVolume(3) {
		t.Error("volume exceeding max total should be unreachable")
	}
}

func TestVolumeMonitorPlaceUnplaceRoundTrip(t *testing.T) {
	t.Parallel()
	m := NewVolumeMonitor([]int{4, 4, 5})
	before := append([]int(nil), m.counts...)
	m.Place(5)
	m.Place(4)
	m.Unplace(4)
	m.Unplace(5)
	for i := range before {
		if m.counts[i] != before[i] {
			t.Fatalf("counts not restored: got %v want %v", m.counts, before)
		}
	}
}
