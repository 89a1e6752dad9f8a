package heuristic

import (
	"testing"

	"github.com/bpasanek/puzzlecode/dlx"
	"github.com/bpasanek/puzzlecode/geometry"
)

func TestForcedTiersOutrankGeometric(t *testing.T) {
	t.Parallel()
	h := Fit{}
	noFit := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 0})
	oneFit := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 1})
	geo := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 5})
	piece := h.Score(ColumnInfo{Kind: dlx.ColumnShape})

	if !noFit.Less(oneFit) {
		t.Error("NO_FIT should outrank ONE_FIT")
	}
	if !oneFit.Less(geo) {
		t.Error("ONE_FIT should outrank any geometric score")
	}
	if !geo.Less(piece) {
		t.Error("a geometric score should outrank PIECE")
	}
}

func TestFitScoresByNumRow(t *testing.T) {
	t.Parallel()
	h := Fit{}
	a := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 3})
	b := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 7})
	if !a.Less(b) {
		t.Error("fewer live rows should score lower (win)")
	}
}

func TestLinearScoresByWeightedCoordinate(t *testing.T) {
	t.Parallel()
	h := Linear{A: 1, B: 0, C: 0}
	a := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 2, Point: geometry.Point{X: 1}})
	b := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 2, Point: geometry.Point{X: 5}})
	if !a.Less(b) {
		t.Error("smaller x should score lower under a=1,b=0,c=0")
	}
}

func TestRadialPrefersFarthestFromCentre(t *testing.T) {
	t.Parallel()
	h := Radial{XC: 0, YC: 0, ZC: 0}
	near := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 2, Point: geometry.Point{X: 1}})
	far := h.Score(ColumnInfo{Kind: dlx.ColumnGridPoint, NumRow: 2, Point: geometry.Point{X: 10}})
	if !far.Less(near) {
		t.Error("radial heuristic should prefer the farther cell (lower score)")
	}
}

func TestTableSelectPicksLargestThresholdBelowK(t *testing.T) {
	t.Parallel()
	table := NewTable([]Entry{
		{Threshold: 0, Spec: Fit{}},
		{Threshold: 10, Spec: Linear{A: 1}},
		{Threshold: 20, Spec: Radial{}},
	})
	if _, ok := table.Select(5).(Fit); !ok {
		t.Errorf("Select(5) = %T, want Fit", table.Select(5))
	}
	if _, ok := table.Select(15).(Linear); !ok {
		t.Errorf("Select(15) = %T, want Linear", table.Select(15))
	}
	if _, ok := table.Select(25).(Radial); !ok {
		t.Errorf("Select(25) = %T, want Radial", table.Select(25))
	}
}

func TestTableSelectDefaultsToFitWhenEmpty(t *testing.T) {
	t.Parallel()
	table := NewTable(nil)
	if _, ok := table.Select(100).(Fit); !ok {
		t.Errorf("empty table Select() = %T, want Fit default", table.Select(100))
	}
}
