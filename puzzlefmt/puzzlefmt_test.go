package puzzlefmt

import (
	"strings"
	"testing"
)

func TestParseDominoPuzzleViaCoordinates(t *testing.T) {
	t.Parallel()
	src := `
# a 2x3x1 box tiled by three dominoes
D:xDim=2:yDim=3:zDim=1
C:name=A:type=M:layout=0 0 0, 1 0 0
C:name=B:type=M:layout=0 1 0, 1 1 0
C:name=C:type=M:layout=0 2 0, 1 2 0
~D
`
	cfgs, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfgs) != 1 {
		t.Fatalf("len(cfgs) = %d, want 1", len(cfgs))
	}
	cfg := cfgs[0]
	if cfg.XDim != 2 || cfg.YDim != 3 || cfg.ZDim != 1 {
		t.Errorf("dims = (%d,%d,%d), want (2,3,1)", cfg.XDim, cfg.YDim, cfg.ZDim)
	}
	if len(cfg.Mobile()) != 3 {
		t.Errorf("len(Mobile()) = %d, want 3", len(cfg.Mobile()))
	}
}

func TestParseLayoutBlockAssignsRowsTopDown(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=2:yDim=2:zDim=1:oneSide
C:name=B:type=M:layout=1 0 0
L:stationary=X
A A
X .
~L
~D
`
	cfgs, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	cfg := cfgs[0]
	var a, x *PieceDef
	for i := range cfg.Pieces {
		switch cfg.Pieces[i].Name {
		case "A":
			a = &cfg.Pieces[i]
		case "X":
			x = &cfg.Pieces[i]
		}
	}
	if a == nil || x == nil {
		t.Fatalf("expected pieces A and X, got %v", cfg.Pieces)
	}
	if x.Mobility.String() != "stationary" {
		t.Errorf("X mobility = %v, want stationary", x.Mobility)
	}
	if a.Mobility.String() != "mobile" {
		t.Errorf("A mobility = %v, want mobile", a.Mobility)
	}
	// first layout line is the top row, y = yDim-1 = 1.
	foundTopRow := false
	for _, p := range a.Layout {
		if p.Y == 1 {
			foundTopRow = true
		}
	}
	if !foundTopRow {
		t.Errorf("A layout %v should include a cell at y=1 (top row read first)", a.Layout)
	}
}

func TestParseRejectsVolumeMismatch(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=2:yDim=2:zDim=1
C:name=A:type=M:layout=0 0 0
~D
`
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a volume-mismatch error")
	}
}

func TestParseRejectsStationaryOverlap(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=2:yDim=1:zDim=1
C:name=A:type=S:layout=0 0 0
C:name=B:type=S:layout=0 0 0
~D
`
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a stationary-overlap error")
	}
}

func TestParseRejectsOutOfBoundsCoordinate(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=1:yDim=1:zDim=1
C:name=A:type=M:layout=5 5 5
~D
`
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected an out-of-bounds error")
	}
}

func TestParseRejectsOneSidedWithZDimGreaterThanOne(t *testing.T) {
	t.Parallel()
	_, err := Parse(strings.NewReader("D:xDim=2:yDim=2:zDim=2:oneSide\n~D\n"))
	if err == nil {
		t.Fatal("expected oneSide + zDim>1 to be rejected")
	}
}

func TestParseMultiplePuzzlesInOneStream(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=1:yDim=1:zDim=1
C:name=A:type=M:layout=0 0 0
~D
D:xDim=1:yDim=1:zDim=1
C:name=B:type=M:layout=0 0 0
~D
`
	cfgs, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(cfgs) != 2 {
		t.Fatalf("len(cfgs) = %d, want 2", len(cfgs))
	}
}

func TestParseRejectsDuplicatePieceName(t *testing.T) {
	t.Parallel()
	src := `
D:xDim=1:yDim=2:zDim=1
C:name=A:type=M:layout=0 0 0
C:name=A:type=M:layout=0 1 0
~D
`
	_, err := Parse(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected a duplicate-piece-name error")
	}
}
