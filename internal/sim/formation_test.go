package sim

import (
	"math"
	"testing"

	"github.com/Garsondee/drone-escort/internal/vmath"
)

func TestFormationOffsets_Count(t *testing.T) {
	for _, ft := range []FormationType{FormationEchelon, FormationLine, FormationColumn, FormationRing} {
		for _, count := range []int{0, 1, 3, 6} {
			if got := len(formationOffsets(ft, count, 20)); got != count {
				t.Fatalf("%s: expected %d offsets, got %d", ft, count, got)
			}
		}
	}
}

func TestFormationOffsets_EchelonMatchesLaunchLayout(t *testing.T) {
	offsets := formationOffsets(FormationEchelon, 2, 20)
	if offsets[0].X != 0 || offsets[0].Y != 0 {
		t.Fatalf("echelon slot 0 should sit on the player, got %v", offsets[0])
	}
	if offsets[1].X != 20 || offsets[1].Y != 20 {
		t.Fatalf("echelon slot 1 should be (20,20), got %v", offsets[1])
	}
}

func TestFormationOffsets_Line_SameRow(t *testing.T) {
	offsets := formationOffsets(FormationLine, 5, 20)
	for i, o := range offsets {
		if o.Y != 0 {
			t.Fatalf("line slot %d: y offset should be 0, got %.1f", i, o.Y)
		}
	}
	if offsets[1].X >= 0 || offsets[2].X <= 0 {
		t.Fatalf("line slots should alternate sides, got %v %v", offsets[1], offsets[2])
	}
}

func TestFormationOffsets_Column_BelowPlayer(t *testing.T) {
	for i, o := range formationOffsets(FormationColumn, 4, 20) {
		if o.X != 0 || o.Y <= 0 {
			t.Fatalf("column slot %d should be straight below, got %v", i, o)
		}
	}
}

func TestFormationOffsets_Ring_ChordSpacing(t *testing.T) {
	offsets := formationOffsets(FormationRing, 6, 30)
	for i := range offsets {
		j := (i + 1) % len(offsets)
		if d := vmath.Distance(offsets[i], offsets[j]); math.Abs(d-30) > 1e-9 {
			t.Fatalf("ring neighbours %d,%d are %.4f apart, want 30", i, j, d)
		}
	}
}

func TestParseFormation(t *testing.T) {
	for _, ft := range []FormationType{FormationEchelon, FormationLine, FormationColumn, FormationRing} {
		got, err := ParseFormation(ft.String())
		if err != nil || got != ft {
			t.Fatalf("ParseFormation(%q) = %v, %v", ft.String(), got, err)
		}
	}
	if _, err := ParseFormation("phalanx"); err == nil {
		t.Fatal("expected error for unknown formation")
	}
}
