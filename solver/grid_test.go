package solver

import (
	"errors"
	"strings"
	"testing"
)

// superArmor is the shared 7x7 placement fixture.
func superArmor(t *testing.T) *Mask {
	t.Helper()
	return parseMask(t,
		"#......",
		"##.....",
		"#......",
		".......",
		".......",
		".......",
		".......",
	)
}

func settings7x7(hasOOB bool) GridSettings {
	return GridSettings{Width: 7, Height: 7, HasOOB: hasOOB, CommandLineRow: 3}
}

func wantBoard(rows ...string) string {
	return strings.Join(rows, "\n")
}

func TestGridPlace(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	if err := grid.Place(superArmor(t), Location{}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	want := wantBoard(
		"0......",
		"00.....",
		"0......",
		".......",
		".......",
		".......",
		".......",
	)
	if got := grid.String(); got != want {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, want)
	}
}

func TestGridPlaceRot(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	if err := grid.Place(superArmor(t), Location{Rotation: 1}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	want := wantBoard(
		"....000",
		".....0.",
		".......",
		".......",
		".......",
		".......",
		".......",
	)
	if got := grid.String(); got != want {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, want)
	}
}

func TestGridPlaceNonzeroPos(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	if err := grid.Place(superArmor(t), Location{Position: Position{X: 1}}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	want := wantBoard(
		".0.....",
		".00....",
		".0.....",
		".......",
		".......",
		".......",
		".......",
	)
	if got := grid.String(); got != want {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, want)
	}
}

func TestGridPlaceNegPos(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	mask := parseMask(t,
		".#.....",
		".##....",
		".#.....",
		".......",
		".......",
		".......",
		".......",
	)
	if err := grid.Place(mask, Location{Position: Position{X: -1}}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	want := wantBoard(
		"0......",
		"00.....",
		"0......",
		".......",
		".......",
		".......",
		".......",
	)
	if got := grid.String(); got != want {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, want)
	}
}

func TestGridPlaceSmallerMask(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	mask := parseMask(t,
		"#.",
		"##",
		"#.",
	)
	if err := grid.Place(mask, Location{}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	want := wantBoard(
		"0......",
		"00.....",
		"0......",
		".......",
		".......",
		".......",
		".......",
	)
	if got := grid.String(); got != want {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, want)
	}
}

func TestGridPlaceSourceClippedDoesNotMutate(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	before := grid.String()
	err := grid.Place(superArmor(t), Location{Position: Position{X: -1, Y: -1}}, 0)
	if !errors.Is(err, ErrSourceClipped) {
		t.Fatalf("expected ErrSourceClipped, got %v", err)
	}
	if got := grid.String(); got != before {
		t.Errorf("rejected placement mutated the board:\n%v", got)
	}
}

func TestGridPlaceSourceClippedOtherSide(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	err := grid.Place(superArmor(t), Location{Position: Position{X: 6}}, 0)
	if !errors.Is(err, ErrSourceClipped) {
		t.Fatalf("expected ErrSourceClipped, got %v", err)
	}
}

func TestGridPlaceDestinationClobberedDoesNotMutate(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	blocker := parseMask(t, "#")
	if err := grid.Place(blocker, Location{}, 2); err != nil {
		t.Fatalf("setup place failed: %v", err)
	}
	before := grid.String()
	err := grid.Place(superArmor(t), Location{}, 0)
	if !errors.Is(err, ErrDestinationClobbered) {
		t.Fatalf("expected ErrDestinationClobbered, got %v", err)
	}
	if got := grid.String(); got != before {
		t.Errorf("rejected placement mutated the board:\n%v", got)
	}
}

func TestGridForbiddenCorners(t *testing.T) {
	grid := NewGrid(settings7x7(true))
	want := wantBoard(
		"X.....X",
		".......",
		".......",
		".......",
		".......",
		".......",
		"X.....X",
	)
	if got := grid.String(); got != want {
		t.Fatalf("corner cells not forbidden:\n%v", got)
	}

	// A placement touching a forbidden corner is a clobber, never a clip.
	err := grid.Place(superArmor(t), Location{}, 0)
	if !errors.Is(err, ErrDestinationClobbered) {
		t.Fatalf("expected ErrDestinationClobbered, got %v", err)
	}
	if got := grid.String(); got != want {
		t.Errorf("rejected placement mutated the board:\n%v", got)
	}

	// Shifted off the corner it fits.
	if err := grid.Place(superArmor(t), Location{Position: Position{X: 1}}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	wantPlaced := wantBoard(
		"X0....X",
		".00....",
		".0.....",
		".......",
		".......",
		".......",
		"X.....X",
	)
	if got := grid.String(); got != wantPlaced {
		t.Errorf("board mismatch:\n%v\nwant:\n%v", got, wantPlaced)
	}
}

func TestGridPlaceShapesMismatched(t *testing.T) {
	grid := NewGrid(GridSettings{Width: 3, Height: 3, CommandLineRow: 1})
	mask := parseMask(t,
		"#......",
		"##.....",
		"#......",
		".......",
		".......",
		".......",
		".......",
	)
	err := grid.Place(mask, Location{}, 0)
	var mismatch *ShapesMismatchedError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ShapesMismatchedError, got %v", err)
	}
	if mismatch.GridWidth != 3 || mismatch.MaskWidth != 7 {
		t.Errorf("unexpected error contents: %+v", mismatch)
	}
}

func TestGridClone(t *testing.T) {
	grid := NewGrid(settings7x7(false))
	clone := grid.Clone()
	if err := clone.Place(superArmor(t), Location{}, 0); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if grid.At(0, 0) != CellEmpty {
		t.Error("mutating a clone leaked into the original grid")
	}
	if clone.At(0, 0) != 0 {
		t.Error("clone did not take the placement")
	}
}
