package solver

import (
	"errors"
	"fmt"
	"strings"
)

// Cell states stored in a Grid. Values >= 0 are the requirement index that
// placed the cell.
const (
	CellEmpty     = -1
	CellForbidden = -2
)

// Placement errors. Clipped and clobbered placements are expected during
// search and are recovered by skipping the candidate; a shape mismatch is a
// configuration error.
var (
	ErrSourceClipped        = errors.New("source clipped")
	ErrDestinationClobbered = errors.New("destination clobbered")
)

// ShapesMismatchedError reports a mask that cannot fit the board at all,
// regardless of position.
type ShapesMismatchedError struct {
	GridHeight, GridWidth int
	MaskHeight, MaskWidth int
}

func (e *ShapesMismatchedError) Error() string {
	return fmt.Sprintf("mismatching shapes: grid %dx%d, mask %dx%d",
		e.GridHeight, e.GridWidth, e.MaskHeight, e.MaskWidth)
}

// Position is the signed offset of a mask's origin relative to the board's
// origin. Negative offsets hang the mask off the top/left edge; this is fine
// as long as no occupied cell falls outside the board.
type Position struct {
	X int
	Y int
}

// Location determines where a part is placed: a position plus a number of 90
// degree clockwise turns applied before placement.
type Location struct {
	Position Position
	Rotation int
}

// GridSettings describes the puzzle surface.
type GridSettings struct {
	Width          int
	Height         int
	HasOOB         bool
	CommandLineRow int
}

// Grid is the mutable occupancy model of the puzzle surface. Cells hold
// CellEmpty, CellForbidden, or the index of the requirement occupying them.
// Forbidden cells are written once at construction and never overwritten.
type Grid struct {
	settings GridSettings
	cells    []int
}

// NewGrid builds an empty grid. When HasOOB is set the four corner cells are
// permanently forbidden.
func NewGrid(settings GridSettings) *Grid {
	g := &Grid{
		settings: settings,
		cells:    make([]int, settings.Width*settings.Height),
	}
	for i := range g.cells {
		g.cells[i] = CellEmpty
	}
	if settings.HasOOB {
		w, h := settings.Width, settings.Height
		g.cells[0] = CellForbidden
		g.cells[w-1] = CellForbidden
		g.cells[(h-1)*w] = CellForbidden
		g.cells[(h-1)*w+w-1] = CellForbidden
	}
	return g
}

// Settings returns the settings the grid was built with.
func (g *Grid) Settings() GridSettings { return g.settings }

// At returns the cell state at (x, y).
func (g *Grid) At(x, y int) int {
	return g.cells[y*g.settings.Width+x]
}

// PlaceableCells returns the number of non-forbidden cells.
func (g *Grid) PlaceableCells() int {
	n := 0
	for _, c := range g.cells {
		if c != CellForbidden {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the grid. Search branches each operate
// on their own clone so a failed branch never corrupts its siblings.
func (g *Grid) Clone() *Grid {
	out := &Grid{settings: g.settings, cells: make([]int, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Place rotates mask per loc, then writes it onto the board at loc.Position
// for the given requirement index. Validation and mutation are strictly
// separated: a rejected placement leaves the grid completely unchanged.
//
// Rejections:
//   - ShapesMismatchedError if the mask is larger than the board;
//   - ErrSourceClipped if an occupied mask cell would fall outside the board;
//   - ErrDestinationClobbered if an occupied mask cell would land on a
//     non-empty board cell (placed or forbidden).
func (g *Grid) Place(mask *Mask, loc Location, requirementIndex int) error {
	w, h := g.settings.Width, g.settings.Height

	mask = mask.Rotate(loc.Rotation)
	if mask.Height() > h || mask.Width() > w {
		return &ShapesMismatchedError{
			GridHeight: h, GridWidth: w,
			MaskHeight: mask.Height(), MaskWidth: mask.Width(),
		}
	}

	// Split the signed offset into a source skip (mask hangs off the top/left)
	// and a destination skip (mask starts inside the board), per axis.
	srcX, dstX := 0, loc.Position.X
	if loc.Position.X < 0 {
		srcX, dstX = -loc.Position.X, 0
	}
	srcY, dstY := 0, loc.Position.Y
	if loc.Position.Y < 0 {
		srcY, dstY = -loc.Position.Y, 0
	}

	// Validate that the mask isn't being clipped: every occupied cell must
	// land inside the visible overlap window.
	for y := 0; y < mask.Height(); y++ {
		for x := 0; x < mask.Width(); x++ {
			if x >= srcX && y >= srcY && x-srcX+dstX < w && y-srcY+dstY < h {
				continue
			}
			if mask.At(x, y) {
				return ErrSourceClipped
			}
		}
	}

	// Validate that nothing on the board is clobbered.
	for y := srcY; y < mask.Height() && y-srcY+dstY < h; y++ {
		for x := srcX; x < mask.Width() && x-srcX+dstX < w; x++ {
			if mask.At(x, y) && g.At(x-srcX+dstX, y-srcY+dstY) != CellEmpty {
				return ErrDestinationClobbered
			}
		}
	}

	// Commit.
	for y := srcY; y < mask.Height() && y-srcY+dstY < h; y++ {
		for x := srcX; x < mask.Width() && x-srcX+dstX < w; x++ {
			if mask.At(x, y) {
				g.cells[(y-srcY+dstY)*w+x-srcX+dstX] = requirementIndex
			}
		}
	}

	return nil
}

// String renders the board for logs: '.' empty, 'X' forbidden, and the
// requirement index modulo 10 for placed cells.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.settings.Height; y++ {
		for x := 0; x < g.settings.Width; x++ {
			switch c := g.At(x, y); c {
			case CellEmpty:
				b.WriteByte('.')
			case CellForbidden:
				b.WriteByte('X')
			default:
				b.WriteByte(byte('0' + c%10))
			}
		}
		if y < g.settings.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
