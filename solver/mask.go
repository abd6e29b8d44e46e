package solver

import (
	"fmt"
	"strings"
)

// Mask is the boolean occupancy grid describing one shape a part can take.
// Cell (x, y) is occupied when the flattened row-major buffer holds true at
// y*width+x. A Mask is immutable after construction; rotation and trimming
// return new values.
type Mask struct {
	height int
	width  int
	cells  []bool
}

// ShapeError reports a mask whose declared dimensions disagree with the
// supplied cell buffer.
type ShapeError struct {
	Height int
	Width  int
	Cells  int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("mask shape %dx%d does not fit %d cells", e.Height, e.Width, e.Cells)
}

// NewMask builds a mask from its dimensions and a row-major cell buffer.
func NewMask(height, width int, cells []bool) (*Mask, error) {
	if height < 0 || width < 0 || len(cells) != height*width {
		return nil, &ShapeError{Height: height, Width: width, Cells: len(cells)}
	}
	owned := make([]bool, len(cells))
	copy(owned, cells)
	return &Mask{height: height, width: width, cells: owned}, nil
}

// Height returns the number of rows.
func (m *Mask) Height() int { return m.height }

// Width returns the number of columns.
func (m *Mask) Width() int { return m.width }

// At reports whether cell (x, y) is occupied. Out-of-range coordinates are
// unoccupied.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return false
	}
	return m.cells[y*m.width+x]
}

// CellCount returns the number of occupied cells.
func (m *Mask) CellCount() int {
	n := 0
	for _, v := range m.cells {
		if v {
			n++
		}
	}
	return n
}

// Rotate90 returns a new mask turned 90 degrees clockwise: the source
// transposed, then each row reversed. The receiver is not modified.
func (m *Mask) Rotate90() *Mask {
	out := &Mask{height: m.width, width: m.height, cells: make([]bool, len(m.cells))}
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			// Row y of the result is column y of the source, read bottom-up.
			out.cells[y*out.width+x] = m.cells[(m.height-1-x)*m.width+y]
		}
	}
	return out
}

// Rotate applies Rotate90 n times (n in 0..3). Rotate(0) returns the receiver
// itself; only rotated copies allocate.
func (m *Mask) Rotate(n int) *Mask {
	n = ((n % 4) + 4) % 4
	out := m
	for i := 0; i < n; i++ {
		out = out.Rotate90()
	}
	return out
}

// Trimmed returns the mask restricted to the smallest bounding box containing
// all occupied cells. A mask with no occupied cells trims to a copy of itself.
// The trimmed form is used as a comparison key to detect rotational symmetry.
func (m *Mask) Trimmed() *Mask {
	minX, minY := m.width, m.height
	maxX, maxY := -1, -1
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if !m.cells[y*m.width+x] {
				continue
			}
			if x < minX {
				minX = x
			}
			if x > maxX {
				maxX = x
			}
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}
	if maxX < 0 {
		out := &Mask{height: m.height, width: m.width, cells: make([]bool, len(m.cells))}
		copy(out.cells, m.cells)
		return out
	}
	out := &Mask{height: maxY - minY + 1, width: maxX - minX + 1}
	out.cells = make([]bool, out.height*out.width)
	for y := 0; y < out.height; y++ {
		for x := 0; x < out.width; x++ {
			out.cells[y*out.width+x] = m.cells[(minY+y)*m.width+minX+x]
		}
	}
	return out
}

// Equal reports structural equality: same dimensions and the same occupied
// cells.
func (m *Mask) Equal(other *Mask) bool {
	if m.height != other.height || m.width != other.width {
		return false
	}
	for i, v := range m.cells {
		if v != other.cells[i] {
			return false
		}
	}
	return true
}

// key returns a canonical string form usable as a map key. Equal masks have
// equal keys.
func (m *Mask) key() string {
	var b strings.Builder
	b.Grow(len(m.cells) + 8)
	fmt.Fprintf(&b, "%dx%d:", m.height, m.width)
	for _, v := range m.cells {
		if v {
			b.WriteByte('#')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// String renders the mask as rows of '#' and '.'.
func (m *Mask) String() string {
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[y*m.width+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		if y < m.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
