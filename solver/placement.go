package solver

// candidate is one admissible way to satisfy a requirement: a location plus
// which mask variant it uses.
type candidate struct {
	loc        Location
	compressed bool
}

// onCommandLine reports whether any occupied cell of mask, placed at pos,
// lands on the grid's command line row. Callers only use this for masks that
// already placed successfully, so every occupied cell is on the board.
func onCommandLine(mask *Mask, pos Position, settings GridSettings) bool {
	for y := 0; y < mask.Height(); y++ {
		if pos.Y+y != settings.CommandLineRow {
			continue
		}
		for x := 0; x < mask.Width(); x++ {
			if mask.At(x, y) {
				return true
			}
		}
	}
	return false
}

// touchesEdge reports whether any occupied cell of mask, placed at pos, lands
// on the board's outer ring.
func touchesEdge(mask *Mask, pos Position, settings GridSettings) bool {
	for y := 0; y < mask.Height(); y++ {
		for x := 0; x < mask.Width(); x++ {
			if !mask.At(x, y) {
				continue
			}
			bx, by := pos.X+x, pos.Y+y
			if bx == 0 || bx == settings.Width-1 || by == 0 || by == settings.Height-1 {
				return true
			}
		}
	}
	return false
}

// admissible checks the single-tile placement rules for an already-rotated
// mask at pos: the mask must fit an otherwise empty grid (clipping, forbidden
// corners), a bugless tile must stay off the out-of-bounds edge ring, and the
// command line membership must agree with the requested flags. Solidity is
// compared against the computed command line membership: a solid tile is
// bugged exactly when it is off the command line, a non-solid one exactly
// when it is on it.
func admissible(mask *Mask, isSolid bool, pos Position, settings GridSettings, onCL, bugged *bool) bool {
	probe := NewGrid(settings)
	if err := probe.Place(mask, Location{Position: pos}, 0); err != nil {
		return false
	}

	if bugged != nil && !*bugged && settings.HasOOB && touchesEdge(mask, pos, settings) {
		return false
	}

	if onCL != nil || bugged != nil {
		onLine := onCommandLine(mask, pos, settings)
		if onCL != nil && onLine != *onCL {
			return false
		}
		if bugged != nil && *bugged != (isSolid != onLine) {
			return false
		}
	}

	return true
}

// enumerateLocations sweeps every offset and every geometrically distinct
// rotation of mask, collecting the admissible locations in a fixed order.
// Rotations stop as soon as a rotation's trimmed form repeats one already
// seen: from there on the shape is invariant and further turns are redundant.
func enumerateLocations(mask *Mask, isSolid bool, settings GridSettings, onCL, bugged *bool) []Location {
	var locations []Location
	seen := make(map[string]struct{}, 4)

	rotated := mask
	for rot := 0; rot < 4; rot++ {
		key := rotated.Trimmed().key()
		if _, ok := seen[key]; ok {
			break
		}
		seen[key] = struct{}{}

		for y := -(settings.Height - 1); y < settings.Height; y++ {
			for x := -(settings.Width - 1); x < settings.Width; x++ {
				pos := Position{X: x, Y: y}
				if admissible(rotated, isSolid, pos, settings, onCL, bugged) {
					locations = append(locations, Location{Position: pos, Rotation: rot})
				}
			}
		}

		rotated = rotated.Rotate90()
	}

	return locations
}

// requirementCandidates produces every admissible (location, variant) pair
// for one requirement. When the requirement does not pin the variant and the
// two masks are structurally identical, only one candidate set is produced.
func requirementCandidates(part *Part, req *Requirement, settings GridSettings) []candidate {
	type variant struct {
		mask       *Mask
		compressed bool
	}

	var variants []variant
	switch {
	case req.Compressed != nil && *req.Compressed:
		variants = []variant{{part.CompressedMask, true}}
	case req.Compressed != nil:
		variants = []variant{{part.UncompressedMask, false}}
	case part.CompressedMask.Equal(part.UncompressedMask):
		variants = []variant{{part.UncompressedMask, false}}
	default:
		variants = []variant{{part.UncompressedMask, false}, {part.CompressedMask, true}}
	}

	var out []candidate
	for _, v := range variants {
		for _, loc := range enumerateLocations(v.mask, part.IsSolid, settings, req.OnCommandLine, req.Bugged) {
			out = append(out, candidate{loc: loc, compressed: v.compressed})
		}
	}
	return out
}

// variantMask returns the mask a placement with the given compressed flag
// uses.
func (p *Part) variantMask(compressed bool) *Mask {
	if compressed {
		return p.CompressedMask
	}
	return p.UncompressedMask
}

// fitsBoard reports whether the mask fits the board in at least one
// orientation. A mask larger than the board in both orientations can never be
// placed anywhere, which is a configuration error rather than a search miss.
func fitsBoard(m *Mask, settings GridSettings) bool {
	h, w := m.Height(), m.Width()
	return (h <= settings.Height && w <= settings.Width) ||
		(w <= settings.Height && h <= settings.Width)
}

// minCells returns the smallest occupied-cell count among the variants a
// requirement may use. Used by the fail-fast area precondition.
func minCells(part *Part, req *Requirement) int {
	switch {
	case req.Compressed != nil && *req.Compressed:
		return part.CompressedMask.CellCount()
	case req.Compressed != nil:
		return part.UncompressedMask.CellCount()
	default:
		return min(part.CompressedMask.CellCount(), part.UncompressedMask.CellCount())
	}
}
