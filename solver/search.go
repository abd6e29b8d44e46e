package solver

import (
	"fmt"
	"iter"
	"sort"
	"strconv"
	"strings"
)

// MismatchedConstraintCountError reports a part whose declared attribute
// effects disagree with the number of supplied constraints.
type MismatchedConstraintCountError struct {
	PartIndex   int
	Attributes  int
	Constraints int
}

func (e *MismatchedConstraintCountError) Error() string {
	return fmt.Sprintf("part %d declares %d attributes, got %d constraints",
		e.PartIndex, e.Attributes, e.Constraints)
}

// searchReq is one requirement prepared for search: its precomputed candidate
// placements plus its position in the caller's requirement list.
type searchReq struct {
	originalIndex int
	req           Requirement
	candidates    []candidate
}

type placementSearch struct {
	parts        []Part
	requirements []Requirement
	settings     GridSettings
	ordered      []searchReq

	// reqKeys holds each requirement's constraint identity, indexed by
	// requirement. Board signatures are built from these keys so that two
	// requirements are only interchangeable when they ask for the same part
	// under the same flag expectations.
	reqKeys []string

	// memo is scoped to one top-level iteration of the solution sequence and
	// shared down every branch of that iteration's search tree.
	memo map[string]struct{}
}

// reqKey canonicalizes everything that determines whether a requirement
// accepts a given physical placement: the part plus the optional flag
// expectations. Requirements with equal keys may safely swap placements.
func reqKey(r *Requirement) string {
	flag := func(p *bool) byte {
		switch {
		case p == nil:
			return '-'
		case *p:
			return 't'
		default:
			return 'f'
		}
	}
	return strconv.Itoa(r.PartIndex) + string([]byte{flag(r.Compressed), flag(r.OnCommandLine), flag(r.Bugged)})
}

// Solve enumerates every solution that places one instance of each
// requirement's part onto the grid, as a lazy sequence. Ranging the sequence
// again restarts the search from scratch; repeated runs over identical input
// produce solutions in identical order.
//
// Configuration errors are surfaced up front: a requirement referencing an
// unknown part, or a requirement none of whose usable mask variants fits the
// board in any orientation (ShapesMismatchedError).
func Solve(parts []Part, requirements []Requirement, settings GridSettings) (iter.Seq[Solution], error) {
	for i := range requirements {
		req := &requirements[i]
		if req.PartIndex < 0 || req.PartIndex >= len(parts) {
			return nil, fmt.Errorf("requirement %d references unknown part %d", i, req.PartIndex)
		}
		if err := checkFit(&parts[req.PartIndex], req.Compressed, settings); err != nil {
			return nil, fmt.Errorf("requirement %d: %w", i, err)
		}
	}
	return solve(parts, requirements, settings), nil
}

// checkFit returns a ShapesMismatchedError when no usable mask variant of the
// part fits the board in any orientation. compressed, when non-nil, pins the
// variant.
func checkFit(part *Part, compressed *bool, settings GridSettings) error {
	var masks []*Mask
	switch {
	case compressed != nil && *compressed:
		masks = []*Mask{part.CompressedMask}
	case compressed != nil:
		masks = []*Mask{part.UncompressedMask}
	default:
		masks = []*Mask{part.UncompressedMask, part.CompressedMask}
	}
	for _, m := range masks {
		if fitsBoard(m, settings) {
			return nil
		}
	}
	return &ShapesMismatchedError{
		GridHeight: settings.Height, GridWidth: settings.Width,
		MaskHeight: masks[0].Height(), MaskWidth: masks[0].Width(),
	}
}

// solve is the search proper. Inputs are assumed validated.
func solve(parts []Part, requirements []Requirement, settings GridSettings) iter.Seq[Solution] {
	ordered := make([]searchReq, len(requirements))
	for i := range requirements {
		req := &requirements[i]
		ordered[i] = searchReq{
			originalIndex: i,
			req:           *req,
			candidates:    requirementCandidates(&parts[req.PartIndex], req, settings),
		}
	}
	// Requirements with more candidates are assigned first; ties stay in
	// requirement order, which keeps copies of the same part adjacent and
	// improves memo hit rates.
	sort.SliceStable(ordered, func(a, b int) bool {
		return len(ordered[a].candidates) > len(ordered[b].candidates)
	})

	commandLineDemand := 0
	minArea := 0
	reqKeys := make([]string, len(requirements))
	for i := range requirements {
		req := &requirements[i]
		if req.OnCommandLine != nil && *req.OnCommandLine {
			commandLineDemand++
		}
		minArea += minCells(&parts[req.PartIndex], req)
		reqKeys[i] = reqKey(req)
	}

	return func(yield func(Solution) bool) {
		grid := NewGrid(settings)

		if commandLineDemand > settings.Width {
			solvLog.Debug().
				Int("demand", commandLineDemand).
				Int("width", settings.Width).
				Msg("command line demand exceeds grid width, no solutions")
			return
		}
		if len(requirements) > 0 && minArea >= grid.PlaceableCells() {
			solvLog.Debug().
				Int("min_area", minArea).
				Int("placeable", grid.PlaceableCells()).
				Msg("requirements cannot fit placeable area, no solutions")
			return
		}

		s := &placementSearch{
			parts:        parts,
			requirements: requirements,
			settings:     settings,
			ordered:      ordered,
			reqKeys:      reqKeys,
			memo:         make(map[string]struct{}),
		}
		s.run(grid, 0, nil, yield)
	}
}

// run assigns the requirement at depth and recurses over the rest. acc holds
// the placements committed so far. Returns false once the consumer stops
// pulling.
func (s *placementSearch) run(grid *Grid, depth int, acc []Placement, yield func(Solution) bool) bool {
	if depth == len(s.ordered) {
		if !s.colorAdjacencyAdmissible(grid) {
			return true
		}
		sol := make(Solution, len(s.requirements))
		filled := make([]bool, len(s.requirements))
		for _, p := range acc {
			sol[p.RequirementIndex] = p
			filled[p.RequirementIndex] = true
		}
		for _, ok := range filled {
			if !ok {
				return true
			}
		}
		return yield(sol)
	}

	sr := &s.ordered[depth]
	part := &s.parts[sr.req.PartIndex]

	for _, cand := range sr.candidates {
		next := grid.Clone()
		mask := part.variantMask(cand.compressed)
		if err := next.Place(mask, cand.loc, sr.originalIndex); err != nil {
			continue
		}

		// Re-check the single-tile flags against the committed placement.
		if !s.revalidate(part, sr, cand) {
			continue
		}

		sig := s.signature(next)
		if _, ok := s.memo[sig]; ok {
			continue
		}
		s.memo[sig] = struct{}{}

		placement := Placement{
			Loc:              cand.loc,
			Compressed:       cand.compressed,
			RequirementIndex: sr.originalIndex,
		}
		if !s.run(next, depth+1, append(acc[:len(acc):len(acc)], placement), yield) {
			return false
		}
	}

	return true
}

// revalidate re-runs the command line and bug/solidity checks for one
// committed candidate.
func (s *placementSearch) revalidate(part *Part, sr *searchReq, cand candidate) bool {
	if sr.req.OnCommandLine == nil && sr.req.Bugged == nil {
		return true
	}
	mask := part.variantMask(cand.compressed).Rotate(cand.loc.Rotation)
	onLine := onCommandLine(mask, cand.loc.Position, s.settings)
	if sr.req.OnCommandLine != nil && onLine != *sr.req.OnCommandLine {
		return false
	}
	if sr.req.Bugged != nil && *sr.req.Bugged != (part.IsSolid != onLine) {
		return false
	}
	return true
}

// signature maps every cell of the board to the constraint identity of the
// requirement occupying it, so that two orderings of interchangeable
// requirements producing the same physical arrangement collapse to one
// canonical key. Requirements of the same part with different flag
// expectations keep distinct signatures: their downstream validity differs,
// so pruning one off the other would drop solutions.
func (s *placementSearch) signature(grid *Grid) string {
	var b strings.Builder
	b.Grow(len(grid.cells) * 4)
	for _, c := range grid.cells {
		if c >= 0 {
			b.WriteString(s.reqKeys[c])
		} else {
			b.WriteString(strconv.Itoa(c))
		}
		b.WriteByte(';')
	}
	return b.String()
}

// colorAdjacencyAdmissible runs the whole-board check: a requirement's
// placement is color-adjacent when one of its cells touches, 4-directionally,
// a cell of a different part sharing its color. Any requirement with a bug
// expectation must match its computed adjacency flag. This cannot be checked
// incrementally because a tile's adjacency depends on tiles placed after it.
func (s *placementSearch) colorAdjacencyAdmissible(grid *Grid) bool {
	adjacent := make([]bool, len(s.requirements))
	w, h := s.settings.Width, s.settings.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := grid.At(x, y)
			if v < 0 {
				continue
			}
			for _, d := range [4][2]int{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				n := grid.At(nx, ny)
				if n < 0 || n == v {
					continue
				}
				if s.parts[s.requirements[n].PartIndex].Color == s.parts[s.requirements[v].PartIndex].Color {
					adjacent[v] = true
				}
			}
		}
	}
	for i := range s.requirements {
		if bugged := s.requirements[i].Bugged; bugged != nil && *bugged != adjacent[i] {
			return false
		}
	}
	return true
}

// SolveWithConstraints is the two-phase entry point: the candidate search
// turns the attribute constraints into per-part quantities, each quantity
// vector becomes a requirement list, and the placement search runs on each in
// candidate order. wantColorBug, when set, is applied as the bug expectation
// of every generated requirement.
//
// Fails up front when a part's declared attribute count disagrees with the
// supplied constraints, or when a part's masks cannot fit the board in any
// orientation.
func SolveWithConstraints(parts []Part, constraints []Constraint, settings GridSettings, wantColorBug *bool) (iter.Seq[Solution], error) {
	for i := range parts {
		if len(parts[i].Effects) != len(constraints) {
			return nil, &MismatchedConstraintCountError{
				PartIndex:   i,
				Attributes:  len(parts[i].Effects),
				Constraints: len(constraints),
			}
		}
		if err := checkFit(&parts[i], nil, settings); err != nil {
			return nil, fmt.Errorf("part %d: %w", i, err)
		}
	}

	partBudget := settings.Width * settings.Height

	return func(yield func(Solution) bool) {
		for counts := range Candidates(parts, partBudget, constraints) {
			requirements := make([]Requirement, 0, len(counts))
			for partIdx, n := range counts {
				for i := 0; i < n; i++ {
					requirements = append(requirements, Requirement{
						PartIndex: partIdx,
						Bugged:    wantColorBug,
					})
				}
			}
			for sol := range solve(parts, requirements, settings) {
				if !yield(sol) {
					return
				}
			}
		}
	}, nil
}

// Apply replays a solution onto a fresh grid and returns the resulting board.
// Useful for hosts that want to inspect or render the final arrangement.
func Apply(parts []Part, requirements []Requirement, settings GridSettings, sol Solution) (*Grid, error) {
	if len(sol) != len(requirements) {
		return nil, fmt.Errorf("solution has %d placements for %d requirements", len(sol), len(requirements))
	}
	grid := NewGrid(settings)
	for _, p := range sol {
		part := &parts[requirements[p.RequirementIndex].PartIndex]
		if err := grid.Place(part.variantMask(p.Compressed), p.Loc, p.RequirementIndex); err != nil {
			return nil, fmt.Errorf("replay placement for requirement %d: %w", p.RequirementIndex, err)
		}
	}
	return grid, nil
}
