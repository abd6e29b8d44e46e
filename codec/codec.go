// Package codec reads and writes the JSON descriptions the solver is driven
// by: part databases, requirement lists, grid settings, and solution output.
// Masks use a compact shape-string form, rows of '#' (occupied) and '.'
// (empty), so part databases stay readable.
package codec

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/mmbn-tools/navicust/solver"
)

// EffectDesc is one part's contribution to one attribute.
type EffectDesc struct {
	Bugless int `json:"bugless"`
	Bugged  int `json:"bugged"`
}

// PartDesc describes a placeable part. Compressed may be omitted when the
// part has no compressed variant; the uncompressed shape is used for both.
type PartDesc struct {
	Name         string       `json:"name,omitempty"`
	IsSolid      bool         `json:"isSolid"`
	Color        int          `json:"color"`
	Uncompressed []string     `json:"uncompressed"`
	Compressed   []string     `json:"compressed,omitempty"`
	Effects      []EffectDesc `json:"effects,omitempty"`
}

// RequirementDesc describes one requested placement. The pointer fields are
// tri-state: absent means unconstrained.
type RequirementDesc struct {
	PartIndex     int   `json:"partIndex"`
	Compressed    *bool `json:"compressed,omitempty"`
	OnCommandLine *bool `json:"onCommandLine,omitempty"`
	Bugged        *bool `json:"bugged,omitempty"`
}

// ConstraintDesc bounds one attribute for the two-phase entry point.
type ConstraintDesc struct {
	Target int `json:"target"`
	Cap    int `json:"cap"`
}

// GridDesc describes the puzzle surface.
type GridDesc struct {
	Width          int  `json:"width"`
	Height         int  `json:"height"`
	HasOOB         bool `json:"hasOob"`
	CommandLineRow int  `json:"commandLineRow"`
}

// ProblemDesc is a complete solver input. Either Requirements (single-phase)
// or Constraints (two-phase) is populated.
type ProblemDesc struct {
	Grid         GridDesc          `json:"grid"`
	Parts        []PartDesc        `json:"parts"`
	Requirements []RequirementDesc `json:"requirements,omitempty"`
	Constraints  []ConstraintDesc  `json:"constraints,omitempty"`
	WantColorBug *bool             `json:"wantColorBug,omitempty"`
}

// DecodeProblem parses a JSON problem description.
func DecodeProblem(data []byte) (*ProblemDesc, error) {
	var desc ProblemDesc
	if err := sonic.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal problem: %w", err)
	}
	if desc.Grid.Width <= 0 || desc.Grid.Height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", desc.Grid.Width, desc.Grid.Height)
	}
	for i, req := range desc.Requirements {
		if req.PartIndex < 0 || req.PartIndex >= len(desc.Parts) {
			return nil, fmt.Errorf("requirement %d references unknown part %d", i, req.PartIndex)
		}
	}
	return &desc, nil
}

// ParseMask builds a mask from shape-string rows.
func ParseMask(rows []string) (*solver.Mask, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty shape")
	}
	width := len(rows[0])
	cells := make([]bool, 0, len(rows)*width)
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("shape row %d has length %d, want %d", i, len(row), width)
		}
		for j := 0; j < len(row); j++ {
			switch row[j] {
			case '#':
				cells = append(cells, true)
			case '.':
				cells = append(cells, false)
			default:
				return nil, fmt.Errorf("shape row %d has invalid cell %q", i, row[j])
			}
		}
	}
	mask, err := solver.NewMask(len(rows), width, cells)
	if err != nil {
		return nil, fmt.Errorf("failed to build mask: %w", err)
	}
	return mask, nil
}

// FormatMask renders a mask back to shape-string rows.
func FormatMask(mask *solver.Mask) []string {
	rows := make([]string, 0, mask.Height())
	for y := 0; y < mask.Height(); y++ {
		row := make([]byte, mask.Width())
		for x := 0; x < mask.Width(); x++ {
			if mask.At(x, y) {
				row[x] = '#'
			} else {
				row[x] = '.'
			}
		}
		rows = append(rows, string(row))
	}
	return rows
}

// Settings converts the grid description.
func (d *ProblemDesc) Settings() solver.GridSettings {
	return solver.GridSettings{
		Width:          d.Grid.Width,
		Height:         d.Grid.Height,
		HasOOB:         d.Grid.HasOOB,
		CommandLineRow: d.Grid.CommandLineRow,
	}
}

// BuildParts converts the part descriptions into solver parts.
func (d *ProblemDesc) BuildParts() ([]solver.Part, error) {
	parts := make([]solver.Part, 0, len(d.Parts))
	for i, pd := range d.Parts {
		uncompressed, err := ParseMask(pd.Uncompressed)
		if err != nil {
			return nil, fmt.Errorf("part %d (%s): uncompressed shape: %w", i, pd.Name, err)
		}
		compressed := uncompressed
		if len(pd.Compressed) > 0 {
			compressed, err = ParseMask(pd.Compressed)
			if err != nil {
				return nil, fmt.Errorf("part %d (%s): compressed shape: %w", i, pd.Name, err)
			}
		}
		effects := make([]solver.Effect, 0, len(pd.Effects))
		for _, e := range pd.Effects {
			effects = append(effects, solver.Effect{Bugless: e.Bugless, Bugged: e.Bugged})
		}
		parts = append(parts, solver.Part{
			IsSolid:          pd.IsSolid,
			Color:            pd.Color,
			CompressedMask:   compressed,
			UncompressedMask: uncompressed,
			Effects:          effects,
		})
	}
	return parts, nil
}

// BuildRequirements converts the requirement descriptions.
func (d *ProblemDesc) BuildRequirements() []solver.Requirement {
	reqs := make([]solver.Requirement, 0, len(d.Requirements))
	for _, rd := range d.Requirements {
		reqs = append(reqs, solver.Requirement{
			PartIndex:     rd.PartIndex,
			Compressed:    rd.Compressed,
			OnCommandLine: rd.OnCommandLine,
			Bugged:        rd.Bugged,
		})
	}
	return reqs
}

// BuildConstraints converts the attribute constraints.
func (d *ProblemDesc) BuildConstraints() []solver.Constraint {
	constraints := make([]solver.Constraint, 0, len(d.Constraints))
	for _, cd := range d.Constraints {
		constraints = append(constraints, solver.Constraint{Target: cd.Target, Cap: cd.Cap})
	}
	return constraints
}

// PlacementDesc is the serialized form of one placement.
type PlacementDesc struct {
	X                int  `json:"x"`
	Y                int  `json:"y"`
	Rotation         int  `json:"rotation"`
	Compressed       bool `json:"compressed"`
	RequirementIndex int  `json:"requirementIndex"`
}

// SolutionDesc converts a solution for serialization.
func SolutionDesc(sol solver.Solution) []PlacementDesc {
	out := make([]PlacementDesc, 0, len(sol))
	for _, p := range sol {
		out = append(out, PlacementDesc{
			X:                p.Loc.Position.X,
			Y:                p.Loc.Position.Y,
			Rotation:         p.Loc.Rotation,
			Compressed:       p.Compressed,
			RequirementIndex: p.RequirementIndex,
		})
	}
	return out
}

// EncodeSolution marshals a solution as one JSON line.
func EncodeSolution(sol solver.Solution) ([]byte, error) {
	data, err := sonic.Marshal(SolutionDesc(sol))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal solution: %w", err)
	}
	return data, nil
}
