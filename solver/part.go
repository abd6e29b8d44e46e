package solver

// Effect is one part's contribution to one attribute. Bugless is the value
// applied when the part ends up unbugged, Bugged when it ends up bugged.
// Which of the two applies is not known until placement, so the candidate
// search tracks both bounds.
type Effect struct {
	Bugless int
	Bugged  int
}

// Part is a placeable tile definition. A part carries two shape masks, a
// compressed and an uncompressed variant; parts without a compression code
// use the same mask for both.
type Part struct {
	// IsSolid marks program parts. A solid part is bugged exactly when it is
	// off the command line; a non-solid part is bugged exactly when it is on
	// it.
	IsSolid bool

	// Color is the adjacency group: two touching parts of the same color bug
	// each other.
	Color int

	CompressedMask   *Mask
	UncompressedMask *Mask

	// Effects indexed by attribute.
	Effects []Effect
}

// Constraint bounds one attribute. Target must be met or exceeded; Cap only
// prunes arrangements whose guaranteed contribution already overshoots, it
// does not drive enumeration up to the cap.
type Constraint struct {
	Target int
	Cap    int
}

// Requirement asks for exactly one instance of a part to be placed. The
// optional flags are nil when unconstrained.
type Requirement struct {
	PartIndex     int
	Compressed    *bool
	OnCommandLine *bool
	Bugged        *bool
}

// Placement is the concrete outcome for one requirement.
type Placement struct {
	Loc              Location
	Compressed       bool
	RequirementIndex int
}

// Solution is one placement per requirement, index-aligned to the requirement
// list.
type Solution []Placement

// Bool returns a pointer to b, for filling the optional Requirement flags.
func Bool(b bool) *bool { return &b }
