package domain

// SolverKind selects which engine the dispatcher runs.
type SolverKind string

const (
	SolverMilp      SolverKind = "milp"
	SolverHeuristic SolverKind = "heuristic"
)

// SolveParams tunes one solve invocation.
type SolveParams struct {
	Solver            SolverKind `json:"solver"`
	Seed              uint64     `json:"seed"`
	TimeLimitMs       int64      `json:"timeLimit,omitempty"`
	RepairLocalSearch bool       `json:"repairLocalSearch,omitempty"`
	RepairSteps       *int       `json:"repairSteps,omitempty"`
}

// SolveEnvelope bundles an instance with a prior base, fixed pins, masks
// and partial pins for one solve. The envelope is read-only after mask
// expansion (spec.md §3 invariant f); the dispatcher never mutates the one
// it is given, it builds an expanded copy.
type SolveEnvelope struct {
	Instance    Instance     `json:"instance"`
	Params      SolveParams  `json:"params"`
	Base        []Assignment `json:"base,omitempty"`
	Pinned      []Assignment `json:"pinned,omitempty"`
	Masks       []LockMask   `json:"masks,omitempty"`
	PartialPins []PartialPin `json:"partial_pins,omitempty"`
}
