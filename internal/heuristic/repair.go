package heuristic

import (
	"math/rand"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

// decorrelationMask decorrelates the repair pass's RNG stream from the
// constructive pass's, per spec.md §4.6.
const decorrelationMask = 0x9E3779B97F4A7C15

// DefaultRepairSteps implements spec.md §4.6's default: max(200, 5*|assignments|).
func DefaultRepairSteps(assignmentCount int) int {
	steps := 5 * assignmentCount
	if steps < 200 {
		steps = 200
	}
	return steps
}

// ImproveFrom hill-climbs assignments (typically a MILP solution) via the
// same mutation operator as the constructive GA, accepting only strict
// improvements, for steps iterations.
func ImproveFrom(env domain.SolveEnvelope, pinned []domain.Assignment, partialPins []domain.PartialPin, assignments []domain.Assignment, steps int) ([]domain.Assignment, float64) {
	inst := env.Instance
	idx := domain.BuildIndex(inst)
	feas := feasibility.BuildExcludingPinned(inst, pinned)

	rng := rand.New(rand.NewSource(int64(env.Params.Seed ^ decorrelationMask)))

	current := individual{
		assignments: append([]domain.Assignment(nil), assignments...),
		meta:        buildMeta(assignments, pinned, partialPins),
		objective:   evaluate(inst, assignments),
	}

	for i := 0; i < steps; i++ {
		child := mutate(inst, idx, feas, current, rng)
		if child.objective < current.objective {
			current = child
		}
	}

	return current.assignments, current.objective
}

// buildMeta reconstructs per-meeting lock metadata for an externally
// supplied assignment list: a meeting matching a pinned assignment
// verbatim is untouchable; one whose course has a partial pin matching
// its own axes carries that pin's restriction.
func buildMeta(assignments []domain.Assignment, pinned []domain.Assignment, partialPins []domain.PartialPin) []meeting {
	pinnedSet := make(map[domain.Assignment]bool, len(pinned))
	for _, p := range pinned {
		pinnedSet[p] = true
	}
	partialByCourse := make(map[domain.CourseID][]domain.PartialPin, len(partialPins))
	for _, p := range partialPins {
		partialByCourse[p.CourseID] = append(partialByCourse[p.CourseID], p)
	}

	metas := make([]meeting, len(assignments))
	for i, a := range assignments {
		if pinnedSet[a] {
			metas[i] = meeting{course: a.CourseID, locked: true}
			continue
		}
		m := meeting{course: a.CourseID}
		for _, pinVal := range partialByCourse[a.CourseID] {
			p := pinVal
			if p.MatchesTimeslot(a.TimeslotID) && p.MatchesRoom(a.RoomID) {
				m.pin = &p
				break
			}
		}
		metas[i] = m
	}
	return metas
}
