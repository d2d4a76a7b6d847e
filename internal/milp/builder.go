// Package milp implements the MILP builder (spec.md §4.5): a bounded
// branch-and-bound search over per-course (timeslot, room) candidates,
// falling back to a deterministic greedy placement when the bounded
// search can't resolve every meeting. Grounded on
// original_source/crates/solver-milp/src/{lib.rs,milp_core.rs} for the
// variable/constraint shape (Vars, declare_occupancy_vars,
// declare_adjacency_vars, add_*_constraints, link_occupancy,
// extract_solution) and solve_greedy for the fallback.
package milp

import (
	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
	"github.com/noah-isme/unischedule/internal/scoring"
)

// defaultNodeBudget bounds the backtracking search's candidate attempts so
// a pathological instance degrades to the greedy fallback instead of
// hanging; scaled up when the caller allows more wall-clock time.
const defaultNodeBudget = 50_000

// Solve runs the MILP builder against inst, honoring pinned assignments and
// partialPins. timeLimitMs scales the bounded search's node budget; <= 0
// uses the default.
func Solve(inst domain.Instance, pinned []domain.Assignment, partialPins []domain.PartialPin, timeLimitMs int64) domain.SolveResult {
	idx := domain.BuildIndex(inst)

	slots, ok := buildSlots(inst, pinned, partialPins)
	if !ok {
		return infeasible(pinned, "partial pins exceed course countPerWeek")
	}
	if len(slots) == 0 {
		return solved(inst, pinned)
	}

	feas := feasibility.BuildExcludingPinned(inst, pinned)
	for _, s := range slots {
		if len(s.candidates(feas)) == 0 {
			return infeasible(pinned, "no feasible start exists for course "+string(s.course))
		}
	}

	ordered := orderSlots(slots, feas)

	seed := newOccupancy()
	seedFromAssignments(&seed, inst, idx, pinned)

	budget := defaultNodeBudget
	if timeLimitMs > 0 {
		budget = int(timeLimitMs) * 50
		if budget < defaultNodeBudget {
			budget = defaultNodeBudget
		}
	}

	found, outcome := backtrackSolve(inst, idx, feas, ordered, cloneOccupancy(seed), budget)
	if outcome == outcomeSolved {
		all := append(append([]domain.Assignment(nil), pinned...), found...)
		return domain.SolveResult{
			Status:      domain.StatusSolved,
			Objective:   scoring.Objective(inst, all),
			Assignments: all,
		}
	}

	remaining := make(map[domain.CourseID]int, len(inst.Courses))
	for _, c := range inst.Courses {
		remaining[c.ID] = c.CountPerWeek
	}
	for _, a := range pinned {
		remaining[a.CourseID]--
	}
	greedyFound, greedyOK := greedySolve(inst, idx, cloneOccupancy(seed), remaining)
	if !greedyOK {
		result := infeasible(pinned, "")
		result.Stats = domain.Stats{
			"fallback": "greedy",
			"outcome":  outcomeLabel(outcome),
			"error":    "greedy fallback could not place every remaining meeting",
		}
		return result
	}

	all := append(append([]domain.Assignment(nil), pinned...), greedyFound...)
	return domain.SolveResult{
		Status:      domain.StatusSolved,
		Objective:   0,
		Assignments: all,
		Stats:       domain.Stats{"fallback": "greedy"},
	}
}

func solved(inst domain.Instance, assignments []domain.Assignment) domain.SolveResult {
	return domain.SolveResult{
		Status:      domain.StatusSolved,
		Objective:   scoring.Objective(inst, assignments),
		Assignments: append([]domain.Assignment(nil), assignments...),
	}
}

func infeasible(pinned []domain.Assignment, errMsg string) domain.SolveResult {
	result := domain.SolveResult{
		Status:      domain.StatusInfeasible,
		Assignments: append([]domain.Assignment(nil), pinned...),
	}
	if errMsg != "" {
		result.Stats = domain.Stats{"error": errMsg}
	}
	return result
}

func outcomeLabel(o searchOutcome) string {
	switch o {
	case outcomeBudgetExhausted:
		return "budget_exhausted"
	default:
		return "dead_end"
	}
}

func cloneOccupancy(o occupancy) occupancy {
	clone := newOccupancy()
	for room, slots := range o.room {
		for slot := range slots {
			markCell(clone.room, room, slot)
		}
	}
	for teacher, slots := range o.teacher {
		for slot := range slots {
			markCell(clone.teacher, teacher, slot)
		}
	}
	for group, slots := range o.group {
		for slot := range slots {
			markCell(clone.group, group, slot)
		}
	}
	return clone
}
