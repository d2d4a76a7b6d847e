package milp

import (
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

// searchOutcome distinguishes a proven dead end from a search that gave up
// after exhausting its node budget without resolving every slot.
type searchOutcome int

const (
	outcomeSolved searchOutcome = iota
	outcomeDeadEnd
	outcomeBudgetExhausted
)

// backtrackSolve runs a bounded depth-first branch-and-bound search over
// slots: each slot tries its candidates in ascending-cost order (teacher
// avoid-slot hits cost more, biasing the first feasible leaf found toward
// a better objective), backtracking on a clash. nodeBudget caps the total
// number of candidate attempts so a pathological instance degrades to the
// greedy fallback instead of hanging.
func backtrackSolve(inst domain.Instance, idx domain.Index, feas feasibility.Index, slots []slot, occ occupancy, nodeBudget int) ([]domain.Assignment, searchOutcome) {
	ordered := make([][]rankedStart, len(slots))
	for i, s := range slots {
		ordered[i] = rankCandidates(inst, idx, s, s.candidates(feas))
	}

	assignments := make([]domain.Assignment, 0, len(slots))
	nodes := 0
	budgetHit := false

	var recurse func(i int) bool
	recurse = func(i int) bool {
		if i == len(slots) {
			return true
		}
		s := slots[i]
		course := idx.Course[s.course]
		for _, cand := range ordered[i] {
			nodes++
			if nodes > nodeBudget {
				budgetHit = true
				return false
			}
			if occ.clashes(cand.start.Room, course.TeacherID, course.GroupID, cand.start.Timeslot) {
				continue
			}
			var next domain.TimeslotID
			hasNext := false
			if course.Duration == 2 {
				next, hasNext = idx.NextSlot(inst.Timeslots, cand.start.Timeslot)
				if !hasNext || occ.clashes(cand.start.Room, course.TeacherID, course.GroupID, next) {
					continue
				}
			}

			occ.mark(cand.start.Room, course.TeacherID, course.GroupID, cand.start.Timeslot)
			if hasNext {
				occ.mark(cand.start.Room, course.TeacherID, course.GroupID, next)
			}
			assignments = append(assignments, domain.Assignment{
				CourseID:   s.course,
				TimeslotID: cand.start.Timeslot,
				RoomID:     cand.start.Room,
				TeacherID:  course.TeacherID,
			})

			if recurse(i + 1) {
				return true
			}

			assignments = assignments[:len(assignments)-1]
			occ.unmark(cand.start.Room, course.TeacherID, course.GroupID, cand.start.Timeslot)
			if hasNext {
				occ.unmark(cand.start.Room, course.TeacherID, course.GroupID, next)
			}
			if budgetHit {
				return false
			}
		}
		return false
	}

	if recurse(0) {
		return assignments, outcomeSolved
	}
	if budgetHit {
		return nil, outcomeBudgetExhausted
	}
	return nil, outcomeDeadEnd
}

type rankedStart struct {
	start feasibility.Start
	cost  int
}

// rankCandidates orders a slot's candidates cheapest-first: a start that
// hits the teacher's avoid-set costs more, so the first complete leaf the
// search finds already favors a lower objective. Ties break on timeslot
// and room for determinism.
func rankCandidates(inst domain.Instance, idx domain.Index, s slot, starts []feasibility.Start) []rankedStart {
	course := idx.Course[s.course]
	teacher := idx.Teacher[course.TeacherID]

	ranked := make([]rankedStart, len(starts))
	for i, st := range starts {
		cost := 0
		if teacher.Avoids(st.Timeslot) {
			cost++
		}
		if course.Duration == 2 {
			if next, ok := idx.NextSlot(inst.Timeslots, st.Timeslot); ok && teacher.Avoids(next) {
				cost++
			}
		}
		ranked[i] = rankedStart{start: st, cost: cost}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].cost != ranked[j].cost {
			return ranked[i].cost < ranked[j].cost
		}
		if ranked[i].start.Timeslot != ranked[j].start.Timeslot {
			return ranked[i].start.Timeslot < ranked[j].start.Timeslot
		}
		return ranked[i].start.Room < ranked[j].start.Room
	})
	return ranked
}
