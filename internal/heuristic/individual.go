// Package heuristic implements the GA-based heuristic engine (spec.md
// §4.6): population construction, steady-state tournament evolution, a
// single local mutation operator, and a hill-climbing repair mode used by
// the dispatcher to post-process a MILP solution. Grounded on
// original_source/crates/solver-heur/src/lib.rs (build_feasible,
// construct_individual, mutate, evolve, improve_from).
package heuristic

import (
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
	"github.com/noah-isme/unischedule/internal/scoring"
)

// meeting records, for one entry in an individual's assignment list,
// whether it is untouchable (pinned) and which axes (if any) a partial
// pin restricts it to.
type meeting struct {
	course domain.CourseID
	pin    *domain.PartialPin
	locked bool
}

// fullyLocked reports whether the meeting's partial pin fixes both
// timeslot and room — the TimeAndRoom-equivalent lock mutation must skip.
func (m meeting) fullyLocked() bool {
	return m.pin != nil && m.pin.TimeslotID != nil && m.pin.RoomID != nil
}

// candidates narrows starts to whichever axis m's pin restricts.
func (m meeting) candidates(feas feasibility.Index) []feasibility.Start {
	base := feas[m.course]
	if m.pin == nil {
		return base
	}
	out := make([]feasibility.Start, 0, len(base))
	for _, c := range base {
		if m.pin.MatchesTimeslot(c.Timeslot) && m.pin.MatchesRoom(c.Room) {
			out = append(out, c)
		}
	}
	return out
}

// individual is one candidate schedule: a parallel assignments/meta slice
// plus its cached objective.
type individual struct {
	assignments []domain.Assignment
	meta        []meeting
	objective   float64
}

func (ind individual) clone() individual {
	return individual{
		assignments: append([]domain.Assignment(nil), ind.assignments...),
		meta:        append([]meeting(nil), ind.meta...),
		objective:   ind.objective,
	}
}

// sortedCourses returns inst.Courses ordered by ascending feasible-start
// count — most constrained first, per spec.md §4.6.
func sortedCourses(inst domain.Instance, feas feasibility.Index) []domain.Course {
	courses := append([]domain.Course(nil), inst.Courses...)
	sort.SliceStable(courses, func(i, j int) bool {
		return len(feas[courses[i].ID]) < len(feas[courses[j].ID])
	})
	return courses
}

// buildOccupancy seeds an occupancy tracker from a set of already-placed
// assignments.
func buildOccupancy(inst domain.Instance, idx domain.Index, assignments []domain.Assignment) occupancy {
	occ := newOccupancy()
	for _, a := range assignments {
		seedOne(&occ, inst, idx, a)
	}
	return occ
}

func seedOne(occ *occupancy, inst domain.Instance, idx domain.Index, a domain.Assignment) {
	course, ok := idx.Course[a.CourseID]
	if !ok {
		return
	}
	occ.mark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
	if course.Duration == 2 {
		if next, ok := idx.NextSlot(inst.Timeslots, a.TimeslotID); ok {
			occ.mark(a.RoomID, course.TeacherID, course.GroupID, next)
		}
	}
}

func evaluate(inst domain.Instance, assignments []domain.Assignment) float64 {
	return scoring.Objective(inst, assignments)
}
