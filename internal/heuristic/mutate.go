package heuristic

import (
	"math/rand"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

// mutate produces a child by relocating a small number of non-pinned,
// non-fully-locked meetings per spec.md §4.6. Never produces a
// hard-infeasible child: a meeting that finds no non-clashing candidate
// is restored to its original position.
func mutate(inst domain.Instance, idx domain.Index, feas feasibility.Index, parent individual, rng *rand.Rand) individual {
	child := parent.clone()
	occ := buildOccupancy(inst, idx, child.assignments)

	mutable := make([]int, 0, len(child.assignments))
	for i, m := range child.meta {
		if !m.locked && !m.fullyLocked() {
			mutable = append(mutable, i)
		}
	}
	if len(mutable) == 0 {
		return child
	}

	count := 1 + min(3, len(child.assignments)/10)
	rng.Shuffle(len(mutable), func(i, j int) { mutable[i], mutable[j] = mutable[j], mutable[i] })
	if count > len(mutable) {
		count = len(mutable)
	}

	for _, i := range mutable[:count] {
		relocate(inst, idx, feas, &occ, child.assignments, child.meta, i, rng)
	}

	child.objective = evaluate(inst, child.assignments)
	return child
}

// relocate attempts to move the meeting at index i to a new candidate,
// restoring its original cell on failure.
func relocate(inst domain.Instance, idx domain.Index, feas feasibility.Index, occ *occupancy, assignments []domain.Assignment, metas []meeting, i int, rng *rand.Rand) {
	a := assignments[i]
	course := idx.Course[a.CourseID]

	var origNext domain.TimeslotID
	hasOrigNext := false
	if course.Duration == 2 {
		origNext, hasOrigNext = idx.NextSlot(inst.Timeslots, a.TimeslotID)
	}
	occ.unmark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
	if hasOrigNext {
		occ.unmark(a.RoomID, course.TeacherID, course.GroupID, origNext)
	}

	candidates := shuffled(metas[i].candidates(feas), rng)
	for _, cand := range candidates {
		if occ.clashes(cand.Room, course.TeacherID, course.GroupID, cand.Timeslot) {
			continue
		}
		var next domain.TimeslotID
		hasNext := false
		if course.Duration == 2 {
			next, hasNext = idx.NextSlot(inst.Timeslots, cand.Timeslot)
			if !hasNext || occ.clashes(cand.Room, course.TeacherID, course.GroupID, next) {
				continue
			}
		}
		occ.mark(cand.Room, course.TeacherID, course.GroupID, cand.Timeslot)
		if hasNext {
			occ.mark(cand.Room, course.TeacherID, course.GroupID, next)
		}
		assignments[i] = domain.Assignment{
			CourseID: a.CourseID, TimeslotID: cand.Timeslot, RoomID: cand.Room, TeacherID: a.TeacherID,
		}
		return
	}

	// No non-clashing candidate: restore the original position.
	occ.mark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
	if hasOrigNext {
		occ.mark(a.RoomID, course.TeacherID, course.GroupID, origNext)
	}
}
