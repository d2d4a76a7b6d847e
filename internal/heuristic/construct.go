package heuristic

import (
	"math/rand"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

// construct builds one individual per spec.md §4.6: pinned assignments
// are placed first and marked untouchable; courses are then processed
// most-constrained-first, each satisfying its partial pins, then (when
// warmStart) any matching base assignments, then filling the remainder
// from a shuffled feasible list. Returns ok=false if any meeting cannot
// be placed, including when two pinned assignments themselves clash.
func construct(
	inst domain.Instance,
	idx domain.Index,
	feas feasibility.Index,
	pinned []domain.Assignment,
	partialPins []domain.PartialPin,
	base []domain.Assignment,
	warmStart bool,
	rng *rand.Rand,
) (individual, bool) {
	occ := newOccupancy()
	assignments := make([]domain.Assignment, 0, len(inst.Courses))
	metas := make([]meeting, 0, len(inst.Courses))

	pinnedCount := make(map[domain.CourseID]int, len(inst.Courses))
	for _, a := range pinned {
		if !seedPinned(&occ, inst, idx, a) {
			return individual{}, false
		}
		assignments = append(assignments, a)
		metas = append(metas, meeting{course: a.CourseID, locked: true})
		pinnedCount[a.CourseID]++
	}

	partialByCourse := make(map[domain.CourseID][]domain.PartialPin, len(partialPins))
	for _, p := range partialPins {
		partialByCourse[p.CourseID] = append(partialByCourse[p.CourseID], p)
	}
	baseByCourse := make(map[domain.CourseID][]domain.Assignment)
	if warmStart {
		for _, a := range base {
			baseByCourse[a.CourseID] = append(baseByCourse[a.CourseID], a)
		}
	}

	for _, c := range sortedCourses(inst, feas) {
		remaining := c.CountPerWeek - pinnedCount[c.ID]
		if remaining <= 0 {
			continue
		}
		course := idx.Course[c.ID]

		for _, pinVal := range partialByCourse[c.ID] {
			if remaining <= 0 {
				break
			}
			p := pinVal
			m := meeting{course: c.ID, pin: &p}
			candidates := shuffled(m.candidates(feas), rng)
			placed := false
			for _, cand := range candidates {
				if tryPlace(&occ, inst, idx, course, cand, &assignments, &metas, m) {
					placed = true
					remaining--
					break
				}
			}
			if !placed {
				return individual{}, false
			}
		}

		for _, a := range baseByCourse[c.ID] {
			if remaining <= 0 {
				break
			}
			cand := feasibility.Start{Timeslot: a.TimeslotID, Room: a.RoomID}
			if tryPlace(&occ, inst, idx, course, cand, &assignments, &metas, meeting{course: c.ID}) {
				remaining--
			}
		}

		if remaining > 0 {
			for _, cand := range shuffled(feas[c.ID], rng) {
				if remaining == 0 {
					break
				}
				if tryPlace(&occ, inst, idx, course, cand, &assignments, &metas, meeting{course: c.ID}) {
					remaining--
				}
			}
		}
		if remaining > 0 {
			return individual{}, false
		}
	}

	return individual{
		assignments: assignments,
		meta:        metas,
		objective:   evaluate(inst, assignments),
	}, true
}

// seedPinned marks occ for a pinned assignment, refusing (and leaving occ
// untouched) if a's room/teacher/group/timeslot clashes with anything
// already placed, the same check tryPlace runs for non-pinned candidates.
func seedPinned(occ *occupancy, inst domain.Instance, idx domain.Index, a domain.Assignment) bool {
	course, ok := idx.Course[a.CourseID]
	if !ok {
		return false
	}
	if occ.clashes(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID) {
		return false
	}
	var next domain.TimeslotID
	hasNext := false
	if course.Duration == 2 {
		next, hasNext = idx.NextSlot(inst.Timeslots, a.TimeslotID)
		if !hasNext || occ.clashes(a.RoomID, course.TeacherID, course.GroupID, next) {
			return false
		}
	}
	occ.mark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
	if hasNext {
		occ.mark(a.RoomID, course.TeacherID, course.GroupID, next)
	}
	return true
}

// tryPlace marks cand's occupancy and appends the resulting assignment
// and meta if cand does not clash with occ; returns whether it placed.
func tryPlace(
	occ *occupancy,
	inst domain.Instance,
	idx domain.Index,
	course domain.Course,
	cand feasibility.Start,
	assignments *[]domain.Assignment,
	metas *[]meeting,
	m meeting,
) bool {
	if occ.clashes(cand.Room, course.TeacherID, course.GroupID, cand.Timeslot) {
		return false
	}
	var next domain.TimeslotID
	hasNext := false
	if course.Duration == 2 {
		next, hasNext = idx.NextSlot(inst.Timeslots, cand.Timeslot)
		if !hasNext || occ.clashes(cand.Room, course.TeacherID, course.GroupID, next) {
			return false
		}
	}
	occ.mark(cand.Room, course.TeacherID, course.GroupID, cand.Timeslot)
	if hasNext {
		occ.mark(cand.Room, course.TeacherID, course.GroupID, next)
	}
	*assignments = append(*assignments, domain.Assignment{
		CourseID: course.ID, TimeslotID: cand.Timeslot, RoomID: cand.Room, TeacherID: course.TeacherID,
	})
	*metas = append(*metas, m)
	return true
}

func shuffled(in []feasibility.Start, rng *rand.Rand) []feasibility.Start {
	out := append([]feasibility.Start(nil), in...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
