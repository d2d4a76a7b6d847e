// Package feasibility implements the feasibility index (spec.md §4.4): for
// each course, the set of legal (timeslot, room) starting positions.
// Grounded on original_source/crates/solver-milp/src/milp_core.rs
// (Prep/declare_starts) and crates/solver-heur/src/lib.rs (build_feasible).
package feasibility

import "github.com/noah-isme/unischedule/internal/domain"

// Start is one legal (timeslot, room) starting position for a course.
type Start struct {
	Timeslot domain.TimeslotID
	Room     domain.RoomID
}

// Index maps a course id to its ordered list of feasible starts.
type Index map[domain.CourseID][]Start

// Build computes the feasibility index for inst: a course's teacher must be
// available at the start (and at the next slot when Duration==2, unless
// availability is empty which means "any"); a Duration==2 meeting must not
// start at the last timeslot; the room must have sufficient capacity and
// cover every required equipment tag.
func Build(inst domain.Instance) Index {
	return build(inst, nil)
}

// BuildExcludingPinned computes the feasibility index excluding (timeslot,
// room) starts that would collide with room/teacher/group occupancy
// already claimed by pinned assignments — used when declaring MILP start
// variables (spec.md §4.4's additional MILP-only clause).
func BuildExcludingPinned(inst domain.Instance, pinned []domain.Assignment) Index {
	occ := newOccupancy(inst, pinned)
	return build(inst, &occ)
}

func build(inst domain.Instance, exclude *occupancy) Index {
	idx := domain.BuildIndex(inst)
	out := make(Index, len(inst.Courses))

	for _, c := range inst.Courses {
		teacher := idx.Teacher[c.TeacherID]
		group := idx.Group[c.GroupID]

		var starts []Start
		for _, slot := range inst.Timeslots {
			if !teacher.Available(slot) {
				continue
			}
			var next domain.TimeslotID
			if c.Duration == 2 {
				n, ok := idx.NextSlot(inst.Timeslots, slot)
				if !ok || !teacher.Available(n) {
					continue
				}
				next = n
			}
			for _, r := range inst.Rooms {
				if r.Capacity < group.Size || !r.HasEquip(c.Equip) {
					continue
				}
				if exclude != nil {
					if exclude.occupied(r.ID, c.TeacherID, c.GroupID, slot) {
						continue
					}
					if c.Duration == 2 && exclude.occupied(r.ID, c.TeacherID, c.GroupID, next) {
						continue
					}
				}
				starts = append(starts, Start{Timeslot: slot, Room: r.ID})
			}
		}
		out[c.ID] = starts
	}
	return out
}

// occupancy records which (room|teacher|group, timeslot) cells are already
// claimed by pinned assignments.
type occupancy struct {
	room    map[domain.RoomID]map[domain.TimeslotID]bool
	teacher map[domain.TeacherID]map[domain.TimeslotID]bool
	group   map[domain.GroupID]map[domain.TimeslotID]bool
}

func newOccupancy(inst domain.Instance, pinned []domain.Assignment) occupancy {
	idx := domain.BuildIndex(inst)
	occ := occupancy{
		room:    make(map[domain.RoomID]map[domain.TimeslotID]bool),
		teacher: make(map[domain.TeacherID]map[domain.TimeslotID]bool),
		group:   make(map[domain.GroupID]map[domain.TimeslotID]bool),
	}
	for _, a := range pinned {
		course, ok := idx.Course[a.CourseID]
		if !ok {
			continue
		}
		occ.mark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
		if course.Duration == 2 {
			if next, ok := idx.NextSlot(inst.Timeslots, a.TimeslotID); ok {
				occ.mark(a.RoomID, course.TeacherID, course.GroupID, next)
			}
		}
	}
	return occ
}

func (o *occupancy) mark(room domain.RoomID, teacher domain.TeacherID, group domain.GroupID, slot domain.TimeslotID) {
	markSlot(o.room, room, slot)
	markSlot(o.teacher, teacher, slot)
	markSlot(o.group, group, slot)
}

func (o occupancy) occupied(room domain.RoomID, teacher domain.TeacherID, group domain.GroupID, slot domain.TimeslotID) bool {
	if o.room[room][slot] {
		return true
	}
	if o.teacher[teacher][slot] {
		return true
	}
	if o.group[group][slot] {
		return true
	}
	return false
}

func markSlot[K comparable](m map[K]map[domain.TimeslotID]bool, key K, slot domain.TimeslotID) {
	inner, ok := m[key]
	if !ok {
		inner = make(map[domain.TimeslotID]bool)
		m[key] = inner
	}
	inner[slot] = true
}
