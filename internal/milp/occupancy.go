package milp

import "github.com/noah-isme/unischedule/internal/domain"

// occupancy tracks which (room|teacher|group, timeslot) cells are claimed
// during search. Unlike feasibility's static variant, this one supports
// unmarking so backtracking can undo a speculative placement.
type occupancy struct {
	room    map[domain.RoomID]map[domain.TimeslotID]bool
	teacher map[domain.TeacherID]map[domain.TimeslotID]bool
	group   map[domain.GroupID]map[domain.TimeslotID]bool
}

func newOccupancy() occupancy {
	return occupancy{
		room:    make(map[domain.RoomID]map[domain.TimeslotID]bool),
		teacher: make(map[domain.TeacherID]map[domain.TimeslotID]bool),
		group:   make(map[domain.GroupID]map[domain.TimeslotID]bool),
	}
}

func (o *occupancy) mark(room domain.RoomID, teacher domain.TeacherID, group domain.GroupID, slot domain.TimeslotID) {
	markCell(o.room, room, slot)
	markCell(o.teacher, teacher, slot)
	markCell(o.group, group, slot)
}

func (o *occupancy) unmark(room domain.RoomID, teacher domain.TeacherID, group domain.GroupID, slot domain.TimeslotID) {
	delete(o.room[room], slot)
	delete(o.teacher[teacher], slot)
	delete(o.group[group], slot)
}

func (o occupancy) clashes(room domain.RoomID, teacher domain.TeacherID, group domain.GroupID, slot domain.TimeslotID) bool {
	return o.room[room][slot] || o.teacher[teacher][slot] || o.group[group][slot]
}

func markCell[K comparable](m map[K]map[domain.TimeslotID]bool, key K, slot domain.TimeslotID) {
	inner, ok := m[key]
	if !ok {
		inner = make(map[domain.TimeslotID]bool)
		m[key] = inner
	}
	inner[slot] = true
}

// seedFromAssignments marks the cells already claimed by a (typically
// pinned) assignment list, including the successor slot for Duration==2
// meetings.
func seedFromAssignments(o *occupancy, inst domain.Instance, idx domain.Index, assignments []domain.Assignment) {
	for _, a := range assignments {
		course, ok := idx.Course[a.CourseID]
		if !ok {
			continue
		}
		o.mark(a.RoomID, course.TeacherID, course.GroupID, a.TimeslotID)
		if course.Duration == 2 {
			if next, ok := idx.NextSlot(inst.Timeslots, a.TimeslotID); ok {
				o.mark(a.RoomID, course.TeacherID, course.GroupID, next)
			}
		}
	}
}
