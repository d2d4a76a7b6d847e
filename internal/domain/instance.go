package domain

// Policy carries the integer weights driving the objective. BuildingSwitch
// is parsed and stored but never read by the objective (spec.md §1
// Non-goals; see SPEC_FULL.md).
type Policy struct {
	UnpreferredTime int `json:"unpreferred_time"`
	Windows         int `json:"windows"`
	BuildingSwitch  int `json:"building_switch,omitempty"`
}

// Instance is the full static problem description: ordered lists of
// teachers, groups, rooms, courses and timeslots, plus the scoring policy.
type Instance struct {
	Teachers  []Teacher    `json:"teachers"`
	Groups    []Group      `json:"groups"`
	Rooms     []Room       `json:"rooms"`
	Courses   []Course     `json:"courses"`
	Timeslots []TimeslotID `json:"timeslots"`
	Policy    Policy       `json:"policy"`
}

// Index provides O(1) lookups into an Instance, built once per solve.
type Index struct {
	Teacher map[TeacherID]Teacher
	Group   map[GroupID]Group
	Room    map[RoomID]Room
	Course  map[CourseID]Course
	SlotPos map[TimeslotID]int
}

// BuildIndex constructs lookup maps for inst. Callers that need repeated
// lookups during one solve should build this once and pass it around,
// rather than scanning the instance's slices.
func BuildIndex(inst Instance) Index {
	idx := Index{
		Teacher: make(map[TeacherID]Teacher, len(inst.Teachers)),
		Group:   make(map[GroupID]Group, len(inst.Groups)),
		Room:    make(map[RoomID]Room, len(inst.Rooms)),
		Course:  make(map[CourseID]Course, len(inst.Courses)),
		SlotPos: make(map[TimeslotID]int, len(inst.Timeslots)),
	}
	for _, t := range inst.Teachers {
		idx.Teacher[t.ID] = t
	}
	for _, g := range inst.Groups {
		idx.Group[g.ID] = g
	}
	for _, r := range inst.Rooms {
		idx.Room[r.ID] = r
	}
	for _, c := range inst.Courses {
		idx.Course[c.ID] = c
	}
	for pos, s := range inst.Timeslots {
		idx.SlotPos[s] = pos
	}
	return idx
}

// NextSlot returns the timeslot following slot in instance order and true,
// or ("", false) if slot is the last one or unknown. duration==2 meetings
// occupy this slot in addition to their start (spec.md §9: contiguity is
// linear in instance order, regardless of day boundary).
func (idx Index) NextSlot(timeslots []TimeslotID, slot TimeslotID) (TimeslotID, bool) {
	pos, ok := idx.SlotPos[slot]
	if !ok || pos+1 >= len(timeslots) {
		return "", false
	}
	return timeslots[pos+1], true
}
