package milp

import "github.com/noah-isme/unischedule/internal/domain"

// greedySolve is the deterministic fallback described in spec.md §4.5:
// iterate courses in input order, scan timeslots then rooms, placing
// meetings into the first non-clashing, feasible cell until countPerWeek
// is reached; break out of both scan loops once a course is fully placed
// (the §9 Open Question, resolved conservatively). Ignores soft weights —
// callers score the returned assignments at 0 regardless of preferences.
func greedySolve(inst domain.Instance, idx domain.Index, occ occupancy, remaining map[domain.CourseID]int) ([]domain.Assignment, bool) {
	var assignments []domain.Assignment

	for _, c := range inst.Courses {
		need := remaining[c.ID]
		if need <= 0 {
			continue
		}
		teacher := idx.Teacher[c.TeacherID]
		group := idx.Group[c.GroupID]

		placed := 0
	scan:
		for _, slot := range inst.Timeslots {
			if !teacher.Available(slot) {
				continue
			}
			var next domain.TimeslotID
			hasNext := false
			if c.Duration == 2 {
				next, hasNext = idx.NextSlot(inst.Timeslots, slot)
				if !hasNext || !teacher.Available(next) {
					continue
				}
			}
			for _, r := range inst.Rooms {
				if r.Capacity < group.Size || !r.HasEquip(c.Equip) {
					continue
				}
				if occ.clashes(r.ID, c.TeacherID, c.GroupID, slot) {
					continue
				}
				if hasNext && occ.clashes(r.ID, c.TeacherID, c.GroupID, next) {
					continue
				}

				occ.mark(r.ID, c.TeacherID, c.GroupID, slot)
				if hasNext {
					occ.mark(r.ID, c.TeacherID, c.GroupID, next)
				}
				assignments = append(assignments, domain.Assignment{
					CourseID: c.ID, TimeslotID: slot, RoomID: r.ID, TeacherID: c.TeacherID,
				})
				placed++
				if placed == need {
					break scan
				}
				continue scan
			}
		}
		if placed < need {
			return assignments, false
		}
	}
	return assignments, true
}
