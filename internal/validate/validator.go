// Package validate implements the instance validator (spec.md §4.2):
// structural checks for solvability preconditions. It is informational —
// the solver core may still be invoked on an instance that fails
// validation.
package validate

import (
	"fmt"
	"strings"

	"github.com/noah-isme/unischedule/internal/domain"
)

// Report collects the diagnostics produced by Validate.
type Report struct {
	Errors []string
}

// OK reports whether the instance passed every check.
func (r Report) OK() bool { return len(r.Errors) == 0 }

// Joined renders the diagnostics as a single semicolon-joined message,
// matching the convention in original_source/crates/core/src/lib.rs.
func (r Report) Joined() string { return strings.Join(r.Errors, "; ") }

// Validate runs every structural check against inst and returns the full
// list of diagnostics (empty on success).
func Validate(inst domain.Instance) Report {
	var errs []string

	if len(inst.Timeslots) == 0 {
		errs = append(errs, "timeslots must not be empty")
	}
	for _, slot := range inst.Timeslots {
		if !slot.Valid() {
			errs = append(errs, fmt.Sprintf("invalid timeslot id %q", slot))
		}
	}

	teacherSeen := make(map[domain.TeacherID]bool, len(inst.Teachers))
	for _, t := range inst.Teachers {
		if teacherSeen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate teacher id %q", t.ID))
		}
		teacherSeen[t.ID] = true
	}

	groupSeen := make(map[domain.GroupID]bool, len(inst.Groups))
	for _, g := range inst.Groups {
		if groupSeen[g.ID] {
			errs = append(errs, fmt.Sprintf("duplicate group id %q", g.ID))
		}
		groupSeen[g.ID] = true
	}

	roomSeen := make(map[domain.RoomID]bool, len(inst.Rooms))
	for _, r := range inst.Rooms {
		if roomSeen[r.ID] {
			errs = append(errs, fmt.Sprintf("duplicate room id %q", r.ID))
		}
		roomSeen[r.ID] = true
	}

	courseSeen := make(map[domain.CourseID]bool, len(inst.Courses))
	for _, c := range inst.Courses {
		if courseSeen[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate course id %q", c.ID))
		}
		courseSeen[c.ID] = true
	}

	slotSeen := make(map[domain.TimeslotID]bool, len(inst.Timeslots))
	for _, slot := range inst.Timeslots {
		slotSeen[slot] = true
	}
	for _, t := range inst.Teachers {
		for _, slot := range t.Availability {
			if !slotSeen[slot] {
				errs = append(errs, fmt.Sprintf("teacher %q availability references unknown timeslot %q", t.ID, slot))
			}
		}
	}

	for _, c := range inst.Courses {
		if !teacherSeen[c.TeacherID] {
			errs = append(errs, fmt.Sprintf("course %q references unknown teacher %q", c.ID, c.TeacherID))
		}
		if !groupSeen[c.GroupID] {
			errs = append(errs, fmt.Sprintf("course %q references unknown group %q", c.ID, c.GroupID))
		}
		if c.CountPerWeek < 1 {
			errs = append(errs, fmt.Sprintf("course %q countPerWeek must be >= 1", c.ID))
		}
		if c.Duration != 1 && c.Duration != 2 {
			errs = append(errs, fmt.Sprintf("course %q duration must be 1 or 2", c.ID))
		}

		group, hasGroup := firstGroup(inst, c.GroupID)
		if hasGroup && !courseHasViableRoom(inst, c, group) {
			errs = append(errs, fmt.Sprintf("course %q is unschedulable: no room has sufficient capacity and required equipment", c.ID))
		}
	}

	return Report{Errors: errs}
}

func firstGroup(inst domain.Instance, id domain.GroupID) (domain.Group, bool) {
	for _, g := range inst.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Group{}, false
}

func courseHasViableRoom(inst domain.Instance, c domain.Course, group domain.Group) bool {
	for _, r := range inst.Rooms {
		if r.Capacity >= group.Size && r.HasEquip(c.Equip) {
			return true
		}
	}
	return false
}
