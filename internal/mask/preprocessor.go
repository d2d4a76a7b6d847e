// Package mask implements the mask preprocessor (spec.md §4.3): expanding
// an envelope's masks into concrete pins and partial pins against a base
// schedule. Grounded on original_source/crates/api/src/state.rs
// (mask_matches, partial_pin_matches_mask, apply_masks).
package mask

import (
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
)

// Apply expands env.Masks against env.Base and returns the resulting
// pinned assignments and partial pins, seeded from env.Pinned and
// env.PartialPins. Removers (Negate==true) are applied before additive
// masks, in input order; among additive masks, order does not affect the
// outcome up to deduplication.
func Apply(env domain.SolveEnvelope) ([]domain.Assignment, []domain.PartialPin) {
	idx := domain.BuildIndex(env.Instance)

	pinned := append([]domain.Assignment(nil), env.Pinned...)
	partials := append([]domain.PartialPin(nil), env.PartialPins...)

	for _, m := range env.Masks {
		if !m.Negate {
			continue
		}
		pinned = removeMatchingAssignments(pinned, idx, m)
		partials = removeMatchingPartials(partials, idx, m)
	}

	for _, m := range env.Masks {
		if m.Negate {
			continue
		}
		for _, a := range env.Base {
			course, ok := idx.Course[a.CourseID]
			if !ok || !matchesAssignment(m, a, course) {
				continue
			}
			switch m.Lock {
			case domain.LockFull:
				pinned = appendDedupAssignment(pinned, a)
			case domain.LockTimeslotOnly:
				t := a.TimeslotID
				partials = append(partials, domain.PartialPin{CourseID: a.CourseID, TimeslotID: &t})
			case domain.LockRoomOnly:
				r := a.RoomID
				partials = append(partials, domain.PartialPin{CourseID: a.CourseID, RoomID: &r})
			case domain.LockTimeAndRoom:
				t, r := a.TimeslotID, a.RoomID
				partials = append(partials, domain.PartialPin{CourseID: a.CourseID, TimeslotID: &t, RoomID: &r})
			}
		}
	}

	return pinned, sortDedupPartials(partials)
}

func matchesAssignment(m domain.LockMask, a domain.Assignment, course domain.Course) bool {
	if len(m.Courses) > 0 && !contains(m.Courses, a.CourseID) {
		return false
	}
	if len(m.Groups) > 0 && !contains(m.Groups, course.GroupID) {
		return false
	}
	if len(m.Teachers) > 0 && !contains(m.Teachers, a.TeacherID) {
		return false
	}
	if len(m.Rooms) > 0 && !contains(m.Rooms, a.RoomID) {
		return false
	}
	if len(m.Days) > 0 && !contains(m.Days, a.TimeslotID.Day()) {
		return false
	}
	if len(m.Times) > 0 && !contains(m.Times, a.TimeslotID) {
		return false
	}
	return true
}

// matchesPartialPin requires presence on any axis the mask constrains: a
// partial pin that leaves an axis the mask cares about unset does not
// match, since there is nothing concrete to test membership against.
func matchesPartialPin(m domain.LockMask, p domain.PartialPin, course domain.Course) bool {
	if len(m.Courses) > 0 && !contains(m.Courses, p.CourseID) {
		return false
	}
	if len(m.Groups) > 0 && !contains(m.Groups, course.GroupID) {
		return false
	}
	if len(m.Teachers) > 0 && !contains(m.Teachers, course.TeacherID) {
		return false
	}
	if len(m.Rooms) > 0 {
		if p.RoomID == nil || !contains(m.Rooms, *p.RoomID) {
			return false
		}
	}
	if len(m.Days) > 0 {
		if p.TimeslotID == nil || !contains(m.Days, p.TimeslotID.Day()) {
			return false
		}
	}
	if len(m.Times) > 0 {
		if p.TimeslotID == nil || !contains(m.Times, *p.TimeslotID) {
			return false
		}
	}
	return true
}

func removeMatchingAssignments(in []domain.Assignment, idx domain.Index, m domain.LockMask) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(in))
	for _, a := range in {
		course, ok := idx.Course[a.CourseID]
		if ok && matchesAssignment(m, a, course) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func removeMatchingPartials(in []domain.PartialPin, idx domain.Index, m domain.LockMask) []domain.PartialPin {
	out := make([]domain.PartialPin, 0, len(in))
	for _, p := range in {
		course, ok := idx.Course[p.CourseID]
		if ok && matchesPartialPin(m, p, course) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func appendDedupAssignment(in []domain.Assignment, a domain.Assignment) []domain.Assignment {
	for _, existing := range in {
		if existing == a {
			return in
		}
	}
	return append(in, a)
}

// sortDedupPartials sorts by (courseId, timeslotId, roomId) and removes
// exact-triple duplicates, matching spec.md §4.3.
func sortDedupPartials(in []domain.PartialPin) []domain.PartialPin {
	sort.SliceStable(in, func(i, j int) bool {
		ci, ti, ri := in[i].SortKey()
		cj, tj, rj := in[j].SortKey()
		if ci != cj {
			return ci < cj
		}
		if ti != tj {
			return ti < tj
		}
		return ri < rj
	})

	out := make([]domain.PartialPin, 0, len(in))
	for i, p := range in {
		if i > 0 && p.SortKey() == in[i-1].SortKey() {
			continue
		}
		out = append(out, p)
	}
	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
