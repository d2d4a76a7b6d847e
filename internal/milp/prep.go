package milp

import (
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

// slot is one meeting of one course still needing a (timeslot, room)
// assignment. pin is non-nil for a meeting that must match a partial pin's
// specified axes.
type slot struct {
	course domain.CourseID
	pin    *domain.PartialPin
}

// candidates returns the starts this slot could legally take, restricted by
// the slot's pin (if any) and filtered against base feasibility.
func (s slot) candidates(feas feasibility.Index) []feasibility.Start {
	base := feas[s.course]
	if s.pin == nil {
		return base
	}
	out := make([]feasibility.Start, 0, len(base))
	for _, c := range base {
		if s.pin.MatchesTimeslot(c.Timeslot) && s.pin.MatchesRoom(c.Room) {
			out = append(out, c)
		}
	}
	return out
}

// buildSlots computes the meetings still needing placement for every
// course: pinned meetings and matched partial pins reduce the remaining
// count; the rest are free slots. Returns ok=false if any course's
// countPerWeek is already exceeded by pins plus partial pins (an
// inconsistent envelope).
func buildSlots(inst domain.Instance, pinned []domain.Assignment, partialPins []domain.PartialPin) ([]slot, bool) {
	pinnedCount := make(map[domain.CourseID]int, len(inst.Courses))
	for _, a := range pinned {
		pinnedCount[a.CourseID]++
	}
	partialByCourse := make(map[domain.CourseID][]domain.PartialPin, len(partialPins))
	for _, p := range partialPins {
		partialByCourse[p.CourseID] = append(partialByCourse[p.CourseID], p)
	}

	var slots []slot
	for _, c := range inst.Courses {
		remaining := c.CountPerWeek - pinnedCount[c.ID]
		pins := partialByCourse[c.ID]
		if remaining < len(pins) {
			return nil, false
		}
		for i := range pins {
			p := pins[i]
			slots = append(slots, slot{course: c.ID, pin: &p})
		}
		free := remaining - len(pins)
		for i := 0; i < free; i++ {
			slots = append(slots, slot{course: c.ID})
		}
	}
	return slots, true
}

// orderSlots sorts pin-constrained slots first (fewer candidates to try),
// then free slots by ascending candidate count — most-constrained-first,
// a standard CSP ordering heuristic. Stable so the result is deterministic
// for a given instance.
func orderSlots(slots []slot, feas feasibility.Index) []slot {
	sort.SliceStable(slots, func(i, j int) bool {
		pi, pj := slots[i].pin != nil, slots[j].pin != nil
		if pi != pj {
			return pi
		}
		return len(slots[i].candidates(feas)) < len(slots[j].candidates(feas))
	})
	return slots
}
