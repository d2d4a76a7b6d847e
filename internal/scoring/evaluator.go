// Package scoring implements the soft-score evaluator (spec.md §4.1):
// unpreferred-meeting and window counts, and the objective they combine
// into. Grounded on original_source/crates/core/src/scoring.rs.
package scoring

import (
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
)

// Evaluate computes the full score breakdown for assignments against inst.
// Assignments referencing an unknown course are skipped silently, matching
// the original's tolerance for stale references.
func Evaluate(inst domain.Instance, assignments []domain.Assignment) domain.WindowCounts {
	idx := domain.BuildIndex(inst)
	daySlots := groupSlotsByDay(inst.Timeslots)

	occTeacher := make(map[domain.TeacherID]map[domain.TimeslotID]bool)
	occGroup := make(map[domain.GroupID]map[domain.TimeslotID]bool)
	unpreferred := 0

	for _, a := range assignments {
		course, ok := idx.Course[a.CourseID]
		if !ok {
			continue
		}
		teacher := idx.Teacher[course.TeacherID]

		markOccupied(occTeacher, course.TeacherID, a.TimeslotID)
		markOccupied(occGroup, course.GroupID, a.TimeslotID)

		unprefHit := teacher.Avoids(a.TimeslotID)
		if course.Duration == 2 {
			if next, ok := idx.NextSlot(inst.Timeslots, a.TimeslotID); ok {
				markOccupied(occTeacher, course.TeacherID, next)
				markOccupied(occGroup, course.GroupID, next)
				if !unprefHit && teacher.Avoids(next) {
					unprefHit = true
				}
			}
		}
		if unprefHit {
			unpreferred++
		}
	}

	windowsTeachers := make(map[domain.TeacherID]int)
	for teacherID, slots := range occTeacher {
		windowsTeachers[teacherID] = agentWindows(daySlots, slots)
	}
	windowsGroups := make(map[domain.GroupID]int)
	for groupID, slots := range occGroup {
		windowsGroups[groupID] = agentWindows(daySlots, slots)
	}

	windowsTotal := 0
	for _, w := range windowsTeachers {
		windowsTotal += w
	}
	for _, w := range windowsGroups {
		windowsTotal += w
	}

	objective := float64(inst.Policy.UnpreferredTime)*float64(unpreferred) + float64(inst.Policy.Windows)*float64(windowsTotal)

	return domain.WindowCounts{
		UnpreferredMeetings: unpreferred,
		WindowsTeachers:     windowsTeachers,
		WindowsGroups:       windowsGroups,
		WindowsTotal:        windowsTotal,
		Objective:           objective,
	}
}

// Objective is a convenience wrapper returning just the scalar objective.
func Objective(inst domain.Instance, assignments []domain.Assignment) float64 {
	return Evaluate(inst, assignments).Objective
}

func markOccupied[K comparable](occ map[K]map[domain.TimeslotID]bool, agent K, slot domain.TimeslotID) {
	m, ok := occ[agent]
	if !ok {
		m = make(map[domain.TimeslotID]bool)
		occ[agent] = m
	}
	m[slot] = true
}

// groupSlotsByDay builds, for each day present in the ordered timeslot
// list, the ascending-by-index list of slot ids on that day.
func groupSlotsByDay(timeslots []domain.TimeslotID) map[domain.Day][]domain.TimeslotID {
	byDay := make(map[domain.Day][]domain.TimeslotID)
	for _, slot := range timeslots {
		day, _, ok := slot.Split()
		if !ok {
			continue
		}
		byDay[day] = append(byDay[day], slot)
	}
	for day := range byDay {
		slots := byDay[day]
		sort.Slice(slots, func(i, j int) bool {
			return slots[i].Index() < slots[j].Index()
		})
		byDay[day] = slots
	}
	return byDay
}

// agentWindows computes Σ_d (O_{d} − A_{d}) for one agent's occupied-slot
// set, using the shared per-day ordered slot lists.
func agentWindows(daySlots map[domain.Day][]domain.TimeslotID, occupied map[domain.TimeslotID]bool) int {
	total := 0
	for _, slots := range daySlots {
		occ := 0
		adj := 0
		for i, slot := range slots {
			if !occupied[slot] {
				continue
			}
			occ++
			if i > 0 && occupied[slots[i-1]] {
				adj++
			}
		}
		total += occ - adj
	}
	return total
}
