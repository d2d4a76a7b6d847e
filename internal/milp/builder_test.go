package milp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
)

func singleCourseInstance() domain.Instance {
	return domain.Instance{
		Teachers:  []domain.Teacher{{ID: "t1"}},
		Groups:    []domain.Group{{ID: "g1", Size: 10}},
		Rooms:     []domain.Room{{ID: "r1", Capacity: 30}},
		Courses:   []domain.Course{{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 2, Duration: 1}},
		Timeslots: []domain.TimeslotID{"mon.0", "mon.1", "mon.2", "mon.3"},
		Policy:    domain.Policy{UnpreferredTime: 0, Windows: 1},
	}
}

// Scenario 1 (spec §8): countPerWeek=2, duration=1, four timeslots,
// windows=1/unpref=0 — a minimum-window solution exists at objective <= 1.
func TestSolveMinimumWindowScenario(t *testing.T) {
	inst := singleCourseInstance()
	result := Solve(inst, nil, nil, 0)
	require.Equal(t, domain.StatusSolved, result.Status)
	assert.Len(t, result.Assignments, 2)
	assert.LessOrEqual(t, result.Objective, 1.0)
}

// Scenario 2: avoid_slots + unpref weighting keeps both meetings off mon.0.
func TestSolveAvoidsUnpreferredSlot(t *testing.T) {
	inst := singleCourseInstance()
	inst.Teachers[0].Prefs.AvoidSlots = []domain.TimeslotID{"mon.0"}
	inst.Policy = domain.Policy{UnpreferredTime: 5, Windows: 0}

	result := Solve(inst, nil, nil, 0)
	require.Equal(t, domain.StatusSolved, result.Status)
	for _, a := range result.Assignments {
		assert.NotEqual(t, domain.TimeslotID("mon.0"), a.TimeslotID)
	}
	assert.Equal(t, 0.0, result.Objective)
}

// Scenario 4: a pin plus a base (irrelevant here — MILP never sees base,
// only pinned/partialPins) must keep the pinned meeting verbatim and must
// not also place the course at a second, distinct free slot beyond what
// remains.
func TestSolveKeepsPinnedAssignmentVerbatim(t *testing.T) {
	inst := singleCourseInstance()
	inst.Courses[0].CountPerWeek = 1
	pinned := []domain.Assignment{{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"}}

	result := Solve(inst, pinned, nil, 0)
	require.Equal(t, domain.StatusSolved, result.Status)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, pinned[0], result.Assignments[0])
}

// Scenario 6: two courses sharing a teacher, countPerWeek=1 each, only one
// timeslot — infeasible.
func TestSolveInfeasibleWhenNoRoomForBothCourses(t *testing.T) {
	inst := domain.Instance{
		Teachers: []domain.Teacher{{ID: "t1"}},
		Groups:   []domain.Group{{ID: "g1", Size: 10}},
		Rooms:    []domain.Room{{ID: "r1", Capacity: 30}},
		Courses: []domain.Course{
			{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 1, Duration: 1},
			{ID: "c2", GroupID: "g1", TeacherID: "t1", CountPerWeek: 1, Duration: 1},
		},
		Timeslots: []domain.TimeslotID{"mon.0"},
	}
	result := Solve(inst, nil, nil, 0)
	assert.Equal(t, domain.StatusInfeasible, result.Status)
}

func TestSolvePartialPinRestrictsTimeslot(t *testing.T) {
	inst := singleCourseInstance()
	inst.Courses[0].CountPerWeek = 1
	pinnedSlot := domain.TimeslotID("mon.3")
	partials := []domain.PartialPin{{CourseID: "c1", TimeslotID: &pinnedSlot}}

	result := Solve(inst, nil, partials, 0)
	require.Equal(t, domain.StatusSolved, result.Status)
	require.Len(t, result.Assignments, 1)
	assert.Equal(t, pinnedSlot, result.Assignments[0].TimeslotID)
}
