package heuristic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
)

func singleCourseEnvelope() domain.SolveEnvelope {
	return domain.SolveEnvelope{
		Instance: domain.Instance{
			Teachers:  []domain.Teacher{{ID: "t1"}},
			Groups:    []domain.Group{{ID: "g1", Size: 10}},
			Rooms:     []domain.Room{{ID: "r1", Capacity: 30}},
			Courses:   []domain.Course{{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 2, Duration: 1}},
			Timeslots: []domain.TimeslotID{"mon.0", "mon.1", "mon.2", "mon.3"},
			Policy:    domain.Policy{UnpreferredTime: 0, Windows: 1},
		},
		Params: domain.SolveParams{Solver: domain.SolverHeuristic, Seed: 42},
	}
}

// Scenario 1 (spec §8): minimum-window solve, objective <= 1.
func TestSolveMinimumWindowScenario(t *testing.T) {
	env := singleCourseEnvelope()
	result := Solve(env, nil, nil)
	require.Equal(t, domain.StatusSolved, result.Status)
	assert.Len(t, result.Assignments, 2)
	assert.LessOrEqual(t, result.Objective, 1.0)
}

// Scenario 2: avoid_slots pushes both meetings off mon.0 when unpref
// dominates windows.
func TestSolveAvoidsUnpreferredSlot(t *testing.T) {
	env := singleCourseEnvelope()
	env.Instance.Teachers[0].Prefs.AvoidSlots = []domain.TimeslotID{"mon.0"}
	env.Instance.Policy = domain.Policy{UnpreferredTime: 5, Windows: 0}

	result := Solve(env, nil, nil)
	require.Equal(t, domain.StatusSolved, result.Status)
	for _, a := range result.Assignments {
		assert.NotEqual(t, domain.TimeslotID("mon.0"), a.TimeslotID)
	}
	assert.Equal(t, 0.0, result.Objective)
}

// Determinism law (spec §8): same envelope + seed ⇒ same result.
func TestSolveDeterministicForFixedSeed(t *testing.T) {
	env := singleCourseEnvelope()
	r1 := Solve(env, nil, nil)
	r2 := Solve(env, nil, nil)
	assert.Equal(t, r1.Assignments, r2.Assignments)
	assert.Equal(t, r1.Objective, r2.Objective)
}

// Scenario 4: a pin is kept verbatim.
func TestSolveKeepsPinnedAssignmentVerbatim(t *testing.T) {
	env := singleCourseEnvelope()
	env.Instance.Courses[0].CountPerWeek = 1
	pinned := []domain.Assignment{{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"}}

	result := Solve(env, pinned, nil)
	require.Equal(t, domain.StatusSolved, result.Status)
	found := false
	for _, a := range result.Assignments {
		if a == pinned[0] {
			found = true
		}
	}
	assert.True(t, found)
}

// Scenario 6: infeasible construction reports status "infeasible".
func TestSolveInfeasibleWhenNoViableRoom(t *testing.T) {
	env := domain.SolveEnvelope{
		Instance: domain.Instance{
			Teachers:  []domain.Teacher{{ID: "t1"}},
			Groups:    []domain.Group{{ID: "g1", Size: 100}},
			Rooms:     []domain.Room{{ID: "r1", Capacity: 10}},
			Courses:   []domain.Course{{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 1, Duration: 1}},
			Timeslots: []domain.TimeslotID{"mon.0"},
		},
		Params: domain.SolveParams{Solver: domain.SolverHeuristic, Seed: 1},
	}
	result := Solve(env, nil, nil)
	assert.Equal(t, domain.StatusInfeasible, result.Status)
}

// spec §8 testable property 3: room/teacher/group conflict invariants
// hold even when construction is seeded with conflicting pins.
func TestSolveFailsWhenPinnedAssignmentsClash(t *testing.T) {
	env := domain.SolveEnvelope{
		Instance: domain.Instance{
			Teachers:  []domain.Teacher{{ID: "t1"}, {ID: "t2"}},
			Groups:    []domain.Group{{ID: "g1", Size: 5}, {ID: "g2", Size: 5}},
			Rooms:     []domain.Room{{ID: "r1", Capacity: 30}},
			Courses: []domain.Course{
				{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 1, Duration: 1},
				{ID: "c2", GroupID: "g2", TeacherID: "t2", CountPerWeek: 1, Duration: 1},
			},
			Timeslots: []domain.TimeslotID{"mon.0", "mon.1"},
		},
		Params: domain.SolveParams{Solver: domain.SolverHeuristic, Seed: 1},
	}
	pinned := []domain.Assignment{
		{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"},
		{CourseID: "c2", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t2"},
	}

	result := Solve(env, pinned, nil)
	assert.Equal(t, domain.StatusInfeasible, result.Status)
}

func TestImproveFromNeverWorsensObjective(t *testing.T) {
	env := singleCourseEnvelope()
	env.Instance.Teachers[0].Prefs.AvoidSlots = []domain.TimeslotID{"mon.0"}
	env.Instance.Policy = domain.Policy{UnpreferredTime: 5, Windows: 1}
	env.Params.Seed = 7

	start := []domain.Assignment{
		{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"},
		{CourseID: "c1", TimeslotID: "mon.1", RoomID: "r1", TeacherID: "t1"},
	}
	before := evaluate(env.Instance, start)

	got, objective := ImproveFrom(env, nil, nil, start, DefaultRepairSteps(len(start)))
	require.Len(t, got, 2)
	assert.LessOrEqual(t, objective, before)
}
