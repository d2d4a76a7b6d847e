package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
)

func baseEnvelope() domain.SolveEnvelope {
	return domain.SolveEnvelope{
		Instance: domain.Instance{
			Teachers:  []domain.Teacher{{ID: "t1"}},
			Groups:    []domain.Group{{ID: "g1", Size: 10}},
			Rooms:     []domain.Room{{ID: "r1", Capacity: 30}},
			Courses:   []domain.Course{{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 2, Duration: 1}},
			Timeslots: []domain.TimeslotID{"mon.0", "mon.1", "mon.2", "mon.3"},
			Policy:    domain.Policy{UnpreferredTime: 0, Windows: 1},
		},
	}
}

func TestSolveRoutesToMilp(t *testing.T) {
	env := baseEnvelope()
	env.Params.Solver = domain.SolverMilp
	result := Solve(env)
	require.Equal(t, domain.StatusSolved, result.Status)
	assert.Len(t, result.Assignments, 2)
}

func TestSolveRoutesToHeuristic(t *testing.T) {
	env := baseEnvelope()
	env.Params.Solver = domain.SolverHeuristic
	env.Params.Seed = 9
	result := Solve(env)
	require.Equal(t, domain.StatusSolved, result.Status)
	assert.Len(t, result.Assignments, 2)
}

// MILP+repair monotonicity law (spec §8): final objective <= MILP objective.
func TestSolveRepairNeverWorsensObjective(t *testing.T) {
	env := baseEnvelope()
	env.Instance.Teachers[0].Prefs.AvoidSlots = []domain.TimeslotID{"mon.0"}
	env.Instance.Policy = domain.Policy{UnpreferredTime: 5, Windows: 1}
	env.Params.Solver = domain.SolverMilp
	env.Params.RepairLocalSearch = true
	env.Params.Seed = 3

	plain := Solve(domain.SolveEnvelope{Instance: env.Instance, Params: domain.SolveParams{Solver: domain.SolverMilp}})
	repaired := Solve(env)

	require.Equal(t, domain.StatusSolved, repaired.Status)
	assert.LessOrEqual(t, repaired.Objective, plain.Objective)
	assert.Contains(t, repaired.Stats, "before_objective")
	assert.Contains(t, repaired.Stats, "after_objective")
}

func TestSolveMasksExpandBeforeDispatch(t *testing.T) {
	env := baseEnvelope()
	env.Instance.Courses[0].CountPerWeek = 2
	env.Base = []domain.Assignment{
		{CourseID: "c1", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"},
		{CourseID: "c1", TimeslotID: "mon.1", RoomID: "r1", TeacherID: "t1"},
	}
	env.Masks = []domain.LockMask{{Courses: []domain.CourseID{"c1"}, Lock: domain.LockFull}}
	env.Params.Solver = domain.SolverMilp

	result := Solve(env)
	require.Equal(t, domain.StatusSolved, result.Status)
	assert.ElementsMatch(t, env.Base, result.Assignments)
}
