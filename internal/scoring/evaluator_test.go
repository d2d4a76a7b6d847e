package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unischedule/internal/domain"
)

func fixtureInstance(timeslots ...domain.TimeslotID) domain.Instance {
	return domain.Instance{
		Teachers: []domain.Teacher{{ID: "t1"}},
		Groups:   []domain.Group{{ID: "g1", Size: 10}},
		Rooms:    []domain.Room{{ID: "r1", Capacity: 30}},
		Courses: []domain.Course{
			{ID: "c1", GroupID: "g1", TeacherID: "t1", CountPerWeek: 1, Duration: 1},
		},
		Timeslots: timeslots,
		Policy:    domain.Policy{UnpreferredTime: 1, Windows: 1},
	}
}

func assignAt(slots ...domain.TimeslotID) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.Assignment{CourseID: "c1", TimeslotID: s, RoomID: "r1", TeacherID: "t1"})
	}
	return out
}

func TestWindowsFormulaNonAdjacent(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1", "mon.2", "mon.3")
	result := Evaluate(inst, assignAt("mon.0", "mon.2"))
	assert.Equal(t, 2, result.WindowsTeachers["t1"])
}

func TestWindowsFormulaAdjacentPair(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1", "mon.2", "mon.3")
	result := Evaluate(inst, assignAt("mon.0", "mon.1"))
	assert.Equal(t, 1, result.WindowsTeachers["t1"])
}

func TestWindowsFormulaSingle(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1", "mon.2", "mon.3")
	result := Evaluate(inst, assignAt("mon.0"))
	assert.Equal(t, 1, result.WindowsTeachers["t1"])
}

func TestWindowsFormulaRun(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1", "mon.2", "mon.3")
	result := Evaluate(inst, assignAt("mon.0", "mon.1", "mon.2"))
	assert.Equal(t, 1, result.WindowsTeachers["t1"])
}

func TestUnpreferredMeetingsCounted(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1")
	inst.Teachers[0].Prefs.AvoidSlots = []domain.TimeslotID{"mon.0"}
	result := Evaluate(inst, assignAt("mon.0"))
	require.Equal(t, 1, result.UnpreferredMeetings)
	assert.Equal(t, 1.0*1+1.0*2, result.Objective)
}

func TestUnknownCourseSkippedSilently(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1")
	assignments := []domain.Assignment{{CourseID: "missing", TimeslotID: "mon.0", RoomID: "r1", TeacherID: "t1"}}
	result := Evaluate(inst, assignments)
	assert.Equal(t, 0, result.UnpreferredMeetings)
	assert.Equal(t, 0, result.WindowsTotal)
}

func TestObjectiveRecomputationMatchesWeights(t *testing.T) {
	inst := fixtureInstance("mon.0", "mon.1", "mon.2")
	inst.Policy = domain.Policy{UnpreferredTime: 5, Windows: 2}
	result := Evaluate(inst, assignAt("mon.0", "mon.2"))
	expected := float64(inst.Policy.UnpreferredTime)*float64(result.UnpreferredMeetings) + float64(inst.Policy.Windows)*float64(result.WindowsTotal)
	assert.Equal(t, expected, result.Objective)
}
