// Package dispatch implements the dispatcher (spec.md §4.7): the single
// entry point that expands an envelope's masks and routes the resulting
// pins to the MILP builder or the heuristic engine, optionally chaining
// a heuristic repair pass onto a MILP solution. Grounded on
// original_source/crates/api/src/state.rs's solve-orchestration handler.
package dispatch

import (
	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/heuristic"
	"github.com/noah-isme/unischedule/internal/mask"
	"github.com/noah-isme/unischedule/internal/milp"
)

// Solve expands env's masks and runs the selected solver, per spec.md
// §4.7. It never mutates env.
func Solve(env domain.SolveEnvelope) domain.SolveResult {
	pinned, partialPins := mask.Apply(env)

	switch env.Params.Solver {
	case domain.SolverHeuristic:
		return heuristic.Solve(env, pinned, partialPins)
	default:
		return solveMilp(env, pinned, partialPins)
	}
}

func solveMilp(env domain.SolveEnvelope, pinned []domain.Assignment, partialPins []domain.PartialPin) domain.SolveResult {
	result := milp.Solve(env.Instance, pinned, partialPins, env.Params.TimeLimitMs)
	if result.Status != domain.StatusSolved || !env.Params.RepairLocalSearch {
		return result
	}

	steps := heuristic.DefaultRepairSteps(len(result.Assignments))
	if env.Params.RepairSteps != nil {
		steps = *env.Params.RepairSteps
	}

	repaired, objective := heuristic.ImproveFrom(env, pinned, partialPins, result.Assignments, steps)

	before := result.Objective
	improved := objective < before
	stats := domain.Stats{
		"before_objective": before,
		"after_objective":  objective,
		"improved":         improved,
	}
	for k, v := range result.Stats {
		stats[k] = v
	}

	if !improved {
		result.Stats = stats
		return result
	}

	result.Assignments = repaired
	result.Objective = objective
	result.Stats = stats
	return result
}
