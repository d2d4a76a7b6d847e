package heuristic

import (
	"math/rand"
	"sort"

	"github.com/noah-isme/unischedule/internal/domain"
	"github.com/noah-isme/unischedule/internal/feasibility"
)

const steadyStateIters = 300

// Solve runs the heuristic engine directly against env, per spec.md §4.6.
func Solve(env domain.SolveEnvelope, pinned []domain.Assignment, partialPins []domain.PartialPin) domain.SolveResult {
	inst := env.Instance
	idx := domain.BuildIndex(inst)
	feas := feasibility.BuildExcludingPinned(inst, pinned)

	rng := rand.New(rand.NewSource(int64(env.Params.Seed)))

	size := populationSize(inst)
	pop := make([]individual, 0, size)

	first, ok := construct(inst, idx, feas, pinned, partialPins, env.Base, true, rng)
	if !ok {
		return domain.SolveResult{Status: domain.StatusInfeasible, Assignments: append([]domain.Assignment(nil), pinned...)}
	}
	pop = append(pop, first)

	for len(pop) < size {
		ind, ok := construct(inst, idx, feas, pinned, partialPins, nil, false, rng)
		if !ok {
			// The problem is feasible (first succeeded); reuse a mutated
			// copy of an existing individual to keep the population full.
			ind = mutate(inst, idx, feas, pop[rng.Intn(len(pop))], rng)
		}
		pop = append(pop, ind)
	}
	sortPopulation(pop)

	for step := 0; step < steadyStateIters; step++ {
		parent := tournament(pop, rng)
		child := mutate(inst, idx, feas, pop[parent], rng)

		worst := len(pop) - 1
		if child.objective < pop[worst].objective {
			pop[worst] = child
			sortPopulation(pop)
		}
	}

	best := pop[0]
	return domain.SolveResult{
		Status:      domain.StatusSolved,
		Objective:   best.objective,
		Assignments: best.assignments,
		Stats:       domain.Stats{"generations": steadyStateIters},
	}
}

// populationSize implements spec.md §4.6: min(40, 10 + 2*|courses|).
func populationSize(inst domain.Instance) int {
	size := 10 + 2*len(inst.Courses)
	if size > 40 {
		size = 40
	}
	if size < 1 {
		size = 1
	}
	return size
}

func sortPopulation(pop []individual) {
	sort.SliceStable(pop, func(i, j int) bool { return pop[i].objective < pop[j].objective })
}

// tournament picks the best of 3 randomly sampled individuals.
func tournament(pop []individual, rng *rand.Rand) int {
	best := rng.Intn(len(pop))
	for i := 0; i < 2; i++ {
		cand := rng.Intn(len(pop))
		if pop[cand].objective < pop[best].objective {
			best = cand
		}
	}
	return best
}
