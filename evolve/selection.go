package evolve

import (
	"math/rand"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/neural"
)

// Tournament draws k agents uniformly at random (with replacement) and
// returns the fittest. pop must not be empty.
func Tournament(pop []*agent.Agent, k int, rng *rand.Rand) *agent.Agent {
	best := pop[rng.Intn(len(pop))]
	for i := 1; i < k; i++ {
		cand := pop[rng.Intn(len(pop))]
		if cand.Fitness() > best.Fitness() {
			best = cand
		}
	}
	return best
}

// Crossover builds a child genome taking each weight from a or b with equal
// probability. The genomes must have the same length.
func Crossover(a, b neural.Genome, rng *rand.Rand) neural.Genome {
	child := make(neural.Genome, len(a))
	for i := range child {
		if rng.Intn(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// Mutate perturbs each weight with probability rate by a uniform offset in
// [-strength, strength], clamping the result to [-1, 1].
// Returns the number of weights changed.
func Mutate(g neural.Genome, rate, strength float64, rng *rand.Rand) int {
	count := 0
	for i := range g {
		if rng.Float64() >= rate {
			continue
		}
		g[i] = clampWeight(g[i] + (rng.Float64()*2-1)*strength)
		count++
	}
	return count
}

// clampWeight clamps a mutated weight to the initialisation range.
func clampWeight(w float64) float64 {
	if w > 1 {
		return 1
	}
	if w < -1 {
		return -1
	}
	return w
}
