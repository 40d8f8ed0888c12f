package agent

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/thrust/geom"
)

// Population is one generation of agents sharing the same course.
type Population struct {
	Agents []*Agent
}

// NewPopulation creates size agents with random brains, reset at start.
func NewPopulation(params *Params, size int, rng *rand.Rand, start geom.Vec2, checkpointCount int) *Population {
	agents := make([]*Agent, size)
	for i := range agents {
		agents[i] = New(params, rng)
		agents[i].Reset(start, checkpointCount)
	}
	return &Population{Agents: agents}
}

// Step runs one full tick of the sense/think/physics/progress pipeline for a.
func Step(a *Agent, obstacles []geom.Rect, checkpoints []geom.Circle, target geom.Vec2) {
	if !a.active() {
		return
	}
	a.Sense(obstacles)
	a.ThinkAndMove(checkpoints, target)
	a.UpdatePhysics()
	a.CheckCheckpoints(checkpoints)
	a.CheckCollision(obstacles, target)
}

// AdvanceTick steps every agent once, in order.
func (p *Population) AdvanceTick(obstacles []geom.Rect, checkpoints []geom.Circle, target geom.Vec2) {
	for _, a := range p.Agents {
		Step(a, obstacles, checkpoints, target)
	}
}

// AliveCount returns the number of agents still flying.
func (p *Population) AliveCount() int {
	n := 0
	for _, a := range p.Agents {
		if a.active() {
			n++
		}
	}
	return n
}

// Done reports whether no agent is still flying.
func (p *Population) Done() bool {
	return p.AliveCount() == 0
}

// Score computes every agent's fitness.
func (p *Population) Score(start geom.Vec2, maxLifetime int) {
	for _, a := range p.Agents {
		a.CalcFitness(start, maxLifetime)
	}
}

// Best returns the agent with the highest fitness, or nil when empty.
func (p *Population) Best() *Agent {
	var best *Agent
	for _, a := range p.Agents {
		if best == nil || a.fitness > best.fitness {
			best = a
		}
	}
	return best
}

// Leader returns the living agent with the most checkpoints passed and the
// smallest best distance, falling back to Best when every agent is down.
// It is used for highlighting while a generation is still running.
func (p *Population) Leader() *Agent {
	var lead *Agent
	for _, a := range p.Agents {
		if !a.active() {
			continue
		}
		if lead == nil || ahead(a, lead) {
			lead = a
		}
	}
	if lead == nil {
		return p.Best()
	}
	return lead
}

func ahead(a, b *Agent) bool {
	av, bv := a.VisitedCount(), b.VisitedCount()
	if av != bv {
		return av > bv
	}
	return a.bestDistance < b.bestDistance
}

// SortByFitness orders agents by descending fitness.
func SortByFitness(agents []*Agent) {
	sort.Slice(agents, func(i, j int) bool {
		return agents[i].fitness > agents[j].fitness
	})
}

// Fitnesses returns every agent's fitness in population order.
func (p *Population) Fitnesses() []float64 {
	out := make([]float64, len(p.Agents))
	for i, a := range p.Agents {
		out[i] = a.fitness
	}
	return out
}
