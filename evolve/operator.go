// Package evolve turns one generation's genomes and fitness scores into the
// next generation: elitism, tournament selection, uniform crossover and
// clamped mutation.
package evolve

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/geom"
	"github.com/pthm-cable/thrust/neural"
)

// ErrEmptyPopulation is returned when there are no parents to breed from.
var ErrEmptyPopulation = errors.New("evolve: empty population")

// Config holds the genetic algorithm constants.
type Config struct {
	PopulationSize   int
	EliteCount       int
	TournamentSize   int
	MutationRate     float64 // per-weight probability
	MutationStrength float64 // max absolute perturbation
}

// DefaultConfig returns the settings the default course is tuned for.
func DefaultConfig() Config {
	return Config{
		PopulationSize:   100,
		EliteCount:       8,
		TournamentSize:   5,
		MutationRate:     0.05,
		MutationStrength: 0.1,
	}
}

// Operator breeds generations. It owns its random generator so runs can be
// reproduced from a seed.
type Operator struct {
	cfg    Config
	params *agent.Params
	rng    *rand.Rand
}

// NewOperator creates an operator producing agents that share params.
func NewOperator(cfg Config, params *agent.Params, rng *rand.Rand) *Operator {
	if cfg.TournamentSize < 1 {
		cfg.TournamentSize = 1
	}
	return &Operator{cfg: cfg, params: params, rng: rng}
}

// Config returns the operator's settings.
func (o *Operator) Config() Config {
	return o.cfg
}

// Evolve builds the next generation from scored agents. The elite genomes
// are carried over unchanged in the first slots; the rest are children of
// tournament-selected parents. Every returned agent is fresh and reset at
// start. An input smaller than the elite count carries all of it over.
func (o *Operator) Evolve(pop []*agent.Agent, start geom.Vec2, checkpointCount int) ([]*agent.Agent, error) {
	if len(pop) == 0 {
		return nil, ErrEmptyPopulation
	}

	sorted := append([]*agent.Agent(nil), pop...)
	agent.SortByFitness(sorted)

	next := make([]*agent.Agent, 0, o.cfg.PopulationSize)

	elites := min(o.cfg.EliteCount, len(sorted), o.cfg.PopulationSize)
	for _, parent := range sorted[:elites] {
		child, err := o.spawn(parent.Genome(), start, checkpointCount)
		if err != nil {
			return nil, err
		}
		next = append(next, child)
	}

	for len(next) < o.cfg.PopulationSize {
		a := Tournament(sorted, o.cfg.TournamentSize, o.rng)
		b := Tournament(sorted, o.cfg.TournamentSize, o.rng)

		genes := Crossover(a.Genome(), b.Genome(), o.rng)
		Mutate(genes, o.cfg.MutationRate, o.cfg.MutationStrength, o.rng)

		child, err := o.spawn(genes, start, checkpointCount)
		if err != nil {
			return nil, err
		}
		next = append(next, child)
	}

	return next, nil
}

func (o *Operator) spawn(g neural.Genome, start geom.Vec2, checkpointCount int) (*agent.Agent, error) {
	child, err := agent.FromGenome(o.params, g)
	if err != nil {
		return nil, fmt.Errorf("spawning agent: %w", err)
	}
	child.Reset(start, checkpointCount)
	return child, nil
}
