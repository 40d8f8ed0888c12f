package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/game"
	"github.com/pthm-cable/thrust/telemetry"
)

// Score weights.
const (
	completionBonus = 0.5 // added per unit of completion rate
	finalWindow     = 5   // generations averaged at the end of a run
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int
	seeds       []int64
	baseConfig  *config.Config

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestHistory []telemetry.GenerationStats
	lastResult  seedResult // averaged over the seeds of the last evaluation
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, generations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		baseConfig:  baseCfg,
		bestFitness: math.Inf(1),
	}
}

// BestHistory returns the per-generation stats of the best seed of the best
// evaluation.
func (fe *FitnessEvaluator) BestHistory() []telemetry.GenerationStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHistory
}

// LastResult returns the seed-averaged summary of the most recent evaluation.
func (fe *FitnessEvaluator) LastResult() (finalBest, completionRate float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastResult.finalBest, fe.lastResult.completionRate
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness        float64
	finalBest      float64
	completionRate float64
	history        []telemetry.GenerationStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			history := fe.runSimulation(cfg.Clone(), s)
			results[idx] = scoreHistory(history)
		}(i, seed)
	}
	wg.Wait()

	var avg seedResult
	best := results[0]
	for _, r := range results {
		avg.fitness += r.fitness
		avg.finalBest += r.finalBest
		avg.completionRate += r.completionRate
		if r.fitness < best.fitness {
			best = r
		}
	}
	n := float64(len(results))
	avg.fitness /= n
	avg.finalBest /= n
	avg.completionRate /= n

	fe.mu.Lock()
	if avg.fitness < fe.bestFitness {
		fe.bestFitness = avg.fitness
		fe.bestHistory = best.history
	}
	fe.lastResult = avg
	fe.mu.Unlock()

	return avg.fitness
}

// runSimulation flies fe.generations generations with one seed and returns
// every generation's stats.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []telemetry.GenerationStats {
	history := make([]telemetry.GenerationStats, 0, fe.generations)

	g := game.NewGameWithOptions(game.Options{
		Seed:           seed,
		Headless:       true,
		StepsPerUpdate: 1,
		Config:         cfg,
		StatsCallback: func(stats telemetry.GenerationStats) {
			history = append(history, stats)
		},
	})
	defer g.Unload()

	for g.Generation() < fe.generations {
		g.UpdateHeadless()
	}
	return history
}

// scoreHistory turns one run into a fitness: the negated mean best fitness
// over the final generations, boosted by how often pilots finished.
func scoreHistory(history []telemetry.GenerationStats) seedResult {
	r := seedResult{history: history}
	if len(history) == 0 {
		return r
	}

	tail := history[max(len(history)-finalWindow, 0):]
	best := make([]float64, len(tail))
	var completed, flown float64
	for i, s := range tail {
		best[i] = s.FitnessBest
		completed += float64(s.Completed)
		flown += float64(s.Population)
	}

	r.finalBest = stat.Mean(best, nil)
	if flown > 0 {
		r.completionRate = completed / flown
	}
	r.fitness = -(r.finalBest * (1 + completionBonus*r.completionRate))
	return r
}
