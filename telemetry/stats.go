package telemetry

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/thrust/agent"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds aggregated statistics for one finished generation.
type GenerationStats struct {
	Generation int     `csv:"generation"`
	Ticks      int     `csv:"ticks"`
	WallSec    float64 `csv:"wall_sec"`
	Population int     `csv:"population"`

	// Fitness distribution
	FitnessBest float64 `csv:"fitness_best"`
	FitnessMean float64 `csv:"fitness_mean"`
	FitnessStd  float64 `csv:"fitness_std"`
	FitnessP10  float64 `csv:"fitness_p10"`
	FitnessP50  float64 `csv:"fitness_p50"`
	FitnessP90  float64 `csv:"fitness_p90"`

	// Progress
	CheckpointsMean float64 `csv:"checkpoints_mean"`
	CheckpointsMax  int     `csv:"checkpoints_max"`
	Completed       int     `csv:"completed"`
	BestTimeAlive   int     `csv:"best_time_alive"` // Ticks flown by the fittest agent

	// How agents finished
	Crashed     int `csv:"crashed"`
	OutOfBounds int `csv:"out_of_bounds"`
	Stuck       int `csv:"stuck"`
	TimedOut    int `csv:"timed_out"` // Still flying when the lifetime ran out
}

// ComputeGenerationStats summarises scored agents. Fitness must already be
// computed. An empty slice yields zero distribution fields.
func ComputeGenerationStats(generation, ticks int, agents []*agent.Agent) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Ticks:      ticks,
		Population: len(agents),
	}
	if len(agents) == 0 {
		return s
	}

	fitness := make([]float64, len(agents))
	checkpoints := make([]float64, len(agents))
	var best *agent.Agent
	for i, a := range agents {
		fitness[i] = a.Fitness()
		checkpoints[i] = float64(a.VisitedCount())
		if a.VisitedCount() > s.CheckpointsMax {
			s.CheckpointsMax = a.VisitedCount()
		}
		if best == nil || a.Fitness() > best.Fitness() {
			best = a
		}

		switch a.Cause() {
		case agent.CauseCompleted:
			s.Completed++
		case agent.CauseCrashed:
			s.Crashed++
		case agent.CauseOutOfBounds:
			s.OutOfBounds++
		case agent.CauseStuck:
			s.Stuck++
		default:
			s.TimedOut++
		}
	}

	s.FitnessBest = best.Fitness()
	s.BestTimeAlive = best.TimeAlive()
	s.FitnessMean, s.FitnessStd = stat.PopMeanStdDev(fitness, nil)
	s.CheckpointsMean = stat.Mean(checkpoints, nil)

	sort.Float64s(fitness)
	s.FitnessP10 = stat.Quantile(0.10, stat.Empirical, fitness, nil)
	s.FitnessP50 = stat.Quantile(0.50, stat.Empirical, fitness, nil)
	s.FitnessP90 = stat.Quantile(0.90, stat.Empirical, fitness, nil)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Float64("wall_sec", s.WallSec),
		slog.Int("population", s.Population),
		slog.Float64("fitness_best", s.FitnessBest),
		slog.Float64("fitness_mean", s.FitnessMean),
		slog.Float64("fitness_std", s.FitnessStd),
		slog.Float64("fitness_p10", s.FitnessP10),
		slog.Float64("fitness_p50", s.FitnessP50),
		slog.Float64("fitness_p90", s.FitnessP90),
		slog.Float64("checkpoints_mean", s.CheckpointsMean),
		slog.Int("checkpoints_max", s.CheckpointsMax),
		slog.Int("completed", s.Completed),
		slog.Int("best_time_alive", s.BestTimeAlive),
		slog.Int("crashed", s.Crashed),
		slog.Int("out_of_bounds", s.OutOfBounds),
		slog.Int("stuck", s.Stuck),
		slog.Int("timed_out", s.TimedOut),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation", "stats", s)
}
