package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/pthm-cable/thrust/telemetry"
)

// endGeneration scores the finished generation, records its telemetry and
// breeds the next one.
func (g *Game) endGeneration() {
	cfg := g.cfg

	g.pop.Score(g.course.Start, cfg.Population.Lifetime)

	stats := telemetry.ComputeGenerationStats(g.generation, g.genTick, g.pop.Agents)
	stats.WallSec = time.Since(g.genStart).Seconds()
	g.recordGeneration(stats)

	next, err := g.operator.Evolve(g.pop.Agents, g.course.Start, len(g.course.Checkpoints))
	if err != nil {
		// Only an empty population fails; fly the same agents again.
		slog.Error("failed to evolve population", "generation", g.generation, "error", err)
		for _, a := range g.pop.Agents {
			a.Reset(g.course.Start, len(g.course.Checkpoints))
		}
	} else {
		g.replacePopulation(next)
	}

	g.generation++
	g.genTick = 0
	g.genStart = time.Now()
}

// recordGeneration fans finished stats out to the callback, logs, CSV,
// stats db and bookmark detector.
func (g *Game) recordGeneration(stats telemetry.GenerationStats) {
	g.lastStats = stats
	g.hasStats = true
	if stats.FitnessBest > g.bestEver {
		g.bestEver = stats.FitnessBest
	}

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		g.perfCollector.Stats().LogStats()
	} else if interval := g.cfg.Telemetry.LogInterval; interval > 0 && stats.Generation%interval == 0 {
		g.logProgress(stats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteGeneration(stats); err != nil {
			slog.Error("failed to write generation", "error", err)
		}
	}

	if g.store != nil {
		if err := g.store.SaveGeneration(context.Background(), g.runID, stats); err != nil {
			slog.Error("failed to save generation", "error", err)
		}
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if g.outputManager != nil {
			if err := g.outputManager.WriteBookmark(bm); err != nil {
				slog.Error("failed to write bookmark", "error", err)
			}
		}
	}
}
