package game

import (
	"log/slog"

	"github.com/dustin/go-humanize"

	"github.com/pthm-cable/thrust/telemetry"
)

// logProgress logs a compact progress line for a finished generation.
func (g *Game) logProgress(stats telemetry.GenerationStats) {
	slog.Info("generation finished",
		"generation", stats.Generation,
		"ticks", humanize.Comma(int64(stats.Ticks)),
		"total_ticks", humanize.Comma(int64(g.tick)),
		"best", humanize.CommafWithDigits(stats.FitnessBest, 1),
		"mean", humanize.CommafWithDigits(stats.FitnessMean, 1),
		"best_ever", humanize.CommafWithDigits(g.bestEver, 1),
		"checkpoints_max", stats.CheckpointsMax,
		"completed", stats.Completed,
		"wall", humanize.FtoaWithDigits(stats.WallSec, 3)+"s",
	)
}
