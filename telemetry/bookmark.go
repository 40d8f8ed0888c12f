package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkCheckpointDepth     BookmarkType = "checkpoint_depth"
	BookmarkFirstCompletion     BookmarkType = "first_completion"
	BookmarkFitnessBreakthrough BookmarkType = "fitness_breakthrough"
	BookmarkStagnation          BookmarkType = "stagnation"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Generation  int          `csv:"generation"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"generation", b.Generation,
		"description", b.Description,
	)
}

// BookmarkDetector detects milestones in a run's generation history.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []GenerationStats
	historySize int
	historyIdx  int
	historyFull bool

	// State tracking
	deepestCheckpoint int     // most checkpoints any agent has passed
	completedOnce     bool    // some agent has reached the target
	allTimeBest       float64 // best fitness seen so far
	sinceImprovement  int     // generations without a new all-time best
	stagnationFlagged bool    // stagnation already reported for this plateau
}

// NewBookmarkDetector creates a detector with the given history size.
// The history size is also the plateau length reported as stagnation.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 5 {
		historySize = 5
	}
	return &BookmarkDetector{
		history:     make([]GenerationStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats GenerationStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkCheckpointDepth(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFirstCompletion(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkFitnessBreakthrough(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if b := bd.checkStagnation(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats GenerationStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []GenerationStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkCheckpointDepth(stats GenerationStats) *Bookmark {
	if stats.CheckpointsMax <= bd.deepestCheckpoint {
		return nil
	}
	prev := bd.deepestCheckpoint
	bd.deepestCheckpoint = stats.CheckpointsMax
	return &Bookmark{
		Type:        BookmarkCheckpointDepth,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("Checkpoint depth %d -> %d", prev, stats.CheckpointsMax),
	}
}

func (bd *BookmarkDetector) checkFirstCompletion(stats GenerationStats) *Bookmark {
	if bd.completedOnce || stats.Completed == 0 {
		return nil
	}
	bd.completedOnce = true
	return &Bookmark{
		Type:        BookmarkFirstCompletion,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("%d agents reached the target, best in %d ticks", stats.Completed, stats.BestTimeAlive),
	}
}

func (bd *BookmarkDetector) checkFitnessBreakthrough(stats GenerationStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.FitnessBest
	}
	avgBest := total / float64(len(history))
	if avgBest <= 0 {
		return nil
	}

	if stats.FitnessBest > avgBest*1.5 {
		return &Bookmark{
			Type:        BookmarkFitnessBreakthrough,
			Generation:  stats.Generation,
			Description: fmt.Sprintf("Best fitness %.0f is %.1fx the recent average (%.0f)", stats.FitnessBest, stats.FitnessBest/avgBest, avgBest),
		}
	}

	return nil
}

func (bd *BookmarkDetector) checkStagnation(stats GenerationStats) *Bookmark {
	if stats.FitnessBest > bd.allTimeBest {
		bd.allTimeBest = stats.FitnessBest
		bd.sinceImprovement = 0
		bd.stagnationFlagged = false
		return nil
	}

	bd.sinceImprovement++
	if bd.stagnationFlagged || bd.sinceImprovement < bd.historySize {
		return nil
	}

	bd.stagnationFlagged = true
	return &Bookmark{
		Type:        BookmarkStagnation,
		Generation:  stats.Generation,
		Description: fmt.Sprintf("No improvement on best fitness %.0f for %d generations", bd.allTimeBest, bd.sinceImprovement),
	}
}
