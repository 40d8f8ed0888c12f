package telemetry

import "testing"

func hasBookmark(bookmarks []Bookmark, typ BookmarkType) bool {
	for _, bm := range bookmarks {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_CheckpointDepth(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if got := bd.Check(GenerationStats{Generation: 0}); hasBookmark(got, BookmarkCheckpointDepth) {
		t.Error("depth 0 should not trigger")
	}
	if got := bd.Check(GenerationStats{Generation: 1, CheckpointsMax: 1}); !hasBookmark(got, BookmarkCheckpointDepth) {
		t.Error("expected checkpoint_depth bookmark at depth 1")
	}
	if got := bd.Check(GenerationStats{Generation: 2, CheckpointsMax: 1}); hasBookmark(got, BookmarkCheckpointDepth) {
		t.Error("same depth should not trigger again")
	}
	if got := bd.Check(GenerationStats{Generation: 3, CheckpointsMax: 3}); !hasBookmark(got, BookmarkCheckpointDepth) {
		t.Error("expected checkpoint_depth bookmark at depth 3")
	}
}

func TestBookmarkDetector_FirstCompletion(t *testing.T) {
	bd := NewBookmarkDetector(10)

	bd.Check(GenerationStats{Generation: 0})
	got := bd.Check(GenerationStats{Generation: 1, Completed: 2, BestTimeAlive: 900})
	if !hasBookmark(got, BookmarkFirstCompletion) {
		t.Fatal("expected first_completion bookmark")
	}
	for _, bm := range got {
		if bm.Type == BookmarkFirstCompletion && bm.Generation != 1 {
			t.Errorf("bookmark generation = %d, want 1", bm.Generation)
		}
	}

	if got := bd.Check(GenerationStats{Generation: 2, Completed: 5}); hasBookmark(got, BookmarkFirstCompletion) {
		t.Error("first_completion should only trigger once")
	}
}

func TestBookmarkDetector_FitnessBreakthrough(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(GenerationStats{Generation: i, FitnessBest: 1000})
	}
	if got := bd.Check(GenerationStats{Generation: 5, FitnessBest: 1200}); hasBookmark(got, BookmarkFitnessBreakthrough) {
		t.Error("small gain should not trigger")
	}
	if got := bd.Check(GenerationStats{Generation: 6, FitnessBest: 11000}); !hasBookmark(got, BookmarkFitnessBreakthrough) {
		t.Error("expected fitness_breakthrough bookmark")
	}
}

func TestBookmarkDetector_Stagnation(t *testing.T) {
	bd := NewBookmarkDetector(5)

	bd.Check(GenerationStats{Generation: 0, FitnessBest: 500})

	triggered := -1
	for gen := 1; gen <= 12; gen++ {
		if got := bd.Check(GenerationStats{Generation: gen, FitnessBest: 400}); hasBookmark(got, BookmarkStagnation) {
			if triggered >= 0 {
				t.Fatalf("stagnation triggered twice (gen %d and %d)", triggered, gen)
			}
			triggered = gen
		}
	}
	if triggered != 5 {
		t.Errorf("stagnation triggered at generation %d, want 5", triggered)
	}

	// Improvement resets the plateau.
	bd.Check(GenerationStats{Generation: 13, FitnessBest: 600})
	for gen := 14; gen < 18; gen++ {
		if got := bd.Check(GenerationStats{Generation: gen, FitnessBest: 600}); hasBookmark(got, BookmarkStagnation) {
			t.Errorf("stagnation at generation %d right after improvement", gen)
		}
	}
	if got := bd.Check(GenerationStats{Generation: 18, FitnessBest: 600}); !hasBookmark(got, BookmarkStagnation) {
		t.Error("expected stagnation after a second plateau")
	}
}

func TestBookmarkDetector_MinHistory(t *testing.T) {
	bd := NewBookmarkDetector(1)
	if bd.historySize != 5 {
		t.Errorf("historySize = %d, want 5", bd.historySize)
	}
}
