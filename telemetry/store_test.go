package telemetry

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "stats.db"))
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	runID, err := s.StartRun(ctx, 42, 100)
	if err != nil {
		t.Fatalf("StartRun: %v", err)
	}
	if runID == uuid.Nil {
		t.Fatal("StartRun returned nil id")
	}

	for gen := 0; gen < 3; gen++ {
		st := GenerationStats{
			Generation:  gen,
			Ticks:       2000,
			Population:  100,
			FitnessBest: float64(gen) * 1000,
			FitnessMean: 12.5,
			Crashed:     gen,
		}
		if err := s.SaveGeneration(ctx, runID, st); err != nil {
			t.Fatalf("SaveGeneration(%d): %v", gen, err)
		}
	}

	got, err := s.Generations(ctx, runID)
	if err != nil {
		t.Fatalf("Generations: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d generations, want 3", len(got))
	}
	for i, st := range got {
		if st.Generation != i || st.FitnessBest != float64(i)*1000 || st.Crashed != i || st.FitnessMean != 12.5 {
			t.Errorf("generation %d = %+v", i, st)
		}
	}

	info, ok, err := s.Run(ctx, runID)
	if err != nil || !ok {
		t.Fatalf("Run: ok=%v err=%v", ok, err)
	}
	if info.ID != runID || info.Seed != 42 || info.Population != 100 || info.Generations != 3 {
		t.Errorf("run info = %+v", info)
	}
	if info.StartedAt.IsZero() {
		t.Error("StartedAt not recorded")
	}
}

func TestStoreSaveGenerationOverwrites(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	runID, err := s.StartRun(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, best := range []float64{1, 2} {
		if err := s.SaveGeneration(ctx, runID, GenerationStats{Generation: 0, FitnessBest: best}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Generations(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].FitnessBest != 2 {
		t.Errorf("generations = %+v, want one row with best 2", got)
	}
}

func TestStoreUnknownRun(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, ok, err := s.Run(ctx, uuid.New())
	if err != nil || ok {
		t.Errorf("Run(unknown) ok=%v err=%v, want not found", ok, err)
	}
	got, err := s.Generations(ctx, uuid.New())
	if err != nil || len(got) != 0 {
		t.Errorf("Generations(unknown) = %v, %v", got, err)
	}
}

func TestStoreNotInitialized(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "stats.db"))
	if _, err := s.StartRun(context.Background(), 0, 1); err == nil {
		t.Error("StartRun before Init succeeded")
	}
	if err := NewStore("").Init(context.Background()); err == nil {
		t.Error("Init with empty path succeeded")
	}
}
