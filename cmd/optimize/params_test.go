package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestClamp(t *testing.T) {
	pv := NewParamVector()
	got := pv.Clamp([]float64{-1, 5, 6.6, 0.1})
	want := []float64{0.005, 0.6, 7, 0.1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("%s clamped to %v, want %v", pv.Specs[i].Name, got[i], want[i])
		}
	}
}

func TestApplyToConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{0.1, 0.2, 3.4, 0.25})

	if cfg.Mutation.Rate != 0.1 || cfg.Mutation.Strength != 0.2 {
		t.Errorf("mutation = %+v", cfg.Mutation)
	}
	if cfg.Population.TournamentSize != 3 {
		t.Errorf("tournament size = %d, want 3", cfg.Population.TournamentSize)
	}
	if want := cfg.Population.Size / 4; cfg.Population.EliteCount != want {
		t.Errorf("elite count = %d, want %d", cfg.Population.EliteCount, want)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 0.1 || got[2] != 3 || got[3] != 0.25 {
		t.Errorf("ExtractFromConfig = %v", got)
	}
}

func TestScoreHistory(t *testing.T) {
	if r := scoreHistory(nil); r.fitness != 0 {
		t.Errorf("empty history fitness = %v", r.fitness)
	}

	var history []telemetry.GenerationStats
	for i := 0; i < 10; i++ {
		history = append(history, telemetry.GenerationStats{
			Generation:  i,
			Population:  10,
			FitnessBest: float64(i * 100),
		})
	}
	// Only the final window counts: generations 5-9
	history[9].Completed = 5

	r := scoreHistory(history)
	if r.finalBest != 700 {
		t.Errorf("finalBest = %v, want 700", r.finalBest)
	}
	if r.completionRate != 0.1 {
		t.Errorf("completionRate = %v, want 0.1", r.completionRate)
	}
	if want := -(700 * (1 + completionBonus*0.1)); math.Abs(r.fitness-want) > 1e-9 {
		t.Errorf("fitness = %v, want %v", r.fitness, want)
	}
}
