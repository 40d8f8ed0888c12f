package telemetry

import (
	"testing"
	"time"
)

// runTicks records n ticks, spending the given time in each phase.
func runTicks(pc *PerfCollector, n int, phases map[string]time.Duration) {
	for i := 0; i < n; i++ {
		pc.StartTick()
		for _, name := range Phases {
			d, ok := phases[name]
			if !ok {
				continue
			}
			pc.StartPhase(name)
			time.Sleep(d)
		}
		pc.EndTick()
	}
}

func TestPerfCollectorPhases(t *testing.T) {
	pc := NewPerfCollector(10)
	runTicks(pc, 5, map[string]time.Duration{
		PhaseSimulate: 300 * time.Microsecond,
		PhaseSync:     20 * time.Microsecond,
	})

	stats := pc.Stats()
	if stats.AvgTickDuration <= 0 {
		t.Fatal("no tick time recorded")
	}
	for _, name := range []string{PhaseSimulate, PhaseSync} {
		if _, ok := stats.PhaseAvg[name]; !ok {
			t.Errorf("phase %s not tracked", name)
		}
	}
	if _, ok := stats.PhaseAvg[PhaseGeneration]; ok {
		t.Error("generation phase reported without a rollover")
	}
	if stats.PhasePct[PhaseSimulate] <= stats.PhasePct[PhaseSync] {
		t.Errorf("simulate %.1f%% not above sync %.1f%%",
			stats.PhasePct[PhaseSimulate], stats.PhasePct[PhaseSync])
	}
}

func TestPerfCollectorTickDistribution(t *testing.T) {
	pc := NewPerfCollector(4)
	runTicks(pc, 12, map[string]time.Duration{PhaseSimulate: 50 * time.Microsecond})

	stats := pc.Stats()
	if stats.MinTickDuration > stats.AvgTickDuration || stats.AvgTickDuration > stats.MaxTickDuration {
		t.Errorf("min %v, avg %v, max %v out of order",
			stats.MinTickDuration, stats.AvgTickDuration, stats.MaxTickDuration)
	}
	if stats.P95TickDuration < stats.MinTickDuration || stats.P95TickDuration > stats.MaxTickDuration {
		t.Errorf("p95 %v outside [%v, %v]", stats.P95TickDuration, stats.MinTickDuration, stats.MaxTickDuration)
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("no throughput after the window filled")
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	tests := []struct {
		name   string
		window int
	}{
		{"default window", 0},
		{"explicit window", 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := NewPerfCollector(tt.window).Stats()
			if stats.AvgTickDuration != 0 || stats.P95TickDuration != 0 || stats.TicksPerSecond != 0 {
				t.Errorf("empty collector reported %+v", stats)
			}
			if stats.PhaseAvg == nil || stats.PhasePct == nil {
				t.Error("empty collector returned nil maps")
			}
		})
	}
}

func TestPerfCollectorFrames(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	if fps := pc.Stats().FPS; fps != 0 {
		t.Errorf("FPS = %v after a single frame", fps)
	}

	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("frame duration = %v, want >= 15ms", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v for a 16ms frame", stats.FPS)
	}
}
