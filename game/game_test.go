package game

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/telemetry"
)

// smallConfig is the default course with a population and lifetime small
// enough for unit tests.
func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Population.Size = 20
	cfg.Population.EliteCount = 4
	cfg.Population.Lifetime = 60
	return cfg
}

func newHeadless(t *testing.T, cfg *config.Config, seed int64, cb func(telemetry.GenerationStats)) *Game {
	t.Helper()
	g := NewGameWithOptions(Options{
		Seed:          seed,
		Headless:      true,
		Config:        cfg,
		StatsCallback: cb,
	})
	t.Cleanup(g.Unload)
	return g
}

// runGenerations steps g until n generations have finished.
func runGenerations(t *testing.T, g *Game, n int) {
	t.Helper()
	limit := int32(n*g.cfg.Population.Lifetime + 1)
	for g.Generation() < n {
		if g.Tick() > limit {
			t.Fatalf("generation %d still running after %d ticks", g.Generation(), g.Tick())
		}
		g.UpdateHeadless()
	}
}

func (g *Game) pilotCount() int {
	n := 0
	query := g.pilotFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

func TestNewGameHeadless(t *testing.T) {
	cfg := smallConfig()
	g := newHeadless(t, cfg, 42, nil)

	if g.Generation() != 0 || g.Tick() != 0 {
		t.Errorf("fresh game at generation %d tick %d", g.Generation(), g.Tick())
	}
	if got := len(g.Population().Agents); got != cfg.Population.Size {
		t.Errorf("population = %d, want %d", got, cfg.Population.Size)
	}
	if got := g.pilotCount(); got != cfg.Population.Size {
		t.Errorf("pilot entities = %d, want %d", got, cfg.Population.Size)
	}
	if got := g.AliveCount(); got != cfg.Population.Size {
		t.Errorf("alive = %d, want %d", got, cfg.Population.Size)
	}

	counts := map[string]int{}
	q1 := g.obstacleFilter.Query()
	for q1.Next() {
		counts["obstacle"]++
	}
	q2 := g.checkpointFilter.Query()
	for q2.Next() {
		counts["checkpoint"]++
	}
	q3 := g.targetFilter.Query()
	for q3.Next() {
		counts["target"]++
	}
	want := map[string]int{
		"obstacle":   len(cfg.Course.Obstacles),
		"checkpoint": len(cfg.Course.Checkpoints),
		"target":     1,
	}
	for k, v := range want {
		if counts[k] != v {
			t.Errorf("%s entities = %d, want %d", k, counts[k], v)
		}
	}

	if _, ok := g.LastStats(); ok {
		t.Error("stats reported before any generation finished")
	}
}

func TestPilotsFollowAgents(t *testing.T) {
	g := newHeadless(t, smallConfig(), 42, nil)

	for i := 0; i < 10; i++ {
		g.UpdateHeadless()
	}

	leaders := 0
	query := g.pilotFilter.Query()
	for query.Next() {
		pos, rot, _, pilot, status := query.Get()
		a := pilot.Agent
		p := a.Position()
		if pos.X != float32(p.X) || pos.Y != float32(p.Y) {
			t.Errorf("slot %d position (%v, %v), agent at %v", pilot.Slot, pos.X, pos.Y, p)
		}
		if rot.Deg != float32(a.Rotation()) {
			t.Errorf("slot %d rotation %v, agent %v", pilot.Slot, rot.Deg, a.Rotation())
		}
		if status.Alive != a.Alive() {
			t.Errorf("slot %d alive %v, agent %v", pilot.Slot, status.Alive, a.Alive())
		}
		if status.Leader {
			leaders++
		}
	}
	if leaders != 1 {
		t.Errorf("%d leaders marked, want 1", leaders)
	}
}

func TestGenerationRollover(t *testing.T) {
	cfg := smallConfig()
	var stats []telemetry.GenerationStats
	g := newHeadless(t, cfg, 42, func(s telemetry.GenerationStats) {
		stats = append(stats, s)
	})

	runGenerations(t, g, 3)

	if len(stats) != 3 {
		t.Fatalf("got %d stats callbacks, want 3", len(stats))
	}
	var ticks int
	for i, s := range stats {
		if s.Generation != i {
			t.Errorf("stats[%d].Generation = %d", i, s.Generation)
		}
		if s.Population != cfg.Population.Size {
			t.Errorf("stats[%d].Population = %d, want %d", i, s.Population, cfg.Population.Size)
		}
		if s.Ticks < 1 || s.Ticks > cfg.Population.Lifetime {
			t.Errorf("stats[%d].Ticks = %d, want in [1, %d]", i, s.Ticks, cfg.Population.Lifetime)
		}
		finished := s.Completed + s.Crashed + s.OutOfBounds + s.Stuck + s.TimedOut
		if finished != s.Population {
			t.Errorf("stats[%d] accounts for %d of %d agents", i, finished, s.Population)
		}
		ticks += s.Ticks
	}
	if int(g.Tick()) != ticks {
		t.Errorf("Tick() = %d, want sum of generation ticks %d", g.Tick(), ticks)
	}

	if got := g.pilotCount(); got != cfg.Population.Size {
		t.Errorf("pilot entities after rollover = %d, want %d", got, cfg.Population.Size)
	}
	if g.GenerationTick() != 0 {
		t.Errorf("GenerationTick() = %d right after rollover", g.GenerationTick())
	}
	for _, a := range g.Population().Agents {
		if !a.Alive() || a.TimeAlive() != 0 || a.VisitedCount() != 0 {
			t.Fatal("next generation not reset at the start")
		}
	}

	last, ok := g.LastStats()
	if !ok || last.Generation != 2 {
		t.Errorf("LastStats() = %+v, %v", last, ok)
	}
	for _, s := range stats {
		if s.FitnessBest > g.BestFitness() {
			t.Errorf("BestFitness() = %v below generation best %v", g.BestFitness(), s.FitnessBest)
		}
	}
}

func TestRunsAreDeterministic(t *testing.T) {
	run := func() []float64 {
		var best []float64
		g := newHeadless(t, smallConfig(), 7, func(s telemetry.GenerationStats) {
			best = append(best, s.FitnessBest, s.FitnessMean)
		})
		runGenerations(t, g, 3)
		return best
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs recorded %d and %d values", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("value %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestStepsPerUpdate(t *testing.T) {
	cfg := smallConfig()
	g := NewGameWithOptions(Options{Seed: 1, Headless: true, Config: cfg, StepsPerUpdate: 5})
	defer g.Unload()

	g.UpdateHeadless()
	if g.Tick() != 5 {
		t.Errorf("Tick() = %d after one update at 5 steps", g.Tick())
	}

	// Update in headless mode never touches input.
	g.Update()
	if g.Tick() != 10 {
		t.Errorf("Tick() = %d after Update in headless mode", g.Tick())
	}

	tests := []struct {
		set, want int
	}{
		{0, 1},
		{-3, 1},
		{4, 4},
		{maxStepsPerUpdate + 5, maxStepsPerUpdate},
	}
	for _, tt := range tests {
		g.SetStepsPerUpdate(tt.set)
		if g.StepsPerUpdate() != tt.want {
			t.Errorf("SetStepsPerUpdate(%d) -> %d, want %d", tt.set, g.StepsPerUpdate(), tt.want)
		}
	}
}

func TestOutputAndStatsDB(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "out")
	dbPath := filepath.Join(dir, "stats.db")

	cfg := smallConfig()
	g := NewGameWithOptions(Options{
		Seed:      42,
		Headless:  true,
		Config:    cfg,
		OutputDir: outDir,
		StatsDB:   dbPath,
	})
	runGenerations(t, g, 2)
	runID := g.RunID()
	g.Unload()

	for _, name := range []string{"generations.csv", "bookmarks.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}

	ctx := context.Background()
	store := telemetry.NewStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("reopening stats db: %v", err)
	}
	defer store.Close()

	info, ok, err := store.Run(ctx, runID)
	if err != nil || !ok {
		t.Fatalf("Run(%s): ok=%v err=%v", runID, ok, err)
	}
	if info.Seed != 42 || info.Population != cfg.Population.Size || info.Generations != 2 {
		t.Errorf("run info = %+v", info)
	}

	gens, err := store.Generations(ctx, runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 2 {
		t.Errorf("stored %d generations, want 2", len(gens))
	}
}

func TestAgentParamsFromConfig(t *testing.T) {
	cfg := smallConfig()
	g := newHeadless(t, cfg, 1, nil)
	p := AgentParams(cfg, g.Course())

	if len(p.Topology) != len(cfg.Derived.Topology) {
		t.Fatalf("topology = %v, want %v", p.Topology, cfg.Derived.Topology)
	}
	for i := range p.Topology {
		if p.Topology[i] != cfg.Derived.Topology[i] {
			t.Errorf("topology = %v, want %v", p.Topology, cfg.Derived.Topology)
		}
	}
	if p.NumInputs() != p.Topology[0] {
		t.Errorf("NumInputs() = %d, topology input layer %d", p.NumInputs(), p.Topology[0])
	}
	if p.Arena.W != cfg.Arena.Width || p.Arena.H != cfg.Arena.Height {
		t.Errorf("arena = %+v", p.Arena)
	}
	if p.TargetRadius != cfg.Agent.TargetRadius {
		t.Errorf("target radius = %v", p.TargetRadius)
	}

	// The params are copies; editing them leaves the config alone.
	p.SensorAngles[0] = 12345
	if cfg.Agent.SensorAngles[0] == 12345 {
		t.Error("AgentParams aliases the config's sensor angles")
	}

	ec := EvolveConfig(cfg)
	if ec.PopulationSize != 20 || ec.EliteCount != 4 || ec.MutationRate != cfg.Mutation.Rate {
		t.Errorf("evolve config = %+v", ec)
	}
}
