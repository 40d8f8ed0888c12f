// Package game runs the generational simulation: an ECS world holding the
// course and one pilot entity per agent, the per-tick update, generation
// rollover and the optional raylib front end.
package game

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/components"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/course"
	"github.com/pthm-cable/thrust/evolve"
	"github.com/pthm-cable/thrust/renderer"
	"github.com/pthm-cable/thrust/telemetry"
	"github.com/pthm-cable/thrust/ui"
)

// Options configures game initialization.
type Options struct {
	Seed           int64
	LogStats       bool
	OutputDir      string
	StatsDB        string // SQLite file for the run log; empty disables it
	Headless       bool
	StepsPerUpdate int            // ticks per Update call (default 1)
	Config         *config.Config // nil uses config.Cfg()

	// StatsCallback is called with every finished generation's stats.
	StatsCallback func(telemetry.GenerationStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	cfg   *config.Config

	course   *course.Course
	params   agent.Params
	pop      *agent.Population
	operator *evolve.Operator

	// Pilot entities, one per agent of the current generation
	pilotMapper *ecs.Map5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Pilot,
		components.Status,
	]
	pilotFilter *ecs.Filter5[
		components.Position,
		components.Rotation,
		components.Body,
		components.Pilot,
		components.Status,
	]
	pilotMap *ecs.Map1[components.Pilot]

	// Course entities, created once
	obstacleMapper   *ecs.Map1[components.Obstacle]
	checkpointMapper *ecs.Map1[components.Checkpoint]
	targetMapper     *ecs.Map1[components.Target]
	obstacleFilter   *ecs.Filter1[components.Obstacle]
	checkpointFilter *ecs.Filter1[components.Checkpoint]
	targetFilter     *ecs.Filter1[components.Target]

	// State
	tick           int32 // ticks since the run started
	genTick        int   // ticks in the current generation
	generation     int
	genStart       time.Time
	paused         bool
	stepsPerUpdate int
	headless       bool
	leader         *agent.Agent

	// Telemetry
	logStats         bool
	statsCallback    func(telemetry.GenerationStats)
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	store            *telemetry.Store
	runID            uuid.UUID
	bookmarkDetector *telemetry.BookmarkDetector
	lastStats        telemetry.GenerationStats
	hasStats         bool
	bestEver         float64

	// Rendering (nil in headless mode)
	camera         *camera.Camera
	courseRenderer *renderer.CourseRenderer
	rocketRenderer *renderer.RocketRenderer
	sensorRenderer *renderer.SensorRenderer
	background     *renderer.BackgroundRenderer
	hud            *ui.HUD
	controls       *ui.ControlsPanel
	inspector      *ui.PilotInspector
	brainView      *ui.NetworkView
	perfPanel      *ui.PerfPanel
	uiOverlays     *ui.OverlayRegistry
	selected       ecs.Entity
	hasSelection   bool

	// Window dimensions
	screenWidth, screenHeight float32
}

// NewGame creates a game from the global config with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{Seed: 42})
}

// NewGameWithOptions creates a new game instance with the given options.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	c := course.FromConfig(cfg)

	g := &Game{
		world:          world,
		rng:            rng,
		cfg:            cfg,
		course:         c,
		stepsPerUpdate: steps,
		headless:       opts.Headless,
		logStats:       opts.LogStats,
		statsCallback:  opts.StatsCallback,
		perfCollector:  telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
		pilotMapper: ecs.NewMap5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Pilot,
			components.Status,
		](world),
		pilotFilter: ecs.NewFilter5[
			components.Position,
			components.Rotation,
			components.Body,
			components.Pilot,
			components.Status,
		](world),
		pilotMap:         ecs.NewMap1[components.Pilot](world),
		obstacleMapper:   ecs.NewMap1[components.Obstacle](world),
		checkpointMapper: ecs.NewMap1[components.Checkpoint](world),
		targetMapper:     ecs.NewMap1[components.Target](world),
		obstacleFilter:   ecs.NewFilter1[components.Obstacle](world),
		checkpointFilter: ecs.NewFilter1[components.Checkpoint](world),
		targetFilter:     ecs.NewFilter1[components.Target](world),
	}

	g.bookmarkDetector = telemetry.NewBookmarkDetector(stagnationWindow)
	g.params = AgentParams(cfg, c)
	g.operator = evolve.NewOperator(EvolveConfig(cfg), &g.params, rng)

	g.setupOutput(opts)

	g.spawnCourse()
	g.pop = agent.NewPopulation(&g.params, cfg.Population.Size, rng, c.Start, len(c.Checkpoints))
	g.spawnPilots()
	g.genStart = time.Now()

	if !opts.Headless {
		g.initRendering()
	}

	return g
}

// setupOutput opens the CSV output directory and the SQLite run log.
// Failures are logged and disable the affected sink.
func (g *Game) setupOutput(opts Options) {
	om, err := telemetry.NewOutputManager(opts.OutputDir, g.cfg.Telemetry.GenerationCSV)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
	} else if om != nil {
		g.outputManager = om
		if err := om.WriteConfig(g.cfg); err != nil {
			slog.Error("failed to write config", "error", err)
		}
		slog.Info("output directory initialized", "path", om.Dir())
	}

	if opts.StatsDB == "" {
		return
	}
	ctx := context.Background()
	store := telemetry.NewStore(opts.StatsDB)
	if err := store.Init(ctx); err != nil {
		slog.Error("failed to open stats db", "path", opts.StatsDB, "error", err)
		return
	}
	runID, err := store.StartRun(ctx, opts.Seed, g.cfg.Population.Size)
	if err != nil {
		slog.Error("failed to start run", "error", err)
		_ = store.Close()
		return
	}
	g.store = store
	g.runID = runID
	slog.Info("stats db initialized", "path", opts.StatsDB, "run_id", runID)
}

// Update runs one or more simulation steps based on the speed setting.
func (g *Game) Update() {
	if g.headless {
		g.UpdateHeadless()
		return
	}
	g.handleInput()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// UpdateHeadless runs simulation steps without input handling.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.simulationStep()
	}
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.background != nil {
		g.background.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
	g.outputManager = nil
	if g.store != nil {
		if err := g.store.Close(); err != nil {
			slog.Error("failed to close stats db", "error", err)
		}
		g.store = nil
	}
}

// Tick returns the number of ticks simulated since the run started.
func (g *Game) Tick() int32 {
	return g.tick
}

// GenerationTick returns the tick count within the current generation.
func (g *Game) GenerationTick() int {
	return g.genTick
}

// Generation returns the index of the generation currently flying.
func (g *Game) Generation() int {
	return g.generation
}

// Population returns the agents of the current generation.
func (g *Game) Population() *agent.Population {
	return g.pop
}

// Course returns the course being flown.
func (g *Game) Course() *course.Course {
	return g.course
}

// LastStats returns the stats of the most recently finished generation.
func (g *Game) LastStats() (telemetry.GenerationStats, bool) {
	return g.lastStats, g.hasStats
}

// BestFitness returns the best fitness seen in any finished generation.
func (g *Game) BestFitness() float64 {
	return g.bestEver
}

// RunID returns the stats db run ID, or uuid.Nil when the db is disabled.
func (g *Game) RunID() uuid.UUID {
	return g.runID
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused pauses or resumes the simulation.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns the current speed multiplier.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the speed multiplier, clamped to [1, maxStepsPerUpdate].
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = min(max(n, 1), maxStepsPerUpdate)
}
