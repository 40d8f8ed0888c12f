package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/renderer"
	"github.com/pthm-cable/thrust/telemetry"
	"github.com/pthm-cable/thrust/ui"
)

const controlsLegend = "[Space] pause  [,/.] speed  [Arrows/Wheel] camera  [Home] reset  [Click] select  [F11] fullscreen"

// initRendering creates the camera, renderers and panels. Requires an open
// raylib window only once Draw is called.
func (g *Game) initRendering() {
	cfg := g.cfg

	g.camera = camera.New(g.viewportWidth(), g.screenHeight, float32(cfg.Arena.Width), float32(cfg.Arena.Height))
	g.background = renderer.NewBackgroundRenderer(float32(cfg.Arena.Width), float32(cfg.Arena.Height))
	g.courseRenderer = renderer.NewCourseRenderer()
	g.rocketRenderer = renderer.NewRocketRenderer()
	g.sensorRenderer = renderer.NewSensorRenderer()

	panelW := int32(cfg.Screen.PanelWidth)
	g.hud = ui.NewHUD(0, 0, panelW)
	g.controls = ui.NewControlsPanel(0, 0, panelW)
	g.inspector = ui.NewPilotInspector(10, 10, 280, cfg.Agent.SensorAngles, cfg.Agent.SensorRange)
	g.brainView = ui.NewNetworkView(300, 10, 340, 320, ui.InputLabels(cfg.Agent.SensorAngles))
	g.perfPanel = ui.NewPerfPanel(0, 0, 280)
	g.uiOverlays = ui.NewOverlayRegistry()
	g.uiOverlays.SetEnabled(ui.OverlayLeaderSensors, true)
	g.uiOverlays.SetEnabled(ui.OverlayDeadPilots, true)
	g.layoutPanels()
}

// viewportWidth is the screen width left for the arena beside the side panel.
func (g *Game) viewportWidth() float32 {
	return max(g.screenWidth-float32(g.cfg.Screen.PanelWidth), 1)
}

// layoutPanels positions the side panel widgets for the current window size.
func (g *Game) layoutPanels() {
	if g.hud == nil {
		return
	}
	x := int32(g.viewportWidth())
	g.hud.SetPosition(x, 0)
	g.controls.SetPosition(x, 240)
	g.perfPanel.SetPosition(10, int32(g.screenHeight)-120)
}

// focusAgent is the selected pilot's agent, falling back to the leader.
func (g *Game) focusAgent() *agent.Agent {
	if a := g.selectedAgent(); a != nil {
		return a
	}
	return g.leader
}

// Draw renders the game.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 10, G: 12, B: 16, A: 255})

	// Arena, clipped to the viewport left of the side panel
	rl.BeginScissorMode(0, 0, int32(g.viewportWidth()), int32(g.screenHeight))
	g.background.Draw(g.camera)
	g.drawCourse()
	g.drawActiveOverlays()
	g.drawPilots()
	rl.EndScissorMode()

	g.drawUI()

	rl.EndDrawing()
}

// drawCourse renders obstacles, checkpoints and the target from their entities.
func (g *Game) drawCourse() {
	next := -1
	if g.leader != nil {
		next = g.leader.VisitedCount()
	}
	labels := g.uiOverlays.IsEnabled(ui.OverlayCheckpointLabels)

	cpQuery := g.checkpointFilter.Query()
	for cpQuery.Next() {
		cp := cpQuery.Get()
		g.courseRenderer.DrawCheckpoint(g.camera, cp.Circle, cp.Index, cp.Index == next, labels)
	}

	targetQuery := g.targetFilter.Query()
	for targetQuery.Next() {
		t := targetQuery.Get()
		g.courseRenderer.DrawTarget(g.camera, t.Center, t.Radius, t.DrawRadius)
	}

	obstacleQuery := g.obstacleFilter.Query()
	for obstacleQuery.Next() {
		g.courseRenderer.DrawObstacle(g.camera, obstacleQuery.Get().Rect)
	}
}

// drawPilots renders every pilot; the leader is drawn last so it stays on top.
func (g *Game) drawPilots() {
	showDead := g.uiOverlays.IsEnabled(ui.OverlayDeadPilots)
	selected := g.selectedAgent()

	var leader renderer.RocketState
	hasLeader := false

	query := g.pilotFilter.Query()
	for query.Next() {
		pos, rot, body, pilot, status := query.Get()
		if !status.Alive && !showDead && !pilot.Agent.Completed() {
			continue
		}

		s := renderer.RocketState{
			X:           pos.X,
			Y:           pos.Y,
			RotationDeg: rot.Deg,
			HalfW:       body.HalfW,
			HalfH:       body.HalfH,
			Alive:       status.Alive || pilot.Agent.Completed(),
			Thrusting:   status.Thrusting,
			Leader:      status.Leader,
			Selected:    pilot.Agent == selected,
		}
		if s.Leader {
			leader, hasLeader = s, true
			continue
		}
		g.rocketRenderer.Draw(g.camera, s)
	}

	if hasLeader {
		g.rocketRenderer.Draw(g.camera, leader)
	}
}

// drawUI renders the side panel and floating panels.
func (g *Game) drawUI() {
	hudData := ui.HUDData{
		Title:      "Thrust",
		Generation: g.generation,
		GenTick:    g.genTick,
		Lifetime:   g.cfg.Population.Lifetime,
		TotalTicks: g.tick,
		Alive:      g.AliveCount(),
		Population: len(g.pop.Agents),
		Speed:      g.stepsPerUpdate,
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
		BestEver:   g.bestEver,
	}
	if stats, ok := g.LastStats(); ok {
		hudData.HasStats = true
		hudData.LastBest = stats.FitnessBest
		hudData.LastMean = stats.FitnessMean
		hudData.LastCompleted = stats.Completed
		hudData.CheckpointsMax = stats.CheckpointsMax
	}
	g.hud.Draw(hudData)

	res := g.controls.Draw(ui.ControlsState{
		Paused:   g.paused,
		Speed:    g.stepsPerUpdate,
		MaxSpeed: maxStepsPerUpdate,
	}, g.uiOverlays)
	if res.TogglePause {
		g.paused = !g.paused
	}
	if res.ResetCamera {
		g.camera.Reset()
	}
	g.SetStepsPerUpdate(res.Speed)
	for _, id := range res.Toggled {
		g.uiOverlays.Toggle(id)
	}

	if g.uiOverlays.IsEnabled(ui.OverlayInspector) {
		title := "Leader"
		if g.selectedAgent() != nil {
			title = "Selected pilot"
		}
		g.inspector.Draw(title, g.focusAgent())
	}

	if g.uiOverlays.IsEnabled(ui.OverlayBrain) {
		if a := g.focusAgent(); a != nil {
			g.brainView.Draw(a.Brain())
		}
	}

	if g.uiOverlays.IsEnabled(ui.OverlayPerf) {
		ps := g.perfCollector.Stats()
		g.perfPanel.Draw(ui.PerfPanelData{
			PhaseAvg:       ps.PhaseAvg,
			PhasePct:       ps.PhasePct,
			AvgTick:        ps.AvgTickDuration,
			P95Tick:        ps.P95TickDuration,
			TicksPerSecond: ps.TicksPerSecond,
		}, telemetry.Phases)
	}

	g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
}
