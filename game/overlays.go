package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/ui"
)

// handleOverlayKeys checks for overlay toggle key presses.
func (g *Game) handleOverlayKeys() {
	for _, desc := range g.uiOverlays.All() {
		if desc.Key != 0 && rl.IsKeyPressed(desc.Key) {
			g.uiOverlays.Toggle(desc.ID)
		}
	}
}

// drawActiveOverlays renders the enabled arena overlays.
func (g *Game) drawActiveOverlays() {
	for _, id := range g.uiOverlays.EnabledOverlays() {
		switch id {
		case ui.OverlayLeaderSensors:
			g.drawLeaderSensors()
		case ui.OverlayAllSensors:
			g.drawAllSensors()
		case ui.OverlayTargetLine:
			g.drawTargetLine()
		case ui.OverlayCollisionBoxes:
			g.drawCollisionBoxes()
		// Checkpoint labels and wrecks are drawn by the course and pilot
		// passes, panels by drawUI
		}
	}
}

// drawLeaderSensors draws sensor rays for the leader, or the selected pilot
// when there is one.
func (g *Game) drawLeaderSensors() {
	a := g.focusAgent()
	if a == nil || !a.Alive() {
		return
	}
	g.sensorRenderer.Draw(g.camera, a)
}

// drawAllSensors draws sensor rays for every pilot still flying.
func (g *Game) drawAllSensors() {
	query := g.pilotFilter.Query()
	for query.Next() {
		_, _, _, pilot, status := query.Get()
		if status.Alive {
			g.sensorRenderer.Draw(g.camera, pilot.Agent)
		}
	}
}

// drawTargetLine draws the focus pilot's steering target.
func (g *Game) drawTargetLine() {
	a := g.focusAgent()
	if a == nil || !a.Alive() {
		return
	}
	target := a.CurrentTarget(g.course.Checkpoints, g.course.Target)
	g.sensorRenderer.DrawTargetLine(g.camera, a, target)
}

// drawCollisionBoxes outlines every living pilot's collision box.
func (g *Game) drawCollisionBoxes() {
	color := rl.Color{R: 0, G: 255, B: 0, A: 150}
	query := g.pilotFilter.Query()
	for query.Next() {
		_, _, _, pilot, status := query.Get()
		if status.Alive {
			g.sensorRenderer.DrawBounds(g.camera, pilot.Agent, color)
		}
	}
}
