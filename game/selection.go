package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
)

// maxPickDistance is how far from a pilot (in screen pixels) a click still selects it.
const maxPickDistance = 24.0

// findPilotAt returns the living pilot closest to the screen point, if any
// is within maxPickDistance.
func (g *Game) findPilotAt(sx, sy float32) (ecs.Entity, bool) {
	var closestEntity ecs.Entity
	closestDist := float32(maxPickDistance * maxPickDistance)
	found := false

	query := g.pilotFilter.Query()
	for query.Next() {
		pos, _, _, _, status := query.Get()
		if !status.Alive {
			continue
		}

		px, py := g.camera.WorldToScreen(pos.X, pos.Y)
		dx, dy := px-sx, py-sy
		if d := dx*dx + dy*dy; d < closestDist {
			closestDist = d
			closestEntity = query.Entity()
			found = true
		}
	}

	return closestEntity, found
}

// handleSelection selects the pilot under a left click inside the arena view
// and clears the selection on right click.
func (g *Game) handleSelection() {
	mouse := rl.GetMousePosition()
	if mouse.X >= g.viewportWidth() {
		return
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		if e, ok := g.findPilotAt(mouse.X, mouse.Y); ok {
			g.selected = e
			g.hasSelection = true
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		g.hasSelection = false
	}
}
