package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/components"
)

// Tuning constants for the run loop.
const (
	maxStepsPerUpdate = 10 // upper bound of the speed control
	stagnationWindow  = 20 // generations without improvement before a bookmark
)

// spawnCourse creates one entity per obstacle and checkpoint plus the target.
// Course entities live for the whole run.
func (g *Game) spawnCourse() {
	for _, r := range g.course.Obstacles {
		g.obstacleMapper.NewEntity(&components.Obstacle{Rect: r})
	}
	for i, c := range g.course.Checkpoints {
		g.checkpointMapper.NewEntity(&components.Checkpoint{Circle: c, Index: i})
	}
	g.targetMapper.NewEntity(&components.Target{
		Center:     g.course.Target,
		Radius:     g.course.TargetRadius,
		DrawRadius: g.course.TargetDrawRadius,
	})
}

// spawnPilots creates one pilot entity per agent of the current population.
func (g *Game) spawnPilots() {
	for i, a := range g.pop.Agents {
		g.spawnPilot(a, i)
	}
	g.syncPilots()
}

// spawnPilot creates the entity that mirrors a into the ECS world.
func (g *Game) spawnPilot(a *agent.Agent, slot int) ecs.Entity {
	p := a.Position()
	pos := components.Position{X: float32(p.X), Y: float32(p.Y)}
	rot := components.Rotation{Deg: float32(a.Rotation())}
	body := components.Body{HalfW: float32(g.params.HalfWidth), HalfH: float32(g.params.HalfHeight)}
	pilot := components.Pilot{Agent: a, Slot: slot}
	status := components.Status{Alive: a.Alive()}

	return g.pilotMapper.NewEntity(&pos, &rot, &body, &pilot, &status)
}

// clearPilots removes every pilot entity.
func (g *Game) clearPilots() {
	// First pass: collect entities (must complete before modifying)
	var toRemove []ecs.Entity
	query := g.pilotFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}

	// Second pass: remove entities (query iteration complete)
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
	g.hasSelection = false
	g.leader = nil
}

// replacePopulation swaps in the next generation's agents and their pilots.
func (g *Game) replacePopulation(next []*agent.Agent) {
	g.clearPilots()
	g.pop = &agent.Population{Agents: next}
	g.spawnPilots()
}

// selectedAgent returns the agent of the selected pilot, if any.
func (g *Game) selectedAgent() *agent.Agent {
	if !g.hasSelection || !g.world.Alive(g.selected) {
		return nil
	}
	pilot := g.pilotMap.Get(g.selected)
	if pilot == nil {
		return nil
	}
	return pilot.Agent
}
