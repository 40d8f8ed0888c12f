package game

import (
	"github.com/pthm-cable/thrust/telemetry"
)

// simulationStep runs a single tick: every agent steps in population order,
// pilot components are refreshed, and the generation rolls over when its
// lifetime is up or nobody is left flying.
func (g *Game) simulationStep() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	g.pop.AdvanceTick(g.course.Obstacles, g.course.Checkpoints, g.course.Target)
	g.tick++
	g.genTick++

	g.perfCollector.StartPhase(telemetry.PhaseSync)
	g.syncPilots()

	if g.genTick >= g.cfg.Population.Lifetime || g.pop.Done() {
		g.perfCollector.StartPhase(telemetry.PhaseGeneration)
		g.endGeneration()
	}

	g.perfCollector.EndTick()
}

// syncPilots copies agent state into the pilot components and marks the
// current leader.
func (g *Game) syncPilots() {
	g.leader = g.pop.Leader()

	query := g.pilotFilter.Query()
	for query.Next() {
		pos, rot, _, pilot, status := query.Get()
		a := pilot.Agent

		p := a.Position()
		pos.X = float32(p.X)
		pos.Y = float32(p.Y)
		rot.Deg = float32(a.Rotation())

		status.Alive = a.Alive()
		status.Thrusting = a.Thrusting() && status.Alive
		status.Leader = a == g.leader
	}
}

// AliveCount returns the number of pilots still flying.
func (g *Game) AliveCount() int {
	n := 0
	query := g.pilotFilter.Query()
	for query.Next() {
		_, _, _, _, status := query.Get()
		if status.Alive {
			n++
		}
	}
	return n
}
