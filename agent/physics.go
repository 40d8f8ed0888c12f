package agent

import (
	"github.com/pthm-cable/thrust/geom"
)

// UpdatePhysics applies gravity, moves the agent, damps its velocity and
// runs the periodic stuck check.
func (a *Agent) UpdatePhysics() {
	if !a.active() {
		return
	}
	p := a.params

	a.timeAlive++

	a.vel.Y += p.Gravity
	a.pos = a.pos.Add(a.vel)
	a.vel = a.vel.Scale(p.Damping)

	if p.StuckInterval > 0 && a.timeAlive%p.StuckInterval == 0 {
		if a.pos.Dist(a.lastCheckPos) < p.StuckThreshold {
			a.stuckCount++
			if a.stuckCount >= p.StuckLimit {
				a.kill(CauseStuck)
			}
		} else {
			a.stuckCount = 0
		}
		a.lastCheckPos = a.pos
	}
}

// CheckCheckpoints marks the next checkpoint in order as visited when the
// agent's box touches it. Passing one restarts best-distance tracking.
func (a *Agent) CheckCheckpoints(checkpoints []geom.Circle) {
	if !a.active() {
		return
	}

	if len(a.visited) != len(checkpoints) {
		resized := make([]bool, len(checkpoints))
		copy(resized, a.visited)
		a.visited = resized
	}

	box := a.Bounds()
	for i, cp := range checkpoints {
		if a.visited[i] {
			continue
		}
		if box.IntersectsCircle(cp) {
			a.visited[i] = true
			a.bestDistance = SentinelDistance
		}
		return
	}
}

// CheckCollision kills the agent on contact with an obstacle or when it
// leaves the arena, and completes it when it reaches the final target with
// every checkpoint passed.
func (a *Agent) CheckCollision(obstacles []geom.Rect, target geom.Vec2) {
	if !a.active() {
		return
	}

	box := a.Bounds()
	for _, ob := range obstacles {
		if box.Intersects(ob) {
			a.kill(CauseCrashed)
			break
		}
	}

	if !a.params.Arena.Contains(a.pos) {
		a.kill(CauseOutOfBounds)
	}

	// Reaching the target wins over a same-tick crash.
	if a.pos.Dist(target) < a.params.TargetRadius && a.AllVisited() {
		a.completed = true
		a.dead = true
		a.cause = CauseCompleted
	}
}

// kill marks the agent dead, keeping the first cause recorded this tick.
func (a *Agent) kill(cause DeathCause) {
	if !a.dead {
		a.cause = cause
	}
	a.dead = true
}
