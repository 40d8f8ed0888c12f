package agent

import (
	"math"

	"github.com/pthm-cable/thrust/geom"
)

// Controls are the three boolean actuators decoded from the network outputs.
type Controls struct {
	RotateLeft  bool
	RotateRight bool
	Thrust      bool
}

// DecodeControls maps bipolar network outputs to actuators: each control is
// on iff its output is positive.
func DecodeControls(outputs []float64) Controls {
	return Controls{
		RotateLeft:  outputs[0] > 0,
		RotateRight: outputs[1] > 0,
		Thrust:      outputs[2] > 0,
	}
}

// CurrentTarget returns the first unvisited checkpoint's centre, or the final
// target once every checkpoint has been passed.
func (a *Agent) CurrentTarget(checkpoints []geom.Circle, finalTarget geom.Vec2) geom.Vec2 {
	for i, cp := range checkpoints {
		if i >= len(a.visited) || !a.visited[i] {
			return cp.Center
		}
	}
	return finalTarget
}

// ThinkAndMove builds the network inputs from the last sensor readings and
// the navigation state, runs the brain, and applies its controls.
func (a *Agent) ThinkAndMove(checkpoints []geom.Circle, finalTarget geom.Vec2) {
	if !a.active() {
		return
	}

	target := a.CurrentTarget(checkpoints, finalTarget)
	toTarget := target.Sub(a.pos)
	dist := toTarget.Len()
	if dist < a.bestDistance {
		a.bestDistance = dist
	}

	a.brain.SetInput(a.buildInputs(toTarget, dist))
	a.brain.Forward()
	a.apply(DecodeControls(a.brain.Outputs()))
}

// buildInputs fills the reusable input buffer, every value in [-1, 1]:
// sensors, velocity, distance to target, heading error, bias.
func (a *Agent) buildInputs(toTarget geom.Vec2, dist float64) []float64 {
	p := a.params
	in := a.inputs[:0]

	for _, s := range a.sensors {
		in = append(in, 2*(s.Distance/p.SensorRange)-1)
	}

	in = append(in,
		geom.Clamp(a.vel.X/p.VelocityScale, -1, 1),
		geom.Clamp(a.vel.Y/p.VelocityScale, -1, 1),
	)

	in = append(in, 2*math.Min(1, dist/p.DistanceScale)-1)

	angleToTarget := math.Atan2(toTarget.Y, toTarget.X)
	in = append(in, geom.WrapAngle(angleToTarget-a.Heading())/math.Pi)

	in = append(in, 0) // bias

	a.inputs = in
	return in
}

// apply rotates first, then thrusts along the new heading.
func (a *Agent) apply(c Controls) {
	a.thrusting = c.Thrust
	if c.RotateLeft {
		a.rotation -= a.params.RotationSpeed
	}
	if c.RotateRight {
		a.rotation += a.params.RotationSpeed
	}
	if c.Thrust {
		a.vel = a.vel.Add(geom.FromAngle(a.Heading(), a.params.ThrustPower))
	}
}
