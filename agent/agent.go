// Package agent simulates one neural-network piloted rocket: sensing,
// steering, physics, checkpoint progress and end-of-life scoring.
package agent

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/thrust/geom"
	"github.com/pthm-cable/thrust/neural"
)

// SentinelDistance marks "no best distance recorded for this leg yet".
const SentinelDistance = 999999.0

// Params holds the physical and sensing constants shared by every agent.
type Params struct {
	Topology neural.Topology

	Gravity       float64 // downward acceleration per tick
	ThrustPower   float64 // velocity added per thrusting tick
	RotationSpeed float64 // degrees per active rotation control
	Damping       float64 // velocity multiplier per tick (< 1)

	SensorRange  float64   // maximum ray length
	SensorAngles []float64 // degrees relative to heading

	VelocityScale float64 // velocity component mapped to +-1
	DistanceScale float64 // distance-to-target mapped to +1

	StuckInterval  int     // ticks between stuck checks
	StuckThreshold float64 // minimum displacement per check
	StuckLimit     int     // consecutive stuck checks before death

	TargetRadius float64   // completion radius around the final target
	Arena        geom.Rect // leaving it kills the agent
	HalfWidth    float64   // body box half extents
	HalfHeight   float64
}

// DefaultParams returns the constants the default course is tuned for.
func DefaultParams() Params {
	return Params{
		Topology:       neural.Topology{13, 8, 3},
		Gravity:        0.02,
		ThrustPower:    0.1,
		RotationSpeed:  3.0,
		Damping:        0.99,
		SensorRange:    400,
		SensorAngles:   []float64{-90, -45, -20, 0, 20, 45, 90, 180},
		VelocityScale:  4,
		DistanceScale:  1500,
		StuckInterval:  100,
		StuckThreshold: 20,
		StuckLimit:     3,
		TargetRadius:   50,
		Arena:          geom.Rect{X: 0, Y: 0, W: 1000, H: 1000},
		HalfWidth:      12,
		HalfHeight:     16,
	}
}

// NumInputs is the network input count implied by the sensor layout:
// one per sensor, two velocity components, distance, heading error, bias.
func (p Params) NumInputs() int {
	return len(p.SensorAngles) + 5
}

// DeathCause records why an agent stopped flying.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseCrashed
	CauseOutOfBounds
	CauseStuck
	CauseCompleted
)

func (c DeathCause) String() string {
	switch c {
	case CauseCrashed:
		return "crashed"
	case CauseOutOfBounds:
		return "out_of_bounds"
	case CauseStuck:
		return "stuck"
	case CauseCompleted:
		return "completed"
	default:
		return "none"
	}
}

// SensorReading is one ray's result for the current tick.
type SensorReading struct {
	End      geom.Vec2
	Distance float64
	Hit      bool
}

// Agent is a single rocket and its exclusively owned brain.
type Agent struct {
	params *Params
	brain  *neural.Network

	pos      geom.Vec2
	vel      geom.Vec2
	rotation float64 // degrees, 0 = nose up, clockwise positive

	sensors []SensorReading
	inputs  []float64
	visited []bool

	fitness      float64
	bestDistance float64
	timeAlive    int
	lastCheckPos geom.Vec2
	stuckCount   int

	dead      bool
	completed bool
	thrusting bool
	cause     DeathCause
}

// New creates an agent with a randomly initialised brain.
// The agent must be Reset before it is simulated.
func New(params *Params, rng *rand.Rand) *Agent {
	return withBrain(params, neural.New(params.Topology, rng))
}

// FromGenome creates an agent whose brain is loaded from g.
func FromGenome(params *Params, g neural.Genome) (*Agent, error) {
	brain, err := neural.FromGenome(params.Topology, g)
	if err != nil {
		return nil, err
	}
	return withBrain(params, brain), nil
}

func withBrain(params *Params, brain *neural.Network) *Agent {
	return &Agent{
		params:       params,
		brain:        brain,
		sensors:      make([]SensorReading, len(params.SensorAngles)),
		inputs:       make([]float64, 0, params.NumInputs()),
		bestDistance: SentinelDistance,
	}
}

// Clone returns a deep copy, including an independent copy of the brain.
func (a *Agent) Clone() *Agent {
	c := *a
	c.brain = a.brain.Clone()
	c.sensors = append([]SensorReading(nil), a.sensors...)
	c.inputs = make([]float64, 0, cap(a.inputs))
	c.visited = append([]bool(nil), a.visited...)
	return &c
}

// Reset prepares the agent for a new generation at start. The brain is kept.
func (a *Agent) Reset(start geom.Vec2, checkpointCount int) {
	a.dead = false
	a.completed = false
	a.thrusting = false
	a.cause = CauseNone
	a.pos = start
	a.vel = geom.Vec2{}
	a.rotation = 0
	a.fitness = 0
	a.timeAlive = 0
	a.bestDistance = SentinelDistance
	a.stuckCount = 0
	a.lastCheckPos = start
	for i := range a.sensors {
		a.sensors[i] = SensorReading{End: start, Distance: a.params.SensorRange}
	}
	if cap(a.visited) >= checkpointCount {
		a.visited = a.visited[:checkpointCount]
		clear(a.visited)
	} else {
		a.visited = make([]bool, checkpointCount)
	}
}

// active reports whether the agent still takes part in the simulation.
func (a *Agent) active() bool {
	return !a.dead && !a.completed
}

// headingRad converts the sprite-style rotation into a world angle.
func headingRad(rotationDeg float64) float64 {
	return (rotationDeg - 90) * math.Pi / 180
}

// Bounds returns the agent's collision box.
func (a *Agent) Bounds() geom.Rect {
	return geom.RectAround(a.pos, a.params.HalfWidth, a.params.HalfHeight)
}

func (a *Agent) Position() geom.Vec2 { return a.pos }
func (a *Agent) Velocity() geom.Vec2 { return a.vel }
func (a *Agent) Rotation() float64 { return a.rotation }
func (a *Agent) Heading() float64 { return headingRad(a.rotation) }
func (a *Agent) Dead() bool { return a.dead }
func (a *Agent) Completed() bool { return a.completed }
func (a *Agent) Alive() bool { return a.active() }
func (a *Agent) Thrusting() bool { return a.thrusting }
func (a *Agent) Cause() DeathCause { return a.cause }
func (a *Agent) Sensors() []SensorReading { return a.sensors }
func (a *Agent) Visited() []bool { return a.visited }
func (a *Agent) TimeAlive() int { return a.timeAlive }
func (a *Agent) BestDistance() float64 { return a.bestDistance }
func (a *Agent) Fitness() float64 { return a.fitness }
func (a *Agent) Brain() *neural.Network { return a.brain }
func (a *Agent) Genome() neural.Genome { return a.brain.Weights() }
func (a *Agent) Params() *Params { return a.params }
func (a *Agent) SetFitness(fitness float64) { a.fitness = fitness }

// VisitedCount returns how many checkpoints have been passed.
func (a *Agent) VisitedCount() int {
	n := 0
	for _, v := range a.visited {
		if v {
			n++
		}
	}
	return n
}

// AllVisited reports whether every checkpoint has been passed.
func (a *Agent) AllVisited() bool {
	for _, v := range a.visited {
		if !v {
			return false
		}
	}
	return true
}
