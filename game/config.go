package game

import (
	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/course"
	"github.com/pthm-cable/thrust/evolve"
	"github.com/pthm-cable/thrust/neural"
)

// AgentParams converts the agent and neural sections into the constants
// every agent of a run shares. The arena comes from the course.
func AgentParams(cfg *config.Config, c *course.Course) agent.Params {
	a := cfg.Agent
	return agent.Params{
		Topology:       neural.Topology(append([]int(nil), cfg.Derived.Topology...)),
		Gravity:        a.Gravity,
		ThrustPower:    a.ThrustPower,
		RotationSpeed:  a.RotationSpeed,
		Damping:        a.Damping,
		SensorRange:    a.SensorRange,
		SensorAngles:   append([]float64(nil), a.SensorAngles...),
		VelocityScale:  a.VelocityScale,
		DistanceScale:  a.DistanceScale,
		StuckInterval:  a.StuckInterval,
		StuckThreshold: a.StuckThreshold,
		StuckLimit:     a.StuckLimit,
		TargetRadius:   c.TargetRadius,
		Arena:          c.Arena,
		HalfWidth:      a.HalfWidth,
		HalfHeight:     a.HalfHeight,
	}
}

// EvolveConfig converts the population and mutation sections.
func EvolveConfig(cfg *config.Config) evolve.Config {
	return evolve.Config{
		PopulationSize:   cfg.Population.Size,
		EliteCount:       cfg.Population.EliteCount,
		TournamentSize:   cfg.Population.TournamentSize,
		MutationRate:     cfg.Mutation.Rate,
		MutationStrength: cfg.Mutation.Strength,
	}
}
