package components

import "github.com/pthm-cable/thrust/agent"

// Pilot links an ECS entity to the agent it renders and steps.
type Pilot struct {
	Agent *agent.Agent
	Slot  int // index in the generation, stable for its lifetime
}

// Status mirrors the agent flags the renderer needs.
type Status struct {
	Alive     bool
	Thrusting bool
	Leader    bool // highlighted as the current best
}
