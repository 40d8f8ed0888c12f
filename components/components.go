// Package components defines ECS components for the simulation.
package components

import "github.com/pthm-cable/thrust/geom"

// Obstacle is a solid course rectangle.
type Obstacle struct {
	Rect geom.Rect
}

// Checkpoint is one circle of the ordered checkpoint chain.
type Checkpoint struct {
	Circle geom.Circle
	Index  int // position in the chain, 0 first
}

// Target is the final goal after every checkpoint.
type Target struct {
	Center     geom.Vec2
	Radius     float64 // completion radius
	DrawRadius float64
}
