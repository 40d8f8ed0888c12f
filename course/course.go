// Package course holds the static geometry agents fly through: obstacles,
// ordered checkpoints, the final target, the spawn point and the arena.
package course

import (
	"github.com/pthm-cable/thrust/config"
	"github.com/pthm-cable/thrust/geom"
)

// Course is read-only once built; the simulation never mutates it.
type Course struct {
	Arena            geom.Rect
	Start            geom.Vec2
	Target           geom.Vec2
	TargetRadius     float64 // completion radius
	TargetDrawRadius float64
	Checkpoints      []geom.Circle
	Obstacles        []geom.Rect
}

// FromConfig builds a course from the arena, agent and course sections.
func FromConfig(cfg *config.Config) *Course {
	c := &Course{
		Arena:            geom.Rect{W: cfg.Arena.Width, H: cfg.Arena.Height},
		Start:            point(cfg.Course.Start),
		Target:           point(cfg.Course.Target),
		TargetRadius:     cfg.Agent.TargetRadius,
		TargetDrawRadius: cfg.Course.TargetDrawRadius,
		Checkpoints:      make([]geom.Circle, len(cfg.Course.Checkpoints)),
		Obstacles:        make([]geom.Rect, len(cfg.Course.Obstacles)),
	}
	for i, p := range cfg.Course.Checkpoints {
		c.Checkpoints[i] = geom.Circle{Center: point(p), Radius: cfg.Course.CheckpointRadius}
	}
	for i, r := range cfg.Course.Obstacles {
		c.Obstacles[i] = geom.Rect{X: r.X, Y: r.Y, W: r.W, H: r.H}
	}
	return c
}

// Default returns the course described by the embedded defaults.
func Default() *Course {
	return FromConfig(config.Default())
}

func point(p config.Point) geom.Vec2 {
	return geom.Vec2{X: p.X, Y: p.Y}
}

// Blocked reports whether an agent body box placed at p would touch an
// obstacle or leave the arena.
func (c *Course) Blocked(p geom.Vec2, halfW, halfH float64) bool {
	box := geom.RectAround(p, halfW, halfH)
	if !c.Arena.Contains(p) {
		return true
	}
	for _, o := range c.Obstacles {
		if box.Intersects(o) {
			return true
		}
	}
	return false
}

// PathLength is the length of the polyline start, checkpoints in order, target.
// It is an upper bound reference for progress reporting.
func (c *Course) PathLength() float64 {
	total := 0.0
	prev := c.Start
	for _, cp := range c.Checkpoints {
		total += prev.Dist(cp.Center)
		prev = cp.Center
	}
	return total + prev.Dist(c.Target)
}
