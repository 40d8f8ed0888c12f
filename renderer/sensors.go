package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/geom"
)

// SensorRenderer draws an agent's sensor rays and its current heading target.
type SensorRenderer struct {
	RayColor    rl.Color
	HitColor    rl.Color
	TargetColor rl.Color
}

// NewSensorRenderer creates a sensor renderer with the default palette.
func NewSensorRenderer() *SensorRenderer {
	return &SensorRenderer{
		RayColor:    rl.Color{R: 90, G: 200, B: 120, A: 120},
		HitColor:    rl.Color{R: 255, G: 90, B: 90, A: 220},
		TargetColor: rl.Color{R: 80, G: 200, B: 255, A: 120},
	}
}

// Draw renders the rays from the agent's last Sense call. Rays that hit a
// wall end in a marker.
func (r *SensorRenderer) Draw(cam *camera.Camera, a *agent.Agent) {
	if a == nil {
		return
	}
	origin := screenPoint(cam, a.Position())
	for _, s := range a.Sensors() {
		end := screenPoint(cam, s.End)
		if s.Hit {
			rl.DrawLineV(origin, end, r.HitColor)
			rl.DrawCircleV(end, 3, r.HitColor)
		} else {
			rl.DrawLineV(origin, end, r.RayColor)
		}
	}
}

// DrawTargetLine draws a line from the agent to the point it is steering for.
func (r *SensorRenderer) DrawTargetLine(cam *camera.Camera, a *agent.Agent, target geom.Vec2) {
	if a == nil {
		return
	}
	rl.DrawLineV(screenPoint(cam, a.Position()), screenPoint(cam, target), r.TargetColor)
}

// DrawBounds outlines the agent's collision box.
func (r *SensorRenderer) DrawBounds(cam *camera.Camera, a *agent.Agent, color rl.Color) {
	b := a.Bounds()
	sx, sy := cam.WorldToScreen(float32(b.X), float32(b.Y))
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: sx, Y: sy, Width: cam.Scale(float32(b.W)), Height: cam.Scale(float32(b.H))},
		1, color,
	)
}

func screenPoint(cam *camera.Camera, p geom.Vec2) rl.Vector2 {
	x, y := cam.WorldToScreen(float32(p.X), float32(p.Y))
	return rl.Vector2{X: x, Y: y}
}
