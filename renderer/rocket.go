package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
)

// RocketState is what the rocket renderer needs to know about one pilot.
type RocketState struct {
	X, Y         float32 // arena position
	RotationDeg  float32 // 0 = nose up, clockwise
	HalfW, HalfH float32
	Alive        bool
	Thrusting    bool
	Leader       bool
	Selected     bool
}

// RocketRenderer draws pilots as rotated bodies with a nose and a flame.
type RocketRenderer struct {
	BodyColor     rl.Color
	LeaderColor   rl.Color
	DeadColor     rl.Color
	FlameColor    rl.Color
	SelectedColor rl.Color
}

// NewRocketRenderer creates a rocket renderer with the default palette.
func NewRocketRenderer() *RocketRenderer {
	return &RocketRenderer{
		BodyColor:     rl.Color{R: 200, G: 200, B: 210, A: 110},
		LeaderColor:   rl.Color{R: 255, G: 210, B: 60, A: 255},
		DeadColor:     rl.Color{R: 110, G: 60, B: 60, A: 60},
		FlameColor:    rl.Color{R: 255, G: 140, B: 30, A: 230},
		SelectedColor: rl.Color{R: 120, G: 255, B: 140, A: 255},
	}
}

// Draw renders one rocket.
func (r *RocketRenderer) Draw(cam *camera.Camera, s RocketState) {
	radius := max(s.HalfW, s.HalfH)
	if !cam.IsVisible(s.X, s.Y, radius*2) {
		return
	}

	sx, sy := cam.WorldToScreen(s.X, s.Y)
	w := cam.Scale(2 * s.HalfW)
	h := cam.Scale(2 * s.HalfH)

	color := r.BodyColor
	switch {
	case !s.Alive:
		color = r.DeadColor
	case s.Leader:
		color = r.LeaderColor
	}

	// Nose direction on screen (rotation 0 points up)
	rad := float64(s.RotationDeg-90) * math.Pi / 180
	dx, dy := float32(math.Cos(rad)), float32(math.Sin(rad))

	if s.Thrusting {
		base := rl.Vector2{X: sx - dx*h/2, Y: sy - dy*h/2}
		tip := rl.Vector2{X: base.X - dx*h*0.6, Y: base.Y - dy*h*0.6}
		rl.DrawLineEx(base, tip, w*0.6, r.FlameColor)
		rl.DrawCircleV(tip, w*0.25, r.FlameColor)
	}

	rl.DrawRectanglePro(
		rl.Rectangle{X: sx, Y: sy, Width: w, Height: h},
		rl.Vector2{X: w / 2, Y: h / 2},
		s.RotationDeg,
		color,
	)

	nose := rl.Vector2{X: sx + dx*h/2, Y: sy + dy*h/2}
	rl.DrawCircleV(nose, w*0.3, color)

	if s.Selected {
		rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, cam.Scale(radius)*1.6, r.SelectedColor)
	}
}
