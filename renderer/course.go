package renderer

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
	"github.com/pthm-cable/thrust/geom"
)

// CourseRenderer draws obstacles, checkpoints and the target.
type CourseRenderer struct {
	ObstacleColor   rl.Color
	CheckpointColor rl.Color
	NextColor       rl.Color // the leader's next checkpoint
	TargetColor     rl.Color
}

// NewCourseRenderer creates a course renderer with the default palette.
func NewCourseRenderer() *CourseRenderer {
	return &CourseRenderer{
		ObstacleColor:   rl.Color{R: 120, G: 125, B: 135, A: 255},
		CheckpointColor: rl.Color{R: 80, G: 160, B: 220, A: 90},
		NextColor:       rl.Color{R: 80, G: 200, B: 255, A: 160},
		TargetColor:     rl.Color{R: 230, G: 70, B: 70, A: 200},
	}
}

// DrawObstacle draws one solid rectangle.
func (r *CourseRenderer) DrawObstacle(cam *camera.Camera, rect geom.Rect) {
	sx, sy := cam.WorldToScreen(float32(rect.X), float32(rect.Y))
	w := cam.Scale(float32(rect.W))
	h := cam.Scale(float32(rect.H))
	rl.DrawRectangleRec(rl.Rectangle{X: sx, Y: sy, Width: w, Height: h}, r.ObstacleColor)
}

// DrawCheckpoint draws a checkpoint circle. next highlights the checkpoint
// the leader is heading for; label adds its index.
func (r *CourseRenderer) DrawCheckpoint(cam *camera.Camera, c geom.Circle, index int, next, label bool) {
	sx, sy := cam.WorldToScreen(float32(c.Center.X), float32(c.Center.Y))
	radius := cam.Scale(float32(c.Radius))

	color := r.CheckpointColor
	if next {
		color = r.NextColor
	}
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, radius, color)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, radius, rl.Fade(rl.White, 0.4))

	if label {
		text := fmt.Sprintf("%d", index+1)
		w := rl.MeasureText(text, 20)
		rl.DrawText(text, int32(sx)-w/2, int32(sy)-10, 20, rl.White)
	}
}

// DrawTarget draws the final target and its completion radius.
func (r *CourseRenderer) DrawTarget(cam *camera.Camera, center geom.Vec2, radius, drawRadius float64) {
	sx, sy := cam.WorldToScreen(float32(center.X), float32(center.Y))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, cam.Scale(float32(drawRadius)), r.TargetColor)
	rl.DrawCircleLinesV(rl.Vector2{X: sx, Y: sy}, cam.Scale(float32(radius)), rl.White)
}
