// Package renderer draws the course and its pilots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/camera"
)

// BackgroundRenderer draws the arena floor: a flat fill with a reference
// grid, baked once into a render texture the size of the arena.
type BackgroundRenderer struct {
	target      rl.RenderTexture2D
	worldW      int32
	worldH      int32
	gridSize    int32
	baseColor   rl.Color
	gridColor   rl.Color
	initialized bool
}

// NewBackgroundRenderer creates a new background renderer.
func NewBackgroundRenderer(worldW, worldH float32) *BackgroundRenderer {
	return &BackgroundRenderer{
		worldW:    int32(worldW),
		worldH:    int32(worldH),
		gridSize:  50,
		baseColor: rl.Color{R: 18, G: 22, B: 30, A: 255},
		gridColor: rl.Color{R: 30, G: 36, B: 48, A: 255},
	}
}

// Init bakes the grid (must be called after raylib window is created).
func (b *BackgroundRenderer) Init() {
	if b.initialized {
		return
	}

	b.target = rl.LoadRenderTexture(b.worldW, b.worldH)

	rl.BeginTextureMode(b.target)
	rl.ClearBackground(b.baseColor)
	for x := int32(0); x <= b.worldW; x += b.gridSize {
		rl.DrawLine(x, 0, x, b.worldH, b.gridColor)
	}
	for y := int32(0); y <= b.worldH; y += b.gridSize {
		rl.DrawLine(0, y, b.worldW, y, b.gridColor)
	}
	rl.EndTextureMode()

	b.initialized = true
}

// Draw renders the arena floor through the camera.
func (b *BackgroundRenderer) Draw(cam *camera.Camera) {
	if !b.initialized {
		b.Init()
	}

	sx, sy := cam.WorldToScreen(0, 0)
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(b.worldW), Height: -float32(b.worldH)}
	dst := rl.Rectangle{X: sx, Y: sy, Width: cam.Scale(float32(b.worldW)), Height: cam.Scale(float32(b.worldH))}
	rl.DrawTexturePro(b.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees resources.
func (b *BackgroundRenderer) Unload() {
	if b.initialized {
		rl.UnloadRenderTexture(b.target)
		b.initialized = false
	}
}
