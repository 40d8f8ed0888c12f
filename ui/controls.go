package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is the simulation state the controls panel reflects.
type ControlsState struct {
	Paused   bool
	Speed    int // steps per update
	MaxSpeed int
}

// ControlsResult reports what the user changed this frame.
type ControlsResult struct {
	TogglePause bool
	Speed       int
	ResetCamera bool
	Toggled     []OverlayID
}

// ControlsPanel renders the side-panel controls: pause, speed and overlay
// toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height for the given overlay set.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	rows := int32(len(overlays.All()) + len(overlays.Categories()))
	return r.Theme.Padding*2 + 30 + 40 + 34 + rows*(r.Theme.LineHeight+6) + 8
}

// Draw renders the panel and returns the user's input.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsResult {
	r := c.renderer
	padding := r.Theme.Padding
	res := ControlsResult{Speed: state.Speed}

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)

	// Pause / camera buttons
	half := (inner - 10) / 2
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		res.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Reset View") {
		res.ResetCamera = true
	}
	y += 30

	// Speed slider
	rl.DrawText(fmt.Sprintf("Speed: %dx", state.Speed), int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
	y += 16
	maxSpeed := max(state.MaxSpeed, 1)
	newSpeed := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: y, Width: inner - 50, Height: 16},
		"1", fmt.Sprintf("%d", maxSpeed),
		float32(state.Speed), 1, float32(maxSpeed),
	)
	if s := int(newSpeed + 0.5); s != state.Speed {
		res.Speed = min(max(s, 1), maxSpeed)
	}
	y += 24

	// Overlay toggles by category
	rl.DrawText("Overlays", int32(x), int32(y), 16, rl.White)
	y += 20
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(r.Theme.LineHeight + 6)

		for _, desc := range overlays.ByCategory(category) {
			label := fmt.Sprintf("%s %s [%s]", toggleText(overlays.IsEnabled(desc.ID), "[x]", "[ ]"), desc.Name, desc.KeyLabel)
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: inner, Height: float32(r.Theme.LineHeight + 2)}, label) {
				res.Toggled = append(res.Toggled, desc.ID)
			}
			y += float32(r.Theme.LineHeight + 6)
		}
	}

	return res
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "sensors":
		return "Sensors"
	case "course":
		return "Course"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}

func toggleText(on bool, ifOn, ifOff string) string {
	if on {
		return ifOn
	}
	return ifOff
}
