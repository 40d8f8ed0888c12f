package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	GenTick    int
	Lifetime   int
	TotalTicks int32
	Alive      int
	Population int
	Speed      int
	FPS        int32
	Paused     bool

	// Last finished generation (HasStats false before the first rollover)
	HasStats       bool
	LastBest       float64
	LastMean       float64
	LastCompleted  int
	CheckpointsMax int
	BestEver       float64
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD panel.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (h *HUD) SetPosition(x, y int32) {
	h.x = x
	h.y = y
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	padding := r.Theme.Padding
	height := int32(230)
	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + padding
	y := h.y + padding

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 28

	y = r.DrawSectionHeader(x, y, "Generation")
	y = r.DrawLabelValue(x, y, "Number", fmt.Sprintf("%d", data.Generation))
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d / %d", data.GenTick, data.Lifetime))
	y = r.DrawLabelValue(x, y, "Alive", fmt.Sprintf("%d / %d", data.Alive, data.Population))
	y = r.DrawBar(x, y, "Lifetime", float32(data.GenTick), 0, float32(data.Lifetime), h.width-padding*2)
	y += 4

	y = r.DrawSectionHeader(x, y, "Last generation")
	if data.HasStats {
		y = r.DrawLabelValue(x, y, "Best", humanize.CommafWithDigits(data.LastBest, 0))
		y = r.DrawLabelValue(x, y, "Mean", humanize.CommafWithDigits(data.LastMean, 0))
		y = r.DrawLabelValue(x, y, "Completed", fmt.Sprintf("%d", data.LastCompleted))
		y = r.DrawLabelValue(x, y, "Best ever", humanize.CommafWithDigits(data.BestEver, 0))
	} else {
		y = r.DrawLabelValue(x, y, "Best", "-")
	}

	// Status line
	status := fmt.Sprintf("Running %dx", data.Speed)
	color := rl.LightGray
	if data.Paused {
		status = "PAUSED"
		color = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("%s | FPS %d | %s ticks", status, data.FPS, humanize.Comma(int64(data.TotalTicks))),
		x, h.y+height-padding-r.Theme.FontSize, r.Theme.FontSize, color)

	return h.y + height
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-20, 12, rl.Gray)
}

// PerfPanelData holds performance metrics for display.
type PerfPanelData struct {
	PhaseAvg       map[string]time.Duration
	PhasePct       map[string]float64
	AvgTick        time.Duration
	P95Tick        time.Duration
	TicksPerSecond float64
}

// PerfPanel renders the per-phase performance panel.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel for the given phases in order.
func (p *PerfPanel) Draw(data PerfPanelData, phases []string) {
	r := p.renderer
	padding := r.Theme.Padding
	height := padding*2 + 50 + int32(len(phases))*14
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding

	rl.DrawText(fmt.Sprintf("Tick %s (%.0f/s)", p.round(data.AvgTick), data.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 18
	rl.DrawText(fmt.Sprintf("p95 %s", p.round(data.P95Tick)), x, y, 12, rl.LightGray)
	y += 16

	for _, name := range phases {
		pct := data.PhasePct[name]

		color := rl.LightGray
		if pct > 60 {
			color = rl.Red
		} else if pct > 30 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-12s %8s %5.1f%%", name, p.round(data.PhaseAvg[name]), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

func (p *PerfPanel) round(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}
