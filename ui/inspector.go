package ui

import (
	"fmt"

	"github.com/pthm-cable/thrust/agent"
)

// PilotInspector renders the state of one agent: flight, progress, sensor
// readings and brain outputs.
type PilotInspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
	sections []SectionDescriptor
}

// NewPilotInspector creates an inspector for agents with the given sensor
// layout (degrees relative to heading).
func NewPilotInspector(x, y, width int32, sensorAngles []float64, sensorRange float64) *PilotInspector {
	return &PilotInspector{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		sections: pilotSections(sensorAngles, sensorRange),
	}
}

// SetPosition updates the inspector position.
func (ins *PilotInspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the inspector panel for a and returns the Y below it.
func (ins *PilotInspector) Draw(title string, a *agent.Agent) int32 {
	r := ins.renderer
	padding := r.Theme.Padding
	if a == nil {
		return ins.y
	}

	height := ins.height()
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	y = r.DrawSectionHeader(ins.x+padding, y, title)
	for _, sd := range ins.sections {
		y = r.DrawSection(ins.x+padding, y, sd, a, ins.width-padding*2)
	}
	return ins.y + height
}

func (ins *PilotInspector) height() int32 {
	t := ins.renderer.Theme
	h := t.Padding*2 + t.LineHeight
	for _, sd := range ins.sections {
		h += t.LineHeight + 4
		for _, fd := range sd.Fields {
			switch fd.Widget {
			case WidgetBar, WidgetCenteredBar:
				h += t.LineHeight + 2
			default:
				h += t.LineHeight
			}
		}
	}
	return h
}

func pilotOf(data any) *agent.Agent {
	return data.(*agent.Agent)
}

func pilotSections(sensorAngles []float64, sensorRange float64) []SectionDescriptor {
	flight := SectionDescriptor{
		ID:    "flight",
		Title: "Flight",
		Fields: []FieldDescriptor{
			{ID: "status", Label: "Status", Widget: WidgetText, TextGetter: func(d any) string {
				a := pilotOf(d)
				if a.Alive() {
					return "flying"
				}
				return a.Cause().String()
			}},
			{ID: "position", Label: "Position", Widget: WidgetText, TextGetter: func(d any) string {
				p := pilotOf(d).Position()
				return fmt.Sprintf("%.0f, %.0f", p.X, p.Y)
			}},
			{ID: "velocity", Label: "Velocity", Widget: WidgetText, TextGetter: func(d any) string {
				v := pilotOf(d).Velocity()
				return fmt.Sprintf("%+.2f, %+.2f", v.X, v.Y)
			}},
			{ID: "rotation", Label: "Rotation", Widget: WidgetText, Format: "%.0f deg", Getter: func(d any) float32 {
				return float32(pilotOf(d).Rotation())
			}},
			{ID: "time_alive", Label: "Time alive", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(pilotOf(d).TimeAlive())
			}},
		},
	}

	progress := SectionDescriptor{
		ID:    "progress",
		Title: "Progress",
		Fields: []FieldDescriptor{
			{ID: "checkpoints", Label: "Checkpoints", Widget: WidgetText, TextGetter: func(d any) string {
				a := pilotOf(d)
				return fmt.Sprintf("%d / %d", a.VisitedCount(), len(a.Visited()))
			}},
			{ID: "best_distance", Label: "Best dist", Widget: WidgetText, TextGetter: func(d any) string {
				bd := pilotOf(d).BestDistance()
				if bd >= agent.SentinelDistance {
					return "-"
				}
				return fmt.Sprintf("%.0f", bd)
			}},
			{ID: "fitness", Label: "Fitness", Widget: WidgetText, Format: "%.0f", Getter: func(d any) float32 {
				return float32(pilotOf(d).Fitness())
			}},
		},
	}

	sensors := SectionDescriptor{ID: "sensors", Title: "Sensors"}
	for i, angle := range sensorAngles {
		sensors.Fields = append(sensors.Fields, FieldDescriptor{
			ID:     fmt.Sprintf("sensor_%d", i),
			Label:  fmt.Sprintf("%+.0f", angle),
			Widget: WidgetBar,
			Range:  FieldRange{Min: 0, Max: float32(sensorRange)},
			Getter: func(d any) float32 {
				s := pilotOf(d).Sensors()
				if i >= len(s) {
					return 0
				}
				return float32(s[i].Distance)
			},
		})
	}

	outputs := SectionDescriptor{
		ID:    "outputs",
		Title: "Brain outputs",
		Visible: func(d any) bool {
			return pilotOf(d).Brain() != nil
		},
	}
	for i, name := range OutputLabels {
		outputs.Fields = append(outputs.Fields, FieldDescriptor{
			ID:     "output_" + name,
			Label:  name,
			Widget: WidgetCenteredBar,
			Range:  CenteredRange(),
			Getter: func(d any) float32 {
				out := pilotOf(d).Brain().Outputs()
				if i >= len(out) {
					return 0
				}
				return float32(out[i])
			},
		})
	}

	return []SectionDescriptor{flight, progress, sensors, outputs}
}
