package ui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/thrust/neural"
)

// OutputLabels name the brain outputs in network order.
var OutputLabels = []string{"Left", "Right", "Thrust"}

// Network diagram colors.
var (
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 120, G: 120, B: 120, A: 255}
)

// edgeCutoff hides connections weaker than this.
const edgeCutoff = 0.1

// InputLabels names the brain inputs for the given sensor layout: one per
// sensor, then velocity, distance, heading error and bias.
func InputLabels(sensorAngles []float64) []string {
	labels := make([]string, 0, len(sensorAngles)+5)
	for _, a := range sensorAngles {
		labels = append(labels, fmt.Sprintf("Ray %+.0f", a))
	}
	return append(labels, "Vel X", "Vel Y", "Dist", "Head", "Bias")
}

// NetworkView draws a pilot's brain with its latest activations.
type NetworkView struct {
	x, y          int32
	width, height int32
	inputLabels   []string
}

// NewNetworkView creates a diagram occupying the given rectangle.
func NewNetworkView(x, y, width, height int32, inputLabels []string) *NetworkView {
	return &NetworkView{x: x, y: y, width: width, height: height, inputLabels: inputLabels}
}

// SetPosition moves the diagram.
func (v *NetworkView) SetPosition(x, y int32) {
	v.x = x
	v.y = y
}

// networkLayout places every neuron of topology inside the rectangle, one
// column per layer, each column centred vertically.
func networkLayout(x, y, width, height int32, topology neural.Topology) [][]rl.Vector2 {
	nodes := make([][]rl.Vector2, len(topology))
	if len(topology) == 0 {
		return nodes
	}

	colWidth := float32(width) / float32(len(topology))
	usable := float32(height - 20)
	spacing := usable / float32(max(topology[0], 1))
	for _, size := range topology[1:] {
		spacing = min(spacing, usable/float32(size))
	}

	for l, size := range topology {
		colX := float32(x) + colWidth*float32(l) + colWidth/2
		offset := (usable - float32(size)*spacing) / 2
		nodes[l] = make([]rl.Vector2, size)
		for i := range nodes[l] {
			nodes[l][i] = rl.Vector2{
				X: colX,
				Y: float32(y) + 10 + offset + float32(i)*spacing + spacing/2,
			}
		}
	}
	return nodes
}

// Draw renders nn with activations from its last forward pass.
func (v *NetworkView) Draw(nn *neural.Network) {
	x, y := v.x, v.y
	rl.DrawRectangle(x, y, v.width, v.height, rl.Color{R: 20, G: 20, B: 30, A: 230})
	if nn == nil {
		rl.DrawText("No network data", x+10, y+10, 14, ColorLabelDim)
		return
	}

	topology := nn.Topology()
	nodes := networkLayout(x, y, v.width, v.height, topology)
	nodeRadius := float32(6)

	// Edges first so nodes sit on top
	for m := 0; m < len(topology)-1; m++ {
		for from := range nodes[m] {
			for to := range nodes[m+1] {
				w := nn.Weight(m, from, to)
				if math.Abs(w) < edgeCutoff {
					continue
				}
				drawEdge(nodes[m][from], nodes[m+1][to], float32(w))
			}
		}
	}

	last := len(topology) - 1
	for l := range nodes {
		act := nn.Activated(l)
		radius := nodeRadius
		if l == last {
			radius += 2
		}
		for i, pos := range nodes[l] {
			drawNode(pos, radius, float32(act[i]))
		}
	}

	// Input labels on the left, output labels on the right
	for i, pos := range nodes[0] {
		if i < len(v.inputLabels) {
			labelWidth := rl.MeasureText(v.inputLabels[i], 10)
			rl.DrawText(v.inputLabels[i], int32(pos.X-nodeRadius)-labelWidth-4, int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
	for i, pos := range nodes[last] {
		if i < len(OutputLabels) {
			rl.DrawText(OutputLabels[i], int32(pos.X+nodeRadius+6), int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection between nodes.
func drawEdge(from, to rl.Vector2, weight float32) {
	mag := absf(weight)
	thickness := min(max(mag*1.5, 0.5), 3)

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	color.A = uint8(min(40+int(mag*40), 150))

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor returns a color based on activation value.
// Negative = blue, Zero = gray, Positive = red.
func activationColor(activation float32) rl.Color {
	t := min(absf(activation), 1)
	if activation > 0 {
		return rl.Color{R: uint8(60 + t*195), G: uint8(60 - t*30), B: uint8(60 - t*30), A: 255}
	}
	return rl.Color{R: uint8(60 - t*30), G: uint8(60 - t*30), B: uint8(60 + t*195), A: 255}
}
