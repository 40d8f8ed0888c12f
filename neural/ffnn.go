// Package neural provides the fixed-topology feedforward networks that pilot
// the agents, and the flat genome encoding the genetic algorithm works on.
package neural

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// ErrGenomeTooShort is returned when a genome has fewer values than the
// network has connections.
var ErrGenomeTooShort = errors.New("neural: genome shorter than network")

// Topology lists layer sizes: inputs, hidden layers, outputs.
type Topology []int

// Genome is every connection weight of a network, matrix by matrix,
// row-major within each matrix.
type Genome []float64

// GenomeLen returns the number of weights a network of topology t holds.
func GenomeLen(t Topology) int {
	n := 0
	for i := 0; i+1 < len(t); i++ {
		n += t[i] * t[i+1]
	}
	return n
}

func (t Topology) validate() {
	if len(t) < 2 {
		panic(fmt.Sprintf("neural: topology needs at least 2 layers, got %d", len(t)))
	}
	for i, size := range t {
		if size < 1 {
			panic(fmt.Sprintf("neural: layer %d has size %d", i, size))
		}
	}
}

// layer holds one layer's raw and activated values. The 1xN row views share
// storage with the slices so matrix products land directly in raw.
type layer struct {
	raw       []float64
	activated []float64
	rawRow    *mat.Dense
	actRow    *mat.Dense
}

func newLayer(size int) *layer {
	l := &layer{
		raw:       make([]float64, size),
		activated: make([]float64, size),
	}
	l.rawRow = mat.NewDense(1, size, l.raw)
	l.actRow = mat.NewDense(1, size, l.activated)
	return l
}

// Network is a fully connected feedforward network with softsign activation
// and no biases. Weight matrix i maps layer i (rows) to layer i+1 (columns).
type Network struct {
	topology Topology
	layers   []*layer
	weights  []*mat.Dense
}

// New creates a network with weights drawn uniformly from [-1, 1].
// Panics if the topology has fewer than two layers or an empty layer.
func New(topology Topology, rng *rand.Rand) *Network {
	nn := newZero(topology)
	for _, w := range nn.weights {
		rows, _ := w.Dims()
		for r := 0; r < rows; r++ {
			row := w.RawRowView(r)
			for c := range row {
				row[c] = rng.Float64()*2 - 1
			}
		}
	}
	return nn
}

// FromGenome creates a network and loads its weights from g.
func FromGenome(topology Topology, g Genome) (*Network, error) {
	nn := newZero(topology)
	if err := nn.SetWeights(g); err != nil {
		return nil, err
	}
	return nn, nil
}

func newZero(topology Topology) *Network {
	topology.validate()

	nn := &Network{
		topology: append(Topology(nil), topology...),
		layers:   make([]*layer, len(topology)),
		weights:  make([]*mat.Dense, len(topology)-1),
	}
	for i, size := range topology {
		nn.layers[i] = newLayer(size)
	}
	for i := range nn.weights {
		nn.weights[i] = mat.NewDense(topology[i], topology[i+1], nil)
	}
	return nn
}

// Topology returns a copy of the layer sizes.
func (nn *Network) Topology() Topology {
	return append(Topology(nil), nn.topology...)
}

// SetInput copies values into the input layer. Panics on a length mismatch.
func (nn *Network) SetInput(values []float64) {
	in := nn.layers[0]
	if len(values) != len(in.raw) {
		panic(fmt.Sprintf("neural: input has %d values, network expects %d", len(values), len(in.raw)))
	}
	copy(in.raw, values)
	// The input layer is fed forward raw; activated mirrors it for inspection.
	copy(in.activated, values)
}

// Forward propagates the current input through every layer.
// The input layer contributes its raw values; later layers their activations.
func (nn *Network) Forward() {
	for i, w := range nn.weights {
		in := nn.layers[i].actRow
		if i == 0 {
			in = nn.layers[0].rawRow
		}
		out := nn.layers[i+1]
		out.rawRow.Mul(in, w)
		for j, v := range out.raw {
			out.activated[j] = Softsign(v)
		}
	}
}

// Outputs returns a copy of the activated output layer.
func (nn *Network) Outputs() []float64 {
	last := nn.layers[len(nn.layers)-1]
	return append([]float64(nil), last.activated...)
}

// Raw returns a copy of layer i's pre-activation values.
func (nn *Network) Raw(i int) []float64 {
	return append([]float64(nil), nn.layer(i).raw...)
}

// Activated returns a copy of layer i's activated values.
func (nn *Network) Activated(i int) []float64 {
	return append([]float64(nil), nn.layer(i).activated...)
}

// Weight returns the connection from neuron row of layer m to neuron col of
// layer m+1.
func (nn *Network) Weight(m, row, col int) float64 {
	if m < 0 || m >= len(nn.weights) {
		panic(fmt.Sprintf("neural: weight matrix %d out of range [0,%d)", m, len(nn.weights)))
	}
	r, c := nn.weights[m].Dims()
	if row < 0 || row >= r || col < 0 || col >= c {
		panic(fmt.Sprintf("neural: weight (%d,%d) out of range for %dx%d matrix %d", row, col, r, c, m))
	}
	return nn.weights[m].At(row, col)
}

func (nn *Network) layer(i int) *layer {
	if i < 0 || i >= len(nn.layers) {
		panic(fmt.Sprintf("neural: layer %d out of range [0,%d)", i, len(nn.layers)))
	}
	return nn.layers[i]
}

// GenomeLen returns the number of weights in nn.
func (nn *Network) GenomeLen() int {
	return GenomeLen(nn.topology)
}

// Weights flattens every weight matrix into a new genome.
func (nn *Network) Weights() Genome {
	g := make(Genome, 0, nn.GenomeLen())
	for _, w := range nn.weights {
		rows, _ := w.Dims()
		for r := 0; r < rows; r++ {
			g = append(g, w.RawRowView(r)...)
		}
	}
	return g
}

// SetWeights restores weights from a genome in Weights order. Values past
// the network's genome length are ignored. A short genome is rejected with
// ErrGenomeTooShort and leaves the weights untouched.
func (nn *Network) SetWeights(g Genome) error {
	if want := nn.GenomeLen(); len(g) < want {
		return fmt.Errorf("%w: got %d values, want %d", ErrGenomeTooShort, len(g), want)
	}
	idx := 0
	for _, w := range nn.weights {
		rows, _ := w.Dims()
		for r := 0; r < rows; r++ {
			idx += copy(w.RawRowView(r), g[idx:])
		}
	}
	return nil
}

// Clone creates a deep copy of the network. Buffers are never shared.
func (nn *Network) Clone() *Network {
	clone := newZero(nn.topology)
	for i, w := range nn.weights {
		clone.weights[i].Copy(w)
	}
	for i, l := range nn.layers {
		copy(clone.layers[i].raw, l.raw)
		copy(clone.layers[i].activated, l.activated)
	}
	return clone
}

// Softsign is x / (1 + |x|): bounded to (-1, 1) and zero at zero, so outputs
// read directly as bipolar decisions.
func Softsign(x float64) float64 {
	return x / (1 + math.Abs(x))
}
