package ui

import (
	"testing"

	"github.com/pthm-cable/thrust/neural"
)

func TestInputLabels(t *testing.T) {
	labels := InputLabels([]float64{-90, 0, 45})
	want := []string{"Ray -90", "Ray +0", "Ray +45", "Vel X", "Vel Y", "Dist", "Head", "Bias"}
	if len(labels) != len(want) {
		t.Fatalf("labels = %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, labels[i], want[i])
		}
	}
}

func TestNetworkLayout(t *testing.T) {
	topo := neural.Topology{13, 8, 3}
	nodes := networkLayout(0, 0, 300, 280, topo)

	if len(nodes) != len(topo) {
		t.Fatalf("got %d columns, want %d", len(nodes), len(topo))
	}
	for l, size := range topo {
		if len(nodes[l]) != size {
			t.Errorf("layer %d has %d nodes, want %d", l, len(nodes[l]), size)
		}
		for i, n := range nodes[l] {
			if n.X != nodes[l][0].X {
				t.Errorf("layer %d node %d not in its column", l, i)
			}
			if n.Y < 10 || n.Y > 270 {
				t.Errorf("layer %d node %d at y=%v, outside the panel", l, i, n.Y)
			}
			if i > 0 && n.Y <= nodes[l][i-1].Y {
				t.Errorf("layer %d nodes not ordered top to bottom", l)
			}
		}
		if l > 0 && nodes[l][0].X <= nodes[l-1][0].X {
			t.Errorf("layer %d left of layer %d", l, l-1)
		}
	}

	// Columns are centred on the same line
	mid := func(col []float32) float32 { return (col[0] + col[len(col)-1]) / 2 }
	var centres []float32
	for _, col := range nodes {
		ys := []float32{col[0].Y, col[len(col)-1].Y}
		centres = append(centres, mid(ys))
	}
	for i := 1; i < len(centres); i++ {
		if d := centres[i] - centres[0]; d > 0.01 || d < -0.01 {
			t.Errorf("column %d centred at %v, column 0 at %v", i, centres[i], centres[0])
		}
	}
}

func TestActivationColor(t *testing.T) {
	pos := activationColor(1)
	neg := activationColor(-1)
	zero := activationColor(0)

	if pos.R <= pos.B {
		t.Errorf("positive activation %+v is not red", pos)
	}
	if neg.B <= neg.R {
		t.Errorf("negative activation %+v is not blue", neg)
	}
	if zero.R != zero.B || zero.R != 60 {
		t.Errorf("zero activation %+v is not neutral", zero)
	}
	if activationColor(5) != pos {
		t.Error("activation above 1 not saturated")
	}
}
