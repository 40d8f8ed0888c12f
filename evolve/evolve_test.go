package evolve

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/thrust/agent"
	"github.com/pthm-cable/thrust/geom"
	"github.com/pthm-cable/thrust/neural"
)

func scoredPopulation(t *testing.T, params *agent.Params, n int, rng *rand.Rand) []*agent.Agent {
	t.Helper()
	pop := make([]*agent.Agent, n)
	for i := range pop {
		pop[i] = agent.New(params, rng)
		pop[i].SetFitness(float64(i * 10))
	}
	return pop
}

func sameGenome(a, b neural.Genome) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestEvolveKeepsElites(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	cfg := DefaultConfig()
	pop := scoredPopulation(t, &params, cfg.PopulationSize, rng)

	sorted := append([]*agent.Agent(nil), pop...)
	agent.SortByFitness(sorted)

	op := NewOperator(cfg, &params, rng)
	next, err := op.Evolve(pop, geom.Vec2{X: 900, Y: 900}, 3)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if len(next) != cfg.PopulationSize {
		t.Fatalf("len(next) = %d, want %d", len(next), cfg.PopulationSize)
	}
	for i := 0; i < cfg.EliteCount; i++ {
		if !sameGenome(next[i].Genome(), sorted[i].Genome()) {
			t.Errorf("slot %d is not the rank-%d elite genome", i, i)
		}
	}
}

func TestEvolveResetsChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	cfg := DefaultConfig()
	pop := scoredPopulation(t, &params, cfg.PopulationSize, rng)
	start := geom.Vec2{X: 900, Y: 900}

	next, err := NewOperator(cfg, &params, rng).Evolve(pop, start, 3)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	for i, a := range next {
		if a.Position() != start {
			t.Fatalf("agent %d at %v, want %v", i, a.Position(), start)
		}
		if !a.Alive() || a.Fitness() != 0 || a.TimeAlive() != 0 {
			t.Fatalf("agent %d not reset: alive=%v fitness=%v time=%d", i, a.Alive(), a.Fitness(), a.TimeAlive())
		}
		if len(a.Visited()) != 3 || a.VisitedCount() != 0 {
			t.Fatalf("agent %d visited = %v, want 3 unvisited", i, a.Visited())
		}
		for _, p := range pop {
			if a == p || a.Brain() == p.Brain() {
				t.Fatalf("agent %d shares state with a parent", i)
			}
		}
	}
}

func TestEvolveWeightsInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	cfg := DefaultConfig()
	cfg.MutationRate = 1
	cfg.MutationStrength = 0.5
	pop := scoredPopulation(t, &params, cfg.PopulationSize, rng)
	op := NewOperator(cfg, &params, rng)

	for gen := 0; gen < 5; gen++ {
		next, err := op.Evolve(pop, geom.Vec2{}, 0)
		if err != nil {
			t.Fatalf("Evolve: %v", err)
		}
		for _, a := range next {
			for _, w := range a.Genome() {
				if w < -1 || w > 1 {
					t.Fatalf("generation %d: weight %v out of [-1, 1]", gen, w)
				}
			}
			a.SetFitness(rng.Float64())
		}
		pop = next
	}
}

func TestEvolveSmallPopulation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	cfg := DefaultConfig()

	pop := make([]*agent.Agent, 20)
	for i := range pop {
		pop[i] = agent.New(&params, rng)
		pop[i].SetFitness(100)
	}
	next, err := NewOperator(cfg, &params, rng).Evolve(pop, geom.Vec2{}, 0)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if len(next) != cfg.PopulationSize {
		t.Errorf("len(next) = %d, want %d", len(next), cfg.PopulationSize)
	}
}

func TestEvolveFewerThanElites(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	cfg := DefaultConfig()
	cfg.PopulationSize = 10

	pop := scoredPopulation(t, &params, 3, rng)
	next, err := NewOperator(cfg, &params, rng).Evolve(pop, geom.Vec2{}, 0)
	if err != nil {
		t.Fatalf("Evolve: %v", err)
	}
	if len(next) != 10 {
		t.Fatalf("len(next) = %d, want 10", len(next))
	}
	// Fitness 20, 10, 0 in that order.
	for i := 0; i < 3; i++ {
		if !sameGenome(next[i].Genome(), pop[2-i].Genome()) {
			t.Errorf("slot %d does not carry parent %d", i, 2-i)
		}
	}
}

func TestEvolveEmpty(t *testing.T) {
	params := agent.DefaultParams()
	op := NewOperator(DefaultConfig(), &params, rand.New(rand.NewSource(42)))
	if _, err := op.Evolve(nil, geom.Vec2{}, 0); !errors.Is(err, ErrEmptyPopulation) {
		t.Errorf("Evolve(nil) error = %v, want ErrEmptyPopulation", err)
	}
}

func TestTournament(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	params := agent.DefaultParams()
	pop := scoredPopulation(t, &params, 10, rng)

	t.Run("k=1 returns a member", func(t *testing.T) {
		got := Tournament(pop, 1, rng)
		found := false
		for _, a := range pop {
			if a == got {
				found = true
			}
		}
		if !found {
			t.Error("winner is not a population member")
		}
	})

	t.Run("large k favours the best", func(t *testing.T) {
		best := pop[len(pop)-1]
		wins := 0
		for i := 0; i < 200; i++ {
			if Tournament(pop, 50, rng) == best {
				wins++
			}
		}
		// P(best never drawn in 50 picks of 10) is about 0.5%.
		if wins < 180 {
			t.Errorf("best won %d/200 tournaments, want >= 180", wins)
		}
	})

	t.Run("single member", func(t *testing.T) {
		if got := Tournament(pop[:1], 5, rng); got != pop[0] {
			t.Error("single-member tournament returned another agent")
		}
	})
}

func TestCrossover(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	a := make(neural.Genome, 200)
	b := make(neural.Genome, 200)
	for i := range a {
		a[i] = 1
		b[i] = -1
	}

	child := Crossover(a, b, rng)
	if len(child) != len(a) {
		t.Fatalf("len(child) = %d, want %d", len(child), len(a))
	}
	fromA := 0
	for i, w := range child {
		switch w {
		case 1:
			fromA++
		case -1:
		default:
			t.Fatalf("child[%d] = %v, not taken from either parent", i, w)
		}
	}
	if fromA < 60 || fromA > 140 {
		t.Errorf("%d/200 weights from parent a, want roughly half", fromA)
	}
	if a[0] != 1 || b[0] != -1 {
		t.Error("crossover modified a parent")
	}
}

func TestMutate(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		strength float64
		init     float64
	}{
		{"rate zero", 0, 0.5, 0.3},
		{"clamp high", 1, 0.5, 0.9},
		{"clamp low", 1, 0.5, -0.9},
		{"default", 0.05, 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(42))
			g := make(neural.Genome, 1000)
			for i := range g {
				g[i] = tt.init
			}
			n := Mutate(g, tt.rate, tt.strength, rng)

			changed := 0
			for _, w := range g {
				if w < -1 || w > 1 {
					t.Fatalf("weight %v out of range", w)
				}
				if w-tt.init > tt.strength+1e-12 || tt.init-w > tt.strength+1e-12 {
					t.Fatalf("weight moved by more than strength: %v -> %v", tt.init, w)
				}
				if w != tt.init {
					changed++
				}
			}
			if changed > n {
				t.Errorf("%d weights changed but Mutate reported %d", changed, n)
			}
			if tt.rate == 0 && n != 0 {
				t.Errorf("rate 0 mutated %d weights", n)
			}
		})
	}
}
