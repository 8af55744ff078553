package systems

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/petri/components"
	"github.com/pthm-cable/petri/neural"
)

// neverMutate is large enough that a flip in these tests is practically impossible.
const neverMutate = 1 << 30

func distinctGenomes(n int) []neural.Genome {
	out := make([]neural.Genome, n)
	for i := range out {
		out[i] = neural.Genome{{Src: uint8(i % neural.NumNeurons), Dst: 0, Weight: uint16(1000 + i)}}
	}
	return out
}

func TestSelectNoSurvivors(t *testing.T) {
	cfg := testConfig(4, 2, 3, 1)
	cfg.Zones.FoodDivisor = 4 // food is column 0
	cfg.ComputeDerived()
	env := NewEnv(cfg)

	pop := placed(4, 2, distinctGenomes(3)...)
	pop.Grid.Set(0, 1, 0)
	pop.Grid.Set(1, 3, 2)
	before := pop.Clone()

	next, stats, err := Select(pop, env, rand.New(rand.NewSource(42)))

	if !errors.Is(err, ErrNoSurvivors) {
		t.Fatalf("err = %v, want ErrNoSurvivors", err)
	}
	var nse *NoSurvivorsError
	if !errors.As(err, &nse) {
		t.Fatalf("err %T is not *NoSurvivorsError", err)
	}
	if nse.Population != 2 || nse.Cells != 3 {
		t.Errorf("error fields = %+v", nse)
	}
	if next.Cells != nil {
		t.Error("population returned alongside error")
	}
	if stats.Survivors != 0 || stats.Flips != 0 {
		t.Errorf("stats = %+v", stats)
	}

	// The current population is untouched.
	for i := range pop.Cells {
		if !pop.Cells[i].Genome.Equal(before.Cells[i].Genome) {
			t.Errorf("cell %d genome changed", i)
		}
	}
	if pop.Grid.At(0, 1) != 0 || pop.Grid.At(1, 3) != 2 {
		t.Error("grid changed")
	}
}

func TestSelectSurvivorsInScanOrder(t *testing.T) {
	cfg := testConfig(4, 2, 5, 1)
	cfg.Mutation.Rarity = neverMutate
	cfg.Zones.FoodDivisor = 2 // columns 0 and 1
	cfg.ComputeDerived()
	env := NewEnv(cfg)

	genomes := distinctGenomes(5)
	pop := placed(4, 2, genomes...)
	pop.Grid.Set(1, 0, 1) // food, scanned second
	pop.Grid.Set(0, 1, 3) // food, scanned first
	pop.Grid.Set(0, 3, 0) // not food
	pop.Grid.Set(1, 2, 4) // not food

	next, stats, err := Select(pop, env, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if stats.Survivors != 2 || stats.Cells != 5 || stats.Alive != 4 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.Percent() != 40 {
		t.Errorf("Percent() = %d, want 40", stats.Percent())
	}
	if len(next.Cells) != 5 {
		t.Fatalf("population size %d, want 5", len(next.Cells))
	}
	if !next.Cells[0].Genome.Equal(genomes[3]) || !next.Cells[1].Genome.Equal(genomes[1]) {
		t.Error("survivors not copied in row-major scan order")
	}
	for i := 2; i < 5; i++ {
		g := next.Cells[i].Genome
		if !g.Equal(genomes[3]) && !g.Equal(genomes[1]) {
			t.Errorf("padding cell %d is not a survivor copy: %v", i, g)
		}
	}
	if next.Grid.Count() != 0 {
		t.Error("next grid should be empty")
	}
}

func TestSelectCopiesGenomes(t *testing.T) {
	cfg := testConfig(2, 2, 3, 1)
	cfg.Mutation.Rarity = neverMutate
	cfg.Zones.FoodDivisor = 1 // whole field
	cfg.ComputeDerived()
	env := NewEnv(cfg)

	pop := placed(2, 2, distinctGenomes(3)...)
	pop.Grid.Set(0, 0, 0)

	next, _, err := Select(pop, env, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	// Every padded copy is its own genome.
	next.Cells[0].Genome[0].Weight = 0
	if pop.Cells[0].Genome[0].Weight == 0 {
		t.Error("survivor genome shared with the current population")
	}
	if next.Cells[1].Genome[0].Weight == 0 || next.Cells[2].Genome[0].Weight == 0 {
		t.Error("padding copies share storage")
	}
}

func TestSelectMutatesEveryCell(t *testing.T) {
	cfg := testConfig(2, 2, 3, 2)
	cfg.Mutation.Rarity = 1 // every bit flips
	cfg.Zones.FoodDivisor = 1
	cfg.ComputeDerived()
	env := NewEnv(cfg)

	genome := neural.Genome{{Src: 1, Dst: 2, Weight: 0x00ff}, {Src: 3, Dst: 4, Weight: 0x1234}}
	pop := placed(2, 2, genome, genome.Clone(), genome.Clone())
	pop.Grid.Set(1, 1, 2)

	next, stats, err := Select(pop, env, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}

	if stats.Flips != 3*2*32 {
		t.Errorf("Flips = %d, want %d", stats.Flips, 3*2*32)
	}
	for i, c := range next.Cells {
		if c.Genome[0].Weight != 0xff00 || c.Genome[1].Weight != ^uint16(0x1234) {
			t.Errorf("cell %d weights not inverted: %+v", i, c.Genome)
		}
		for j, g := range c.Genome {
			if int(g.Src) >= neural.NumNeurons || int(g.Dst) >= neural.NumNeurons {
				t.Errorf("cell %d gene %d index out of range: %+v", i, j, g)
			}
		}
	}
}

func TestSelectAfterSimulation(t *testing.T) {
	cfg := testConfig(32, 32, 300, 4)
	cfg.Zones.FoodDivisor = 2
	cfg.ComputeDerived()
	env := NewEnv(cfg)
	rng := rand.New(rand.NewSource(42))

	pop := components.NewPopulation(rng, 300, 4, 32, 32)
	pop, _, err := Populate(pop, rng)
	if err != nil {
		t.Fatal(err)
	}
	for step := 0; step < 20; step++ {
		pop, _ = Simulate(pop, step, env, rng)
	}

	next, stats, err := Select(pop, env, rng)
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}
	if stats.Survivors == 0 || stats.Survivors > 300 {
		t.Errorf("Survivors = %d", stats.Survivors)
	}
	if len(next.Cells) != 300 {
		t.Errorf("population size %d, want 300", len(next.Cells))
	}
	for i, c := range next.Cells {
		if len(c.Genome) != 4 {
			t.Fatalf("cell %d genome size %d", i, len(c.Genome))
		}
	}
}
