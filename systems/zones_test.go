package systems

import (
	"testing"

	"github.com/pthm-cable/petri/config"
)

// testConfig returns defaults resized for small tests, with no poison.
func testConfig(width, height, cells, genes int) *config.Config {
	cfg := config.Defaults()
	cfg.World.Width = width
	cfg.World.Height = height
	cfg.Population.Cells = cells
	cfg.Genome.Genes = genes
	cfg.Zones.PoisonPhases = nil
	cfg.ComputeDerived()
	return cfg
}

func TestZonesDefaultFood(t *testing.T) {
	z := NewZones(config.Defaults())

	if z.FoodColumns() != 8 {
		t.Fatalf("FoodColumns() = %d, want 8", z.FoodColumns())
	}
	if !z.IsFood(0, 0) || !z.IsFood(127, 7) {
		t.Error("left strip should be food")
	}
	if z.IsFood(0, 8) || z.IsFood(64, 127) {
		t.Error("positions right of the strip should not be food")
	}
}

func TestZonesPoisonSchedule(t *testing.T) {
	z := NewZones(config.Defaults()) // 300 steps, [none, left, none, right]

	tests := []struct {
		step int
		want Region
	}{
		{0, RegionNone},
		{74, RegionNone},
		{75, RegionLeft},
		{149, RegionLeft},
		{150, RegionNone},
		{224, RegionNone},
		{225, RegionRight},
		{299, RegionRight},
		{300, RegionRight},
	}
	for _, tt := range tests {
		if got := z.RegionAt(tt.step); got != tt.want {
			t.Errorf("RegionAt(%d) = %d, want %d", tt.step, got, tt.want)
		}
	}
}

func TestZonesPoisonRegions(t *testing.T) {
	z := NewZones(config.Defaults())

	tests := []struct {
		name          string
		row, col, step int
		want          bool
	}{
		{"quiet first phase", 10, 0, 10, false},
		{"left half in left phase", 10, 63, 100, true},
		{"right half in left phase", 10, 64, 100, false},
		{"left half in right phase", 10, 63, 250, false},
		{"right half in right phase", 10, 64, 250, true},
		{"right edge in right phase", 127, 127, 250, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := z.IsPoison(tt.row, tt.col, tt.step); got != tt.want {
				t.Errorf("IsPoison(%d, %d, %d) = %v, want %v", tt.row, tt.col, tt.step, got, tt.want)
			}
		})
	}
}

func TestZonesNoPhases(t *testing.T) {
	z := NewZones(testConfig(8, 8, 4, 1))
	for step := 0; step < 300; step++ {
		if z.IsPoison(0, 0, step) || z.IsPoison(0, 7, step) {
			t.Fatalf("poison at step %d with no phases configured", step)
		}
	}
}

func TestZonesPoisonColumnsMatchIsPoison(t *testing.T) {
	cfg := testConfig(10, 6, 4, 1)
	cfg.Zones.PoisonPhases = []string{"left", "none", "right"}
	z := NewZones(cfg)
	for step := 0; step < cfg.Generation.Steps; step++ {
		lo, hi := z.PoisonColumns(step)
		for col := 0; col < 10; col++ {
			in := col >= lo && col < hi
			if in != z.IsPoison(0, col, step) {
				t.Fatalf("step %d col %d: range [%d,%d) disagrees with IsPoison", step, col, lo, hi)
			}
		}
	}
}
