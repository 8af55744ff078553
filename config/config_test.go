package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.World.Width != 128 || cfg.World.Height != 128 {
		t.Errorf("world = %dx%d, want 128x128", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Population.Cells != 1000 {
		t.Errorf("cells = %d, want 1000", cfg.Population.Cells)
	}
	if cfg.Genome.Genes != 12 {
		t.Errorf("genes = %d, want 12", cfg.Genome.Genes)
	}
	if cfg.Mutation.Rarity != 10000 {
		t.Errorf("mutation rarity = %d, want 10000", cfg.Mutation.Rarity)
	}
	if got := strings.Join(cfg.Zones.PoisonPhases, ","); got != "none,left,none,right" {
		t.Errorf("poison phases = %s", got)
	}

	if cfg.Derived.Area != 128*128 {
		t.Errorf("derived area = %d", cfg.Derived.Area)
	}
	if cfg.Derived.FoodCols != 8 {
		t.Errorf("derived food cols = %d, want 8", cfg.Derived.FoodCols)
	}
	if cfg.Derived.Amplitude32 != 4 {
		t.Errorf("derived amplitude = %v, want 4", cfg.Derived.Amplitude32)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "small.yaml")
	data := []byte("world:\n  width: 16\n  height: 8\npopulation:\n  cells: 20\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.World.Width != 16 || cfg.World.Height != 8 || cfg.Population.Cells != 20 {
		t.Errorf("overlay not applied: %+v %+v", cfg.World, cfg.Population)
	}
	// Untouched keys keep their defaults
	if cfg.Generation.Steps != 300 {
		t.Errorf("steps = %d, want default 300", cfg.Generation.Steps)
	}
	if cfg.Derived.FoodCols != 1 {
		t.Errorf("food cols = %d, want 1", cfg.Derived.FoodCols)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMustInit(t *testing.T) {
	defer func() { global = nil }()

	MustInit("")
	if Cfg().World.Width != Defaults().World.Width {
		t.Errorf("Cfg() width = %d, want defaults", Cfg().World.Width)
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("MustInit did not panic on a missing file")
			}
		}()
		MustInit(filepath.Join(t.TempDir(), "missing.yaml"))
	}()
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		want   string
	}{
		{"population fills grid", func(c *Config) { c.Population.Cells = c.World.Width * c.World.Height }, "do not fit"},
		{"no genes", func(c *Config) { c.Genome.Genes = 0 }, "genes"},
		{"zero amplitude", func(c *Config) { c.Genome.WeightAmplitude = 0 }, "weight_amplitude"},
		{"zero rarity", func(c *Config) { c.Mutation.Rarity = 0 }, "rarity"},
		{"no food column", func(c *Config) { c.Zones.FoodDivisor = c.World.Width + 1 }, "no food column"},
		{"unknown phase", func(c *Config) { c.Zones.PoisonPhases = []string{"middle"} }, "middle"},
		{"speed too high", func(c *Config) { c.Speed.Initial = MaxSpeed + 1 }, "speed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.Population.Cells = 42

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Population.Cells != 42 {
		t.Errorf("cells = %d, want 42", loaded.Population.Cells)
	}
}

func TestCfgBeforeInitPanics(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("Cfg() should panic before Init()")
		}
	}()
	Cfg()
}
