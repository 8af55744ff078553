package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/petri/config"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("NewOutputManager(\"\") = %v, %v", om, err)
	}
	// nil receivers are no-ops
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Error(err)
	}
	if err := om.WritePlot([]GenerationStats{{}}); err != nil {
		t.Error(err)
	}
	if om.Dir() != "" || om.Close() != nil {
		t.Error("nil manager should be inert")
	}
}

func TestOutputManagerGenerations(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		s := GenerationStats{RunID: "abc", Generation: i, Survivors: 10 * i, Cells: 100, SurvivorFraction: float64(i) / 10}
		if err := om.WriteGeneration(s); err != nil {
			t.Fatal(err)
		}
	}
	if err := om.WriteBookmark(Bookmark{Type: BookmarkPlateau, Generation: 3, Description: "steady"}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{UpdatesPerSecond: 60}, 3); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, GenerationsFile))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "\n"); n != 4 {
		t.Errorf("generations.csv has %d lines, want header plus 3", n)
	}
	if !strings.HasPrefix(string(data), "run_id,generation,") {
		t.Errorf("unexpected header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}

	var rows []GenerationStats
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2].Generation != 3 || rows[2].Survivors != 30 || rows[1].SurvivorFraction != 0.2 {
		t.Errorf("rows = %+v", rows)
	}

	var marks []Bookmark
	bdata, err := os.ReadFile(filepath.Join(dir, BookmarksFile))
	if err != nil {
		t.Fatal(err)
	}
	if err := gocsv.UnmarshalBytes(bdata, &marks); err != nil {
		t.Fatal(err)
	}
	if len(marks) != 1 || marks[0].Type != BookmarkPlateau {
		t.Errorf("bookmarks = %+v", marks)
	}
}

func TestOutputManagerConfigAndPlot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer om.Close()

	cfg := config.Defaults()
	cfg.Population.Cells = 321
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := config.Load(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Population.Cells != 321 {
		t.Errorf("round-tripped cells = %d", loaded.Population.Cells)
	}

	history := []GenerationStats{
		{Generation: 1, SurvivorFraction: 0.1, SurvivorTrend: 0.1},
		{Generation: 2, SurvivorFraction: 0.3, SurvivorTrend: 0.2},
		{Generation: 3, SurvivorFraction: 0.5, SurvivorTrend: 0.3},
	}
	if err := om.WritePlot(history); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, PlotFile))
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("survivors.png is empty")
	}
}
