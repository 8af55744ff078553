package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/petri/config"
)

// Output file names inside the run directory.
const (
	GenerationsFile = "generations.csv"
	PerfFile        = "perf.csv"
	BookmarksFile   = "bookmarks.csv"
	ConfigFile      = "config.yaml"
	PlotFile        = "survivors.png"
)

// OutputManager writes a run's experiment output.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	perfFile        *os.File
	bookmarkFile    *os.File

	// Track if headers have been written
	generationsHeaderWritten bool
	perfHeaderWritten        bool
	bookmarkHeaderWritten    bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods accept a nil receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, GenerationsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", GenerationsFile, err)
	}

	om := &OutputManager{dir: dir, generationsFile: f}

	f, err = os.Create(filepath.Join(dir, PerfFile))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating %s: %w", PerfFile, err)
	}
	om.perfFile = f

	f, err = os.Create(filepath.Join(dir, BookmarksFile))
	if err != nil {
		om.generationsFile.Close()
		om.perfFile.Close()
		return nil, fmt.Errorf("creating %s: %w", BookmarksFile, err)
	}
	om.bookmarkFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteGeneration appends a record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.generationsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generations: %w", err)
		}
		om.generationsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generations: %w", err)
		}
	}

	return nil
}

// WritePerf appends a performance record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}

	records := []PerfStatsCSV{stats.ToCSV(generation)}

	if !om.perfHeaderWritten {
		if err := gocsv.Marshal(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
		om.perfHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.perfFile); err != nil {
			return fmt.Errorf("writing perf: %w", err)
		}
	}

	return nil
}

// WriteBookmark appends a bookmark to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}

	records := []Bookmark{b}

	if !om.bookmarkHeaderWritten {
		if err := gocsv.Marshal(records, om.bookmarkFile); err != nil {
			return fmt.Errorf("writing bookmark: %w", err)
		}
		om.bookmarkHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.bookmarkFile); err != nil {
			return fmt.Errorf("writing bookmark: %w", err)
		}
	}

	return nil
}

// WritePlot renders the survivor history to survivors.png.
func (om *OutputManager) WritePlot(history []GenerationStats) error {
	if om == nil || len(history) == 0 {
		return nil
	}
	if err := SurvivorPlot(history, filepath.Join(om.dir, PlotFile)); err != nil {
		return fmt.Errorf("writing %s: %w", PlotFile, err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.generationsFile, om.perfFile, om.bookmarkFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
