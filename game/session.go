package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/telemetry"
)

// Options configures a Session.
type Options struct {
	Seed        int64
	RunID       string // empty generates a random UUID
	OutputDir   string // empty disables file output
	Speed       int    // initial speed; negative uses the configured value
	LogStats    bool   // log GenerationStats at every selection
	TrendWindow int    // generations averaged into the survivor trend
	PerfWindow  int    // updates averaged into perf stats
}

// Session runs a Controller and records what it does.
type Session struct {
	cfg    *config.Config
	ctrl   *Controller
	logger *slog.Logger
	runID  string

	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager
	logStats  bool
	completed int
}

// NewSession creates a session from cfg. On error nothing needs closing.
func NewSession(cfg *config.Config, opts Options) (*Session, error) {
	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := slog.Default().With("run_id", runID)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("opening output: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	s := &Session{
		cfg:       cfg,
		logger:    logger,
		runID:     runID,
		collector: telemetry.NewCollector(runID, cfg.Derived.Amplitude32, opts.TrendWindow),
		bookmarks: telemetry.NewBookmarkDetector(opts.TrendWindow),
		perf:      telemetry.NewPerfCollector(opts.PerfWindow),
		output:    output,
		logStats:  opts.LogStats,
	}

	ctrlOpts := []Option{
		WithLogger(logger),
		WithPhaseHook(func(st State) { s.perf.StartPhase(st.String()) }),
	}
	if opts.Speed >= 0 {
		ctrlOpts = append(ctrlOpts, WithSpeed(opts.Speed))
	}
	s.ctrl = NewController(cfg, rand.New(rand.NewSource(opts.Seed)), ctrlOpts...)
	s.ctrl.OnSelection(s.record)

	logger.Info("session started",
		"seed", opts.Seed,
		"cells", cfg.Population.Cells,
		"genes", cfg.Genome.Genes,
		"steps", cfg.Generation.Steps,
		"output_dir", output.Dir(),
	)
	return s, nil
}

// record turns a selection into telemetry. Write failures are logged and
// do not stop the run.
func (s *Session) record(r SelectionReport) {
	s.completed++

	stats := s.collector.Record(r.Generation, r.Selection, r.Steps, r.Population)
	if s.logStats {
		stats.LogStats()
		s.perf.Stats().LogStats()
	}
	if err := s.output.WriteGeneration(stats); err != nil {
		s.logger.Error("failed to write generation", "error", err)
	}
	if err := s.output.WritePerf(s.perf.Stats(), r.Generation); err != nil {
		s.logger.Error("failed to write perf", "error", err)
	}

	for _, bm := range s.bookmarks.Check(stats) {
		if s.logStats {
			bm.LogBookmark()
		}
		if err := s.output.WriteBookmark(bm); err != nil {
			s.logger.Error("failed to write bookmark", "error", err)
		}
	}
}

// Update runs one speed-multiplied batch of controller work.
func (s *Session) Update() error {
	return s.UpdateUpTo(0)
}

// UpdateUpTo is Update, but stops inside the batch as soon as
// maxGenerations selections have completed (0 = no limit).
func (s *Session) UpdateUpTo(maxGenerations int) error {
	s.perf.StartUpdate()
	err := s.ctrl.UpdateUntil(func() bool { return s.Done(maxGenerations) })
	s.perf.EndUpdate()
	return err
}

// Done reports whether maxGenerations selections have completed.
// A limit of 0 is never done.
func (s *Session) Done(maxGenerations int) bool {
	return maxGenerations > 0 && s.completed >= maxGenerations
}

// RunHeadless updates until maxGenerations selections have completed
// (0 = unlimited) or the controller fails. A paused speed is raised to 1.
func (s *Session) RunHeadless(maxGenerations int) error {
	if s.ctrl.Speed() == 0 {
		s.ctrl.SetSpeed(1)
	}
	for !s.Done(maxGenerations) {
		if err := s.UpdateUpTo(maxGenerations); err != nil {
			return err
		}
	}
	s.logger.Info("max generations reached", "generations", s.completed, "units", s.perf.Units())
	return nil
}

// Close writes the survivor plot, when enabled, and closes output files.
func (s *Session) Close() error {
	var plotErr error
	if s.cfg.Telemetry.Plot {
		plotErr = s.output.WritePlot(s.collector.History())
	}
	return errors.Join(plotErr, s.output.Close())
}

// Controller returns the underlying controller.
func (s *Session) Controller() *Controller { return s.ctrl }

// Collector returns the generation history.
func (s *Session) Collector() *telemetry.Collector { return s.collector }

// Perf returns the update timing collector.
func (s *Session) Perf() *telemetry.PerfCollector { return s.perf }

// RunID returns the run identifier.
func (s *Session) RunID() string { return s.runID }

// Completed returns the number of selections so far.
func (s *Session) Completed() int { return s.completed }

// Config returns the session's configuration.
func (s *Session) Config() *config.Config { return s.cfg }
