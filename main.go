package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/config"
	"github.com/pthm-cable/petri/game"
	"github.com/pthm-cable/petri/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Log generation and perf stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config snapshot and plot")
	runID := flag.String("run-id", "", "Run identifier (empty = random UUID)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 0, "Stop after N generations (0 = unlimited)")
	speed := flag.Int("speed", -1, "Initial advances per update, 0-256 (-1 = use config)")
	trendWindow := flag.Int("trend-window", 0, "Generations averaged into the survivor trend (0 = default)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		RunID:       *runID,
		OutputDir:   *outputDir,
		Speed:       *speed,
		LogStats:    *logStats,
		TrendWindow: *trendWindow,
	}

	var err error
	if *headless {
		err = runHeadless(cfg, opts, *maxGenerations)
	} else {
		err = runWindow(cfg, opts, *maxGenerations)
	}
	if err != nil {
		slog.Error("simulation stopped", "error", err)
		os.Exit(1)
	}
}

// runHeadless is a pure CPU run with no raylib calls.
func runHeadless(cfg *config.Config, opts game.Options, maxGenerations int) (err error) {
	s, err := game.NewSession(cfg, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_generations", maxGenerations,
		"speed", s.Controller().Speed(),
	)
	return s.RunHeadless(maxGenerations)
}

func runWindow(cfg *config.Config, opts game.Options, maxGenerations int) (err error) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Petri")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	s, err := game.NewSession(cfg, opts)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.Close()) }()

	app := ui.NewApp(s, int32(cfg.Screen.Width), int32(cfg.Screen.Height), os.Stdout)
	return app.Run(maxGenerations)
}
