package telemetry

import (
	"log/slog"
	"time"
)

// Phase names, one per controller state.
const (
	PhasePopulate = "populate"
	PhaseSimulate = "simulate"
	PhaseSelect   = "select"
)

var phases = []string{PhasePopulate, PhaseSimulate, PhaseSelect}

// PerfSample holds timing data for a single update.
type PerfSample struct {
	UpdateDuration time.Duration
	Phases         map[string]time.Duration
}

// PerfCollector tracks update timing over a rolling window.
// An update is one speed-multiplied batch of controller advances.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	updateStart   time.Time
	phaseStart    time.Time
	lastPhase     string
	units         int

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize is the number of updates to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartUpdate begins timing a new update.
func (p *PerfCollector) StartUpdate() {
	p.updateStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase begins timing a phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
	p.units++
}

// EndUpdate finishes timing the current update and records the sample.
func (p *PerfCollector) EndUpdate() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		UpdateDuration: now.Sub(p.updateStart),
		Phases:         p.currentPhases,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// Units returns the number of phases started since creation.
func (p *PerfCollector) Units() int {
	return p.units
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgUpdateDuration time.Duration
	MinUpdateDuration time.Duration
	MaxUpdateDuration time.Duration

	// Phase breakdown (average durations and share of update time)
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	UpdatesPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	out := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frameDuration,
		FPS:           fps,
	}
	if p.sampleCount == 0 {
		return out
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.UpdateDuration
		if i == 0 || s.UpdateDuration < out.MinUpdateDuration {
			out.MinUpdateDuration = s.UpdateDuration
		}
		out.MaxUpdateDuration = max(out.MaxUpdateDuration, s.UpdateDuration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
	}

	out.AvgUpdateDuration = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		out.PhaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if out.AvgUpdateDuration > 0 {
			out.PhasePct[phase] = float64(out.PhaseAvg[phase]) / float64(out.AvgUpdateDuration) * 100
		}
	}
	if out.AvgUpdateDuration > 0 {
		out.UpdatesPerSecond = float64(time.Second) / float64(out.AvgUpdateDuration)
	}
	return out
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_update_us", s.AvgUpdateDuration.Microseconds(),
		"max_update_us", s.MaxUpdateDuration.Microseconds(),
		"updates_per_sec", int(s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_update_us", s.AvgUpdateDuration.Microseconds()),
		slog.Int64("min_update_us", s.MinUpdateDuration.Microseconds()),
		slog.Int64("max_update_us", s.MaxUpdateDuration.Microseconds()),
		slog.Float64("updates_per_sec", s.UpdatesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Generation    int     `csv:"generation"`
	AvgUpdateUS   int64   `csv:"avg_update_us"`
	MinUpdateUS   int64   `csv:"min_update_us"`
	MaxUpdateUS   int64   `csv:"max_update_us"`
	UpdatesPerSec float64 `csv:"updates_per_sec"`
	FPS           float64 `csv:"fps"`
	PopulatePct   float64 `csv:"populate_pct"`
	SimulatePct   float64 `csv:"simulate_pct"`
	SelectPct     float64 `csv:"select_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(generation int) PerfStatsCSV {
	return PerfStatsCSV{
		Generation:    generation,
		AvgUpdateUS:   s.AvgUpdateDuration.Microseconds(),
		MinUpdateUS:   s.MinUpdateDuration.Microseconds(),
		MaxUpdateUS:   s.MaxUpdateDuration.Microseconds(),
		UpdatesPerSec: s.UpdatesPerSecond,
		FPS:           s.FPS,
		PopulatePct:   s.PhasePct[PhasePopulate],
		SimulatePct:   s.PhasePct[PhaseSimulate],
		SelectPct:     s.PhasePct[PhaseSelect],
	}
}
