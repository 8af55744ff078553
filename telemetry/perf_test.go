package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartUpdate()
		pc.StartPhase(PhasePopulate)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseSimulate)
		time.Sleep(200 * time.Microsecond)
		pc.EndUpdate()
	}

	stats := pc.Stats()

	if stats.AvgUpdateDuration <= 0 {
		t.Error("expected positive average update duration")
	}
	if _, ok := stats.PhaseAvg[PhasePopulate]; !ok {
		t.Error("expected populate phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseSimulate]; !ok {
		t.Error("expected simulate phase to be tracked")
	}
	if pc.Units() != 10 {
		t.Errorf("Units() = %d, want 10", pc.Units())
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartUpdate()
		pc.StartPhase(PhaseSimulate)
		time.Sleep(10 * time.Microsecond)
		pc.EndUpdate()
	}

	stats := pc.Stats()
	if stats.AvgUpdateDuration <= 0 {
		t.Error("expected positive average update duration after window filled")
	}
	if stats.UpdatesPerSecond <= 0 {
		t.Error("expected positive updates per second")
	}
	if stats.MinUpdateDuration > stats.MaxUpdateDuration {
		t.Errorf("min %v > max %v", stats.MinUpdateDuration, stats.MaxUpdateDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartUpdate()
		pc.StartPhase(PhaseSelect)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseSimulate)
		time.Sleep(500 * time.Microsecond)
		pc.EndUpdate()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseSimulate] <= stats.PhasePct[PhaseSelect] {
		t.Errorf("expected simulate (%v%%) > select (%v%%)",
			stats.PhasePct[PhaseSimulate], stats.PhasePct[PhaseSelect])
	}

	row := stats.ToCSV(3)
	if row.Generation != 3 || row.SimulatePct != stats.PhasePct[PhaseSimulate] {
		t.Errorf("ToCSV = %+v", row)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := NewPerfCollector(10).Stats()

	if stats.AvgUpdateDuration != 0 {
		t.Error("expected zero avg update duration for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("FPS = %v", stats.FPS)
	}
}
