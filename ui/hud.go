package ui

import (
	"fmt"
	"time"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Generation int
	State      string
	Step       int
	Steps      int
	Alive      int
	Cells      int
	Speed      int
	FPS        int32
	Survivors  int // last selection's survivor percentage
	HasLast    bool
}

// SpeedAction is what the HUD's speed buttons asked for this frame.
type SpeedAction int

const (
	SpeedNone SpeedAction = iota
	SpeedSlower
	SpeedFaster
	SpeedPause
)

const hudHeight = 104

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Bounds returns the screen area the HUD reacts to clicks in.
func (h *HUD) Bounds() rl.Rectangle {
	return rl.Rectangle{X: 0, Y: 0, Width: 360, Height: hudHeight}
}

// Draw renders the HUD and returns the speed button pressed, if any.
func (h *HUD) Draw(data HUDData) SpeedAction {
	rl.DrawRectangle(0, 0, 360, hudHeight, h.renderer.Theme.PanelBg)

	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Gen: %d | %s %d/%d | Alive: %d/%d", data.Generation, data.State, data.Step, data.Steps, data.Alive, data.Cells),
		10, 35, 16, rl.LightGray,
	)

	last := "-"
	if data.HasLast {
		last = fmt.Sprintf("%d%%", data.Survivors)
	}
	rl.DrawText(fmt.Sprintf("Survived: %s | FPS: %d", last, data.FPS), 10, 55, 16, rl.LightGray)

	action := SpeedNone
	if gui.Button(rl.Rectangle{X: 10, Y: 76, Width: 36, Height: 22}, "<<") {
		action = SpeedSlower
	}
	pauseText := "||"
	if data.Speed == 0 {
		pauseText = ">"
	}
	if gui.Button(rl.Rectangle{X: 50, Y: 76, Width: 36, Height: 22}, pauseText) {
		action = SpeedPause
	}
	if gui.Button(rl.Rectangle{X: 90, Y: 76, Width: 36, Height: 22}, ">>") {
		action = SpeedFaster
	}

	speedColor := rl.LightGray
	speedText := fmt.Sprintf("Speed: %dx", data.Speed)
	if data.Speed == 0 {
		speedColor = rl.Yellow
		speedText = "PAUSED"
	}
	rl.DrawText(speedText, 136, 80, 16, speedColor)
	return action
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.DarkGray)
}

// PerfPanel renders update timings by phase.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel and returns the Y below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	phases := []string{telemetry.PhasePopulate, telemetry.PhaseSimulate, telemetry.PhaseSelect}

	r.DrawPanel(p.x, p.y, p.width, r.Theme.LineHeight*int32(5+len(phases))+padding*2)

	x := p.x + padding
	y := r.DrawSectionHeader(x, p.y+padding, "Performance")
	y = r.DrawLabelValue(x, y, "Update", formatDuration(stats.AvgUpdateDuration))
	y = r.DrawLabelValue(x, y, "Max", formatDuration(stats.MaxUpdateDuration))
	y = r.DrawLabelValue(x, y, "Updates/s", fmt.Sprintf("%.0f", stats.UpdatesPerSecond))
	y = r.DrawLabelValue(x, y, "Frame", formatDuration(stats.FrameDuration))
	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, float32(stats.PhasePct[phase]/100), p.width-padding*2)
	}
	return y + padding
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Millisecond:
		return fmt.Sprintf("%.2fms", float64(d)/float64(time.Millisecond))
	default:
		return fmt.Sprintf("%dus", d.Microseconds())
	}
}
