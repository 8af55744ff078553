package ui

import (
	"io"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/camera"
	"github.com/pthm-cable/petri/game"
	"github.com/pthm-cable/petri/inspector"
	"github.com/pthm-cable/petri/neural"
	"github.com/pthm-cable/petri/renderer"
)

const controlsLegend = "Up/Down: speed | Space: pause | Click: inspect | Wheel: zoom | Right drag: pan | Home: reset | Tab: overlays"

// App drives a session from the raylib window loop.
type App struct {
	session *game.Session
	cam     *camera.Camera
	logger  *slog.Logger
	out     io.Writer // inspected cells are printed here

	hud        *HUD
	overlays   *OverlayRegistry
	controls   *ControlsPanel
	stats      *StatsPanel
	perfPanel  *PerfPanel
	inspectUI  *InspectorPanel
	theme      Theme
	width      int32
	height     int32
	lastSpeed  int
	selected   int32
	selectGen  int
	selectRep  inspector.Report
	movers     map[int32]bool
	moversGen  int
}

// NewApp creates an App for a window of the given size. The window must
// already be open.
func NewApp(session *game.Session, width, height int32, out io.Writer) *App {
	cfg := session.Config()
	return &App{
		session:   session,
		cam:       camera.New(float32(width), float32(height), cfg.World.Width, cfg.World.Height),
		logger:    slog.Default().With("run_id", session.RunID()),
		out:       out,
		hud:       NewHUD(),
		overlays:  NewOverlayRegistry(),
		controls:  NewControlsPanel(10, hudHeight+10, 220),
		stats:     NewStatsPanel(10, hudHeight+10, 260),
		perfPanel: NewPerfPanel(10, hudHeight+10, 260),
		inspectUI: NewInspectorPanel(width, height),
		theme:     DefaultTheme(),
		width:     width,
		height:    height,
		lastSpeed: max(session.Controller().Speed(), 1),
		selected:  -1,
	}
}

// Run loops until the window is closed, maxGenerations selections have
// completed (0 = unlimited) or the session fails.
func (a *App) Run(maxGenerations int) error {
	for !rl.WindowShouldClose() {
		a.handleInput()
		if err := a.session.UpdateUpTo(maxGenerations); err != nil {
			return err
		}
		a.Draw()
		a.session.Perf().RecordFrame()

		if a.session.Done(maxGenerations) {
			a.logger.Info("max generations reached", "generations", a.session.Completed())
			break
		}
	}
	return nil
}

func (a *App) handleInput() {
	a.handleResize()
	ctrl := a.session.Controller()

	if rl.IsKeyPressed(rl.KeyUp) {
		a.logSpeed(ctrl.Faster())
	}
	if rl.IsKeyPressed(rl.KeyDown) {
		a.logSpeed(ctrl.Slower())
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		a.controls.Toggle()
	}
	for id, on := range a.overlays.HandleKeys() {
		a.logger.Info("overlay", "id", string(id), "enabled", on)
	}

	a.handleCameraInput()

	if rl.IsMouseButtonReleased(rl.MouseButtonLeft) {
		a.inspectAt(rl.GetMousePosition())
	}
}

func (a *App) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	a.width = int32(rl.GetScreenWidth())
	a.height = int32(rl.GetScreenHeight())
	a.cam.Resize(float32(a.width), float32(a.height))
	a.inspectUI.Resize(a.width, a.height)
}

func (a *App) handleCameraInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		m := rl.GetMousePosition()
		a.cam.ZoomAt(1+wheel*0.1, m.X, m.Y)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		a.cam.ZoomAt(1.25, float32(a.width)/2, float32(a.height)/2)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		a.cam.ZoomAt(0.8, float32(a.width)/2, float32(a.height)/2)
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		d := rl.GetMouseDelta()
		a.cam.Pan(-d.X, -d.Y)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.cam.Reset()
	}
}

func (a *App) logSpeed(speed int) {
	if speed > 0 {
		a.lastSpeed = speed
	}
	a.logger.Info("speed", "speed", speed)
}

func (a *App) togglePause() {
	ctrl := a.session.Controller()
	if ctrl.Speed() == 0 {
		a.logSpeed(ctrl.SetSpeed(a.lastSpeed))
		return
	}
	a.logSpeed(ctrl.SetSpeed(0))
}

// overUI reports whether a screen point lies on a panel or the HUD.
func (a *App) overUI(p rl.Vector2) bool {
	if rl.CheckCollisionPointRec(p, a.hud.Bounds()) {
		return true
	}
	if rl.CheckCollisionPointRec(p, a.controls.Bounds(a.overlays)) {
		return true
	}
	return a.selected >= 0 && rl.CheckCollisionPointRec(p, a.inspectUI.Bounds())
}

// inspectAt selects the cell under p and prints its genome.
func (a *App) inspectAt(p rl.Vector2) {
	if a.overUI(p) {
		return
	}
	row, col, ok := a.cam.ScreenToCell(p.X, p.Y)
	if !ok {
		return
	}
	snap := a.session.Controller().Snapshot()
	idx, ok := snap.Occupant(row, col)
	if !ok {
		return
	}

	rep := inspector.Inspect(idx, row, col, snap.Genome(idx), snap.Neurons(idx), snap.Amplitude())
	a.selected = idx
	a.selectGen = snap.Generation
	a.selectRep = rep

	if _, err := rep.WriteTo(a.out); err != nil {
		a.logger.Error("failed to print cell", "error", err)
	}
	a.logger.Info("inspect", "cell", rep)
}

// moverSet returns which cells of the current generation can move at all.
// Genomes are fixed within a generation, so the set is built once per generation.
func (a *App) moverSet(snap game.Snapshot) map[int32]bool {
	if a.movers != nil && a.moversGen == snap.Generation {
		return a.movers
	}
	a.movers = make(map[int32]bool, snap.Cells())
	a.moversGen = snap.Generation
	snap.Scan(func(_, _ int, idx int32) {
		a.movers[idx] = inspector.AnalyzeWiring(snap.Genome(idx)).CanMove()
	})
	return a.movers
}

// Draw renders one frame.
func (a *App) Draw() {
	ctrl := a.session.Controller()
	snap := ctrl.Snapshot()

	if a.selected >= 0 && snap.Generation != a.selectGen {
		a.selected = -1
	}

	rl.BeginDrawing()
	rl.ClearBackground(toRL(renderer.Backdrop))

	a.drawField(snap)
	a.drawCells(snap)
	placed := a.refreshSelection(snap)

	action := a.hud.Draw(HUDData{
		Title:      "Petri",
		Generation: snap.Generation,
		State:      snap.State.String(),
		Step:       snap.Step,
		Steps:      a.session.Config().Generation.Steps,
		Alive:      snap.Alive(),
		Cells:      snap.Cells(),
		Speed:      snap.Speed,
		FPS:        rl.GetFPS(),
		Survivors:  snap.LastSelection.Percent(),
		HasLast:    a.session.Completed() > 0,
	})
	switch action {
	case SpeedSlower:
		a.logSpeed(ctrl.Slower())
	case SpeedFaster:
		a.logSpeed(ctrl.Faster())
	case SpeedPause:
		a.togglePause()
	}

	y := a.controls.Draw(a.overlays) + 10
	if last, ok := a.session.Collector().Last(); ok && a.overlays.IsEnabled(OverlayStats) {
		a.stats.SetPosition(10, y)
		y = a.stats.Draw(last) + 10
	}
	if a.overlays.IsEnabled(OverlayPerf) {
		a.perfPanel.SetPosition(10, y)
		a.perfPanel.Draw(a.session.Perf().Stats())
	}

	if a.selected >= 0 && a.inspectUI.Draw(a.selectRep, placed) {
		a.selected = -1
	}

	a.hud.DrawControls(a.height, controlsLegend)
	rl.EndDrawing()
}

// drawField paints the field, its zones and optional grid lines.
func (a *App) drawField(snap game.Snapshot) {
	fw, fh := a.cam.FieldSize()
	rl.DrawRectangleV(rl.NewVector2(a.cam.X, a.cam.Y), rl.NewVector2(fw, fh), toRL(renderer.Field))

	size := a.cam.CellSize()
	if a.overlays.IsEnabled(OverlayZones) {
		zones := snap.Zones()
		rows := float32(snap.Height())
		if n := zones.FoodColumns(); n > 0 {
			rl.DrawRectangleV(rl.NewVector2(a.cam.X, a.cam.Y), rl.NewVector2(float32(n)*size, rows*size), toRL(renderer.Food))
		}
		if lo, hi := zones.PoisonColumns(snap.Step); hi > lo {
			x, y := a.cam.CellToScreen(0, lo)
			rl.DrawRectangleV(rl.NewVector2(x, y), rl.NewVector2(float32(hi-lo)*size, rows*size), toRL(renderer.Poison))
		}
	}

	if a.overlays.IsEnabled(OverlayGrid) && size >= 4 {
		for col := 0; col <= snap.Width(); col++ {
			x := a.cam.X + float32(col)*size
			rl.DrawLineV(rl.NewVector2(x, a.cam.Y), rl.NewVector2(x, a.cam.Y+fh), a.theme.GridLine)
		}
		for row := 0; row <= snap.Height(); row++ {
			y := a.cam.Y + float32(row)*size
			rl.DrawLineV(rl.NewVector2(a.cam.X, y), rl.NewVector2(a.cam.X+fw, y), a.theme.GridLine)
		}
	}
}

// refreshSelection rebuilds the inspected report from snap and reports
// whether the selected cell is still on the grid.
func (a *App) refreshSelection(snap game.Snapshot) bool {
	if a.selected < 0 {
		return false
	}
	pos, ok := snap.Locate(a.selected)
	if !ok {
		return false
	}
	a.selectRep = inspector.Inspect(a.selected, pos.Row, pos.Col, snap.Genome(a.selected), snap.Neurons(a.selected), snap.Amplitude())
	return true
}

// drawCells draws every placed cell.
// It reports whether the inspected cell is still on the grid.
func (a *App) drawCells(snap game.Snapshot) {
	var movers map[int32]bool
	if a.overlays.IsEnabled(OverlayMovers) {
		movers = a.moverSet(snap)
	}
	activity := a.overlays.IsEnabled(OverlayActivity)

	snap.Scan(func(row, col int, idx int32) {
		if !a.cam.IsVisible(row, col) {
			return
		}

		c := renderer.HueToRGB(snap.Hue(idx))
		switch {
		case activity:
			c = renderer.Activation(snap.Neurons(idx)[neural.OutputMoveX])
		case movers != nil && !movers[idx]:
			c = renderer.Blend(c, renderer.Field, 0.75)
		}
		cx, cy, radius := a.cam.CellCenter(row, col)
		rl.DrawCircleV(rl.NewVector2(cx, cy), radius, toRL(c))

		if idx == a.selected {
			x, y := a.cam.CellToScreen(row, col)
			s := a.cam.CellSize()
			rl.DrawRectangleLinesEx(rl.Rectangle{X: x - 1, Y: y - 1, Width: s + 2, Height: s + 2}, 2, a.theme.Selection)
		}
	})
}
