package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/telemetry"
)

// ControlsPanel renders the overlay toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a hidden controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Bounds returns the area the panel covers, empty when hidden.
func (c *ControlsPanel) Bounds(overlays *OverlayRegistry) rl.Rectangle {
	if !c.visible {
		return rl.Rectangle{}
	}
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height(overlays))}
}

func (c *ControlsPanel) height(overlays *OverlayRegistry) int32 {
	t := c.renderer.Theme
	items := 0
	for _, cat := range overlays.Categories() {
		items += len(overlays.ByCategory(cat)) + 1
	}
	return int32(items)*t.LineHeight + t.Padding*3 + t.LineHeight
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	if !c.visible {
		return c.y
	}

	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.height(overlays))

	y := c.y + padding
	rl.DrawText("Overlays", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		y = r.DrawSectionHeader(c.x+padding, y, categoryLabel(category))
		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	nameColor := r.Theme.LabelColor
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
		nameColor = rl.White
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "field":
		return "Field"
	case "cells":
		return "Cells"
	case "panels":
		return "Panels"
	default:
		return cat
	}
}

// StatsPanel shows the last recorded generation.
type StatsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition moves the panel.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x, s.y = x, y
}

// Draw renders stats and returns the Y below the panel.
func (s *StatsPanel) Draw(stats telemetry.GenerationStats) int32 {
	r := s.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(s.x, s.y, s.width, lineHeight*11+padding*2)

	x := s.x + padding
	y := r.DrawSectionHeader(x, s.y+padding, fmt.Sprintf("Generation %d", stats.Generation))
	y = r.DrawLabelValue(x, y, "Survivors", fmt.Sprintf("%d / %d", stats.Survivors, stats.Cells))
	y = r.DrawBar(x, y, "Fraction", float32(stats.SurvivorFraction), s.width-padding*2)
	y = r.DrawBar(x, y, "Trend", float32(stats.SurvivorTrend), s.width-padding*2)
	y = r.DrawLabelValue(x, y, "Flips", fmt.Sprintf("%d", stats.Flips))
	y = r.DrawLabelValue(x, y, "Moves", fmt.Sprintf("%d ok, %d blocked", stats.Moved, stats.Blocked))
	y = r.DrawLabelValue(x, y, "Poisoned", fmt.Sprintf("%d", stats.Poisoned))
	y = r.DrawLabelValue(x, y, "Weights", fmt.Sprintf("%+.2f sd %.2f", stats.WeightMean, stats.WeightStd))
	y = r.DrawLabelValue(x, y, "Hues", fmt.Sprintf("%d", stats.DistinctHues))
	y = r.DrawBar(x, y, "Movers", float32(stats.MovingShare), s.width-padding*2)
	return y + padding
}
