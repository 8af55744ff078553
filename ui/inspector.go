package ui

import (
	"fmt"
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/petri/inspector"
	"github.com/pthm-cable/petri/neural"
	"github.com/pthm-cable/petri/renderer"
)

// maxGeneLines caps the gene list; longer genomes show a count of the rest.
const maxGeneLines = 16

// InspectorPanel shows one inspected cell on the right side of the screen.
type InspectorPanel struct {
	renderer     *Renderer
	width        int32
	screenWidth  int32
	screenHeight int32
}

// NewInspectorPanel creates a panel docked to the right edge.
func NewInspectorPanel(screenWidth, screenHeight int32) *InspectorPanel {
	return &InspectorPanel{
		renderer:     NewRenderer(),
		width:        260,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// Resize docks the panel to a new screen size.
func (p *InspectorPanel) Resize(screenWidth, screenHeight int32) {
	p.screenWidth = screenWidth
	p.screenHeight = screenHeight
}

// Bounds returns the panel area.
func (p *InspectorPanel) Bounds() rl.Rectangle {
	return rl.Rectangle{
		X:      float32(p.screenWidth - p.width),
		Y:      0,
		Width:  float32(p.width),
		Height: float32(p.screenHeight),
	}
}

// Draw renders the report. It returns true when the close button was pressed.
func (p *InspectorPanel) Draw(rep inspector.Report, placed bool) bool {
	r := p.renderer
	t := r.Theme
	x0 := p.screenWidth - p.width
	r.DrawPanel(x0, 0, p.width, p.screenHeight)

	closed := gui.Button(rl.Rectangle{X: float32(p.screenWidth - 30), Y: 8, Width: 22, Height: 22}, "x")

	x := x0 + t.Padding
	inner := p.width - t.Padding*2
	y := r.DrawSectionHeader(x, t.Padding, fmt.Sprintf("Cell %d", rep.Index))
	pos := fmt.Sprintf("%d, %d", rep.Row, rep.Col)
	if !placed {
		pos = "removed"
	}
	y = r.DrawLabelValue(x, y, "Position", pos)
	y = r.DrawColorSwatch(x, y, "Hue", toRL(renderer.HueToRGB(rep.Hue)), fmt.Sprintf("%d", rep.Hue))
	y += 6

	y = r.DrawSectionHeader(x, y, "Neurons")
	for i, d := range neural.NeuronDescriptors() {
		v := rep.Neurons[i]
		if d.IsCentered {
			y = r.DrawCenteredBar(x, y, d.Label, v, d.Max, inner)
		} else {
			y = r.DrawBar(x, y, d.Label, v, inner)
		}
	}
	y += 6

	y = r.DrawSectionHeader(x, y, "Wiring")
	y = r.DrawLabelValue(x, y, "Moves", yesNo(rep.Wiring.CanMove()))
	y = r.DrawLabelValue(x, y, "Recurrent", yesNo(rep.Wiring.Recurrent))
	y = r.DrawLabelValue(x, y, "Edges", fmt.Sprintf("%d of %d live", rep.Wiring.Edges, rep.LiveGenes()))
	descs := neural.NeuronDescriptors()
	for _, out := range neural.OutputNeurons() {
		var from []string
		for _, in := range neural.InputNeurons() {
			if rep.Wiring.Drives(in, out) {
				from = append(from, descs[in].Label)
			}
		}
		driven := "-"
		if len(from) > 0 {
			driven = strings.Join(from, ", ")
		}
		y = r.DrawLabelValue(x, y, descs[out].Label, driven)
	}
	y += 6

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Genes (%d)", len(rep.Genes)))
	for i, g := range rep.Genes {
		if i == maxGeneLines {
			rl.DrawText(fmt.Sprintf("... %d more", len(rep.Genes)-i), x, y, t.FontSize, t.DimColor)
			break
		}
		c := t.ValueColor
		if !g.Live {
			c = t.DimColor
		}
		line := fmt.Sprintf("%-6s -> %-6s %+.2f", descs[g.Src].Label, descs[g.Dst].Label, g.Weight)
		rl.DrawText(line, x, y, t.FontSize, c)
		y += t.LineHeight
	}
	return closed
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
