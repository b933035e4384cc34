package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sysgauge/internal/gauge"
)

// GaugeModel is one bordered dial panel. It keeps only the latest spec and
// re-rasterizes it from scratch on every View.
type GaugeModel struct {
	spec   gauge.Spec
	ready  bool
	width  int
	height int
}

// NewGaugeModel creates a panel titled title with no reading yet.
func NewGaugeModel(title string) GaugeModel {
	return GaugeModel{spec: gauge.Spec{Title: title}}
}

// SetValue replaces the reading shown by the dial.
func (g *GaugeModel) SetValue(v float64) {
	g.spec.Value = v
	g.ready = true
}

// SetSize sets the outer size of the panel, border included.
func (g *GaugeModel) SetSize(w, h int) {
	g.width = w
	g.height = h
}

// Spec returns the spec the next View will draw.
func (g GaugeModel) Spec() gauge.Spec {
	return g.spec
}

// canvasSize returns the largest dial that fits the panel interior. A
// braille dot is about as wide as it is tall when the canvas is twice as
// many cells wide as it is high, which keeps the square extent round.
func (g GaugeModel) canvasSize() (w, h int) {
	iw, ih := g.width-2, g.height-2
	h = min(ih, iw/2)
	if h < 1 {
		return 0, 0
	}
	return 2 * h, h
}

// View renders the panel.
func (g GaugeModel) View() string {
	iw, ih := g.width-2, g.height-2
	if iw < 1 || ih < 1 {
		return ""
	}

	var body string
	cw, ch := g.canvasSize()
	switch {
	case !g.ready:
		body = placeholderStyle.Render("Waiting for first sample...")
	case cw == 0:
		body = gauge.FormatValue(g.spec.Value)
	default:
		canvas := gauge.NewBrailleCanvas(cw, ch)
		gauge.Draw(canvas, g.spec)
		body = strings.Join(canvas.View(), "\n")
	}

	inner := lipgloss.Place(iw, ih, lipgloss.Center, lipgloss.Center, body)
	return panelStyle.Width(iw).Height(ih).Render(inner)
}
