package gauge

import (
	"math"

	"github.com/agbru/sysgauge/internal/format"
	"github.com/agbru/sysgauge/internal/ui"
)

// Extent is the half-width of the square data extent of a dial.
const Extent = 1.5

// Geometry of the dial, in data units of a unit-radius face.
const (
	arcSamples = 100
	glowRings  = 10
	glowStep   = 0.01
	glowAlpha  = 0.1

	valueTextY = -0.3
	titleTextY = -0.7

	tickCount   = 5
	tickPercent = 25
	tickInner   = 0.9
	tickOuter   = 1.1
	tickLabel   = 1.2

	faceEdgeWidth = 2
	needleWidth   = 3
	tickWidth     = 2
	valueTextSize = 20
	titleTextSize = 12
	tickTextSize  = 10
)

// Dial colours.
const (
	FaceColor   = Color(ui.ColorCharcoal)
	AccentColor = Color(ui.ColorLightBlue)
)

// Spec is what one dial shows for one frame.
type Spec struct {
	Value float64
	Title string
}

// Point is a position in data coordinates.
type Point struct {
	X, Y float64
}

// Tick is one of the fixed scale marks of the dial.
type Tick struct {
	Percent int
	Angle   float64 // radians, counter-clockwise from the positive x-axis
	Inner   Point
	Outer   Point
	Label   Point
}

// Text is the label printed next to the tick.
func (t Tick) Text() string {
	return format.FormatPercent(float64(t.Percent))
}

// NeedleAngle returns the needle angle in radians for a value in percent:
// 0 points right, 50 up, 100 left. The angle is not clamped.
func NeedleAngle(value float64) float64 {
	return math.Pi * (value / 100)
}

// NeedleVector returns the tip of the unit-length needle for value.
func NeedleVector(value float64) (x, y float64) {
	a := NeedleAngle(value)
	return math.Cos(a), math.Sin(a)
}

// FormatValue renders the centre text of the dial.
func FormatValue(value float64) string {
	return format.FormatPercent(value)
}

// Ticks returns the five scale marks. They do not depend on the value shown.
func Ticks() []Tick {
	ticks := make([]Tick, tickCount)
	for i := range ticks {
		pct := i * tickPercent
		a := NeedleAngle(float64(pct))
		c, s := math.Cos(a), math.Sin(a)
		ticks[i] = Tick{
			Percent: pct,
			Angle:   a,
			Inner:   Point{tickInner * c, tickInner * s},
			Outer:   Point{tickOuter * c, tickOuter * s},
			Label:   Point{tickLabel * c, tickLabel * s},
		}
	}
	return ticks
}

// semicircle samples the upper unit half-circle from angle pi down to 0.
func semicircle(n int) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	for k := range n {
		theta := math.Pi * (1 - float64(k)/float64(n-1))
		xs[k] = math.Cos(theta)
		ys[k] = math.Sin(theta)
	}
	return xs, ys
}

func scaled(vs []float64, k float64) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v * k
	}
	return out
}

// Draw renders one dial for s onto c. It keeps no state between calls, so
// drawing the same Spec twice issues the same primitives.
func Draw(c Canvas, s Spec) {
	c.SetLimits(-Extent, Extent, -Extent, Extent)
	c.HideAxes()

	xs, ys := semicircle(arcSamples)
	c.FillBetween(xs, ys, FillStyle{
		Fill:      FaceColor,
		Edge:      AccentColor,
		EdgeWidth: faceEdgeWidth,
		Alpha:     1,
	})

	for i := glowRings; i >= 1; i-- {
		k := 1 + float64(i)*glowStep
		c.FillBetween(scaled(xs, k), scaled(ys, k), FillStyle{
			Fill:  AccentColor,
			Alpha: glowAlpha,
		})
	}

	c.Text(0, valueTextY, FormatValue(s.Value), TextStyle{Color: AccentColor, Size: valueTextSize, Bold: true})
	c.Text(0, titleTextY, s.Title, TextStyle{Color: AccentColor, Size: titleTextSize})

	nx, ny := NeedleVector(s.Value)
	c.Line(0, 0, nx, ny, LineStyle{Color: AccentColor, Width: needleWidth})

	for _, t := range Ticks() {
		c.Line(t.Inner.X, t.Inner.Y, t.Outer.X, t.Outer.Y, LineStyle{Color: AccentColor, Width: tickWidth})
		c.Text(t.Label.X, t.Label.Y, t.Text(), TextStyle{Color: AccentColor, Size: tickTextSize})
	}
}
