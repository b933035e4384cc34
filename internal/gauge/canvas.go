package gauge

// Color is a hex colour ("#RRGGBB") understood by every Canvas.
type Color string

// FillStyle describes a filled region and its optional outline.
type FillStyle struct {
	Fill      Color
	Edge      Color   // empty means no outline
	EdgeWidth float64 // in points; informational for raster canvases
	// Alpha is the fill opacity in (0, 1]. Zero is treated as opaque.
	Alpha float64
}

// Translucent reports whether the fill lets what is underneath show through.
func (s FillStyle) Translucent() bool {
	return s.Alpha > 0 && s.Alpha < 1
}

// LineStyle describes a stroked segment.
type LineStyle struct {
	Color Color
	Width float64
}

// TextStyle describes a centered text label.
type TextStyle struct {
	Color Color
	Size  float64
	Bold  bool
}

// Canvas is a drawing target with data coordinates. All text is centered
// horizontally and vertically on its anchor.
type Canvas interface {
	// SetLimits fixes the visible data extent.
	SetLimits(xmin, xmax, ymin, ymax float64)
	// HideAxes suppresses axis lines, ticks and labels of the target.
	HideAxes()
	// FillBetween fills the region between the curve (xs[i], ys[i]) and y=0.
	FillBetween(xs, ys []float64, style FillStyle)
	// Line strokes the segment (x0, y0)-(x1, y1).
	Line(x0, y0, x1, y1 float64, style LineStyle)
	// Text places s centered on (x, y).
	Text(x, y float64, s string, style TextStyle)
}
