package gauge

import (
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/sysgauge/internal/ui"
)

// brailleDots maps (col 0-1, row 0-3) to the braille dot bit offsets.
// Braille character = U+2800 + sum of activated dot bits.
// Column 0: dots 1,2,3,7 (bits 0,1,2,6)
// Column 1: dots 4,5,6,8 (bits 3,4,5,7)
var brailleDots = [2][4]rune{
	{0x01, 0x02, 0x04, 0x40}, // left column
	{0x08, 0x10, 0x20, 0x80}, // right column
}

const brailleBlank rune = 0x2800

type cell struct {
	dots  rune
	color Color
	glow  bool

	// filled holds the dots lit by an opaque fill body in fillColor;
	// knocked holds the dots a stroke cleared out of such a body.
	filled    rune
	fillColor Color
	knocked   rune
}

// plotMode selects how plot treats dots that are already lit.
type plotMode int

const (
	modeFill plotMode = iota
	modeGlow
	modeEdge
	modeStroke
)

type glyph struct {
	r     rune
	color Color
	bold  bool
}

// BrailleCanvas rasterizes primitives into a grid of braille cells.
//
// Opaque fills and strokes light their dots and take over the cell colour.
// Translucent fills only light dots that are still dark and only colour
// cells that are still uncoloured, which renders the halo as a ring around
// whatever was drawn before it. A Line crossing an opaque fill of another
// colour clears the dots it covers, so the stroke stays visible as a gap
// without colour. Text is an overlay drawn on top of the dots.
type BrailleCanvas struct {
	width, rows int
	xmin, xmax  float64
	ymin, ymax  float64
	axesHidden  bool

	cells [][]cell
	text  [][]*glyph
}

var _ Canvas = (*BrailleCanvas)(nil)

// NewBrailleCanvas creates a canvas of width columns by rows text rows.
// Non-positive sizes yield an empty canvas that ignores all drawing.
func NewBrailleCanvas(width, rows int) *BrailleCanvas {
	width = max(width, 0)
	rows = max(rows, 0)
	b := &BrailleCanvas{
		width: width,
		rows:  rows,
		xmax:  1,
		ymax:  1,
		cells: make([][]cell, rows),
		text:  make([][]*glyph, rows),
	}
	for r := range rows {
		b.cells[r] = make([]cell, width)
		b.text[r] = make([]*glyph, width)
	}
	return b
}

func (b *BrailleCanvas) dotCols() int { return b.width * 2 }
func (b *BrailleCanvas) dotRows() int { return b.rows * 4 }

func (b *BrailleCanvas) empty() bool {
	return b.width == 0 || b.rows == 0
}

// SetLimits fixes the data extent mapped onto the full canvas.
func (b *BrailleCanvas) SetLimits(xmin, xmax, ymin, ymax float64) {
	if xmax == xmin || ymax == ymin {
		return
	}
	b.xmin, b.xmax, b.ymin, b.ymax = xmin, xmax, ymin, ymax
}

// HideAxes is a no-op beyond bookkeeping: a braille canvas never draws axes.
func (b *BrailleCanvas) HideAxes() {
	b.axesHidden = true
}

// AxesHidden reports whether HideAxes was called.
func (b *BrailleCanvas) AxesHidden() bool {
	return b.axesHidden
}

// toDot converts data coordinates to fractional dot coordinates
// (0 = left/top, dotCols-1/dotRows-1 = right/bottom).
func (b *BrailleCanvas) toDot(x, y float64) (col, row float64) {
	col = (x - b.xmin) / (b.xmax - b.xmin) * float64(b.dotCols()-1)
	row = (b.ymax - y) / (b.ymax - b.ymin) * float64(b.dotRows()-1)
	return col, row
}

// fromDotCol converts a dot column back to its data x coordinate.
func (b *BrailleCanvas) fromDotCol(col int) float64 {
	if b.dotCols() <= 1 {
		return b.xmin
	}
	return b.xmin + float64(col)/float64(b.dotCols()-1)*(b.xmax-b.xmin)
}

// plot lights one dot. Out-of-range dots are clipped.
func (b *BrailleCanvas) plot(col, row int, color Color, mode plotMode) {
	if col < 0 || row < 0 || col >= b.dotCols() || row >= b.dotRows() {
		return
	}
	c := &b.cells[row/4][col/2]
	bit := brailleDots[col%2][row%4]
	switch mode {
	case modeGlow:
		if c.dots&bit != 0 || c.knocked&bit != 0 {
			return
		}
		c.dots |= bit
		if c.color == "" {
			c.color = color
			c.glow = true
		}
		return
	case modeStroke:
		if c.knocked&bit != 0 {
			c.color = color
			c.glow = false
			return
		}
		if c.filled&bit != 0 && c.fillColor != color {
			c.dots &^= bit
			c.filled &^= bit
			c.knocked |= bit
			c.color = color
			c.glow = false
			return
		}
		c.filled &^= bit
	case modeEdge:
		c.filled &^= bit
	case modeFill:
		c.filled |= bit
		c.fillColor = color
		c.knocked &^= bit
	}
	c.dots |= bit
	c.color = color
	c.glow = false
}

// FillBetween fills the region between the curve and y=0, then strokes the
// outline (curve plus baseline) when the style has an edge colour.
func (b *BrailleCanvas) FillBetween(xs, ys []float64, style FillStyle) {
	n := min(len(xs), len(ys))
	if b.empty() || n < 2 {
		return
	}

	pts := make([]Point, 0, n)
	for i := range n {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			pts = append(pts, Point{xs[i], ys[i]})
		}
	}
	if len(pts) < 2 {
		return
	}
	sorted := make([]Point, len(pts))
	copy(sorted, pts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	mode := modeFill
	if style.Translucent() {
		mode = modeGlow
	}
	for col := range b.dotCols() {
		x := b.fromDotCol(col)
		yc, ok := interpolate(sorted, x)
		if !ok {
			continue
		}
		_, top := b.toDot(x, math.Max(yc, 0))
		_, bottom := b.toDot(x, math.Min(yc, 0))
		for row := int(math.Round(top)); row <= int(math.Round(bottom)); row++ {
			b.plot(col, row, style.Fill, mode)
		}
	}

	if style.Edge == "" {
		return
	}
	edge := LineStyle{Color: style.Edge, Width: style.EdgeWidth}
	for i := 1; i < len(pts); i++ {
		b.stroke(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, edge, modeEdge)
	}
	first, last := pts[0], pts[len(pts)-1]
	b.stroke(first.X, 0, last.X, 0, edge, modeEdge)
}

// Line strokes a segment with Bresenham's algorithm over the dot grid after
// clipping it to the data extent.
func (b *BrailleCanvas) Line(x0, y0, x1, y1 float64, style LineStyle) {
	b.stroke(x0, y0, x1, y1, style, modeStroke)
}

func (b *BrailleCanvas) stroke(x0, y0, x1, y1 float64, style LineStyle, mode plotMode) {
	if b.empty() {
		return
	}
	x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, b.xmin, b.xmax, b.ymin, b.ymax)
	if !ok {
		return
	}
	fc0, fr0 := b.toDot(x0, y0)
	fc1, fr1 := b.toDot(x1, y1)
	c0, r0 := int(math.Round(fc0)), int(math.Round(fr0))
	c1, r1 := int(math.Round(fc1)), int(math.Round(fr1))

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		b.plot(c0, r0, style.Color, mode)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// Text centers s on the cell nearest to (x, y). Characters falling outside
// the canvas are dropped.
func (b *BrailleCanvas) Text(x, y float64, s string, style TextStyle) {
	if b.empty() || s == "" || !isFinite(x) || !isFinite(y) {
		return
	}
	col := (x - b.xmin) / (b.xmax - b.xmin) * float64(b.width-1)
	row := (b.ymax - y) / (b.ymax - b.ymin) * float64(b.rows-1)
	r := int(math.Round(row))
	if r < 0 || r >= b.rows {
		return
	}
	runes := []rune(s)
	start := int(math.Round(col)) - len(runes)/2
	for i, ch := range runes {
		c := start + i
		if c < 0 || c >= b.width {
			continue
		}
		b.text[r][c] = &glyph{r: ch, color: style.Color, bold: style.Bold}
	}
}

// Rows returns the rasterized canvas without styling. Cells with no dots
// and no text are spaces.
func (b *BrailleCanvas) Rows() []string {
	out := make([]string, b.rows)
	for r := range b.rows {
		var sb strings.Builder
		for c := range b.width {
			ch, _, _ := b.cellAt(r, c)
			sb.WriteRune(ch)
		}
		out[r] = sb.String()
	}
	return out
}

// View returns the rasterized canvas styled with the current ui theme, one
// string per row.
func (b *BrailleCanvas) View() []string {
	theme := ui.GetCurrentTUITheme()
	if _, ok := theme.Accent.(lipgloss.NoColor); ok {
		return b.Rows()
	}

	out := make([]string, b.rows)
	for r := range b.rows {
		var sb strings.Builder
		var run strings.Builder
		var runStyle lipgloss.Style
		runKey := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(runStyle.Render(run.String()))
			run.Reset()
		}
		for c := range b.width {
			ch, style, key := b.cellAt(r, c)
			if key != runKey {
				flush()
				runKey = key
				runStyle = b.lipglossStyle(theme, style)
			}
			run.WriteRune(ch)
		}
		flush()
		out[r] = sb.String()
	}
	return out
}

type cellStyle struct {
	color Color
	glow  bool
	bold  bool
}

func (b *BrailleCanvas) cellAt(r, c int) (rune, cellStyle, string) {
	if g := b.text[r][c]; g != nil {
		st := cellStyle{color: g.color, bold: g.bold}
		return g.r, st, styleKey(st)
	}
	cl := b.cells[r][c]
	if cl.dots == 0 {
		return ' ', cellStyle{}, ""
	}
	st := cellStyle{color: cl.color, glow: cl.glow}
	return brailleBlank | cl.dots, st, styleKey(st)
}

func styleKey(s cellStyle) string {
	key := string(s.color)
	if s.glow {
		key += "~"
	}
	if s.bold {
		key += "!"
	}
	return key
}

func (b *BrailleCanvas) lipglossStyle(theme ui.TUITheme, s cellStyle) lipgloss.Style {
	st := lipgloss.NewStyle()
	switch {
	case s.glow:
		st = st.Foreground(theme.GaugeGlow)
	case s.color == FaceColor:
		st = st.Foreground(theme.GaugeFill)
	case s.color != "":
		st = st.Foreground(lipgloss.Color(string(s.color)))
	}
	if s.bold {
		st = st.Bold(true)
	}
	return st
}

// interpolate returns the curve height at x for points sorted by X.
func interpolate(sorted []Point, x float64) (float64, bool) {
	if x < sorted[0].X || x > sorted[len(sorted)-1].X {
		return 0, false
	}
	i := sort.Search(len(sorted), func(i int) bool { return sorted[i].X >= x })
	if i == 0 {
		return sorted[0].Y, true
	}
	p, q := sorted[i-1], sorted[i]
	if q.X == p.X {
		return math.Max(p.Y, q.Y), true
	}
	t := (x - p.X) / (q.X - p.X)
	return p.Y + t*(q.Y-p.Y), true
}

// clipSegment clips a segment to the rectangle with the Liang-Barsky
// algorithm. ok is false when nothing of the segment is visible.
func clipSegment(x0, y0, x1, y1, xmin, xmax, ymin, ymax float64) (cx0, cy0, cx1, cy1 float64, ok bool) {
	if !isFinite(x0) || !isFinite(y0) || !isFinite(x1) || !isFinite(y1) {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - xmin},
		{dx, xmax - x0},
		{-dy, y0 - ymin},
		{dy, ymax - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
