package gauge

// OpKind identifies a recorded drawing primitive.
type OpKind int

const (
	OpSetLimits OpKind = iota
	OpHideAxes
	OpFillBetween
	OpLine
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpSetLimits:
		return "SetLimits"
	case OpHideAxes:
		return "HideAxes"
	case OpFillBetween:
		return "FillBetween"
	case OpLine:
		return "Line"
	case OpText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Op is one recorded primitive. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Limits [4]float64
	Points []Point
	Text   string
	Fill   FillStyle
	Stroke LineStyle
	Font   TextStyle
}

// Recorder is a Canvas that keeps the primitives it receives as a display list.
type Recorder struct {
	ops []Op
}

var _ Canvas = (*Recorder)(nil)

// NewRecorder creates an empty display list.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Ops returns the recorded primitives in call order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Find returns the recorded primitives of the given kind in call order.
func (r *Recorder) Find(kind OpKind) []Op {
	var out []Op
	for _, op := range r.ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset clears the display list.
func (r *Recorder) Reset() {
	r.ops = nil
}

func (r *Recorder) SetLimits(xmin, xmax, ymin, ymax float64) {
	r.ops = append(r.ops, Op{Kind: OpSetLimits, Limits: [4]float64{xmin, xmax, ymin, ymax}})
}

func (r *Recorder) HideAxes() {
	r.ops = append(r.ops, Op{Kind: OpHideAxes})
}

func (r *Recorder) FillBetween(xs, ys []float64, style FillStyle) {
	n := min(len(xs), len(ys))
	pts := make([]Point, n)
	for i := range n {
		pts[i] = Point{xs[i], ys[i]}
	}
	r.ops = append(r.ops, Op{Kind: OpFillBetween, Points: pts, Fill: style})
}

func (r *Recorder) Line(x0, y0, x1, y1 float64, style LineStyle) {
	r.ops = append(r.ops, Op{Kind: OpLine, Points: []Point{{x0, y0}, {x1, y1}}, Stroke: style})
}

func (r *Recorder) Text(x, y float64, s string, style TextStyle) {
	r.ops = append(r.ops, Op{Kind: OpText, Points: []Point{{x, y}}, Text: s, Font: style})
}
