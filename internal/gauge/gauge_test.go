package gauge

import (
	"math"
	"reflect"
	"testing"
)

const eps = 1e-12

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNeedleAngle(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero points right", 0, 0},
		{"half points up", 50, math.Pi / 2},
		{"full points left", 100, math.Pi},
		{"quarter", 25, math.Pi / 4},
		{"over range swings down", 150, 3 * math.Pi / 2},
		{"negative swings below right", -50, -math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := NeedleAngle(tt.value); got != tt.want {
				t.Errorf("NeedleAngle(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestNeedleVector(t *testing.T) {
	t.Parallel()
	tests := []struct {
		value float64
		wantX float64
		wantY float64
	}{
		{0, 1, 0},
		{50, 0, 1},
		{100, -1, 0},
		{150, 0, -1},
	}

	for _, tt := range tests {
		x, y := NeedleVector(tt.value)
		if !near(x, tt.wantX) || !near(y, tt.wantY) {
			t.Errorf("NeedleVector(%v) = (%v, %v), want (%v, %v)", tt.value, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestTicks_FixedPositions(t *testing.T) {
	t.Parallel()
	ticks := Ticks()
	if len(ticks) != 5 {
		t.Fatalf("len(Ticks()) = %d, want 5", len(ticks))
	}

	wantPercent := []int{0, 25, 50, 75, 100}
	wantDegrees := []float64{0, 45, 90, 135, 180}
	wantText := []string{"0%", "25%", "50%", "75%", "100%"}
	for i, tk := range ticks {
		if tk.Percent != wantPercent[i] {
			t.Errorf("tick %d percent = %d, want %d", i, tk.Percent, wantPercent[i])
		}
		if deg := tk.Angle * 180 / math.Pi; !near(deg, wantDegrees[i]) {
			t.Errorf("tick %d angle = %v°, want %v°", i, deg, wantDegrees[i])
		}
		if tk.Text() != wantText[i] {
			t.Errorf("tick %d text = %q, want %q", i, tk.Text(), wantText[i])
		}
		if r := math.Hypot(tk.Label.X, tk.Label.Y); !near(r, 1.2) {
			t.Errorf("tick %d label radius = %v, want 1.2", i, r)
		}
		if r := math.Hypot(tk.Inner.X, tk.Inner.Y); !near(r, 0.9) {
			t.Errorf("tick %d inner radius = %v, want 0.9", i, r)
		}
		if r := math.Hypot(tk.Outer.X, tk.Outer.Y); !near(r, 1.1) {
			t.Errorf("tick %d outer radius = %v, want 1.1", i, r)
		}
	}
}

func TestDraw_PrimitiveOrder(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()
	Draw(rec, Spec{Value: 42, Title: "CPU Usage"})

	ops := rec.Ops()
	// limits, axes, face, 10 glow rings, value, title, needle, 5 x (tick, label)
	if len(ops) != 26 {
		t.Fatalf("len(ops) = %d, want 26", len(ops))
	}

	want := []OpKind{OpSetLimits, OpHideAxes, OpFillBetween}
	for range 10 {
		want = append(want, OpFillBetween)
	}
	want = append(want, OpText, OpText, OpLine)
	for range 5 {
		want = append(want, OpLine, OpText)
	}
	for i, k := range want {
		if ops[i].Kind != k {
			t.Errorf("op %d = %v, want %v", i, ops[i].Kind, k)
		}
	}

	if ops[0].Limits != [4]float64{-1.5, 1.5, -1.5, 1.5} {
		t.Errorf("limits = %v", ops[0].Limits)
	}
}

func TestDraw_Background(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()
	Draw(rec, Spec{Value: 10, Title: "RAM Usage"})

	fills := rec.Find(OpFillBetween)
	face := fills[0]
	if len(face.Points) != 100 {
		t.Fatalf("face samples = %d, want 100", len(face.Points))
	}
	first, last := face.Points[0], face.Points[99]
	if !near(first.X, -1) || !near(first.Y, 0) {
		t.Errorf("face starts at %v, want (-1, 0)", first)
	}
	if last.X != 1 || last.Y != 0 {
		t.Errorf("face ends at %v, want (1, 0)", last)
	}
	for _, p := range face.Points {
		if !near(math.Hypot(p.X, p.Y), 1) {
			t.Fatalf("face point %v is off the unit circle", p)
		}
		if p.Y < -eps {
			t.Fatalf("face point %v is below the x-axis", p)
		}
	}
	if face.Fill.Fill != FaceColor || face.Fill.Edge != AccentColor || face.Fill.Translucent() {
		t.Errorf("face style = %+v", face.Fill)
	}

	// Glow rings shrink from 1.10 to 1.01 and are translucent.
	for i, ring := range fills[1:] {
		wantRadius := 1 + float64(10-i)*0.01
		r := math.Hypot(ring.Points[50].X, ring.Points[50].Y)
		if math.Abs(r-wantRadius) > 1e-9 {
			t.Errorf("ring %d radius = %v, want %v", i, r, wantRadius)
		}
		if !ring.Fill.Translucent() {
			t.Errorf("ring %d should be translucent", i)
		}
	}
}

func TestDraw_Scenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		spec     Spec
		wantText string
		wantTipX float64
		wantTipY float64
	}{
		{"idle cpu", Spec{Value: 0, Title: "CPU Usage"}, "0%", 1, 0},
		{"full ram", Spec{Value: 100, Title: "RAM Usage"}, "100%", -1, 0},
		{"half", Spec{Value: 50, Title: "CPU Usage"}, "50%", 0, 1},
		{"summed multi-core cpu", Spec{Value: 150, Title: "CPU Usage"}, "150%", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := NewRecorder()
			Draw(rec, tt.spec)

			texts := rec.Find(OpText)
			if texts[0].Text != tt.wantText {
				t.Errorf("value text = %q, want %q", texts[0].Text, tt.wantText)
			}
			if p := texts[0].Points[0]; p.X != 0 || p.Y != -0.3 {
				t.Errorf("value text at %v, want (0, -0.3)", p)
			}
			if texts[1].Text != tt.spec.Title {
				t.Errorf("title = %q, want %q", texts[1].Text, tt.spec.Title)
			}
			if p := texts[1].Points[0]; p.X != 0 || p.Y != -0.7 {
				t.Errorf("title at %v, want (0, -0.7)", p)
			}

			needle := rec.Find(OpLine)[0]
			origin, tip := needle.Points[0], needle.Points[1]
			if origin.X != 0 || origin.Y != 0 {
				t.Errorf("needle origin = %v, want (0, 0)", origin)
			}
			if !near(tip.X, tt.wantTipX) || !near(tip.Y, tt.wantTipY) {
				t.Errorf("needle tip = %v, want (%v, %v)", tip, tt.wantTipX, tt.wantTipY)
			}
		})
	}
}

func TestDraw_Idempotent(t *testing.T) {
	t.Parallel()
	spec := Spec{Value: 37.5, Title: "CPU Usage"}

	first := NewRecorder()
	Draw(first, spec)
	second := NewRecorder()
	Draw(second, spec)

	if !reflect.DeepEqual(first.Ops(), second.Ops()) {
		t.Error("drawing the same spec twice should record identical primitives")
	}
}

func TestDraw_NonFiniteValuesDoNotPanic(t *testing.T) {
	t.Parallel()
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1), -1e300, 1e300} {
		rec := NewRecorder()
		Draw(rec, Spec{Value: v, Title: "CPU Usage"})

		canvas := NewBrailleCanvas(30, 15)
		Draw(canvas, Spec{Value: v, Title: "CPU Usage"})
		if len(canvas.Rows()) != 15 {
			t.Errorf("value %v: unexpected row count", v)
		}
	}
}

func TestRecorder_Reset(t *testing.T) {
	t.Parallel()
	rec := NewRecorder()
	Draw(rec, Spec{Value: 1, Title: "x"})
	rec.Reset()
	if len(rec.Ops()) != 0 {
		t.Errorf("expected empty display list after Reset, got %d ops", len(rec.Ops()))
	}
}
