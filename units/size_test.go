package units

import (
	"math"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// reference context from a 1920 px wide, 300 mm wide screen at 570 mm.
var (
	refWindow = PixelSize{Width: 1920, Height: 1080}
	refScreen = PhysicalScreen{PixelDensity: 1920.0 / 300.0, ViewingDistance: 570}
)

func TestUnitEval(t *testing.T) {
	tests := []struct {
		name string
		size Size
		want float64
	}{
		{"pixels", Pixels(12.5), 12.5},
		{"negative pixels", Pixels(-3), -3},
		{"viewport width", ViewportWidth(0.5), 960},
		{"viewport height", ViewportHeight(0.25), 270},
		{"millimeters", Millimeters(10), 64},
		{"centimeters", Centimeters(1), 64},
		{"inches", Inches(1), 25.4 * 6.4},
		{"points", Points(72), 25.4 * 6.4},
		{"quotient", Div(Pixels(10), 4), 2.5},
		{"product", Mul(ViewportWidth(0.5), 2), 1920},
		{"sum", Add(Pixels(10), Millimeters(1)), 16.4},
		{"difference", Sub(ViewportHeight(1), Pixels(80)), 1000},
		{"negation", Neg(Pixels(7)), -7},
		{"nested", Add(Mul(Pixels(2), 3), Div(Sub(Pixels(10), Pixels(4)), 2)), 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.size.Eval(refWindow, refScreen)
			if !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("%v.Eval() = %v, want %v", tt.size, got, tt.want)
			}
		})
	}
}

func TestDegreesEval(t *testing.T) {
	got := Degrees(1).Eval(refWindow, refScreen)
	want := 2 * 570 * math.Tan(0.5*math.Pi/180) * (1920.0 / 300.0)
	if math.Abs(got-want)/want > 1e-3 {
		t.Errorf("Degrees(1).Eval() = %v, want %v", got, want)
	}

	mm := Degrees(1).ToMillimeters(570)
	if !approxEqual(float64(mm), 2*570*math.Tan(0.5*math.Pi/180), 1e-12) {
		t.Errorf("ToMillimeters = %v", mm)
	}
}

func TestEvalIsPure(t *testing.T) {
	s := Add(Degrees(2.5), Sub(ViewportWidth(0.1), Neg(Centimeters(3))))
	first := s.Eval(refWindow, refScreen)
	for i := range 10 {
		if got := s.Eval(refWindow, refScreen); got != first {
			t.Fatalf("evaluation %d = %v, want %v", i, got, first)
		}
	}
}

func TestEvalTracksContext(t *testing.T) {
	s := ViewportWidth(0.5)
	if got := s.Eval(PixelSize{Width: 800, Height: 600}, refScreen); got != 400 {
		t.Errorf("after resize Eval() = %v, want 400", got)
	}

	d := Degrees(1)
	near := d.Eval(refWindow, PhysicalScreen{PixelDensity: 6.4, ViewingDistance: 500})
	far := d.Eval(refWindow, PhysicalScreen{PixelDensity: 6.4, ViewingDistance: 1000})
	if !(far > near) {
		t.Errorf("1deg at 1000mm (%v) should be larger than at 500mm (%v)", far, near)
	}
}

func TestArithmeticLaws(t *testing.T) {
	sizes := []Size{
		Pixels(3), ViewportWidth(0.2), ViewportHeight(0.7), Degrees(1.5),
		Millimeters(4), Centimeters(-2), Inches(0.5), Points(12),
	}
	for _, a := range sizes {
		for _, b := range sizes {
			ea, eb := a.Eval(refWindow, refScreen), b.Eval(refWindow, refScreen)
			if got := Add(a, b).Eval(refWindow, refScreen); !approxEqual(got, ea+eb, 1e-9) {
				t.Errorf("(%v + %v) = %v, want %v", a, b, got, ea+eb)
			}
			if got := Sub(a, b).Eval(refWindow, refScreen); !approxEqual(got, ea-eb, 1e-9) {
				t.Errorf("(%v - %v) = %v, want %v", a, b, got, ea-eb)
			}
		}
		if got := Neg(a).Eval(refWindow, refScreen); got != -a.Eval(refWindow, refScreen) {
			t.Errorf("-%v = %v, want %v", a, got, -a.Eval(refWindow, refScreen))
		}
	}
}

func TestUnitConversionConsistency(t *testing.T) {
	screens := []PhysicalScreen{
		refScreen,
		{PixelDensity: 3.78, ViewingDistance: 1000},
		{PixelDensity: 10, ViewingDistance: 57},
	}
	for _, screen := range screens {
		cm := Centimeters(1).Eval(refWindow, screen)
		mm := Millimeters(10).Eval(refWindow, screen)
		if !approxEqual(cm, mm, 1e-9) {
			t.Errorf("1cm = %v, 10mm = %v", cm, mm)
		}
		in := Inches(1).Eval(refWindow, screen)
		mmIn := Millimeters(25.4).Eval(refWindow, screen)
		if !approxEqual(in, mmIn, 1e-9) {
			t.Errorf("1in = %v, 25.4mm = %v", in, mmIn)
		}
		pt := Points(72).Eval(refWindow, screen)
		if !approxEqual(pt, in, 1e-9) {
			t.Errorf("72pt = %v, 1in = %v", pt, in)
		}
	}
}

func TestMillimetersMatchesPhysicalWidth(t *testing.T) {
	// mm * width_px / width_mm must equal mm * density.
	widthMM := refScreen.WidthMM(refWindow.Width)
	if !approxEqual(widthMM, 300, 1e-9) {
		t.Fatalf("WidthMM = %v, want 300", widthMM)
	}
	want := 42 * float64(refWindow.Width) / widthMM
	if got := Millimeters(42).Eval(refWindow, refScreen); !approxEqual(got, want, 1e-9) {
		t.Errorf("Millimeters(42) = %v, want %v", got, want)
	}
}

func TestArithmeticDoesNotEvaluate(t *testing.T) {
	s := Add(ViewportWidth(0.5), Pixels(1))
	sum, ok := s.(Sum)
	if !ok {
		t.Fatalf("Add returned %T, want Sum", s)
	}
	if sum.A != ViewportWidth(0.5) || sum.B != Pixels(1) {
		t.Errorf("Add operands = %v, %v", sum.A, sum.B)
	}
	if p, ok := Neg(Pixels(2)).(Product); !ok || p.Factor != -1 {
		t.Errorf("Neg = %#v, want Product with factor -1", Neg(Pixels(2)))
	}
}

func TestContext(t *testing.T) {
	ctx := Context{Window: refWindow, Screen: refScreen}
	if got := ctx.Eval(ViewportWidth(0.5)); got != 960 {
		t.Errorf("ctx.Eval = %v, want 960", got)
	}
	x, y := ctx.EvalPair(ViewportWidth(1), ViewportHeight(1))
	if x != 1920 || y != 1080 {
		t.Errorf("EvalPair = (%v, %v), want (1920, 1080)", x, y)
	}
}

func BenchmarkSizeEval(b *testing.B) {
	s := Add(Degrees(2), Sub(ViewportWidth(0.25), Div(Millimeters(10), 3)))
	b.ReportAllocs()
	for b.Loop() {
		_ = s.Eval(refWindow, refScreen)
	}
}
