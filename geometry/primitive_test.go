package geometry

import (
	"testing"

	"github.com/gogpu/psykit/units"
)

func TestShapeResolve(t *testing.T) {
	ctx := units.Context{Window: units.PixelSize{Width: 800, Height: 600}, Screen: testScreen}

	rect := RectangleShape{
		X:      units.ViewportWidth(0.25),
		Y:      units.Pixels(10),
		Width:  units.ViewportWidth(0.5),
		Height: units.ViewportHeight(0.5),
	}
	if got, want := rect.Resolve(ctx), (Rect{X: 200, Y: 10, W: 400, H: 300}); got != want {
		t.Errorf("rect = %+v, want %+v", got, want)
	}

	moved := rect.Offset(units.Pixels(5), units.Pixels(-10)).Resolve(ctx)
	if got, want := moved, (Rect{X: 205, Y: 0, W: 400, H: 300}); got != want {
		t.Errorf("offset rect = %+v, want %+v", got, want)
	}

	circle := CircleShape{Radius: units.Pixels(4)}.Offset(units.Pixels(1), units.Pixels(2))
	if got, want := circle.Resolve(ctx), (Circle{CX: 1, CY: 2, R: 4}); got != want {
		t.Errorf("circle = %+v, want %+v", got, want)
	}

	line := LineShape{X2: units.Pixels(10), Y2: units.Pixels(10)}.Offset(units.Pixels(1), nil)
	if got, want := line.Resolve(ctx), (Line{X1: 1, Y1: 0, X2: 11, Y2: 10}); got != want {
		t.Errorf("line = %+v, want %+v", got, want)
	}

	poly := PolygonShape{Points: []SizePoint{
		{units.Pixels(0), units.Pixels(0)},
		{units.Pixels(10), units.Pixels(0)},
		{units.Pixels(0), units.Pixels(10)},
	}}.Offset(units.Pixels(1), units.Pixels(1)).Resolve(ctx).(Polygon)
	if poly.Points[1] != Pt(11, 1) {
		t.Errorf("polygon point = %v", poly.Points[1])
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name string
		h    Hit
		in   Point
		out  Point
	}{
		{"rect", Rect{X: 0, Y: 0, W: 10, H: 10}, Pt(5, 5), Pt(11, 5)},
		{"negative rect", Rect{X: 10, Y: 10, W: -10, H: -10}, Pt(5, 5), Pt(-1, 5)},
		{"circle", Circle{CX: 0, CY: 0, R: 5}, Pt(3, 3), Pt(4, 4)},
		{"ellipse", Ellipse{CX: 0, CY: 0, RX: 10, RY: 2}, Pt(9, 0), Pt(0, 3)},
		{"rounded rect", RoundedRect{Rect: Rect{W: 10, H: 10}, Radius: 4}, Pt(5, 5), Pt(0.2, 0.2)},
		{"polygon", Polygon{Points: []Point{{0, 0}, {10, 0}, {0, 10}}}, Pt(2, 2), Pt(8, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.h.Contains(tt.in) {
				t.Errorf("Contains(%v) = false", tt.in)
			}
			if tt.h.Contains(tt.out) {
				t.Errorf("Contains(%v) = true", tt.out)
			}
		})
	}
}

func TestPathFlattenAndContains(t *testing.T) {
	p := NewPath()
	p.Circle(0, 0, 10)
	subs := p.Flatten(0.1)
	if len(subs) != 1 || !subs[0].Closed {
		t.Fatalf("Flatten() = %d subpaths", len(subs))
	}
	for _, q := range subs[0].Points {
		if d := q.Length(); !approxEqual(d, 10, 0.1) {
			t.Fatalf("flattened point %v at distance %v", q, d)
		}
	}
	if !p.Contains(Pt(0, 0)) || p.Contains(Pt(9, 9)) {
		t.Error("Contains() mismatch")
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.MoveTo(1, 0)
	p.LineTo(2, 0)
	q := p.Transform(Translate(0, 5).Multiply(Scale(2, 2)))
	want := []PathElement{MoveTo{Point: Pt(2, 5)}, LineTo{Point: Pt(4, 5)}}
	got := q.Elements()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("element %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if p.Elements()[0] != (MoveTo{Point: Pt(1, 0)}) {
		t.Error("Transform modified the receiver")
	}
}

func TestAnchor(t *testing.T) {
	tests := []struct {
		a      Anchor
		name   string
		tx, ty float64
	}{
		{TopLeft, "top-left", 100, 100},
		{TopCenter, "top-center", 90, 100},
		{TopRight, "top-right", 80, 100},
		{CenterLeft, "center-left", 100, 95},
		{Center, "center", 90, 95},
		{CenterRight, "center-right", 80, 95},
		{BottomLeft, "bottom-left", 100, 90},
		{BottomCenter, "bottom-center", 90, 90},
		{BottomRight, "bottom-right", 80, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a.String() != tt.name {
				t.Errorf("String() = %q", tt.a.String())
			}
			parsed, err := ParseAnchor(tt.name)
			if err != nil || parsed != tt.a {
				t.Errorf("ParseAnchor(%q) = %v, %v", tt.name, parsed, err)
			}
			x, y := tt.a.ToTopLeft(100, 100, 20, 10)
			if x != tt.tx || y != tt.ty {
				t.Errorf("ToTopLeft = (%v, %v), want (%v, %v)", x, y, tt.tx, tt.ty)
			}
			cx, cy := tt.a.ToCenter(100, 100, 20, 10)
			if cx != tt.tx+10 || cy != tt.ty+5 {
				t.Errorf("ToCenter = (%v, %v)", cx, cy)
			}
		})
	}
	if _, err := ParseAnchor("middle"); err == nil {
		t.Error("ParseAnchor(middle) succeeded")
	}
}
