package scene

import (
	"errors"
	"testing"

	"github.com/gogpu/psykit/geometry"
)

func TestSceneRecordsInOrder(t *testing.T) {
	s := New(100, 50)
	red := Solid{Color: RGB(1, 0, 0)}
	s.FillShape(geometry.Rect{W: 10, H: 10}, red)
	s.StrokeShape(geometry.Circle{CX: 5, CY: 5, R: 3}, red, NewStrokeStyle(1))
	s.StartLayer(SourceOver, geometry.Circle{CX: 5, CY: 5, R: 4})
	s.FillShape(geometry.Ellipse{RX: 2, RY: 1}, red, WithBlend(Multiply))
	s.EndLayer()

	want := []CommandType{CmdFill, CmdStroke, CmdPushLayer, CmdFill, CmdPopLayer}
	got := s.Commands()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Type() != want[i] {
			t.Errorf("command %d = %v, want %v", i, c.Type(), want[i])
		}
	}
	if fill := got[3].(FillCommand); fill.Blend != Multiply {
		t.Errorf("blend = %v, want Multiply", fill.Blend)
	}
}

func TestSceneDropsDegenerate(t *testing.T) {
	s := New(10, 10)
	b := Solid{Color: Black}
	s.FillShape(geometry.Circle{R: 0}, b)
	s.FillShape(geometry.Rect{W: 0, H: 5}, b)
	s.FillShape(geometry.Line{X1: 0, Y1: 0, X2: 5, Y2: 5}, b)
	s.StrokeShape(geometry.Line{X1: 1, Y1: 1, X2: 1, Y2: 1}, b, NewStrokeStyle(2))
	s.StrokeShape(geometry.Rect{W: 5, H: 5}, b, NewStrokeStyle(0))
	s.DrawGlyphs(GlyphRun{Size: 12}, b)
	s.DrawImage(nil, geometry.Rect{W: 1, H: 1})
	if n := s.Len(); n != 0 {
		t.Errorf("recorded %d commands, want 0", n)
	}

	s.StrokeShape(geometry.Line{X1: 0, Y1: 0, X2: 5, Y2: 5}, b, NewStrokeStyle(1))
	if n := s.Len(); n != 1 {
		t.Errorf("line stroke recorded %d commands, want 1", n)
	}
}

func TestLayerDiscipline(t *testing.T) {
	s := New(10, 10)
	s.StartLayer(SourceOver, nil)
	s.StartLayer(SourceIn, geometry.Rect{W: 5, H: 5})
	if s.Depth() != 2 || s.Balanced() {
		t.Fatalf("Depth() = %d", s.Depth())
	}
	if _, err := s.Consume(); !errors.Is(err, ErrUnbalancedLayers) {
		t.Fatalf("Consume() error = %v, want ErrUnbalancedLayers", err)
	}
	s.EndLayer()
	s.EndLayer()
	if err := s.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}

	var pushes, pops int
	for _, c := range s.Commands() {
		switch c.(type) {
		case PushLayerCommand:
			pushes++
		case PopLayerCommand:
			pops++
		}
	}
	if pushes != pops {
		t.Errorf("pushes = %d, pops = %d", pushes, pops)
	}

	defer func() {
		if recover() == nil {
			t.Error("EndLayer() on empty stack did not panic")
		}
	}()
	s.EndLayer()
}

func TestLayerTransformComposes(t *testing.T) {
	s := New(10, 10)
	s.StartLayer(SourceOver, geometry.Rect{W: 1, H: 1},
		WithLayerTransform(geometry.Translate(10, 0)),
		WithClipTransform(geometry.Scale(2, 2)),
		WithAlpha(0.5),
	)
	s.FillShape(geometry.Rect{W: 1, H: 1}, Solid{Color: White}, WithTransform(geometry.Scale(3, 3)))
	s.EndLayer()

	push := s.Commands()[0].(PushLayerCommand)
	if push.Alpha != 0.5 || !push.ClipTransform.Approx(geometry.Scale(2, 2), 0) {
		t.Errorf("push = %+v", push)
	}
	fill := s.Commands()[1].(FillCommand)
	want := geometry.Translate(10, 0).Multiply(geometry.Scale(3, 3))
	if !fill.Transform.Approx(want, 0) {
		t.Errorf("fill transform = %+v, want %+v", fill.Transform, want)
	}

	s.FillShape(geometry.Rect{W: 1, H: 1}, Solid{Color: White})
	if m := s.Commands()[3].(FillCommand).Transform; !m.IsIdentity() {
		t.Errorf("transform after EndLayer = %+v", m)
	}
}

func TestConsumeOnce(t *testing.T) {
	s := New(4, 4)
	s.FillShape(geometry.Rect{W: 1, H: 1}, Solid{Color: White})
	cmds, err := s.Consume()
	if err != nil || len(cmds) != 1 {
		t.Fatalf("Consume() = %d, %v", len(cmds), err)
	}
	if _, err := s.Consume(); !errors.Is(err, ErrConsumed) {
		t.Errorf("second Consume() error = %v, want ErrConsumed", err)
	}
	defer func() {
		if recover() == nil {
			t.Error("recording after Consume did not panic")
		}
	}()
	s.FillShape(geometry.Rect{W: 1, H: 1}, Solid{Color: White})
}

func TestDefaultPaint(t *testing.T) {
	s := New(4, 4)
	s.FillShape(geometry.Rect{W: 1, H: 1}, Solid{Color: White})
	p := s.Commands()[0].(FillCommand).Paint
	if !p.Transform.IsIdentity() || p.Blend != SourceOver || p.Alpha != 1 {
		t.Errorf("default paint = %+v", p)
	}
}

func BenchmarkSceneRecord(b *testing.B) {
	brush := Solid{Color: White}
	b.ReportAllocs()
	for b.Loop() {
		s := New(800, 600)
		for i := range 100 {
			s.FillShape(geometry.Circle{CX: float64(i), CY: 10, R: 5}, brush)
		}
	}
}
