package geometry

import "github.com/gogpu/psykit/units"

// Shape is a geometric description in deferred units. Resolve evaluates
// it against a frame context; it is called once per frame and never
// cached, since the window and screen may change between frames.
//
// A nil Size field evaluates to zero.
type Shape interface {
	// Resolve evaluates the shape to a pixel-space primitive.
	Resolve(ctx units.Context) Primitive

	// Offset returns the shape moved by (dx, dy).
	Offset(dx, dy units.Size) Shape
}

// SizePoint is a point in deferred units.
type SizePoint struct {
	X, Y units.Size
}

// RectangleShape is an axis-aligned rectangle with its top-left corner
// at (X, Y).
type RectangleShape struct {
	X, Y          units.Size
	Width, Height units.Size
}

// CircleShape is a circle centered at (X, Y).
type CircleShape struct {
	X, Y   units.Size
	Radius units.Size
}

// LineShape is a segment from (X1, Y1) to (X2, Y2).
type LineShape struct {
	X1, Y1, X2, Y2 units.Size
}

// EllipseShape is an axis-aligned ellipse centered at (X, Y).
type EllipseShape struct {
	X, Y             units.Size
	RadiusX, RadiusY units.Size
}

// PolygonShape is a closed polygon.
type PolygonShape struct {
	Points []SizePoint
}

// Resolve implements Shape.
func (s RectangleShape) Resolve(ctx units.Context) Primitive {
	return Rect{
		X: eval(ctx, s.X),
		Y: eval(ctx, s.Y),
		W: eval(ctx, s.Width),
		H: eval(ctx, s.Height),
	}
}

// Offset implements Shape.
func (s RectangleShape) Offset(dx, dy units.Size) Shape {
	s.X = add(s.X, dx)
	s.Y = add(s.Y, dy)
	return s
}

// Resolve implements Shape.
func (s CircleShape) Resolve(ctx units.Context) Primitive {
	return Circle{CX: eval(ctx, s.X), CY: eval(ctx, s.Y), R: eval(ctx, s.Radius)}
}

// Offset implements Shape.
func (s CircleShape) Offset(dx, dy units.Size) Shape {
	s.X = add(s.X, dx)
	s.Y = add(s.Y, dy)
	return s
}

// Resolve implements Shape.
func (s LineShape) Resolve(ctx units.Context) Primitive {
	return Line{
		X1: eval(ctx, s.X1),
		Y1: eval(ctx, s.Y1),
		X2: eval(ctx, s.X2),
		Y2: eval(ctx, s.Y2),
	}
}

// Offset implements Shape.
func (s LineShape) Offset(dx, dy units.Size) Shape {
	s.X1 = add(s.X1, dx)
	s.Y1 = add(s.Y1, dy)
	s.X2 = add(s.X2, dx)
	s.Y2 = add(s.Y2, dy)
	return s
}

// Resolve implements Shape.
func (s EllipseShape) Resolve(ctx units.Context) Primitive {
	return Ellipse{
		CX: eval(ctx, s.X),
		CY: eval(ctx, s.Y),
		RX: eval(ctx, s.RadiusX),
		RY: eval(ctx, s.RadiusY),
	}
}

// Offset implements Shape.
func (s EllipseShape) Offset(dx, dy units.Size) Shape {
	s.X = add(s.X, dx)
	s.Y = add(s.Y, dy)
	return s
}

// Resolve implements Shape.
func (s PolygonShape) Resolve(ctx units.Context) Primitive {
	pts := make([]Point, len(s.Points))
	for i, p := range s.Points {
		pts[i] = Pt(eval(ctx, p.X), eval(ctx, p.Y))
	}
	return Polygon{Points: pts}
}

// Offset implements Shape.
func (s PolygonShape) Offset(dx, dy units.Size) Shape {
	pts := make([]SizePoint, len(s.Points))
	for i, p := range s.Points {
		pts[i] = SizePoint{X: add(p.X, dx), Y: add(p.Y, dy)}
	}
	return PolygonShape{Points: pts}
}

func eval(ctx units.Context, s units.Size) float64 {
	return evalSize(s, ctx.Window, ctx.Screen)
}

func add(a, b units.Size) units.Size {
	switch {
	case a == nil && b == nil:
		return units.Zero
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return units.Add(a, b)
}
