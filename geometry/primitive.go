package geometry

import "math"

// Primitive is a shape resolved to pixel coordinates.
type Primitive interface {
	// Bounds returns the axis-aligned bounding box.
	Bounds() Rect

	// Empty reports whether the primitive is degenerate and draws nothing.
	Empty() bool

	// AppendPath appends the primitive's outline to dst.
	AppendPath(dst *Path)
}

// Hit is implemented by primitives that support point containment.
type Hit interface {
	Contains(p Point) bool
}

// ToPath returns the outline of p as a new path.
func ToPath(p Primitive) *Path {
	if path, ok := p.(*Path); ok {
		return path
	}
	path := NewPath()
	p.AppendPath(path)
	return path
}

// Rect is an axis-aligned rectangle. Negative sizes extend to the left
// or upwards.
type Rect struct {
	X, Y, W, H float64
}

// Canon returns the rectangle with non-negative width and height.
func (r Rect) Canon() Rect {
	if r.W < 0 {
		r.X += r.W
		r.W = -r.W
	}
	if r.H < 0 {
		r.Y += r.H
		r.H = -r.H
	}
	return r
}

// Bounds implements Primitive.
func (r Rect) Bounds() Rect { return r.Canon() }

// Empty implements Primitive.
func (r Rect) Empty() bool {
	return r.W == 0 || r.H == 0 || !finite(r.X, r.Y, r.W, r.H)
}

// AppendPath implements Primitive.
func (r Rect) AppendPath(dst *Path) {
	dst.Rectangle(r.X, r.Y, r.W, r.H)
}

// Contains implements Hit.
func (r Rect) Contains(p Point) bool {
	c := r.Canon()
	return p.X >= c.X && p.X <= c.X+c.W && p.Y >= c.Y && p.Y <= c.Y+c.H
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Pt(r.X+r.W/2, r.Y+r.H/2)
}

// Union returns the smallest rectangle containing r and o.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o.Canon()
	}
	if o.Empty() {
		return r.Canon()
	}
	a, b := r.Canon(), o.Canon()
	x0 := math.Min(a.X, b.X)
	y0 := math.Min(a.Y, b.Y)
	x1 := math.Max(a.X+a.W, b.X+b.W)
	y1 := math.Max(a.Y+a.H, b.Y+b.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// RoundedRect is a rectangle with circular corners.
type RoundedRect struct {
	Rect   Rect
	Radius float64
}

// Bounds implements Primitive.
func (r RoundedRect) Bounds() Rect { return r.Rect.Canon() }

// Empty implements Primitive.
func (r RoundedRect) Empty() bool { return r.Rect.Empty() }

// AppendPath implements Primitive.
func (r RoundedRect) AppendPath(dst *Path) {
	c := r.Rect.Canon()
	dst.RoundedRectangle(c.X, c.Y, c.W, c.H, r.Radius)
}

// Contains implements Hit.
func (r RoundedRect) Contains(p Point) bool {
	c := r.Rect.Canon()
	if !c.Contains(p) {
		return false
	}
	rad := math.Min(r.Radius, math.Min(c.W, c.H)/2)
	if rad <= 0 {
		return true
	}
	// Clamp to the inner rectangle; outside it the point must be within
	// rad of the nearest corner center.
	cx := math.Max(c.X+rad, math.Min(p.X, c.X+c.W-rad))
	cy := math.Max(c.Y+rad, math.Min(p.Y, c.Y+c.H-rad))
	return p.Distance(Pt(cx, cy)) <= rad
}

// Circle is a circle given by center and radius.
type Circle struct {
	CX, CY, R float64
}

// Bounds implements Primitive.
func (c Circle) Bounds() Rect {
	return Rect{X: c.CX - c.R, Y: c.CY - c.R, W: 2 * c.R, H: 2 * c.R}
}

// Empty implements Primitive.
func (c Circle) Empty() bool { return !(c.R > 0) || !finite(c.CX, c.CY, c.R) }

// AppendPath implements Primitive.
func (c Circle) AppendPath(dst *Path) { dst.Circle(c.CX, c.CY, c.R) }

// Contains implements Hit.
func (c Circle) Contains(p Point) bool {
	return p.Distance(Pt(c.CX, c.CY)) <= c.R
}

// Ellipse is an axis-aligned ellipse.
type Ellipse struct {
	CX, CY, RX, RY float64
}

// Bounds implements Primitive.
func (e Ellipse) Bounds() Rect {
	return Rect{X: e.CX - e.RX, Y: e.CY - e.RY, W: 2 * e.RX, H: 2 * e.RY}
}

// Empty implements Primitive.
func (e Ellipse) Empty() bool {
	return !(e.RX > 0) || !(e.RY > 0) || !finite(e.CX, e.CY, e.RX, e.RY)
}

// AppendPath implements Primitive.
func (e Ellipse) AppendPath(dst *Path) { dst.Ellipse(e.CX, e.CY, e.RX, e.RY) }

// Contains implements Hit.
func (e Ellipse) Contains(p Point) bool {
	if e.Empty() {
		return false
	}
	dx := (p.X - e.CX) / e.RX
	dy := (p.Y - e.CY) / e.RY
	return dx*dx+dy*dy <= 1
}

// Line is a straight segment. It has no area and is only visible when
// stroked.
type Line struct {
	X1, Y1, X2, Y2 float64
}

// Bounds implements Primitive.
func (l Line) Bounds() Rect {
	return Rect{X: l.X1, Y: l.Y1, W: l.X2 - l.X1, H: l.Y2 - l.Y1}.Canon()
}

// Empty implements Primitive.
func (l Line) Empty() bool {
	return (l.X1 == l.X2 && l.Y1 == l.Y2) || !finite(l.X1, l.Y1, l.X2, l.Y2)
}

// AppendPath implements Primitive.
func (l Line) AppendPath(dst *Path) {
	dst.MoveTo(l.X1, l.Y1)
	dst.LineTo(l.X2, l.Y2)
}

// Polygon is a closed polygon.
type Polygon struct {
	Points []Point
}

// Bounds implements Primitive.
func (p Polygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, q := range p.Points[1:] {
		minX = math.Min(minX, q.X)
		minY = math.Min(minY, q.Y)
		maxX = math.Max(maxX, q.X)
		maxY = math.Max(maxY, q.Y)
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// Empty implements Primitive. A polygon needs two distinct points to
// produce an outline.
func (p Polygon) Empty() bool {
	for _, q := range p.Points {
		if !finite(q.X, q.Y) {
			return true
		}
	}
	for i := 1; i < len(p.Points); i++ {
		if p.Points[i] != p.Points[0] {
			return false
		}
	}
	return true
}

// AppendPath implements Primitive.
func (p Polygon) AppendPath(dst *Path) {
	if len(p.Points) == 0 {
		return
	}
	dst.MoveTo(p.Points[0].X, p.Points[0].Y)
	for _, q := range p.Points[1:] {
		dst.LineTo(q.X, q.Y)
	}
	dst.Close()
}

// Contains implements Hit using the non-zero winding rule.
func (p Polygon) Contains(q Point) bool {
	if len(p.Points) < 3 {
		return false
	}
	return polygonWinding(p.Points, q) != 0
}

// Area returns the absolute area of the polygon.
func (p Polygon) Area() float64 {
	return math.Abs(signedArea(p.Points))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
