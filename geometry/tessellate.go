package geometry

import "math"

// CircleSegments is the number of triangle-fan wedges used for circles
// and ellipses.
const CircleSegments = 500

// Vertex is a triangle-list vertex. U and V are normalized to the
// primitive's bounding box.
type Vertex struct {
	X, Y float32
	U, V float32
}

// TessellateOptions controls Tessellate.
type TessellateOptions struct {
	// Segments overrides CircleSegments when positive.
	Segments int

	// Tolerance is the flattening tolerance for paths. Zero means
	// DefaultTolerance.
	Tolerance float64

	// LineWidth is the width of the quad produced for a Line. A Line
	// with zero width produces no vertices.
	LineWidth float64
}

// Tessellate converts p into a triangle list in pixel space. Degenerate
// primitives produce no vertices.
func Tessellate(p Primitive, opts TessellateOptions) []Vertex {
	if p == nil || p.Empty() {
		return nil
	}
	b := p.Bounds()

	switch s := p.(type) {
	case Rect:
		c := s.Canon()
		x0, y0, x1, y1 := c.X, c.Y, c.X+c.W, c.Y+c.H
		return emit(b, []Point{
			{x0, y0}, {x1, y0}, {x1, y1},
			{x0, y0}, {x1, y1}, {x0, y1},
		})
	case Circle:
		return fan(b, Pt(s.CX, s.CY), s.R, s.R, segments(opts))
	case Ellipse:
		return fan(b, Pt(s.CX, s.CY), s.RX, s.RY, segments(opts))
	case Line:
		return lineQuad(s, opts.LineWidth)
	case Polygon:
		return emit(b, triangulate(s.Points))
	}

	var tris []Point
	for _, sp := range ToPath(p).Flatten(opts.Tolerance) {
		tris = append(tris, triangulate(sp.Points)...)
	}
	return emit(b, tris)
}

func segments(opts TessellateOptions) int {
	if opts.Segments > 0 {
		return opts.Segments
	}
	return CircleSegments
}

func fan(b Rect, c Point, rx, ry float64, n int) []Vertex {
	tris := make([]Point, 0, 3*n)
	step := 2 * math.Pi / float64(n)
	prev := Pt(c.X+rx, c.Y)
	for i := 1; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * step)
		next := Pt(c.X+rx*cos, c.Y+ry*sin)
		if i == n {
			next = Pt(c.X+rx, c.Y)
		}
		tris = append(tris, c, prev, next)
		prev = next
	}
	return emit(b, tris)
}

func lineQuad(l Line, width float64) []Vertex {
	if width <= 0 {
		return nil
	}
	a, b := Pt(l.X1, l.Y1), Pt(l.X2, l.Y2)
	n := b.Sub(a).Normalize().Perp().Mul(width / 2)
	p0, p1 := a.Add(n), b.Add(n)
	p2, p3 := b.Sub(n), a.Sub(n)
	tris := []Point{p0, p1, p2, p0, p2, p3}
	return emit(Polygon{Points: []Point{p0, p1, p2, p3}}.Bounds(), tris)
}

func emit(b Rect, pts []Point) []Vertex {
	if len(pts) == 0 {
		return nil
	}
	out := make([]Vertex, len(pts))
	for i, p := range pts {
		var u, v float64
		if b.W != 0 {
			u = (p.X - b.X) / b.W
		}
		if b.H != 0 {
			v = (p.Y - b.Y) / b.H
		}
		out[i] = Vertex{X: float32(p.X), Y: float32(p.Y), U: float32(u), V: float32(v)}
	}
	return out
}

// triangulate splits a simple polygon into triangles by ear clipping.
// Self-intersecting input yields a best-effort fan for the remainder.
func triangulate(poly []Point) []Point {
	pts := dedupe(poly)
	n := len(pts)
	if n < 3 {
		return nil
	}

	idx := make([]int, n)
	if signedArea(pts) > 0 {
		for i := range idx {
			idx[i] = i
		}
	} else {
		for i := range idx {
			idx[i] = n - 1 - i
		}
	}

	tris := make([]Point, 0, 3*(n-2))
	for guard := 0; len(idx) > 3 && guard < n*n; guard++ {
		clipped := false
		for i := range idx {
			prev := pts[idx[(i+len(idx)-1)%len(idx)]]
			cur := pts[idx[i]]
			next := pts[idx[(i+1)%len(idx)]]
			if !isEar(pts, idx, prev, cur, next) {
				continue
			}
			tris = append(tris, prev, cur, next)
			idx = append(idx[:i], idx[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			break
		}
	}
	for i := 1; i+1 < len(idx); i++ {
		a, b, c := pts[idx[0]], pts[idx[i]], pts[idx[i+1]]
		if b.Sub(a).Cross(c.Sub(a)) != 0 {
			tris = append(tris, a, b, c)
		}
	}
	return tris
}

// isEar reports whether (prev, cur, next) is a convex corner of the
// clockwise (y-down) polygon that contains no other vertex.
func isEar(pts []Point, idx []int, prev, cur, next Point) bool {
	if cur.Sub(prev).Cross(next.Sub(cur)) <= 0 {
		return false
	}
	for _, j := range idx {
		q := pts[j]
		if q == prev || q == cur || q == next {
			continue
		}
		if inTriangle(q, prev, cur, next) {
			return false
		}
	}
	return true
}

func inTriangle(p, a, b, c Point) bool {
	d1 := b.Sub(a).Cross(p.Sub(a))
	d2 := c.Sub(b).Cross(p.Sub(b))
	d3 := a.Sub(c).Cross(p.Sub(c))
	return d1 >= 0 && d2 >= 0 && d3 >= 0
}

func dedupe(poly []Point) []Point {
	out := make([]Point, 0, len(poly))
	for _, p := range poly {
		if len(out) > 0 && out[len(out)-1] == p {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[0] == out[len(out)-1] {
		out = out[:len(out)-1]
	}
	return out
}
