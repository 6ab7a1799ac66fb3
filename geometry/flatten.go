package geometry

import "math"

// DefaultTolerance is the maximum distance in pixels between a curve and
// its flattened polyline.
const DefaultTolerance = 0.25

// maxSubdivision bounds the recursion depth when flattening a curve.
const maxSubdivision = 16

// Subpath is a flattened polyline.
type Subpath struct {
	Points []Point
	Closed bool
}

// Flatten converts the path into polylines, one per subpath. Curves are
// subdivided until they are within tolerance of a straight line.
func (p *Path) Flatten(tolerance float64) []Subpath {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}

	var subpaths []Subpath
	var cur *Subpath
	var current Point

	flush := func() {
		if cur != nil && len(cur.Points) > 1 {
			subpaths = append(subpaths, *cur)
		}
		cur = nil
	}
	ensure := func() {
		if cur == nil {
			cur = &Subpath{Points: []Point{current}}
		}
	}

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			current = e.Point
			cur = &Subpath{Points: []Point{current}}
		case LineTo:
			ensure()
			current = e.Point
			cur.Points = append(cur.Points, current)
		case QuadTo:
			ensure()
			flattenQuad(current, e.Control, e.Point, tolerance, 0, &cur.Points)
			current = e.Point
		case CubicTo:
			ensure()
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolerance, 0, &cur.Points)
			current = e.Point
		case Close:
			if cur != nil {
				cur.Closed = true
				current = cur.Points[0]
				flush()
			}
		}
	}
	flush()
	return subpaths
}

func flattenQuad(p0, p1, p2 Point, tolerance float64, depth int, out *[]Point) {
	if depth >= maxSubdivision || distanceToSegment(p1, p0, p2) < tolerance {
		*out = append(*out, p2)
		return
	}

	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := q0.Lerp(q1, 0.5)

	flattenQuad(p0, q0, q2, tolerance, depth+1, out)
	flattenQuad(q2, q1, p2, tolerance, depth+1, out)
}

func flattenCubic(p0, p1, p2, p3 Point, tolerance float64, depth int, out *[]Point) {
	d := math.Max(distanceToSegment(p1, p0, p3), distanceToSegment(p2, p0, p3))
	if depth >= maxSubdivision || d < tolerance {
		*out = append(*out, p3)
		return
	}

	// de Casteljau split at t = 0.5.
	q0 := p0.Lerp(p1, 0.5)
	q1 := p1.Lerp(p2, 0.5)
	q2 := p2.Lerp(p3, 0.5)
	r0 := q0.Lerp(q1, 0.5)
	r1 := q1.Lerp(q2, 0.5)
	s := r0.Lerp(r1, 0.5)

	flattenCubic(p0, q0, r0, s, tolerance, depth+1, out)
	flattenCubic(s, r1, q2, p3, tolerance, depth+1, out)
}

// distanceToSegment returns the distance from p to the segment (a, b).
func distanceToSegment(p, a, b Point) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 < 1e-20 {
		return p.Distance(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	switch {
	case t < 0:
		return p.Distance(a)
	case t > 1:
		return p.Distance(b)
	}
	return p.Distance(a.Add(ab.Mul(t)))
}

// windingNumber returns the non-zero winding number of q with respect to
// the polylines. Open subpaths are treated as implicitly closed.
func windingNumber(subpaths []Subpath, q Point) int {
	wn := 0
	for _, sp := range subpaths {
		wn += polygonWinding(sp.Points, q)
	}
	return wn
}

func polygonWinding(pts []Point, q Point) int {
	wn := 0
	n := len(pts)
	for i := range n {
		a := pts[i]
		b := pts[(i+1)%n]
		side := b.Sub(a).Cross(q.Sub(a))
		if a.Y <= q.Y {
			if b.Y > q.Y && side > 0 {
				wn++
			}
		} else if b.Y <= q.Y && side < 0 {
			wn--
		}
	}
	return wn
}

// signedArea returns the shoelace area of a closed polyline. It is
// positive for clockwise winding in y-down coordinates.
func signedArea(pts []Point) float64 {
	var a float64
	n := len(pts)
	for i := range n {
		a += pts[i].Cross(pts[(i+1)%n])
	}
	return a / 2
}
