// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
)

// Stroker expands polylines into filled polygons. The stroke outline is
// emitted as a set of overlapping pieces (segment bodies, joins and caps)
// that all share one orientation, so their union is the stroke.
type Stroker struct {
	style scene.StrokeStyle
	m     geometry.Matrix
	hw    float64
	scale float64
	emit  func([]geometry.Point)
}

// NewStroker returns a stroker that transforms pieces by m before
// passing them to emit. Widths are in user space.
func NewStroker(style scene.StrokeStyle, m geometry.Matrix, emit func([]geometry.Point)) *Stroker {
	if style.MiterLimit < 1 {
		style.MiterLimit = 1
	}
	return &Stroker{
		style: style,
		m:     m,
		hw:    style.Width / 2,
		scale: m.ScaleFactor(),
		emit:  emit,
	}
}

// Tolerance returns the flattening tolerance in user space that gives
// tol in device pixels.
func (s *Stroker) Tolerance(tol float64) float64 {
	if s.scale <= 1e-12 {
		return tol
	}
	return tol / s.scale
}

// StrokePath flattens p, applies the dash pattern and strokes the result.
func (s *Stroker) StrokePath(p *geometry.Path, tol float64) {
	if s.hw <= 0 || s.scale <= 1e-12 {
		return
	}
	subs := p.Flatten(s.Tolerance(tol))
	if d := NewDash(s.style.DashOffset, s.style.Dashes...); d != nil {
		subs = d.Apply(subs)
	}
	for _, sp := range subs {
		s.Stroke(sp)
	}
}

// Stroke expands a single polyline.
func (s *Stroker) Stroke(sp geometry.Subpath) {
	pts := dedupe(sp.Points, sp.Closed)
	switch {
	case len(pts) == 0:
		return
	case len(pts) == 1:
		s.dot(pts[0])
		return
	}

	n := len(pts)
	segs := n - 1
	if sp.Closed {
		segs = n
	}
	for i := range segs {
		s.segment(pts[i], pts[(i+1)%n])
	}

	if sp.Closed {
		for i := range n {
			s.join(pts[(i+n-1)%n], pts[i], pts[(i+1)%n])
		}
		return
	}
	for i := 1; i < n-1; i++ {
		s.join(pts[i-1], pts[i], pts[i+1])
	}
	s.cap(pts[0], pts[0].Sub(pts[1]).Normalize(), s.style.StartCap)
	s.cap(pts[n-1], pts[n-1].Sub(pts[n-2]).Normalize(), s.style.EndCap)
}

func (s *Stroker) segment(a, b geometry.Point) {
	n := b.Sub(a).Normalize().Perp().Mul(s.hw)
	s.piece(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

// join fills the gap on the outer side of the corner at p.
func (s *Stroker) join(prev, p, next geometry.Point) {
	d0 := p.Sub(prev).Normalize()
	d1 := next.Sub(p).Normalize()
	cross := d0.Cross(d1)
	dot := d0.Dot(d1)
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return
	}
	if s.style.Join == scene.JoinRound {
		s.circle(p)
		return
	}

	side := -1.0
	if cross < 0 {
		side = 1
	}
	u0 := d0.Perp().Mul(side)
	u1 := d1.Perp().Mul(side)
	a := p.Add(u0.Mul(s.hw))
	b := p.Add(u1.Mul(s.hw))

	// Miter length over width is 1/cos(θ/2), so the limit test is
	// 2 <= (1+cos θ)·limit².
	if s.style.Join == scene.JoinMiter && 2 < (1+dot)*s.style.MiterLimit*s.style.MiterLimit {
		tip := p.Add(u0.Add(u1).Mul(s.hw / (1 + dot)))
		s.piece(p, a, tip, b)
		return
	}
	s.piece(p, a, b)
}

// cap draws the end cap at p; dir points away from the stroke.
func (s *Stroker) cap(p, dir geometry.Point, c scene.Cap) {
	switch c {
	case scene.CapRound:
		s.circle(p)
	case scene.CapSquare:
		n := dir.Perp().Mul(s.hw)
		e := dir.Mul(s.hw)
		s.piece(p.Add(n), p.Add(n).Add(e), p.Sub(n).Add(e), p.Sub(n))
	}
}

// dot strokes a zero-length subpath. Only caps with extent draw.
func (s *Stroker) dot(p geometry.Point) {
	switch {
	case s.style.StartCap == scene.CapRound || s.style.EndCap == scene.CapRound:
		s.circle(p)
	case s.style.StartCap == scene.CapSquare || s.style.EndCap == scene.CapSquare:
		s.piece(
			geometry.Pt(p.X-s.hw, p.Y-s.hw), geometry.Pt(p.X+s.hw, p.Y-s.hw),
			geometry.Pt(p.X+s.hw, p.Y+s.hw), geometry.Pt(p.X-s.hw, p.Y+s.hw),
		)
	}
}

func (s *Stroker) circle(p geometry.Point) {
	r := s.hw * s.scale
	n := int(math.Ceil(math.Pi * r))
	n = max(8, min(n, 256))
	pts := make([]geometry.Point, n)
	for i := range n {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = geometry.Pt(p.X+s.hw*math.Cos(a), p.Y+s.hw*math.Sin(a))
	}
	s.piece(pts...)
}

// piece orients pts clockwise, transforms them and emits the polygon.
func (s *Stroker) piece(pts ...geometry.Point) {
	area := polygonArea(pts)
	if math.Abs(area) < 1e-12 {
		return
	}
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		j := i
		if area < 0 {
			j = len(pts) - 1 - i
		}
		out[j] = s.m.TransformPoint(p)
	}
	s.emit(out)
}

func polygonArea(pts []geometry.Point) float64 {
	var a float64
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// dedupe drops consecutive duplicate points, including a closing point
// equal to the first on closed subpaths.
func dedupe(pts []geometry.Point, closed bool) []geometry.Point {
	out := make([]geometry.Point, 0, len(pts))
	for _, p := range pts {
		if len(out) > 0 && out[len(out)-1].Distance(p) < 1e-9 {
			continue
		}
		out = append(out, p)
	}
	if closed && len(out) > 1 && out[0].Distance(out[len(out)-1]) < 1e-9 {
		out = out[:len(out)-1]
	}
	return out
}
