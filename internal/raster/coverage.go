// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/vector"

	"github.com/gogpu/psykit/geometry"
)

// Mask is an 8-bit coverage mask over the whole target together with the
// bounding box of its non-zero pixels.
type Mask struct {
	alpha  *image.Alpha
	bounds image.Rectangle
}

// At returns the coverage of pixel (x, y) in [0, 1].
func (m *Mask) At(x, y int) float32 {
	return float32(m.alpha.Pix[y*m.alpha.Stride+x]) / 255
}

// Bounds returns the region that may have non-zero coverage.
func (m *Mask) Bounds() image.Rectangle { return m.bounds }

// Empty reports whether the mask covers nothing.
func (m *Mask) Empty() bool { return m.bounds.Empty() }

// Coverage accumulates polygons into a mask. Overlapping polygons of the
// same orientation add up and saturate; opposite orientations cancel,
// which gives non-zero filling for outlines with holes.
type Coverage struct {
	z      *vector.Rasterizer
	w, h   int
	minX   float64
	minY   float64
	maxX   float64
	maxY   float64
	hasAny bool
}

// NewCoverage returns an empty coverage accumulator for a w×h target.
func NewCoverage(w, h int) *Coverage {
	c := &Coverage{z: vector.NewRasterizer(w, h), w: w, h: h}
	c.reset()
	return c
}

func (c *Coverage) reset() {
	c.minX, c.minY = math.Inf(1), math.Inf(1)
	c.maxX, c.maxY = math.Inf(-1), math.Inf(-1)
	c.hasAny = false
}

// AddPolygon adds a closed polygon.
func (c *Coverage) AddPolygon(pts []geometry.Point) {
	n := len(pts)
	if n < 3 {
		return
	}
	for i := range n {
		c.segment(pts[i], pts[(i+1)%n])
	}
}

// AddSubpaths adds flattened subpaths. Open subpaths are closed
// implicitly, as filling requires.
func (c *Coverage) AddSubpaths(subs []geometry.Subpath) {
	for _, sp := range subs {
		c.AddPolygon(sp.Points)
	}
}

// AddPath flattens p with tolerance and adds it.
func (c *Coverage) AddPath(p *geometry.Path, tolerance float64) {
	c.AddSubpaths(p.Flatten(tolerance))
}

// Mask renders the accumulated coverage. The accumulator is reset.
func (c *Coverage) Mask() *Mask {
	alpha := image.NewAlpha(image.Rect(0, 0, c.w, c.h))
	m := &Mask{alpha: alpha}
	if c.hasAny {
		c.z.DrawOp = draw.Src
		c.z.Draw(alpha, alpha.Bounds(), image.Opaque, image.Point{})
		m.bounds = image.Rect(
			int(math.Floor(c.minX))-1, int(math.Floor(c.minY))-1,
			int(math.Ceil(c.maxX))+1, int(math.Ceil(c.maxY))+1,
		).Intersect(alpha.Bounds())
	}
	c.z.Reset(c.w, c.h)
	c.reset()
	return m
}

// segment adds the part of a→b that can affect the target. The segment
// is cut to the rows [-1, h+1]; parts left or right of the target are
// projected onto vertical lines just outside it, which leaves the
// accumulated coverage of visible pixels unchanged.
func (c *Coverage) segment(a, b geometry.Point) {
	if !finitePoint(a) || !finitePoint(b) {
		return
	}
	ymin, ymax := -1.0, float64(c.h)+1
	if (a.Y < ymin && b.Y < ymin) || (a.Y > ymax && b.Y > ymax) {
		return
	}
	t0, t1 := 0.0, 1.0
	if dy := b.Y - a.Y; dy != 0 {
		ta, tb := (ymin-a.Y)/dy, (ymax-a.Y)/dy
		t0 = math.Max(0, math.Min(ta, tb))
		t1 = math.Min(1, math.Max(ta, tb))
		if t0 >= t1 {
			return
		}
	}
	p, q := a.Lerp(b, t0), a.Lerp(b, t1)

	xmin, xmax := -1.0, float64(c.w)+1
	cuts := []float64{0, 1}
	if dx := q.X - p.X; dx != 0 {
		for _, x := range [...]float64{xmin, xmax} {
			if t := (x - p.X) / dx; t > 0 && t < 1 {
				cuts = append(cuts, t)
			}
		}
	}
	slices.Sort(cuts)
	for i := 0; i+1 < len(cuts); i++ {
		s := p.Lerp(q, cuts[i])
		e := p.Lerp(q, cuts[i+1])
		s.X = math.Max(xmin, math.Min(xmax, s.X))
		e.X = math.Max(xmin, math.Min(xmax, e.X))
		c.line(s, e)
	}
}

func (c *Coverage) line(s, e geometry.Point) {
	c.z.MoveTo(float32(s.X), float32(s.Y))
	c.z.LineTo(float32(e.X), float32(e.Y))
	c.minX = math.Min(c.minX, math.Min(s.X, e.X))
	c.minY = math.Min(c.minY, math.Min(s.Y, e.Y))
	c.maxX = math.Max(c.maxX, math.Max(s.X, e.X))
	c.maxY = math.Max(c.maxY, math.Max(s.Y, e.Y))
	c.hasAny = true
}

func finitePoint(p geometry.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
