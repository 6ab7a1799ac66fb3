// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"fmt"
	"image"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
)

// layer is an isolated drawing surface in the layer stack.
type layer struct {
	pix   []Pixel
	blend scene.BlendMode
	alpha float32
	clip  *Mask
}

// Canvas executes scene commands into premultiplied float pixels. A
// Canvas may be reused for several frames of the same size.
type Canvas struct {
	w, h      int
	tolerance float64
	cov       *Coverage
	layers    []*layer
	free      [][]Pixel
}

// NewCanvas returns a w×h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{
		w:         w,
		h:         h,
		tolerance: geometry.DefaultTolerance,
		cov:       NewCoverage(w, h),
	}
}

// Width returns the canvas width.
func (c *Canvas) Width() int { return c.w }

// Height returns the canvas height.
func (c *Canvas) Height() int { return c.h }

// Render clears to bg, executes cmds and writes the result into dst,
// whose size must match the canvas.
func (c *Canvas) Render(dst *image.RGBA, bg scene.Color, cmds []scene.Command) error {
	if b := dst.Bounds(); b.Dx() != c.w || b.Dy() != c.h {
		return fmt.Errorf("raster: target %dx%d does not match canvas %dx%d", b.Dx(), b.Dy(), c.w, c.h)
	}
	c.reset(bg)
	for i, cmd := range cmds {
		if err := c.execute(cmd); err != nil {
			return fmt.Errorf("raster: command %d (%s): %w", i, cmd.Type(), err)
		}
	}
	if len(c.layers) != 1 {
		return scene.ErrUnbalancedLayers
	}
	c.store(dst)
	return nil
}

func (c *Canvas) reset(bg scene.Color) {
	for _, l := range c.layers {
		c.free = append(c.free, l.pix)
	}
	c.layers = c.layers[:0]
	base := &layer{pix: c.alloc(), blend: scene.SourceOver, alpha: 1}
	fill := premul(bg, 1)
	for i := range base.pix {
		base.pix[i] = fill
	}
	c.layers = append(c.layers, base)
}

func (c *Canvas) alloc() []Pixel {
	if n := len(c.free); n > 0 {
		pix := c.free[n-1]
		c.free = c.free[:n-1]
		return pix
	}
	return make([]Pixel, c.w*c.h)
}

func (c *Canvas) top() *layer { return c.layers[len(c.layers)-1] }

func (c *Canvas) execute(cmd scene.Command) error {
	switch cmd := cmd.(type) {
	case scene.FillCommand:
		c.cov.AddPath(geometry.ToPath(cmd.Shape).Transform(cmd.Transform), c.tolerance)
		return c.paint(cmd.Brush, cmd.Paint)
	case scene.StrokeCommand:
		s := NewStroker(cmd.Style, cmd.Transform, c.cov.AddPolygon)
		s.StrokePath(geometry.ToPath(cmd.Shape), c.tolerance)
		return c.paint(cmd.Brush, cmd.Paint)
	case scene.GlyphsCommand:
		if err := c.glyphs(cmd.Run, cmd.Transform); err != nil {
			return err
		}
		return c.paint(cmd.Brush, cmd.Paint)
	case scene.ImageCommand:
		return c.image(cmd)
	case scene.PushLayerCommand:
		c.push(cmd)
	case scene.PopLayerCommand:
		if len(c.layers) < 2 {
			return scene.ErrUnbalancedLayers
		}
		c.pop()
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
	return nil
}

func (c *Canvas) glyphs(run scene.GlyphRun, m geometry.Matrix) error {
	if run.Empty() {
		return nil
	}
	for _, g := range run.Glyphs {
		outline, err := run.Font.GlyphOutline(g.ID, run.Size)
		if err != nil {
			return fmt.Errorf("glyph %d: %w", g.ID, err)
		}
		if outline == nil {
			continue
		}
		gm := m.Multiply(geometry.Translate(run.Position.X+g.X, run.Position.Y+g.Y))
		c.cov.AddPath(outline.Transform(gm), c.tolerance)
	}
	return nil
}

func (c *Canvas) image(cmd scene.ImageCommand) error {
	b := cmd.Bitmap
	if b == nil || cmd.Rect.Empty() {
		return nil
	}
	brush := &scene.ImageBrush{
		Bitmap:   b,
		Start:    geometry.Pt(cmd.Rect.X, cmd.Rect.Y),
		Fit:      scene.FitExact{Width: cmd.Rect.W, Height: cmd.Rect.H},
		Sampling: cmd.Sampling,
		Alpha:    1,
	}
	c.cov.AddPath(geometry.ToPath(cmd.Rect).Transform(cmd.Transform), c.tolerance)
	return c.paint(brush, cmd.Paint)
}

// paint fills the accumulated coverage with brush.
func (c *Canvas) paint(brush scene.Brush, p scene.Paint) error {
	mask := c.cov.Mask()
	if mask.Empty() {
		return nil
	}
	shader, err := NewShader(brush, p.Transform, p.Alpha)
	if err != nil || shader == nil {
		return err
	}
	blend := GetBlendFunc(p.Blend)
	pix := c.top().pix
	r := mask.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := pix[y*c.w : (y+1)*c.w]
		for x := r.Min.X; x < r.Max.X; x++ {
			cv := mask.At(x, y)
			if cv == 0 {
				continue
			}
			s := shader.At(float64(x)+0.5, float64(y)+0.5)
			row[x] = Composite(blend, s, row[x], cv)
		}
	}
	return nil
}

func (c *Canvas) push(cmd scene.PushLayerCommand) {
	l := &layer{pix: c.alloc(), blend: cmd.Blend, alpha: cmd.Alpha}
	clear(l.pix)
	if cmd.Clip != nil {
		c.cov.AddPath(geometry.ToPath(cmd.Clip).Transform(cmd.ClipTransform), c.tolerance)
		l.clip = c.cov.Mask()
	}
	c.layers = append(c.layers, l)
}

// pop composites the innermost layer onto its parent.
func (c *Canvas) pop() {
	l := c.top()
	c.layers = c.layers[:len(c.layers)-1]
	defer func() { c.free = append(c.free, l.pix) }()

	if l.alpha <= 0 && l.blend == scene.SourceOver {
		return
	}
	dst := c.top().pix
	blend := GetBlendFunc(l.blend)
	r := image.Rect(0, 0, c.w, c.h)
	if l.clip != nil {
		r = l.clip.Bounds()
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cv := float32(1)
			if l.clip != nil {
				cv = l.clip.At(x, y)
			}
			i := y*c.w + x
			s := l.pix[i]
			for k := range s {
				s[k] *= l.alpha
			}
			dst[i] = Composite(blend, s, dst[i], cv)
		}
	}
}

// store converts the base layer to 8-bit premultiplied RGBA.
func (c *Canvas) store(dst *image.RGBA) {
	pix := c.layers[0].pix
	for y := range c.h {
		off := dst.PixOffset(dst.Rect.Min.X, dst.Rect.Min.Y+y)
		row := dst.Pix[off : off+4*c.w]
		for x := range c.w {
			p := pix[y*c.w+x]
			a := clampUnit(p[3])
			row[4*x+0] = to8(min(clampUnit(p[0]), a))
			row[4*x+1] = to8(min(clampUnit(p[1]), a))
			row[4*x+2] = to8(min(clampUnit(p[2]), a))
			row[4*x+3] = to8(a)
		}
	}
}

// Pixel returns the premultiplied value of base-layer pixel (x, y).
func (c *Canvas) Pixel(x, y int) Pixel {
	return c.layers[0].pix[y*c.w+x]
}

func clampUnit(v float32) float32 { return max(0, min(1, v)) }

func to8(v float32) uint8 { return uint8(v*255 + 0.5) }
