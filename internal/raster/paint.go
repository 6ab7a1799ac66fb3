// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"image"
	"math"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
)

// Shader returns the premultiplied source color at a device pixel center.
type Shader interface {
	At(x, y float64) Pixel
}

// NewShader builds the shader for brush drawn with the paint transform m
// and opacity alpha. It returns nil when nothing would be visible.
func NewShader(brush scene.Brush, m geometry.Matrix, alpha float32) (Shader, error) {
	if alpha <= 0 {
		return nil, nil
	}
	switch b := brush.(type) {
	case scene.Solid:
		return solidShader(premul(b.Color, alpha)), nil
	case *scene.Gradient:
		if err := b.Validate(); err != nil {
			return nil, err
		}
		inv, ok := m.Invert()
		if !ok {
			return nil, nil
		}
		if b.Transform != nil {
			bt, ok := b.Transform.Invert()
			if !ok {
				return nil, nil
			}
			inv = bt.Multiply(inv)
		}
		return &gradientShader{g: b, inv: inv, alpha: alpha}, nil
	case *scene.ImageBrush:
		if b.Bitmap == nil || b.Bitmap.Width() == 0 || b.Bitmap.Height() == 0 {
			return nil, nil
		}
		inv, ok := m.Multiply(b.BrushMatrix()).Invert()
		if !ok {
			return nil, nil
		}
		return &imageShader{
			img:    b.Bitmap.Image(),
			inv:    inv,
			edgeX:  b.EdgeX,
			edgeY:  b.EdgeY,
			linear: b.Sampling == scene.SamplingLinear,
			alpha:  alpha * b.Alpha,
		}, nil
	}
	return nil, nil
}

func premul(c scene.Color, alpha float32) Pixel {
	c = c.Clamp()
	a := c.A * alpha
	return Pixel{c.R * a, c.G * a, c.B * a, a}
}

type solidShader Pixel

func (s solidShader) At(float64, float64) Pixel { return Pixel(s) }

type gradientShader struct {
	g     *scene.Gradient
	inv   geometry.Matrix
	alpha float32
}

func (s *gradientShader) At(x, y float64) Pixel {
	p := s.inv.TransformPoint(geometry.Pt(x, y))
	return premul(s.g.ColorAt(s.g.Kind.Param(p)), s.alpha)
}

type imageShader struct {
	img          *image.RGBA
	inv          geometry.Matrix
	edgeX, edgeY scene.Extend
	linear       bool
	alpha        float32
}

func (s *imageShader) At(x, y float64) Pixel {
	p := s.inv.TransformPoint(geometry.Pt(x, y))
	var px Pixel
	if s.linear {
		px = s.bilinear(p.X-0.5, p.Y-0.5)
	} else {
		px = s.texel(int(math.Floor(p.X)), int(math.Floor(p.Y)))
	}
	for i := range px {
		px[i] *= s.alpha
	}
	return px
}

func (s *imageShader) bilinear(u, v float64) Pixel {
	x0, y0 := math.Floor(u), math.Floor(v)
	fx, fy := float32(u-x0), float32(v-y0)
	ix, iy := int(x0), int(y0)
	p00 := s.texel(ix, iy)
	p10 := s.texel(ix+1, iy)
	p01 := s.texel(ix, iy+1)
	p11 := s.texel(ix+1, iy+1)
	var out Pixel
	for i := range out {
		top := p00[i] + (p10[i]-p00[i])*fx
		bot := p01[i] + (p11[i]-p01[i])*fx
		out[i] = top + (bot-top)*fy
	}
	return out
}

// texel reads a pixel with the edge modes applied.
func (s *imageShader) texel(x, y int) Pixel {
	b := s.img.Rect
	x = wrap(x, b.Dx(), s.edgeX) + b.Min.X
	y = wrap(y, b.Dy(), s.edgeY) + b.Min.Y
	i := s.img.PixOffset(x, y)
	px := s.img.Pix[i : i+4 : i+4]
	return Pixel{
		float32(px[0]) / 255,
		float32(px[1]) / 255,
		float32(px[2]) / 255,
		float32(px[3]) / 255,
	}
}

// wrap maps an integer texel coordinate into [0, n).
func wrap(i, n int, e scene.Extend) int {
	switch e {
	case scene.Repeat:
		i %= n
		if i < 0 {
			i += n
		}
	case scene.Reflect:
		period := 2 * n
		i %= period
		if i < 0 {
			i += period
		}
		if i >= n {
			i = period - 1 - i
		}
	default:
		i = max(0, min(n-1, i))
	}
	return i
}
