package stimulus

import (
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// ImageStimulus draws a bitmap stretched to Width×Height.
//
// Parameters: ParamX, ParamY, ParamWidth, ParamHeight, ParamOpacity.
type ImageStimulus struct {
	base

	bitmap        *scene.Bitmap
	x, y          units.Size
	width, height units.Size
	opacity       float64
	anchor        geometry.Anchor
}

// NewImage returns a stimulus drawing b in a w×h box anchored at (x, y).
// The bitmap is usually created by render.Renderer.CreateBitmap.
func NewImage(b *scene.Bitmap, x, y, w, h units.Size, opts ...Option) *ImageStimulus {
	cfg := newConfig(opts)
	s := &ImageStimulus{
		base:    newBase(cfg),
		bitmap:  b,
		x:       x,
		y:       y,
		width:   w,
		height:  h,
		opacity: cfg.alpha,
		anchor:  cfg.anchor,
	}
	s.params[ParamX] = sizeParam(ParamX, &s.x)
	s.params[ParamY] = sizeParam(ParamY, &s.y)
	s.params[ParamWidth] = sizeParam(ParamWidth, &s.width)
	s.params[ParamHeight] = sizeParam(ParamHeight, &s.height)
	s.params[ParamOpacity] = floatParam(ParamOpacity, &s.opacity)
	s.outline = func(ctx units.Context) geometry.Primitive { return s.rect(ctx) }
	return s
}

// Bitmap returns the drawn bitmap.
func (s *ImageStimulus) Bitmap() *scene.Bitmap { return s.bitmap }

// SetBitmap replaces the drawn bitmap.
func (s *ImageStimulus) SetBitmap(b *scene.Bitmap) { s.bitmap = b }

func (s *ImageStimulus) rect(ctx units.Context) geometry.Rect {
	w, h := px(ctx, s.width), px(ctx, s.height)
	x, y := s.anchor.ToTopLeft(px(ctx, s.x), px(ctx, s.y), w, h)
	return geometry.Rect{X: x, Y: y, W: w, H: h}
}

// Draw implements window.Drawable.
func (s *ImageStimulus) Draw(f *window.Frame) {
	if !s.visible || s.bitmap == nil {
		return
	}
	ctx := f.Context()
	r := s.rect(ctx)
	brush := &scene.ImageBrush{
		Bitmap:   s.bitmap,
		Start:    geometry.Pt(r.X, r.Y),
		Fit:      scene.FitExact{Width: r.W, Height: r.H},
		EdgeX:    scene.Pad,
		EdgeY:    scene.Pad,
		Sampling: scene.SamplingLinear,
		Alpha:    float32(clamp01(s.opacity)),
	}
	f.Scene().FillShape(r, brush, scene.WithTransform(s.matrix(ctx)))
}
