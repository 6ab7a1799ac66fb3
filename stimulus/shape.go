package stimulus

import (
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// ShapeStimulus fills and outlines a geometry.Shape placed at (X, Y).
//
// Parameters: ParamX, ParamY, ParamFillColor, ParamStrokeColor,
// ParamStrokeWidth, ParamAlpha, plus ParamWidth and ParamHeight for
// rectangles, ParamRadius for circles.
type ShapeStimulus struct {
	base

	shape       func() geometry.Shape
	x, y        units.Size
	fill        scene.Color
	stroke      scene.Color
	strokeWidth units.Size
	alpha       float64
	cfg         *config
}

// NewShape returns a stimulus drawing shape with its coordinates taken
// relative to (x, y). Shape coordinates are not anchored.
func NewShape(shape geometry.Shape, x, y units.Size, opts ...Option) *ShapeStimulus {
	cfg := newConfig(opts)
	s := &ShapeStimulus{
		base:        newBase(cfg),
		x:           x,
		y:           y,
		fill:        cfg.fill,
		stroke:      cfg.stroke,
		strokeWidth: cfg.strokeWidth,
		alpha:       cfg.alpha,
		cfg:         cfg,
	}
	s.params[ParamX] = sizeParam(ParamX, &s.x)
	s.params[ParamY] = sizeParam(ParamY, &s.y)
	s.params[ParamFillColor] = colorParam(ParamFillColor, &s.fill)
	s.params[ParamStrokeColor] = colorParam(ParamStrokeColor, &s.stroke)
	s.params[ParamStrokeWidth] = sizeParam(ParamStrokeWidth, &s.strokeWidth)
	s.params[ParamAlpha] = floatParam(ParamAlpha, &s.alpha)
	s.shape = bindShape(s.params, shape)
	s.outline = s.resolve
	return s
}

// bindShape registers the shape's own size parameters and returns a
// getter for the current shape.
func bindShape(params paramTable, shape geometry.Shape) func() geometry.Shape {
	switch sh := shape.(type) {
	case geometry.RectangleShape:
		params[ParamWidth] = sizeParam(ParamWidth, &sh.Width)
		params[ParamHeight] = sizeParam(ParamHeight, &sh.Height)
		return func() geometry.Shape { return sh }
	case geometry.CircleShape:
		params[ParamRadius] = sizeParam(ParamRadius, &sh.Radius)
		return func() geometry.Shape { return sh }
	}
	return func() geometry.Shape { return shape }
}

// Shape returns the current shape, without the (X, Y) offset.
func (s *ShapeStimulus) Shape() geometry.Shape { return s.shape() }

func (s *ShapeStimulus) resolve(ctx units.Context) geometry.Primitive {
	return s.shape().Offset(s.x, s.y).Resolve(ctx)
}

// Draw implements window.Drawable.
func (s *ShapeStimulus) Draw(f *window.Frame) {
	if !s.visible {
		return
	}
	ctx := f.Context()
	sc := f.Scene()
	prim := s.resolve(ctx)
	m := s.matrix(ctx)
	width := px(ctx, s.strokeWidth)

	layered := s.alpha < 1
	if layered {
		clip := prim.Bounds()
		clip = geometry.Rect{X: clip.X - width, Y: clip.Y - width, W: clip.W + 2*width, H: clip.H + 2*width}
		sc.StartLayer(scene.SourceOver, clip, scene.WithClipTransform(m), scene.WithAlpha(float32(max(s.alpha, 0))))
	}
	if s.fill.A > 0 {
		sc.FillShape(prim, scene.Solid{Color: s.fill}, scene.WithTransform(m))
	}
	if s.stroke.A > 0 && width > 0 {
		sc.StrokeShape(prim, scene.Solid{Color: s.stroke}, s.cfg.strokeStyle(width), scene.WithTransform(m))
	}
	if layered {
		sc.EndLayer()
	}
}
