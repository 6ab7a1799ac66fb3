package stimulus

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// PatternKind selects the fill of a PatternStimulus.
type PatternKind uint8

// Pattern kinds.
const (
	// Uniform fills with the foreground color.
	Uniform PatternKind = iota

	// Stripes alternates foreground and background vertical bars, one
	// pair per cycle.
	Stripes

	// Checkerboard alternates foreground and background squares, two by
	// two per cycle.
	Checkerboard

	// Sinusoidal varies sinusoidally from background to foreground
	// along x.
	Sinusoidal
)

// String returns the kind name.
func (k PatternKind) String() string {
	switch k {
	case Uniform:
		return "uniform"
	case Stripes:
		return "stripes"
	case Checkerboard:
		return "checkerboard"
	case Sinusoidal:
		return "sinusoidal"
	}
	return fmt.Sprintf("PatternKind(%d)", uint8(k))
}

// BitmapCreator uploads pattern tiles. render.Renderer implements it.
type BitmapCreator interface {
	CreateBitmap(img image.Image) (*scene.Bitmap, error)
}

// PatternStimulus fills a shape with a repeating pattern.
//
// Parameters: ParamX, ParamY, ParamCycleLength, ParamPhaseX, ParamPhaseY
// (degrees of a cycle), ParamPatternRotation (degrees), ParamFillColor,
// ParamBackgroundColor, ParamStrokeColor, ParamStrokeWidth, ParamAlpha.
type PatternStimulus struct {
	base

	creator     BitmapCreator
	kind        PatternKind
	shape       geometry.Shape
	x, y        units.Size
	cycleLength units.Size
	phaseX      float64
	phaseY      float64
	rotation    float64
	fg, bg      scene.Color
	stroke      scene.Color
	strokeWidth units.Size
	alpha       float64
	cfg         *config

	tile  *scene.Bitmap
	stale bool
}

// NewPattern returns a stimulus filling shape, offset by (x, y), with a
// pattern of the given cycle length. Foreground and background come
// from WithFill and WithBackground. Stripes and Checkerboard upload a
// tile through creator.
func NewPattern(creator BitmapCreator, kind PatternKind, shape geometry.Shape, x, y, cycle units.Size, opts ...Option) (*PatternStimulus, error) {
	if kind > Sinusoidal {
		return nil, fmt.Errorf("stimulus: unknown pattern kind %d", uint8(kind))
	}
	cfg := newConfig(opts)
	s := &PatternStimulus{
		base:        newBase(cfg),
		creator:     creator,
		kind:        kind,
		shape:       shape,
		x:           x,
		y:           y,
		cycleLength: cycle,
		fg:          cfg.fill,
		bg:          cfg.background,
		stroke:      cfg.stroke,
		strokeWidth: cfg.strokeWidth,
		alpha:       cfg.alpha,
		cfg:         cfg,
	}
	if err := s.buildTile(); err != nil {
		return nil, err
	}
	restale := func() { s.stale = true }
	s.params[ParamX] = sizeParam(ParamX, &s.x)
	s.params[ParamY] = sizeParam(ParamY, &s.y)
	s.params[ParamCycleLength] = sizeParam(ParamCycleLength, &s.cycleLength)
	s.params[ParamPhaseX] = floatParam(ParamPhaseX, &s.phaseX)
	s.params[ParamPhaseY] = floatParam(ParamPhaseY, &s.phaseY)
	s.params[ParamPatternRotation] = floatParam(ParamPatternRotation, &s.rotation)
	s.params[ParamFillColor] = onSet(colorParam(ParamFillColor, &s.fg), restale)
	s.params[ParamBackgroundColor] = onSet(colorParam(ParamBackgroundColor, &s.bg), restale)
	s.params[ParamStrokeColor] = colorParam(ParamStrokeColor, &s.stroke)
	s.params[ParamStrokeWidth] = sizeParam(ParamStrokeWidth, &s.strokeWidth)
	s.params[ParamAlpha] = floatParam(ParamAlpha, &s.alpha)
	s.outline = s.resolve
	return s, nil
}

// Kind returns the pattern kind.
func (s *PatternStimulus) Kind() PatternKind { return s.kind }

func (s *PatternStimulus) resolve(ctx units.Context) geometry.Primitive {
	return s.shape.Offset(s.x, s.y).Resolve(ctx)
}

// buildTile uploads the 2×1 or 2×2 tile of the current colors.
func (s *PatternStimulus) buildTile() error {
	s.stale = false
	var img *image.RGBA
	fg, bg := s.fg.NRGBA(), s.bg.NRGBA()
	switch s.kind {
	case Stripes:
		img = image.NewRGBA(image.Rect(0, 0, 2, 1))
		img.Set(0, 0, fg)
		img.Set(1, 0, bg)
	case Checkerboard:
		img = image.NewRGBA(image.Rect(0, 0, 2, 2))
		img.Set(0, 0, fg)
		img.Set(1, 0, bg)
		img.Set(0, 1, bg)
		img.Set(1, 1, fg)
	default:
		return nil
	}
	if s.creator == nil {
		return fmt.Errorf("stimulus: %s pattern needs a bitmap creator", s.kind)
	}
	tile, err := s.creator.CreateBitmap(img)
	if err != nil {
		return fmt.Errorf("stimulus: pattern tile: %w", err)
	}
	s.tile = tile
	return nil
}

// brush returns the fill brush with the pattern origin at (ox, oy).
func (s *PatternStimulus) brush(ctx units.Context, ox, oy float64) scene.Brush {
	alpha := float32(clamp01(s.alpha))
	cycle := px(ctx, s.cycleLength)
	shiftX := math.Mod(s.phaseX, 360) / 360 * cycle
	shiftY := math.Mod(s.phaseY, 360) / 360 * cycle
	rot := geometry.Translate(ox, oy).
		Multiply(geometry.Rotate(s.rotation * math.Pi / 180)).
		Multiply(geometry.Translate(-ox, -oy))

	switch s.kind {
	case Stripes, Checkerboard:
		return &scene.ImageBrush{
			Bitmap:    s.tile,
			Start:     geometry.Pt(ox+shiftX, oy+shiftY),
			Fit:       scene.FitExact{Width: cycle, Height: cycle},
			EdgeX:     scene.Repeat,
			EdgeY:     scene.Repeat,
			Sampling:  scene.SamplingNearest,
			Transform: &rot,
			Alpha:     alpha,
		}
	case Sinusoidal:
		colors := sineColors(s.bg.WithAlpha(alpha), s.fg.WithAlpha(alpha), gratingStops)
		return scene.NewEquidistantGradient(scene.Repeat, scene.Linear{
			Start: geometry.Pt(ox+shiftX, oy),
			End:   geometry.Pt(ox+shiftX+cycle, oy),
		}, colors...).WithTransform(rot)
	}
	return scene.Solid{Color: s.fg.WithAlpha(alpha)}
}

// Draw implements window.Drawable.
func (s *PatternStimulus) Draw(f *window.Frame) {
	if !s.visible {
		return
	}
	if s.stale {
		if err := s.buildTile(); err != nil {
			psykit.Logger().Warn("stimulus: keeping previous pattern tile", "id", s.id, "err", err)
		}
	}
	ctx := f.Context()
	sc := f.Scene()
	m := s.matrix(ctx)
	ox, oy := px(ctx, s.x), px(ctx, s.y)
	prim := s.resolve(ctx)

	sc.FillShape(prim, s.brush(ctx, ox, oy), scene.WithTransform(m))
	if w := px(ctx, s.strokeWidth); w > 0 && s.stroke.A > 0 {
		sc.StrokeShape(prim, scene.Solid{Color: s.stroke}, s.cfg.strokeStyle(w), scene.WithTransform(m))
	}
}
