package stimulus

import (
	"math"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// Number of color stops of the grating and envelope gradients.
const (
	gratingStops  = 64
	envelopeStops = 64
)

// GaborStimulus is a sinusoidal grating windowed by a Gaussian envelope
// and clipped to a circle.
//
// Parameters: ParamX, ParamY, ParamRadius, ParamCycleLength, ParamSigma,
// ParamPhase (degrees), ParamOrientation (degrees), ParamAlpha,
// ParamStrokeColor, ParamStrokeWidth.
type GaborStimulus struct {
	base

	cx, cy      units.Size
	radius      units.Size
	cycleLength units.Size
	sigma       units.Size
	phase       float64
	orientation float64
	alpha       float64
	stroke      scene.Color
	strokeWidth units.Size
	anchor      geometry.Anchor
	cfg         *config

	grating []scene.Color
}

// NewGabor returns a Gabor patch at (cx, cy). The anchor applies to the
// bounding box of the circle; the default centers the patch on (cx, cy).
func NewGabor(cx, cy, radius, cycleLength, sigma units.Size, opts ...Option) *GaborStimulus {
	cfg := newConfig(opts)
	g := &GaborStimulus{
		base:        newBase(cfg),
		cx:          cx,
		cy:          cy,
		radius:      radius,
		cycleLength: cycleLength,
		sigma:       sigma,
		phase:       cfg.phase,
		orientation: cfg.orientation,
		alpha:       cfg.alpha,
		stroke:      cfg.stroke,
		strokeWidth: cfg.strokeWidth,
		anchor:      cfg.anchor,
		cfg:         cfg,
		grating:     sineColors(scene.Black, scene.White, gratingStops),
	}
	g.params[ParamX] = sizeParam(ParamX, &g.cx)
	g.params[ParamY] = sizeParam(ParamY, &g.cy)
	g.params[ParamRadius] = sizeParam(ParamRadius, &g.radius)
	g.params[ParamCycleLength] = sizeParam(ParamCycleLength, &g.cycleLength)
	g.params[ParamSigma] = sizeParam(ParamSigma, &g.sigma)
	g.params[ParamPhase] = floatParam(ParamPhase, &g.phase)
	g.params[ParamOrientation] = floatParam(ParamOrientation, &g.orientation)
	g.params[ParamAlpha] = floatParam(ParamAlpha, &g.alpha)
	g.params[ParamStrokeColor] = colorParam(ParamStrokeColor, &g.stroke)
	g.params[ParamStrokeWidth] = sizeParam(ParamStrokeWidth, &g.strokeWidth)
	g.outline = func(ctx units.Context) geometry.Primitive {
		x, y, r := g.placement(ctx)
		return geometry.Circle{CX: x, CY: y, R: r}
	}
	return g
}

// placement returns the anchored center and the radius in pixels.
func (g *GaborStimulus) placement(ctx units.Context) (x, y, r float64) {
	r = px(ctx, g.radius)
	x, y = g.anchor.ToCenter(px(ctx, g.cx), px(ctx, g.cy), 2*r, 2*r)
	return x, y, r
}

// Draw implements window.Drawable.
func (g *GaborStimulus) Draw(f *window.Frame) {
	if !g.visible {
		return
	}
	ctx := f.Context()
	sc := f.Scene()
	m := g.matrix(ctx)

	x, y, r := g.placement(ctx)
	cycle := px(ctx, g.cycleLength)
	shift := math.Mod(g.phase, 360) / 360 * cycle

	rot := geometry.Translate(x, y).
		Multiply(geometry.Rotate(g.orientation * math.Pi / 180)).
		Multiply(geometry.Translate(-x, -y))
	grating := scene.NewEquidistantGradient(scene.Repeat, scene.Linear{
		Start: geometry.Pt(x+shift, y),
		End:   geometry.Pt(x+shift+cycle, y),
	}, g.grating...).WithTransform(rot)

	envelope := scene.NewEquidistantGradient(scene.Pad, scene.Radial{
		Center: geometry.Pt(x, y),
		Radius: r,
	}, gaussianColors(r, px(ctx, g.sigma), envelopeStops)...)

	clip := geometry.Circle{CX: x, CY: y, R: r + 1}
	sc.StartLayer(scene.SourceOver, clip, scene.WithClipTransform(m), scene.WithAlpha(float32(clamp01(g.alpha))))
	sc.FillShape(clip, envelope, scene.WithTransform(m))
	sc.FillShape(geometry.Circle{CX: x, CY: y, R: r}, grating, scene.WithTransform(m), scene.WithBlend(scene.SourceIn))
	sc.EndLayer()

	if w := px(ctx, g.strokeWidth); w > 0 && g.stroke.A > 0 {
		sc.StrokeShape(geometry.Circle{CX: x, CY: y, R: r}, scene.Solid{Color: g.stroke},
			g.cfg.strokeStyle(w), scene.WithTransform(m))
	}
}

// sineColors samples one full cycle of 0.5+0.5·sin between lo and hi.
func sineColors(lo, hi scene.Color, n int) []scene.Color {
	cs := make([]scene.Color, n)
	for i := range cs {
		t := 0.5 + 0.5*math.Sin(2*math.Pi*float64(i)/float64(n-1))
		cs[i] = lo.Lerp(hi, float32(t))
	}
	return cs
}

// gaussianColors samples exp(-d²/2σ²) as black with varying alpha for d
// from 0 to r.
func gaussianColors(r, sigma float64, n int) []scene.Color {
	cs := make([]scene.Color, n)
	for i := range cs {
		d := r * float64(i) / float64(n-1)
		var a float64
		switch {
		case sigma > 0:
			a = math.Exp(-d * d / (2 * sigma * sigma))
		case d == 0:
			a = 1
		}
		cs[i] = scene.Color{A: float32(a)}
	}
	return cs
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}
