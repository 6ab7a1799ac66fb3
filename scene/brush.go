package scene

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/psykit/geometry"
)

// ErrInvalidGradient is returned by Gradient.Validate.
var ErrInvalidGradient = errors.New("scene: invalid gradient")

// Brush describes how a shape or glyph run is painted.
//
// The concrete brushes are Solid, Gradient and ImageBrush.
type Brush interface {
	isBrush()
}

// Solid paints a single color.
type Solid struct {
	Color Color
}

func (Solid) isBrush() {}

// Extend defines sampling outside a gradient's [0, 1] range or an
// image's bounds.
type Extend uint8

// Extend modes.
const (
	Pad Extend = iota
	Repeat
	Reflect
)

// String returns the mode name.
func (e Extend) String() string {
	switch e {
	case Pad:
		return "Pad"
	case Repeat:
		return "Repeat"
	case Reflect:
		return "Reflect"
	}
	return fmt.Sprintf("Extend(%d)", uint8(e))
}

// Apply maps t into [0, 1] according to the mode.
func (e Extend) Apply(t float64) float64 {
	switch e {
	case Repeat:
		t -= math.Floor(t)
	case Reflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int64(period)%2 == 1 {
			t = 1 - t
		}
	default:
		t = math.Max(0, math.Min(1, t))
	}
	return t
}

// GradientKind is the geometry of a gradient in brush space.
//
// The concrete kinds are Linear, Radial and Sweep.
type GradientKind interface {
	// Param returns the gradient parameter t at p, before extension.
	Param(p geometry.Point) float64

	isGradientKind()
}

// Linear varies along the segment from Start to End.
type Linear struct {
	Start, End geometry.Point
}

// Radial varies with the distance from Center, reaching 1 at Radius.
type Radial struct {
	Center geometry.Point
	Radius float64
}

// Sweep varies with the angle around Center from StartAngle to EndAngle
// (degrees, clockwise on screen).
type Sweep struct {
	Center               geometry.Point
	StartAngle, EndAngle float64
}

func (Linear) isGradientKind() {}
func (Radial) isGradientKind() {}
func (Sweep) isGradientKind()  {}

// Param implements GradientKind.
func (k Linear) Param(p geometry.Point) float64 {
	d := k.End.Sub(k.Start)
	l2 := d.Dot(d)
	if l2 == 0 {
		return 0
	}
	return p.Sub(k.Start).Dot(d) / l2
}

// Param implements GradientKind.
func (k Radial) Param(p geometry.Point) float64 {
	if k.Radius <= 0 {
		return 1
	}
	return p.Distance(k.Center) / k.Radius
}

// Param implements GradientKind.
func (k Sweep) Param(p geometry.Point) float64 {
	span := k.EndAngle - k.StartAngle
	if span == 0 {
		return 0
	}
	a := math.Atan2(p.Y-k.Center.Y, p.X-k.Center.X) * 180 / math.Pi
	a = math.Mod(a-k.StartAngle, 360)
	if a < 0 {
		a += 360
	}
	return a / span
}

// ColorStop is a color at an offset in [0, 1].
type ColorStop struct {
	Offset float64
	Color  Color
}

// Gradient paints interpolated color stops.
type Gradient struct {
	Kind   GradientKind
	Extend Extend
	Stops  []ColorStop

	// Transform maps brush space to user space. Nil is identity.
	Transform *geometry.Matrix
}

func (*Gradient) isBrush() {}

// NewEquidistantGradient spreads colors evenly over [0, 1].
func NewEquidistantGradient(extend Extend, kind GradientKind, colors ...Color) *Gradient {
	stops := make([]ColorStop, len(colors))
	for i, c := range colors {
		var off float64
		if len(colors) > 1 {
			off = float64(i) / float64(len(colors)-1)
		}
		stops[i] = ColorStop{Offset: off, Color: c}
	}
	return &Gradient{Kind: kind, Extend: extend, Stops: stops}
}

// WithTransform returns a copy of g with the brush transform set.
func (g *Gradient) WithTransform(m geometry.Matrix) *Gradient {
	c := *g
	c.Transform = &m
	return &c
}

// Validate checks that the gradient has a kind and at least one stop,
// and that offsets are non-decreasing within [0, 1].
func (g *Gradient) Validate() error {
	if g.Kind == nil {
		return fmt.Errorf("%w: missing kind", ErrInvalidGradient)
	}
	if len(g.Stops) == 0 {
		return fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	prev := 0.0
	for i, s := range g.Stops {
		if s.Offset < 0 || s.Offset > 1 || math.IsNaN(s.Offset) {
			return fmt.Errorf("%w: stop %d offset %v outside [0, 1]", ErrInvalidGradient, i, s.Offset)
		}
		if s.Offset < prev {
			return fmt.Errorf("%w: stop %d offset %v before %v", ErrInvalidGradient, i, s.Offset, prev)
		}
		prev = s.Offset
	}
	return nil
}

// ColorAt returns the color at parameter t after applying the extend
// mode. Colors are interpolated per channel in straight sRGB.
func (g *Gradient) ColorAt(t float64) Color {
	switch len(g.Stops) {
	case 0:
		return Transparent
	case 1:
		return g.Stops[0].Color
	}
	t = g.Extend.Apply(t)

	first := g.Stops[0]
	if t <= first.Offset {
		return first.Color
	}
	for i := 1; i < len(g.Stops); i++ {
		s := g.Stops[i]
		if t > s.Offset {
			continue
		}
		p := g.Stops[i-1]
		if s.Offset == p.Offset {
			return s.Color
		}
		return p.Color.Lerp(s.Color, float32((t-p.Offset)/(s.Offset-p.Offset)))
	}
	return g.Stops[len(g.Stops)-1].Color
}
