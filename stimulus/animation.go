package stimulus

import (
	"fmt"
	"math"
	"time"

	"github.com/gogpu/psykit/units"
)

// RepeatMode selects how an animation repeats.
type RepeatMode uint8

// Repeat modes.
const (
	// RepeatLoop restarts from From after each cycle.
	RepeatLoop RepeatMode = iota

	// RepeatPingPong runs From to To and back each cycle.
	RepeatPingPong
)

// Repeat is a repeat mode with a cycle count.
type Repeat struct {
	Mode  RepeatMode
	Count int
}

// Loop plays an animation n times.
func Loop(n int) Repeat { return Repeat{Mode: RepeatLoop, Count: n} }

// PingPong plays an animation forth and back n times.
func PingPong(n int) Repeat { return Repeat{Mode: RepeatPingPong, Count: n} }

// Easing maps linear progress t in [0, 1] to eased progress.
type Easing interface {
	Ease(t float64) float64
}

// EaseNone leaves progress unchanged.
type EaseNone struct{}

// Ease implements Easing.
func (EaseNone) Ease(t float64) float64 { return t }

// Linear maps progress onto the range [A, B].
type Linear struct {
	A, B float64
}

// Ease implements Easing.
func (l Linear) Ease(t float64) float64 { return l.A + (l.B-l.A)*t }

// CubicBezier is a CSS cubic-bezier timing function with control points
// (X1, Y1) and (X2, Y2). The end points are (0, 0) and (1, 1).
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// CSS named timing functions.
var (
	EaseIn    = CubicBezier{0.42, 0, 1, 1}
	EaseOut   = CubicBezier{0, 0, 0.58, 1}
	EaseInOut = CubicBezier{0.42, 0, 0.58, 1}
)

// Ease implements Easing. It solves x(s) = t for the curve parameter s
// and returns y(s).
func (c CubicBezier) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return bezier(c.Y1, c.Y2, c.solve(t))
}

// bezier evaluates one coordinate of the curve with end points 0 and 1.
func bezier(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*s*p1 + 3*u*s*s*p2 + s*s*s
}

func bezierSlope(p1, p2, s float64) float64 {
	u := 1 - s
	return 3*u*u*p1 + 6*u*s*(p2-p1) + 3*s*s*(1-p2)
}

func (c CubicBezier) solve(x float64) float64 {
	const eps = 1e-7
	s := x
	for range 8 {
		dx := bezier(c.X1, c.X2, s) - x
		if math.Abs(dx) < eps {
			return s
		}
		d := bezierSlope(c.X1, c.X2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= dx / d
	}

	lo, hi := 0.0, 1.0
	s = x
	for hi-lo > eps {
		v := bezier(c.X1, c.X2, s)
		if math.Abs(v-x) < eps {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// ParseEasing returns the easing named by a CSS keyword: "linear",
// "ease-in", "ease-out" or "ease-in-out". Other names yield EaseNone.
func ParseEasing(name string) Easing {
	switch name {
	case "linear":
		return Linear{A: 0, B: 1}
	case "ease-in":
		return EaseIn
	case "ease-out":
		return EaseOut
	case "ease-in-out":
		return EaseInOut
	}
	return EaseNone{}
}

// Animation moves a parameter from From to To over Duration.
type Animation struct {
	Param    Param
	From, To Value
	Duration time.Duration
	Start    time.Time
	Repeat   Repeat
	Easing   Easing
}

// Validate checks the duration and repeat count.
func (a *Animation) Validate() error {
	if a.Duration <= 0 {
		return fmt.Errorf("%w: duration %v", ErrInvalidAnimation, a.Duration)
	}
	if a.Repeat.Count < 1 {
		return fmt.Errorf("%w: repeat count %d", ErrInvalidAnimation, a.Repeat.Count)
	}
	return nil
}

// total returns the length of the whole animation.
func (a *Animation) total() time.Duration {
	n := time.Duration(a.Repeat.Count)
	if a.Repeat.Mode == RepeatPingPong {
		n *= 2
	}
	return a.Duration * n
}

// Finished reports whether all repeats have elapsed at now.
func (a *Animation) Finished(now time.Time) bool {
	return now.Sub(a.Start) > a.total()
}

// progress returns the eased position in the current cycle.
func (a *Animation) progress(now time.Time) float64 {
	e := max(now.Sub(a.Start), 0)
	switch a.Repeat.Mode {
	case RepeatPingPong:
		e %= 2 * a.Duration
		if e > a.Duration {
			e = 2*a.Duration - e
		}
	default:
		e %= a.Duration
	}
	t := float64(e) / float64(a.Duration)
	if a.Easing == nil {
		return t
	}
	return a.Easing.Ease(t)
}

// Value returns the parameter value at now. Sizes interpolate in pixels
// evaluated against ctx, colors per channel. Other variants jump to To.
// A finished animation returns To.
func (a *Animation) Value(now time.Time, ctx units.Context) Value {
	if a.Finished(now) {
		return a.To
	}
	t := a.progress(now)
	switch from := a.From.(type) {
	case FloatValue:
		if to, ok := a.To.(FloatValue); ok {
			return FloatValue(lerp(float64(from), float64(to), t))
		}
	case SizeValue:
		if to, ok := a.To.(SizeValue); ok {
			f, g := px(ctx, from.Size), px(ctx, to.Size)
			return SizeValue{Size: units.Pixels(lerp(f, g, t))}
		}
	case ColorValue:
		if to, ok := a.To.(ColorValue); ok {
			return ColorValue{Color: from.Color.Lerp(to.Color, float32(t))}
		}
	}
	return a.To
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// AnimationOption configures Animate.
type AnimationOption func(*Animation)

// WithRepeat sets the repeat mode. The default is Loop(1).
func WithRepeat(r Repeat) AnimationOption {
	return func(a *Animation) { a.Repeat = r }
}

// WithEasing sets the easing. The default is EaseNone.
func WithEasing(e Easing) AnimationOption {
	return func(a *Animation) { a.Easing = e }
}

// WithStart sets the start time. By default an animation starts at the
// next UpdateAnimations call.
func WithStart(t time.Time) AnimationOption {
	return func(a *Animation) { a.Start = t }
}

// WithFrom sets the start value. The default is the current value.
func WithFrom(v Value) AnimationOption {
	return func(a *Animation) { a.From = v }
}
