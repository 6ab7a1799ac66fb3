package stimulus

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// Stimulus is the capability shared by all stimulus kinds.
type Stimulus interface {
	window.Drawable

	// ID returns the identity assigned at construction.
	ID() uuid.UUID

	Visible() bool
	SetVisible(v bool)
	Hide()
	Show()
	ToggleVisibility()

	// Transformation returns the current transform.
	Transformation() geometry.Transformation2D

	// SetTransformation replaces the transform.
	SetTransformation(t geometry.Transformation2D)

	// AddTransformation applies t after the current transform.
	AddTransformation(t geometry.Transformation2D)

	// Translate adds a translation by (x, y).
	Translate(x, y units.Size)

	// SetTranslation replaces the transform with a translation.
	SetTranslation(x, y units.Size)

	// RotatePoint adds a rotation by angle degrees about (x, y).
	RotatePoint(angle float64, x, y units.Size)

	// ScalePoint adds a scale about (x, y).
	ScalePoint(sx, sy float64, x, y units.Size)

	// ShearPoint adds a shear about (x, y).
	ShearPoint(sx, sy float64, x, y units.Size)

	// Param returns the current value of p. The second result is false
	// when the kind has no such parameter.
	Param(p Param) (Value, bool)

	// SetParam sets p to v.
	SetParam(p Param, v Value) error

	// Animate moves p from its current value to to over d.
	Animate(p Param, to Value, d time.Duration, opts ...AnimationOption) error

	// Contains reports whether the window point (x, y) hits the
	// stimulus outline.
	Contains(x, y units.Size, ctx units.Context) bool
}

// base carries the state every kind shares. Kinds embed it and supply
// their parameters and outline.
type base struct {
	id         uuid.UUID
	visible    bool
	transform  geometry.Transformation2D
	animations []Animation
	params     paramTable

	// outline returns the hit-test primitive before the transform is
	// applied, or nil when the kind has no area.
	outline func(ctx units.Context) geometry.Primitive
}

func newBase(cfg *config) base {
	t := cfg.transform
	if t == nil {
		t = geometry.Identity{}
	}
	return base{
		id:        uuid.New(),
		visible:   true,
		transform: t,
		params:    make(paramTable),
	}
}

func (b *base) ID() uuid.UUID { return b.id }

func (b *base) Visible() bool     { return b.visible }
func (b *base) SetVisible(v bool) { b.visible = v }
func (b *base) Hide()             { b.visible = false }
func (b *base) Show()             { b.visible = true }
func (b *base) ToggleVisibility() { b.visible = !b.visible }

func (b *base) Transformation() geometry.Transformation2D { return b.transform }

func (b *base) SetTransformation(t geometry.Transformation2D) {
	if t == nil {
		t = geometry.Identity{}
	}
	b.transform = t
}

func (b *base) AddTransformation(t geometry.Transformation2D) {
	if t == nil {
		return
	}
	b.transform = geometry.Then(b.transform, t)
}

func (b *base) Translate(x, y units.Size) {
	b.AddTransformation(geometry.Translation{X: x, Y: y})
}

func (b *base) SetTranslation(x, y units.Size) {
	b.transform = geometry.Translation{X: x, Y: y}
}

func (b *base) RotatePoint(angle float64, x, y units.Size) {
	b.AddTransformation(geometry.RotationPoint{Angle: angle, X: x, Y: y})
}

func (b *base) ScalePoint(sx, sy float64, x, y units.Size) {
	b.AddTransformation(geometry.ScalePoint{SX: sx, SY: sy, X: x, Y: y})
}

func (b *base) ShearPoint(sx, sy float64, x, y units.Size) {
	b.AddTransformation(geometry.ShearPoint{SX: sx, SY: sy, X: x, Y: y})
}

func (b *base) Param(p Param) (Value, bool) {
	a, ok := b.params[p]
	if !ok {
		return nil, false
	}
	return a.get(), true
}

func (b *base) SetParam(p Param, v Value) error {
	a, ok := b.params[p]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, p)
	}
	return a.set(v)
}

// Animate starts an animation of p. Unless WithStart is given, the
// animation starts at the next UpdateAnimations call, which is the next
// time the stimulus is drawn.
func (b *base) Animate(p Param, to Value, d time.Duration, opts ...AnimationOption) error {
	cur, ok := b.Param(p)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownParam, p)
	}
	if !sameVariant(cur, to) {
		return typeError(p, fmt.Sprintf("%T", cur), to)
	}
	a := Animation{
		Param:    p,
		From:     cur,
		To:       to,
		Duration: d,
		Repeat:   Loop(1),
		Easing:   EaseNone{},
	}
	for _, opt := range opts {
		opt(&a)
	}
	if !sameVariant(a.From, to) {
		return typeError(p, fmt.Sprintf("%T", to), a.From)
	}
	if err := a.Validate(); err != nil {
		return err
	}
	b.animations = append(b.animations, a)
	return nil
}

// Animations returns the number of running animations.
func (b *base) Animations() int { return len(b.animations) }

// StopAnimations drops all running animations. Parameters keep their
// current values.
func (b *base) StopAnimations() { b.animations = b.animations[:0] }

// UpdateAnimations implements window.Drawable. All values are computed
// before any is written, so animations see the parameters as they were
// at the start of the update.
func (b *base) UpdateAnimations(now time.Time, ctx units.Context) {
	if len(b.animations) == 0 {
		return
	}
	type update struct {
		p Param
		v Value
	}
	updates := make([]update, 0, len(b.animations))
	kept := b.animations[:0]
	for _, a := range b.animations {
		if a.Start.IsZero() {
			a.Start = now
		}
		updates = append(updates, update{a.Param, a.Value(now, ctx)})
		if !a.Finished(now) {
			kept = append(kept, a)
		}
	}
	clear(b.animations[len(kept):])
	b.animations = kept

	for _, u := range updates {
		if err := b.SetParam(u.p, u.v); err != nil {
			psykit.Logger().Warn("stimulus: animation update failed",
				"id", b.id, "param", u.p.String(), "err", err)
		}
	}
}

// matrix returns the user-to-window transform: the stimulus transform
// followed by moving the origin to the window center.
func (b *base) matrix(ctx units.Context) geometry.Matrix {
	w, h := float64(ctx.Window.Width), float64(ctx.Window.Height)
	return geometry.Translate(w/2, h/2).Multiply(geometry.Resolve(b.transform, ctx))
}

func (b *base) Contains(x, y units.Size, ctx units.Context) bool {
	if b.outline == nil {
		return false
	}
	prim := b.outline(ctx)
	hit, ok := prim.(geometry.Hit)
	if !ok {
		return false
	}
	inv, ok := geometry.Resolve(b.transform, ctx).Invert()
	if !ok {
		return false
	}
	return hit.Contains(inv.TransformPoint(geometry.Pt(px(ctx, x), px(ctx, y))))
}

func sameVariant(a, b Value) bool {
	switch a.(type) {
	case SizeValue:
		_, ok := b.(SizeValue)
		return ok
	case FloatValue:
		_, ok := b.(FloatValue)
		return ok
	case ColorValue:
		_, ok := b.(ColorValue)
		return ok
	case StringValue:
		_, ok := b.(StringValue)
		return ok
	case BoolValue:
		_, ok := b.(BoolValue)
		return ok
	}
	return false
}

// px evaluates s in pixels. A nil size is zero.
func px(ctx units.Context, s units.Size) float64 {
	if s == nil {
		return 0
	}
	return ctx.Eval(s)
}

var (
	_ Stimulus = (*ShapeStimulus)(nil)
	_ Stimulus = (*GaborStimulus)(nil)
	_ Stimulus = (*ImageStimulus)(nil)
	_ Stimulus = (*PatternStimulus)(nil)
	_ Stimulus = (*TextStimulus)(nil)
)
