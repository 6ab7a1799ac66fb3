package stimulus

import (
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/text"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

// TextStimulus draws a single line of shaped text.
//
// Parameters: ParamX, ParamY, ParamFontSize, ParamText, ParamFillColor,
// ParamAlpha.
type TextStimulus struct {
	base

	font   *text.Font
	text   string
	x, y   units.Size
	size   units.Size
	fill   scene.Color
	alpha  float64
	anchor geometry.Anchor

	// layout caches the shaping of text at layout.Size pixels.
	layout     text.Layout
	layoutText string
	shaped     bool
}

// NewText returns a stimulus drawing s at font size size, anchored at
// (x, y) by its measured box. The font comes from WithFont and defaults
// to text.DefaultFont.
func NewText(s string, x, y, size units.Size, opts ...Option) *TextStimulus {
	cfg := newConfig(opts)
	font := cfg.font
	if font == nil {
		font = text.DefaultFont()
	}
	t := &TextStimulus{
		base:   newBase(cfg),
		font:   font,
		text:   s,
		x:      x,
		y:      y,
		size:   size,
		fill:   cfg.fill,
		alpha:  cfg.alpha,
		anchor: cfg.anchor,
	}
	t.params[ParamX] = sizeParam(ParamX, &t.x)
	t.params[ParamY] = sizeParam(ParamY, &t.y)
	t.params[ParamFontSize] = sizeParam(ParamFontSize, &t.size)
	t.params[ParamText] = stringParam(ParamText, &t.text)
	t.params[ParamFillColor] = colorParam(ParamFillColor, &t.fill)
	t.params[ParamAlpha] = floatParam(ParamAlpha, &t.alpha)
	return t
}

// Text returns the drawn string.
func (t *TextStimulus) Text() string { return t.text }

// SetText replaces the drawn string.
func (t *TextStimulus) SetText(s string) { t.text = s }

// Layout returns the shaped line for the frame context.
func (t *TextStimulus) Layout(ctx units.Context) text.Layout {
	size := px(ctx, t.size)
	if !t.shaped || t.layoutText != t.text || t.layout.Size != size {
		t.layout = text.Shape(t.font, t.text, size)
		t.layoutText = t.text
		t.shaped = true
	}
	return t.layout
}

// Draw implements window.Drawable.
func (t *TextStimulus) Draw(f *window.Frame) {
	if !t.visible {
		return
	}
	ctx := f.Context()
	l := t.Layout(ctx)
	x, y := t.anchor.ToTopLeft(px(ctx, t.x), px(ctx, t.y), l.Width(), l.Height())
	brush := scene.Solid{Color: t.fill.WithAlpha(float32(clamp01(t.alpha)))}
	f.Scene().DrawGlyphs(l.Run(x, y), brush, scene.WithTransform(t.matrix(ctx)))
}
