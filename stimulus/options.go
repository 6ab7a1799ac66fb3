package stimulus

import (
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/text"
	"github.com/gogpu/psykit/units"
)

// Option configures a stimulus at construction. Options that do not
// apply to a kind are ignored.
type Option func(*config)

type config struct {
	anchor      geometry.Anchor
	fill        scene.Color
	stroke      scene.Color
	strokeWidth units.Size
	dashes      []float64
	dashOffset  float64
	alpha       float64
	transform   geometry.Transformation2D
	background  scene.Color
	font        *text.Font
	phase       float64
	orientation float64
}

func newConfig(opts []Option) *config {
	c := &config{
		anchor:      geometry.Center,
		fill:        scene.Black,
		stroke:      scene.Transparent,
		strokeWidth: units.Pixels(0),
		alpha:       1,
		background:  scene.White,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAnchor sets which point of the bounding box the position refers
// to. The default is geometry.Center.
func WithAnchor(a geometry.Anchor) Option {
	return func(c *config) { c.anchor = a }
}

// WithFill sets the fill or foreground color. The default is black.
func WithFill(col scene.Color) Option {
	return func(c *config) { c.fill = col }
}

// WithStroke sets the outline color and width. No outline is drawn by
// default.
func WithStroke(col scene.Color, width units.Size) Option {
	return func(c *config) {
		c.stroke = col
		c.strokeWidth = width
	}
}

// WithDashes makes the outline dashed.
func WithDashes(offset float64, dashes ...float64) Option {
	return func(c *config) {
		c.dashOffset = offset
		c.dashes = append([]float64(nil), dashes...)
	}
}

// WithAlpha sets the opacity in [0, 1].
func WithAlpha(a float64) Option {
	return func(c *config) { c.alpha = a }
}

// WithTransform sets the initial transform.
func WithTransform(t geometry.Transformation2D) Option {
	return func(c *config) { c.transform = t }
}

// WithBackground sets the second pattern color. The default is white.
func WithBackground(col scene.Color) Option {
	return func(c *config) { c.background = col }
}

// WithFont sets the font of a text stimulus.
func WithFont(f *text.Font) Option {
	return func(c *config) { c.font = f }
}

// WithPhase sets the initial grating phase in degrees.
func WithPhase(deg float64) Option {
	return func(c *config) { c.phase = deg }
}

// WithOrientation sets the initial grating orientation in degrees.
func WithOrientation(deg float64) Option {
	return func(c *config) { c.orientation = deg }
}

// strokeStyle returns the outline style for a width in pixels.
func (c *config) strokeStyle(width float64) scene.StrokeStyle {
	s := scene.NewStrokeStyle(width)
	if len(c.dashes) > 0 {
		s = s.WithDashes(c.dashOffset, c.dashes...)
	}
	return s
}
