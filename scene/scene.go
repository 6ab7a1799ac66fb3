package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/psykit/geometry"
)

var (
	// ErrConsumed is returned when a scene is consumed a second time.
	ErrConsumed = errors.New("scene: already consumed")

	// ErrUnbalancedLayers is returned when StartLayer and EndLayer calls
	// do not match.
	ErrUnbalancedLayers = errors.New("scene: unbalanced layers")
)

// Scene accumulates the drawing commands of one frame.
//
// A Scene is not safe for concurrent use. It is recorded by one
// goroutine and then handed to a renderer, which consumes it once.
type Scene struct {
	width, height int
	background    Color

	commands []Command

	// base holds the composed layer transform of each open layer;
	// base[0] is the identity of the root.
	base     []geometry.Matrix
	consumed bool
}

// New creates an empty scene for a width×height target with a
// transparent background.
func New(width, height int) *Scene {
	return &Scene{
		width:    width,
		height:   height,
		commands: make([]Command, 0, 32),
		base:     []geometry.Matrix{geometry.IdentityMatrix()},
	}
}

// Width returns the target width in pixels.
func (s *Scene) Width() int { return s.width }

// Height returns the target height in pixels.
func (s *Scene) Height() int { return s.height }

// Background returns the clear color.
func (s *Scene) Background() Color { return s.background }

// SetBackground sets the color the target is cleared to before drawing.
func (s *Scene) SetBackground(c Color) {
	s.mustRecord()
	s.background = c
}

// FillShape fills p with brush. Degenerate shapes and lines, which have
// no area, record nothing.
func (s *Scene) FillShape(p geometry.Primitive, brush Brush, opts ...Option) {
	s.mustRecord()
	if p == nil || p.Empty() || brush == nil {
		return
	}
	if _, ok := p.(geometry.Line); ok {
		return
	}
	s.commands = append(s.commands, FillCommand{Shape: p, Brush: brush, Paint: s.paint(opts)})
}

// StrokeShape strokes the outline of p.
func (s *Scene) StrokeShape(p geometry.Primitive, brush Brush, style StrokeStyle, opts ...Option) {
	s.mustRecord()
	if p == nil || p.Empty() || brush == nil || !(style.Width > 0) {
		return
	}
	s.commands = append(s.commands, StrokeCommand{Shape: p, Brush: brush, Style: style, Paint: s.paint(opts)})
}

// DrawGlyphs draws a pre-shaped glyph run.
func (s *Scene) DrawGlyphs(run GlyphRun, brush Brush, opts ...Option) {
	s.mustRecord()
	if run.Empty() || brush == nil {
		return
	}
	s.commands = append(s.commands, GlyphsCommand{Run: run, Brush: brush, Paint: s.paint(opts)})
}

// DrawImage draws b stretched into r.
func (s *Scene) DrawImage(b *Bitmap, r geometry.Rect, opts ...Option) {
	s.mustRecord()
	if b == nil || r.Empty() || b.Width() == 0 || b.Height() == 0 {
		return
	}
	o := applyOptions(opts)
	s.commands = append(s.commands, ImageCommand{
		Bitmap:   b,
		Rect:     r,
		Sampling: o.sampling,
		Paint:    s.paintFrom(o),
	})
}

// StartLayer opens a layer composited with blend and clipped to clip. A
// nil clip leaves the layer unclipped. Every StartLayer must be matched
// by one EndLayer.
func (s *Scene) StartLayer(blend BlendMode, clip geometry.Primitive, opts ...Option) {
	s.mustRecord()
	o := applyOptions(opts)
	parent := s.top()
	s.commands = append(s.commands, PushLayerCommand{
		Blend:         blend,
		Alpha:         o.alpha,
		Clip:          clip,
		ClipTransform: parent.Multiply(o.clipTransform),
	})
	s.base = append(s.base, parent.Multiply(o.layerTransform))
}

// EndLayer closes the innermost layer. It panics when no layer is open.
func (s *Scene) EndLayer() {
	s.mustRecord()
	if len(s.base) == 1 {
		panic("scene: EndLayer without matching StartLayer")
	}
	s.base = s.base[:len(s.base)-1]
	s.commands = append(s.commands, PopLayerCommand{})
}

// Depth returns the number of open layers.
func (s *Scene) Depth() int { return len(s.base) - 1 }

// Balanced reports whether every StartLayer has been matched.
func (s *Scene) Balanced() bool { return s.Depth() == 0 }

// Validate returns ErrUnbalancedLayers when layers are still open.
func (s *Scene) Validate() error {
	if d := s.Depth(); d != 0 {
		return fmt.Errorf("%w: %d open", ErrUnbalancedLayers, d)
	}
	return nil
}

// Commands returns the recorded commands in issue order. The slice must
// not be modified.
func (s *Scene) Commands() []Command { return s.commands }

// Len returns the number of recorded commands.
func (s *Scene) Len() int { return len(s.commands) }

// Consumed reports whether the scene has been consumed.
func (s *Scene) Consumed() bool { return s.consumed }

// Consume hands the commands to a renderer and marks the scene used.
// It returns ErrConsumed on a second call and ErrUnbalancedLayers if
// layers are still open.
func (s *Scene) Consume() ([]Command, error) {
	if s.consumed {
		return nil, ErrConsumed
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	s.consumed = true
	return s.commands, nil
}

func (s *Scene) mustRecord() {
	if s.consumed {
		panic("scene: recording into a consumed scene")
	}
}

func (s *Scene) top() geometry.Matrix {
	return s.base[len(s.base)-1]
}

func (s *Scene) paint(opts []Option) Paint {
	return s.paintFrom(applyOptions(opts))
}

func (s *Scene) paintFrom(o options) Paint {
	return Paint{
		Transform: s.top().Multiply(o.transform),
		Blend:     o.blend,
		Alpha:     o.alpha,
	}
}
