package scene

import "github.com/gogpu/psykit/geometry"

// CommandType identifies the type of a command.
type CommandType uint8

// Command types.
const (
	CmdFill CommandType = iota
	CmdStroke
	CmdGlyphs
	CmdImage
	CmdPushLayer
	CmdPopLayer
)

var commandTypeNames = [...]string{
	CmdFill:      "Fill",
	CmdStroke:    "Stroke",
	CmdGlyphs:    "Glyphs",
	CmdImage:     "Image",
	CmdPushLayer: "PushLayer",
	CmdPopLayer:  "PopLayer",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is a recorded drawing operation.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// Paint holds the state shared by drawing commands. Transform maps user
// space to target pixels and already includes enclosing layer transforms.
type Paint struct {
	Transform geometry.Matrix
	Blend     BlendMode
	Alpha     float32
}

// FillCommand fills a primitive with a brush.
type FillCommand struct {
	Shape geometry.Primitive
	Brush Brush
	Paint
}

// Type implements Command.
func (FillCommand) Type() CommandType { return CmdFill }

// StrokeCommand strokes a primitive's outline.
type StrokeCommand struct {
	Shape geometry.Primitive
	Brush Brush
	Style StrokeStyle
	Paint
}

// Type implements Command.
func (StrokeCommand) Type() CommandType { return CmdStroke }

// GlyphsCommand draws a glyph run.
type GlyphsCommand struct {
	Run   GlyphRun
	Brush Brush
	Paint
}

// Type implements Command.
func (GlyphsCommand) Type() CommandType { return CmdGlyphs }

// ImageCommand draws a bitmap stretched into Rect.
type ImageCommand struct {
	Bitmap   *Bitmap
	Rect     geometry.Rect
	Sampling ImageSampling
	Paint
}

// Type implements Command.
func (ImageCommand) Type() CommandType { return CmdImage }

// PushLayerCommand starts an isolated layer. Content drawn until the
// matching PopLayerCommand is clipped to Clip (nil means unclipped) and
// composited with Blend and Alpha.
type PushLayerCommand struct {
	Blend         BlendMode
	Alpha         float32
	Clip          geometry.Primitive
	ClipTransform geometry.Matrix
}

// Type implements Command.
func (PushLayerCommand) Type() CommandType { return CmdPushLayer }

// PopLayerCommand ends the innermost layer.
type PopLayerCommand struct{}

// Type implements Command.
func (PopLayerCommand) Type() CommandType { return CmdPopLayer }
