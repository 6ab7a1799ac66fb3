package scene

import "github.com/gogpu/psykit/geometry"

// Font is a font face loaded by a renderer. Glyph outlines are returned
// in pixels at the given size, y down, relative to the glyph origin on
// the baseline.
type Font interface {
	Name() string
	GlyphOutline(id uint32, size float64) (*geometry.Path, error)
}

// Glyph is a positioned glyph. X and Y are offsets from the run position.
type Glyph struct {
	ID   uint32
	X, Y float64
}

// GlyphRun is a pre-shaped sequence of glyphs. Position is the origin of
// the first glyph on the baseline.
type GlyphRun struct {
	Position geometry.Point
	Glyphs   []Glyph
	Font     Font
	Size     float64
}

// Empty reports whether the run draws nothing.
func (r GlyphRun) Empty() bool {
	return len(r.Glyphs) == 0 || r.Font == nil || !(r.Size > 0)
}
