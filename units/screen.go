package units

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidScreen is returned when a PhysicalScreen has a missing,
// non-positive or non-finite parameter.
var ErrInvalidScreen = errors.New("units: invalid physical screen")

// PixelSize is the size of a window's drawable area in pixels.
type PixelSize struct {
	Width, Height int
}

// Empty reports whether either dimension is zero or negative.
func (p PixelSize) Empty() bool {
	return p.Width <= 0 || p.Height <= 0
}

// String returns "WxH".
func (p PixelSize) String() string {
	return fmt.Sprintf("%dx%d", p.Width, p.Height)
}

// PhysicalScreen describes the display geometry used to resolve physical
// and angular units. There are no defaults: both fields must be set from
// the experiment's configuration.
type PhysicalScreen struct {
	// PixelDensity is the number of pixels per millimeter.
	PixelDensity float64

	// ViewingDistance is the observer's distance to the screen in millimeters.
	ViewingDistance float64
}

// NewPhysicalScreen derives the pixel density from the physical width of
// a display that is widthPx pixels wide.
func NewPhysicalScreen(widthPx int, widthMM, viewingDistanceMM float64) PhysicalScreen {
	var density float64
	if widthMM > 0 {
		density = float64(widthPx) / widthMM
	}
	return PhysicalScreen{PixelDensity: density, ViewingDistance: viewingDistanceMM}
}

// WidthMM returns the physical width in millimeters of widthPx pixels.
func (s PhysicalScreen) WidthMM(widthPx int) float64 {
	if s.PixelDensity == 0 {
		return 0
	}
	return float64(widthPx) / s.PixelDensity
}

// Validate reports whether both parameters are positive and finite.
func (s PhysicalScreen) Validate() error {
	if !positive(s.PixelDensity) {
		return fmt.Errorf("%w: pixel density %v px/mm", ErrInvalidScreen, s.PixelDensity)
	}
	if !positive(s.ViewingDistance) {
		return fmt.Errorf("%w: viewing distance %v mm", ErrInvalidScreen, s.ViewingDistance)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Context is a consistent snapshot of the evaluation context for one
// frame. Reading the window size and screen once per frame keeps geometry
// and transforms evaluated against the same values.
type Context struct {
	Window PixelSize
	Screen PhysicalScreen
}

// Eval resolves s against the snapshot.
func (c Context) Eval(s Size) float64 {
	return s.Eval(c.Window, c.Screen)
}

// EvalPair resolves two sizes, typically a coordinate pair.
func (c Context) EvalPair(x, y Size) (float64, float64) {
	return x.Eval(c.Window, c.Screen), y.Eval(c.Window, c.Screen)
}
