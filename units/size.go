package units

import (
	"math"
	"strconv"
)

// Size is a length expression resolved to pixels at evaluation time.
//
// Size values are immutable. Eval is a pure function of the expression
// tree and its arguments.
//
// The concrete variants are Pixels, ViewportWidth, ViewportHeight,
// Degrees, Millimeters, Centimeters, Inches, Points, Quotient, Product,
// Sum and Difference.
type Size interface {
	// Eval resolves the size to pixels.
	Eval(win PixelSize, screen PhysicalScreen) float64

	// String formats the size. Unit variants format as "<number><unit>"
	// and parse back with Parse.
	String() string

	isSize()
}

// Pixels is a length in device pixels.
type Pixels float64

// ViewportWidth is a fraction of the window width (0.5 is half the width).
type ViewportWidth float64

// ViewportHeight is a fraction of the window height.
type ViewportHeight float64

// Degrees is a length given as degrees of visual angle at the configured
// viewing distance.
type Degrees float64

// Millimeters is a physical length on the screen surface.
type Millimeters float64

// Centimeters is a physical length on the screen surface.
type Centimeters float64

// Inches is a physical length on the screen surface.
type Inches float64

// Points is a typographic length, 1/72 inch.
type Points float64

// Quotient divides the evaluated size by a constant.
type Quotient struct {
	Size    Size
	Divisor float64
}

// Product multiplies the evaluated size by a constant.
type Product struct {
	Size   Size
	Factor float64
}

// Sum adds two evaluated sizes.
type Sum struct {
	A, B Size
}

// Difference subtracts the evaluated B from the evaluated A.
type Difference struct {
	A, B Size
}

func (v Pixels) Eval(PixelSize, PhysicalScreen) float64 { return float64(v) }

func (v ViewportWidth) Eval(win PixelSize, _ PhysicalScreen) float64 {
	return float64(v) * float64(win.Width)
}

func (v ViewportHeight) Eval(win PixelSize, _ PhysicalScreen) float64 {
	return float64(v) * float64(win.Height)
}

// Eval converts the visual angle to the chord length on the screen,
// 2 * d * tan(angle/2), and evaluates that as millimeters.
func (v Degrees) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return v.ToMillimeters(screen.ViewingDistance).Eval(win, screen)
}

// ToMillimeters returns the on-screen length subtended by the angle at the
// given viewing distance in millimeters.
func (v Degrees) ToMillimeters(viewingDistance float64) Millimeters {
	rad := float64(v) * math.Pi / 180
	return Millimeters(2 * viewingDistance * math.Tan(rad/2))
}

// Eval scales the length by the pixel density. This is the same as
// mm * width_px / width_mm for the window's physical width.
func (v Millimeters) Eval(_ PixelSize, screen PhysicalScreen) float64 {
	return float64(v) * screen.PixelDensity
}

func (v Centimeters) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return Millimeters(float64(v)*10).Eval(win, screen)
}

func (v Inches) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return Millimeters(float64(v)*mmPerInch).Eval(win, screen)
}

func (v Points) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return Inches(float64(v)/pointsPerInch).Eval(win, screen)
}

func (q Quotient) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return q.Size.Eval(win, screen) / q.Divisor
}

func (p Product) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return p.Size.Eval(win, screen) * p.Factor
}

func (s Sum) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return s.A.Eval(win, screen) + s.B.Eval(win, screen)
}

func (d Difference) Eval(win PixelSize, screen PhysicalScreen) float64 {
	return d.A.Eval(win, screen) - d.B.Eval(win, screen)
}

const (
	mmPerInch     = 25.4
	pointsPerInch = 72.0
)

// Add returns the expression a + b.
func Add(a, b Size) Size { return Sum{A: a, B: b} }

// Sub returns the expression a - b.
func Sub(a, b Size) Size { return Difference{A: a, B: b} }

// Mul returns the expression s * k.
func Mul(s Size, k float64) Size { return Product{Size: s, Factor: k} }

// Div returns the expression s / k.
func Div(s Size, k float64) Size { return Quotient{Size: s, Divisor: k} }

// Neg returns the expression -s, represented as s * -1.
func Neg(s Size) Size { return Product{Size: s, Factor: -1} }

// Zero is the zero length.
var Zero Size = Pixels(0)

func formatNumber(v float64, unit string) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + unit
}

func (v Pixels) String() string         { return formatNumber(float64(v), "px") }
func (v ViewportWidth) String() string  { return formatNumber(float64(v), "vw") }
func (v ViewportHeight) String() string { return formatNumber(float64(v), "vh") }
func (v Degrees) String() string        { return formatNumber(float64(v), "deg") }
func (v Millimeters) String() string    { return formatNumber(float64(v), "mm") }
func (v Centimeters) String() string    { return formatNumber(float64(v), "cm") }
func (v Inches) String() string         { return formatNumber(float64(v), "in") }
func (v Points) String() string         { return formatNumber(float64(v), "pt") }

func (q Quotient) String() string {
	return "(" + q.Size.String() + " / " + strconv.FormatFloat(q.Divisor, 'g', -1, 64) + ")"
}

func (p Product) String() string {
	return "(" + p.Size.String() + " * " + strconv.FormatFloat(p.Factor, 'g', -1, 64) + ")"
}

func (s Sum) String() string        { return "(" + s.A.String() + " + " + s.B.String() + ")" }
func (d Difference) String() string { return "(" + d.A.String() + " - " + d.B.String() + ")" }

func (Pixels) isSize()         {}
func (ViewportWidth) isSize()  {}
func (ViewportHeight) isSize() {}
func (Degrees) isSize()        {}
func (Millimeters) isSize()    {}
func (Centimeters) isSize()    {}
func (Inches) isSize()         {}
func (Points) isSize()         {}
func (Quotient) isSize()       {}
func (Product) isSize()        {}
func (Sum) isSize()            {}
func (Difference) isSize()     {}

// Px returns v pixels as a Size.
func Px(v float64) Size { return Pixels(v) }
