package geometry

import (
	"math"

	"github.com/gogpu/psykit/units"
)

// Transformation2D is an affine transform whose translation and pivot
// components are Sizes, resolved to a Matrix at draw time.
//
// The concrete variants are Identity, RotationOrigin, RotationPoint,
// ScaleOrigin, ScalePoint, ShearOrigin, ShearPoint, Translation and
// Product. Angles are in degrees.
type Transformation2D interface {
	// Eval resolves the transform to a pixel-space matrix.
	Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix

	isTransformation()
}

// Identity leaves points unchanged.
type Identity struct{}

// RotationOrigin rotates about the origin.
type RotationOrigin struct {
	Angle float64
}

// RotationPoint rotates about (X, Y).
type RotationPoint struct {
	Angle float64
	X, Y  units.Size
}

// ScaleOrigin scales about the origin.
type ScaleOrigin struct {
	SX, SY float64
}

// ScalePoint scales about (X, Y).
type ScalePoint struct {
	SX, SY float64
	X, Y   units.Size
}

// ShearOrigin shears about the origin: x' = x + SX*y, y' = SY*x + y.
type ShearOrigin struct {
	SX, SY float64
}

// ShearPoint shears about (X, Y).
type ShearPoint struct {
	SX, SY float64
	X, Y   units.Size
}

// Translation moves points by (X, Y).
type Translation struct {
	X, Y units.Size
}

// Product is the matrix product A·B. B is applied first.
type Product struct {
	A, B Transformation2D
}

func (Identity) isTransformation()       {}
func (RotationOrigin) isTransformation() {}
func (RotationPoint) isTransformation()  {}
func (ScaleOrigin) isTransformation()    {}
func (ScalePoint) isTransformation()     {}
func (ShearOrigin) isTransformation()    {}
func (ShearPoint) isTransformation()     {}
func (Translation) isTransformation()    {}
func (Product) isTransformation()        {}

// Eval implements Transformation2D.
func (Identity) Eval(units.PixelSize, units.PhysicalScreen) Matrix {
	return IdentityMatrix()
}

// Eval implements Transformation2D.
func (t RotationOrigin) Eval(units.PixelSize, units.PhysicalScreen) Matrix {
	return Rotate(radians(t.Angle))
}

// Eval implements Transformation2D.
func (t RotationPoint) Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix {
	sin, cos := math.Sincos(radians(t.Angle))
	x := evalSize(t.X, win, screen)
	y := evalSize(t.Y, win, screen)
	return Matrix{
		A: cos, B: -sin, C: x*(1-cos) + y*sin,
		D: sin, E: cos, F: y*(1-cos) - x*sin,
	}
}

// Eval implements Transformation2D.
func (t ScaleOrigin) Eval(units.PixelSize, units.PhysicalScreen) Matrix {
	return Scale(t.SX, t.SY)
}

// Eval implements Transformation2D.
func (t ScalePoint) Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix {
	return aboutPoint(Scale(t.SX, t.SY), evalSize(t.X, win, screen), evalSize(t.Y, win, screen))
}

// Eval implements Transformation2D.
func (t ShearOrigin) Eval(units.PixelSize, units.PhysicalScreen) Matrix {
	return Shear(t.SX, t.SY)
}

// Eval implements Transformation2D.
func (t ShearPoint) Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix {
	return aboutPoint(Shear(t.SX, t.SY), evalSize(t.X, win, screen), evalSize(t.Y, win, screen))
}

// Eval implements Transformation2D.
func (t Translation) Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix {
	return Translate(evalSize(t.X, win, screen), evalSize(t.Y, win, screen))
}

// Eval implements Transformation2D.
func (t Product) Eval(win units.PixelSize, screen units.PhysicalScreen) Matrix {
	return evalTransform(t.A, win, screen).Multiply(evalTransform(t.B, win, screen))
}

// aboutPoint returns T(x, y) · m · T(-x, -y).
func aboutPoint(m Matrix, x, y float64) Matrix {
	return Translate(x, y).Multiply(m).Multiply(Translate(-x, -y))
}

// Compose folds ts left into nested Products: Compose(a, b, c) is
// Product{Product{a, b}, c}, so c is applied to points first. Compose()
// is Identity.
func Compose(ts ...Transformation2D) Transformation2D {
	if len(ts) == 0 {
		return Identity{}
	}
	acc := ts[0]
	for _, t := range ts[1:] {
		acc = Product{A: acc, B: t}
	}
	return acc
}

// Then returns the transform that applies t first and next second.
func Then(t, next Transformation2D) Transformation2D {
	return Product{A: next, B: t}
}

// TransformPoint evaluates t and applies it to (x, y).
func TransformPoint(t Transformation2D, x, y float64, win units.PixelSize, screen units.PhysicalScreen) (float64, float64) {
	p := evalTransform(t, win, screen).TransformPoint(Pt(x, y))
	return p.X, p.Y
}

// Resolve evaluates t against a frame context.
func Resolve(t Transformation2D, ctx units.Context) Matrix {
	return evalTransform(t, ctx.Window, ctx.Screen)
}

// NDC returns the matrix mapping window pixels to normalized device
// coordinates: x from [0, W] to [-1, 1] and y from [0, H] to [1, -1].
func NDC(win units.PixelSize) Matrix {
	if win.Empty() {
		return IdentityMatrix()
	}
	w, h := float64(win.Width), float64(win.Height)
	return Matrix{
		A: 2 / w, B: 0, C: -1,
		D: 0, E: -2 / h, F: 1,
	}
}

func evalTransform(t Transformation2D, win units.PixelSize, screen units.PhysicalScreen) Matrix {
	if t == nil {
		return IdentityMatrix()
	}
	return t.Eval(win, screen)
}

func evalSize(s units.Size, win units.PixelSize, screen units.PhysicalScreen) float64 {
	if s == nil {
		return 0
	}
	return s.Eval(win, screen)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
