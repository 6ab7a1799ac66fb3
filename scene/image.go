package scene

import (
	"image"

	"github.com/gogpu/psykit/geometry"
)

// Bitmap is image data prepared by a renderer for use in an ImageBrush
// or DrawImage. Image always holds a CPU copy; Handle carries the
// backend's native resource, if any.
type Bitmap struct {
	img *image.RGBA

	// Handle is the backend-specific resource (for example a GPU texture).
	Handle any
}

// NewBitmap wraps premultiplied RGBA pixels. Renderers call it from
// CreateBitmap.
func NewBitmap(img *image.RGBA, handle any) *Bitmap {
	return &Bitmap{img: img, Handle: handle}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.img.Rect.Dx() }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.img.Rect.Dy() }

// Image returns the CPU copy of the pixels. It must not be modified.
func (b *Bitmap) Image() *image.RGBA { return b.img }

// ImageSampling selects the image filter.
type ImageSampling uint8

// Sampling modes.
const (
	SamplingNearest ImageSampling = iota
	SamplingLinear
)

// String returns the sampling name.
func (s ImageSampling) String() string {
	if s == SamplingLinear {
		return "Linear"
	}
	return "Nearest"
}

// ImageFit maps the bitmap's pixel size to its size in user space.
//
// The concrete fits are FitOriginal and FitExact.
type ImageFit interface {
	// Scale returns the scale factors applied to a w×h bitmap.
	Scale(w, h int) (sx, sy float64)

	isImageFit()
}

// FitOriginal keeps the bitmap's pixel size.
type FitOriginal struct{}

// FitExact stretches the bitmap to Width×Height.
type FitExact struct {
	Width, Height float64
}

func (FitOriginal) isImageFit() {}
func (FitExact) isImageFit()    {}

// Scale implements ImageFit.
func (FitOriginal) Scale(int, int) (float64, float64) { return 1, 1 }

// Scale implements ImageFit.
func (f FitExact) Scale(w, h int) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return f.Width / float64(w), f.Height / float64(h)
}

// ImageBrush paints a bitmap placed with its top-left corner at Start
// and scaled by Fit. EdgeX and EdgeY select the behavior outside the
// bitmap.
type ImageBrush struct {
	Bitmap   *Bitmap
	Start    geometry.Point
	Fit      ImageFit
	EdgeX    Extend
	EdgeY    Extend
	Sampling ImageSampling

	// Transform maps brush space to user space. Nil is identity.
	Transform *geometry.Matrix

	// Alpha multiplies the bitmap's opacity.
	Alpha float32
}

func (*ImageBrush) isBrush() {}

// NewImageBrush returns a brush that paints b at (x, y) with its
// original size, nearest sampling, padded edges and full opacity.
func NewImageBrush(b *Bitmap, x, y float64) *ImageBrush {
	return &ImageBrush{
		Bitmap: b,
		Start:  geometry.Pt(x, y),
		Fit:    FitOriginal{},
		Alpha:  1,
	}
}

// BrushMatrix returns the transform from bitmap pixel coordinates to
// user space: Transform · Translate(Start) · Scale(Fit).
func (b *ImageBrush) BrushMatrix() geometry.Matrix {
	sx, sy := 1.0, 1.0
	if b.Fit != nil && b.Bitmap != nil {
		sx, sy = b.Fit.Scale(b.Bitmap.Width(), b.Bitmap.Height())
	}
	m := geometry.Translate(b.Start.X, b.Start.Y).Multiply(geometry.Scale(sx, sy))
	if b.Transform != nil {
		m = b.Transform.Multiply(m)
	}
	return m
}
