package units

import "strconv"

// NumberOrSize holds either a dimensionless number or a Size. Parameters
// such as line spacing accept both.
type NumberOrSize struct {
	size   Size
	number float64
}

// Number returns a dimensionless NumberOrSize.
func Number(v float64) NumberOrSize {
	return NumberOrSize{number: v}
}

// OfSize returns a NumberOrSize holding s.
func OfSize(s Size) NumberOrSize {
	return NumberOrSize{size: s}
}

// IsDimensionless reports whether n holds a plain number.
func (n NumberOrSize) IsDimensionless() bool {
	return n.size == nil
}

// Size returns the held Size, or nil for a dimensionless value.
func (n NumberOrSize) Size() Size {
	return n.size
}

// Eval returns the number unchanged, or the size evaluated to pixels.
func (n NumberOrSize) Eval(win PixelSize, screen PhysicalScreen) float64 {
	if n.size == nil {
		return n.number
	}
	return n.size.Eval(win, screen)
}

func (n NumberOrSize) String() string {
	if n.size == nil {
		return strconv.FormatFloat(n.number, 'g', -1, 64)
	}
	return n.size.String()
}
