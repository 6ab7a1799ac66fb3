package geometry

import "fmt"

// Anchor names the reference point of a box: the point that a stimulus'
// (x, y) position refers to.
type Anchor int

// Anchor values.
const (
	TopLeft Anchor = iota
	TopCenter
	TopRight
	CenterLeft
	Center
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

var anchorNames = [...]string{
	TopLeft:      "top-left",
	TopCenter:    "top-center",
	TopRight:     "top-right",
	CenterLeft:   "center-left",
	Center:       "center",
	CenterRight:  "center-right",
	BottomLeft:   "bottom-left",
	BottomCenter: "bottom-center",
	BottomRight:  "bottom-right",
}

// String returns the hyphenated anchor name, e.g. "top-left".
func (a Anchor) String() string {
	if a < 0 || int(a) >= len(anchorNames) {
		return fmt.Sprintf("Anchor(%d)", int(a))
	}
	return anchorNames[a]
}

// ParseAnchor parses a hyphenated anchor name.
func ParseAnchor(s string) (Anchor, error) {
	for i, name := range anchorNames {
		if name == s {
			return Anchor(i), nil
		}
	}
	return TopLeft, fmt.Errorf("geometry: unknown anchor %q", s)
}

// ToTopLeft returns the top-left corner of a w×h box whose anchor point
// is at (x, y).
func (a Anchor) ToTopLeft(x, y, w, h float64) (float64, float64) {
	switch a {
	case TopCenter:
		return x - w/2, y
	case TopRight:
		return x - w, y
	case CenterLeft:
		return x, y - h/2
	case Center:
		return x - w/2, y - h/2
	case CenterRight:
		return x - w, y - h/2
	case BottomLeft:
		return x, y - h
	case BottomCenter:
		return x - w/2, y - h
	case BottomRight:
		return x - w, y - h
	default:
		return x, y
	}
}

// ToCenter returns the center of a w×h box whose anchor point is at (x, y).
func (a Anchor) ToCenter(x, y, w, h float64) (float64, float64) {
	tx, ty := a.ToTopLeft(x, y, w, h)
	return tx + w/2, ty + h/2
}
