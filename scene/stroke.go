package scene

// Join is the shape of stroke corners.
type Join uint8

// Join styles.
const (
	JoinMiter Join = iota
	JoinRound
	JoinBevel
)

// Cap is the shape of open stroke ends.
type Cap uint8

// Cap styles.
const (
	CapButt Cap = iota
	CapSquare
	CapRound
)

// StrokeStyle describes how an outline is stroked.
type StrokeStyle struct {
	Width      float64
	Join       Join
	MiterLimit float64
	StartCap   Cap
	EndCap     Cap

	// Dashes alternates on and off lengths. Empty means solid.
	Dashes     []float64
	DashOffset float64
}

// NewStrokeStyle returns a solid stroke of the given width with miter
// joins (limit 4) and butt caps.
func NewStrokeStyle(width float64) StrokeStyle {
	return StrokeStyle{
		Width:      width,
		Join:       JoinMiter,
		MiterLimit: 4,
		StartCap:   CapButt,
		EndCap:     CapButt,
	}
}

// WithDashes returns a copy of s with a dash pattern.
func (s StrokeStyle) WithDashes(offset float64, dashes ...float64) StrokeStyle {
	s.Dashes = append([]float64(nil), dashes...)
	s.DashOffset = offset
	return s
}

// WithCaps returns a copy of s with both caps set to c.
func (s StrokeStyle) WithCaps(c Cap) StrokeStyle {
	s.StartCap = c
	s.EndCap = c
	return s
}

// WithJoin returns a copy of s with the join style set.
func (s StrokeStyle) WithJoin(j Join) StrokeStyle {
	s.Join = j
	return s
}
