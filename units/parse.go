package units

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrUnknownUnit is returned when the unit suffix is missing or not
	// one of px, vw, vh, deg, mm, cm, in, pt.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrInvalidNumber is returned when the magnitude is empty or malformed.
	ErrInvalidNumber = errors.New("invalid number")
)

// ParseError describes a failure to parse a Size from text.
type ParseError struct {
	// Input is the string passed to Parse.
	Input string

	// Unit is the unit suffix that was found, if any.
	Unit string

	// Err is ErrUnknownUnit or ErrInvalidNumber, possibly wrapping the
	// strconv error.
	Err error
}

func (e *ParseError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("units: parse %q: %v %q", e.Input, e.Err, e.Unit)
	}
	return fmt.Sprintf("units: parse %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse parses a size of the form <number><unit> where unit is one of
// px, vw, vh, deg, mm, cm, in or pt. A leading '-' negates the value.
// Surrounding whitespace and whitespace between number and unit are
// ignored.
//
//	units.Parse("10px")    // Pixels(10)
//	units.Parse("-2.5deg") // Degrees(-2.5)
//	units.Parse("0.5vw")   // ViewportWidth(0.5)
//
// Parse never defaults: an input without a unit is an error.
func Parse(s string) (Size, error) {
	in := s
	s = strings.TrimSpace(s)

	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	end := strings.IndexFunc(s, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})
	if end < 0 {
		end = len(s)
	}
	number, unit := s[:end], strings.TrimSpace(s[end:])

	if number == "" {
		return nil, &ParseError{Input: in, Err: ErrInvalidNumber}
	}
	v, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return nil, &ParseError{Input: in, Err: fmt.Errorf("%w: %w", ErrInvalidNumber, err)}
	}
	if negative {
		v = -v
	}

	switch unit {
	case "px":
		return Pixels(v), nil
	case "vw":
		return ViewportWidth(v), nil
	case "vh":
		return ViewportHeight(v), nil
	case "deg":
		return Degrees(v), nil
	case "mm":
		return Millimeters(v), nil
	case "cm":
		return Centimeters(v), nil
	case "in":
		return Inches(v), nil
	case "pt":
		return Points(v), nil
	}
	return nil, &ParseError{Input: in, Unit: unit, Err: ErrUnknownUnit}
}

// MustParse is like Parse but panics on error.
// It is intended for package-level variables and tests.
func MustParse(s string) Size {
	size, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return size
}
