package units

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Size
	}{
		{"10px", Pixels(10)},
		{"-2.5deg", Degrees(-2.5)},
		{"0.5vw", ViewportWidth(0.5)},
		{"1vh", ViewportHeight(1)},
		{"3mm", Millimeters(3)},
		{"2.54cm", Centimeters(2.54)},
		{"1in", Inches(1)},
		{"12pt", Points(12)},
		{"  7px ", Pixels(7)},
		{"7 px", Pixels(7)},
		{".5px", Pixels(0.5)},
		{"-0px", Pixels(0)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in      string
		wantErr error
	}{
		{"10", ErrUnknownUnit},
		{"10qq", ErrUnknownUnit},
		{"10PX", ErrUnknownUnit},
		{"px", ErrInvalidNumber},
		{"", ErrInvalidNumber},
		{"-", ErrInvalidNumber},
		{"1.2.3px", ErrInvalidNumber},
		{"abc", ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.in, got)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse(%q) error = %v, want %v", tt.in, err, tt.wantErr)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not *ParseError", err)
			}
			if pe.Input != tt.in {
				t.Errorf("ParseError.Input = %q, want %q", pe.Input, tt.in)
			}
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []Size{
		Pixels(10), Pixels(-0.125), ViewportWidth(0.5), ViewportHeight(0.333),
		Degrees(-2.5), Millimeters(1e-3), Centimeters(12), Inches(0.75), Points(9),
	} {
		got, err := Parse(s.String())
		if err != nil {
			t.Errorf("Parse(%q) error: %v", s.String(), err)
			continue
		}
		if got != s {
			t.Errorf("Parse(%q) = %#v, want %#v", s.String(), got, s)
		}
	}
}

func TestParsedPixelsIgnoreContext(t *testing.T) {
	s := MustParse("10px")
	for _, win := range []PixelSize{{1, 1}, {800, 600}, {3840, 2160}} {
		for _, screen := range []PhysicalScreen{{1, 1}, refScreen} {
			if got := s.Eval(win, screen); got != 10 {
				t.Errorf("10px in %v = %v", win, got)
			}
		}
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic on bad input")
		}
	}()
	MustParse("10furlongs")
}

func TestTreeString(t *testing.T) {
	s := Sub(Add(Pixels(1), Mul(Degrees(2), 3)), Div(ViewportWidth(0.5), 2))
	want := "((1px + (2deg * 3)) - (0.5vw / 2))"
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
