package units

import (
	"errors"
	"math"
	"testing"
)

func TestPhysicalScreenValidate(t *testing.T) {
	tests := []struct {
		name   string
		screen PhysicalScreen
		ok     bool
	}{
		{"valid", refScreen, true},
		{"zero value", PhysicalScreen{}, false},
		{"no density", PhysicalScreen{ViewingDistance: 570}, false},
		{"no distance", PhysicalScreen{PixelDensity: 4}, false},
		{"negative", PhysicalScreen{PixelDensity: -1, ViewingDistance: 570}, false},
		{"nan", PhysicalScreen{PixelDensity: math.NaN(), ViewingDistance: 570}, false},
		{"inf", PhysicalScreen{PixelDensity: 4, ViewingDistance: math.Inf(1)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.screen.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidScreen) {
				t.Errorf("Validate() = %v, want ErrInvalidScreen", err)
			}
		})
	}
}

func TestNewPhysicalScreen(t *testing.T) {
	s := NewPhysicalScreen(1920, 300, 570)
	if !approxEqual(s.PixelDensity, 6.4, 1e-12) || s.ViewingDistance != 570 {
		t.Errorf("NewPhysicalScreen = %+v", s)
	}
	if z := NewPhysicalScreen(1920, 0, 570); z.Validate() == nil {
		t.Error("zero physical width should not validate")
	}
}

func TestPixelSize(t *testing.T) {
	if !(PixelSize{}).Empty() || (PixelSize{Width: 2, Height: 1}).Empty() {
		t.Error("PixelSize.Empty mismatch")
	}
	if got := (PixelSize{Width: 640, Height: 480}).String(); got != "640x480" {
		t.Errorf("String() = %q", got)
	}
}

func TestNumberOrSize(t *testing.T) {
	n := Number(1.5)
	if !n.IsDimensionless() || n.Eval(refWindow, refScreen) != 1.5 {
		t.Errorf("Number(1.5) = %v", n.Eval(refWindow, refScreen))
	}
	s := OfSize(ViewportWidth(0.5))
	if s.IsDimensionless() || s.Eval(refWindow, refScreen) != 960 {
		t.Errorf("OfSize(0.5vw) = %v", s.Eval(refWindow, refScreen))
	}
	if n.String() != "1.5" || s.String() != "0.5vw" {
		t.Errorf("String() = %q, %q", n.String(), s.String())
	}
}
