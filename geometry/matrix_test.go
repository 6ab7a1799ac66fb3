package geometry

import (
	"math"
	"testing"
)

func TestIsTranslation(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", IdentityMatrix(), true},
		{"pure translation", Translate(10, 20), true},
		{"uniform scale", Scale(2, 2), false},
		{"rotation 90deg", Rotate(math.Pi / 2), false},
		{"shear x", Shear(0.5, 0), false},
		{"scale + translate", Scale(2, 3).Multiply(Translate(10, 20)), false},
		{"zero matrix", Matrix{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsTranslation(); got != tt.want {
				t.Errorf("IsTranslation() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMultiplyAppliesRightOperandFirst(t *testing.T) {
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if got != Pt(12, 2) {
		t.Errorf("T·S (1,1) = %v, want (12, 2)", got)
	}
}

func TestInvert(t *testing.T) {
	m := Translate(5, -3).Multiply(Rotate(0.7)).Multiply(Scale(2, 0.5))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("Invert() reported singular")
	}
	if got := m.Multiply(inv); !got.Approx(IdentityMatrix(), 1e-12) {
		t.Errorf("m·m⁻¹ = %+v", got)
	}

	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("Invert() of singular matrix reported ok")
	}
}

func TestTransformVectorIgnoresTranslation(t *testing.T) {
	m := Translate(100, 100).Multiply(Scale(2, 3))
	if got := m.TransformVector(Pt(1, 1)); got != Pt(2, 3) {
		t.Errorf("TransformVector = %v", got)
	}
}

func TestMat3(t *testing.T) {
	got := Translate(3, 4).Mat3()
	want := [9]float64{1, 0, 3, 0, 1, 4, 0, 0, 1}
	if got != want {
		t.Errorf("Mat3() = %v, want %v", got, want)
	}
}

func TestScaleFactor(t *testing.T) {
	if got := Rotate(1).Multiply(Scale(3, 3)).ScaleFactor(); !approxEqual(got, 3, 1e-12) {
		t.Errorf("ScaleFactor() = %v, want 3", got)
	}
}
