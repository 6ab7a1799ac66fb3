package stimulus

import (
	"fmt"
	"strconv"

	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

// Param names a stimulus parameter.
type Param uint8

// Parameters. Which ones a stimulus accepts depends on its kind.
const (
	ParamX Param = iota
	ParamY
	ParamWidth
	ParamHeight
	ParamRadius
	ParamAlpha
	ParamFillColor
	ParamStrokeColor
	ParamStrokeWidth
	ParamPhase
	ParamCycleLength
	ParamOrientation
	ParamSigma
	ParamFontSize
	ParamText
	ParamPhaseX
	ParamPhaseY
	ParamPatternRotation
	ParamOpacity
	ParamBackgroundColor
	numParams
)

var paramNames = [numParams]string{
	ParamX:               "x",
	ParamY:               "y",
	ParamWidth:           "width",
	ParamHeight:          "height",
	ParamRadius:          "radius",
	ParamAlpha:           "alpha",
	ParamFillColor:       "fill_color",
	ParamStrokeColor:     "stroke_color",
	ParamStrokeWidth:     "stroke_width",
	ParamPhase:           "phase",
	ParamCycleLength:     "cycle_length",
	ParamOrientation:     "orientation",
	ParamSigma:           "sigma",
	ParamFontSize:        "font_size",
	ParamText:            "text",
	ParamPhaseX:          "phase_x",
	ParamPhaseY:          "phase_y",
	ParamPatternRotation: "pattern_rotation",
	ParamOpacity:         "opacity",
	ParamBackgroundColor: "background_color",
}

// String returns the snake_case parameter name.
func (p Param) String() string {
	if p < numParams {
		return paramNames[p]
	}
	return fmt.Sprintf("Param(%d)", uint8(p))
}

// ParseParam looks a parameter up by its String name.
func ParseParam(name string) (Param, error) {
	for p, n := range paramNames {
		if n == name {
			return Param(p), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
}

// Value is a parameter value. The variants are SizeValue, FloatValue,
// ColorValue, StringValue and BoolValue.
type Value interface {
	String() string
	isValue()
}

// SizeValue is a length parameter.
type SizeValue struct {
	Size units.Size
}

// FloatValue is a dimensionless parameter such as an angle or alpha.
type FloatValue float64

// ColorValue is a color parameter.
type ColorValue struct {
	Color scene.Color
}

// StringValue is a text parameter.
type StringValue string

// BoolValue is a flag parameter.
type BoolValue bool

func (SizeValue) isValue()   {}
func (FloatValue) isValue()  {}
func (ColorValue) isValue()  {}
func (StringValue) isValue() {}
func (BoolValue) isValue()   {}

func (v SizeValue) String() string {
	if v.Size == nil {
		return "0px"
	}
	return v.Size.String()
}

func (v FloatValue) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v ColorValue) String() string  { return v.Color.String() }
func (v StringValue) String() string { return strconv.Quote(string(v)) }
func (v BoolValue) String() string   { return strconv.FormatBool(bool(v)) }

// accessor reads and writes one parameter of a stimulus.
type accessor struct {
	get func() Value
	set func(Value) error
}

// paramTable dispatches Param and SetParam for one stimulus.
type paramTable map[Param]accessor

func typeError(p Param, want string, got Value) error {
	return fmt.Errorf("%w: %s wants %s, got %T", ErrParamType, p, want, got)
}

func sizeParam(p Param, dst *units.Size) accessor {
	return accessor{
		get: func() Value { return SizeValue{Size: *dst} },
		set: func(v Value) error {
			sv, ok := v.(SizeValue)
			if !ok {
				return typeError(p, "a size", v)
			}
			*dst = sv.Size
			return nil
		},
	}
}

func floatParam(p Param, dst *float64) accessor {
	return accessor{
		get: func() Value { return FloatValue(*dst) },
		set: func(v Value) error {
			fv, ok := v.(FloatValue)
			if !ok {
				return typeError(p, "a float", v)
			}
			*dst = float64(fv)
			return nil
		},
	}
}

func colorParam(p Param, dst *scene.Color) accessor {
	return accessor{
		get: func() Value { return ColorValue{Color: *dst} },
		set: func(v Value) error {
			cv, ok := v.(ColorValue)
			if !ok {
				return typeError(p, "a color", v)
			}
			*dst = cv.Color
			return nil
		},
	}
}

func stringParam(p Param, dst *string) accessor {
	return accessor{
		get: func() Value { return StringValue(*dst) },
		set: func(v Value) error {
			sv, ok := v.(StringValue)
			if !ok {
				return typeError(p, "a string", v)
			}
			*dst = string(sv)
			return nil
		},
	}
}

// onSet wraps a so that changed runs after every successful set.
func onSet(a accessor, changed func()) accessor {
	set := a.set
	a.set = func(v Value) error {
		if err := set(v); err != nil {
			return err
		}
		changed()
		return nil
	}
	return a
}
