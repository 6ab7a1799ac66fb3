// Package units provides lazily evaluated length expressions.
//
// A Size describes a length in one of several units: pixels, fractions of
// the viewport, degrees of visual angle, or physical lengths. Sizes combine
// with Add, Sub, Mul, Div and Neg into expression trees. Nothing is
// resolved until Eval is called with the window's pixel dimensions and
// the physical screen geometry, so the same Size yields the correct pixel
// count after the window is resized or the viewing distance changes.
//
//	s := units.Add(units.Degrees(2), units.Pixels(10))
//	px := s.Eval(units.PixelSize{Width: 1920, Height: 1080},
//	    units.PhysicalScreen{PixelDensity: 6.4, ViewingDistance: 570})
//
// Sizes can also be parsed from strings such as "10px", "-2.5deg" or
// "0.5vw" with Parse.
package units
