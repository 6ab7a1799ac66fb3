// Package psykit is the rendering core of a stimulus-presentation toolkit
// for psychophysics experiments.
//
// # Overview
//
// Experiments describe stimuli in resolution-independent units: pixels,
// fractions of the viewport, degrees of visual angle or physical lengths.
// Those descriptions stay symbolic until a frame is drawn, because window
// size and viewing geometry can change between the moment a stimulus is
// built and the moment it is shown.
//
// # Quick Start
//
//	cfg := window.Config{Width: 1920, Height: 1080, PixelDensity: 6.4, ViewingDistance: 570}
//	r, _ := render.New("", render.Options{})
//	win, _ := window.New(cfg, r, window.NewOffscreenSurface(nil))
//	defer win.Close()
//
//	gabor := stimulus.NewGabor(units.Pixels(960), units.Pixels(540),
//	    units.Degrees(2), units.Degrees(0.5), units.Degrees(0.4))
//
//	f := win.Frame()
//	f.Draw(gabor)
//	if err := win.Present(f); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The module is organized leaf-first:
//   - units: Size expressions and the physical screen context
//   - geometry: affine matrices, Transformation2D, shapes, tessellation
//   - scene: the per-frame command list, brushes, strokes, layers
//   - text: font loading and shaping into glyph runs
//   - render: the Renderer contract, software and GPU backends
//   - window: Frame and Window with the render goroutine
//   - stimulus: drawable stimuli with typed animated parameters
//
// # Coordinate System
//
// Pixel coordinates as used by windowing systems:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Rotation angles in degrees, positive is clockwise on screen
package psykit

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"
)
