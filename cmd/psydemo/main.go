// Command psydemo renders a short animated trial offscreen and writes
// selected frames as PNG files.
//
// The display is configured from PSYKIT_* environment variables (see
// window.LoadConfig). When they are not set, the flags are used instead.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/render"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/stimulus"
	"github.com/gogpu/psykit/units"
	"github.com/gogpu/psykit/window"
)

func main() {
	var (
		width    = flag.Int("width", 800, "window width in pixels")
		height   = flag.Int("height", 600, "window height in pixels")
		density  = flag.Float64("density", 3.78, "pixels per millimeter")
		distance = flag.Float64("distance", 570, "viewing distance in millimeters")
		backend  = flag.String("backend", render.BackendSoftware, "render backend")
		frames   = flag.Int("frames", 60, "number of frames to render")
		every    = flag.Int("every", 15, "save every n-th frame")
		outDir   = flag.String("out", ".", "output directory")
		verbose  = flag.Bool("v", false, "log to stderr")
	)
	flag.Parse()

	if *verbose {
		psykit.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg, err := window.LoadConfig()
	if err != nil {
		psykit.Logger().Info("psydemo: using flags", "reason", err)
		cfg = window.Config{
			Width:           *width,
			Height:          *height,
			PixelDensity:    *density,
			ViewingDistance: *distance,
			Backend:         *backend,
			Background:      "#808080",
		}
		if err := cfg.Validate(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	r, err := render.New(cfg.Backend, render.Options{})
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}

	surface := window.NewOffscreenSurface(nil)
	w, err := window.New(cfg, r, surface)
	if err != nil {
		log.Fatalf("Failed to open window: %v", err)
	}
	defer w.Close()

	stims := buildTrial()
	for i := range *frames {
		f := w.Frame()
		for _, s := range stims {
			f.Draw(s)
		}
		if err := w.Present(f); err != nil {
			log.Fatalf("Present frame %d: %v", i, err)
		}
		if *every > 0 && i%*every == 0 {
			name := filepath.Join(*outDir, fmt.Sprintf("frame-%03d.png", i))
			if err := savePNG(name, surface.Snapshot()); err != nil {
				log.Fatalf("Failed to save: %v", err)
			}
			log.Printf("Frame %d saved to %s", i, name)
		}
	}
	log.Printf("Presented %d frames (%dx%d, %s)", w.FramesPresented(), cfg.Width, cfg.Height, r.Name())
}

// buildTrial returns a drifting Gabor patch, a pulsing fixation disc and
// a label.
func buildTrial() []stimulus.Stimulus {
	gabor := stimulus.NewGabor(units.Px(0), units.Px(0), units.Degrees(3), units.Degrees(0.75), units.Degrees(0.75),
		stimulus.WithOrientation(30))
	_ = gabor.Animate(stimulus.ParamPhase, stimulus.FloatValue(360), time.Second,
		stimulus.WithRepeat(stimulus.Loop(100)))

	fixation := stimulus.NewShape(geometry.CircleShape{Radius: units.Degrees(0.1)}, units.Px(0), units.Px(0),
		stimulus.WithFill(scene.RGB(1, 0, 0)), stimulus.WithStroke(scene.Black, units.Px(1)))
	_ = fixation.Animate(stimulus.ParamRadius, stimulus.SizeValue{Size: units.Degrees(0.2)}, 500*time.Millisecond,
		stimulus.WithRepeat(stimulus.PingPong(100)), stimulus.WithEasing(stimulus.EaseInOut))

	label := stimulus.NewText("psykit", units.Px(0), units.ViewportHeight(0.4), units.Points(18),
		stimulus.WithFill(scene.White))

	return []stimulus.Stimulus{gabor, fixation, label}
}

func savePNG(name string, img *image.RGBA) error {
	if img == nil {
		return fmt.Errorf("no frame presented")
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
