// Package window runs the frame loop between experiment code and a
// renderer.
//
// A Window owns one render goroutine. Experiment code asks the window
// for a Frame, draws stimuli into it and presents it:
//
//	w, err := window.New(cfg, renderer, surface)
//	if err != nil {
//		return err
//	}
//	defer w.Close()
//
//	for range trials {
//		f := w.Frame()
//		f.Draw(gabor)
//		if err := w.Present(f); err != nil {
//			return err
//		}
//	}
//
// Present blocks until the render goroutine has rasterized the frame and
// handed it to the Surface, so at most one frame is in flight per window
// and frames are presented in the order they were submitted.
//
// The Surface is the windowing collaborator. OffscreenSurface renders
// into memory for headless runs and tests; TextureSurface hands GPU
// textures to a host that owns the swap chain.
//
// Physical screen parameters (pixel density and viewing distance) are
// required configuration. LoadConfig reads them from PSYKIT_*
// environment variables.
package window
