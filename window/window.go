package window

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/render"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

// Window connects experiment code to a renderer and a surface through a
// dedicated render goroutine.
//
// Frame, Present, Resize and Close are safe for concurrent use. Only one
// Present runs at a time; later callers wait.
type Window struct {
	renderer   render.Renderer
	surface    Surface
	clock      func() time.Time
	background scene.Color

	mu         sync.RWMutex
	ctx        units.Context
	configured units.PixelSize // owned by the render goroutine

	presentMu sync.Mutex
	closed    bool

	submit chan *Frame
	ack    chan error
	done   chan struct{}

	errMu sync.Mutex
	err   error

	frames atomic.Uint64
}

// New validates cfg, configures s to the window size and starts the
// render goroutine. The window takes ownership of r and closes it in
// Close.
func New(cfg Config, r render.Renderer, s Surface, opts ...Option) (*Window, error) {
	if r == nil {
		return nil, errors.New("window: nil renderer")
	}
	if s == nil {
		return nil, errors.New("window: nil surface")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	if o.background != nil {
		bg = *o.background
	}

	size := cfg.Size()
	if err := s.Configure(size.Width, size.Height); err != nil {
		return nil, fmt.Errorf("window: configure surface: %w", err)
	}

	w := &Window{
		renderer:   r,
		surface:    s,
		clock:      o.clock,
		background: bg,
		ctx:        units.Context{Window: size, Screen: cfg.Screen()},
		configured: size,
		submit:     make(chan *Frame, 1),
		ack:        make(chan error, 1),
		done:       make(chan struct{}),
	}
	go w.run()

	psykit.Logger().Info("window: opened",
		"size", size.String(), "backend", r.Name(),
		"pixel_density", cfg.PixelDensity, "viewing_distance", cfg.ViewingDistance)
	return w, nil
}

// Renderer returns the renderer. Its resources may be used to create
// bitmaps and fonts; rendering happens on the window's goroutine.
func (w *Window) Renderer() render.Renderer { return w.renderer }

// Background returns the clear color of new frames.
func (w *Window) Background() scene.Color { return w.background }

// Clock returns the current time from the window clock.
func (w *Window) Clock() time.Time { return w.clock() }

// Context returns the current window size and physical screen.
func (w *Window) Context() units.Context {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.ctx
}

// FramesPresented returns the number of frames presented so far.
func (w *Window) FramesPresented() uint64 { return w.frames.Load() }

// Frame returns a fresh frame sized to the window. The window context is
// read once here and used for every draw into the frame.
func (w *Window) Frame() *Frame {
	ctx := w.Context()
	s := w.renderer.CreateScene(ctx.Window.Width, ctx.Window.Height)
	s.SetBackground(w.background)
	return &Frame{
		window: w,
		scene:  s,
		ctx:    ctx,
		time:   w.clock(),
	}
}

// Present hands f to the render goroutine and blocks until it has been
// rendered and presented. It panics if f was already presented or
// belongs to another window.
//
// After the render loop stops on an unrecoverable error, Present returns
// ErrClosed wrapping that error.
func (w *Window) Present(f *Frame) error {
	if f.window != w {
		panic("window: Present of a frame from another window")
	}
	if f.state == StatePresented {
		panic("window: Present of presented frame")
	}
	f.state = StatePresented

	w.presentMu.Lock()
	defer w.presentMu.Unlock()
	if w.closed {
		return w.closedErr()
	}

	select {
	case w.submit <- f:
	case <-w.done:
		return w.closedErr()
	}
	select {
	case err := <-w.ack:
		return err
	case <-w.done:
		select {
		case err := <-w.ack:
			return err
		default:
			return w.closedErr()
		}
	}
}

// Resize records a new window size. The surface is reconfigured before
// the next frame is rendered. Non-positive sizes, as reported for
// minimized windows, are ignored.
func (w *Window) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	w.mu.Lock()
	w.ctx.Window = units.PixelSize{Width: width, Height: height}
	w.mu.Unlock()
	psykit.Logger().Debug("window: resized", "width", width, "height", height)
}

// SyncSize resizes the window to the physical pixel size reported by p.
func (w *Window) SyncSize(p gpucontext.WindowProvider) {
	lw, lh := p.Size()
	sf := p.ScaleFactor()
	w.Resize(int(math.Round(float64(lw)*sf)), int(math.Round(float64(lh)*sf)))
}

// SetPhysicalScreen replaces the physical screen parameters.
func (w *Window) SetPhysicalScreen(ps units.PhysicalScreen) error {
	if err := ps.Validate(); err != nil {
		return err
	}
	w.mu.Lock()
	w.ctx.Screen = ps
	w.mu.Unlock()
	return nil
}

// Close waits for an in-flight frame, stops the render goroutine and
// closes the renderer. It is safe to call more than once.
func (w *Window) Close() error {
	w.presentMu.Lock()
	if w.closed {
		w.presentMu.Unlock()
		return nil
	}
	w.closed = true
	close(w.submit)
	w.presentMu.Unlock()

	<-w.done
	err := w.renderer.Close()
	if err != nil {
		psykit.Logger().Warn("window: renderer close failed", "err", err)
	}
	psykit.Logger().Info("window: closed", "frames", w.frames.Load())
	return err
}

func (w *Window) closedErr() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if w.err != nil {
		return fmt.Errorf("%w: %w", ErrClosed, w.err)
	}
	return ErrClosed
}

func (w *Window) fail(err error) {
	w.errMu.Lock()
	w.err = err
	w.errMu.Unlock()
}

// run is the render goroutine.
func (w *Window) run() {
	defer close(w.done)
	for f := range w.submit {
		err := w.renderFrame(f)
		fatal := err != nil && !frameError(err)
		if fatal {
			psykit.Logger().Error("window: render loop stopped", "err", err)
			w.fail(err)
		}
		w.ack <- err
		if fatal {
			return
		}
	}
}

// frameError reports errors that spoil one frame but leave the device and
// surface usable.
func frameError(err error) bool {
	return errors.Is(err, render.ErrSceneConsumed) ||
		errors.Is(err, render.ErrUnbalancedLayers) ||
		errors.Is(err, ErrSurfaceLost)
}

func (w *Window) renderFrame(f *Frame) error {
	if err := w.reconfigure(false); err != nil {
		return err
	}
	target, err := w.surface.Acquire()
	if errors.Is(err, ErrSurfaceLost) {
		psykit.Logger().Warn("window: surface lost, reconfiguring")
		if err := w.reconfigure(true); err != nil {
			return err
		}
		target, err = w.surface.Acquire()
	}
	if err != nil {
		return fmt.Errorf("window: acquire: %w", err)
	}

	if err := w.renderer.RenderToTexture(target, f.scene); err != nil {
		return fmt.Errorf("window: render: %w", err)
	}
	if err := w.surface.Present(target); err != nil {
		if errors.Is(err, ErrSurfaceLost) {
			w.configured = units.PixelSize{}
		}
		return fmt.Errorf("window: present: %w", err)
	}
	f.presentedAt = w.clock()
	w.frames.Add(1)
	return nil
}

// reconfigure configures the surface when the window size changed since
// the last configuration, or unconditionally when force is set.
func (w *Window) reconfigure(force bool) error {
	size := w.Context().Window
	if !force && size == w.configured {
		return nil
	}
	if err := w.surface.Configure(size.Width, size.Height); err != nil {
		return fmt.Errorf("window: configure surface: %w", err)
	}
	w.configured = size
	return nil
}
