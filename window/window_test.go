package window

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/render"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

func testConfig() Config {
	return Config{Width: 32, Height: 24, PixelDensity: 4, ViewingDistance: 600, Background: "#000000"}
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// fillDrawable covers the whole frame with one color.
type fillDrawable struct {
	color   scene.Color
	updates []time.Time
}

func (d *fillDrawable) UpdateAnimations(now time.Time, _ units.Context) {
	d.updates = append(d.updates, now)
}

func (d *fillDrawable) Draw(f *Frame) {
	w := f.Context().Window
	f.Scene().FillShape(geometry.Rect{W: float64(w.Width), H: float64(w.Height)}, scene.Solid{Color: d.color})
}

// capture records the top-left pixel and size of every presented image.
type capture struct {
	mu     sync.Mutex
	pixels []color.RGBA
	sizes  []image.Point
}

func (c *capture) onPresent(img *image.RGBA) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pixels = append(c.pixels, img.RGBAAt(0, 0))
	c.sizes = append(c.sizes, img.Rect.Size())
}

func newTestWindow(t *testing.T, s Surface, opts ...Option) *Window {
	t.Helper()
	w, err := New(testConfig(), render.NewSoftwareRenderer(), s, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	return w
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestNewValidates(t *testing.T) {
	cfg := testConfig()
	cfg.PixelDensity = 0
	_, err := New(cfg, render.NewSoftwareRenderer(), NewOffscreenSurface(nil))
	if !errors.Is(err, ErrInvalidScreen) {
		t.Errorf("New() error = %v, want ErrInvalidScreen", err)
	}
}

func TestFrameLifecycle(t *testing.T) {
	clock := newFakeClock()
	w := newTestWindow(t, NewOffscreenSurface(nil), WithClock(clock.Now))

	f := w.Frame()
	if f.State() != StateFresh {
		t.Fatalf("new frame state = %v, want Fresh", f.State())
	}
	if !f.Time().Equal(clock.Now()) {
		t.Errorf("Time() = %v, want %v", f.Time(), clock.Now())
	}

	d := &fillDrawable{color: scene.White}
	clock.Advance(10 * time.Millisecond)
	f.Draw(d)
	if f.State() != StateAccumulating {
		t.Errorf("state after Draw = %v, want Accumulating", f.State())
	}
	f.Draw(d)
	if len(d.updates) != 2 || !d.updates[0].Equal(clock.Now()) {
		t.Errorf("updates = %v, want two at %v", d.updates, clock.Now())
	}

	clock.Advance(5 * time.Millisecond)
	if err := w.Present(f); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if f.State() != StatePresented {
		t.Errorf("state after Present = %v, want Presented", f.State())
	}
	if !f.PresentedAt().Equal(clock.Now()) {
		t.Errorf("PresentedAt() = %v, want %v", f.PresentedAt(), clock.Now())
	}

	mustPanic(t, "Draw after Present", func() { f.Draw(d) })
	mustPanic(t, "second Present", func() { _ = w.Present(f) })
}

func TestPresentForeignFramePanics(t *testing.T) {
	a := newTestWindow(t, NewOffscreenSurface(nil))
	b := newTestWindow(t, NewOffscreenSurface(nil))
	f := a.Frame()
	mustPanic(t, "Present on other window", func() { _ = b.Present(f) })
}

func TestPresentRendersInOrder(t *testing.T) {
	var c capture
	w := newTestWindow(t, NewOffscreenSurface(c.onPresent))

	grays := []float32{0, 0.2, 0.4, 0.6, 0.8, 1}
	for _, g := range grays {
		f := w.Frame()
		f.Draw(&fillDrawable{color: scene.Gray(g)})
		if err := w.Present(f); err != nil {
			t.Fatalf("Present() error = %v", err)
		}
	}

	if got := w.FramesPresented(); got != uint64(len(grays)) {
		t.Errorf("FramesPresented() = %d, want %d", got, len(grays))
	}
	for i, g := range grays {
		want := uint8(g*255 + 0.5)
		if got := c.pixels[i]; got.R != want || got.A != 255 {
			t.Errorf("frame %d pixel = %v, want gray %d", i, got, want)
		}
	}
}

func TestPresentBackground(t *testing.T) {
	s := NewOffscreenSurface(nil)
	w := newTestWindow(t, s, WithBackground(scene.RGB(0, 1, 0)))
	if err := w.Present(w.Frame()); err != nil {
		t.Fatal(err)
	}
	img := s.Snapshot()
	if img == nil {
		t.Fatal("Snapshot() = nil after Present")
	}
	if got := img.RGBAAt(5, 5); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("pixel = %v, want green background", got)
	}
}

func TestConcurrentPresent(t *testing.T) {
	var c capture
	w := newTestWindow(t, NewOffscreenSurface(c.onPresent))

	const workers, frames = 4, 5
	var wg sync.WaitGroup
	errs := make(chan error, workers*frames)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range frames {
				f := w.Frame()
				f.Draw(&fillDrawable{color: scene.White})
				errs <- w.Present(f)
			}
		}()
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent Present calls did not finish")
	}
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("Present() error = %v", err)
		}
	}
	if got := w.FramesPresented(); got != workers*frames {
		t.Errorf("FramesPresented() = %d, want %d", got, workers*frames)
	}
}

func TestResizeReconfiguresSurface(t *testing.T) {
	var c capture
	w := newTestWindow(t, NewOffscreenSurface(c.onPresent))

	w.Resize(16, 8)
	f := w.Frame()
	if got := f.Context().Window; got != (units.PixelSize{Width: 16, Height: 8}) {
		t.Errorf("frame context = %v, want 16x8", got)
	}
	if err := w.Present(f); err != nil {
		t.Fatal(err)
	}

	w.SyncSize(gpucontext.NullWindowProvider{W: 10, H: 5, SF: 2})
	if err := w.Present(w.Frame()); err != nil {
		t.Fatal(err)
	}

	w.Resize(0, 0)
	if err := w.Present(w.Frame()); err != nil {
		t.Fatal(err)
	}

	want := []image.Point{{16, 8}, {20, 10}, {20, 10}}
	for i, sz := range want {
		if c.sizes[i] != sz {
			t.Errorf("frame %d size = %v, want %v", i, c.sizes[i], sz)
		}
	}
}

func TestSetPhysicalScreen(t *testing.T) {
	w := newTestWindow(t, NewOffscreenSurface(nil))
	if err := w.SetPhysicalScreen(units.PhysicalScreen{PixelDensity: -1, ViewingDistance: 500}); !errors.Is(err, ErrInvalidScreen) {
		t.Errorf("SetPhysicalScreen(invalid) error = %v, want ErrInvalidScreen", err)
	}
	ps := units.PhysicalScreen{PixelDensity: 3, ViewingDistance: 700}
	if err := w.SetPhysicalScreen(ps); err != nil {
		t.Fatal(err)
	}
	if got := w.Frame().Context().Screen; got != ps {
		t.Errorf("frame screen = %v, want %v", got, ps)
	}
}

// lossySurface reports ErrSurfaceLost from the first lost Acquire calls.
type lossySurface struct {
	*OffscreenSurface
	lost       int
	configures int
}

func (s *lossySurface) Configure(width, height int) error {
	s.configures++
	return s.OffscreenSurface.Configure(width, height)
}

func (s *lossySurface) Acquire() (render.Target, error) {
	if s.lost > 0 {
		s.lost--
		return nil, ErrSurfaceLost
	}
	return s.OffscreenSurface.Acquire()
}

func TestSurfaceLostRetriesOnce(t *testing.T) {
	s := &lossySurface{OffscreenSurface: NewOffscreenSurface(nil), lost: 1}
	w := newTestWindow(t, s)
	if err := w.Present(w.Frame()); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	if s.configures != 2 {
		t.Errorf("configures = %d, want 2", s.configures)
	}

	s.lost = 2
	if err := w.Present(w.Frame()); !errors.Is(err, ErrSurfaceLost) {
		t.Fatalf("Present() error = %v, want ErrSurfaceLost", err)
	}
	// A lost surface spoils one frame but the loop keeps running.
	if err := w.Present(w.Frame()); err != nil {
		t.Errorf("Present() after lost frame error = %v", err)
	}
}

var errDeviceLost = errors.New("device lost")

type brokenSurface struct {
	*OffscreenSurface
}

func (brokenSurface) Present(render.Target) error { return errDeviceLost }

func TestFatalErrorStopsLoop(t *testing.T) {
	w := newTestWindow(t, brokenSurface{NewOffscreenSurface(nil)})

	if err := w.Present(w.Frame()); !errors.Is(err, errDeviceLost) {
		t.Fatalf("Present() error = %v, want device lost", err)
	}
	err := w.Present(w.Frame())
	if !errors.Is(err, ErrClosed) || !errors.Is(err, errDeviceLost) {
		t.Errorf("Present() after failure error = %v, want ErrClosed wrapping device lost", err)
	}
}

func TestSceneErrorKeepsLoop(t *testing.T) {
	w := newTestWindow(t, NewOffscreenSurface(nil))
	f := w.Frame()
	f.Scene().StartLayer(scene.SourceOver, nil)
	if err := w.Present(f); !errors.Is(err, render.ErrUnbalancedLayers) {
		t.Fatalf("Present() error = %v, want ErrUnbalancedLayers", err)
	}
	if err := w.Present(w.Frame()); err != nil {
		t.Errorf("Present() after scene error = %v", err)
	}
}

func TestClose(t *testing.T) {
	w, err := New(testConfig(), render.NewSoftwareRenderer(), NewOffscreenSurface(nil))
	if err != nil {
		t.Fatal(err)
	}
	f := w.Frame()
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	if err := w.Present(f); !errors.Is(err, ErrClosed) {
		t.Errorf("Present() after Close error = %v, want ErrClosed", err)
	}
}

type fakeAllocator struct {
	created int
}

func (a *fakeAllocator) CreateTextureTarget(width, height int, format gputypes.TextureFormat) (*render.TextureTarget, error) {
	a.created++
	return render.NewTextureTarget(nil, nil, width, height, format), nil
}

func TestTextureSurface(t *testing.T) {
	if _, err := NewTextureSurface(nil, gputypes.TextureFormatRGBA8Unorm, nil); err == nil {
		t.Error("NewTextureSurface(nil) succeeded")
	}

	var presented *render.TextureTarget
	alloc := &fakeAllocator{}
	s, err := NewTextureSurface(alloc, gputypes.TextureFormatBGRA8Unorm, func(t *render.TextureTarget) error {
		presented = t
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Acquire(); !errors.Is(err, ErrSurfaceLost) {
		t.Errorf("Acquire() before Configure error = %v, want ErrSurfaceLost", err)
	}

	for _, size := range [][2]int{{8, 8}, {8, 8}, {4, 2}} {
		if err := s.Configure(size[0], size[1]); err != nil {
			t.Fatal(err)
		}
	}
	if alloc.created != 2 {
		t.Errorf("textures created = %d, want 2", alloc.created)
	}

	target, err := s.Acquire()
	if err != nil {
		t.Fatal(err)
	}
	if target.Width() != 4 || target.Height() != 2 || target.Format() != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("target = %dx%d %v, want 4x2 BGRA8Unorm", target.Width(), target.Height(), target.Format())
	}
	if err := s.Present(target); err != nil {
		t.Fatal(err)
	}
	if presented != target {
		t.Error("callback did not receive the acquired target")
	}
	if err := s.Present(render.NewImageTarget(4, 2)); !errors.Is(err, ErrSurfaceLost) {
		t.Errorf("Present(foreign target) error = %v, want ErrSurfaceLost", err)
	}
	s.Release()
}
