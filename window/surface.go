package window

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/psykit/render"
)

// Surface is the presentation side of a window: the windowing layer's
// swap chain, or memory for headless runs.
//
// A Window calls Surface methods only from its render goroutine.
type Surface interface {
	// Configure (re)creates the surface for a width×height window.
	Configure(width, height int) error

	// Acquire returns the target for the next frame. It returns
	// ErrSurfaceLost when the surface must be reconfigured.
	Acquire() (render.Target, error)

	// Present shows a target previously returned by Acquire.
	Present(target render.Target) error
}

// OffscreenSurface renders into an in-memory image. Each presented frame
// is passed to the callback given to NewOffscreenSurface.
type OffscreenSurface struct {
	mu        sync.Mutex
	target    *render.ImageTarget
	last      *image.RGBA
	onPresent func(*image.RGBA)
}

// NewOffscreenSurface returns an unconfigured offscreen surface. onPresent
// may be nil; the image it receives is reused by the next frame.
func NewOffscreenSurface(onPresent func(img *image.RGBA)) *OffscreenSurface {
	return &OffscreenSurface{onPresent: onPresent}
}

// Configure allocates a width×height image.
func (s *OffscreenSurface) Configure(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("window: offscreen surface size %dx%d", width, height)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target != nil && s.target.Width() == width && s.target.Height() == height {
		return nil
	}
	s.target = render.NewImageTarget(width, height)
	return nil
}

// Acquire returns the image target. An unconfigured surface reports
// ErrSurfaceLost.
func (s *OffscreenSurface) Acquire() (render.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == nil {
		return nil, ErrSurfaceLost
	}
	return s.target, nil
}

// Present records the image and calls the callback.
func (s *OffscreenSurface) Present(target render.Target) error {
	s.mu.Lock()
	t, ok := target.(*render.ImageTarget)
	if !ok || t != s.target {
		s.mu.Unlock()
		return ErrSurfaceLost
	}
	s.last = t.Image()
	cb := s.onPresent
	s.mu.Unlock()

	if cb != nil {
		cb(t.Image())
	}
	return nil
}

// Snapshot returns a copy of the last presented image, or nil.
func (s *OffscreenSurface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	img := image.NewRGBA(s.last.Rect)
	copy(img.Pix, s.last.Pix)
	return img
}

// TextureAllocator creates GPU texture targets. *render.GPURenderer
// implements it.
type TextureAllocator interface {
	CreateTextureTarget(width, height int, format gputypes.TextureFormat) (*render.TextureTarget, error)
}

// TextureSurface renders into a GPU texture owned by the window and hands
// it to the host, which copies or blits it into its swap chain.
type TextureSurface struct {
	alloc     TextureAllocator
	format    gputypes.TextureFormat
	target    *render.TextureTarget
	onPresent func(*render.TextureTarget) error
}

// NewTextureSurface returns a surface that allocates textures of the given
// format through alloc. onPresent is called with each rendered texture;
// returning ErrSurfaceLost makes the window reconfigure before the next
// frame.
func NewTextureSurface(alloc TextureAllocator, format gputypes.TextureFormat, onPresent func(*render.TextureTarget) error) (*TextureSurface, error) {
	if alloc == nil {
		return nil, errors.New("window: nil texture allocator")
	}
	return &TextureSurface{alloc: alloc, format: format, onPresent: onPresent}, nil
}

// Configure replaces the texture with one of the new size.
func (s *TextureSurface) Configure(width, height int) error {
	if s.target != nil {
		if s.target.Width() == width && s.target.Height() == height {
			return nil
		}
		s.target.Destroy()
		s.target = nil
	}
	t, err := s.alloc.CreateTextureTarget(width, height, s.format)
	if err != nil {
		return fmt.Errorf("window: configure texture surface: %w", err)
	}
	s.target = t
	return nil
}

// Acquire returns the texture target.
func (s *TextureSurface) Acquire() (render.Target, error) {
	if s.target == nil {
		return nil, ErrSurfaceLost
	}
	return s.target, nil
}

// Present passes the texture to the host callback.
func (s *TextureSurface) Present(target render.Target) error {
	t, ok := target.(*render.TextureTarget)
	if !ok || t != s.target {
		return ErrSurfaceLost
	}
	if s.onPresent == nil {
		return nil
	}
	return s.onPresent(t)
}

// Release destroys the texture.
func (s *TextureSurface) Release() {
	if s.target != nil {
		s.target.Destroy()
		s.target = nil
	}
}

var (
	_ Surface = (*OffscreenSurface)(nil)
	_ Surface = (*TextureSurface)(nil)
)
