// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/internal/raster"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/text"
)

func init() {
	Register(BackendSoftware, func(Options) (Renderer, error) {
		return NewSoftwareRenderer(), nil
	})
}

// SoftwareRenderer rasterizes scenes on the CPU into ImageTargets.
type SoftwareRenderer struct {
	canvas *raster.Canvas
	closed bool
}

// NewSoftwareRenderer returns a CPU renderer.
func NewSoftwareRenderer() *SoftwareRenderer {
	return &SoftwareRenderer{}
}

// Name returns "software".
func (r *SoftwareRenderer) Name() string { return BackendSoftware }

// CreateScene returns an empty scene.
func (r *SoftwareRenderer) CreateScene(width, height int) *scene.Scene {
	return scene.New(width, height)
}

// CreateBitmap copies img into an RGBA bitmap.
func (r *SoftwareRenderer) CreateBitmap(img image.Image) (*scene.Bitmap, error) {
	rgba, err := toRGBA(img)
	if err != nil {
		return nil, err
	}
	return scene.NewBitmap(rgba, nil), nil
}

// LoadFont parses font data.
func (r *SoftwareRenderer) LoadFont(data []byte) (scene.Font, error) {
	f, err := text.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("render: load font: %w", err)
	}
	return f, nil
}

// RenderToTexture consumes s and rasterizes it into target, which must
// be an *ImageTarget.
func (r *SoftwareRenderer) RenderToTexture(target Target, s *scene.Scene) error {
	if r.closed {
		return ErrClosed
	}
	if target == nil {
		return ErrNilTarget
	}
	if s == nil {
		return ErrNilScene
	}
	t, ok := target.(*ImageTarget)
	if !ok {
		return fmt.Errorf("%w: software backend cannot write %T", ErrUnsupportedTarget, target)
	}
	cmds, err := s.Consume()
	if err != nil {
		return err
	}
	return r.rasterize(t.img, s.Background(), cmds)
}

// rasterize runs cmds into dst, reusing the canvas while the size is
// unchanged.
func (r *SoftwareRenderer) rasterize(dst *image.RGBA, bg scene.Color, cmds []scene.Command) error {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if r.canvas == nil || r.canvas.Width() != w || r.canvas.Height() != h {
		r.canvas = raster.NewCanvas(w, h)
	}
	psykit.Logger().Debug("render: software frame", "commands", len(cmds), "width", w, "height", h)
	if err := r.canvas.Render(dst, bg, cmds); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// Close releases the cached canvas.
func (r *SoftwareRenderer) Close() error {
	r.canvas = nil
	r.closed = true
	return nil
}

// toRGBA copies img into a new RGBA image anchored at the origin.
func toRGBA(img image.Image) (*image.RGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidBitmap)
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidBitmap)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return rgba, nil
}

var _ Renderer = (*SoftwareRenderer)(nil)
