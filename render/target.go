// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Target is where a renderer writes a frame.
//
// ImageTarget is CPU memory and TextureTarget is a GPU texture. Surfaces
// in the window package hand out one of these per frame.
type Target interface {
	// Width returns the target width in pixels.
	Width() int

	// Height returns the target height in pixels.
	Height() int

	// Format returns the pixel format of the target.
	Format() gputypes.TextureFormat
}

// ImageTarget is a CPU-backed target over *image.RGBA. Pixels are stored
// premultiplied, as image.RGBA requires.
type ImageTarget struct {
	img *image.RGBA
}

// NewImageTarget allocates a width×height image target.
func NewImageTarget(width, height int) *ImageTarget {
	return &ImageTarget{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// NewImageTargetFromImage wraps img without copying.
func NewImageTargetFromImage(img *image.RGBA) *ImageTarget {
	return &ImageTarget{img: img}
}

// Width returns the target width in pixels.
func (t *ImageTarget) Width() int { return t.img.Bounds().Dx() }

// Height returns the target height in pixels.
func (t *ImageTarget) Height() int { return t.img.Bounds().Dy() }

// Format returns RGBA8Unorm.
func (t *ImageTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Image returns the underlying image. It shares memory with the target.
func (t *ImageTarget) Image() *image.RGBA { return t.img }

// TextureTarget is a GPU texture with a view usable as a color
// attachment. The texture must allow RenderAttachment and CopyDst usage.
type TextureTarget struct {
	texture hal.Texture
	view    hal.TextureView
	width   int
	height  int
	format  gputypes.TextureFormat

	// owner is set when the target was created by a renderer and must be
	// destroyed through it.
	owner hal.Device
}

// NewTextureTarget wraps an existing texture and view. The caller keeps
// ownership of both.
func NewTextureTarget(texture hal.Texture, view hal.TextureView, width, height int, format gputypes.TextureFormat) *TextureTarget {
	return &TextureTarget{
		texture: texture,
		view:    view,
		width:   width,
		height:  height,
		format:  format,
	}
}

// Width returns the texture width in pixels.
func (t *TextureTarget) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *TextureTarget) Height() int { return t.height }

// Format returns the texture format.
func (t *TextureTarget) Format() gputypes.TextureFormat { return t.format }

// Texture returns the underlying texture.
func (t *TextureTarget) Texture() hal.Texture { return t.texture }

// View returns the texture view.
func (t *TextureTarget) View() hal.TextureView { return t.view }

// Destroy releases the texture and view when they were created by a
// renderer. It is a no-op for wrapped textures and safe to call twice.
func (t *TextureTarget) Destroy() {
	if t.owner == nil {
		return
	}
	if t.view != nil {
		t.owner.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		t.owner.DestroyTexture(t.texture)
		t.texture = nil
	}
	t.owner = nil
}

var (
	_ Target = (*ImageTarget)(nil)
	_ Target = (*TextureTarget)(nil)
)
