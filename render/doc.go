// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render turns recorded scenes into pixels.
//
// A Renderer creates scenes and bitmaps, loads fonts and rasterizes a
// finished scene into a Target. Backends are interchangeable behind the
// Renderer interface and are selected by name through a registry:
//
//	r, err := render.New("", render.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	s := r.CreateScene(800, 600)
//	s.FillShape(geometry.Circle{CX: 400, CY: 300, R: 100}, scene.Solid{Color: scene.White})
//
//	target := render.NewImageTarget(800, 600)
//	if err := r.RenderToTexture(target, s); err != nil {
//	    log.Fatal(err)
//	}
//
// # Backends
//
// The "software" backend rasterizes on the CPU into an ImageTarget. The
// "gpu" backend draws into a TextureTarget using a hal device supplied
// through Options.Device. It tessellates solid fills into triangles and
// falls back to CPU rasterization plus a texture upload for scenes that
// need strokes, gradients, images, glyphs, layers or blend modes other
// than SourceOver.
//
// # Scene lifetime
//
// A scene is rendered at most once. RenderToTexture consumes it, and a
// second call with the same scene returns ErrSceneConsumed.
//
// # Thread safety
//
// Renderers are not safe for concurrent use. The window package drives a
// renderer from a single goroutine.
package render
