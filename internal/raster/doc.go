// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster is the CPU rasterizer behind the software renderer.
//
// Paths are flattened, clipped to the target and turned into coverage
// masks with golang.org/x/image/vector. Brushes are evaluated per pixel
// into premultiplied float32 colors and composited with Porter-Duff
// operators into a stack of layer buffers. Strokes are expanded into
// polygons before rasterization.
package raster
