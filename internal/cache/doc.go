// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cache provides a bounded LRU cache for values that are costly
// to rebuild every frame, such as glyph outlines.
//
//	c := cache.New[glyphKey, *geometry.Path](512)
//	p := c.GetOrCreate(k, func() *geometry.Path { return load(k) })
//
// Cache is safe for concurrent use and must not be copied after first
// use.
package cache
