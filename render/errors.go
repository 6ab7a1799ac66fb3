// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/psykit/scene"
)

var (
	// ErrSceneConsumed is returned when a scene is rendered twice.
	ErrSceneConsumed = scene.ErrConsumed

	// ErrUnbalancedLayers is returned for scenes with open layers.
	ErrUnbalancedLayers = scene.ErrUnbalancedLayers

	// ErrNilTarget is returned when rendering into a nil target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilScene is returned when rendering a nil scene.
	ErrNilScene = errors.New("render: nil scene")

	// ErrUnknownBackend is returned by New for unregistered names.
	ErrUnknownBackend = errors.New("render: unknown backend")

	// ErrNoDevice is returned when the GPU backend has no usable hal
	// device and queue.
	ErrNoDevice = errors.New("render: no GPU device")

	// ErrUnsupportedTarget is returned when a backend cannot write into
	// the given target type.
	ErrUnsupportedTarget = errors.New("render: unsupported target")

	// ErrInvalidBitmap is returned by CreateBitmap for nil or empty images.
	ErrInvalidBitmap = errors.New("render: invalid bitmap")

	// ErrClosed is returned by a renderer after Close.
	ErrClosed = errors.New("render: renderer closed")
)
