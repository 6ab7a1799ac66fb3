// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/scene"
)

// Renderer turns scenes into pixels. Stimulus code only talks to this
// interface, so backends can be swapped without touching drawing code.
type Renderer interface {
	// Name returns the backend name the renderer was registered under.
	Name() string

	// CreateScene returns an empty scene sized for a width×height target.
	CreateScene(width, height int) *scene.Scene

	// CreateBitmap copies img into a bitmap usable by image brushes and
	// DrawImage.
	CreateBitmap(img image.Image) (*scene.Bitmap, error)

	// LoadFont parses a TrueType or OpenType font.
	LoadFont(data []byte) (scene.Font, error)

	// RenderToTexture consumes s and rasterizes it into target. When it
	// returns, the target holds the finished frame.
	RenderToTexture(target Target, s *scene.Scene) error

	// Close releases backend resources. The renderer must not be used
	// afterwards.
	Close() error
}

// Options configures a backend at creation time.
type Options struct {
	// Device supplies the GPU device and queue for the gpu backend. It is
	// ignored by the software backend.
	Device DeviceHandle
}

// Factory creates a renderer.
type Factory func(Options) (Renderer, error)

// Backend names.
const (
	BackendGPU      = "gpu"
	BackendSoftware = "software"
)

// backendPriority is the order in which New tries backends when no name
// is given.
var backendPriority = []string{BackendGPU, BackendSoftware}

var (
	registryMu sync.Mutex
	registry   = gpucontext.NewRegistry[Factory](gpucontext.WithPriority(backendPriority...))
)

// Register makes a backend available under name. It panics if factory is
// nil or name is already registered.
func Register(name string, factory Factory) {
	if factory == nil {
		panic("render: Register factory is nil")
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if registry.Has(name) {
		panic("render: Register called twice for backend " + name)
	}
	registry.Register(name, func() Factory { return factory })
}

// Unregister removes a backend. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry.Unregister(name)
}

// Backends returns the registered backend names, sorted.
func Backends() []string {
	names := registry.Available()
	slices.Sort(names)
	return names
}

// New creates the named backend. An empty name selects the best available
// backend: gpu when opts.Device provides a usable device, then software,
// then any other registered backend.
func New(name string, opts Options) (Renderer, error) {
	if name != "" {
		factory := registry.Get(name)
		if factory == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
		}
		r, err := factory(opts)
		if err != nil {
			return nil, fmt.Errorf("render: create %s backend: %w", name, err)
		}
		psykit.Logger().Info("render: backend selected", "backend", name)
		return r, nil
	}

	candidates := slices.Clone(backendPriority)
	for _, n := range Backends() {
		if !slices.Contains(candidates, n) {
			candidates = append(candidates, n)
		}
	}

	var errs []error
	for _, n := range candidates {
		factory := registry.Get(n)
		if factory == nil {
			continue
		}
		r, err := factory(opts)
		if err != nil {
			psykit.Logger().Debug("render: backend unavailable", "backend", n, "err", err)
			errs = append(errs, fmt.Errorf("%s: %w", n, err))
			continue
		}
		psykit.Logger().Info("render: backend selected", "backend", n)
		return r, nil
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: none registered", ErrUnknownBackend)
	}
	return nil, fmt.Errorf("render: no backend available: %w", errors.Join(errs...))
}
