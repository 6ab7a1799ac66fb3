// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"errors"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
)

// recordingDevice counts pipeline and buffer creation on top of the noop
// device.
type recordingDevice struct {
	*noop.Device
	pipelines int
	buffers   int
	textures  int
	destroyed int
}

func (d *recordingDevice) CreateRenderPipeline(desc *hal.RenderPipelineDescriptor) (hal.RenderPipeline, error) {
	d.pipelines++
	return d.Device.CreateRenderPipeline(desc)
}

func (d *recordingDevice) CreateBuffer(desc *hal.BufferDescriptor) (hal.Buffer, error) {
	d.buffers++
	return d.Device.CreateBuffer(desc)
}

func (d *recordingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	d.textures++
	return d.Device.CreateTexture(desc)
}

func (d *recordingDevice) DestroyTexture(tex hal.Texture) {
	d.destroyed++
	d.Device.DestroyTexture(tex)
}

// recordingQueue keeps the last buffer and texture upload.
type recordingQueue struct {
	*noop.Queue
	vertices []byte
	texels   []byte
	submits  int
}

func (q *recordingQueue) WriteBuffer(buf hal.Buffer, offset uint64, data []byte) error {
	q.vertices = append(q.vertices[:0], data...)
	return q.Queue.WriteBuffer(buf, offset, data)
}

func (q *recordingQueue) WriteTexture(dst *hal.ImageCopyTexture, data []byte, layout *hal.ImageDataLayout, size *hal.Extent3D) error {
	q.texels = append(q.texels[:0], data...)
	return q.Queue.WriteTexture(dst, data, layout, size)
}

func (q *recordingQueue) Submit(bufs []hal.CommandBuffer) (uint64, error) {
	q.submits++
	return q.Queue.Submit(bufs)
}

type testHandle struct {
	device *recordingDevice
	queue  *recordingQueue
}

func newTestHandle() *testHandle {
	return &testHandle{
		device: &recordingDevice{Device: &noop.Device{}},
		queue:  &recordingQueue{Queue: &noop.Queue{}},
	}
}

func (h *testHandle) Device() gpucontext.Device   { return h.device }
func (h *testHandle) Queue() gpucontext.Queue     { return h.queue }
func (h *testHandle) Adapter() gpucontext.Adapter { return nil }
func (h *testHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

func (h *testHandle) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

func newTestGPU(t *testing.T) (*GPURenderer, *testHandle) {
	t.Helper()
	h := newTestHandle()
	r, err := NewGPURenderer(h)
	if err != nil {
		t.Fatalf("NewGPURenderer() error = %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r, h
}

func TestGPUNoDevice(t *testing.T) {
	if _, err := NewGPURenderer(NullDeviceHandle{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("NewGPURenderer(NullDeviceHandle) error = %v, want ErrNoDevice", err)
	}
	if _, err := New(BackendGPU, Options{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("New(gpu) without device error = %v, want ErrNoDevice", err)
	}
}

func TestNewAutoPrefersGPU(t *testing.T) {
	r, err := New("", Options{Device: newTestHandle()})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer r.Close()
	if r.Name() != BackendGPU {
		t.Errorf("Name() = %q, want %q", r.Name(), BackendGPU)
	}
}

func vertexAt(data []byte, i int) (x, y float32, color [4]float32) {
	off := i * fillVertexStride
	f := func(k int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(data[off+4*k:])) }
	return f(0), f(1), [4]float32{f(2), f(3), f(4), f(5)}
}

func TestGPUTessellatedFrame(t *testing.T) {
	r, h := newTestGPU(t)
	target, err := r.CreateTextureTarget(16, 16, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("CreateTextureTarget() error = %v", err)
	}
	defer target.Destroy()

	s := r.CreateScene(16, 16)
	s.FillShape(geometry.Rect{X: 0, Y: 0, W: 8, H: 16}, scene.Solid{Color: scene.RGB(1, 0, 0)}, scene.WithAlpha(0.5))
	if err := r.RenderToTexture(target, s); err != nil {
		t.Fatalf("RenderToTexture() error = %v", err)
	}

	if h.queue.submits != 1 {
		t.Errorf("submits = %d, want 1", h.queue.submits)
	}
	if h.queue.texels != nil {
		t.Error("tessellated frame uploaded texels")
	}
	if got := len(h.queue.vertices) / fillVertexStride; got != 6 {
		t.Fatalf("vertex count = %d, want 6", got)
	}

	x, y, c := vertexAt(h.queue.vertices, 0)
	if x != -1 || y != 1 {
		t.Errorf("first vertex = (%v, %v), want (-1, 1)", x, y)
	}
	if want := [4]float32{0.5, 0, 0, 0.5}; c != want {
		t.Errorf("vertex color = %v, want premultiplied %v", c, want)
	}
	x, y, _ = vertexAt(h.queue.vertices, 2)
	if x != 0 || y != -1 {
		t.Errorf("third vertex = (%v, %v), want (0, -1)", x, y)
	}

	// The pipeline is cached per format.
	s = r.CreateScene(16, 16)
	s.FillShape(geometry.Circle{CX: 8, CY: 8, R: 4}, scene.Solid{Color: scene.Gray(1)})
	if err := r.RenderToTexture(target, s); err != nil {
		t.Fatal(err)
	}
	if h.device.pipelines != 1 {
		t.Errorf("pipelines created = %d, want 1", h.device.pipelines)
	}
}

func TestGPUEmptySceneClearsOnly(t *testing.T) {
	r, h := newTestGPU(t)
	target, err := r.CreateTextureTarget(8, 8, gputypes.TextureFormatUndefined)
	if err != nil {
		t.Fatal(err)
	}
	defer target.Destroy()
	if target.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("default format = %v, want RGBA8Unorm", target.Format())
	}
	if err := r.RenderToTexture(target, r.CreateScene(8, 8)); err != nil {
		t.Fatal(err)
	}
	if h.device.buffers != 0 {
		t.Errorf("vertex buffers created = %d, want 0", h.device.buffers)
	}
	if h.queue.submits != 1 {
		t.Errorf("submits = %d, want 1", h.queue.submits)
	}
}

func TestGPUSoftwareFallback(t *testing.T) {
	tests := []struct {
		name   string
		format gputypes.TextureFormat
		want   [4]byte
	}{
		{"rgba", gputypes.TextureFormatRGBA8Unorm, [4]byte{255, 0, 0, 255}},
		{"bgra", gputypes.TextureFormatBGRA8Unorm, [4]byte{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, h := newTestGPU(t)
			target, err := r.CreateTextureTarget(8, 8, tt.format)
			if err != nil {
				t.Fatal(err)
			}
			defer target.Destroy()

			s := r.CreateScene(8, 8)
			s.StrokeShape(geometry.Rect{X: 2, Y: 2, W: 4, H: 4}, scene.Solid{Color: scene.RGB(1, 0, 0)}, scene.NewStrokeStyle(8))
			if err := r.RenderToTexture(target, s); err != nil {
				t.Fatalf("RenderToTexture() error = %v", err)
			}
			if h.queue.submits != 0 {
				t.Errorf("submits = %d, want 0 for uploaded frame", h.queue.submits)
			}
			if len(h.queue.texels) != 8*8*4 {
				t.Fatalf("uploaded %d bytes, want %d", len(h.queue.texels), 8*8*4)
			}
			off := (4*8 + 4) * 4
			var got [4]byte
			copy(got[:], h.queue.texels[off:off+4])
			if got != tt.want {
				t.Errorf("texel(4,4) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGPUImageTargetUsesSoftware(t *testing.T) {
	r, h := newTestGPU(t)
	target := NewImageTarget(16, 16)
	if err := r.RenderToTexture(target, redSquareScene(r)); err != nil {
		t.Fatal(err)
	}
	if got := target.Image().RGBAAt(8, 8); got.R != 255 || got.B != 0 {
		t.Errorf("pixel(8,8) = %v, want red", got)
	}
	if h.queue.submits != 0 {
		t.Errorf("submits = %d, want 0", h.queue.submits)
	}
}

func TestGPUBitmapLifetime(t *testing.T) {
	h := newTestHandle()
	r, err := NewGPURenderer(h)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.CreateBitmap(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if err != nil {
		t.Fatalf("CreateBitmap() error = %v", err)
	}
	if _, ok := b.Handle.(hal.Texture); !ok {
		t.Errorf("Handle = %T, want hal.Texture", b.Handle)
	}
	if len(h.queue.texels) != 4*4*4 {
		t.Errorf("uploaded %d bytes, want %d", len(h.queue.texels), 4*4*4)
	}
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if h.device.destroyed != 1 {
		t.Errorf("textures destroyed = %d, want 1", h.device.destroyed)
	}
	if _, err := r.CreateBitmap(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrClosed) {
		t.Errorf("CreateBitmap() after Close error = %v, want ErrClosed", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestTextureTargetDestroy(t *testing.T) {
	r, h := newTestGPU(t)
	target, err := r.CreateTextureTarget(4, 4, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatal(err)
	}
	target.Destroy()
	target.Destroy()
	if h.device.destroyed != 1 {
		t.Errorf("textures destroyed = %d, want 1", h.device.destroyed)
	}

	wrapped := NewTextureTarget(&noop.Texture{}, nil, 4, 4, gputypes.TextureFormatRGBA8Unorm)
	wrapped.Destroy()
	if h.device.destroyed != 1 {
		t.Error("Destroy released a wrapped texture")
	}
}

func TestSwapRB(t *testing.T) {
	got := swapRB(nil, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	if string(got) != string(want) {
		t.Errorf("swapRB() = %v, want %v", got, want)
	}
}
