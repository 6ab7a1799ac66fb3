// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/psykit"
	"github.com/gogpu/psykit/geometry"
	"github.com/gogpu/psykit/scene"
	"github.com/gogpu/psykit/units"
)

//go:embed shaders/fill.wgsl
var fillShaderSource string

// fillVertexStride is the byte stride per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	color    (vec4<f32>) = 16 bytes (location 1)
const fillVertexStride = 24

func init() {
	Register(BackendGPU, func(opts Options) (Renderer, error) {
		return NewGPURenderer(opts.Device)
	})
}

// GPURenderer draws into GPU textures through a hal device owned by the
// host application.
//
// Scenes made only of solid SourceOver fills of rectangles, circles,
// ellipses, rounded rectangles and polygons are tessellated on the CPU
// and drawn in one render pass. Any other scene is rasterized by the
// software backend and uploaded into the target texture.
type GPURenderer struct {
	handle DeviceHandle
	device hal.Device
	queue  hal.Queue

	software *SoftwareRenderer

	spirv     []uint32
	shader    hal.ShaderModule
	layout    hal.PipelineLayout
	pipelines map[gputypes.TextureFormat]hal.RenderPipeline

	staging  []byte
	upload   *image.RGBA
	textures []hal.Texture
	closed   bool
}

// NewGPURenderer returns a renderer using the device and queue of handle.
// It returns ErrNoDevice when handle does not expose a hal device and
// queue. The WGSL shader is compiled eagerly so shader errors surface
// here.
func NewGPURenderer(handle DeviceHandle) (*GPURenderer, error) {
	device, queue, ok := halDevice(handle)
	if !ok {
		return nil, ErrNoDevice
	}
	spirv, err := compileShader(fillShaderSource)
	if err != nil {
		return nil, err
	}
	info := handle.AdapterInfo()
	psykit.Logger().Info("render: gpu backend", "adapter", info.Name, "type", info.Type.String())
	return &GPURenderer{
		handle:    handle,
		device:    device,
		queue:     queue,
		software:  NewSoftwareRenderer(),
		spirv:     spirv,
		pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline),
	}, nil
}

// compileShader compiles WGSL to SPIR-V words.
func compileShader(source string) ([]uint32, error) {
	b, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("render: compile shader: %w", err)
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(b[i*4:])
	}
	return words, nil
}

// Name returns "gpu".
func (r *GPURenderer) Name() string { return BackendGPU }

// DeviceHandle returns the handle the renderer was created with.
func (r *GPURenderer) DeviceHandle() DeviceHandle { return r.handle }

// CreateScene returns an empty scene.
func (r *GPURenderer) CreateScene(width, height int) *scene.Scene {
	return scene.New(width, height)
}

// CreateBitmap copies img and uploads it into a sampled texture stored in
// the bitmap's Handle. The CPU copy stays available for software
// fallback.
func (r *GPURenderer) CreateBitmap(img image.Image) (*scene.Bitmap, error) {
	if r.closed {
		return nil, ErrClosed
	}
	rgba, err := toRGBA(img)
	if err != nil {
		return nil, err
	}
	w, h := uint32(rgba.Rect.Dx()), uint32(rgba.Rect.Dy()) //nolint:gosec // image sizes fit uint32
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "psykit_bitmap",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create bitmap texture: %w", err)
	}
	if err := r.writeTexture(tex, rgba.Pix, w, h); err != nil {
		r.device.DestroyTexture(tex)
		return nil, err
	}
	r.textures = append(r.textures, tex)
	return scene.NewBitmap(rgba, tex), nil
}

// LoadFont parses font data.
func (r *GPURenderer) LoadFont(data []byte) (scene.Font, error) {
	return r.software.LoadFont(data)
}

// CreateTextureTarget allocates a texture usable as a render target. The
// caller releases it with Destroy.
func (r *GPURenderer) CreateTextureTarget(width, height int, format gputypes.TextureFormat) (*TextureTarget, error) {
	if r.closed {
		return nil, ErrClosed
	}
	if format == gputypes.TextureFormatUndefined {
		format = gputypes.TextureFormatRGBA8Unorm
	}
	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "psykit_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1}, //nolint:gosec // target sizes fit uint32
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create target texture: %w", err)
	}
	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "psykit_target_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create target view: %w", err)
	}
	t := NewTextureTarget(tex, view, width, height, format)
	t.owner = r.device
	return t, nil
}

// RenderToTexture consumes s and draws it into target. ImageTargets are
// handed to the software backend.
func (r *GPURenderer) RenderToTexture(target Target, s *scene.Scene) error {
	if r.closed {
		return ErrClosed
	}
	if target == nil {
		return ErrNilTarget
	}
	if s == nil {
		return ErrNilScene
	}
	t, ok := target.(*TextureTarget)
	if !ok {
		return r.software.RenderToTexture(target, s)
	}
	cmds, err := s.Consume()
	if err != nil {
		return err
	}

	data, count, ok := r.tessellate(cmds, t.Width(), t.Height())
	if !ok {
		psykit.Logger().Debug("render: gpu scene needs software rasterization", "commands", len(cmds))
		return r.uploadFrame(t, s.Background(), cmds)
	}
	psykit.Logger().Debug("render: gpu frame", "commands", len(cmds), "vertices", count)
	return r.draw(t, s.Background(), data, count)
}

// gpuPrimitive reports whether p tessellates into a correct triangle
// list.
func gpuPrimitive(p geometry.Primitive) bool {
	switch p.(type) {
	case geometry.Rect, geometry.RoundedRect, geometry.Circle, geometry.Ellipse, geometry.Polygon:
		return true
	}
	return false
}

// tessellate converts cmds into NDC vertex data. It reports false when a
// command cannot be drawn by the fill pipeline.
func (r *GPURenderer) tessellate(cmds []scene.Command, w, h int) ([]byte, uint32, bool) {
	ndc := geometry.NDC(units.PixelSize{Width: w, Height: h})
	buf := r.staging[:0]
	for _, cmd := range cmds {
		fill, ok := cmd.(scene.FillCommand)
		if !ok || fill.Blend != scene.SourceOver || !gpuPrimitive(fill.Shape) {
			return nil, 0, false
		}
		solid, ok := fill.Brush.(scene.Solid)
		if !ok {
			return nil, 0, false
		}
		c := solid.Color.Clamp()
		c = c.WithAlpha(c.A * fill.Alpha).Premultiply()
		color := [4]float32{c.R, c.G, c.B, c.A}
		m := ndc.Multiply(fill.Transform)
		for _, v := range geometry.Tessellate(fill.Shape, geometry.TessellateOptions{}) {
			p := m.TransformPoint(geometry.Pt(float64(v.X), float64(v.Y)))
			buf = appendFillVertex(buf, float32(p.X), float32(p.Y), color)
		}
	}
	r.staging = buf
	return buf, uint32(len(buf) / fillVertexStride), true //nolint:gosec // vertex count fits uint32
}

func appendFillVertex(buf []byte, x, y float32, color [4]float32) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(x))
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(y))
	for _, c := range color {
		buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(c))
	}
	return buf
}

func fillVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: fillVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 8, ShaderLocation: 1}, // color
			},
		},
	}
}

// ensurePipeline returns the fill pipeline for format, creating the
// shader module, layout and pipeline on first use.
func (r *GPURenderer) ensurePipeline(format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if p, ok := r.pipelines[format]; ok {
		return p, nil
	}
	if r.shader == nil {
		shader, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
			Label:  "psykit_fill_shader",
			Source: hal.ShaderSource{SPIRV: r.spirv},
		})
		if err != nil {
			return nil, fmt.Errorf("render: create fill shader: %w", err)
		}
		r.shader = shader
	}
	if r.layout == nil {
		layout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
			Label: "psykit_fill_layout",
		})
		if err != nil {
			return nil, fmt.Errorf("render: create fill layout: %w", err)
		}
		r.layout = layout
	}

	blend := gputypes.BlendStatePremultiplied()
	p, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "psykit_fill_pipeline",
		Layout: r.layout,
		Vertex: hal.VertexState{
			Module:     r.shader,
			EntryPoint: "vs_main",
			Buffers:    fillVertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     r.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.DefaultMultisampleState(),
	})
	if err != nil {
		return nil, fmt.Errorf("render: create fill pipeline: %w", err)
	}
	psykit.Logger().Debug("render: fill pipeline created", "format", format.String())
	r.pipelines[format] = p
	return p, nil
}

// draw clears t to bg and draws count vertices from data.
func (r *GPURenderer) draw(t *TextureTarget, bg scene.Color, data []byte, count uint32) error {
	pipeline, err := r.ensurePipeline(t.Format())
	if err != nil {
		return err
	}

	var vbuf hal.Buffer
	if count > 0 {
		vbuf, err = r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "psykit_fill_vertices",
			Size:  uint64(len(data)),
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("render: create vertex buffer: %w", err)
		}
		defer r.device.DestroyBuffer(vbuf)
		if err := r.queue.WriteBuffer(vbuf, 0, data); err != nil {
			return fmt.Errorf("render: write vertex buffer: %w", err)
		}
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "psykit_frame"})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("psykit_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	c := bg.Clamp().Premultiply()
	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "psykit_fill_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       t.View(),
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)},
		}},
	})
	if count > 0 {
		pass.SetPipeline(pipeline)
		pass.SetVertexBuffer(0, vbuf, 0)
		pass.Draw(count, 1, 0, 0)
	}
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	if _, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	if err := r.device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait for GPU: %w", err)
	}
	return nil
}

// uploadFrame rasterizes cmds on the CPU and copies the result into t.
func (r *GPURenderer) uploadFrame(t *TextureTarget, bg scene.Color, cmds []scene.Command) error {
	w, h := t.Width(), t.Height()
	if r.upload == nil || r.upload.Rect.Dx() != w || r.upload.Rect.Dy() != h {
		r.upload = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	if err := r.software.rasterize(r.upload, bg, cmds); err != nil {
		return err
	}
	pix := r.upload.Pix
	if t.Format() == gputypes.TextureFormatBGRA8Unorm {
		pix = swapRB(r.staging[:0], pix)
		r.staging = pix
	}
	if err := r.writeTexture(t.Texture(), pix, uint32(w), uint32(h)); err != nil { //nolint:gosec // target sizes fit uint32
		return err
	}
	return r.device.WaitIdle()
}

func (r *GPURenderer) writeTexture(tex hal.Texture, pix []byte, w, h uint32) error {
	err := r.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, Aspect: gputypes.TextureAspectAll},
		pix,
		&hal.ImageDataLayout{BytesPerRow: 4 * w, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("render: write texture: %w", err)
	}
	return nil
}

// swapRB appends src to dst with red and blue swapped.
func swapRB(dst, src []byte) []byte {
	dst = append(dst, src...)
	for i := 0; i+3 < len(dst); i += 4 {
		dst[i], dst[i+2] = dst[i+2], dst[i]
	}
	return dst
}

// Close releases pipelines and bitmap textures. The device itself belongs
// to the host.
func (r *GPURenderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	for _, p := range r.pipelines {
		r.device.DestroyRenderPipeline(p)
	}
	clear(r.pipelines)
	if r.layout != nil {
		r.device.DestroyPipelineLayout(r.layout)
		r.layout = nil
	}
	if r.shader != nil {
		r.device.DestroyShaderModule(r.shader)
		r.shader = nil
	}
	for _, tex := range r.textures {
		r.device.DestroyTexture(tex)
	}
	r.textures = nil
	return r.software.Close()
}

var _ Renderer = (*GPURenderer)(nil)
