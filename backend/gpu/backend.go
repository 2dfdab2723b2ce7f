//go:build gpu

package gpu

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	_ "github.com/gogpu/wgpu/hal/vulkan" // register the Vulkan backend

	"github.com/gogpu/canvas"
)

//go:embed shaders/composite.wgsl
var compositeShaderSource string

// surfaceFormat is the texture format of every surface. It matches the
// byte order of image.RGBA so readback needs no channel swizzle.
const surfaceFormat = gputypes.TextureFormatRGBA8Unorm

// fenceTimeout bounds the wait for one composite to finish.
const fenceTimeout = 5 * time.Second

// ErrNoAdapter is returned by NewBackend when no GPU adapter is found.
var ErrNoAdapter = errors.New("gpu: no adapter found")

// Backend is a canvas.Backend whose surfaces composite on a wgpu device.
// Create it with NewBackend and release it with Close.
//
// Backend is safe for concurrent use; GPU work is serialized.
type Backend struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
	adapter  string

	shader     hal.ShaderModule
	pipeLayout hal.PipelineLayout
	pipelines  map[canvas.CompositeOperation]hal.RenderPipeline

	surfaces []*surface
	closed   bool
}

// NewBackend opens a headless device on the first discrete or integrated
// adapter, or on the first adapter of any kind.
func NewBackend() (*Backend, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("gpu: vulkan backend not available: %w", ErrNoAdapter)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("gpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("gpu: open device: %w", err)
	}

	b := &Backend{
		instance:  instance,
		device:    openDev.Device,
		queue:     openDev.Queue,
		adapter:   selected.Info.Name,
		pipelines: make(map[canvas.CompositeOperation]hal.RenderPipeline),
	}
	if err := b.createLayout(); err != nil {
		b.Close()
		return nil, err
	}
	canvas.Logger().Info("gpu: device opened", "adapter", b.adapter)
	return b, nil
}

// Name implements canvas.Backend.
func (b *Backend) Name() string { return "wgpu" }

// Adapter returns the name of the adapter in use.
func (b *Backend) Adapter() string { return b.adapter }

// NewSurface implements canvas.Backend. The GPU texture is allocated on
// the first composite.
func (b *Backend) NewSurface(width, height int) canvas.Surface {
	s := &surface{
		b:   b,
		cpu: canvas.SoftwareBackend{}.NewSurface(width, height),
	}
	b.mu.Lock()
	b.surfaces = append(b.surfaces, s)
	b.mu.Unlock()
	return s
}

// Close releases every GPU resource. Surfaces keep working on the CPU
// after Close.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	if b.device == nil {
		return
	}
	for _, s := range b.surfaces {
		s.destroyTexture()
	}
	b.surfaces = nil
	for op, p := range b.pipelines {
		b.device.DestroyRenderPipeline(p)
		delete(b.pipelines, op)
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
	b.device.Destroy()
	b.device = nil
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}

// createLayout compiles the composite shader and creates the pipeline
// layout shared by every blend pipeline. The shader binds no resources.
func (b *Backend) createLayout() error {
	if compositeShaderSource == "" {
		return fmt.Errorf("gpu: composite shader source is empty")
	}
	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "composite_shader",
		Source: hal.ShaderSource{WGSL: compositeShaderSource},
	})
	if err != nil {
		return fmt.Errorf("gpu: compile composite shader: %w", err)
	}
	b.shader = shader

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "composite_pipe_layout",
	})
	if err != nil {
		return fmt.Errorf("gpu: create composite pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout
	return nil
}

// pipeline returns the render pipeline for op, creating it on first use.
// b.mu must be held.
func (b *Backend) pipeline(op canvas.CompositeOperation) (hal.RenderPipeline, error) {
	if p, ok := b.pipelines[op]; ok {
		return p, nil
	}
	state, ok := blendState(op)
	if !ok {
		return nil, fmt.Errorf("gpu: no blend state for %v", op)
	}
	p, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "composite_" + op.String(),
		Layout: b.pipeLayout,
		Vertex: hal.VertexState{
			Module:     b.shader,
			EntryPoint: "vs_main",
			Buffers:    vertexLayout(),
		},
		Fragment: &hal.FragmentState{
			Module:     b.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    surfaceFormat,
					Blend:     &state,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyPointList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %v pipeline: %w", op, err)
	}
	b.pipelines[op] = p
	return p, nil
}

func vertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: vertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0}, // position
				{Format: gputypes.VertexFormatUnorm8x4, Offset: 8, ShaderLocation: 1},  // color
			},
		},
	}
}

// createAndUploadBuffer creates a buffer with usage and writes data to it.
func (b *Backend) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}
