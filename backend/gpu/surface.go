//go:build gpu

package gpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/canvas"
)

// surface keeps its pixels in a software surface. The texture mirrors
// those pixels only for the duration of a composite.
type surface struct {
	b   *Backend
	cpu canvas.Surface

	tex  hal.Texture
	view hal.TextureView

	vertices []byte // reused vertex staging
	failed   bool   // a GPU composite failed; stay on the CPU
}

func (s *surface) Width() int         { return s.cpu.Width() }
func (s *surface) Height() int        { return s.cpu.Height() }
func (s *surface) Image() *image.RGBA { return s.cpu.Image() }
func (s *surface) Clear()             { s.cpu.Clear() }

func (s *surface) FillCoverage(cov *canvas.Coverage, sh canvas.Shader) {
	s.cpu.FillCoverage(cov, sh)
}

func (s *surface) Erase(cov *canvas.Coverage) { s.cpu.Erase(cov) }

// Composite blends src onto the surface on the GPU. Clipped composites
// and composites after a device error run on the CPU.
func (s *surface) Composite(src canvas.Surface, op canvas.CompositeOperation, clip *canvas.Coverage) {
	if clip != nil || s.failed || s.Width() == 0 || s.Height() == 0 {
		s.cpu.Composite(src, op, clip)
		return
	}
	if err := s.compositeGPU(src, op); err != nil {
		canvas.Logger().Warn("gpu: composite failed, using software", "op", op.String(), "error", err)
		s.failed = true
		s.cpu.Composite(src, op, clip)
	}
}

func (s *surface) compositeGPU(src canvas.Surface, op canvas.CompositeOperation) error {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.device == nil {
		return fmt.Errorf("gpu: backend closed")
	}

	dst := s.cpu.Image()
	w, h := s.Width(), s.Height()
	sp := src.Image()
	sw, sh := min(w, sp.Rect.Dx()), min(h, sp.Rect.Dy())

	var count uint32
	s.vertices, count = pixelVertices(sp, sw, sh, w, h, keepsDestination(op), s.vertices)
	if count == 0 {
		return nil
	}

	pipeline, err := b.pipeline(op)
	if err != nil {
		return err
	}
	if err := s.ensureTexture(); err != nil {
		return err
	}

	uw, uh := uint32(w), uint32(h) //nolint:gosec // surface sizes fit uint32
	b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		dst.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(dst.Stride), RowsPerImage: uh}, //nolint:gosec // stride fits uint32
		&hal.Extent3D{Width: uw, Height: uh, DepthOrArrayLayers: 1},
	)

	vertBuf, err := b.createAndUploadBuffer("composite_verts", s.vertices,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	defer b.device.DestroyBuffer(vertBuf)

	pitch := alignedRowBytes(uw)
	stagingSize := uint64(pitch) * uint64(uh)
	staging, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "composite_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create staging buffer: %w", err)
	}
	defer b.device.DestroyBuffer(staging)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "composite_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("composite"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopyDst,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "composite_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    s.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	rp.SetPipeline(pipeline)
	rp.SetVertexBuffer(0, vertBuf, 0)
	rp.Draw(count, 1, 0, 0)
	rp.End()

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(s.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: pitch, RowsPerImage: uh},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: uw, Height: uh, DepthOrArrayLayers: 1},
	}})
	// Leave the texture ready for the next upload.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageCopyDst,
		},
	}})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("gpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("gpu: submit: %w", err)
	}
	ok, err := b.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("gpu: wait: ok=%v err=%w", ok, err)
	}

	readback := make([]byte, stagingSize)
	if err := b.queue.ReadBuffer(staging, 0, readback); err != nil {
		return fmt.Errorf("gpu: readback: %w", err)
	}
	unpadRows(dst, readback, w, h, int(pitch))
	return nil
}

// ensureTexture allocates the surface texture on first use. b.mu must be
// held.
func (s *surface) ensureTexture() error {
	if s.tex != nil {
		return nil
	}
	d := s.b.device
	tex, err := d.CreateTexture(&hal.TextureDescriptor{
		Label:         "surface",
		Size:          hal.Extent3D{Width: uint32(s.Width()), Height: uint32(s.Height()), DepthOrArrayLayers: 1}, //nolint:gosec // surface sizes fit uint32
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        surfaceFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("gpu: create surface texture: %w", err)
	}
	view, err := d.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "surface_view",
		Format:        surfaceFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		d.DestroyTexture(tex)
		return fmt.Errorf("gpu: create surface view: %w", err)
	}
	s.tex, s.view = tex, view
	return nil
}

// destroyTexture releases the surface texture. b.mu must be held.
func (s *surface) destroyTexture() {
	d := s.b.device
	if s.view != nil {
		d.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		d.DestroyTexture(s.tex)
		s.tex = nil
	}
}
