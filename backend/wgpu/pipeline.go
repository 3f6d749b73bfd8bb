package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"

	"github.com/gogpu/flashlight"
	"github.com/gogpu/flashlight/capture"
)

// overlayPipeline holds every GPU object the overlay draw needs: the render
// pipeline, the quad buffers, the uniform buffer and both bind groups.
type overlayPipeline struct {
	device *wgpu.Device

	shader         *wgpu.ShaderModule
	paramsLayout   *wgpu.BindGroupLayout
	captureLayout  *wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipeline       *wgpu.RenderPipeline

	vertexBuffer  *wgpu.Buffer
	indexBuffer   *wgpu.Buffer
	uniformBuffer *wgpu.Buffer

	capture      *captureTexture
	paramsGroup  *wgpu.BindGroup
	captureGroup *wgpu.BindGroup
}

// newOverlayPipeline builds the overlay for surfaces of the given format.
// The quad spans the original capture extents even if the texture had to
// be scaled down.
func newOverlayPipeline(device *wgpu.Device, format gputypes.TextureFormat, img *capture.Image) (p *overlayPipeline, err error) {
	if err := checkOverlayShader(); err != nil {
		return nil, err
	}

	p = &overlayPipeline{device: device}
	defer func() {
		if err != nil {
			p.release()
		}
	}()

	if err := p.createPipeline(format); err != nil {
		return nil, err
	}
	if err := p.createBuffers(img); err != nil {
		return nil, err
	}
	if p.capture, err = uploadCapture(device, img); err != nil {
		return nil, err
	}
	if err := p.createBindGroups(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *overlayPipeline) createPipeline(format gputypes.TextureFormat) error {
	var err error
	p.shader, err = p.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "flashlight-overlay",
		WGSL:  overlayShaderWGSL,
	})
	if err != nil {
		return fmt.Errorf("create shader: %w", err)
	}

	p.paramsLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "flashlight-params",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer: &gputypes.BufferBindingLayout{
					Type:           gputypes.BufferBindingTypeUniform,
					MinBindingSize: flashlight.OverlayParamsSize,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create params layout: %w", err)
	}

	p.captureLayout, err = p.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "flashlight-capture",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler: &gputypes.SamplerBindingLayout{
					Type: gputypes.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create capture layout: %w", err)
	}

	p.pipelineLayout, err = p.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "flashlight-overlay",
		BindGroupLayouts: []*wgpu.BindGroupLayout{p.paramsLayout, p.captureLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	p.pipeline, err = p.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "flashlight-overlay",
		Layout: p.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     p.shader,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					ArrayStride: flashlight.VertexStride,
					StepMode:    gputypes.VertexStepModeVertex,
					Attributes: []gputypes.VertexAttribute{
						{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},
						{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},
					},
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.DefaultMultisampleState(),
		Fragment: &wgpu.FragmentState{
			Module:     p.shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     blendReplace(),
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create pipeline: %w", err)
	}
	return nil
}

func blendReplace() *gputypes.BlendState {
	b := gputypes.BlendStateReplace()
	return &b
}

func (p *overlayPipeline) createBuffers(img *capture.Image) error {
	quad := flashlight.NewQuad(float32(img.Width), float32(img.Height))

	var err error
	if p.vertexBuffer, err = p.newBuffer("flashlight-quad-vertices", quad.VertexBytes(),
		wgpu.BufferUsageVertex|wgpu.BufferUsageCopyDst); err != nil {
		return err
	}
	if p.indexBuffer, err = p.newBuffer("flashlight-quad-indices", flashlight.IndexBytes(),
		wgpu.BufferUsageIndex|wgpu.BufferUsageCopyDst); err != nil {
		return err
	}
	p.uniformBuffer, err = p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "flashlight-params",
		Size:  flashlight.OverlayParamsSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	return nil
}

func (p *overlayPipeline) newBuffer(label string, data []byte, usage gputypes.BufferUsage) (*wgpu.Buffer, error) {
	buf, err := p.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	if err := p.device.Queue().WriteBuffer(buf, 0, data); err != nil {
		buf.Release()
		return nil, fmt.Errorf("write %s: %w", label, err)
	}
	return buf, nil
}

func (p *overlayPipeline) createBindGroups() error {
	var err error
	p.paramsGroup, err = p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "flashlight-params",
		Layout: p.paramsLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: p.uniformBuffer, Size: flashlight.OverlayParamsSize},
		},
	})
	if err != nil {
		return fmt.Errorf("create params bind group: %w", err)
	}

	p.captureGroup, err = p.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "flashlight-capture",
		Layout: p.captureLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: p.capture.view},
			{Binding: 1, Sampler: p.capture.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("create capture bind group: %w", err)
	}
	return nil
}

// writeParams uploads the per-frame uniform block.
func (p *overlayPipeline) writeParams(params flashlight.OverlayParams) error {
	return p.device.Queue().WriteBuffer(p.uniformBuffer, 0, params.Bytes())
}

// draw records and submits one render pass into view: clear, then the
// indexed quad.
func (p *overlayPipeline) draw(view *wgpu.TextureView) error {
	encoder, err := p.device.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{
		Label: "flashlight-frame",
	})
	if err != nil {
		return fmt.Errorf("create encoder: %w", err)
	}

	pass, err := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    view,
				LoadOp:  gputypes.LoadOpClear,
				StoreOp: gputypes.StoreOpStore,
				ClearValue: gputypes.Color{
					R: flashlight.ClearLevel,
					G: flashlight.ClearLevel,
					B: flashlight.ClearLevel,
					A: 1,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("begin render pass: %w", err)
	}

	pass.SetPipeline(p.pipeline)
	pass.SetBindGroup(paramsGroup, p.paramsGroup, nil)
	pass.SetBindGroup(captureGroup, p.captureGroup, nil)
	pass.SetVertexBuffer(0, p.vertexBuffer, 0)
	pass.SetIndexBuffer(p.indexBuffer, gputypes.IndexFormatUint16, 0)
	pass.DrawIndexed(flashlight.QuadIndexCount, 1, 0, 0, 0)

	if err := pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}

	cmd, err := encoder.Finish()
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	if _, err := p.device.Queue().Submit(cmd); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	return nil
}

// release frees everything created so far, in reverse order. Safe on a
// partially built pipeline.
func (p *overlayPipeline) release() {
	if p.captureGroup != nil {
		p.captureGroup.Release()
	}
	if p.paramsGroup != nil {
		p.paramsGroup.Release()
	}
	p.capture.release()
	for _, b := range []*wgpu.Buffer{p.uniformBuffer, p.indexBuffer, p.vertexBuffer} {
		if b != nil {
			b.Release()
		}
	}
	if p.pipeline != nil {
		p.pipeline.Release()
	}
	if p.pipelineLayout != nil {
		p.pipelineLayout.Release()
	}
	for _, l := range []*wgpu.BindGroupLayout{p.captureLayout, p.paramsLayout} {
		if l != nil {
			l.Release()
		}
	}
	if p.shader != nil {
		p.shader.Release()
	}
}
