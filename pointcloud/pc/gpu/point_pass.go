package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/cloudview/pointcloud/pc/core"
	"github.com/gekko3d/cloudview/pointcloud/pc/shaders"
)

// quadVertices is the vertex count of one point sprite (two triangles).
const quadVertices = 6

// PointPass draws every ring record as a sized, solid-color sprite.
type PointPass struct {
	Pipeline   *wgpu.RenderPipeline
	UniformBuf *wgpu.Buffer
	BindGroup  *wgpu.BindGroup
	Device     *wgpu.Device
}

func NewPointPass(device *wgpu.Device, format wgpu.TextureFormat) (*PointPass, error) {
	module, err := device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "PointsShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.PointsWGSL},
	})
	if err != nil {
		return nil, &ShaderError{Stage: "points module", Err: err}
	}
	defer module.Release()

	pipeline, err := device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label: "PointsPipeline",
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{{
				// Three consecutive float32 per point, no padding.
				ArrayStride: core.PointSize,
				StepMode:    wgpu.VertexStepModeInstance,
				Attributes: []wgpu.VertexAttribute{
					{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
				},
			}},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, &ShaderError{Stage: "points pipeline", Err: err}
	}

	uniformBuf, err := device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "PointsUB",
		Size:  UniformSize,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		pipeline.Release()
		return nil, err
	}

	bindGroup, err := device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "PointsBG",
		Layout: pipeline.GetBindGroupLayout(0),
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: uniformBuf, Size: UniformSize},
		},
	})
	if err != nil {
		uniformBuf.Release()
		pipeline.Release()
		return nil, err
	}

	return &PointPass{
		Pipeline:   pipeline,
		UniformBuf: uniformBuf,
		BindGroup:  bindGroup,
		Device:     device,
	}, nil
}

// Update writes this frame's uniforms.
func (p *PointPass) Update(queue *wgpu.Queue, u PointUniforms) error {
	return queue.WriteBuffer(p.UniformBuf, 0, u.Pack())
}

// Draw issues one instanced draw over the first count ring records.
func (p *PointPass) Draw(pass *wgpu.RenderPassEncoder, points *PointBuffer, count int) {
	if count <= 0 || points == nil || points.Buffer == nil {
		return
	}
	count = min(count, points.Capacity())

	pass.SetPipeline(p.Pipeline)
	pass.SetBindGroup(0, p.BindGroup, nil)
	pass.SetVertexBuffer(0, points.Buffer, 0, points.Buffer.GetSize())
	pass.Draw(quadVertices, uint32(count), 0, 0)
}

func (p *PointPass) Release() {
	if p.BindGroup != nil {
		p.BindGroup.Release()
	}
	if p.UniformBuf != nil {
		p.UniformBuf.Release()
	}
	if p.Pipeline != nil {
		p.Pipeline.Release()
	}
}
