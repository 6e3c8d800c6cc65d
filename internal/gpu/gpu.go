// Package gpu describes the device boundary the scene core renders through.
//
// The core never talks to a graphics API directly. It creates resources through a
// Device, records commands on a Context and presents through a System. The
// glbackend package implements these interfaces on OpenGL; gputest provides a
// recording implementation for tests.
package gpu

import "errors"

// ErrReleased is returned when a resource is used after Release.
var ErrReleased = errors.New("gpu: resource already released")

// Stage selects the shader stages a binding applies to.
type Stage uint8

const (
	StageVertex Stage = 1 << iota
	StagePixel

	StageVertexPixel = StageVertex | StagePixel
)

// Constant buffer slots shared by every effect. The same slot is used for the
// vertex and pixel stage.
const (
	SlotObject = 0
	SlotCamera = 1
	SlotLight  = 2
	SlotScene  = 3
)

// SlotDepthResource is the vertex-stage texture slot the depth buffer is exposed
// at while it is detached from the output merger.
const SlotDepthResource = 1

// Resource is anything holding a device-side handle.
type Resource interface {
	Release()
}

// Buffer is a device buffer (vertex, index or constant).
type Buffer interface {
	Resource
	Size() int
}

// ShaderResource is a view a shader can sample (textures, the depth buffer).
type ShaderResource interface {
	Resource
}

// Program is a linked vertex + pixel shader pair with its input layout.
type Program interface {
	Resource
}

// BlendState is an immutable output-merger blend configuration.
type BlendState interface {
	Resource
	Desc() BlendDesc
}

// DepthStencilState is an immutable depth/stencil configuration.
type DepthStencilState interface {
	Resource
	Desc() DepthStencilDesc
}

// RasterizerState is an immutable rasterizer configuration.
type RasterizerState interface {
	Resource
	Desc() RasterizerDesc
}

// RenderTargetView and DepthStencilView are opaque output-merger attachments.
type (
	RenderTargetView any
	DepthStencilView any
)

type BufferKind uint8

const (
	VertexBuffer BufferKind = iota
	IndexBuffer
	ConstantBuffer
)

func (k BufferKind) String() string {
	switch k {
	case VertexBuffer:
		return "vertex"
	case IndexBuffer:
		return "index"
	case ConstantBuffer:
		return "constant"
	}
	return "unknown"
}

// BufferDesc describes a buffer to create. Dynamic buffers may be rewritten
// with Context.UpdateBuffer.
type BufferDesc struct {
	Kind    BufferKind
	Size    int
	Dynamic bool
}

// ShaderSource is one shader stage as loaded from disk.
type ShaderSource struct {
	Path string
	Code []byte
}

type TextureKind uint8

const (
	Texture2D TextureKind = iota
	TextureCube
)

// TextureDesc describes RGBA8 texture data. Cube textures carry six faces in
// +X, -X, +Y, -Y, +Z, -Z order.
type TextureDesc struct {
	Kind   TextureKind
	Width  int
	Height int
}

// Viewport maps clip space onto the render target.
type Viewport struct {
	X, Y          float32
	Width, Height float32
	MinDepth      float32
	MaxDepth      float32
}

type Topology uint8

const (
	TriangleList Topology = iota
	TriangleStrip
)

// PipelineState is everything an effect binds before a draw. It is set as a
// single value so a draw never inherits half of another effect's state.
type PipelineState struct {
	Program      Program
	Layout       VertexLayout
	Blend        BlendState
	DepthStencil DepthStencilState
	Raster       RasterizerState
	Topology     Topology
}

// Device creates device resources.
type Device interface {
	CreateBuffer(desc BufferDesc, initial []byte) (Buffer, error)
	CreateProgram(vs, ps ShaderSource, layout VertexLayout) (Program, error)
	CreateBlendState(desc BlendDesc) (BlendState, error)
	CreateDepthStencilState(desc DepthStencilDesc) (DepthStencilState, error)
	CreateRasterizerState(desc RasterizerDesc) (RasterizerState, error)
	CreateTexture(desc TextureDesc, faces [][]byte) (ShaderResource, error)
}

// Context records commands. All pipeline state it holds is global: whatever
// one draw leaves bound is visible to the next.
type Context interface {
	SetRenderTargets(rt RenderTargetView, ds DepthStencilView)
	RenderTargets() (RenderTargetView, DepthStencilView)
	SetViewport(vp Viewport)
	ClearRenderTarget(rt RenderTargetView, colour [4]float32)
	ClearDepthStencil(ds DepthStencilView, depth float32, stencil uint8)

	UpdateBuffer(b Buffer, data []byte) error
	SetConstantBuffer(stages Stage, slot int, b Buffer)
	SetShaderResources(stages Stage, slot int, views ...ShaderResource)
	SetPipeline(p PipelineState)
	SetVertexBuffer(slot int, b Buffer, stride int)
	SetIndexBuffer(b Buffer)

	Draw(vertexCount, startVertex int)
	DrawIndexed(indexCount, startIndex int)
	DrawInstanced(vertexCount, instanceCount int)
	DrawIndexedInstanced(indexCount, instanceCount int)
}

// System is the device/context/swap-chain host the scene renders into. The
// scene neither creates nor destroys it. Device and Context may return nil
// when the device is lost or not yet created.
type System interface {
	Device() Device
	Context() Context
	BackBuffer() RenderTargetView
	DepthStencil() DepthStencilView
	DepthStencilResource() ShaderResource
	Present() error
	ResizeBuffers(width, height int) error
}
