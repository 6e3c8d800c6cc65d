package glbackend

import (
	"fmt"

	"glade/internal/gpu"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// renderTarget is the offscreen colour attachment the scene draws into.
type renderTarget struct {
	fbo    uint32
	colour uint32
}

// depthTarget is the depth-stencil attachment. The same texture is exposed as
// a shader resource through System.DepthStencilResource.
type depthTarget struct {
	tex *texture
}

type vertexStream struct {
	buf    *buffer
	stride int
}

// Context translates gpu commands into GL calls. Vertex attributes are
// resolved at draw time from the bound pipeline layout and vertex buffers.
type Context struct {
	vao uint32

	rt       *renderTarget
	ds       *depthTarget
	pipeline gpu.PipelineState
	streams  [2]vertexStream
	index    *buffer
	enabled  int
}

func newContext() *Context {
	c := &Context{}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c
}

func (c *Context) release() {
	gl.DeleteVertexArrays(1, &c.vao)
}

// SetRenderTargets binds the target's framebuffer and attaches ds, or
// detaches depth entirely when ds is nil.
func (c *Context) SetRenderTargets(rt gpu.RenderTargetView, ds gpu.DepthStencilView) {
	c.rt, _ = rt.(*renderTarget)
	c.ds, _ = ds.(*depthTarget)
	if c.rt == nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, c.rt.fbo)
	var depth uint32
	if c.ds != nil {
		depth = c.ds.tex.id
	}
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.TEXTURE_2D, depth, 0)
}

func (c *Context) RenderTargets() (gpu.RenderTargetView, gpu.DepthStencilView) {
	var (
		rt gpu.RenderTargetView
		ds gpu.DepthStencilView
	)
	if c.rt != nil {
		rt = c.rt
	}
	if c.ds != nil {
		ds = c.ds
	}
	return rt, ds
}

func (c *Context) SetViewport(vp gpu.Viewport) {
	gl.Viewport(int32(vp.X), int32(vp.Y), int32(vp.Width), int32(vp.Height))
	gl.DepthRangef(vp.MinDepth, vp.MaxDepth)
}

func (c *Context) ClearRenderTarget(rt gpu.RenderTargetView, colour [4]float32) {
	if t, ok := rt.(*renderTarget); ok && t != c.rt {
		gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
		defer c.SetRenderTargets(c.rtView(), c.dsView())
	}
	gl.ClearColor(colour[0], colour[1], colour[2], colour[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// ClearDepthStencil clears the attached depth-stencil. The depth write mask
// is forced on for the clear and restored from the pipeline afterwards.
func (c *Context) ClearDepthStencil(ds gpu.DepthStencilView, depth float32, stencil uint8) {
	if _, ok := ds.(*depthTarget); !ok || c.ds == nil {
		return
	}
	gl.DepthMask(true)
	gl.ClearDepth(float64(depth))
	gl.ClearStencil(int32(stencil))
	gl.Clear(gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
	if s := c.pipeline.DepthStencil; s != nil {
		gl.DepthMask(s.Desc().DepthWrite)
	}
}

func (c *Context) UpdateBuffer(b gpu.Buffer, data []byte) error {
	buf, ok := b.(*buffer)
	if !ok {
		return fmt.Errorf("update buffer: foreign buffer %T", b)
	}
	if buf.released {
		return gpu.ErrReleased
	}
	if len(data) > buf.size {
		return fmt.Errorf("update buffer: %d bytes into %d", len(data), buf.size)
	}
	if len(data) == 0 {
		return nil
	}
	gl.BindBuffer(buf.target, buf.id)
	gl.BufferSubData(buf.target, 0, len(data), gl.Ptr(data))
	return checkError("update buffer")
}

// SetConstantBuffer binds b to uniform block point slot. GL shares the point
// between stages.
func (c *Context) SetConstantBuffer(stages gpu.Stage, slot int, b gpu.Buffer) {
	var id uint32
	if buf, ok := b.(*buffer); ok && buf != nil {
		id = buf.id
	}
	gl.BindBufferBase(gl.UNIFORM_BUFFER, uint32(slot), id)
}

func (c *Context) SetShaderResources(stages gpu.Stage, slot int, views ...gpu.ShaderResource) {
	for i, v := range views {
		s := slot + i
		if s >= maxSlots {
			return
		}
		if stages&gpu.StagePixel != 0 {
			bindTexture(uint32(s), v)
		}
		if stages&gpu.StageVertex != 0 {
			bindTexture(uint32(vertexUnitBase+s), v)
		}
	}
}

func bindTexture(unit uint32, v gpu.ShaderResource) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	t, ok := v.(*texture)
	if !ok || t == nil {
		gl.BindTexture(gl.TEXTURE_2D, 0)
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
		return
	}
	gl.BindTexture(t.target, t.id)
}

// SetPipeline applies the whole pipeline state. Fields left nil fall back to
// the gpu defaults.
func (c *Context) SetPipeline(p gpu.PipelineState) {
	c.pipeline = p
	if prog, ok := p.Program.(*program); ok && prog != nil {
		gl.UseProgram(prog.id)
	} else {
		gl.UseProgram(0)
	}

	blend := gpu.DefaultBlendDesc()
	if p.Blend != nil {
		blend = p.Blend.Desc()
	}
	applyBlend(blend)

	depth := gpu.DefaultDepthStencilDesc()
	if p.DepthStencil != nil {
		depth = p.DepthStencil.Desc()
	}
	applyDepth(depth)

	raster := gpu.DefaultRasterizerDesc()
	if p.Raster != nil {
		raster = p.Raster.Desc()
	}
	applyRaster(raster)
}

func applyBlend(d gpu.BlendDesc) {
	enable(gl.SAMPLE_ALPHA_TO_COVERAGE, d.AlphaToCoverage)
	enable(gl.BLEND, d.Enable)
	if d.Enable {
		gl.BlendFunc(blendFactor(d.Src), blendFactor(d.Dest))
	}
}

func applyDepth(d gpu.DepthStencilDesc) {
	enable(gl.DEPTH_TEST, d.DepthEnable)
	gl.DepthMask(d.DepthWrite)
	gl.DepthFunc(comparison(d.DepthFunc))
	enable(gl.STENCIL_TEST, d.StencilEnable)
}

func applyRaster(d gpu.RasterizerDesc) {
	if d.Fill == gpu.FillWireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
	switch d.Cull {
	case gpu.CullNone:
		gl.Disable(gl.CULL_FACE)
	case gpu.CullFront:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
	if d.FrontCounterClockwise {
		gl.FrontFace(gl.CCW)
	} else {
		gl.FrontFace(gl.CW)
	}
}

func enable(capability uint32, on bool) {
	if on {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

func blendFactor(b gpu.Blend) uint32 {
	switch b {
	case gpu.BlendZero:
		return gl.ZERO
	case gpu.BlendSrcAlpha:
		return gl.SRC_ALPHA
	case gpu.BlendInvSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gpu.BlendSrcColour:
		return gl.SRC_COLOR
	case gpu.BlendInvSrcColour:
		return gl.ONE_MINUS_SRC_COLOR
	}
	return gl.ONE
}

func comparison(c gpu.Comparison) uint32 {
	switch c {
	case gpu.CompareNever:
		return gl.NEVER
	case gpu.CompareLessEqual:
		return gl.LEQUAL
	case gpu.CompareEqual:
		return gl.EQUAL
	case gpu.CompareGreater:
		return gl.GREATER
	case gpu.CompareAlways:
		return gl.ALWAYS
	}
	return gl.LESS
}

func (c *Context) SetVertexBuffer(slot int, b gpu.Buffer, stride int) {
	if slot < 0 || slot >= len(c.streams) {
		return
	}
	buf, _ := b.(*buffer)
	c.streams[slot] = vertexStream{buf: buf, stride: stride}
}

func (c *Context) SetIndexBuffer(b gpu.Buffer) {
	c.index, _ = b.(*buffer)
	if c.index != nil {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.index.id)
	}
}

// bindAttributes points attribute i at element i of the pipeline layout.
// Per-instance elements read from stream 1.
func (c *Context) bindAttributes() {
	prog, ok := c.pipeline.Program.(*program)
	if !ok || prog == nil {
		return
	}
	elements := prog.layout.Elements
	for i, e := range elements {
		stream := c.streams[0]
		var divisor uint32
		if e.PerInstance {
			stream, divisor = c.streams[1], 1
		}
		if stream.buf == nil {
			gl.DisableVertexAttribArray(uint32(i))
			continue
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, stream.buf.id)
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), int32(e.Format.Components()), gl.FLOAT, false, int32(stream.stride), gl.PtrOffset(e.Offset))
		gl.VertexAttribDivisor(uint32(i), divisor)
	}
	for i := len(elements); i < c.enabled; i++ {
		gl.DisableVertexAttribArray(uint32(i))
	}
	c.enabled = len(elements)
}

func (c *Context) mode() uint32 {
	if c.pipeline.Topology == gpu.TriangleStrip {
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func (c *Context) Draw(vertexCount, startVertex int) {
	c.bindAttributes()
	gl.DrawArrays(c.mode(), int32(startVertex), int32(vertexCount))
}

func (c *Context) DrawIndexed(indexCount, startIndex int) {
	c.bindAttributes()
	gl.DrawElements(c.mode(), int32(indexCount), gl.UNSIGNED_INT, gl.PtrOffset(startIndex*4))
}

func (c *Context) DrawInstanced(vertexCount, instanceCount int) {
	c.bindAttributes()
	gl.DrawArraysInstanced(c.mode(), 0, int32(vertexCount), int32(instanceCount))
}

func (c *Context) DrawIndexedInstanced(indexCount, instanceCount int) {
	c.bindAttributes()
	gl.DrawElementsInstanced(c.mode(), int32(indexCount), gl.UNSIGNED_INT, nil, int32(instanceCount))
}

func (c *Context) rtView() gpu.RenderTargetView {
	rt, _ := c.RenderTargets()
	return rt
}

func (c *Context) dsView() gpu.DepthStencilView {
	_, ds := c.RenderTargets()
	return ds
}
