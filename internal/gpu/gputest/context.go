package gputest

import (
	"errors"

	"glade/internal/gpu"
)

// Op names recorded in Call.Op.
const (
	OpSetRenderTargets     = "SetRenderTargets"
	OpSetViewport          = "SetViewport"
	OpClearRenderTarget    = "ClearRenderTarget"
	OpClearDepthStencil    = "ClearDepthStencil"
	OpUpdateBuffer         = "UpdateBuffer"
	OpSetConstantBuffer    = "SetConstantBuffer"
	OpSetShaderResources   = "SetShaderResources"
	OpSetPipeline          = "SetPipeline"
	OpSetVertexBuffer      = "SetVertexBuffer"
	OpSetIndexBuffer       = "SetIndexBuffer"
	OpDraw                 = "Draw"
	OpDrawIndexed          = "DrawIndexed"
	OpDrawInstanced        = "DrawInstanced"
	OpDrawIndexedInstanced = "DrawIndexedInstanced"
)

// Call is one recorded context command.
type Call struct {
	Op        string
	Stages    gpu.Stage
	Slot      int
	Buffer    *Buffer
	Views     []gpu.ShaderResource
	RT        gpu.RenderTargetView
	DS        gpu.DepthStencilView
	Viewport  gpu.Viewport
	Pipeline  gpu.PipelineState
	Count     int
	Instances int

	// Constants holds, for draw calls, a copy of the vertex-stage constant
	// buffer contents bound at each slot.
	Constants map[int][]byte
	// Buffers holds, for draw calls, the vertex-stage constant buffer bound at
	// each slot.
	Buffers map[int]*Buffer
}

// IsDraw reports whether the call issues geometry.
func (c Call) IsDraw() bool {
	switch c.Op {
	case OpDraw, OpDrawIndexed, OpDrawInstanced, OpDrawIndexedInstanced:
		return true
	}
	return false
}

// Context records commands and tracks the state a real context would hold.
type Context struct {
	Calls []Call
	// UpdateErr, when set, is returned by UpdateBuffer.
	UpdateErr error

	rt       gpu.RenderTargetView
	ds       gpu.DepthStencilView
	vsCB     map[int]*Buffer
	psCB     map[int]*Buffer
	vsViews  map[int]gpu.ShaderResource
	pipeline gpu.PipelineState
}

func NewContext() *Context {
	return &Context{
		vsCB:    map[int]*Buffer{},
		psCB:    map[int]*Buffer{},
		vsViews: map[int]gpu.ShaderResource{},
	}
}

func (c *Context) record(call Call) {
	c.Calls = append(c.Calls, call)
}

func (c *Context) SetRenderTargets(rt gpu.RenderTargetView, ds gpu.DepthStencilView) {
	c.rt, c.ds = rt, ds
	c.record(Call{Op: OpSetRenderTargets, RT: rt, DS: ds})
}

func (c *Context) RenderTargets() (gpu.RenderTargetView, gpu.DepthStencilView) {
	return c.rt, c.ds
}

func (c *Context) SetViewport(vp gpu.Viewport) {
	c.record(Call{Op: OpSetViewport, Viewport: vp})
}

func (c *Context) ClearRenderTarget(rt gpu.RenderTargetView, colour [4]float32) {
	c.record(Call{Op: OpClearRenderTarget, RT: rt})
}

func (c *Context) ClearDepthStencil(ds gpu.DepthStencilView, depth float32, stencil uint8) {
	c.record(Call{Op: OpClearDepthStencil, DS: ds})
}

func (c *Context) UpdateBuffer(b gpu.Buffer, data []byte) error {
	if c.UpdateErr != nil {
		return c.UpdateErr
	}
	buf, ok := b.(*Buffer)
	if !ok {
		return errors.New("gputest: foreign buffer")
	}
	if buf.Released() {
		return gpu.ErrReleased
	}
	if len(data) > len(buf.Data) {
		return errors.New("gputest: update larger than buffer")
	}
	copy(buf.Data, data)
	buf.Updates++
	c.record(Call{Op: OpUpdateBuffer, Buffer: buf, Count: len(data)})
	return nil
}

func (c *Context) SetConstantBuffer(stages gpu.Stage, slot int, b gpu.Buffer) {
	buf, _ := b.(*Buffer)
	if stages&gpu.StageVertex != 0 {
		c.vsCB[slot] = buf
	}
	if stages&gpu.StagePixel != 0 {
		c.psCB[slot] = buf
	}
	c.record(Call{Op: OpSetConstantBuffer, Stages: stages, Slot: slot, Buffer: buf})
}

func (c *Context) SetShaderResources(stages gpu.Stage, slot int, views ...gpu.ShaderResource) {
	if stages&gpu.StageVertex != 0 {
		for i, v := range views {
			c.vsViews[slot+i] = v
		}
	}
	c.record(Call{Op: OpSetShaderResources, Stages: stages, Slot: slot, Views: views})
}

func (c *Context) SetPipeline(p gpu.PipelineState) {
	c.pipeline = p
	c.record(Call{Op: OpSetPipeline, Pipeline: p})
}

func (c *Context) SetVertexBuffer(slot int, b gpu.Buffer, stride int) {
	buf, _ := b.(*Buffer)
	c.record(Call{Op: OpSetVertexBuffer, Slot: slot, Buffer: buf, Count: stride})
}

func (c *Context) SetIndexBuffer(b gpu.Buffer) {
	buf, _ := b.(*Buffer)
	c.record(Call{Op: OpSetIndexBuffer, Buffer: buf})
}

func (c *Context) draw(op string, count, instances int) {
	call := Call{
		Op:        op,
		Count:     count,
		Instances: instances,
		RT:        c.rt,
		DS:        c.ds,
		Pipeline:  c.pipeline,
		Constants: map[int][]byte{},
		Buffers:   map[int]*Buffer{},
	}
	for slot, b := range c.vsCB {
		if b == nil {
			continue
		}
		call.Buffers[slot] = b
		call.Constants[slot] = append([]byte(nil), b.Data...)
	}
	c.record(call)
}

func (c *Context) Draw(vertexCount, startVertex int) {
	c.draw(OpDraw, vertexCount, 1)
}

func (c *Context) DrawIndexed(indexCount, startIndex int) {
	c.draw(OpDrawIndexed, indexCount, 1)
}

func (c *Context) DrawInstanced(vertexCount, instanceCount int) {
	c.draw(OpDrawInstanced, vertexCount, instanceCount)
}

func (c *Context) DrawIndexedInstanced(indexCount, instanceCount int) {
	c.draw(OpDrawIndexedInstanced, indexCount, instanceCount)
}

// Draws returns the recorded draw calls.
func (c *Context) Draws() []Call {
	var out []Call
	for _, call := range c.Calls {
		if call.IsDraw() {
			out = append(out, call)
		}
	}
	return out
}

// Count returns how many calls with the given op were recorded.
func (c *Context) Count(op string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Op == op {
			n++
		}
	}
	return n
}

// VertexResource returns the shader resource currently bound at a vertex slot.
func (c *Context) VertexResource(slot int) gpu.ShaderResource {
	return c.vsViews[slot]
}

// Reset drops the recorded calls but keeps bound state.
func (c *Context) Reset() {
	c.Calls = nil
}
