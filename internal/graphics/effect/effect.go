// Package effect bundles a shader program, its vertex layout and the fixed
// function state an object is drawn with.
package effect

import (
	"fmt"

	"glade/internal/gpu"
	"glade/internal/logging"
)

// Errors returned by New.
type (
	ShaderCompileError  = gpu.ShaderCompileError
	LayoutMismatchError = gpu.LayoutMismatchError
)

// Effect is shared by every object drawn with it and owned by the scene.
type Effect struct {
	name    string
	dev     gpu.Device
	program gpu.Program
	layout  gpu.VertexLayout

	blend  gpu.BlendState
	depth  gpu.DepthStencilState
	raster gpu.RasterizerState
}

// New compiles the shader pair against layout and creates default state.
// Compile failures are *ShaderCompileError and shader inputs missing from the
// layout are *LayoutMismatchError.
func New(dev gpu.Device, name string, vs, ps gpu.ShaderSource, layout gpu.VertexLayout) (*Effect, error) {
	program, err := dev.CreateProgram(vs, ps, layout)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", name, err)
	}
	e := &Effect{name: name, dev: dev, program: program, layout: layout}

	if err := e.SetBlendState(gpu.DefaultBlendDesc()); err != nil {
		e.Release()
		return nil, err
	}
	if err := e.SetDepthStencilState(gpu.DefaultDepthStencilDesc()); err != nil {
		e.Release()
		return nil, err
	}
	if err := e.SetRasterizerState(gpu.DefaultRasterizerDesc()); err != nil {
		e.Release()
		return nil, err
	}
	logging.Debug("effect %s: %s + %s (%s)", name, vs.Path, ps.Path, layout.Name)
	return e, nil
}

func (e *Effect) Name() string { return e.name }

func (e *Effect) Layout() gpu.VertexLayout { return e.layout }

// Pipeline returns the complete state a draw with this effect needs.
func (e *Effect) Pipeline(topology gpu.Topology) gpu.PipelineState {
	return gpu.PipelineState{
		Program:      e.program,
		Layout:       e.layout,
		Blend:        e.blend,
		DepthStencil: e.depth,
		Raster:       e.raster,
		Topology:     topology,
	}
}

// Bind sets the effect's pipeline state in one call.
func (e *Effect) Bind(ctx gpu.Context, topology gpu.Topology) {
	ctx.SetPipeline(e.Pipeline(topology))
}

func (e *Effect) BlendDesc() gpu.BlendDesc {
	if e.blend == nil {
		return gpu.DefaultBlendDesc()
	}
	return e.blend.Desc()
}

// SetBlendState releases the current blend state and replaces it.
func (e *Effect) SetBlendState(desc gpu.BlendDesc) error {
	if e.blend != nil {
		e.blend.Release()
		e.blend = nil
	}
	s, err := e.dev.CreateBlendState(desc)
	if err != nil {
		return fmt.Errorf("effect %s: blend state: %w", e.name, err)
	}
	e.blend = s
	return nil
}

func (e *Effect) DepthStencilDesc() gpu.DepthStencilDesc {
	if e.depth == nil {
		return gpu.DefaultDepthStencilDesc()
	}
	return e.depth.Desc()
}

// SetDepthStencilState releases the current depth-stencil state and replaces it.
func (e *Effect) SetDepthStencilState(desc gpu.DepthStencilDesc) error {
	if e.depth != nil {
		e.depth.Release()
		e.depth = nil
	}
	s, err := e.dev.CreateDepthStencilState(desc)
	if err != nil {
		return fmt.Errorf("effect %s: depth-stencil state: %w", e.name, err)
	}
	e.depth = s
	return nil
}

func (e *Effect) RasterizerDesc() gpu.RasterizerDesc {
	if e.raster == nil {
		return gpu.DefaultRasterizerDesc()
	}
	return e.raster.Desc()
}

// SetRasterizerState releases the current rasterizer state and replaces it.
func (e *Effect) SetRasterizerState(desc gpu.RasterizerDesc) error {
	if e.raster != nil {
		e.raster.Release()
		e.raster = nil
	}
	s, err := e.dev.CreateRasterizerState(desc)
	if err != nil {
		return fmt.Errorf("effect %s: rasterizer state: %w", e.name, err)
	}
	e.raster = s
	return nil
}

// Release frees the program and all state objects.
func (e *Effect) Release() {
	for _, r := range []gpu.Resource{e.raster, e.depth, e.blend, e.program} {
		if r != nil {
			r.Release()
		}
	}
	e.raster, e.depth, e.blend, e.program = nil, nil, nil, nil
}
