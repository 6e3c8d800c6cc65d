// Package gputest provides a recording implementation of the gpu interfaces.
//
// Every context call is appended to Context.Calls; draws additionally capture a
// copy of the constant buffers bound at the time of the draw so tests can
// assert what a shader would have seen.
package gputest

import (
	"fmt"

	"glade/internal/gpu"
)

// Buffer is a recorded device buffer.
type Buffer struct {
	ID       int
	Desc     gpu.BufferDesc
	Data     []byte
	Updates  int
	released bool
	dev      *Device
}

func (b *Buffer) Release() {
	if !b.released {
		b.released = true
		b.dev.record("buffer", b.ID)
	}
}

func (b *Buffer) Size() int      { return b.Desc.Size }
func (b *Buffer) Released() bool { return b.released }

// Texture is a recorded shader resource.
type Texture struct {
	ID       int
	Desc     gpu.TextureDesc
	Faces    int
	released bool
	dev      *Device
}

func (t *Texture) Release() {
	if !t.released {
		t.released = true
		t.dev.record("texture", t.ID)
	}
}

func (t *Texture) Released() bool { return t.released }

// Program is a recorded shader program.
type Program struct {
	ID       int
	VS, PS   string
	Layout   gpu.VertexLayout
	released bool
	dev      *Device
}

func (p *Program) Release() {
	if !p.released {
		p.released = true
		p.dev.record("program", p.ID)
	}
}

func (p *Program) Released() bool { return p.released }

type BlendState struct {
	ID       int
	desc     gpu.BlendDesc
	released bool
	dev      *Device
}

func (s *BlendState) Release() {
	if !s.released {
		s.released = true
		s.dev.record("state", s.ID)
	}
}

func (s *BlendState) Released() bool      { return s.released }
func (s *BlendState) Desc() gpu.BlendDesc { return s.desc }

type DepthStencilState struct {
	ID       int
	desc     gpu.DepthStencilDesc
	released bool
	dev      *Device
}

func (s *DepthStencilState) Release() {
	if !s.released {
		s.released = true
		s.dev.record("state", s.ID)
	}
}

func (s *DepthStencilState) Released() bool             { return s.released }
func (s *DepthStencilState) Desc() gpu.DepthStencilDesc { return s.desc }

type RasterizerState struct {
	ID       int
	desc     gpu.RasterizerDesc
	released bool
	dev      *Device
}

func (s *RasterizerState) Release() {
	if !s.released {
		s.released = true
		s.dev.record("state", s.ID)
	}
}

func (s *RasterizerState) Released() bool           { return s.released }
func (s *RasterizerState) Desc() gpu.RasterizerDesc { return s.desc }

// Release is one entry of Device.Releases.
type Release struct {
	Kind string // buffer, program, texture or state
	ID   int
}

// releaser is what Device tracks to report leaks.
type releaser interface {
	Released() bool
}

// Device records every resource it creates.
type Device struct {
	// Signatures maps a vertex shader path to the inputs it declares. Shaders
	// without an entry accept any layout.
	Signatures map[string][]string
	// CompileErrors maps a shader path to the log its compilation fails with.
	CompileErrors map[string]string
	// FailBuffers makes every CreateBuffer call fail.
	FailBuffers bool

	Buffers  []*Buffer
	Programs []*Program
	Textures []*Texture
	States   []releaser

	// Releases lists resources in the order they were first released.
	Releases []Release

	nextID int
}

func (d *Device) record(kind string, id int) {
	if d != nil {
		d.Releases = append(d.Releases, Release{Kind: kind, ID: id})
	}
}

func NewDevice() *Device {
	return &Device{
		Signatures:    map[string][]string{},
		CompileErrors: map[string]string{},
	}
}

func (d *Device) id() int {
	d.nextID++
	return d.nextID
}

func (d *Device) CreateBuffer(desc gpu.BufferDesc, initial []byte) (gpu.Buffer, error) {
	if d.FailBuffers {
		return nil, fmt.Errorf("gputest: buffer creation disabled")
	}
	if desc.Size <= 0 {
		return nil, fmt.Errorf("gputest: invalid %s buffer size %d", desc.Kind, desc.Size)
	}
	b := &Buffer{ID: d.id(), Desc: desc, Data: make([]byte, desc.Size), dev: d}
	copy(b.Data, initial)
	d.Buffers = append(d.Buffers, b)
	return b, nil
}

func (d *Device) CreateProgram(vs, ps gpu.ShaderSource, layout gpu.VertexLayout) (gpu.Program, error) {
	for stage, src := range map[string]gpu.ShaderSource{"vertex": vs, "pixel": ps} {
		if log, ok := d.CompileErrors[src.Path]; ok {
			return nil, &gpu.ShaderCompileError{Stage: stage, Path: src.Path, Log: log}
		}
	}
	if inputs, ok := d.Signatures[vs.Path]; ok {
		if err := gpu.CheckSignature(vs.Path, inputs, layout); err != nil {
			return nil, err
		}
	}
	p := &Program{ID: d.id(), VS: vs.Path, PS: ps.Path, Layout: layout, dev: d}
	d.Programs = append(d.Programs, p)
	return p, nil
}

func (d *Device) CreateBlendState(desc gpu.BlendDesc) (gpu.BlendState, error) {
	s := &BlendState{ID: d.id(), desc: desc, dev: d}
	d.States = append(d.States, s)
	return s, nil
}

func (d *Device) CreateDepthStencilState(desc gpu.DepthStencilDesc) (gpu.DepthStencilState, error) {
	s := &DepthStencilState{ID: d.id(), desc: desc, dev: d}
	d.States = append(d.States, s)
	return s, nil
}

func (d *Device) CreateRasterizerState(desc gpu.RasterizerDesc) (gpu.RasterizerState, error) {
	s := &RasterizerState{ID: d.id(), desc: desc, dev: d}
	d.States = append(d.States, s)
	return s, nil
}

func (d *Device) CreateTexture(desc gpu.TextureDesc, faces [][]byte) (gpu.ShaderResource, error) {
	want := 1
	if desc.Kind == gpu.TextureCube {
		want = 6
	}
	if len(faces) != want {
		return nil, fmt.Errorf("gputest: texture needs %d faces, got %d", want, len(faces))
	}
	t := &Texture{ID: d.id(), Desc: desc, Faces: len(faces), dev: d}
	d.Textures = append(d.Textures, t)
	return t, nil
}

// Live returns the number of created resources not yet released.
func (d *Device) Live() int {
	n := 0
	for _, b := range d.Buffers {
		if !b.Released() {
			n++
		}
	}
	for _, p := range d.Programs {
		if !p.Released() {
			n++
		}
	}
	for _, t := range d.Textures {
		if !t.Released() {
			n++
		}
	}
	for _, s := range d.States {
		if !s.Released() {
			n++
		}
	}
	return n
}
