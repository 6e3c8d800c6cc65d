package renderer

import (
	"glade/internal/cbuffer"
	"glade/internal/gpu"
	"glade/internal/graphics/effect"
	"glade/internal/graphics/material"
	"glade/internal/graphics/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// ObjectDesc is what every renderable variant is built from. Effect and
// Textures are shared and owned by the scene.
type ObjectDesc struct {
	Name     string
	Effect   *effect.Effect
	Textures []*texture.Texture
	Material material.Material
}

// Object implements the transform and per-object buffer half of Renderable.
// Variants embed it and add geometry and a Render method.
type Object struct {
	name     string
	effect   *effect.Effect
	textures []*texture.Texture
	buffer   *cbuffer.Mirror[cbuffer.Object]
}

func NewObject(dev gpu.Device, desc ObjectDesc) (*Object, error) {
	data := cbuffer.Object{World: mgl32.Ident4(), Normal: mgl32.Ident4(), Tint: mgl32.Vec4{1, 1, 1, 1}}
	desc.Material.Apply(&data)
	buf, err := cbuffer.New(dev, gpu.SlotObject, data)
	if err != nil {
		return nil, err
	}
	return &Object{
		name:     desc.Name,
		effect:   desc.Effect,
		textures: desc.Textures,
		buffer:   buf,
	}, nil
}

func (o *Object) Name() string { return o.name }

func (o *Object) Effect() *effect.Effect { return o.effect }

// SetWorldMatrix stores m and its normal matrix in the CPU mirror only.
func (o *Object) SetWorldMatrix(m mgl32.Mat4) {
	o.buffer.Data.World = m
	o.buffer.Data.Normal = m.Inv().Transpose()
}

func (o *Object) WorldMatrix() mgl32.Mat4 {
	return o.buffer.Data.World
}

// SetTint sets the colour multiplier, written to the GPU on the next Update.
func (o *Object) SetTint(c mgl32.Vec4) {
	o.buffer.Data.Tint = c
}

// SetParams sets the variant parameters, written on the next Update.
func (o *Object) SetParams(p mgl32.Vec4) {
	o.buffer.Data.Params = p
}

// Constants returns the CPU copy of the object buffer.
func (o *Object) Constants() cbuffer.Object {
	return o.buffer.Data
}

// Update copies the CPU mirror to the GPU.
func (o *Object) Update(ctx gpu.Context) error {
	return o.buffer.Sync(ctx)
}

// Bind sets the object buffer, the effect and the textures.
func (o *Object) Bind(ctx gpu.Context, topology gpu.Topology) {
	o.buffer.Bind(ctx)
	o.effect.Bind(ctx, topology)
	if len(o.textures) > 0 {
		ctx.SetShaderResources(gpu.StagePixel, 0, texture.Views(o.textures)...)
	}
}

// Dispose releases the object buffer. Effects and textures are not owned.
func (o *Object) Dispose() {
	o.buffer.Release()
}
