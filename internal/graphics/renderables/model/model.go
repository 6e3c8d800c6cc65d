// Package model draws a static indexed mesh loaded from a model file.
package model

import (
	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"
)

type Model struct {
	*renderer.Object
	geometry *mesh.Buffers
}

func New(dev gpu.Device, desc renderer.ObjectDesc, m *mesh.Mesh) (*Model, error) {
	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	geometry, err := mesh.Upload(dev, m, desc.Effect.Layout())
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	return &Model{Object: obj, geometry: geometry}, nil
}

func (m *Model) Render(ctx gpu.Context) error {
	defer profiling.Track("model.Render")()
	if m.geometry.Vertex == nil {
		return gpu.ErrReleased
	}
	m.Bind(ctx, gpu.TriangleList)
	m.geometry.Bind(ctx)
	ctx.DrawIndexed(m.geometry.IndexCount, 0)
	return nil
}

func (m *Model) Dispose() {
	m.geometry.Release()
	m.Object.Dispose()
}
