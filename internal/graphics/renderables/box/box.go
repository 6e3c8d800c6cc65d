// Package box draws a cube, typically scaled up around the camera as a skybox.
package box

import (
	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"
)

type Box struct {
	*renderer.Object
	geometry *mesh.Buffers
}

func New(dev gpu.Device, desc renderer.ObjectDesc) (*Box, error) {
	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	geometry, err := mesh.Upload(dev, mesh.Box(), desc.Effect.Layout())
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	return &Box{Object: obj, geometry: geometry}, nil
}

func (b *Box) Render(ctx gpu.Context) error {
	defer profiling.Track("box.Render")()
	if b.geometry.Vertex == nil {
		return gpu.ErrReleased
	}
	b.Bind(ctx, gpu.TriangleList)
	b.geometry.Bind(ctx)
	ctx.DrawIndexed(b.geometry.IndexCount, 0)
	return nil
}

func (b *Box) Dispose() {
	b.geometry.Release()
	b.Object.Dispose()
}
