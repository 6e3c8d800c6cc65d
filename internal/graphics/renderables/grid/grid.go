// Package grid draws a flat grid of unit cells with one instanced quad per
// cell. The vertex shader offsets each instance by its cell index.
package grid

import (
	"fmt"

	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

type Grid struct {
	*renderer.Object
	width, depth int
	cell         *mesh.Buffers
}

func New(dev gpu.Device, desc renderer.ObjectDesc, width, depth int) (*Grid, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("grid %s: invalid size %dx%d", desc.Name, width, depth)
	}
	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	cell, err := mesh.Upload(dev, mesh.Quad(), desc.Effect.Layout())
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	obj.SetParams(mgl32.Vec4{float32(width), float32(depth), 0, 0})
	return &Grid{Object: obj, width: width, depth: depth, cell: cell}, nil
}

// Cells returns the number of instances drawn.
func (g *Grid) Cells() int { return g.width * g.depth }

func (g *Grid) Render(ctx gpu.Context) error {
	defer profiling.Track("grid.Render")()
	if g.cell.Vertex == nil {
		return gpu.ErrReleased
	}
	g.Bind(ctx, gpu.TriangleList)
	g.cell.Bind(ctx)
	ctx.DrawIndexedInstanced(g.cell.IndexCount, g.Cells())
	return nil
}

func (g *Grid) Dispose() {
	g.cell.Release()
	g.Object.Dispose()
}
