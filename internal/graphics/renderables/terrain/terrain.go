// Package terrain draws a heightfield built from a heightmap image and
// answers height queries against the same data on the CPU.
package terrain

import (
	"fmt"
	"image"

	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

// Terrain spans [0, width] x [0, depth] in local X and Z with local heights in
// [0, 1]. The world matrix scales and places it.
type Terrain struct {
	*renderer.Object
	width, depth int
	heights      Heightmap
	geometry     *mesh.Buffers
}

func New(dev gpu.Device, desc renderer.ObjectDesc, heightmap *image.RGBA, width, depth int) (*Terrain, error) {
	if width <= 0 || depth <= 0 {
		return nil, fmt.Errorf("terrain %s: invalid size %dx%d", desc.Name, width, depth)
	}
	if heightmap == nil {
		return nil, fmt.Errorf("terrain %s: missing heightmap", desc.Name)
	}
	heights := NewHeightmap(heightmap)
	m := mesh.Heightfield(width, depth, func(x, z int) float32 {
		return heights.Sample(float32(x)/float32(width), float32(z)/float32(depth))
	})

	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	geometry, err := mesh.Upload(dev, m, desc.Effect.Layout())
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	obj.SetParams(mgl32.Vec4{float32(width), float32(depth), 0, 0})
	return &Terrain{Object: obj, width: width, depth: depth, heights: heights, geometry: geometry}, nil
}

// CalculateYValueWorld returns the world-space height of the terrain surface
// below world position (x, z).
func (t *Terrain) CalculateYValueWorld(x, z float32) float32 {
	world := t.WorldMatrix()
	local := world.Inv().Mul4x1(mgl32.Vec4{x, 0, z, 1})
	// Keep the local x and z and replace the height with the sampled surface.
	lx, lz := local.X(), local.Z()
	h := t.heights.Sample(lx/float32(t.width), lz/float32(t.depth))
	return world.Mul4x1(mgl32.Vec4{lx, h, lz, 1}).Y()
}

func (t *Terrain) Render(ctx gpu.Context) error {
	defer profiling.Track("terrain.Render")()
	if t.geometry.Vertex == nil {
		return gpu.ErrReleased
	}
	t.Bind(ctx, gpu.TriangleList)
	t.geometry.Bind(ctx)
	ctx.DrawIndexed(t.geometry.IndexCount, 0)
	return nil
}

func (t *Terrain) Dispose() {
	t.geometry.Release()
	t.Object.Dispose()
}
