// Package flare draws a lens-flare billboard. The flare shader reads the depth
// buffer at the flare's source to fade it when occluded, so flares are drawn
// with the depth-stencil view detached.
package flare

import (
	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

type Flare struct {
	*renderer.Object
	quad *mesh.Buffers
}

// New creates a flare of the given size and colour. The colour alpha orders
// the flare along the line from its source through the screen centre.
func New(dev gpu.Device, desc renderer.ObjectDesc, size float32, colour mgl32.Vec4) (*Flare, error) {
	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	quad, err := mesh.Upload(dev, mesh.Billboard(), desc.Effect.Layout())
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	obj.SetTint(colour)
	obj.SetParams(mgl32.Vec4{size, 0, 0, 0})
	return &Flare{Object: obj, quad: quad}, nil
}

// RandomColour returns a light colour with each channel in [0.5, 1) and the
// given alpha.
func RandomColour(rng *rand.Rand, alpha float32) mgl32.Vec4 {
	return mgl32.Vec4{
		rng.Float32()*0.5 + 0.5,
		rng.Float32()*0.5 + 0.5,
		rng.Float32()*0.5 + 0.5,
		alpha,
	}
}

func (f *Flare) Render(ctx gpu.Context) error {
	defer profiling.Track("flare.Render")()
	if f.quad.Vertex == nil {
		return gpu.ErrReleased
	}
	f.Bind(ctx, gpu.TriangleStrip)
	f.quad.Bind(ctx)
	ctx.Draw(f.quad.VertexCount, 0)
	return nil
}

func (f *Flare) Dispose() {
	f.quad.Release()
	f.Object.Dispose()
}
