// Package particles draws a particle system as instanced billboards. Each
// instance carries a random seed; motion is evaluated in the vertex shader
// from the scene time.
package particles

import (
	"encoding/binary"
	"fmt"
	"math"

	"glade/internal/gpu"
	"glade/internal/graphics/mesh"
	"glade/internal/graphics/renderer"
	"glade/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/rand"
)

type System struct {
	*renderer.Object
	count   int
	corners *mesh.Buffers
	seeds   gpu.Buffer
}

// Seeds returns count random seeds packed for the per-instance "seed"
// element: phase, lateral x, lateral z and speed, all in [0, 1).
func Seeds(rng *rand.Rand, count int) []byte {
	out := make([]byte, 16*count)
	for i := range 4 * count {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(rng.Float32()))
	}
	return out
}

func New(dev gpu.Device, desc renderer.ObjectDesc, count int, size float32, rng *rand.Rand) (*System, error) {
	if count <= 0 {
		return nil, fmt.Errorf("particles %s: count must be positive", desc.Name)
	}
	layout := desc.Effect.Layout()
	if stride := layout.Stride(true); stride != 16 {
		return nil, fmt.Errorf("particles %s: layout %q has a %d byte instance record, want 16", desc.Name, layout.Name, stride)
	}

	obj, err := renderer.NewObject(dev, desc)
	if err != nil {
		return nil, err
	}
	corners, err := mesh.Upload(dev, mesh.Billboard(), layout)
	if err != nil {
		obj.Dispose()
		return nil, err
	}
	seedData := Seeds(rng, count)
	seeds, err := dev.CreateBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Size: len(seedData)}, seedData)
	if err != nil {
		corners.Release()
		obj.Dispose()
		return nil, fmt.Errorf("particles %s: seed buffer: %w", desc.Name, err)
	}
	obj.SetParams(mgl32.Vec4{size, float32(count), 0, 0})
	return &System{Object: obj, count: count, corners: corners, seeds: seeds}, nil
}

func (s *System) Count() int { return s.count }

func (s *System) Render(ctx gpu.Context) error {
	defer profiling.Track("particles.Render")()
	if s.seeds == nil {
		return gpu.ErrReleased
	}
	s.Bind(ctx, gpu.TriangleStrip)
	s.corners.Bind(ctx)
	ctx.SetVertexBuffer(1, s.seeds, 16)
	ctx.DrawInstanced(s.corners.VertexCount, s.count)
	return nil
}

func (s *System) Dispose() {
	if s.seeds != nil {
		s.seeds.Release()
		s.seeds = nil
	}
	s.corners.Release()
	s.Object.Dispose()
}
