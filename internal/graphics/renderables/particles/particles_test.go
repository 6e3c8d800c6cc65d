package particles_test

import (
	"encoding/binary"
	"math"
	"testing"

	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/effect"
	"glade/internal/graphics/renderables/particles"
	"glade/internal/graphics/renderer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestSeedsAreInUnitRange(t *testing.T) {
	data := particles.Seeds(rand.New(rand.NewSource(7)), 50)
	require.Len(t, data, 50*16)
	for i := 0; i < len(data); i += 4 {
		f := math.Float32frombits(binary.LittleEndian.Uint32(data[i:]))
		assert.GreaterOrEqual(t, f, float32(0))
		assert.Less(t, f, float32(1))
	}
	assert.Equal(t, data, particles.Seeds(rand.New(rand.NewSource(7)), 50))
}

func TestSystemDrawsOneInstancePerParticle(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()
	eff, err := effect.New(dev, "fire", gpu.ShaderSource{Path: "fire.vert"}, gpu.ShaderSource{Path: "fire.frag"}, gpu.ParticleLayout)
	require.NoError(t, err)

	s, err := particles.New(dev, renderer.ObjectDesc{Name: "fire", Effect: eff}, 200, 0.5, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Equal(t, 200, s.Count())
	require.NoError(t, s.Render(ctx))

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, gputest.OpDrawInstanced, draws[0].Op)
	assert.Equal(t, 4, draws[0].Count)
	assert.Equal(t, 200, draws[0].Instances)
	assert.Equal(t, gpu.TriangleStrip, draws[0].Pipeline.Topology)

	var slots []int
	for _, c := range ctx.Calls {
		if c.Op == gputest.OpSetVertexBuffer {
			slots = append(slots, c.Slot)
		}
	}
	assert.Equal(t, []int{0, 1}, slots)
}

func TestSystemNeedsInstanceLayout(t *testing.T) {
	dev := gputest.NewDevice()
	eff, err := effect.New(dev, "fire", gpu.ShaderSource{Path: "fire.vert"}, gpu.ShaderSource{Path: "fire.frag"}, gpu.ExtendedLayout)
	require.NoError(t, err)

	_, err = particles.New(dev, renderer.ObjectDesc{Name: "fire", Effect: eff}, 10, 1, rand.New(rand.NewSource(1)))
	assert.ErrorContains(t, err, "instance record")
}

func TestSystemDispose(t *testing.T) {
	dev := gputest.NewDevice()
	eff, err := effect.New(dev, "fire", gpu.ShaderSource{Path: "fire.vert"}, gpu.ShaderSource{Path: "fire.frag"}, gpu.ParticleLayout)
	require.NoError(t, err)
	s, err := particles.New(dev, renderer.ObjectDesc{Name: "fire", Effect: eff}, 3, 1, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	s.Dispose()
	assert.Equal(t, 4, dev.Live())
	assert.ErrorIs(t, s.Render(gputest.NewContext()), gpu.ErrReleased)
}
