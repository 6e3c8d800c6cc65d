package grid_test

import (
	"testing"

	"glade/internal/cbuffer"
	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/effect"
	"glade/internal/graphics/renderables/grid"
	"glade/internal/graphics/renderer"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGridDrawsOneInstancePerCell(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()
	eff, err := effect.New(dev, "ocean", gpu.ShaderSource{Path: "ocean.vert"}, gpu.ShaderSource{Path: "ocean.frag"}, gpu.ExtendedLayout)
	require.NoError(t, err)

	g, err := grid.New(dev, renderer.ObjectDesc{Name: "water", Effect: eff}, 32, 30)
	require.NoError(t, err)
	require.NoError(t, g.Update(ctx))
	require.NoError(t, g.Render(ctx))

	draws := ctx.Draws()
	require.Len(t, draws, 1)
	assert.Equal(t, gputest.OpDrawIndexedInstanced, draws[0].Op)
	assert.Equal(t, 6, draws[0].Count)
	assert.Equal(t, 32*30, draws[0].Instances)

	got, err := cbuffer.Decode[cbuffer.Object](draws[0].Constants[gpu.SlotObject])
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{32, 30, 0, 0}, got.Params)
}

func TestGridRejectsEmptySize(t *testing.T) {
	dev := gputest.NewDevice()
	eff, err := effect.New(dev, "ocean", gpu.ShaderSource{Path: "ocean.vert"}, gpu.ShaderSource{Path: "ocean.frag"}, gpu.ExtendedLayout)
	require.NoError(t, err)
	_, err = grid.New(dev, renderer.ObjectDesc{Name: "water", Effect: eff}, 0, 4)
	assert.Error(t, err)
}
