package effect_test

import (
	"errors"
	"testing"

	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/effect"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	vs = gpu.ShaderSource{Path: "lit.vert"}
	ps = gpu.ShaderSource{Path: "lit.frag"}
)

func TestNewCreatesDefaultState(t *testing.T) {
	dev := gputest.NewDevice()
	e, err := effect.New(dev, "lit", vs, ps, gpu.ExtendedLayout)
	require.NoError(t, err)

	assert.Equal(t, gpu.DefaultBlendDesc(), e.BlendDesc())
	assert.Equal(t, gpu.DefaultDepthStencilDesc(), e.DepthStencilDesc())
	assert.Equal(t, gpu.DefaultRasterizerDesc(), e.RasterizerDesc())
	assert.Equal(t, 4, dev.Live())

	e.Release()
	assert.Zero(t, dev.Live())
}

func TestNewReportsShaderCompileError(t *testing.T) {
	dev := gputest.NewDevice()
	dev.CompileErrors["lit.frag"] = "0:12: 'colour' undeclared"

	_, err := effect.New(dev, "lit", vs, ps, gpu.ExtendedLayout)
	var compileErr *effect.ShaderCompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, "lit.frag", compileErr.Path)
	assert.Zero(t, dev.Live())
}

func TestNewReportsLayoutMismatch(t *testing.T) {
	dev := gputest.NewDevice()
	dev.Signatures["lit.vert"] = []string{"position", "normal", "texCoord"}

	_, err := effect.New(dev, "lit", vs, ps, gpu.BasicLayout)
	var mismatch *effect.LayoutMismatchError
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, []string{"normal", "texCoord"}, mismatch.Missing)
	assert.Equal(t, "basic", mismatch.Layout)
}

func TestSetStateReleasesPrevious(t *testing.T) {
	dev := gputest.NewDevice()
	e, err := effect.New(dev, "fire", vs, ps, gpu.ParticleLayout)
	require.NoError(t, err)
	old := dev.States[0].(*gputest.BlendState)

	desc := e.BlendDesc()
	desc.Enable = true
	desc.Src, desc.Dest = gpu.BlendSrcAlpha, gpu.BlendInvSrcAlpha
	require.NoError(t, e.SetBlendState(desc))

	assert.True(t, old.Released())
	assert.Equal(t, desc, e.BlendDesc())
	assert.Equal(t, 4, dev.Live())
}

func TestCustomisePresets(t *testing.T) {
	tests := []struct {
		name                 string
		blend, depth, raster string
		check                func(t *testing.T, e *effect.Effect)
	}{
		{
			name: "fire", blend: "alpha", depth: "read-only",
			check: func(t *testing.T, e *effect.Effect) {
				assert.True(t, e.BlendDesc().Enable)
				assert.Equal(t, gpu.BlendSrcAlpha, e.BlendDesc().Src)
				assert.Equal(t, gpu.BlendInvSrcAlpha, e.BlendDesc().Dest)
				assert.False(t, e.DepthStencilDesc().DepthWrite)
				assert.True(t, e.DepthStencilDesc().DepthEnable)
			},
		},
		{
			name: "flare", blend: "additive",
			check: func(t *testing.T, e *effect.Effect) {
				assert.Equal(t, gpu.BlendOne, e.BlendDesc().Src)
				assert.Equal(t, gpu.BlendOne, e.BlendDesc().Dest)
				assert.False(t, e.BlendDesc().AlphaToCoverage)
			},
		},
		{
			name: "grass", blend: "alpha-to-coverage",
			check: func(t *testing.T, e *effect.Effect) {
				assert.True(t, e.BlendDesc().AlphaToCoverage)
				assert.False(t, e.BlendDesc().Enable)
			},
		},
		{
			name: "sky", depth: "less-equal", raster: "no-cull",
			check: func(t *testing.T, e *effect.Effect) {
				assert.Equal(t, gpu.CompareLessEqual, e.DepthStencilDesc().DepthFunc)
				assert.Equal(t, gpu.CullNone, e.RasterizerDesc().Cull)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := gputest.NewDevice()
			e, err := effect.New(dev, tt.name, vs, ps, gpu.ExtendedLayout)
			require.NoError(t, err)
			require.NoError(t, e.Customise(tt.blend, tt.depth, tt.raster))
			tt.check(t, e)
			assert.Equal(t, 4, dev.Live())
		})
	}
}

func TestCustomiseRejectsUnknownPreset(t *testing.T) {
	e, err := effect.New(gputest.NewDevice(), "x", vs, ps, gpu.ExtendedLayout)
	require.NoError(t, err)
	assert.Error(t, e.Customise("multiply", "", ""))
	assert.Error(t, e.Customise("", "greater", ""))
	assert.Error(t, e.Customise("", "", "points"))
}

func TestBindSetsWholePipeline(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()
	e, err := effect.New(dev, "flare", vs, ps, gpu.FlareLayout)
	require.NoError(t, err)

	e.Bind(ctx, gpu.TriangleStrip)
	require.Len(t, ctx.Calls, 1)
	p := ctx.Calls[0].Pipeline
	assert.Equal(t, gpu.TriangleStrip, p.Topology)
	assert.Equal(t, "flare", p.Layout.Name)
	assert.NotNil(t, p.Program)
	assert.NotNil(t, p.Blend)
	assert.NotNil(t, p.DepthStencil)
	assert.NotNil(t, p.Raster)
}
