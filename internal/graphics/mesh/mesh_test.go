package mesh_test

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/mesh"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestBoxFacesPointOutward(t *testing.T) {
	m := mesh.Box()
	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)

	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, n.Dot(a.Normal), float32(0), "triangle %d winds inward", i/3)
		assert.Greater(t, a.Position.Dot(a.Normal), float32(0))
	}
}

func TestPackFollowsLayout(t *testing.T) {
	m := &mesh.Mesh{Vertices: []mesh.Vertex{{
		Position: mgl32.Vec3{1, 2, 3},
		Normal:   mgl32.Vec3{0, 1, 0},
		Colour:   mgl32.Vec4{0.5, 0.25, 0.125, 1},
		TexCoord: mgl32.Vec2{0.75, 0.5},
	}}}

	ext, err := m.Pack(gpu.ExtendedLayout)
	require.NoError(t, err)
	require.Len(t, ext, 48)
	assert.Equal(t, float32(3), float(ext, 8))
	assert.Equal(t, float32(1), float(ext, 16))
	assert.Equal(t, float32(0.125), float(ext, 32))
	assert.Equal(t, float32(0.5), float(ext, 44))

	basic, err := m.Pack(gpu.BasicLayout)
	require.NoError(t, err)
	require.Len(t, basic, 28)
	assert.Equal(t, float32(0.5), float(basic, 12))

	flare, err := m.Pack(gpu.FlareLayout)
	require.NoError(t, err)
	require.Len(t, flare, 8)
	assert.Equal(t, float32(2), float(flare, 4))
}

func TestPackRejectsUnknownElements(t *testing.T) {
	m := mesh.Quad()
	_, err := m.Pack(gpu.VertexLayout{Name: "odd", Elements: []gpu.VertexElement{{Name: "tangent", Format: gpu.Float3}}})
	assert.ErrorContains(t, err, "tangent")
}

func TestHeightfieldUsesHeights(t *testing.T) {
	m := mesh.Heightfield(4, 3, func(x, z int) float32 { return float32(x + 10*z) })
	require.Len(t, m.Vertices, 5*4)
	require.Len(t, m.Indices, 6*4*3)

	v := m.Vertices[2*5+3]
	assert.Equal(t, mgl32.Vec3{3, 23, 2}, v.Position)
	assert.InDelta(t, 1.0, v.Normal.Len(), 1e-5)
}

func TestUploadCreatesBuffers(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()

	b, err := mesh.Upload(dev, mesh.Box(), gpu.ExtendedLayout)
	require.NoError(t, err)
	assert.Equal(t, 36, b.IndexCount)
	assert.Equal(t, 48, b.Stride)

	b.Bind(ctx)
	assert.Equal(t, 1, ctx.Count(gputest.OpSetVertexBuffer))
	assert.Equal(t, 1, ctx.Count(gputest.OpSetIndexBuffer))

	b.Release()
	assert.Zero(t, dev.Live())
}

func TestUploadBillboardIsNotIndexed(t *testing.T) {
	dev := gputest.NewDevice()
	b, err := mesh.Upload(dev, mesh.Billboard(), gpu.FlareLayout)
	require.NoError(t, err)
	assert.Nil(t, b.Index)
	assert.Equal(t, 4, b.VertexCount)
}

func TestParseOBJ(t *testing.T) {
	src := `# quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
f 1/1 2/2 3/3 4/4
`
	m, err := mesh.ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	assert.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Z(), 1e-6)
	}
	assert.Equal(t, mgl32.Vec2{0, 1}, m.Vertices[0].TexCoord)
}

func TestParseOBJNegativeIndicesAndNormals(t *testing.T) {
	src := `v 0 0 0
v 1 0 0
v 0 0 -1
vn 0 1 0
f -3//1 -2//1 -1//1
`
	m, err := mesh.ParseOBJ(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, m.Vertices, 3)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, m.Vertices[2].Normal)
}

func TestParseOBJErrors(t *testing.T) {
	tests := map[string]string{
		"no faces":     "v 0 0 0\n",
		"bad index":    "v 0 0 0\nf 1 2 3\n",
		"short vertex": "v 0 0\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := mesh.ParseOBJ(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}
