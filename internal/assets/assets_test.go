package assets_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"glade/internal/assets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func encode(t *testing.T, enc func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(1, 0, color.Gray{Y: 200})
	var buf bytes.Buffer
	require.NoError(t, enc(&buf, img))
	return buf.Bytes()
}

func TestImageDecodesFormats(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png": {Data: encode(t, func(b *bytes.Buffer, i image.Image) error { return png.Encode(b, i) })},
		"a.bmp": {Data: encode(t, func(b *bytes.Buffer, i image.Image) error { return bmp.Encode(b, i) })},
	}
	l := assets.New(fsys)

	for _, name := range []string{"a.png", "a.bmp"} {
		img, err := l.Image(name)
		require.NoError(t, err, name)
		assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
		assert.Equal(t, uint8(200), img.RGBAAt(1, 0).R, name)
		assert.Equal(t, uint8(255), img.RGBAAt(1, 0).A, name)
	}
}

func TestShaderAndMesh(t *testing.T) {
	fsys := fstest.MapFS{
		"shaders/x.vert": {Data: []byte("#version 410 core\n")},
		"models/tri.obj": {Data: []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")},
	}
	l := assets.New(fsys)

	src, err := l.Shader("shaders/x.vert")
	require.NoError(t, err)
	assert.Equal(t, "shaders/x.vert", src.Path)
	assert.Contains(t, string(src.Code), "410")

	m, err := l.Mesh("models/tri.obj")
	require.NoError(t, err)
	assert.Len(t, m.Indices, 3)
}

func TestMissingFiles(t *testing.T) {
	l := assets.New(fstest.MapFS{"bad.png": {Data: []byte("nope")}})

	_, err := l.Shader("missing.vert")
	assert.Error(t, err)
	_, err = l.Image("missing.png")
	assert.Error(t, err)
	_, err = l.Image("bad.png")
	assert.Error(t, err)
	_, err = l.Mesh("missing.obj")
	assert.Error(t, err)
}
