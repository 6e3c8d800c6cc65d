// Package assets loads shader sources, images and meshes from a file system.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"

	"glade/internal/gpu"
	"glade/internal/graphics/mesh"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Loader resolves slash-separated paths relative to its root.
type Loader struct {
	fsys fs.FS
}

func New(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// Dir returns a Loader rooted at a directory on disk.
func Dir(path string) *Loader {
	return New(os.DirFS(path))
}

// Shader reads one shader stage.
func (l *Loader) Shader(path string) (gpu.ShaderSource, error) {
	code, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return gpu.ShaderSource{}, fmt.Errorf("could not read shader file: %w", err)
	}
	return gpu.ShaderSource{Path: path, Code: code}, nil
}

// Image decodes a png, jpeg, bmp or tiff file into RGBA.
func (l *Loader) Image(path string) (*image.RGBA, error) {
	file, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba, nil
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba, nil
}

// Mesh parses a Wavefront OBJ file.
func (l *Loader) Mesh(path string) (*mesh.Mesh, error) {
	file, err := l.fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	m, err := mesh.ParseOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse mesh %s: %w", path, err)
	}
	return m, nil
}
