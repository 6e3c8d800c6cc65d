// Package texture uploads decoded images as shader resources.
package texture

import (
	"fmt"
	"image"

	"glade/internal/assets"
	"glade/internal/gpu"
	"glade/internal/logging"
)

// Texture is an immutable shader resource owned by the scene.
type Texture struct {
	name  string
	path  string
	kind  gpu.TextureKind
	view  gpu.ShaderResource
	image *image.RGBA
}

// Load decodes a 2D image and uploads it. When keep is set the decoded pixels
// stay available through Image for CPU sampling.
func Load(dev gpu.Device, l *assets.Loader, name, path string, keep bool) (*Texture, error) {
	img, err := l.Image(path)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	b := img.Bounds()
	view, err := dev.CreateTexture(gpu.TextureDesc{Kind: gpu.Texture2D, Width: b.Dx(), Height: b.Dy()}, [][]byte{img.Pix})
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	t := &Texture{name: name, path: path, kind: gpu.Texture2D, view: view}
	if keep {
		t.image = img
	}
	logging.Debug("texture %s: %s %dx%d", name, path, b.Dx(), b.Dy())
	return t, nil
}

// LoadCube uploads six square faces of equal size as a cube map.
func LoadCube(dev gpu.Device, l *assets.Loader, name string, faces []string) (*Texture, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("texture %s: cube map needs 6 faces, got %d", name, len(faces))
	}
	data := make([][]byte, 0, 6)
	var size image.Point
	for i, path := range faces {
		img, err := l.Image(path)
		if err != nil {
			return nil, fmt.Errorf("texture %s: %w", name, err)
		}
		s := img.Bounds().Size()
		if s.X != s.Y {
			return nil, fmt.Errorf("texture %s: face %s is not square (%dx%d)", name, path, s.X, s.Y)
		}
		if i > 0 && s != size {
			return nil, fmt.Errorf("texture %s: face %s is %v, want %v", name, path, s, size)
		}
		size = s
		data = append(data, img.Pix)
	}
	view, err := dev.CreateTexture(gpu.TextureDesc{Kind: gpu.TextureCube, Width: size.X, Height: size.Y}, data)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", name, err)
	}
	return &Texture{name: name, path: faces[0], kind: gpu.TextureCube, view: view}, nil
}

func (t *Texture) Name() string { return t.name }

func (t *Texture) Path() string { return t.path }

func (t *Texture) Kind() gpu.TextureKind { return t.kind }

// View returns the bindable resource, or nil after Release.
func (t *Texture) View() gpu.ShaderResource { return t.view }

// Image returns the CPU copy kept by Load, or nil.
func (t *Texture) Image() *image.RGBA { return t.image }

func (t *Texture) Release() {
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	t.image = nil
}

// Views collects the resources of several textures in order.
func Views(textures []*Texture) []gpu.ShaderResource {
	views := make([]gpu.ShaderResource, len(textures))
	for i, t := range textures {
		views[i] = t.View()
	}
	return views
}
