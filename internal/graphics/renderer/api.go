package renderer

import (
	"glade/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderable is any scene entity with a world transform, a per-object
// constant buffer and update/render operations.
//
// SetWorldMatrix only writes the CPU mirror. Update copies the mirror to the
// GPU unconditionally, so it must run after SetWorldMatrix and before Render
// in the same frame. Render rebinds everything it needs: object buffer,
// effect, textures and geometry.
type Renderable interface {
	Name() string
	SetWorldMatrix(m mgl32.Mat4)
	WorldMatrix() mgl32.Mat4
	Update(ctx gpu.Context) error
	Render(ctx gpu.Context) error
	Dispose()
}

// Layer orders passes. Passes must be submitted in non-decreasing layer
// order so opaque geometry is drawn before anything blended over it.
type Layer int

const (
	Background Layer = iota
	Opaque
	Terrain
	Dynamic
	Transparent
	Flare
)

var layerNames = [...]string{"background", "opaque", "terrain", "dynamic", "transparent", "flare"}

func (l Layer) String() string {
	if l < 0 || int(l) >= len(layerNames) {
		return "unknown"
	}
	return layerNames[l]
}

// ParseLayer resolves a layer by name.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return 0, false
}

// Pass draws a list of renderables within one layer.
type Pass struct {
	Name  string
	Layer Layer
	Items []Renderable

	// Repeat draws every item this many times. Zero means once.
	Repeat int
	// Prepare runs before repetition i.
	Prepare func(ctx gpu.Context, i int) error

	// Begin and End bracket the pass. When Begin succeeds End always runs,
	// even if a draw fails, and no other pass draws in between.
	Begin func(ctx gpu.Context) error
	End   func(ctx gpu.Context)
}
