// Package material holds surface colours copied into the per-object buffer.
package material

import (
	"glade/internal/cbuffer"
	"glade/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

type Material struct {
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec3
	Power    float32
}

// White reflects every channel fully with a faint highlight. Objects without a
// material use it.
var White = Material{
	Ambient:  mgl32.Vec4{1, 1, 1, 1},
	Diffuse:  mgl32.Vec4{1, 1, 1, 1},
	Specular: mgl32.Vec3{0.2, 0.2, 0.2},
	Power:    0.01,
}

func FromConfig(c config.Material) Material {
	return Material{
		Ambient:  c.Ambient,
		Diffuse:  c.Diffuse,
		Specular: c.Specular,
		Power:    c.Power,
	}
}

// Apply writes the material into an object buffer. Tint is left untouched.
func (m Material) Apply(o *cbuffer.Object) {
	o.Ambient = m.Ambient
	o.Diffuse = m.Diffuse
	o.Specular = m.Specular.Vec4(m.Power)
}
