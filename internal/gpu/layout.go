package gpu

// Format is the type of one vertex attribute.
type Format uint8

const (
	Float1 Format = iota + 1
	Float2
	Float3
	Float4
)

// Components returns the number of float32 components.
func (f Format) Components() int {
	return int(f)
}

// Size returns the attribute size in bytes.
func (f Format) Size() int {
	return int(f) * 4
}

// VertexElement is one attribute of a vertex structure. Elements with
// PerInstance set advance once per instance and live in vertex buffer slot 1.
type VertexElement struct {
	Name        string
	Format      Format
	Offset      int
	PerInstance bool
}

// VertexLayout describes the vertex structure an effect's vertex shader
// consumes. Its element names must cover every input of the shader.
type VertexLayout struct {
	Name     string
	Elements []VertexElement
}

// Stride returns the size of one per-vertex (instance=false) or per-instance
// (instance=true) record.
func (l VertexLayout) Stride(instance bool) int {
	stride := 0
	for _, e := range l.Elements {
		if e.PerInstance != instance {
			continue
		}
		if end := e.Offset + e.Format.Size(); end > stride {
			stride = end
		}
	}
	return stride
}

// Has reports whether the layout declares an element with the given name.
func (l VertexLayout) Has(name string) bool {
	for _, e := range l.Elements {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Standard vertex structures used by the scene effects.
var (
	// BasicLayout is position + colour.
	BasicLayout = VertexLayout{
		Name: "basic",
		Elements: []VertexElement{
			{Name: "position", Format: Float3, Offset: 0},
			{Name: "colour", Format: Float4, Offset: 12},
		},
	}

	// ExtendedLayout is position, normal, colour and texture coordinate.
	ExtendedLayout = VertexLayout{
		Name: "extended",
		Elements: []VertexElement{
			{Name: "position", Format: Float3, Offset: 0},
			{Name: "normal", Format: Float3, Offset: 12},
			{Name: "colour", Format: Float4, Offset: 24},
			{Name: "texCoord", Format: Float2, Offset: 40},
		},
	}

	// ParticleLayout is a billboard corner per vertex and a seed per instance.
	ParticleLayout = VertexLayout{
		Name: "particle",
		Elements: []VertexElement{
			{Name: "corner", Format: Float2, Offset: 0},
			{Name: "seed", Format: Float4, Offset: 0, PerInstance: true},
		},
	}

	// FlareLayout is a billboard corner per vertex.
	FlareLayout = VertexLayout{
		Name: "flare",
		Elements: []VertexElement{
			{Name: "corner", Format: Float2, Offset: 0},
		},
	}
)

// LayoutByName resolves the standard layouts by their Name.
func LayoutByName(name string) (VertexLayout, bool) {
	for _, l := range []VertexLayout{BasicLayout, ExtendedLayout, ParticleLayout, FlareLayout} {
		if l.Name == name {
			return l, true
		}
	}
	return VertexLayout{}, false
}
