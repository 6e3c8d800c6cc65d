// Package mesh builds CPU geometry and uploads it into vertex and index
// buffers packed for a given vertex layout.
package mesh

import (
	"encoding/binary"
	"fmt"
	"math"

	"glade/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the superset of attributes any layout may ask for. The billboard
// layouts read their "corner" from Position.X and Position.Y.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Colour   mgl32.Vec4
	TexCoord mgl32.Vec2
}

var white = mgl32.Vec4{1, 1, 1, 1}

// Mesh is indexed triangle geometry. Indices may be empty for non-indexed
// geometry such as billboards.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

func (v Vertex) element(name string) ([]float32, bool) {
	switch name {
	case "position":
		return v.Position[:], true
	case "normal":
		return v.Normal[:], true
	case "colour":
		return v.Colour[:], true
	case "texCoord":
		return v.TexCoord[:], true
	case "corner":
		return v.Position[:2], true
	}
	return nil, false
}

// Pack encodes the vertices with the per-vertex elements of layout.
func (m *Mesh) Pack(layout gpu.VertexLayout) ([]byte, error) {
	stride := layout.Stride(false)
	if stride == 0 {
		return nil, fmt.Errorf("layout %q has no per-vertex elements", layout.Name)
	}
	out := make([]byte, stride*len(m.Vertices))
	for i, v := range m.Vertices {
		base := i * stride
		for _, e := range layout.Elements {
			if e.PerInstance {
				continue
			}
			vals, ok := v.element(e.Name)
			if !ok {
				return nil, fmt.Errorf("layout %q: unsupported element %q", layout.Name, e.Name)
			}
			for c := 0; c < e.Format.Components(); c++ {
				var f float32
				if c < len(vals) {
					f = vals[c]
				}
				binary.LittleEndian.PutUint32(out[base+e.Offset+c*4:], math.Float32bits(f))
			}
		}
	}
	return out, nil
}

// PackIndices encodes the index list as little-endian uint32.
func (m *Mesh) PackIndices() []byte {
	out := make([]byte, 4*len(m.Indices))
	for i, idx := range m.Indices {
		binary.LittleEndian.PutUint32(out[i*4:], idx)
	}
	return out
}

// Buffers are a mesh resident on the device.
type Buffers struct {
	Vertex      gpu.Buffer
	Index       gpu.Buffer
	Stride      int
	VertexCount int
	IndexCount  int
}

// Upload creates immutable vertex (and, when the mesh is indexed, index)
// buffers for the mesh.
func Upload(dev gpu.Device, m *Mesh, layout gpu.VertexLayout) (*Buffers, error) {
	if len(m.Vertices) == 0 {
		return nil, fmt.Errorf("mesh has no vertices")
	}
	data, err := m.Pack(layout)
	if err != nil {
		return nil, err
	}
	vb, err := dev.CreateBuffer(gpu.BufferDesc{Kind: gpu.VertexBuffer, Size: len(data)}, data)
	if err != nil {
		return nil, fmt.Errorf("could not create vertex buffer: %w", err)
	}
	b := &Buffers{Vertex: vb, Stride: layout.Stride(false), VertexCount: len(m.Vertices)}
	if len(m.Indices) > 0 {
		idx := m.PackIndices()
		ib, err := dev.CreateBuffer(gpu.BufferDesc{Kind: gpu.IndexBuffer, Size: len(idx)}, idx)
		if err != nil {
			vb.Release()
			return nil, fmt.Errorf("could not create index buffer: %w", err)
		}
		b.Index = ib
		b.IndexCount = len(m.Indices)
	}
	return b, nil
}

// Bind sets the vertex buffer at slot 0 and the index buffer if present.
func (b *Buffers) Bind(ctx gpu.Context) {
	ctx.SetVertexBuffer(0, b.Vertex, b.Stride)
	if b.Index != nil {
		ctx.SetIndexBuffer(b.Index)
	}
}

func (b *Buffers) Release() {
	if b.Vertex != nil {
		b.Vertex.Release()
		b.Vertex = nil
	}
	if b.Index != nil {
		b.Index.Release()
		b.Index = nil
	}
}
