package mesh

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Box returns a cube spanning [-1, 1] on every axis with outward normals and
// per-face texture coordinates.
func Box() *Mesh {
	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	m := &Mesh{}
	for _, f := range faces {
		base := uint32(len(m.Vertices))
		for _, c := range corners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1]))
			m.Vertices = append(m.Vertices, Vertex{
				Position: p,
				Normal:   f.normal,
				Colour:   white,
				TexCoord: mgl32.Vec2{(c[0] + 1) / 2, (1 - c[1]) / 2},
			})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// Quad returns one unit grid cell in the XZ plane, spanning [0, 1], facing +Y.
// Grids draw it once per cell.
func Quad() *Mesh {
	up := mgl32.Vec3{0, 1, 0}
	return &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{0, 0, 0}, Normal: up, Colour: white, TexCoord: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{0, 0, 1}, Normal: up, Colour: white, TexCoord: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec3{1, 0, 1}, Normal: up, Colour: white, TexCoord: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{1, 0, 0}, Normal: up, Colour: white, TexCoord: mgl32.Vec2{1, 0}},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

// Billboard returns the four corners of a camera-facing quad as a triangle
// strip.
func Billboard() *Mesh {
	return &Mesh{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-1, -1, 0}, TexCoord: mgl32.Vec2{0, 1}},
			{Position: mgl32.Vec3{1, -1, 0}, TexCoord: mgl32.Vec2{1, 1}},
			{Position: mgl32.Vec3{-1, 1, 0}, TexCoord: mgl32.Vec2{0, 0}},
			{Position: mgl32.Vec3{1, 1, 0}, TexCoord: mgl32.Vec2{1, 0}},
		},
	}
}

// Heightfield returns a width x depth cell grid in the XZ plane with vertex
// (x, z) at height(x, z). Normals come from central differences.
func Heightfield(width, depth int, height func(x, z int) float32) *Mesh {
	at := func(x, z int) float32 {
		x = min(max(x, 0), width)
		z = min(max(z, 0), depth)
		return height(x, z)
	}

	m := &Mesh{Vertices: make([]Vertex, 0, (width+1)*(depth+1))}
	for z := 0; z <= depth; z++ {
		for x := 0; x <= width; x++ {
			dx := at(x+1, z) - at(x-1, z)
			dz := at(x, z+1) - at(x, z-1)
			m.Vertices = append(m.Vertices, Vertex{
				Position: mgl32.Vec3{float32(x), at(x, z), float32(z)},
				Normal:   mgl32.Vec3{-dx, 2, -dz}.Normalize(),
				Colour:   white,
				TexCoord: mgl32.Vec2{float32(x) / float32(width), float32(z) / float32(depth)},
			})
		}
	}

	row := uint32(width + 1)
	m.Indices = make([]uint32, 0, 6*width*depth)
	for z := 0; z < depth; z++ {
		for x := 0; x < width; x++ {
			i := uint32(z)*row + uint32(x)
			m.Indices = append(m.Indices, i, i+row, i+row+1, i, i+row+1, i+1)
		}
	}
	return m
}
