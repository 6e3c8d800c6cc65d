package mesh

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// objIndex is one v/vt/vn reference of a face corner, zero-based. Missing
// components are -1.
type objIndex struct {
	v, vt, vn int
}

type objDecoder struct {
	line      int
	positions []mgl32.Vec3
	normals   []mgl32.Vec3
	uvs       []mgl32.Vec2

	mesh    *Mesh
	corners map[objIndex]uint32
	// computed is set for vertices whose normal must be accumulated from
	// face normals.
	computed map[uint32]bool
}

// ParseOBJ reads a Wavefront OBJ stream. Polygons are triangulated as fans;
// groups, objects and materials are ignored. Vertices without a normal get the
// area-weighted average of their face normals.
func ParseOBJ(r io.Reader) (*Mesh, error) {
	dec := &objDecoder{
		mesh:     &Mesh{},
		corners:  map[objIndex]uint32{},
		computed: map[uint32]bool{},
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		dec.line++
		if err := dec.parseLine(sc.Text()); err != nil {
			return nil, fmt.Errorf("obj line %d: %w", dec.line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(dec.mesh.Indices) == 0 {
		return nil, fmt.Errorf("obj has no faces")
	}
	for i := range dec.mesh.Vertices {
		if dec.computed[uint32(i)] {
			v := &dec.mesh.Vertices[i]
			if v.Normal.Len() > 0 {
				v.Normal = v.Normal.Normalize()
			}
		}
	}
	return dec.mesh, nil
}

func (dec *objDecoder) parseLine(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}
	switch fields[0] {
	case "v":
		vals, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.positions = append(dec.positions, mgl32.Vec3{vals[0], vals[1], vals[2]})
	case "vn":
		vals, err := parseFloats(fields[1:], 3)
		if err != nil {
			return err
		}
		dec.normals = append(dec.normals, mgl32.Vec3{vals[0], vals[1], vals[2]})
	case "vt":
		vals, err := parseFloats(fields[1:], 2)
		if err != nil {
			return err
		}
		// OBJ puts v=0 at the bottom of the image.
		dec.uvs = append(dec.uvs, mgl32.Vec2{vals[0], 1 - vals[1]})
	case "f":
		return dec.parseFace(fields[1:])
	}
	return nil
}

func parseFloats(fields []string, n int) ([]float32, error) {
	if len(fields) < n {
		return nil, fmt.Errorf("want %d values, got %d", n, len(fields))
	}
	out := make([]float32, n)
	for i, f := range fields[:n] {
		val, err := strconv.ParseFloat(f, 32)
		if err != nil {
			return nil, err
		}
		out[i] = float32(val)
	}
	return out, nil
}

// resolve turns a 1-based (or negative, relative) OBJ index into a 0-based one.
func resolve(field string, count int) (int, error) {
	if field == "" {
		return -1, nil
	}
	val, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	switch {
	case val > 0 && val <= count:
		return val - 1, nil
	case val < 0 && -val <= count:
		return count + val, nil
	}
	return 0, fmt.Errorf("index %d out of range (%d)", val, count)
}

func (dec *objDecoder) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("face with %d vertices", len(fields))
	}
	idx := make([]uint32, len(fields))
	for i, f := range fields {
		parts := strings.Split(f, "/")
		var key objIndex
		var err error
		if key.v, err = resolve(parts[0], len(dec.positions)); err != nil {
			return err
		}
		if key.v < 0 {
			return fmt.Errorf("face corner %q without position", f)
		}
		key.vt, key.vn = -1, -1
		if len(parts) > 1 {
			if key.vt, err = resolve(parts[1], len(dec.uvs)); err != nil {
				return err
			}
		}
		if len(parts) > 2 {
			if key.vn, err = resolve(parts[2], len(dec.normals)); err != nil {
				return err
			}
		}
		idx[i] = dec.vertex(key)
	}

	for i := 1; i+1 < len(idx); i++ {
		a, b, c := idx[0], idx[i], idx[i+1]
		dec.mesh.Indices = append(dec.mesh.Indices, a, b, c)

		vs := dec.mesh.Vertices
		n := vs[b].Position.Sub(vs[a].Position).Cross(vs[c].Position.Sub(vs[a].Position))
		for _, k := range []uint32{a, b, c} {
			if dec.computed[k] {
				vs[k].Normal = vs[k].Normal.Add(n)
			}
		}
	}
	return nil
}

func (dec *objDecoder) vertex(key objIndex) uint32 {
	if i, ok := dec.corners[key]; ok {
		return i
	}
	v := Vertex{Position: dec.positions[key.v], Colour: white}
	if key.vt >= 0 {
		v.TexCoord = dec.uvs[key.vt]
	}
	i := uint32(len(dec.mesh.Vertices))
	if key.vn >= 0 {
		v.Normal = dec.normals[key.vn]
	} else {
		dec.computed[i] = true
	}
	dec.mesh.Vertices = append(dec.mesh.Vertices, v)
	dec.corners[key] = i
	return i
}
