package glbackend

import (
	"fmt"
	"strings"

	"glade/internal/gpu"
	"glade/internal/logging"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Texture units: pixel-stage slot i samples unit i, vertex-stage slot i
// samples unit vertexUnitBase+i.
const (
	maxSlots       = 8
	vertexUnitBase = maxSlots
)

// Uniform block names bound to the shared constant buffer slots.
var blockNames = map[string]uint32{
	"ObjectBuffer": gpu.SlotObject,
	"CameraBuffer": gpu.SlotCamera,
	"LightBuffer":  gpu.SlotLight,
	"SceneBuffer":  gpu.SlotScene,
}

type buffer struct {
	id       uint32
	target   uint32
	size     int
	released bool
}

func (b *buffer) Size() int { return b.size }

func (b *buffer) Release() {
	if b.released {
		return
	}
	gl.DeleteBuffers(1, &b.id)
	b.released = true
}

type program struct {
	id       uint32
	layout   gpu.VertexLayout
	released bool
}

func (p *program) Release() {
	if p.released {
		return
	}
	gl.DeleteProgram(p.id)
	p.released = true
}

type texture struct {
	id       uint32
	target   uint32
	released bool
}

func (t *texture) Release() {
	if t.released {
		return
	}
	gl.DeleteTextures(1, &t.id)
	t.released = true
}

// GL has no state objects; these carry the description applied at bind time.
type (
	blendState        struct{ desc gpu.BlendDesc }
	depthStencilState struct{ desc gpu.DepthStencilDesc }
	rasterizerState   struct{ desc gpu.RasterizerDesc }
)

func (s *blendState) Release()                          {}
func (s *blendState) Desc() gpu.BlendDesc               { return s.desc }
func (s *depthStencilState) Release()                   {}
func (s *depthStencilState) Desc() gpu.DepthStencilDesc { return s.desc }
func (s *rasterizerState) Release()                     {}
func (s *rasterizerState) Desc() gpu.RasterizerDesc     { return s.desc }

// Device creates GL objects. It holds no state of its own.
type Device struct{}

func (d *Device) CreateBuffer(desc gpu.BufferDesc, initial []byte) (gpu.Buffer, error) {
	if desc.Size <= 0 {
		return nil, fmt.Errorf("create %s buffer: invalid size %d", desc.Kind, desc.Size)
	}
	target := uint32(gl.ARRAY_BUFFER)
	switch desc.Kind {
	case gpu.IndexBuffer:
		target = gl.ELEMENT_ARRAY_BUFFER
	case gpu.ConstantBuffer:
		target = gl.UNIFORM_BUFFER
	}
	usage := uint32(gl.STATIC_DRAW)
	if desc.Dynamic || desc.Kind == gpu.ConstantBuffer {
		usage = gl.DYNAMIC_DRAW
	}

	b := &buffer{target: target, size: desc.Size}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(target, b.id)
	if len(initial) > 0 {
		data := initial
		if len(data) < desc.Size {
			data = make([]byte, desc.Size)
			copy(data, initial)
		}
		gl.BufferData(target, desc.Size, gl.Ptr(data), usage)
	} else {
		gl.BufferData(target, desc.Size, nil, usage)
	}
	gl.BindBuffer(target, 0)
	if err := checkError("create buffer"); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// CreateProgram compiles and links the pair, then checks the vertex shader's
// active inputs against the layout. Attribute i of the layout is bound to
// location i before linking.
func (d *Device) CreateProgram(vs, ps gpu.ShaderSource, layout gpu.VertexLayout) (gpu.Program, error) {
	vertex, err := compileShader(vs, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertex)
	fragment, err := compileShader(ps, gl.FRAGMENT_SHADER, "pixel")
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragment)

	id := gl.CreateProgram()
	gl.AttachShader(id, vertex)
	gl.AttachShader(id, fragment)
	for i, e := range layout.Elements {
		gl.BindAttribLocation(id, uint32(i), gl.Str(e.Name+"\x00"))
	}
	gl.LinkProgram(id)

	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(id, logLength, nil, gl.Str(log))
		gl.DeleteProgram(id)
		return nil, &gpu.ShaderCompileError{Stage: "link", Path: vs.Path + " + " + ps.Path, Log: log}
	}

	if err := gpu.CheckSignature(vs.Path, activeInputs(id), layout); err != nil {
		gl.DeleteProgram(id)
		return nil, err
	}
	bindSlots(id)
	logging.Debug("program %d: %s + %s (%s)", id, vs.Path, ps.Path, layout.Name)
	return &program{id: id, layout: layout}, nil
}

func compileShader(src gpu.ShaderSource, kind uint32, stage string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(string(src.Code) + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &gpu.ShaderCompileError{Stage: stage, Path: src.Path, Log: log}
	}
	return shader, nil
}

// activeInputs lists the vertex inputs the linked program actually reads.
func activeInputs(id uint32) []string {
	var count, maxLen int32
	gl.GetProgramiv(id, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(id, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)
	name := make([]uint8, maxLen+1)
	var inputs []string
	for i := range uint32(count) {
		var (
			length, size int32
			kind         uint32
		)
		gl.GetActiveAttrib(id, i, maxLen+1, &length, &size, &kind, &name[0])
		n := string(name[:length])
		if strings.HasPrefix(n, "gl_") {
			continue
		}
		inputs = append(inputs, n)
	}
	return inputs
}

// bindSlots points the program's uniform blocks at the shared slots and its
// samplers at their texture units. Samplers are named tex0..tex7 in the pixel
// stage and vsTex0..vsTex7 in the vertex stage.
func bindSlots(id uint32) {
	for name, slot := range blockNames {
		if idx := gl.GetUniformBlockIndex(id, gl.Str(name+"\x00")); idx != gl.INVALID_INDEX {
			gl.UniformBlockBinding(id, idx, slot)
		}
	}
	gl.UseProgram(id)
	for i := range int32(maxSlots) {
		if loc := gl.GetUniformLocation(id, gl.Str(fmt.Sprintf("tex%d\x00", i))); loc >= 0 {
			gl.Uniform1i(loc, i)
		}
		if loc := gl.GetUniformLocation(id, gl.Str(fmt.Sprintf("vsTex%d\x00", i))); loc >= 0 {
			gl.Uniform1i(loc, vertexUnitBase+i)
		}
	}
	gl.UseProgram(0)
}

func (d *Device) CreateBlendState(desc gpu.BlendDesc) (gpu.BlendState, error) {
	return &blendState{desc: desc}, nil
}

func (d *Device) CreateDepthStencilState(desc gpu.DepthStencilDesc) (gpu.DepthStencilState, error) {
	return &depthStencilState{desc: desc}, nil
}

func (d *Device) CreateRasterizerState(desc gpu.RasterizerDesc) (gpu.RasterizerState, error) {
	return &rasterizerState{desc: desc}, nil
}

// CreateTexture uploads RGBA8 data and builds mipmaps. Cube faces are in
// +X, -X, +Y, -Y, +Z, -Z order.
func (d *Device) CreateTexture(desc gpu.TextureDesc, faces [][]byte) (gpu.ShaderResource, error) {
	want := 1
	target := uint32(gl.TEXTURE_2D)
	wrap := int32(gl.REPEAT)
	if desc.Kind == gpu.TextureCube {
		want, target, wrap = 6, gl.TEXTURE_CUBE_MAP, gl.CLAMP_TO_EDGE
	}
	if len(faces) != want {
		return nil, fmt.Errorf("create texture: want %d faces, got %d", want, len(faces))
	}
	for i, f := range faces {
		if len(f) != desc.Width*desc.Height*4 {
			return nil, fmt.Errorf("create texture: face %d has %d bytes, want %d", i, len(f), desc.Width*desc.Height*4)
		}
	}

	t := &texture{target: target}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(target, t.id)
	for i, f := range faces {
		face := target
		if desc.Kind == gpu.TextureCube {
			face = gl.TEXTURE_CUBE_MAP_POSITIVE_X + uint32(i)
		}
		gl.TexImage2D(face, 0, gl.RGBA8, int32(desc.Width), int32(desc.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f))
	}
	gl.TexParameteri(target, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_T, wrap)
	gl.TexParameteri(target, gl.TEXTURE_WRAP_R, wrap)
	gl.TexParameteri(target, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(target, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.GenerateMipmap(target)
	gl.BindTexture(target, 0)
	if err := checkError("create texture"); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

func checkError(op string) error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%s: gl error 0x%x", op, code)
	}
	return nil
}
