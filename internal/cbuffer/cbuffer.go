// Package cbuffer holds the CPU mirrors of the constant buffers shared with the
// shaders and the explicit step that copies a mirror to its GPU buffer.
//
// A mirror is the only place its data is written. The GPU buffer is refreshed
// by Sync and never written from render code.
package cbuffer

import (
	"encoding/binary"
	"fmt"

	"glade/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// Alignment every layout size must be a multiple of.
const Alignment = 16

// Object is the per-object buffer (slot 0).
type Object struct {
	World    mgl32.Mat4
	Normal   mgl32.Mat4
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4 // w is the specular power
	Tint     mgl32.Vec4
	// Params carries variant data: grid cell counts in x and y, billboard
	// size in x and particle count in y.
	Params mgl32.Vec4
}

// Camera is the per-camera buffer (slot 1).
type Camera struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewProjection mgl32.Mat4
	EyePosition    mgl32.Vec4
}

// Light is the per-light buffer (slot 2). Vector is the light position
// (w=1) or direction (w=0).
type Light struct {
	Vector   mgl32.Vec4
	Ambient  mgl32.Vec4
	Diffuse  mgl32.Vec4
	Specular mgl32.Vec4
}

// Scene is the per-scene buffer (slot 3).
type Scene struct {
	WindDirection mgl32.Vec4
	Time          float32
	GrassHeight   float32
	_             [2]float32
}

// Layout is the set of structures that may be mirrored.
type Layout interface {
	Object | Camera | Light | Scene
}

// Size returns the encoded size of a layout, or an error when it is not a
// multiple of Alignment.
func Size[T Layout]() (int, error) {
	var v T
	n := binary.Size(v)
	if n <= 0 {
		return 0, fmt.Errorf("cbuffer: %T is not a fixed-size layout", v)
	}
	if n%Alignment != 0 {
		return 0, fmt.Errorf("cbuffer: %T is %d bytes, not a multiple of %d", v, n, Alignment)
	}
	return n, nil
}

// Encode packs a layout as the shader reads it.
func Encode[T Layout](v T) ([]byte, error) {
	return binary.Append(nil, binary.LittleEndian, v)
}

// Decode unpacks bytes produced by Encode.
func Decode[T Layout](data []byte) (T, error) {
	var v T
	_, err := binary.Decode(data, binary.LittleEndian, &v)
	return v, err
}

// Mirror pairs a CPU structure with the GPU constant buffer it is copied to.
type Mirror[T Layout] struct {
	// Data is the CPU copy. Writes only become visible to shaders after Sync.
	Data T

	slot  int
	buf   gpu.Buffer
	syncs int
}

// New creates the GPU buffer for a mirror bound at slot and uploads initial.
func New[T Layout](dev gpu.Device, slot int, initial T) (*Mirror[T], error) {
	size, err := Size[T]()
	if err != nil {
		return nil, err
	}
	data, err := Encode(initial)
	if err != nil {
		return nil, fmt.Errorf("cbuffer: encode %T: %w", initial, err)
	}
	buf, err := dev.CreateBuffer(gpu.BufferDesc{Kind: gpu.ConstantBuffer, Size: size, Dynamic: true}, data)
	if err != nil {
		return nil, fmt.Errorf("cbuffer: create slot %d buffer: %w", slot, err)
	}
	return &Mirror[T]{Data: initial, slot: slot, buf: buf}, nil
}

// Sync copies the CPU data to the GPU buffer unconditionally.
func (m *Mirror[T]) Sync(ctx gpu.Context) error {
	if m.buf == nil {
		return gpu.ErrReleased
	}
	data, err := Encode(m.Data)
	if err != nil {
		return err
	}
	if err := ctx.UpdateBuffer(m.buf, data); err != nil {
		return fmt.Errorf("cbuffer: sync slot %d: %w", m.slot, err)
	}
	m.syncs++
	return nil
}

// Bind attaches the GPU buffer at the mirror's slot for both stages.
func (m *Mirror[T]) Bind(ctx gpu.Context) {
	ctx.SetConstantBuffer(gpu.StageVertexPixel, m.slot, m.buf)
}

func (m *Mirror[T]) Slot() int { return m.slot }

func (m *Mirror[T]) Buffer() gpu.Buffer { return m.buf }

// Syncs returns how many times Sync succeeded.
func (m *Mirror[T]) Syncs() int { return m.syncs }

// Release frees the GPU buffer. The CPU data stays readable.
func (m *Mirror[T]) Release() {
	if m.buf != nil {
		m.buf.Release()
		m.buf = nil
	}
}
