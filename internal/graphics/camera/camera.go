// Package camera provides the cameras the scene renders from. Every camera
// owns the per-camera constant buffer and pushes it in Update.
package camera

import (
	"glade/internal/cbuffer"
	"glade/internal/gpu"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Camera is the contract the scene and input dispatch rely on.
type Camera interface {
	// Update recomputes view and projection, syncs the camera buffer and
	// binds it at gpu.SlotCamera.
	Update(ctx gpu.Context) error
	Elevate(delta float32)
	Turn(delta float32)
	Move(delta float32)
	ToggleFlying() bool
	Flying() bool
	SetFlying(flying bool)
	SetHeight(h float32)
	Position() mgl32.Vec3
	SetAspect(width, height int)
	Dispose()
}

// Lens is the perspective projection. FOV is the vertical field of view in
// degrees.
type Lens struct {
	FOV  float32
	Near float32
	Far  float32
}

// maxPitch keeps the look direction away from the poles.
var maxPitch = mgl32.DegToRad(89)

func clamp[T constraints.Float](v, lo, hi T) T {
	return min(max(v, lo), hi)
}

// base carries the state every camera shares.
type base struct {
	lens   Lens
	aspect float32
	up     mgl32.Vec3
	flying bool
	buffer *cbuffer.Mirror[cbuffer.Camera]
}

func newBase(dev gpu.Device, up mgl32.Vec3, lens Lens) (base, error) {
	buf, err := cbuffer.New(dev, gpu.SlotCamera, cbuffer.Camera{})
	if err != nil {
		return base{}, err
	}
	if up.Len() == 0 {
		up = mgl32.Vec3{0, 1, 0}
	}
	return base{lens: lens, aspect: 1, up: up.Normalize(), buffer: buf}, nil
}

func (b *base) Flying() bool { return b.flying }

func (b *base) SetFlying(flying bool) { b.flying = flying }

func (b *base) ToggleFlying() bool {
	b.flying = !b.flying
	return b.flying
}

func (b *base) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.aspect = float32(width) / float32(height)
}

func (b *base) projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(b.lens.FOV), b.aspect, b.lens.Near, b.lens.Far)
}

func (b *base) push(ctx gpu.Context, eye, target mgl32.Vec3) error {
	view := mgl32.LookAtV(eye, target, b.up)
	proj := b.projection()
	b.buffer.Data = cbuffer.Camera{
		View:           view,
		Projection:     proj,
		ViewProjection: proj.Mul4(view),
		EyePosition:    eye.Vec4(1),
	}
	if err := b.buffer.Sync(ctx); err != nil {
		return err
	}
	b.buffer.Bind(ctx)
	return nil
}

// Buffer exposes the CPU mirror of the camera buffer.
func (b *base) Buffer() *cbuffer.Mirror[cbuffer.Camera] { return b.buffer }

func (b *base) Dispose() {
	if b.buffer != nil {
		b.buffer.Release()
	}
}

// direction converts yaw and pitch into a unit vector. Yaw 0 looks down +Z;
// positive yaw turns toward +X.
func direction(yaw, pitch float32) mgl32.Vec3 {
	cp := math32.Cos(pitch)
	return mgl32.Vec3{cp * math32.Sin(yaw), math32.Sin(pitch), cp * math32.Cos(yaw)}
}

func angles(dir mgl32.Vec3) (yaw, pitch float32) {
	dir = dir.Normalize()
	return math32.Atan2(dir.X(), dir.Z()), math32.Asin(clamp(dir.Y(), -1, 1))
}
