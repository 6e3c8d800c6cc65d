package camera

import (
	"glade/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

const minDistance = 0.5

// LookAt orbits a target point. Turn orbits about the up axis, Elevate raises
// or lowers the orbit and Move closes in on the target.
type LookAt struct {
	base
	target    mgl32.Vec3
	distance  float32
	yaw       float32
	elevation float32
}

func NewLookAt(dev gpu.Device, position, up, target mgl32.Vec3, lens Lens) (*LookAt, error) {
	b, err := newBase(dev, up, lens)
	if err != nil {
		return nil, err
	}
	c := &LookAt{base: b, target: target}
	offset := position.Sub(target)
	c.distance = max(offset.Len(), minDistance)
	if offset.Len() == 0 {
		offset = mgl32.Vec3{0, 0, 1}
	}
	c.yaw, c.elevation = angles(offset)
	c.elevation = clamp(c.elevation, -maxPitch, maxPitch)
	return c, nil
}

func (c *LookAt) Turn(delta float32) {
	c.yaw += delta
}

func (c *LookAt) Elevate(delta float32) {
	c.elevation = clamp(c.elevation+delta, -maxPitch, maxPitch)
}

// Move approaches the target for positive delta.
func (c *LookAt) Move(delta float32) {
	c.distance = max(c.distance-delta, minDistance)
}

// SetHeight shifts the orbit vertically so the camera sits at height h.
func (c *LookAt) SetHeight(h float32) {
	c.target[1] += h - c.Position().Y()
}

func (c *LookAt) Target() mgl32.Vec3 { return c.target }

func (c *LookAt) Position() mgl32.Vec3 {
	return c.target.Add(direction(c.yaw, c.elevation).Mul(c.distance))
}

func (c *LookAt) Update(ctx gpu.Context) error {
	return c.push(ctx, c.Position(), c.target)
}
