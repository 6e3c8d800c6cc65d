package camera

import (
	"glade/internal/gpu"

	"github.com/go-gl/mathgl/mgl32"
)

// FirstPerson looks out from its position. Turning changes yaw, elevating
// changes pitch. While not flying, Move stays in the horizontal plane.
type FirstPerson struct {
	base
	position   mgl32.Vec3
	yaw, pitch float32
}

func NewFirstPerson(dev gpu.Device, position, up, dir mgl32.Vec3, lens Lens) (*FirstPerson, error) {
	b, err := newBase(dev, up, lens)
	if err != nil {
		return nil, err
	}
	c := &FirstPerson{base: b, position: position}
	if dir.Len() == 0 {
		dir = mgl32.Vec3{0, 0, 1}
	}
	c.yaw, c.pitch = angles(dir)
	c.pitch = clamp(c.pitch, -maxPitch, maxPitch)
	return c, nil
}

func (c *FirstPerson) Forward() mgl32.Vec3 {
	return direction(c.yaw, c.pitch)
}

// Turn rotates toward the camera's right for positive delta.
func (c *FirstPerson) Turn(delta float32) {
	c.yaw -= delta
}

// Elevate pitches the view up for positive delta.
func (c *FirstPerson) Elevate(delta float32) {
	c.pitch = clamp(c.pitch+delta, -maxPitch, maxPitch)
}

func (c *FirstPerson) Move(delta float32) {
	dir := c.Forward()
	if !c.flying {
		dir = mgl32.Vec3{dir.X(), 0, dir.Z()}
		if dir.Len() == 0 {
			return
		}
		dir = dir.Normalize()
	}
	c.position = c.position.Add(dir.Mul(delta))
}

func (c *FirstPerson) SetHeight(h float32) {
	c.position[1] = h
}

func (c *FirstPerson) Position() mgl32.Vec3 { return c.position }

func (c *FirstPerson) Update(ctx gpu.Context) error {
	return c.push(ctx, c.position, c.position.Add(c.Forward()))
}
