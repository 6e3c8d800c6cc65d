package camera_test

import (
	"testing"

	"glade/internal/cbuffer"
	"glade/internal/gpu"
	"glade/internal/gpu/gputest"
	"glade/internal/graphics/camera"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lens = camera.Lens{FOV: 45, Near: 0.1, Far: 100}

func newFirstPerson(t *testing.T, dev *gputest.Device) *camera.FirstPerson {
	t.Helper()
	c, err := camera.NewFirstPerson(dev, mgl32.Vec3{0, 2, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, lens)
	require.NoError(t, err)
	return c
}

func TestFirstPersonUpdatePushesBuffer(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()
	c := newFirstPerson(t, dev)
	c.SetAspect(1600, 900)

	require.NoError(t, c.Update(ctx))

	got, err := cbuffer.Decode[cbuffer.Camera](dev.Buffers[0].Data)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{0, 2, 0, 1}, got.EyePosition)
	want := mgl32.Perspective(mgl32.DegToRad(45), 16.0/9.0, 0.1, 100)
	assert.True(t, want.ApproxEqualThreshold(got.Projection, 1e-5))

	// The eye maps to the view-space origin.
	origin := got.View.Mul4x1(mgl32.Vec4{0, 2, 0, 1})
	assert.True(t, origin.ApproxEqualThreshold(mgl32.Vec4{0, 0, 0, 1}, 1e-5))

	last := ctx.Calls[len(ctx.Calls)-1]
	assert.Equal(t, gputest.OpSetConstantBuffer, last.Op)
	assert.Equal(t, gpu.SlotCamera, last.Slot)
}

func TestFirstPersonTurnAndMove(t *testing.T) {
	c := newFirstPerson(t, gputest.NewDevice())
	right := c.Forward().Cross(mgl32.Vec3{0, 1, 0})

	before := c.Forward()
	c.Turn(0.1)
	assert.Greater(t, c.Forward().Dot(right), float32(0))
	assert.InDelta(t, 1.0, c.Forward().Len(), 1e-5)

	c.Turn(-0.1)
	assert.True(t, before.ApproxEqualThreshold(c.Forward(), 1e-5))

	c.Move(0.5)
	assert.InDelta(t, 0.5, c.Position().Z(), 1e-5)
}

func TestFirstPersonMoveIsHorizontalUnlessFlying(t *testing.T) {
	c := newFirstPerson(t, gputest.NewDevice())
	c.Elevate(0.5)

	c.Move(1)
	assert.InDelta(t, 2.0, c.Position().Y(), 1e-5)
	assert.InDelta(t, 1.0, c.Position().Z(), 1e-5)

	c.SetFlying(true)
	c.Move(1)
	assert.Greater(t, c.Position().Y(), float32(2))
}

func TestFirstPersonPitchIsClamped(t *testing.T) {
	c := newFirstPerson(t, gputest.NewDevice())
	c.Elevate(10)
	assert.Less(t, c.Forward().Y(), float32(1))
	assert.Greater(t, c.Forward().Y(), float32(0.99))
}

func TestToggleFlying(t *testing.T) {
	c := newFirstPerson(t, gputest.NewDevice())
	assert.False(t, c.Flying())
	assert.True(t, c.ToggleFlying())
	assert.True(t, c.Flying())
	assert.False(t, c.ToggleFlying())
}

func TestSetHeight(t *testing.T) {
	fp := newFirstPerson(t, gputest.NewDevice())
	fp.SetHeight(7)
	assert.Equal(t, float32(7), fp.Position().Y())

	la, err := camera.NewLookAt(gputest.NewDevice(), mgl32.Vec3{0, 5, 10}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, lens)
	require.NoError(t, err)
	la.SetHeight(2)
	assert.InDelta(t, 2.0, la.Position().Y(), 1e-4)
}

func TestLookAtOrbit(t *testing.T) {
	c, err := camera.NewLookAt(gputest.NewDevice(), mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{}, lens)
	require.NoError(t, err)
	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{0, 0, 10}, 1e-4))

	c.Turn(mgl32.DegToRad(90))
	assert.True(t, c.Position().ApproxEqualThreshold(mgl32.Vec3{10, 0, 0}, 1e-4))
	assert.InDelta(t, 10.0, c.Position().Len(), 1e-4)

	c.Move(4)
	assert.InDelta(t, 6.0, c.Position().Len(), 1e-4)
	c.Move(100)
	assert.InDelta(t, 0.5, c.Position().Len(), 1e-4)

	c.Elevate(0.3)
	assert.Greater(t, c.Position().Y(), float32(0))
}

func TestDisposeReleasesBuffer(t *testing.T) {
	dev := gputest.NewDevice()
	c := newFirstPerson(t, dev)
	c.Dispose()
	assert.Zero(t, dev.Live())
}
