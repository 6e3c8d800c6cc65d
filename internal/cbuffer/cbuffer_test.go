package cbuffer_test

import (
	"errors"
	"testing"

	"glade/internal/cbuffer"
	"glade/internal/gpu"
	"glade/internal/gpu/gputest"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutSizes(t *testing.T) {
	tests := []struct {
		name string
		size func() (int, error)
		want int
	}{
		{"object", cbuffer.Size[cbuffer.Object], 208},
		{"camera", cbuffer.Size[cbuffer.Camera], 208},
		{"light", cbuffer.Size[cbuffer.Light], 64},
		{"scene", cbuffer.Size[cbuffer.Scene], 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := tt.size()
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Zero(t, n%cbuffer.Alignment)
		})
	}
}

func TestMirrorSyncCopiesCPUData(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()

	m, err := cbuffer.New(dev, gpu.SlotScene, cbuffer.Scene{WindDirection: mgl32.Vec4{1, 0, 0, 1}})
	require.NoError(t, err)

	m.Data.Time = 2.5
	m.Data.GrassHeight = 0.125
	require.NoError(t, m.Sync(ctx))

	buf := dev.Buffers[0]
	got, err := cbuffer.Decode[cbuffer.Scene](buf.Data)
	require.NoError(t, err)
	assert.Equal(t, m.Data, got)
	assert.Equal(t, 1, m.Syncs())
	assert.Equal(t, gpu.ConstantBuffer, buf.Desc.Kind)
}

func TestMirrorWritesAreInvisibleUntilSync(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()

	m, err := cbuffer.New(dev, gpu.SlotLight, cbuffer.Light{})
	require.NoError(t, err)
	m.Data.Ambient = mgl32.Vec4{0.2, 0.2, 0.2, 1}

	got, err := cbuffer.Decode[cbuffer.Light](dev.Buffers[0].Data)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec4{}, got.Ambient)

	require.NoError(t, m.Sync(ctx))
	got, err = cbuffer.Decode[cbuffer.Light](dev.Buffers[0].Data)
	require.NoError(t, err)
	assert.Equal(t, m.Data.Ambient, got.Ambient)
}

func TestMirrorBindUsesBothStages(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()

	m, err := cbuffer.New(dev, gpu.SlotCamera, cbuffer.Camera{})
	require.NoError(t, err)
	m.Bind(ctx)

	require.Len(t, ctx.Calls, 1)
	call := ctx.Calls[0]
	assert.Equal(t, gputest.OpSetConstantBuffer, call.Op)
	assert.Equal(t, gpu.StageVertexPixel, call.Stages)
	assert.Equal(t, gpu.SlotCamera, call.Slot)
}

func TestMirrorSyncErrors(t *testing.T) {
	dev := gputest.NewDevice()
	ctx := gputest.NewContext()

	m, err := cbuffer.New(dev, gpu.SlotObject, cbuffer.Object{})
	require.NoError(t, err)

	boom := errors.New("device removed")
	ctx.UpdateErr = boom
	assert.ErrorIs(t, m.Sync(ctx), boom)
	assert.Zero(t, m.Syncs())

	ctx.UpdateErr = nil
	m.Release()
	assert.True(t, dev.Buffers[0].Released())
	assert.ErrorIs(t, m.Sync(ctx), gpu.ErrReleased)
}

func TestNewFailsWhenBufferCannotBeCreated(t *testing.T) {
	dev := gputest.NewDevice()
	dev.FailBuffers = true
	_, err := cbuffer.New(dev, gpu.SlotObject, cbuffer.Object{})
	assert.Error(t, err)
}
