package input

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	calls  []string
	flying bool
}

func (r *recorder) Elevate(d float32) { r.calls = append(r.calls, fmt.Sprintf("elevate %.2f", d)) }
func (r *recorder) Turn(d float32)    { r.calls = append(r.calls, fmt.Sprintf("turn %.2f", d)) }
func (r *recorder) Move(d float32)    { r.calls = append(r.calls, fmt.Sprintf("move %.2f", d)) }
func (r *recorder) ToggleFlying() bool {
	r.flying = !r.flying
	r.calls = append(r.calls, "toggle")
	return r.flying
}

func TestKeyDown(t *testing.T) {
	tests := []struct {
		key  Key
		want []string
	}{
		{KeyHome, []string{"elevate 0.05"}},
		{KeyEnd, []string{"elevate -0.05"}},
		{KeyLeft, []string{"turn -0.05"}},
		{KeyRight, []string{"turn 0.05"}},
		{KeyUp, []string{"move 0.50"}},
		{KeyDown, []string{"move -0.50"}},
		{KeySpace, []string{"toggle"}},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			r := &recorder{}
			assert.True(t, NewControls(r).KeyDown(tt.key))
			assert.Equal(t, tt.want, r.calls)
		})
	}
}

func TestUnboundKeysAreIgnored(t *testing.T) {
	r := &recorder{}
	c := NewControls(r)
	assert.False(t, c.KeyDown(Key('Q')))
	assert.False(t, c.KeyDown(KeyEscape))
	assert.False(t, c.KeyUp(KeySpace))
	assert.Empty(t, r.calls)
}

func TestMouse(t *testing.T) {
	r := &recorder{}
	c := NewControls(r)
	c.MouseDrag(10, -20)
	c.MouseWheel(120)
	assert.Equal(t, []string{"elevate 0.20", "turn -0.10", "move 1.20"}, r.calls)
}

func TestSpaceTogglesBackAndForth(t *testing.T) {
	r := &recorder{}
	c := NewControls(r)
	c.KeyDown(KeySpace)
	assert.True(t, r.flying)
	c.KeyDown(KeySpace)
	assert.False(t, r.flying)
}
