package main

import (
	"testing"

	"glade/internal/input"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestTranslateKey(t *testing.T) {
	key, ok := translateKey(glfw.KeyHome)
	assert.True(t, ok)
	assert.Equal(t, input.KeyHome, key)

	key, ok = translateKey(glfw.KeySpace)
	assert.True(t, ok)
	assert.Equal(t, input.KeySpace, key)

	_, ok = translateKey(glfw.KeyA)
	assert.False(t, ok)
}

func TestDragTracker(t *testing.T) {
	var d dragTracker

	_, _, ok := d.move(10, 10)
	assert.False(t, ok, "no drag without the button")

	d.button(true)
	_, _, ok = d.move(10, 10)
	assert.False(t, ok, "first position primes")

	dx, dy, ok := d.move(13, 8)
	assert.True(t, ok)
	assert.Equal(t, float32(3), dx)
	assert.Equal(t, float32(-2), dy)

	d.button(false)
	_, _, ok = d.move(20, 20)
	assert.False(t, ok)

	// A new press does not jump from the old position.
	d.button(true)
	d.move(50, 50)
	dx, dy, ok = d.move(51, 50)
	assert.True(t, ok)
	assert.Equal(t, float32(1), dx)
	assert.Zero(t, dy)
}
