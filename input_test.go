package cloudview

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

type fakeKeys map[glfw.Key]glfw.Action

func (f fakeKeys) GetKey(key glfw.Key) glfw.Action {
	if a, ok := f[key]; ok {
		return a
	}
	return glfw.Release
}

func TestInput_PressHoldRelease(t *testing.T) {
	var input Input
	keys := fakeKeys{glfw.KeyW: glfw.Press}

	input.Poll(keys)
	assert.True(t, input.IsPressed(KeyW))
	assert.True(t, input.IsJustPressed(KeyW))

	input.Poll(keys)
	assert.True(t, input.IsPressed(KeyW))
	assert.False(t, input.IsJustPressed(KeyW), "held keys are not just pressed again")

	keys[glfw.KeyW] = glfw.Release
	input.Poll(keys)
	assert.False(t, input.IsPressed(KeyW))
	assert.True(t, input.JustReleased[KeyW])

	input.Poll(keys)
	assert.False(t, input.JustReleased[KeyW])
}

func TestInput_ShiftIsLeftShift(t *testing.T) {
	var input Input
	input.Poll(fakeKeys{glfw.KeyLeftShift: glfw.Press})
	assert.True(t, input.IsPressed(KeyShift))

	input.Poll(fakeKeys{glfw.KeyRightShift: glfw.Press})
	assert.False(t, input.IsPressed(KeyShift))
}

func TestInput_RepeatKeepsState(t *testing.T) {
	var input Input
	input.Poll(fakeKeys{glfw.KeySpace: glfw.Press})
	input.Poll(fakeKeys{glfw.KeySpace: glfw.Repeat})
	assert.True(t, input.IsPressed(KeySpace))
	assert.False(t, input.IsJustPressed(KeySpace))
}
