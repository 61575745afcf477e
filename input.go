package cloudview

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyW int = iota
	KeyA
	KeyS
	KeyD
	KeySpace
	KeyShift
	KeyEscape
	KeyTab
	KeyF1
	KeyF3
	keyCount
)

// KeyReader is the part of *glfw.Window that key polling needs.
type KeyReader interface {
	GetKey(key glfw.Key) glfw.Action
}

// Input is the per-frame key snapshot. Keys are polled, not event driven.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool
}

func (input *Input) IsPressed(key int) bool {
	return input.Pressed[key]
}

func (input *Input) IsJustPressed(key int) bool {
	return input.JustPressed[key]
}

// Poll refreshes the snapshot from the window's current key state.
func (input *Input) Poll(keys KeyReader) {
	for key, glfwKey := range keyToGlfw {
		action := keys.GetKey(glfwKey)

		input.JustPressed[key] = false
		input.JustReleased[key] = false

		if glfw.Press == action {
			if !input.Pressed[key] {
				input.JustPressed[key] = true
			}
			input.Pressed[key] = true
		} else if glfw.Release == action {
			if input.Pressed[key] {
				input.JustReleased[key] = true
			}
			input.Pressed[key] = false
		}
	}
}

var keyToGlfw = [keyCount]glfw.Key{
	KeyW:      glfw.KeyW,
	KeyA:      glfw.KeyA,
	KeyS:      glfw.KeyS,
	KeyD:      glfw.KeyD,
	KeySpace:  glfw.KeySpace,
	KeyShift:  glfw.KeyLeftShift,
	KeyEscape: glfw.KeyEscape,
	KeyTab:    glfw.KeyTab,
	KeyF1:     glfw.KeyF1,
	KeyF3:     glfw.KeyF3,
}
