package cloudview

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState owns the single glfw window. The window has no client API:
// rendering goes through a wgpu surface created from it.
type WindowState struct {
	Glfw   *glfw.Window
	Width  int
	Height int
	Title  string
}

// CreateWindow initializes glfw and opens the window. It must run on the
// main OS thread. On error glfw is already terminated.
func CreateWindow(width, height int, title string) (*WindowState, error) {
	if width <= 0 {
		width = 1280
	}
	if height <= 0 {
		height = 720
	}
	if title == "" {
		title = "Point Cloud"
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}

	return &WindowState{
		Glfw:   win,
		Width:  width,
		Height: height,
		Title:  title,
	}, nil
}

// OnResize registers fn for framebuffer size changes.
func (s *WindowState) OnResize(fn func(width, height int)) {
	s.Glfw.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		s.Width, s.Height = width, height
		fn(width, height)
	})
}

// OnPointer registers fn for cursor motion. glfw calls it from PollEvents.
func (s *WindowState) OnPointer(fn func(x, y float64)) {
	s.Glfw.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		fn(x, y)
	})
}

func (s *WindowState) SetCaptured(captured bool) {
	if captured {
		s.Glfw.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		s.Glfw.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
}

func (s *WindowState) FramebufferSize() (int, int) {
	return s.Glfw.GetFramebufferSize()
}

func (s *WindowState) ShouldClose() bool {
	return s.Glfw.ShouldClose()
}

func (s *WindowState) RequestClose() {
	s.Glfw.SetShouldClose(true)
}

func (s *WindowState) PollEvents() {
	glfw.PollEvents()
}

// Now is glfw's monotonic clock in seconds.
func (s *WindowState) Now() float64 {
	return glfw.GetTime()
}

func (s *WindowState) Destroy() {
	s.Glfw.Destroy()
	glfw.Terminate()
}
