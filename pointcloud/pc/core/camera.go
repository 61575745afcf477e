package core

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MaxPitch = 89.0
	MinPitch = -89.0
)

// CameraState is a free-fly camera. Yaw and Pitch are in degrees, Y is up.
type CameraState struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	Speed       float32
	Sensitivity float32
}

func NewCameraState() *CameraState {
	return &CameraState{
		Position:    mgl32.Vec3{0, 0, 2},
		Yaw:         -90,
		Pitch:       0,
		Speed:       2.5,
		Sensitivity: 0.1,
	}
}

// ApplyLook turns the camera by a pointer delta. Yaw wraps freely, pitch is
// clamped so the view never flips over the pole.
func (c *CameraState) ApplyLook(dx, dy float32) {
	c.Yaw += dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity

	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < MinPitch {
		c.Pitch = MinPitch
	}
}

// Forward is the horizontal heading. Pitch is left out so WASD movement stays
// in the XZ plane wherever the camera looks.
func (c *CameraState) Forward() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	return mgl32.Vec3{math32.Cos(yaw), 0, math32.Sin(yaw)}
}

func (c *CameraState) Right() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	return mgl32.Vec3{-math32.Sin(yaw), 0, math32.Cos(yaw)}
}

// Direction is the full look vector including pitch.
func (c *CameraState) Direction() mgl32.Vec3 {
	yaw := mgl32.DegToRad(c.Yaw)
	pitch := mgl32.DegToRad(c.Pitch)
	return mgl32.Vec3{
		math32.Cos(yaw) * math32.Cos(pitch),
		math32.Sin(pitch),
		math32.Sin(yaw) * math32.Cos(pitch),
	}
}

// ApplyMove moves the camera by Speed*dt along every active axis of intent.
// Axes are applied independently, so a diagonal is faster than a straight line.
func (c *CameraState) ApplyMove(intent MoveIntent, dt float32) {
	if dt <= 0 {
		return
	}
	velocity := c.Speed * dt
	forward := c.Forward()
	right := c.Right()
	up := mgl32.Vec3{0, 1, 0}

	if intent.Forward {
		c.Position = c.Position.Add(forward.Mul(velocity))
	}
	if intent.Backward {
		c.Position = c.Position.Sub(forward.Mul(velocity))
	}
	if intent.Left {
		c.Position = c.Position.Sub(right.Mul(velocity))
	}
	if intent.Right {
		c.Position = c.Position.Add(right.Mul(velocity))
	}
	if intent.Up {
		c.Position = c.Position.Add(up.Mul(velocity))
	}
	if intent.Down {
		c.Position = c.Position.Sub(up.Mul(velocity))
	}
}

func (c *CameraState) GetViewMatrix() mgl32.Mat4 {
	eye := c.Position
	target := eye.Add(c.Direction())
	up := mgl32.Vec3{0, 1, 0}
	return mgl32.LookAtV(eye, target, up)
}

// Projection is the perspective setup. Only Resize changes the matrix.
type Projection struct {
	FovDeg float32
	Near   float32
	Far    float32
	Aspect float32
	matrix mgl32.Mat4
}

func NewProjection(fovDeg, near, far float32, width, height int) *Projection {
	p := &Projection{FovDeg: fovDeg, Near: near, Far: far, Aspect: 1}
	p.Resize(width, height)
	return p
}

// Resize recomputes the matrix for a new framebuffer size. A zero-sized
// framebuffer (minimized window) keeps the previous aspect ratio.
func (p *Projection) Resize(width, height int) {
	if width > 0 && height > 0 {
		p.Aspect = float32(width) / float32(height)
	}
	p.matrix = mgl32.Perspective(mgl32.DegToRad(p.FovDeg), p.Aspect, p.Near, p.Far)
}

func (p *Projection) Matrix() mgl32.Mat4 {
	return p.matrix
}
