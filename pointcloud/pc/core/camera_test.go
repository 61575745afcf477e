package core

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-5

func assertVec3InDelta(t *testing.T, expected, actual mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], actual[i], delta, "component %d of %v", i, actual)
	}
}

func TestApplyLook_PitchStaysClamped(t *testing.T) {
	yaws := []float32{-720, -90, 0, 45, 180, 1e4}

	for _, yaw := range yaws {
		cam := NewCameraState()
		cam.Yaw = yaw
		rng := rand.New(rand.NewPCG(uint64(int64(yaw)), 7))

		for i := 0; i < 500; i++ {
			dy := (rng.Float32()*2 - 1) * 5000
			cam.ApplyLook(0, dy)
			require.GreaterOrEqual(t, cam.Pitch, float32(MinPitch), "yaw %v step %d", yaw, i)
			require.LessOrEqual(t, cam.Pitch, float32(MaxPitch), "yaw %v step %d", yaw, i)
		}
	}
}

func TestApplyLook_YawUnbounded(t *testing.T) {
	cam := NewCameraState()
	cam.Sensitivity = 1
	for i := 0; i < 10; i++ {
		cam.ApplyLook(90, 0)
	}
	assert.InDelta(t, -90+900, cam.Yaw, eps)
}

func TestApplyLook_ScalesBySensitivity(t *testing.T) {
	cam := NewCameraState()
	cam.ApplyLook(10, -20)
	assert.InDelta(t, -90+1.0, cam.Yaw, eps)
	assert.InDelta(t, -2.0, cam.Pitch, eps)
}

func TestApplyMove_FrameRateIndependent(t *testing.T) {
	intents := []MoveIntent{
		{Forward: true},
		{Backward: true, Left: true},
		{Right: true, Up: true},
		{Forward: true, Right: true, Down: true},
	}

	for _, intent := range intents {
		once := NewCameraState()
		once.Yaw = 33
		twice := NewCameraState()
		twice.Yaw = 33

		once.ApplyMove(intent, 0.1)
		twice.ApplyMove(intent, 0.05)
		twice.ApplyMove(intent, 0.05)

		assertVec3InDelta(t, once.Position, twice.Position, eps)
	}
}

func TestApplyMove_ForwardForOneSecond(t *testing.T) {
	cam := NewCameraState()
	require.Equal(t, mgl32.Vec3{0, 0, 2}, cam.Position)

	cam.ApplyMove(MoveIntent{Forward: true}, 1.0)

	// Forward at yaw -90 is (0, 0, -1).
	assertVec3InDelta(t, mgl32.Vec3{0, 0, 2 - 2.5}, cam.Position, eps)
}

func TestApplyMove_Axes(t *testing.T) {
	tests := []struct {
		name     string
		intent   MoveIntent
		expected mgl32.Vec3
	}{
		{"forward", MoveIntent{Forward: true}, mgl32.Vec3{0, 0, -1}},
		{"backward", MoveIntent{Backward: true}, mgl32.Vec3{0, 0, 1}},
		{"left", MoveIntent{Left: true}, mgl32.Vec3{-1, 0, 0}},
		{"right", MoveIntent{Right: true}, mgl32.Vec3{1, 0, 0}},
		{"up", MoveIntent{Up: true}, mgl32.Vec3{0, 1, 0}},
		{"down", MoveIntent{Down: true}, mgl32.Vec3{0, -1, 0}},
		{"forward and back cancel", MoveIntent{Forward: true, Backward: true}, mgl32.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := NewCameraState()
			cam.Position = mgl32.Vec3{}
			cam.Speed = 1
			cam.ApplyMove(tt.intent, 1)
			assertVec3InDelta(t, tt.expected, cam.Position, eps)
		})
	}
}

func TestApplyMove_IgnoresPitch(t *testing.T) {
	cam := NewCameraState()
	cam.Pitch = 80
	cam.ApplyMove(MoveIntent{Forward: true}, 1)
	assert.InDelta(t, 0, cam.Position.Y(), eps)
	assert.InDelta(t, -0.5, cam.Position.Z(), eps)
}

func TestApplyMove_NonPositiveDt(t *testing.T) {
	cam := NewCameraState()
	cam.ApplyMove(MoveIntent{Forward: true}, 0)
	cam.ApplyMove(MoveIntent{Forward: true}, -1)
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, cam.Position)
}

func TestDirection(t *testing.T) {
	cam := NewCameraState()
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, cam.Direction(), eps)

	cam.Pitch = 89
	dir := cam.Direction()
	assert.InDelta(t, 1, dir.Len(), eps)
	assert.Greater(t, dir.Y(), float32(0.99))
}

func TestViewMatrix_LooksDownDirection(t *testing.T) {
	cam := NewCameraState()
	cam.Position = mgl32.Vec3{3, -1, 4}
	cam.Yaw = 10
	cam.Pitch = 25

	view := cam.GetViewMatrix()

	eye := view.Mul4x1(cam.Position.Vec4(1))
	assertVec3InDelta(t, mgl32.Vec3{}, eye.Vec3(), 1e-4)

	ahead := view.Mul4x1(cam.Position.Add(cam.Direction()).Vec4(1))
	assertVec3InDelta(t, mgl32.Vec3{0, 0, -1}, ahead.Vec3(), 1e-4)
}

func TestProjection_Resize(t *testing.T) {
	proj := NewProjection(45, 0.1, 100, 2560, 1440)
	before := proj.Matrix()
	assert.InDelta(t, 2560.0/1440.0, proj.Aspect, eps)

	cam := NewCameraState()
	view := cam.GetViewMatrix()

	proj.Resize(800, 800)
	assert.InDelta(t, 1.0, proj.Aspect, eps)
	assert.NotEqual(t, before, proj.Matrix())
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100), proj.Matrix())
	assert.Equal(t, view, cam.GetViewMatrix())
}

func TestProjection_ZeroSizeKeepsAspect(t *testing.T) {
	proj := NewProjection(45, 0.1, 100, 1600, 900)
	m := proj.Matrix()
	proj.Resize(0, 0)
	assert.Equal(t, m, proj.Matrix())
}
