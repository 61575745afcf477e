package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Byte offsets into the point pass uniform block. They mirror
// struct Uniforms in points.wgsl.
const (
	offsetView       = 0
	offsetProjection = 64
	offsetCameraPos  = 128
	offsetColor      = 144
	offsetViewport   = 160
	offsetMinSize    = 168
	offsetMaxSize    = 172

	UniformSize = 256
)

// PointUniforms is the per-frame state the point pass reads.
type PointUniforms struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
	CameraPos  mgl32.Vec3
	Color      [4]float32
	Viewport   [2]float32
	MinSize    float32
	MaxSize    float32
}

// Pack lays the uniforms out little-endian in a UniformSize block.
func (u PointUniforms) Pack() []byte {
	buf := make([]byte, UniformSize)

	putF32 := func(offset int, v float32) {
		binary.LittleEndian.PutUint32(buf[offset:], math.Float32bits(v))
	}
	writeMat := func(offset int, mat mgl32.Mat4) {
		// mgl32 matrices are column-major like WGSL's mat4x4.
		for i, v := range mat {
			putF32(offset+i*4, v)
		}
	}

	writeMat(offsetView, u.View)
	writeMat(offsetProjection, u.Projection)

	putF32(offsetCameraPos, u.CameraPos[0])
	putF32(offsetCameraPos+4, u.CameraPos[1])
	putF32(offsetCameraPos+8, u.CameraPos[2])
	putF32(offsetCameraPos+12, 1)

	for i, c := range u.Color {
		putF32(offsetColor+i*4, c)
	}

	putF32(offsetViewport, u.Viewport[0])
	putF32(offsetViewport+4, u.Viewport[1])
	putF32(offsetMinSize, u.MinSize)
	putF32(offsetMaxSize, u.MaxSize)

	return buf
}
