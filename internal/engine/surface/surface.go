// Package surface describes the drawable the renderer pushes its point and
// line batches to, and the per-frame transform both batches share.
package surface

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Acam5878/path-of-a-genius/internal/engine/pointbatch"
)

// BaseScale is the resting uniform scale of the brain model.
const BaseScale = 1.22

// Surface draws a point batch and its connection lines. Implementations own
// all GPU objects they allocate in Upload and free them in Release.
type Surface interface {
	// Upload sends geometry and initial colours. It is called once.
	Upload(b *pointbatch.Batch) error
	// UpdateColors re-sends the colour arrays.
	UpdateColors(b *pointbatch.Batch)
	Draw(f Frame)
	// Resize is only called with positive dimensions.
	Resize(width, height int)
	Release()
}

// Frame is the per-frame draw state.
type Frame struct {
	Model       mgl32.Mat4
	LineOpacity float32
}

// BreathScale is the uniform model scale at time t seconds.
func BreathScale(t float32) float32 {
	return BaseScale * (1 + math32.Sin(t*0.35)*0.01)
}

// LineOpacity is the global connection alpha at time t seconds.
func LineOpacity(t float32) float32 {
	return 0.15 + math32.Sin(t*0.6)*0.06
}

// ModelMatrix composes breathing scale with pitch (rotX) and yaw (rotY).
func ModelMatrix(rotX, rotY, t float32) mgl32.Mat4 {
	s := BreathScale(t)
	return mgl32.Scale3D(s, s, s).
		Mul4(mgl32.HomogRotate3DX(rotX)).
		Mul4(mgl32.HomogRotate3DY(rotY))
}

// NewFrame builds the frame for the given rotation at time t.
func NewFrame(rotX, rotY, t float32) Frame {
	return Frame{
		Model:       ModelMatrix(rotX, rotY, t),
		LineOpacity: LineOpacity(t),
	}
}
