// Package camera provides the fixed perspective camera the brain is viewed
// through. The model rotates; the camera never moves.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera looks from Eye toward the origin with +Y up.
type Camera struct {
	Eye  mgl32.Vec3
	FovY float32 // vertical field of view, radians
	Near float32
	Far  float32

	width, height int
}

// New creates a camera sized to width x height.
func New(width, height int) *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 0, 3.6},
		FovY:   mgl32.DegToRad(45),
		Near:   0.1,
		Far:    100,
		width:  1,
		height: 1,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport records a new drawable size. Non-positive sizes are ignored
// and report false, leaving the previous aspect in place.
func (c *Camera) SetViewport(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.width, c.height = width, height
	return true
}

// Viewport returns the last accepted drawable size.
func (c *Camera) Viewport() (int, int) {
	return c.width, c.height
}

// Aspect returns width / height.
func (c *Camera) Aspect() float32 {
	return float32(c.width) / float32(c.height)
}

// ViewMatrix returns the world-to-view transform.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns the perspective projection for the current aspect.
func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, c.Aspect(), c.Near, c.Far)
}

// PointScale converts a sprite's base size to pixels at unit view depth, so
// a sprite keeps the same share of the viewport across window sizes.
func (c *Camera) PointScale() float32 {
	return float32(c.height) / (2 * math32.Tan(c.FovY/2)) * 0.02
}
