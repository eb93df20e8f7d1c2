package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestSetViewportSkipsZero(t *testing.T) {
	c := New(800, 400)
	assert.InDelta(t, 2.0, c.Aspect(), 1e-6)

	assert.False(t, c.SetViewport(0, 400))
	assert.False(t, c.SetViewport(800, 0))
	assert.False(t, c.SetViewport(-1, -1))
	w, h := c.Viewport()
	assert.Equal(t, 800, w)
	assert.Equal(t, 400, h)

	assert.True(t, c.SetViewport(300, 600))
	assert.InDelta(t, 0.5, c.Aspect(), 1e-6)
}

func TestZeroSizedCameraStaysFinite(t *testing.T) {
	c := New(0, 0)
	assert.InDelta(t, 1.0, c.Aspect(), 1e-6)
	p := c.ProjectionMatrix()
	for _, v := range p {
		assert.False(t, v != v, "NaN in projection")
	}
}

func TestViewMatrixPutsOriginInFront(t *testing.T) {
	c := New(640, 480)
	o := c.ViewMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, -3.6, o.Z(), 1e-5)
	assert.InDelta(t, 0, o.X(), 1e-5)
	assert.InDelta(t, 0, o.Y(), 1e-5)
}

func TestPointScaleFollowsHeight(t *testing.T) {
	c := New(640, 480)
	small := c.PointScale()
	c.SetViewport(640, 960)
	assert.InDelta(t, 2*small, c.PointScale(), 1e-4)
}
