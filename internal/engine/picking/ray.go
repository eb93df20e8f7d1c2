// Package picking casts rays from screen pixels into the scene and finds the
// point a ray passes closest to.
package picking

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Ray represents a ray in 3D space with origin and normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// ScreenToRay converts pixel coordinates to a ray. invMVP is the inverse of
// projection·view·model, so the ray comes out in model space.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invMVP mgl32.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // flip Y

	near := unproject(invMVP, mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := unproject(invMVP, mgl32.Vec4{ndcX, ndcY, 1, 1})

	dir := far.Sub(near)
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	return Ray{Origin: near, Direction: dir}
}

func unproject(inv mgl32.Mat4, ndc mgl32.Vec4) mgl32.Vec3 {
	p := inv.Mul4x1(ndc)
	if p.W() != 0 {
		return p.Vec3().Mul(1 / p.W())
	}
	return p.Vec3()
}

// Closest returns how far along the ray the closest approach to p lies and
// the distance between them at that spot.
func (r Ray) Closest(p mgl32.Vec3) (along, dist float32) {
	along = p.Sub(r.Origin).Dot(r.Direction)
	return along, r.Origin.Add(r.Direction.Mul(along)).Sub(p).Len()
}

// Nearest returns the index of the point within radius of the ray that is
// closest to the ray origin. Points behind the origin are ignored.
func Nearest(r Ray, points []mgl32.Vec3, radius float32) (int, bool) {
	best := -1
	var bestAlong float32
	for i, p := range points {
		along, dist := r.Closest(p)
		if along < 0 || dist > radius {
			continue
		}
		if best < 0 || along < bestAlong {
			best, bestAlong = i, along
		}
	}
	return best, best >= 0
}
