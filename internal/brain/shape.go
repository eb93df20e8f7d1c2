package brain

import (
	"errors"
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Object space: +X right, +Y superior, -Z anterior (face), +Z posterior.

// DefaultPointCount is the number of points in a standard brain.
const DefaultPointCount = 5000

// ErrInvalidCount is returned when a non-positive point count is requested.
var ErrInvalidCount = errors.New("brain: point count must be positive")

// Point is one particle of the brain cloud. Position, Region and BaseSize
// are fixed at generation; FireLevel is the only mutable field.
type Point struct {
	Position  mgl32.Vec3
	Region    RegionKey
	BaseSize  float32
	FireLevel float32 // [0, 1]
}

// Cloud is a generated point set.
type Cloud struct {
	Points []Point
	// Unclassified counts points that matched no region predicate and were
	// labelled with the fallback region.
	Unclassified int
}

// ellipsoid is an axis-aligned implicit surface: value <= 1 inside.
type ellipsoid struct {
	center mgl32.Vec3
	radius mgl32.Vec3
}

func (e ellipsoid) value(p mgl32.Vec3) float32 {
	dx := (p[0] - e.center[0]) / e.radius[0]
	dy := (p[1] - e.center[1]) / e.radius[1]
	dz := (p[2] - e.center[2]) / e.radius[2]
	return dx*dx + dy*dy + dz*dz
}

func (e ellipsoid) shrink(f float32) ellipsoid {
	return ellipsoid{center: e.center, radius: e.radius.Mul(f)}
}

const (
	coreScale      = 0.72
	coreRejectProb = 0.72
)

var (
	leftHemisphere  = ellipsoid{center: mgl32.Vec3{-0.32, 0.05, 0}, radius: mgl32.Vec3{0.5, 0.58, 0.85}}
	rightHemisphere = ellipsoid{center: mgl32.Vec3{0.32, 0.05, 0}, radius: mgl32.Vec3{0.5, 0.58, 0.85}}
	cerebellumShape = ellipsoid{center: mgl32.Vec3{0, -0.48, 0.55}, radius: mgl32.Vec3{0.5, 0.25, 0.3}}

	leftCore  = leftHemisphere.shrink(coreScale)
	rightCore = rightHemisphere.shrink(coreScale)

	// Sampling box; encloses all three ellipsoids with a small margin.
	boxMin = mgl32.Vec3{-0.85, -0.76, -0.88}
	boxMax = mgl32.Vec3{0.85, 0.66, 0.88}
)

// Generate rejection-samples exactly n points inside the brain volume, with
// interior candidates thinned so the cortex shell reads denser than the core.
func Generate(n int, rng *rand.Rand) (*Cloud, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	cloud := &Cloud{Points: make([]Point, 0, n)}
	span := boxMax.Sub(boxMin)

	for len(cloud.Points) < n {
		p := mgl32.Vec3{
			boxMin[0] + rng.Float32()*span[0],
			boxMin[1] + rng.Float32()*span[1],
			boxMin[2] + rng.Float32()*span[2],
		}
		if !Inside(p) {
			continue
		}
		if (leftCore.value(p) < 1 || rightCore.value(p) < 1) && rng.Float32() < coreRejectProb {
			continue
		}

		key, ok := Classify(p)
		if !ok {
			cloud.Unclassified++
		}
		cloud.Points = append(cloud.Points, Point{
			Position: Fold(p),
			Region:   key,
			BaseSize: 0.5 + rng.Float32()*1.4,
		})
	}

	return cloud, nil
}

// Inside reports whether p lies within either hemisphere or the cerebellum.
func Inside(p mgl32.Vec3) bool {
	hemi := math32.Min(leftHemisphere.value(p), rightHemisphere.value(p))
	return hemi <= 1 || cerebellumShape.value(p) <= 1
}

// Fold displaces p by a fixed sinusoidal ripple so the ellipsoid surface
// reads as gyri and sulci.
func Fold(p mgl32.Vec3) mgl32.Vec3 {
	x, y, z := p[0], p[1], p[2]
	fold := math32.Sin(9*x+6*z)*0.035 + math32.Cos(8*y+5*x)*0.025
	return mgl32.Vec3{x + fold, y + fold*0.5, z}
}

// Classify labels an unfolded position. Predicates are evaluated in order and
// the first match wins; ok is false when nothing matched, in which case the
// prefrontal region is returned. Inside the volume the bands tile everything
// except their shared seams.
func Classify(p mgl32.Vec3) (key RegionKey, ok bool) {
	x, y, z := p[0], p[1], p[2]
	ax := math32.Abs(x)

	switch {
	case z < -0.55 && y > -0.05:
		return Prefrontal, true
	case x < -0.3 && z >= -0.55 && z < -0.15 && y > -0.3 && y < 0.15:
		return Broca, true
	case x > 0.3 && z >= -0.55 && z < -0.15 && y > -0.3 && y < 0.15:
		return Wernicke, true
	case ax > 0.3 && y > 0.2 && z >= -0.15 && z < 0.55:
		return Parietal, true
	case ax >= 0.4 && y < -0.05 && z > -0.55 && z < 0.45:
		return Temporal, true
	case z > 0.45 && y > -0.2:
		return Occipital, true
	case ax < 0.15 && z < -0.15 && y > -0.2:
		return AnteriorCingulate, true
	case ax < 0.4 && y < -0.05 && z > -0.3 && z < 0.3:
		return Hippocampus, true
	case z < -0.15:
		return Frontal, true
	case y > -0.05 && z >= -0.15 && z < 0.05:
		return Motor, true
	case y > -0.2 && z >= 0.05 && z < 0.55:
		return Somatosensory, true
	case y < -0.2 && z > 0.2:
		return Cerebellum, true
	}
	// TODO: give unmatched points their own sentinel region once the UI can
	// render one; kept as prefrontal for colour parity with existing screens.
	return Prefrontal, false
}
