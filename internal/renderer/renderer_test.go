package renderer

import (
	"errors"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
)

const frame = time.Second / 60

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Points = 2000
	cfg.Connections = 120
	cfg.Seed = 42
	return cfg
}

func newTestRenderer(t *testing.T) (*Renderer, *fakeHost) {
	t.Helper()
	host := newFakeHost(800, 600)
	r, err := New(host, testConfig())
	require.NoError(t, err)
	t.Cleanup(r.Dispose)
	return r, host
}

func TestNewZeroSize(t *testing.T) {
	for _, size := range [][2]int{{0, 600}, {800, 0}, {0, 0}, {-5, 10}} {
		host := newFakeHost(size[0], size[1])
		_, err := New(host, testConfig())
		assert.ErrorIs(t, err, ErrZeroSize)
		assert.Zero(t, host.creates)
	}
}

func TestNewNoContext(t *testing.T) {
	host := newFakeHost(800, 600)
	host.createErr = errors.New("no GL")
	_, err := New(host, testConfig())
	assert.ErrorIs(t, err, ErrNoContext)
	assert.Zero(t, host.listenerCount())
	assert.Empty(t, host.frames)
}

func TestNewUploadFailureReleasesSurface(t *testing.T) {
	host := newFakeHost(800, 600)
	host.surf.uploadErr = errors.New("out of memory")
	_, err := New(host, testConfig())
	require.Error(t, err)
	assert.Equal(t, 1, host.surf.released)
	assert.Zero(t, host.listenerCount())
}

func TestNewInvalidPointCount(t *testing.T) {
	cfg := testConfig()
	cfg.Points = 0
	_, err := New(newFakeHost(800, 600), cfg)
	assert.ErrorIs(t, err, brain.ErrInvalidCount)
}

func TestNewBuildsAndWires(t *testing.T) {
	r, host := newTestRenderer(t)

	assert.Len(t, r.Points(), 2000)
	assert.LessOrEqual(t, len(r.Connections()), 120)
	require.NotNil(t, host.surf.uploaded)
	assert.Equal(t, 2000, host.surf.uploaded.PointCount())

	assert.Equal(t, 2, host.target.Len())
	assert.Equal(t, 5, host.global.Len())
	assert.Len(t, host.frames, 1)
	assert.Equal(t, 1, r.timers.Len(), "ambient timer")
}

func TestSameSeedSameBrain(t *testing.T) {
	a, _ := newTestRenderer(t)
	b, _ := newTestRenderer(t)
	assert.Equal(t, a.Points(), b.Points())
	assert.Equal(t, a.Connections(), b.Connections())
}

func TestFrameLoop(t *testing.T) {
	r, host := newTestRenderer(t)

	for range 3 {
		assert.Equal(t, 1, host.runFrames(frame))
	}
	assert.Equal(t, 3, host.surf.updates)
	require.Len(t, host.surf.frames, 3)
	assert.Len(t, host.frames, 1, "next frame requested")

	_, rotY := r.Rotation()
	assert.Positive(t, rotY, "idle spin")
}

func TestDisposeReleasesEverything(t *testing.T) {
	host := newFakeHost(800, 600)
	r, err := New(host, testConfig())
	require.NoError(t, err)

	// Leave a resume timer pending too.
	host.target.Dispatch(input.Event{Kind: input.KindPointerDown, X: 10, Y: 10})
	host.global.Dispatch(input.Event{Kind: input.KindPointerUp})
	require.Equal(t, 2, r.timers.Len())

	r.Dispose()
	assert.Zero(t, host.listenerCount())
	assert.Empty(t, host.frames)
	assert.Zero(t, r.timers.Len())
	assert.Equal(t, 1, host.surf.released)

	r.Dispose()
	assert.Equal(t, 1, host.surf.released)

	// Events and ticks after dispose are inert.
	host.global.Dispatch(input.Event{Kind: input.KindResize, Width: 10, Height: 10})
	r.Tick(time.Second)
	r.TriggerRegionFire(brain.Occipital, 1)
	assert.Empty(t, host.surf.resizes)
}

func TestHasDragged(t *testing.T) {
	r, host := newTestRenderer(t)

	gesture := func(dx, dy float32) bool {
		host.target.Dispatch(input.Event{Kind: input.KindPointerDown, X: 100, Y: 100})
		host.global.Dispatch(input.Event{Kind: input.KindPointerMove, X: 100 + dx, Y: 100 + dy})
		host.global.Dispatch(input.Event{Kind: input.KindPointerUp, X: 100 + dx, Y: 100 + dy})
		return r.HasDragged()
	}

	assert.False(t, gesture(1, 1), "tap")
	assert.False(t, gesture(2, -2), "exactly at threshold")
	assert.True(t, gesture(5, 0))
	assert.True(t, gesture(0, -3))
	assert.False(t, gesture(0, 0), "new press resets the flag")
}

func TestTouchGesture(t *testing.T) {
	r, host := newTestRenderer(t)
	host.target.Dispatch(input.Event{Kind: input.KindTouchStart, X: 50, Y: 50})
	host.global.Dispatch(input.Event{Kind: input.KindTouchMove, X: 80, Y: 50})
	host.global.Dispatch(input.Event{Kind: input.KindTouchEnd})
	assert.True(t, r.HasDragged())
	assert.False(t, r.ctrl.Dragging())
}

func TestAutoRotateResumes(t *testing.T) {
	r, host := newTestRenderer(t)
	host.target.Dispatch(input.Event{Kind: input.KindPointerDown, X: 0, Y: 0})
	assert.False(t, r.ctrl.AutoRotating())
	host.global.Dispatch(input.Event{Kind: input.KindPointerUp})

	r.Tick(2 * time.Second)
	assert.False(t, r.ctrl.AutoRotating())
	r.Tick(time.Second)
	assert.True(t, r.ctrl.AutoRotating())
}

func TestResizeSkipsZero(t *testing.T) {
	_, host := newTestRenderer(t)
	host.global.Dispatch(input.Event{Kind: input.KindResize, Width: 0, Height: 480})
	host.global.Dispatch(input.Event{Kind: input.KindResize, Width: 640, Height: 0})
	assert.Empty(t, host.surf.resizes)

	host.global.Dispatch(input.Event{Kind: input.KindResize, Width: 640, Height: 480})
	assert.Equal(t, [][2]int{{640, 480}}, host.surf.resizes)
}

func firstInRegion(t *testing.T, r *Renderer, key brain.RegionKey) int {
	t.Helper()
	for i, p := range r.Points() {
		if p.Region == key {
			return i
		}
	}
	t.Fatalf("no point in %s", key)
	return -1
}

func TestUpdateOptionsTakesEffectImmediately(t *testing.T) {
	r, _ := newTestRenderer(t)
	occ := firstInRegion(t, r, brain.Occipital)
	motor := firstInRegion(t, r, brain.Motor)

	assert.False(t, r.IsActive(occ))
	r.UpdateOptions(Options{ActiveRegions: brain.NewRegionSet(brain.Occipital)})
	assert.True(t, r.IsActive(occ))
	assert.False(t, r.IsActive(motor))

	r.UpdateOptions(Options{ActiveRegions: brain.NewRegionSet(brain.Motor), IsLocked: true})
	assert.False(t, r.IsActive(occ))
	assert.True(t, r.IsActive(motor))
	assert.True(t, r.Options().IsLocked)
}

func TestTriggerRegionFire(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.UpdateOptions(Options{ActiveRegions: brain.NewRegionSet(brain.Occipital)})
	r.TriggerRegionFire(brain.Occipital, DefaultFireIntensity)

	var fired []int
	for i, p := range r.Points() {
		if p.FireLevel > 0 {
			assert.Equal(t, brain.Occipital, p.Region)
			assert.GreaterOrEqual(t, p.FireLevel, float32(0.7))
			fired = append(fired, i)
		}
	}
	require.NotEmpty(t, fired)

	before := r.Points()[fired[0]].FireLevel
	r.Tick(frame)
	assert.InDelta(t, before-0.022, r.Points()[fired[0]].FireLevel, 1e-6)
}

func TestTriggerRegionFireSampling(t *testing.T) {
	cfg := testConfig()
	cfg.Points = 500
	r, err := New(newFakeHost(800, 600), cfg)
	require.NoError(t, err)
	t.Cleanup(r.Dispose)

	points := r.Points()
	occipital := 0
	for _, p := range points {
		if p.Region == brain.Occipital {
			occipital++
		}
	}
	require.Positive(t, occipital)

	var sum float64
	for range 100 {
		for i := range points {
			points[i].FireLevel = 0
		}
		r.TriggerRegionFire(brain.Occipital, DefaultFireIntensity)

		lit := 0
		for _, p := range points {
			if p.FireLevel > 0 {
				lit++
			}
		}
		assert.GreaterOrEqual(t, lit, 1)
		assert.LessOrEqual(t, lit, occipital/2+1)
		sum += float64(lit) / float64(occipital)
	}
	mean := sum / 100
	assert.GreaterOrEqual(t, mean, 0.10)
	assert.LessOrEqual(t, mean, 0.45)
}

func TestFrameStepIsCapped(t *testing.T) {
	r, host := newTestRenderer(t)

	// A ten second stall reaches the renderer as a single frame.
	require.Equal(t, 1, host.runFrames(10*time.Second))
	assert.Equal(t, MaxFrameStep, r.timers.Now())
	for _, p := range r.Points() {
		assert.Zero(t, p.FireLevel, "no ambient firing replayed")
	}
}

func TestTriggerUnknownRegion(t *testing.T) {
	r, _ := newTestRenderer(t)
	r.TriggerRegionFire("pineal", 1)
	for _, p := range r.Points() {
		assert.Zero(t, p.FireLevel)
	}
}

func TestAmbientFiring(t *testing.T) {
	r, _ := newTestRenderer(t)

	lit := false
	for range 10 {
		r.Tick(700 * time.Millisecond)
		for _, p := range r.Points() {
			if p.FireLevel > 0 {
				lit = true
			}
		}
	}
	assert.True(t, lit)
}

func TestStats(t *testing.T) {
	r, _ := newTestRenderer(t)
	s := r.Stats()

	assert.Equal(t, 2000, s.Points)
	assert.Equal(t, len(r.Connections()), s.Connections)
	total := 0
	for key, n := range s.ByRegion {
		_, ok := brain.Lookup(key)
		assert.True(t, ok)
		total += n
	}
	assert.Equal(t, s.Points, total)
	assert.LessOrEqual(t, s.Unclassified, s.Points/50)
	assert.LessOrEqual(t, s.CrossRegion, s.Connections)
}

// project returns the pixel a model-space point lands on.
func project(r *Renderer, p mgl32.Vec3) (float32, float32) {
	clip := r.mvp().Mul4x1(p.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	w, h := r.cam.Viewport()
	return (ndc.X() + 1) / 2 * float32(w), (1 - ndc.Y()) / 2 * float32(h)
}

func TestPickRegion(t *testing.T) {
	r, host := newTestRenderer(t)
	for range 30 {
		r.Tick(frame) // rotate a little so picking must follow the model
	}

	target := r.Points()[firstInRegion(t, r, brain.Cerebellum)].Position
	x, y := project(r, target)
	key, ok := r.PickRegion(x, y)
	require.True(t, ok)
	_, known := brain.Lookup(key)
	assert.True(t, known)

	_, ok = r.PickRegion(0, 0)
	assert.False(t, ok, "corner is empty space")

	// Picking follows a resize.
	host.global.Dispatch(input.Event{Kind: input.KindResize, Width: 1600, Height: 1200})
	_, ok = r.PickRegion(2*x, 2*y)
	assert.True(t, ok)
}
