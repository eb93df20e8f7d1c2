// Package renderer is the control surface of the brain viewer: it builds the
// point cloud, wires input and timers, animates every frame and tears it all
// down again on Dispose.
package renderer

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
	"github.com/Acam5878/path-of-a-genius/internal/engine/camera"
	"github.com/Acam5878/path-of-a-genius/internal/engine/firing"
	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
	"github.com/Acam5878/path-of-a-genius/internal/engine/interaction"
	"github.com/Acam5878/path-of-a-genius/internal/engine/picking"
	"github.com/Acam5878/path-of-a-genius/internal/engine/pointbatch"
	"github.com/Acam5878/path-of-a-genius/internal/engine/surface"
	"github.com/Acam5878/path-of-a-genius/internal/engine/timer"
	"github.com/Acam5878/path-of-a-genius/internal/logger"
)

var (
	// ErrNoContext is returned when the host cannot provide a drawing surface.
	ErrNoContext = errors.New("drawing context unavailable")
	// ErrZeroSize is returned when the host reports a non-positive size.
	ErrZeroSize = errors.New("container has zero size")
)

// DefaultFireIntensity is the intensity of a caller-triggered firing.
const DefaultFireIntensity float32 = 1.0

// MaxFrameStep caps the time a single host frame may advance the animation.
// A stalled loop resumes where it left off instead of replaying every missed
// ambient firing in one frame.
const MaxFrameStep = 100 * time.Millisecond

// PickRadius is how close, in model units, a pick ray must pass to a point.
const PickRadius = 0.05

// Host is the container the renderer is mounted in.
type Host interface {
	Size() (width, height int)
	// Target receives presses that start a gesture.
	Target() input.EventTarget
	// Global receives moves, releases and resizes.
	Global() input.EventTarget
	CreateSurface(width, height int) (surface.Surface, error)
	RequestFrame(cb surface.FrameFunc) surface.FrameID
	CancelFrame(id surface.FrameID)
}

// Options is the external render state: active regions and lock status.
type Options = firing.Options

// Config sizes the point cloud and tunes animation.
type Config struct {
	Points      int
	Connections int
	Seed        uint64 // 0 seeds from the clock
	Interaction interaction.Config
	Firing      firing.Config
}

// DefaultConfig returns the standard viewer settings.
func DefaultConfig() Config {
	return Config{
		Points:      brain.DefaultPointCount,
		Connections: brain.DefaultConnectionCount,
		Interaction: interaction.DefaultConfig(),
		Firing:      firing.DefaultConfig(),
	}
}

type registration struct {
	target input.EventTarget
	id     input.ListenerID
}

// Renderer is a live brain view. All methods except UpdateOptions must be
// called from the host's frame thread.
type Renderer struct {
	host Host
	surf surface.Surface
	log  *zap.Logger

	cloud     *brain.Cloud
	conns     []brain.Connection
	batch     *pointbatch.Batch
	positions []mgl32.Vec3
	cam       *camera.Camera // mirrors the surface camera for picking

	timers *timer.Scheduler
	ctrl   *interaction.Controller
	fire   *firing.Engine

	ambient   timer.ID
	frame     surface.FrameID
	listeners []registration
	elapsed   time.Duration
	disposed  bool
}

// New generates the brain, uploads it to a new surface on host and starts
// animating.
func New(host Host, cfg Config) (*Renderer, error) {
	width, height := host.Size()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrZeroSize, width, height)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1|1))

	cloud, err := brain.Generate(cfg.Points, rng)
	if err != nil {
		return nil, fmt.Errorf("generate brain: %w", err)
	}
	conns := brain.BuildConnections(cloud.Points, cfg.Connections, rng)

	surf, err := host.CreateSurface(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoContext, err)
	}

	r := &Renderer{
		host:   host,
		surf:   surf,
		log:    logger.Named("renderer"),
		cloud:  cloud,
		conns:  conns,
		batch:  pointbatch.New(cloud.Points, conns),
		cam:    camera.New(width, height),
		timers: timer.New(),
	}
	r.positions = make([]mgl32.Vec3, len(cloud.Points))
	for i, p := range cloud.Points {
		r.positions[i] = p.Position
	}
	r.ctrl = interaction.New(cfg.Interaction, r.timers)
	r.fire = firing.New(cfg.Firing, cloud.Points, conns, rng)
	r.fire.Step(0, r.batch)

	if err := surf.Upload(r.batch); err != nil {
		surf.Release()
		return nil, fmt.Errorf("upload batch: %w", err)
	}

	r.ambient = r.timers.Every(cfg.Firing.AmbientInterval, func() {
		key, intensity := r.fire.AmbientFire()
		r.log.Debug("ambient fire", zap.String("region", string(key)), zap.Float32("intensity", intensity))
	})
	r.listen()
	r.frame = host.RequestFrame(r.onFrame)

	r.log.Info("renderer created",
		zap.Int("points", len(cloud.Points)),
		zap.Int("connections", len(conns)),
		zap.Int("regions", brain.RegionCount()),
		zap.Int("unclassified", cloud.Unclassified),
		zap.Uint64("seed", seed),
		zap.Int("width", width),
		zap.Int("height", height),
	)
	return r, nil
}

func (r *Renderer) listen() {
	on := func(t input.EventTarget, kind input.Kind, h input.Handler) {
		r.listeners = append(r.listeners, registration{target: t, id: t.AddListener(kind, h)})
	}
	down := func(ev input.Event) { r.ctrl.PointerDown(ev.X, ev.Y) }
	move := func(ev input.Event) { r.ctrl.PointerMove(ev.X, ev.Y) }
	up := func(input.Event) { r.ctrl.PointerUp() }

	target, global := r.host.Target(), r.host.Global()
	on(target, input.KindPointerDown, down)
	on(target, input.KindTouchStart, down)
	on(global, input.KindPointerMove, move)
	on(global, input.KindTouchMove, move)
	on(global, input.KindPointerUp, up)
	on(global, input.KindTouchEnd, up)
	on(global, input.KindResize, func(ev input.Event) { r.resize(ev.Width, ev.Height) })
}

func (r *Renderer) resize(width, height int) {
	if width <= 0 || height <= 0 {
		r.log.Debug("zero-size resize skipped", zap.Int("width", width), zap.Int("height", height))
		return
	}
	r.cam.SetViewport(width, height)
	r.surf.Resize(width, height)
}

func (r *Renderer) onFrame(dt time.Duration) {
	r.frame = 0
	if r.disposed {
		return
	}
	r.Tick(min(dt, MaxFrameStep))
	r.draw()
	r.frame = r.host.RequestFrame(r.onFrame)
}

// Tick advances the animation by dt: timers, rotation, colours and fire
// decay. It does not draw.
func (r *Renderer) Tick(dt time.Duration) {
	if r.disposed {
		return
	}
	r.elapsed += dt
	r.timers.Advance(dt)
	r.ctrl.Step()
	r.fire.Step(r.seconds(), r.batch)
}

func (r *Renderer) draw() {
	r.surf.UpdateColors(r.batch)
	rotX, rotY := r.ctrl.Rotation()
	r.surf.Draw(surface.NewFrame(rotX, rotY, r.seconds()))
}

func (r *Renderer) seconds() float32 {
	return float32(r.elapsed.Seconds())
}

// UpdateOptions replaces the render options. It is safe to call from any
// goroutine; the next frame sees the new value.
func (r *Renderer) UpdateOptions(o Options) {
	r.fire.SetOptions(o)
}

// Options returns the render options in effect.
func (r *Renderer) Options() Options {
	return r.fire.Options()
}

// TriggerRegionFire pulses a sampled subset of the region's points. Unknown
// keys are ignored.
func (r *Renderer) TriggerRegionFire(key brain.RegionKey, intensity float32) {
	if r.disposed {
		return
	}
	if _, ok := brain.Lookup(key); !ok {
		r.log.Debug("fire on unknown region", zap.String("region", string(key)))
		return
	}
	n := r.fire.FireRegion(key, intensity)
	r.log.Debug("region fired", zap.String("region", string(key)), zap.Float32("intensity", intensity), zap.Int("points", n))
}

// PickRegion returns the region of the frontmost point under pixel (x, y),
// in the same coordinates as pointer events.
func (r *Renderer) PickRegion(x, y float32) (brain.RegionKey, bool) {
	i, ok := picking.Nearest(r.pickRay(x, y), r.positions, PickRadius)
	if !ok {
		return "", false
	}
	return r.cloud.Points[i].Region, true
}

func (r *Renderer) mvp() mgl32.Mat4 {
	rotX, rotY := r.ctrl.Rotation()
	return r.cam.ProjectionMatrix().
		Mul4(r.cam.ViewMatrix()).
		Mul4(surface.ModelMatrix(rotX, rotY, r.seconds()))
}

func (r *Renderer) pickRay(x, y float32) picking.Ray {
	w, h := r.cam.Viewport()
	return picking.ScreenToRay(x, y, float32(w), float32(h), r.mvp().Inv())
}

// HasDragged reports whether the latest gesture moved past the drag
// threshold. Check it on release to tell a tap from a drag.
func (r *Renderer) HasDragged() bool {
	return r.ctrl.HasDragged()
}

// IsActive reports whether point i is in an active region.
func (r *Renderer) IsActive(i int) bool {
	return r.fire.IsActive(i)
}

// Rotation returns the displayed pitch and yaw.
func (r *Renderer) Rotation() (x, y float32) {
	return r.ctrl.Rotation()
}

// Points returns the live point slice. Callers must not modify it.
func (r *Renderer) Points() []brain.Point {
	return r.cloud.Points
}

// Connections returns the synapse graph. Callers must not modify it.
func (r *Renderer) Connections() []brain.Connection {
	return r.conns
}

// Dispose stops the frame loop and timers, detaches every listener and
// releases the surface. Calling it again does nothing.
func (r *Renderer) Dispose() {
	if r.disposed {
		return
	}
	r.disposed = true

	if r.frame != 0 {
		r.host.CancelFrame(r.frame)
		r.frame = 0
	}
	r.ctrl.Stop()
	r.timers.Cancel(r.ambient)
	r.timers.Stop()

	for _, l := range r.listeners {
		l.target.RemoveListener(l.id)
	}
	r.listeners = nil

	r.surf.Release()
	r.log.Debug("renderer disposed")
}
