// Package firing computes per-frame point and synapse colours from region
// activation, the ambient pulse and decaying firing pulses, and drives the
// ambient random firing.
package firing

import (
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
	"github.com/Acam5878/path-of-a-genius/internal/engine/pointbatch"
)

// Options is the externally supplied render state. It is replaced wholesale
// on every update, never merged.
type Options struct {
	ActiveRegions brain.RegionSet
	IsLocked      bool
}

// Config tunes pulses and ambient firing.
type Config struct {
	AmbientInterval time.Duration
	Decay           float32 // fire level lost per frame
	SampleFraction  float32 // share of a region's points hit by one firing
	ActivePick      float32 // chance an ambient tick fires an active region
	ActiveIntensity float32
	IdleIntensity   float32
	LockedIntensity float32
}

// DefaultConfig returns the standard firing tuning.
func DefaultConfig() Config {
	return Config{
		AmbientInterval: 700 * time.Millisecond,
		Decay:           0.022,
		SampleFraction:  0.25,
		ActivePick:      0.4,
		ActiveIntensity: 0.6,
		IdleIntensity:   0.3,
		LockedIntensity: 0.15,
	}
}

// Engine owns the mutable fire levels of a point cloud. Step, FireRegion and
// AmbientFire must run on the frame thread; SetOptions may be called from
// any goroutine.
type Engine struct {
	cfg    Config
	points []brain.Point
	conns  []brain.Connection
	rng    *rand.Rand

	colors   []colorful.Color // point index -> region base colour
	byRegion map[brain.RegionKey][]int

	opts atomic.Pointer[Options]
}

// New creates an engine over points, which it mutates in place.
func New(cfg Config, points []brain.Point, conns []brain.Connection, rng *rand.Rand) *Engine {
	e := &Engine{
		cfg:      cfg,
		points:   points,
		conns:    conns,
		rng:      rng,
		colors:   make([]colorful.Color, len(points)),
		byRegion: make(map[brain.RegionKey][]int, brain.RegionCount()),
	}
	for i, p := range points {
		if r, ok := brain.Lookup(p.Region); ok {
			e.colors[i] = r.BaseColor
		}
		e.byRegion[p.Region] = append(e.byRegion[p.Region], i)
	}
	e.opts.Store(&Options{})
	return e
}

// SetOptions swaps in a new options value. The region set is copied so later
// caller mutations cannot leak into a frame.
func (e *Engine) SetOptions(o Options) {
	active := make(brain.RegionSet, len(o.ActiveRegions))
	for k := range o.ActiveRegions {
		active.Add(k)
	}
	e.opts.Store(&Options{ActiveRegions: active, IsLocked: o.IsLocked})
}

// Options returns the options currently in effect.
func (e *Engine) Options() Options {
	return *e.opts.Load()
}

// IsActive reports whether point i belongs to an active region under the
// current options.
func (e *Engine) IsActive(i int) bool {
	return e.opts.Load().ActiveRegions.Has(e.points[i].Region)
}

// FireRegion pulses a random ~SampleFraction subset of the region's points,
// each to intensity·(0.7 + 0.3u). It returns how many points were pulsed;
// unknown keys pulse nothing.
func (e *Engine) FireRegion(key brain.RegionKey, intensity float32) int {
	fired := 0
	for _, i := range e.byRegion[key] {
		if e.rng.Float32() >= e.cfg.SampleFraction {
			continue
		}
		level := intensity * (0.7 + 0.3*e.rng.Float32())
		e.points[i].FireLevel = min(max(level, 0), 1)
		fired++
	}
	return fired
}

// AmbientFire is the ambient timer tick. With active regions present it
// usually fires one of them; otherwise, and the rest of the time, it fires a
// random catalog region at low intensity.
func (e *Engine) AmbientFire() (brain.RegionKey, float32) {
	opts := e.opts.Load()

	if active := opts.ActiveRegions.Sorted(); len(active) > 0 && e.rng.Float32() < e.cfg.ActivePick {
		key := active[e.rng.IntN(len(active))]
		e.FireRegion(key, e.cfg.ActiveIntensity)
		return key, e.cfg.ActiveIntensity
	}

	intensity := e.cfg.IdleIntensity
	if opts.IsLocked {
		intensity = e.cfg.LockedIntensity
	}
	key := brain.At(e.rng.IntN(brain.RegionCount())).Key
	e.FireRegion(key, intensity)
	return key, intensity
}

// Step writes this frame's colours into b and decays every fire level by
// one frame. t is the elapsed time in seconds.
func (e *Engine) Step(t float32, b *pointbatch.Batch) {
	opts := e.opts.Load()

	for i := range e.points {
		p := &e.points[i]
		active := opts.ActiveRegions.Has(p.Region)
		b.SetPointColor(i, PointColor(e.colors[i], i, p.FireLevel, active, opts.IsLocked, t))

		if p.FireLevel > 0 {
			p.FireLevel = max(p.FireLevel-e.cfg.Decay, 0)
		}
	}

	for k, c := range e.conns {
		activeA := opts.ActiveRegions.Has(e.points[c.A].Region)
		activeB := opts.ActiveRegions.Has(e.points[c.B].Region)
		b.SetLineColor(k, ConnectionColor(c, e.colors[c.A], e.colors[c.B], activeA, activeB, opts.IsLocked, t))
	}
}
