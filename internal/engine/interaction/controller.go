// Package interaction turns pointer drags into damped yaw/pitch rotation,
// runs the idle auto-rotation, and tells taps apart from drags.
package interaction

import (
	"time"

	"github.com/chewxy/math32"

	"github.com/Acam5878/path-of-a-genius/internal/engine/timer"
)

// Config holds drag and auto-rotation tuning.
type Config struct {
	DragThreshold   float32       // pixels a single move must exceed to count as a drag
	YawPerPixel     float32       // radians of yaw per horizontal pixel
	PitchPerPixel   float32       // radians of pitch per vertical pixel
	PitchLimit      float32       // |targetRotX| clamp, radians
	ResumeDelay     time.Duration // idle time after release before auto-rotate resumes
	AutoRotateSpeed float32       // radians of yaw per frame
	Damping         float32       // fraction of the remaining distance covered per frame
}

// DefaultConfig returns the standard interaction tuning.
func DefaultConfig() Config {
	return Config{
		DragThreshold:   2,
		YawPerPixel:     0.009,
		PitchPerPixel:   0.007,
		PitchLimit:      0.75,
		ResumeDelay:     3 * time.Second,
		AutoRotateSpeed: 0.0025,
		Damping:         0.055,
	}
}

// Controller tracks rotation targets and gesture state. All methods must be
// called from the frame thread.
type Controller struct {
	cfg    Config
	timers *timer.Scheduler

	rotX, rotY             float32
	targetRotX, targetRotY float32

	dragging   bool
	hasDragged bool
	autoRotate bool
	lastX      float32
	lastY      float32

	resume timer.ID
}

// New creates a controller that starts auto-rotating. Its resume cooldown is
// scheduled on timers.
func New(cfg Config, timers *timer.Scheduler) *Controller {
	return &Controller{
		cfg:        cfg,
		timers:     timers,
		autoRotate: true,
	}
}

// PointerDown starts a gesture: auto-rotation stops and any pending resume
// is cancelled.
func (c *Controller) PointerDown(x, y float32) {
	c.dragging = true
	c.autoRotate = false
	c.hasDragged = false
	c.cancelResume()
	c.lastX, c.lastY = x, y
}

// PointerMove accumulates rotation targets while a gesture is active.
func (c *Controller) PointerMove(x, y float32) {
	if !c.dragging {
		return
	}
	dx := x - c.lastX
	dy := y - c.lastY
	if math32.Abs(dx) > c.cfg.DragThreshold || math32.Abs(dy) > c.cfg.DragThreshold {
		c.hasDragged = true
	}

	c.targetRotY += dx * c.cfg.YawPerPixel
	c.targetRotX = clamp(c.targetRotX+dy*c.cfg.PitchPerPixel, -c.cfg.PitchLimit, c.cfg.PitchLimit)
	c.lastX, c.lastY = x, y
}

// PointerUp ends the gesture and starts the auto-rotate cooldown.
func (c *Controller) PointerUp() {
	if !c.dragging {
		return
	}
	c.dragging = false
	c.cancelResume()
	c.resume = c.timers.After(c.cfg.ResumeDelay, func() {
		c.resume = 0
		if !c.dragging {
			c.autoRotate = true
		}
	})
}

// Step advances one frame: idle spin, then exponential smoothing of the
// visible rotation toward its targets.
func (c *Controller) Step() {
	if c.autoRotate {
		c.targetRotY += c.cfg.AutoRotateSpeed
	}
	c.rotY += (c.targetRotY - c.rotY) * c.cfg.Damping
	c.rotX += (c.targetRotX - c.rotX) * c.cfg.Damping
}

// Stop cancels the pending resume timer.
func (c *Controller) Stop() {
	c.cancelResume()
}

func (c *Controller) cancelResume() {
	if c.resume != 0 {
		c.timers.Cancel(c.resume)
		c.resume = 0
	}
}

// Rotation returns the current (damped) pitch and yaw.
func (c *Controller) Rotation() (x, y float32) {
	return c.rotX, c.rotY
}

// Target returns the pitch and yaw the rotation is easing toward.
func (c *Controller) Target() (x, y float32) {
	return c.targetRotX, c.targetRotY
}

// HasDragged reports whether the most recent gesture moved past the drag
// threshold. It stays latched until the next PointerDown.
func (c *Controller) HasDragged() bool { return c.hasDragged }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// AutoRotating reports whether the idle spin is running.
func (c *Controller) AutoRotating() bool { return c.autoRotate }

// ResumePending reports whether the auto-rotate cooldown is running.
func (c *Controller) ResumePending() bool { return c.resume != 0 }

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
