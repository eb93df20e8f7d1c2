// Package window hosts the viewer in an SDL2 window with an OpenGL 4.1 core
// context. It turns SDL events into input events for two listener targets
// (the drawable area and the whole window) and runs requested frame
// callbacks once per loop iteration.
package window

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Acam5878/path-of-a-genius/internal/engine/glsurface"
	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
	"github.com/Acam5878/path-of-a-genius/internal/engine/surface"
	"github.com/Acam5878/path-of-a-genius/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

type pendingFrame struct {
	id surface.FrameID
	cb surface.FrameFunc
}

// Window wraps an SDL2 window and its OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	container *input.Dispatcher
	global    *input.Dispatcher

	nextFrame surface.FrameID
	frames    []pendingFrame
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config:    cfg,
		container: input.NewDispatcher(),
		global:    input.NewDispatcher(),
	}

	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	// Touch input arrives as finger events; drop the synthesized mouse copies.
	sdl.SetHint(sdl.HINT_TOUCH_MOUSE_EVENTS, "0")

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	interval := 0
	if cfg.VSync {
		interval = 1
	}
	if err := sdl.GLSetSwapInterval(interval); err != nil {
		logger.Warn("failed to set swap interval", zap.Int("interval", interval), zap.Error(err))
	}

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// Size returns the drawable size in pixels.
func (w *Window) Size() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// Target is the drawable area. Presses that start a gesture land here.
func (w *Window) Target() input.EventTarget { return w.container }

// Global is the whole window. Moves, releases, keys and resizes land here so
// a gesture keeps tracking after the pointer leaves the drawable.
func (w *Window) Global() input.EventTarget { return w.global }

// CreateSurface creates the OpenGL surface on this window's context.
func (w *Window) CreateSurface(width, height int) (surface.Surface, error) {
	if err := w.sdlWindow.GLMakeCurrent(w.glContext); err != nil {
		return nil, fmt.Errorf("make context current: %w", err)
	}
	s, err := glsurface.New(width, height)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RequestFrame schedules cb for the next RunFrames.
func (w *Window) RequestFrame(cb surface.FrameFunc) surface.FrameID {
	w.nextFrame++
	w.frames = append(w.frames, pendingFrame{id: w.nextFrame, cb: cb})
	return w.nextFrame
}

// CancelFrame drops a pending callback. Unknown IDs are ignored.
func (w *Window) CancelFrame(id surface.FrameID) {
	for i, f := range w.frames {
		if f.id == id {
			w.frames = append(w.frames[:i], w.frames[i+1:]...)
			return
		}
	}
}

// RunFrames runs every callback pending at the time of the call. Callbacks
// requested while running wait for the next call.
func (w *Window) RunFrames(dt time.Duration) int {
	pending := w.frames
	w.frames = nil
	for _, f := range pending {
		f.cb(dt)
	}
	return len(pending)
}

// Poll drains the SDL event queue, dispatching each event to the container
// or global listeners. Pointer coordinates are reported in drawable pixels,
// the same space as Size and resize events. It returns true once a quit was
// requested.
func (w *Window) Poll() bool {
	quit := false
	dw, dh := w.Size()
	sx, sy := w.pixelScale()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		ev, ok := Translate(event, dw, dh)
		if !ok {
			continue
		}
		switch ev.Kind {
		case input.KindResize:
			dw, dh = w.Size()
			sx, sy = w.pixelScale()
			ev.Width, ev.Height = dw, dh
		case input.KindPointerDown, input.KindPointerMove, input.KindPointerUp:
			ev.X *= sx
			ev.Y *= sy
		}
		w.Dispatch(ev)
		if ev.Kind == input.KindQuit {
			quit = true
		}
	}
	return quit
}

// pixelScale is the drawable-to-window size ratio (2 on most HiDPI screens).
func (w *Window) pixelScale() (float32, float32) {
	ww, wh := w.sdlWindow.GetSize()
	dw, dh := w.Size()
	if ww <= 0 || wh <= 0 {
		return 1, 1
	}
	return float32(dw) / float32(ww), float32(dh) / float32(wh)
}

// Dispatch routes ev to the target it belongs to.
func (w *Window) Dispatch(ev input.Event) {
	switch ev.Kind {
	case input.KindPointerDown, input.KindTouchStart:
		w.container.Dispatch(ev)
	default:
		w.global.Dispatch(ev)
	}
}

// ReadPixels reads the back buffer as bottom-up RGBA rows. Call it after
// drawing and before SwapBuffers.
func (w *Window) ReadPixels() ([]byte, int, int) {
	width, height := w.Size()
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return nil, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
