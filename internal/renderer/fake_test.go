package renderer

import (
	"time"

	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
	"github.com/Acam5878/path-of-a-genius/internal/engine/pointbatch"
	"github.com/Acam5878/path-of-a-genius/internal/engine/surface"
)

type fakeSurface struct {
	uploaded  *pointbatch.Batch
	uploadErr error
	updates   int
	frames    []surface.Frame
	resizes   [][2]int
	released  int
}

func (s *fakeSurface) Upload(b *pointbatch.Batch) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploaded = b
	return nil
}

func (s *fakeSurface) UpdateColors(*pointbatch.Batch) { s.updates++ }
func (s *fakeSurface) Draw(f surface.Frame)           { s.frames = append(s.frames, f) }
func (s *fakeSurface) Resize(w, h int)                { s.resizes = append(s.resizes, [2]int{w, h}) }
func (s *fakeSurface) Release()                       { s.released++ }

type fakeHost struct {
	width, height int
	target        *input.Dispatcher
	global        *input.Dispatcher
	surf          *fakeSurface
	createErr     error
	creates       int

	nextFrame surface.FrameID
	frames    map[surface.FrameID]surface.FrameFunc
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{
		width:  w,
		height: h,
		target: input.NewDispatcher(),
		global: input.NewDispatcher(),
		surf:   &fakeSurface{},
		frames: map[surface.FrameID]surface.FrameFunc{},
	}
}

func (h *fakeHost) Size() (int, int)               { return h.width, h.height }
func (h *fakeHost) Target() input.EventTarget      { return h.target }
func (h *fakeHost) Global() input.EventTarget      { return h.global }
func (h *fakeHost) CancelFrame(id surface.FrameID) { delete(h.frames, id) }
func (h *fakeHost) listenerCount() int             { return h.target.Len() + h.global.Len() }

func (h *fakeHost) CreateSurface(int, int) (surface.Surface, error) {
	h.creates++
	if h.createErr != nil {
		return nil, h.createErr
	}
	return h.surf, nil
}

func (h *fakeHost) RequestFrame(cb surface.FrameFunc) surface.FrameID {
	h.nextFrame++
	h.frames[h.nextFrame] = cb
	return h.nextFrame
}

// runFrames runs the callbacks pending now, like one host loop iteration.
func (h *fakeHost) runFrames(dt time.Duration) int {
	pending := h.frames
	h.frames = map[surface.FrameID]surface.FrameFunc{}
	for _, cb := range pending {
		cb(dt)
	}
	return len(pending)
}
