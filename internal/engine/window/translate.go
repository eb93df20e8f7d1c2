package window

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
)

// Translate converts an SDL event into an input event. Finger coordinates
// are normalized by SDL and scaled here to width x height. Events the viewer
// does not use report false.
func Translate(event sdl.Event, width, height int) (input.Event, bool) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		return input.Event{Kind: input.KindQuit}, true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			return input.Event{
				Kind:   input.KindResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			}, true
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
			return input.Event{
				Kind: input.KindKeyDown,
				Key:  sdl.GetKeyName(e.Keysym.Sym),
			}, true
		}

	case *sdl.MouseMotionEvent:
		return input.Event{
			Kind: input.KindPointerMove,
			X:    float32(e.X),
			Y:    float32(e.Y),
		}, true

	case *sdl.MouseButtonEvent:
		kind := input.KindPointerUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			kind = input.KindPointerDown
		}
		return input.Event{
			Kind:   kind,
			X:      float32(e.X),
			Y:      float32(e.Y),
			Button: e.Button,
		}, true

	case *sdl.TouchFingerEvent:
		var kind input.Kind
		switch e.Type {
		case sdl.FINGERDOWN:
			kind = input.KindTouchStart
		case sdl.FINGERMOTION:
			kind = input.KindTouchMove
		case sdl.FINGERUP:
			kind = input.KindTouchEnd
		default:
			return input.Event{}, false
		}
		return input.Event{
			Kind: kind,
			X:    e.X * float32(width),
			Y:    e.Y * float32(height),
		}, true
	}

	return input.Event{}, false
}
