package window

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Acam5878/path-of-a-genius/internal/engine/input"
)

func TestTranslateMouse(t *testing.T) {
	ev, ok := Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_LEFT, X: 10, Y: 20}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.KindPointerDown, ev.Kind)
	assert.Equal(t, float32(10), ev.X)
	assert.Equal(t, float32(20), ev.Y)
	assert.Equal(t, uint8(sdl.BUTTON_LEFT), ev.Button)

	ev, ok = Translate(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONUP, X: 1, Y: 2}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.KindPointerUp, ev.Kind)

	ev, ok = Translate(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 5, Y: 6}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.KindPointerMove, ev.Kind)
}

func TestTranslateTouchScalesCoordinates(t *testing.T) {
	cases := []struct {
		typ  uint32
		kind input.Kind
	}{
		{sdl.FINGERDOWN, input.KindTouchStart},
		{sdl.FINGERMOTION, input.KindTouchMove},
		{sdl.FINGERUP, input.KindTouchEnd},
	}
	for _, tc := range cases {
		ev, ok := Translate(&sdl.TouchFingerEvent{Type: tc.typ, X: 0.5, Y: 0.25}, 800, 600)
		require.True(t, ok)
		assert.Equal(t, tc.kind, ev.Kind)
		assert.Equal(t, float32(400), ev.X)
		assert.Equal(t, float32(150), ev.Y)
	}
}

func TestTranslateWindowAndQuit(t *testing.T) {
	ev, ok := Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 1024, Data2: 768}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.KindResize, ev.Kind)
	assert.Equal(t, 1024, ev.Width)
	assert.Equal(t, 768, ev.Height)

	_, ok = Translate(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_MOVED}, 800, 600)
	assert.False(t, ok)

	ev, ok = Translate(&sdl.QuitEvent{Type: sdl.QUIT}, 800, 600)
	require.True(t, ok)
	assert.Equal(t, input.KindQuit, ev.Kind)
}

func TestFrameQueue(t *testing.T) {
	w := &Window{container: input.NewDispatcher(), global: input.NewDispatcher()}

	var ran []int
	a := w.RequestFrame(func(time.Duration) { ran = append(ran, 1) })
	w.RequestFrame(func(time.Duration) {
		ran = append(ran, 2)
		w.RequestFrame(func(time.Duration) { ran = append(ran, 3) })
	})
	assert.NotZero(t, a)

	assert.Equal(t, 2, w.RunFrames(time.Millisecond))
	assert.Equal(t, []int{1, 2}, ran)

	assert.Equal(t, 1, w.RunFrames(time.Millisecond))
	assert.Equal(t, []int{1, 2, 3}, ran)

	id := w.RequestFrame(func(time.Duration) { ran = append(ran, 4) })
	w.CancelFrame(id)
	w.CancelFrame(999)
	assert.Equal(t, 0, w.RunFrames(time.Millisecond))
}

func TestDispatchRouting(t *testing.T) {
	w := &Window{container: input.NewDispatcher(), global: input.NewDispatcher()}

	var onContainer, onGlobal []input.Kind
	for _, k := range []input.Kind{input.KindPointerDown, input.KindTouchStart, input.KindPointerMove, input.KindPointerUp, input.KindResize} {
		w.Target().AddListener(k, func(ev input.Event) { onContainer = append(onContainer, ev.Kind) })
		w.Global().AddListener(k, func(ev input.Event) { onGlobal = append(onGlobal, ev.Kind) })
	}

	w.Dispatch(input.Event{Kind: input.KindPointerDown})
	w.Dispatch(input.Event{Kind: input.KindPointerMove})
	w.Dispatch(input.Event{Kind: input.KindPointerUp})
	w.Dispatch(input.Event{Kind: input.KindTouchStart})
	w.Dispatch(input.Event{Kind: input.KindResize})

	assert.Equal(t, []input.Kind{input.KindPointerDown, input.KindTouchStart}, onContainer)
	assert.Equal(t, []input.Kind{input.KindPointerMove, input.KindPointerUp, input.KindResize}, onGlobal)
}
