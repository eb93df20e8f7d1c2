// Package input defines the host-agnostic pointer, touch, key and resize
// events the viewer reacts to, and the listener registry hosts dispatch them
// through.
package input

// Kind is the type of an input event.
type Kind int

const (
	KindNone Kind = iota
	KindQuit
	KindResize
	KindKeyDown
	KindPointerDown
	KindPointerMove
	KindPointerUp
	KindTouchStart
	KindTouchMove
	KindTouchEnd
)

var kindNames = [...]string{
	KindNone:        "none",
	KindQuit:        "quit",
	KindResize:      "resize",
	KindKeyDown:     "keydown",
	KindPointerDown: "pointerdown",
	KindPointerMove: "pointermove",
	KindPointerUp:   "pointerup",
	KindTouchStart:  "touchstart",
	KindTouchMove:   "touchmove",
	KindTouchEnd:    "touchend",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Event is one input event in window pixel coordinates.
type Event struct {
	Kind   Kind
	X, Y   float32
	Button uint8
	Key    string // key name for KindKeyDown, e.g. "L", "Escape"
	Width  int    // for KindResize
	Height int
}
