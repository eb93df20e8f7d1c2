package surface

import "time"

// FrameID identifies a requested frame callback. Zero is never issued.
type FrameID uint64

// FrameFunc is a one-shot animation callback; dt is the time since the
// previous host frame.
type FrameFunc func(dt time.Duration)
