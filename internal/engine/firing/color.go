package firing

import (
	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
)

var (
	fireWhite   = colorful.Color{R: 0.95, G: 0.97, B: 1.0}
	dormantTint = colorful.Color{R: 0.10, G: 0.14, B: 0.26}
	synapseBlue = colorful.Color{R: 0.25, G: 0.40, B: 0.80}
)

// Fire boost weights the region colour under a firing pulse.
const (
	boostActive   = 1.0
	boostInactive = 0.5
	boostLocked   = 0.2
)

func scale(c colorful.Color, f float32) colorful.Color {
	k := float64(f)
	return colorful.Color{R: c.R * k, G: c.G * k, B: c.B * k}
}

// FireBoost returns the weight of the region colour in a firing blend. An
// active region keeps its full colour even while locked.
func FireBoost(active, locked bool) float32 {
	switch {
	case active:
		return boostActive
	case locked:
		return boostLocked
	default:
		return boostInactive
	}
}

// AmbientPulse is the brightness of a lit, non-firing point. The per-index
// phase offset keeps neighbours from flashing in sync.
func AmbientPulse(i int, t float32) float32 {
	return 0.6 + 0.2*math32.Sin(t*1.5+float32(i)*0.003)
}

// PointColor derives the displayed colour of point i. Firing takes priority
// over the active pulse, which takes priority over the dormant shimmer.
func PointColor(base colorful.Color, i int, fire float32, active, locked bool, t float32) colorful.Color {
	if fire > 0 {
		return scale(base, FireBoost(active, locked)).BlendRgb(fireWhite, float64(fire))
	}
	if active {
		return scale(base, AmbientPulse(i, t))
	}
	shimmer := 0.75 + 0.25*math32.Sin(t*0.9+float32(i)*0.017)
	if locked {
		shimmer *= 0.5
	}
	return scale(dormantTint, shimmer)
}

// ConnectionColor derives the colour of a synapse edge from its endpoints.
func ConnectionColor(c brain.Connection, baseA, baseB colorful.Color, activeA, activeB, locked bool, t float32) colorful.Color {
	switch {
	case activeA && activeB:
		base := baseA
		if !c.SameRegion {
			base = baseA.BlendRgb(baseB, 0.5)
		}
		return scale(base, 0.55+0.25*math32.Sin(t*2.0))
	case activeA || activeB:
		return scale(synapseBlue, 0.3)
	case locked:
		return scale(synapseBlue, 0.03)
	default:
		return scale(synapseBlue, 0.06)
	}
}
