package brain

import "math/rand/v2"

// DefaultConnectionCount is the number of synapse edges in a standard brain.
const DefaultConnectionCount = 220

const (
	connectionCandidates = 30
	minSynapseLength     = 0.04
	maxSynapseLength     = 0.38
)

// Connection is a decorative synapse edge between two point indices.
// SameRegion is cached at build time.
type Connection struct {
	A, B       int
	SameRegion bool
}

// BuildConnections samples up to m short edges between nearby points. It
// makes 3m attempts; each picks a random point and keeps the nearest of up
// to 30 random candidates whose distance lies in (0.04, 0.38). Fewer than m
// edges are returned when the attempt budget runs out.
func BuildConnections(points []Point, m int, rng *rand.Rand) []Connection {
	n := len(points)
	if m <= 0 || n < 2 {
		return nil
	}

	conns := make([]Connection, 0, m)
	for attempt := 0; attempt < 3*m && len(conns) < m; attempt++ {
		a := rng.IntN(n)
		pa := points[a].Position

		best, bestDist := -1, float32(maxSynapseLength)
		for c := 0; c < connectionCandidates; c++ {
			b := rng.IntN(n)
			if b == a {
				continue
			}
			d := pa.Sub(points[b].Position).Len()
			if d > minSynapseLength && d < bestDist {
				best, bestDist = b, d
			}
		}
		if best < 0 {
			continue
		}

		conns = append(conns, Connection{
			A:          a,
			B:          best,
			SameRegion: points[a].Region == points[best].Region,
		})
	}
	return conns
}
