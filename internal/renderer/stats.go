package renderer

import "github.com/Acam5878/path-of-a-genius/internal/brain"

// Stats summarizes the generated brain.
type Stats struct {
	Points      int
	Connections int
	ByRegion    map[brain.RegionKey]int
	// Unclassified counts points no region predicate matched; they are
	// included in the fallback region's ByRegion count.
	Unclassified int
	// CrossRegion counts connections between two different regions.
	CrossRegion int
}

// Stats counts points per region and connection kinds.
func (r *Renderer) Stats() Stats {
	s := Stats{
		Points:       len(r.cloud.Points),
		Connections:  len(r.conns),
		ByRegion:     make(map[brain.RegionKey]int, brain.RegionCount()),
		Unclassified: r.cloud.Unclassified,
	}
	for _, p := range r.cloud.Points {
		s.ByRegion[p.Region]++
	}
	for _, c := range r.conns {
		if !c.SameRegion {
			s.CrossRegion++
		}
	}
	return s
}
