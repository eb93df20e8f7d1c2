// Package pointbatch holds the flat vertex arrays uploaded to the GPU: point
// positions, sizes and colours, and the two-vertex line segments of the
// synapse graph. Geometry is written once; only colours change per frame.
package pointbatch

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Acam5878/path-of-a-genius/internal/brain"
)

// Batch is the CPU mirror of the GPU buffers.
type Batch struct {
	// Per point. Layout: [x0, y0, z0, x1, ...], [s0, s1, ...], [r0, g0, b0, ...].
	Positions []float32
	Sizes     []float32
	Colors    []float32

	// Per connection, two vertices each.
	LinePositions []float32
	LineColors    []float32
}

// New lays out the immutable geometry for points and conns. Colours start
// black.
func New(points []brain.Point, conns []brain.Connection) *Batch {
	b := &Batch{
		Positions:     make([]float32, len(points)*3),
		Sizes:         make([]float32, len(points)),
		Colors:        make([]float32, len(points)*3),
		LinePositions: make([]float32, len(conns)*6),
		LineColors:    make([]float32, len(conns)*6),
	}

	for i, p := range points {
		copy(b.Positions[i*3:], p.Position[:])
		b.Sizes[i] = p.BaseSize
	}
	for k, c := range conns {
		copy(b.LinePositions[k*6:], points[c.A].Position[:])
		copy(b.LinePositions[k*6+3:], points[c.B].Position[:])
	}
	return b
}

// PointCount returns the number of points.
func (b *Batch) PointCount() int { return len(b.Sizes) }

// LineVertexCount returns the number of line vertices (two per connection).
func (b *Batch) LineVertexCount() int { return len(b.LinePositions) / 3 }

// SetPointColor writes the colour of point i.
func (b *Batch) SetPointColor(i int, c colorful.Color) {
	o := i * 3
	b.Colors[o] = float32(c.R)
	b.Colors[o+1] = float32(c.G)
	b.Colors[o+2] = float32(c.B)
}

// PointColor reads back the colour of point i.
func (b *Batch) PointColor(i int) colorful.Color {
	o := i * 3
	return colorful.Color{R: float64(b.Colors[o]), G: float64(b.Colors[o+1]), B: float64(b.Colors[o+2])}
}

// SetLineColor writes both vertex colours of connection k.
func (b *Batch) SetLineColor(k int, c colorful.Color) {
	o := k * 6
	r, g, bl := float32(c.R), float32(c.G), float32(c.B)
	b.LineColors[o], b.LineColors[o+1], b.LineColors[o+2] = r, g, bl
	b.LineColors[o+3], b.LineColors[o+4], b.LineColors[o+5] = r, g, bl
}

// LineColor reads back the colour of connection k.
func (b *Batch) LineColor(k int) colorful.Color {
	o := k * 6
	return colorful.Color{R: float64(b.LineColors[o]), G: float64(b.LineColors[o+1]), B: float64(b.LineColors[o+2])}
}
