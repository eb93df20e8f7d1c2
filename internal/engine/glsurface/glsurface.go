// Package glsurface draws point batches with OpenGL 4.1: size-attenuated
// round sprites for the points and blended lines for the synapses.
package glsurface

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Acam5878/path-of-a-genius/internal/engine/camera"
	"github.com/Acam5878/path-of-a-genius/internal/engine/pointbatch"
	"github.com/Acam5878/path-of-a-genius/internal/engine/shader"
	"github.com/Acam5878/path-of-a-genius/internal/engine/surface"
	"github.com/Acam5878/path-of-a-genius/internal/logger"
)

// Background is the clear colour.
var Background = mgl32.Vec4{0.015, 0.02, 0.045, 1}

// Surface implements surface.Surface on the current GL context.
type Surface struct {
	cam *camera.Camera

	points *shader.Program
	lines  *shader.Program

	pointVAO   uint32
	pointPos   uint32
	pointSize  uint32
	pointColor uint32
	pointCount int32

	lineVAO   uint32
	linePos   uint32
	lineColor uint32
	lineCount int32
	released  bool
}

var _ surface.Surface = (*Surface)(nil)

// New initializes GL on the current context and compiles the programs.
// It must be called after the context is made current.
func New(width, height int) (*Surface, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	s := &Surface{cam: camera.New(width, height)}

	var err error
	s.points, err = shader.Load("point", "uModel", "uView", "uProjection", "uPointScale")
	if err != nil {
		return nil, err
	}
	s.lines, err = shader.Load("line", "uModel", "uView", "uProjection", "uOpacity")
	if err != nil {
		s.points.Delete()
		return nil, err
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Disable(gl.DEPTH_TEST)
	gl.ClearColor(Background[0], Background[1], Background[2], Background[3])
	s.applyViewport()

	return s, nil
}

// Upload creates the vertex arrays. Positions and sizes are static; colours
// are streamed every frame.
func (s *Surface) Upload(b *pointbatch.Batch) error {
	if s.pointVAO != 0 {
		return fmt.Errorf("batch already uploaded")
	}

	gl.GenVertexArrays(1, &s.pointVAO)
	gl.BindVertexArray(s.pointVAO)
	s.pointPos = arrayBuffer(0, 3, b.Positions, gl.STATIC_DRAW)
	s.pointSize = arrayBuffer(1, 1, b.Sizes, gl.STATIC_DRAW)
	s.pointColor = arrayBuffer(2, 3, b.Colors, gl.DYNAMIC_DRAW)
	s.pointCount = int32(b.PointCount())

	gl.GenVertexArrays(1, &s.lineVAO)
	gl.BindVertexArray(s.lineVAO)
	s.linePos = arrayBuffer(0, 3, b.LinePositions, gl.STATIC_DRAW)
	s.lineColor = arrayBuffer(1, 3, b.LineColors, gl.DYNAMIC_DRAW)
	s.lineCount = int32(b.LineVertexCount())

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("batch uploaded",
		zap.Int32("points", s.pointCount),
		zap.Int32("lineVertices", s.lineCount),
	)
	return nil
}

// arrayBuffer creates a VBO from data and binds it to attribute loc of the
// bound VAO.
func arrayBuffer(loc uint32, components int32, data []float32, usage uint32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), usage)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, usage)
	}
	gl.VertexAttribPointer(loc, components, gl.FLOAT, false, components*4, nil)
	gl.EnableVertexAttribArray(loc)
	return vbo
}

func subData(vbo uint32, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, unsafe.Pointer(&data[0]))
}

// UpdateColors streams the colour arrays.
func (s *Surface) UpdateColors(b *pointbatch.Batch) {
	if s.released {
		return
	}
	subData(s.pointColor, b.Colors)
	subData(s.lineColor, b.LineColors)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Draw clears the frame and draws lines, then points, with the frame's
// model transform.
func (s *Surface) Draw(f surface.Frame) {
	if s.released {
		return
	}
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	view := s.cam.ViewMatrix()
	proj := s.cam.ProjectionMatrix()

	if s.lineCount > 0 {
		s.lines.Use()
		setMatrices(s.lines, f.Model, view, proj)
		gl.Uniform1f(s.lines.Loc("uOpacity"), f.LineOpacity)
		gl.BindVertexArray(s.lineVAO)
		gl.DrawArrays(gl.LINES, 0, s.lineCount)
	}

	s.points.Use()
	setMatrices(s.points, f.Model, view, proj)
	gl.Uniform1f(s.points.Loc("uPointScale"), s.cam.PointScale())
	gl.BindVertexArray(s.pointVAO)
	gl.DrawArrays(gl.POINTS, 0, s.pointCount)

	gl.BindVertexArray(0)
}

func setMatrices(p *shader.Program, model, view, proj mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Loc("uModel"), 1, false, &model[0])
	gl.UniformMatrix4fv(p.Loc("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(p.Loc("uProjection"), 1, false, &proj[0])
}

// Resize updates the viewport and projection aspect.
func (s *Surface) Resize(width, height int) {
	if !s.cam.SetViewport(width, height) {
		logger.Debug("zero-size resize skipped", zap.Int("width", width), zap.Int("height", height))
		return
	}
	s.applyViewport()
	logger.Debug("surface resized", zap.Int("width", width), zap.Int("height", height))
}

func (s *Surface) applyViewport() {
	w, h := s.cam.Viewport()
	gl.Viewport(0, 0, int32(w), int32(h))
}

// Release deletes every buffer, array and program. Later calls do nothing.
func (s *Surface) Release() {
	if s.released {
		return
	}
	s.released = true

	buffers := []uint32{s.pointPos, s.pointSize, s.pointColor, s.linePos, s.lineColor}
	for _, vbo := range buffers {
		if vbo != 0 {
			gl.DeleteBuffers(1, &vbo)
		}
	}
	for _, vao := range []uint32{s.pointVAO, s.lineVAO} {
		if vao != 0 {
			gl.DeleteVertexArrays(1, &vao)
		}
	}
	s.points.Delete()
	s.lines.Delete()

	logger.Debug("surface released")
}
