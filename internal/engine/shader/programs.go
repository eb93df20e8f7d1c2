package shader

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

var (
	//go:embed glsl/point.vert
	pointVert string
	//go:embed glsl/point.frag
	pointFrag string
	//go:embed glsl/line.vert
	lineVert string
	//go:embed glsl/line.frag
	lineFrag string
)

// Sources returns the GLSL text of a named program ("point" or "line").
func Sources(name string) (vert, frag string, ok bool) {
	switch name {
	case "point":
		return pointVert, pointFrag, true
	case "line":
		return lineVert, lineFrag, true
	}
	return "", "", false
}

// Program is a linked program with its uniform locations resolved.
type Program struct {
	ID       uint32
	uniforms map[string]int32
}

// Load compiles a named embedded program and looks up the given uniforms.
func Load(name string, uniforms ...string) (*Program, error) {
	vert, frag, ok := Sources(name)
	if !ok {
		return nil, fmt.Errorf("unknown program %q", name)
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return nil, fmt.Errorf("%s program: %w", name, err)
	}
	p := &Program{ID: id, uniforms: make(map[string]int32, len(uniforms))}
	for _, u := range uniforms {
		p.uniforms[u] = Uniform(id, u)
	}
	return p, nil
}

// Use makes p the current program.
func (p *Program) Use() { gl.UseProgram(p.ID) }

// Loc returns a uniform location resolved at load time, or -1.
func (p *Program) Loc(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// Delete frees the GL program.
func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
