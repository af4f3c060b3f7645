package render

import "log/slog"

// Program is a linked shader program with the locations it was asked to
// resolve. a holds attribute locations, u uniform locations and t the
// texture unit assigned to each sampler uniform.
type Program struct {
	ctx    Context
	handle uint32
	a      map[string]int32
	u      map[string]int32
	t      map[string]int
}

// Compile compiles one shader stage. A rejected source yields a
// *CompileError with the compiler log; the shader object is deleted
// before returning.
func Compile(ctx Context, kind Enum, src string) (shader uint32, err error) {
	shader = ctx.CreateShader(kind)
	ctx.ShaderSource(shader, src)
	ctx.CompileShader(shader)
	if ctx.GetShaderi(shader, COMPILE_STATUS) == 0 {
		log := ctx.GetShaderInfoLog(shader)
		if log == "" {
			log = "unknown shader compile error"
		}
		ctx.DeleteShader(shader)
		return 0, &CompileError{Kind: kind, Log: log}
	}
	return shader, nil
}

// Link links a vertex and a fragment shader into a program and makes it
// the current program. The shaders are flagged for deletion either way;
// a failed program is deleted and reported as a *LinkError.
func Link(ctx Context, vert, frag uint32) (*Program, error) {
	program := ctx.CreateProgram()
	ctx.AttachShader(program, vert)
	ctx.AttachShader(program, frag)
	ctx.LinkProgram(program)
	ctx.DeleteShader(vert)
	ctx.DeleteShader(frag)
	if ctx.GetProgrami(program, LINK_STATUS) == 0 {
		log := ctx.GetProgramInfoLog(program)
		if log == "" {
			log = "unknown link error"
		}
		ctx.DeleteProgram(program)
		return nil, &LinkError{Log: log}
	}
	ctx.UseProgram(program)
	Logger().Info("program linked", slog.String("surface", ctx.ID()), slog.Uint64("program", uint64(program)))
	return &Program{
		ctx:    ctx,
		handle: program,
		a:      make(map[string]int32),
		u:      make(map[string]int32),
		t:      make(map[string]int),
	}, nil
}

// NewProgram compiles both stages and links them.
func NewProgram(ctx Context, vert, frag string) (*Program, error) {
	vs, err := Compile(ctx, VERTEX_SHADER, vert)
	if err != nil {
		return nil, err
	}
	fs, err := Compile(ctx, FRAGMENT_SHADER, frag)
	if err != nil {
		ctx.DeleteShader(vs)
		return nil, err
	}
	return Link(ctx, vs, fs)
}

func (p *Program) Handle() uint32 {
	return p.handle
}

// Use makes p the current program.
func (p *Program) Use() {
	p.ctx.UseProgram(p.handle)
}

func (p *Program) RegisterAttributes(names ...string) {
	for _, name := range names {
		p.a[name] = p.ctx.GetAttribLocation(p.handle, name)
	}
}

func (p *Program) RegisterUniforms(names ...string) {
	for _, name := range names {
		p.u[name] = p.ctx.GetUniformLocation(p.handle, name)
	}
}

// RegisterTextures resolves sampler uniforms and gives each the next free
// texture unit.
func (p *Program) RegisterTextures(names ...string) {
	for _, name := range names {
		p.u[name] = p.ctx.GetUniformLocation(p.handle, name)
		p.t[name] = len(p.t)
	}
}

// Attrib returns the location of an attribute, resolving and caching it
// on first use. -1 means the program has no such attribute.
func (p *Program) Attrib(name string) int32 {
	if loc, ok := p.a[name]; ok {
		return loc
	}
	loc := p.ctx.GetAttribLocation(p.handle, name)
	p.a[name] = loc
	return loc
}

// Uniform returns the location of a uniform, resolving and caching it on
// first use.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.u[name]; ok {
		return loc
	}
	loc := p.ctx.GetUniformLocation(p.handle, name)
	p.u[name] = loc
	return loc
}

// TextureUnit returns the unit assigned by RegisterTextures.
func (p *Program) TextureUnit(name string) (int, bool) {
	unit, ok := p.t[name]
	return unit, ok
}

func (p *Program) SetUniformI(name string, v int) {
	p.ctx.Uniform1i(p.Uniform(name), int32(v))
}

func (p *Program) SetUniformMatrix(name string, m []float32) {
	p.ctx.UniformMatrix4fv(p.Uniform(name), m)
}

// Dispose deletes the GL program. It is safe to call more than once.
func (p *Program) Dispose() {
	if p.handle == 0 {
		return
	}
	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
}
