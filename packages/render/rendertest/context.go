// Package rendertest provides an in-memory render.Context and a manual
// image resolver for tests that must run without a GPU.
package rendertest

import (
	"fmt"
	"image"
	"strings"

	"github.com/leonkasovan/gldemo/packages/render"
)

type ShaderState struct {
	Kind     render.Enum
	Source   string
	Compiled bool
	Deleted  bool
}

type ProgramState struct {
	Shaders []uint32
	Linked  bool
	Deleted bool
}

type TextureState struct {
	Width, Height int32
	Pixels        []byte
	Params        map[render.Enum]int32
	Mipmap        bool
	// Uploads counts TexImage2D calls.
	Uploads int
	Deleted bool
}

type BufferState struct {
	Target  render.Enum
	Data    []byte
	Deleted bool
}

type AttribPointer struct {
	Size       int32
	Type       render.Enum
	Normalized bool
	Stride     int32
	Offset     int32
	Buffer     uint32
	Enabled    bool
}

type Draw struct {
	Mode    render.Enum
	Count   int32
	Indexed bool
	Program uint32
	// Textures bound per unit at draw time.
	Textures map[int]uint32
}

// Context records GL calls and keeps enough state to answer queries.
//
// Compilation fails for any source containing "#error"; the text after
// it becomes the info log. Linking fails when LinkLog is set. Attribute
// and uniform names listed in Attribs/Uniforms resolve; every other name
// resolves to -1.
type Context struct {
	Name          string
	Width, Height int

	Attribs  map[string]int32
	Uniforms map[string]int32
	LinkLog  string
	// ReuseTextureNames hands deleted texture names out again, as GL
	// drivers do.
	ReuseTextureNames bool

	Shaders  map[uint32]*ShaderState
	Programs map[uint32]*ProgramState
	Textures map[uint32]*TextureState
	Buffers  map[uint32]*BufferState
	Pointers map[uint32]*AttribPointer
	Ints     map[int32]int32
	Matrices map[int32][]float32
	Draws    []Draw
	Calls    []string

	Current    uint32
	ActiveUnit int
	ClearMask  render.Enum
	Clears     int
	Enabled    map[render.Enum]bool
	DepthFn    render.Enum

	clearColor [4]float32
	bound      map[render.Enum]uint32
	unitTex    map[int]uint32
	next       uint32
	freeTex    []uint32
}

// NewContext returns a 640x480 context named name with the attribute and
// uniform names the demos use already resolvable.
func NewContext(name string) *Context {
	return &Context{
		Name:   name,
		Width:  640,
		Height: 480,
		Attribs: map[string]int32{
			"aVertexPosition": 0,
			"aVertexColor":    1,
			"aTextureCoord":   2,
		},
		Uniforms: map[string]int32{
			"uModelViewMatrix":  0,
			"uProjectionMatrix": 1,
			"uSampler":          2,
		},
		Shaders:  make(map[uint32]*ShaderState),
		Programs: make(map[uint32]*ProgramState),
		Textures: make(map[uint32]*TextureState),
		Buffers:  make(map[uint32]*BufferState),
		Pointers: make(map[uint32]*AttribPointer),
		Ints:     make(map[int32]int32),
		Matrices: make(map[int32][]float32),
		Enabled:  make(map[render.Enum]bool),
		bound:    make(map[render.Enum]uint32),
		unitTex:  make(map[int]uint32),
	}
}

func (c *Context) record(format string, args ...any) {
	c.Calls = append(c.Calls, fmt.Sprintf(format, args...))
}

func (c *Context) gen() uint32 {
	c.next++
	return c.next
}

func (c *Context) ID() string       { return c.Name }
func (c *Context) Size() (int, int) { return c.Width, c.Height }

func (c *Context) ClearColor(r, g, b, a float32) {
	c.clearColor = [4]float32{r, g, b, a}
	c.record("ClearColor(%v, %v, %v, %v)", r, g, b, a)
}
func (c *Context) ClearDepth(d float64) { c.record("ClearDepth(%v)", d) }
func (c *Context) Clear(mask render.Enum) {
	c.ClearMask = mask
	c.Clears++
	c.record("Clear(0x%x)", uint32(mask))
}
func (c *Context) Enable(capability render.Enum) {
	c.Enabled[capability] = true
	c.record("Enable(0x%x)", uint32(capability))
}
func (c *Context) DepthFunc(fn render.Enum) {
	c.DepthFn = fn
	c.record("DepthFunc(0x%x)", uint32(fn))
}
func (c *Context) Viewport(x, y, w, h int) { c.record("Viewport(%d, %d, %d, %d)", x, y, w, h) }

// ClearColorValue returns the last ClearColor arguments.
func (c *Context) ClearColorValue() [4]float32 { return c.clearColor }

func (c *Context) CreateShader(kind render.Enum) uint32 {
	s := c.gen()
	c.Shaders[s] = &ShaderState{Kind: kind}
	c.record("CreateShader(0x%x) = %d", uint32(kind), s)
	return s
}

func (c *Context) ShaderSource(shader uint32, src string) {
	c.Shaders[shader].Source = src
}

func (c *Context) CompileShader(shader uint32) {
	s := c.Shaders[shader]
	s.Compiled = !strings.Contains(s.Source, "#error")
	c.record("CompileShader(%d)", shader)
}

func (c *Context) GetShaderi(shader uint32, pname render.Enum) int32 {
	if pname == render.COMPILE_STATUS && c.Shaders[shader].Compiled {
		return 1
	}
	return 0
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	src := c.Shaders[shader].Source
	if i := strings.Index(src, "#error"); i >= 0 {
		return strings.TrimSpace(src[i+len("#error"):])
	}
	return ""
}

func (c *Context) DeleteShader(shader uint32) {
	if s, ok := c.Shaders[shader]; ok {
		s.Deleted = true
	}
	c.record("DeleteShader(%d)", shader)
}

func (c *Context) CreateProgram() uint32 {
	p := c.gen()
	c.Programs[p] = &ProgramState{}
	c.record("CreateProgram() = %d", p)
	return p
}

func (c *Context) AttachShader(program, shader uint32) {
	c.Programs[program].Shaders = append(c.Programs[program].Shaders, shader)
}

func (c *Context) LinkProgram(program uint32) {
	c.Programs[program].Linked = c.LinkLog == ""
	c.record("LinkProgram(%d)", program)
}

func (c *Context) GetProgrami(program uint32, pname render.Enum) int32 {
	if pname == render.LINK_STATUS && c.Programs[program].Linked {
		return 1
	}
	return 0
}

func (c *Context) GetProgramInfoLog(program uint32) string { return c.LinkLog }

func (c *Context) UseProgram(program uint32) {
	c.Current = program
	c.record("UseProgram(%d)", program)
}

func (c *Context) DeleteProgram(program uint32) {
	if p, ok := c.Programs[program]; ok {
		p.Deleted = true
	}
	c.record("DeleteProgram(%d)", program)
}

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	if loc, ok := c.Attribs[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	if loc, ok := c.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (c *Context) CreateBuffer() uint32 {
	b := c.gen()
	c.Buffers[b] = &BufferState{}
	c.record("CreateBuffer() = %d", b)
	return b
}

func (c *Context) BindBuffer(target render.Enum, buffer uint32) {
	c.bound[target] = buffer
	if b, ok := c.Buffers[buffer]; ok {
		b.Target = target
	}
}

func (c *Context) BufferData(target render.Enum, data []byte, usage render.Enum) {
	b := c.Buffers[c.bound[target]]
	b.Data = append([]byte(nil), data...)
	c.record("BufferData(0x%x, %d bytes, 0x%x)", uint32(target), len(data), uint32(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) {
	if b, ok := c.Buffers[buffer]; ok {
		b.Deleted = true
	}
	c.record("DeleteBuffer(%d)", buffer)
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ render.Enum, normalized bool, stride, offset int32) {
	p := c.pointer(index)
	p.Size, p.Type, p.Normalized, p.Stride, p.Offset = size, typ, normalized, stride, offset
	p.Buffer = c.bound[render.ARRAY_BUFFER]
	c.record("VertexAttribPointer(%d, %d, 0x%x, %v, %d, %d)", index, size, uint32(typ), normalized, stride, offset)
}

func (c *Context) EnableVertexAttribArray(index uint32) {
	c.pointer(index).Enabled = true
	c.record("EnableVertexAttribArray(%d)", index)
}

func (c *Context) pointer(index uint32) *AttribPointer {
	p, ok := c.Pointers[index]
	if !ok {
		p = &AttribPointer{}
		c.Pointers[index] = p
	}
	return p
}

func (c *Context) CreateTexture() uint32 {
	var t uint32
	if n := len(c.freeTex); c.ReuseTextureNames && n > 0 {
		t = c.freeTex[n-1]
		c.freeTex = c.freeTex[:n-1]
	} else {
		t = c.gen()
	}
	c.Textures[t] = &TextureState{Params: make(map[render.Enum]int32)}
	c.record("CreateTexture() = %d", t)
	return t
}

func (c *Context) IsTexture(texture uint32) bool {
	t, ok := c.Textures[texture]
	return ok && !t.Deleted
}

func (c *Context) ActiveTexture(unit render.Enum) {
	c.ActiveUnit = int(unit - render.TEXTURE0)
	c.record("ActiveTexture(0x%x)", uint32(unit))
}

func (c *Context) BindTexture(target render.Enum, texture uint32) {
	c.bound[target] = texture
	c.unitTex[c.ActiveUnit] = texture
	c.record("BindTexture(0x%x, %d)", uint32(target), texture)
}

func (c *Context) TexImage2D(target render.Enum, level int32, internalFormat render.Enum, width, height int32, format, typ render.Enum, pixels []byte) {
	t := c.Textures[c.bound[target]]
	t.Width, t.Height = width, height
	t.Pixels = append([]byte(nil), pixels...)
	t.Uploads++
	c.record("TexImage2D(%dx%d)", width, height)
}

func (c *Context) TexParameteri(target, pname render.Enum, param int32) {
	c.Textures[c.bound[target]].Params[pname] = param
}

func (c *Context) GenerateMipmap(target render.Enum) {
	c.Textures[c.bound[target]].Mipmap = true
	c.record("GenerateMipmap(0x%x)", uint32(target))
}

func (c *Context) DeleteTexture(texture uint32) {
	if t, ok := c.Textures[texture]; ok && !t.Deleted {
		t.Deleted = true
		if c.ReuseTextureNames {
			c.freeTex = append(c.freeTex, texture)
		}
	}
	c.record("DeleteTexture(%d)", texture)
}

func (c *Context) Uniform1i(location int32, v int32) {
	c.Ints[location] = v
	c.record("Uniform1i(%d, %d)", location, v)
}

func (c *Context) UniformMatrix4fv(location int32, m []float32) {
	c.Matrices[location] = append([]float32(nil), m...)
}

func (c *Context) DrawArrays(mode render.Enum, first, count int32) {
	c.draw(Draw{Mode: mode, Count: count})
}

func (c *Context) DrawElements(mode render.Enum, count int32, typ render.Enum, offset int32) {
	c.draw(Draw{Mode: mode, Count: count, Indexed: true})
}

func (c *Context) draw(d Draw) {
	d.Program = c.Current
	d.Textures = make(map[int]uint32, len(c.unitTex))
	for unit, tex := range c.unitTex {
		d.Textures[unit] = tex
	}
	c.Draws = append(c.Draws, d)
	c.record("Draw(0x%x, %d, indexed=%v)", uint32(d.Mode), d.Count, d.Indexed)
}

// Live counts objects of each kind that were created and not deleted.
func (c *Context) Live() (programs, buffers, textures int) {
	for _, p := range c.Programs {
		if !p.Deleted {
			programs++
		}
	}
	for _, b := range c.Buffers {
		if !b.Deleted {
			buffers++
		}
	}
	for _, t := range c.Textures {
		if !t.Deleted {
			textures++
		}
	}
	return
}

// Resolver is a render.Resolver whose loads complete only when the test
// says so.
type Resolver struct {
	Pending  map[string][]func(image.Image, error)
	Requests []string
}

func NewResolver() *Resolver {
	return &Resolver{Pending: make(map[string][]func(image.Image, error))}
}

func (r *Resolver) Resolve(url string, done func(image.Image, error)) {
	r.Requests = append(r.Requests, url)
	r.Pending[url] = append(r.Pending[url], done)
}

// Complete delivers img to every pending load of url.
func (r *Resolver) Complete(url string, img image.Image) {
	r.finish(url, img, nil)
}

// Fail delivers err to every pending load of url.
func (r *Resolver) Fail(url string, err error) {
	r.finish(url, nil, err)
}

func (r *Resolver) finish(url string, img image.Image, err error) {
	pending := r.Pending[url]
	delete(r.Pending, url)
	for _, done := range pending {
		done(img, err)
	}
}

var _ render.Context = (*Context)(nil)
var _ render.Resolver = (*Resolver)(nil)
