// Package glcore implements render.Context on an OpenGL 3.3 core profile
// context. All methods must be called on the thread that owns the GL
// context.
package glcore

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/leonkasovan/gl/v3.3-core/gl"

	"github.com/leonkasovan/gldemo/packages/render"
)

// GLSLVersion is prepended to shader sources that do not declare a version.
const GLSLVersion = "#version 330\n"

// Context draws to the surface whose GL context is current.
type Context struct {
	id   string
	size func() (int, int)
	vao  uint32

	// OnDraw, if set, is called after every Clear and draw call.
	OnDraw func()
}

func (c *Context) drew() {
	if c.OnDraw != nil {
		c.OnDraw()
	}
}

var _ render.Context = (*Context)(nil)

// Init loads the GL function pointers. Call it once, after the first
// context was made current.
func Init() error {
	if err := gl.Init(); err != nil {
		return err
	}
	return nil
}

// Version describes the driver, e.g. for a startup log line.
func Version() (version, glsl, renderer, vendor string) {
	return gl.GoStr(gl.GetString(gl.VERSION)),
		gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
		gl.GoStr(gl.GetString(gl.RENDERER)),
		gl.GoStr(gl.GetString(gl.VENDOR))
}

// New wraps the current GL context. size reports the framebuffer size.
// A vertex array object is created and bound, as the core profile
// requires one for any attribute setup.
func New(id string, size func() (int, int)) *Context {
	c := &Context{id: id, size: size}
	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)
	return c
}

// Close deletes the vertex array object.
func (c *Context) Close() {
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
		c.vao = 0
	}
}

func (c *Context) ID() string { return c.id }

func (c *Context) Size() (int, int) { return c.size() }

func (c *Context) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *Context) ClearDepth(d float64)          { gl.ClearDepth(d) }
func (c *Context) Clear(mask render.Enum) {
	gl.Clear(uint32(mask))
	c.drew()
}

func (c *Context) Enable(capability render.Enum) { gl.Enable(uint32(capability)) }
func (c *Context) DepthFunc(fn render.Enum)      { gl.DepthFunc(uint32(fn)) }

func (c *Context) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (c *Context) CreateShader(kind render.Enum) uint32 {
	return gl.CreateShader(uint32(kind))
}

func (c *Context) ShaderSource(shader uint32, src string) {
	if !strings.HasPrefix(strings.TrimSpace(src), "#version") {
		src = GLSLVersion + src
	}
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	l := int32(len(src))
	gl.ShaderSource(shader, 1, csrc, &l)
}

func (c *Context) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (c *Context) GetShaderi(shader uint32, pname render.Enum) int32 {
	var v int32
	gl.GetShaderiv(shader, uint32(pname), &v)
	return v
}

func (c *Context) GetShaderInfoLog(shader uint32) string {
	var size, l int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}
	str := make([]byte, size+1)
	gl.GetShaderInfoLog(shader, size, &l, &str[0])
	return string(str[:l])
}

func (c *Context) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (c *Context) CreateProgram() uint32              { return gl.CreateProgram() }
func (c *Context) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }
func (c *Context) LinkProgram(program uint32)          { gl.LinkProgram(program) }

func (c *Context) GetProgrami(program uint32, pname render.Enum) int32 {
	var v int32
	gl.GetProgramiv(program, uint32(pname), &v)
	return v
}

func (c *Context) GetProgramInfoLog(program uint32) string {
	var size, l int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &size)
	if size <= 0 {
		return ""
	}
	str := make([]byte, size+1)
	gl.GetProgramInfoLog(program, size, &l, &str[0])
	return string(str[:l])
}

func (c *Context) UseProgram(program uint32)    { gl.UseProgram(program) }
func (c *Context) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (c *Context) GetAttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (c *Context) CreateBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (c *Context) BindBuffer(target render.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (c *Context) BufferData(target render.Enum, data []byte, usage render.Enum) {
	gl.BufferData(uint32(target), len(data), ptr(data), uint32(usage))
}

func (c *Context) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (c *Context) VertexAttribPointer(index uint32, size int32, typ render.Enum, normalized bool, stride, offset int32) {
	gl.VertexAttribPointerWithOffset(index, size, uint32(typ), normalized, stride, uintptr(offset))
}

func (c *Context) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (c *Context) CreateTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (c *Context) IsTexture(texture uint32) bool { return gl.IsTexture(texture) }
func (c *Context) ActiveTexture(unit render.Enum) { gl.ActiveTexture(uint32(unit)) }

func (c *Context) BindTexture(target render.Enum, texture uint32) {
	gl.BindTexture(uint32(target), texture)
}

func (c *Context) TexImage2D(target render.Enum, level int32, internalFormat render.Enum, width, height int32, format, typ render.Enum, pixels []byte) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), ptr(pixels))
}

func (c *Context) TexParameteri(target, pname render.Enum, param int32) {
	gl.TexParameteri(uint32(target), uint32(pname), param)
}

func (c *Context) GenerateMipmap(target render.Enum) { gl.GenerateMipmap(uint32(target)) }
func (c *Context) DeleteTexture(texture uint32)      { gl.DeleteTextures(1, &texture) }

func (c *Context) Uniform1i(location int32, v int32) { gl.Uniform1i(location, v) }

func (c *Context) UniformMatrix4fv(location int32, m []float32) {
	if len(m) < 16 {
		panic(fmt.Sprintf("glcore: matrix has %d elements", len(m)))
	}
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (c *Context) DrawArrays(mode render.Enum, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
	c.drew()
}

func (c *Context) DrawElements(mode render.Enum, count int32, typ render.Enum, offset int32) {
	gl.DrawElementsWithOffset(uint32(mode), count, uint32(typ), uintptr(offset))
	c.drew()
}

func ptr(b []byte) unsafe.Pointer {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Pointer(&b[0])
}
