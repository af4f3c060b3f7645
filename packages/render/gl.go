// Package render is the small GL runtime the demos share: shader program
// building, geometry upload, a per-context texture cache and image
// loading. GL itself is reached through the Context interface so the same
// code drives a real OpenGL context or a recording fake.
package render

// Enum is a GL enumerant. Values match the OpenGL / WebGL constants.
type Enum uint32

const (
	ARRAY_BUFFER          Enum = 0x8892
	ELEMENT_ARRAY_BUFFER  Enum = 0x8893
	STATIC_DRAW           Enum = 0x88e4
	FLOAT                 Enum = 0x1406
	UNSIGNED_BYTE         Enum = 0x1401
	UNSIGNED_SHORT        Enum = 0x1403
	VERTEX_SHADER         Enum = 0x8b31
	FRAGMENT_SHADER       Enum = 0x8b30
	COMPILE_STATUS        Enum = 0x8b81
	LINK_STATUS           Enum = 0x8b82
	COLOR_BUFFER_BIT      Enum = 0x4000
	DEPTH_BUFFER_BIT      Enum = 0x100
	DEPTH_TEST            Enum = 0xb71
	LEQUAL                Enum = 0x203
	TEXTURE_2D            Enum = 0xde1
	TEXTURE0              Enum = 0x84c0
	TEXTURE_MAG_FILTER    Enum = 0x2800
	TEXTURE_MIN_FILTER    Enum = 0x2801
	TEXTURE_WRAP_S        Enum = 0x2802
	TEXTURE_WRAP_T        Enum = 0x2803
	LINEAR                Enum = 0x2601
	LINEAR_MIPMAP_NEAREST Enum = 0x2701
	CLAMP_TO_EDGE         Enum = 0x812f
	RGBA                  Enum = 0x1908
	TRIANGLES             Enum = 0x4
	TRIANGLE_STRIP        Enum = 0x5
)

// Context is a GL drawing context bound to one surface. It is borrowed
// from the host and must only be used on the render thread.
//
// Object names are plain uint32 as in OpenGL; 0 is never a valid object.
// Locations are int32 with -1 meaning "not found".
type Context interface {
	// ID identifies the surface the context draws to.
	ID() string
	// Size is the surface size in pixels.
	Size() (width, height int)

	ClearColor(r, g, b, a float32)
	ClearDepth(d float64)
	Clear(mask Enum)
	Enable(capability Enum)
	DepthFunc(fn Enum)
	Viewport(x, y, width, height int)

	CreateShader(kind Enum) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname Enum) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname Enum) int32
	GetProgramInfoLog(program uint32) string
	UseProgram(program uint32)
	DeleteProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	CreateBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, data []byte, usage Enum)
	DeleteBuffer(buffer uint32)
	VertexAttribPointer(index uint32, size int32, typ Enum, normalized bool, stride, offset int32)
	EnableVertexAttribArray(index uint32)

	CreateTexture() uint32
	IsTexture(texture uint32) bool
	ActiveTexture(unit Enum)
	BindTexture(target Enum, texture uint32)
	TexImage2D(target Enum, level int32, internalFormat Enum, width, height int32, format, typ Enum, pixels []byte)
	TexParameteri(target, pname Enum, param int32)
	GenerateMipmap(target Enum)
	DeleteTexture(texture uint32)

	Uniform1i(location int32, v int32)
	UniformMatrix4fv(location int32, m []float32)

	DrawArrays(mode Enum, first, count int32)
	DrawElements(mode Enum, count int32, typ Enum, offset int32)
}

// InitContext applies the state every demo expects: opaque black clear
// color, depth cleared to 1, depth testing with LEQUAL, and a viewport
// covering the surface.
func InitContext(ctx Context) {
	w, h := ctx.Size()
	ctx.Viewport(0, 0, w, h)
	ctx.ClearColor(0, 0, 0, 1)
	ctx.ClearDepth(1)
	ctx.Enable(DEPTH_TEST)
	ctx.DepthFunc(LEQUAL)
}

// Aspect returns width/height of the context's surface, or 1 for an
// empty surface.
func Aspect(ctx Context) float32 {
	w, h := ctx.Size()
	if w <= 0 || h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
