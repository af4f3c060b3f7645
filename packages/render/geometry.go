package render

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"golang.org/x/mobile/exp/f32"
)

// Geometry collects the buffers uploaded for one model so they can be
// released together.
type Geometry struct {
	ctx     Context
	buffers []uint32
}

func NewGeometry(ctx Context) *Geometry {
	return &Geometry{ctx: ctx}
}

// Attribute uploads data for the named attribute of p, size components per
// vertex. A missing attribute is logged and skipped; the upload itself
// still happens so the buffer is tracked.
func (g *Geometry) Attribute(p *Program, name string, data []float32, size int) {
	b, err := UploadVertexAttribute(g.ctx, p, name, data, size)
	g.buffers = append(g.buffers, b)
	if err != nil {
		Logger().Debug("attribute skipped", slog.String("attribute", name), slog.Any("err", err))
	}
}

// Indices uploads an element index buffer.
func (g *Geometry) Indices(data []uint16) {
	g.buffers = append(g.buffers, UploadIndices(g.ctx, data))
}

func (g *Geometry) Buffers() []uint32 {
	return g.buffers
}

// Dispose deletes every buffer uploaded through g.
func (g *Geometry) Dispose() {
	for _, b := range g.buffers {
		g.ctx.DeleteBuffer(b)
	}
	g.buffers = nil
}

// UploadVertexAttribute creates an ARRAY_BUFFER holding data, points the
// named attribute of p at it (size floats per vertex, tightly packed) and
// enables the attribute. If the attribute does not resolve the buffer is
// returned together with an error wrapping ErrAttributeNotFound.
func UploadVertexAttribute(ctx Context, p *Program, name string, data []float32, size int) (uint32, error) {
	buf := ctx.CreateBuffer()
	ctx.BindBuffer(ARRAY_BUFFER, buf)
	if len(data) > 0 {
		ctx.BufferData(ARRAY_BUFFER, f32.Bytes(binary.LittleEndian, data...), STATIC_DRAW)
	}
	loc := p.Attrib(name)
	if loc < 0 {
		return buf, fmt.Errorf("%w: %q", ErrAttributeNotFound, name)
	}
	ctx.VertexAttribPointer(uint32(loc), int32(size), FLOAT, false, 0, 0)
	ctx.EnableVertexAttribArray(uint32(loc))
	return buf, nil
}

// UploadIndices creates an ELEMENT_ARRAY_BUFFER holding data.
func UploadIndices(ctx Context, data []uint16) uint32 {
	buf := ctx.CreateBuffer()
	ctx.BindBuffer(ELEMENT_ARRAY_BUFFER, buf)
	if len(data) > 0 {
		b := make([]byte, 2*len(data))
		for i, v := range data {
			binary.LittleEndian.PutUint16(b[2*i:], v)
		}
		ctx.BufferData(ELEMENT_ARRAY_BUFFER, b, STATIC_DRAW)
	}
	return buf
}

// BindSampler binds tex to texture unit and points the sampler uniform
// name of p at that unit.
func BindSampler(ctx Context, p *Program, name string, unit int, tex uint32) {
	ctx.ActiveTexture(TEXTURE0 + Enum(unit))
	ctx.BindTexture(TEXTURE_2D, tex)
	ctx.Uniform1i(p.Uniform(name), int32(unit))
}
