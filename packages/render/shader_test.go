package render_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonkasovan/gldemo/packages/render"
	"github.com/leonkasovan/gldemo/packages/render/rendertest"
)

const (
	vert = "in vec4 aVertexPosition;\nvoid main() { gl_Position = aVertexPosition; }\n"
	frag = "out vec4 color;\nvoid main() { color = vec4(1.0); }\n"
)

func TestNewProgramLinksAndActivates(t *testing.T) {
	ctx := rendertest.NewContext("img")
	p, err := render.NewProgram(ctx, vert, frag)
	require.NoError(t, err)
	assert.Equal(t, p.Handle(), ctx.Current)

	st := ctx.Programs[p.Handle()]
	require.NotNil(t, st)
	assert.True(t, st.Linked)
	require.Len(t, st.Shaders, 2)
	for _, s := range st.Shaders {
		assert.True(t, ctx.Shaders[s].Deleted, "shaders are flagged for deletion after link")
	}
	assert.Equal(t, render.VERTEX_SHADER, ctx.Shaders[st.Shaders[0]].Kind)
	assert.Equal(t, render.FRAGMENT_SHADER, ctx.Shaders[st.Shaders[1]].Kind)
}

func TestCompileErrorReleasesShader(t *testing.T) {
	ctx := rendertest.NewContext("img")
	_, err := render.Compile(ctx, render.FRAGMENT_SHADER, "#error 0:1: syntax error")
	var cerr *render.CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, render.FRAGMENT_SHADER, cerr.Kind)
	assert.Equal(t, "0:1: syntax error", cerr.Log)
	assert.Contains(t, err.Error(), "fragment shader")

	require.Len(t, ctx.Shaders, 1)
	for _, s := range ctx.Shaders {
		assert.True(t, s.Deleted)
	}
}

func TestNewProgramFragmentFailureReleasesVertex(t *testing.T) {
	ctx := rendertest.NewContext("img")
	p, err := render.NewProgram(ctx, vert, "#error bad fragment")
	assert.Nil(t, p)
	var cerr *render.CompileError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, render.FRAGMENT_SHADER, cerr.Kind)
	for _, s := range ctx.Shaders {
		assert.True(t, s.Deleted)
	}
	assert.Empty(t, ctx.Programs)
}

func TestLinkError(t *testing.T) {
	ctx := rendertest.NewContext("img")
	ctx.LinkLog = "varying vColor not written"
	p, err := render.NewProgram(ctx, vert, frag)
	assert.Nil(t, p)
	var lerr *render.LinkError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "varying vColor not written", lerr.Log)
	assert.Zero(t, ctx.Current)
	for _, st := range ctx.Programs {
		assert.True(t, st.Deleted)
	}
}

func TestProgramLocations(t *testing.T) {
	ctx := rendertest.NewContext("img")
	p, err := render.NewProgram(ctx, vert, frag)
	require.NoError(t, err)

	p.RegisterAttributes("aVertexColor", "aMissing")
	p.RegisterUniforms("uProjectionMatrix")
	p.RegisterTextures("uSampler")

	assert.Equal(t, int32(1), p.Attrib("aVertexColor"))
	assert.Equal(t, int32(-1), p.Attrib("aMissing"))
	assert.Equal(t, int32(1), p.Uniform("uProjectionMatrix"))
	unit, ok := p.TextureUnit("uSampler")
	assert.True(t, ok)
	assert.Equal(t, 0, unit)

	p.SetUniformMatrix("uModelViewMatrix", make([]float32, 16))
	assert.Len(t, ctx.Matrices[0], 16)

	h := p.Handle()
	p.Dispose()
	p.Dispose()
	assert.True(t, ctx.Programs[h].Deleted)
	assert.Zero(t, p.Handle())
	programs, _, _ := ctx.Live()
	assert.Zero(t, programs)
}
