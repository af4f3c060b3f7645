package main

import (
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonkasovan/gldemo/packages/render"
	"github.com/leonkasovan/gldemo/packages/render/rendertest"
)

type mapFetcher map[string]image.Image

func (m mapFetcher) Fetch(url string) (image.Image, error) {
	if img, ok := m[url]; ok {
		return img, nil
	}
	return nil, errors.New("not found")
}

func TestPrefetchedResolver(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	list := render.NewImageList(mapFetcher{"a.png": img}, nil)
	defer list.Close()
	done := make(chan struct{})
	list.Load([]string{"a.png", "b.png"}, func() { close(done) })
	<-done

	next := rendertest.NewResolver()
	r := prefetched{list, next}

	var got image.Image
	r.Resolve("a.png", func(i image.Image, err error) {
		require.NoError(t, err)
		got = i
	})
	assert.Same(t, img, got)
	assert.Empty(t, next.Requests)

	r.Resolve("b.png", func(image.Image, error) {})
	assert.Equal(t, []string{"b.png"}, next.Requests)
}

func TestEmbeddedShadersCompile(t *testing.T) {
	ctx := rendertest.NewContext("img")
	for _, pair := range [][2]string{{"position", "white"}, {"color", "color"}, {"texture", "texture"}} {
		vs, fs, err := shaderPair("", pair[0], pair[1])
		require.NoError(t, err)
		p, err := render.NewProgram(ctx, vs, fs)
		require.NoError(t, err, pair)
		assert.NotZero(t, p.Handle())
	}
	_, err := shaderSource("", "missing.frag.glsl")
	assert.Error(t, err)
}
