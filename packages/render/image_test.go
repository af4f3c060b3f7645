package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leonkasovan/gldemo/packages/render"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solid(w, h, color.RGBA{10, 20, 30, 255})))
	return buf.Bytes()
}

func TestLoaderFetchFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngBytes(t, 3, 2), 0o644))

	l := &render.Loader{Dir: dir}
	img, err := l.Fetch("a.png")
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())

	img, err = l.Fetch("file://" + filepath.ToSlash(filepath.Join(dir, "a.png")))
	require.NoError(t, err)
	assert.Equal(t, 3, img.Bounds().Dx())

	_, err = l.Fetch("nope.png")
	assert.Error(t, err)
}

func TestLoaderFetchHTTP(t *testing.T) {
	data := pngBytes(t, 8, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(data)
	}))
	defer srv.Close()

	l := &render.Loader{Client: srv.Client()}
	img, err := l.Fetch(srv.URL + "/img.png")
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dy())

	_, err = l.Fetch(srv.URL + "/missing.png")
	assert.ErrorContains(t, err, "404")
}

func TestLoaderDefaultClientTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	l := &render.Loader{Timeout: 50 * time.Millisecond}
	list := render.NewImageList(l, nil)
	list.Load([]string{srv.URL + "/slow.png"}, nil)

	closed := make(chan struct{})
	go func() {
		list.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Close blocked on a hung fetch")
	}

	start := time.Now()
	_, err := l.Fetch(srv.URL + "/slow.png")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestLoaderFetchUndecodable(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.png"), []byte("not an image"), 0o644))
	_, err := (&render.Loader{Dir: dir}).Fetch("x.png")
	assert.ErrorContains(t, err, "decode")
}

func TestLoaderResolvePosts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngBytes(t, 1, 1), 0o644))

	posted := make(chan func(), 1)
	l := &render.Loader{Dir: dir, Post: func(f func()) { posted <- f }}
	var got image.Image
	l.Resolve("a.png", func(img image.Image, err error) {
		require.NoError(t, err)
		got = img
	})

	select {
	case f := <-posted:
		assert.Nil(t, got)
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("resolve never posted")
	}
	require.NotNil(t, got)
}

func TestTextureCacheWithLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), pngBytes(t, 3, 2), 0o644))

	posted := make(chan func(), 1)
	l := &render.Loader{Dir: dir, Post: func(f func()) { posted <- f }}
	cache := render.NewTextureCache(l)
	ctx := newCtx()
	tex := cache.Load(ctx, "a.png")

	select {
	case f := <-posted:
		f()
	case <-time.After(5 * time.Second):
		t.Fatal("load never completed")
	}
	st := ctx.Textures[tex]
	assert.Equal(t, int32(3), st.Width)
	assert.Equal(t, []byte{10, 20, 30, 255}, st.Pixels[:4])
	assert.Len(t, st.Pixels, 3*2*4)
}
