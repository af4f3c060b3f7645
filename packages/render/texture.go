package render

import (
	"image"
	"log/slog"
)

// placeholderPixel is shown until the real image arrives: opaque blue.
var placeholderPixel = []byte{0, 0, 255, 255}

type textureKey struct {
	surface string
	url     string
}

// textureEntry is shared with the load callback of its texture. GL
// recycles deleted names, so released is what tells a late callback that
// tex may now belong to someone else.
type textureEntry struct {
	ctx      Context
	tex      uint32
	released bool
}

// TextureCache hands out one GL texture per (context, URL). A texture is
// usable as soon as it is returned: it holds a 1x1 placeholder until the
// image has loaded, after which the pixels are replaced in place. Draws
// issued in between show the placeholder.
//
// TextureCache is used from the render thread only.
type TextureCache struct {
	resolver Resolver
	entries  map[textureKey]*textureEntry

	// OnError, if set, receives every image that failed to load.
	OnError func(*ImageLoadError)
}

func NewTextureCache(r Resolver) *TextureCache {
	return &TextureCache{resolver: r, entries: make(map[textureKey]*textureEntry)}
}

// Load returns the texture for url on ctx, creating it and starting the
// image load the first time.
func (c *TextureCache) Load(ctx Context, url string) uint32 {
	if e, ok := c.entries[textureKey{ctx.ID(), url}]; ok {
		Logger().Debug("texture cache hit", slog.String("surface", ctx.ID()), slog.String("url", url))
		return e.tex
	}
	return c.Reload(ctx, url)
}

// Reload ignores any cached texture and creates a new one for url,
// replacing the cache entry. The old texture is left alone; a load still
// in flight for it completes into the old texture.
func (c *TextureCache) Reload(ctx Context, url string) uint32 {
	tex := ctx.CreateTexture()
	e := &textureEntry{ctx: ctx, tex: tex}
	c.entries[textureKey{ctx.ID(), url}] = e

	ctx.BindTexture(TEXTURE_2D, tex)
	ctx.TexImage2D(TEXTURE_2D, 0, RGBA, 1, 1, RGBA, UNSIGNED_BYTE, placeholderPixel)

	c.resolver.Resolve(url, func(img image.Image, err error) {
		if err != nil {
			lerr := &ImageLoadError{URL: url, Err: err}
			Logger().Warn("texture stays at placeholder", slog.String("surface", ctx.ID()), slog.Any("err", lerr))
			if c.OnError != nil {
				c.OnError(lerr)
			}
			return
		}
		if e.released {
			return
		}
		uploadImage(ctx, tex, img)
		Logger().Info("texture uploaded", slog.String("surface", ctx.ID()), slog.String("url", url),
			slog.Int("width", img.Bounds().Dx()), slog.Int("height", img.Bounds().Dy()))
	})
	return tex
}

// Lookup returns the cached texture without creating one.
func (c *TextureCache) Lookup(ctx Context, url string) (uint32, bool) {
	if e, ok := c.entries[textureKey{ctx.ID(), url}]; ok {
		return e.tex, true
	}
	return 0, false
}

func (c *TextureCache) Len() int {
	return len(c.entries)
}

// Release deletes the texture cached for url on ctx.
func (c *TextureCache) Release(ctx Context, url string) {
	k := textureKey{ctx.ID(), url}
	if e, ok := c.entries[k]; ok {
		e.release()
		delete(c.entries, k)
	}
}

// Dispose deletes every cached texture.
func (c *TextureCache) Dispose() {
	for k, e := range c.entries {
		e.release()
		delete(c.entries, k)
	}
}

func (e *textureEntry) release() {
	e.released = true
	e.ctx.DeleteTexture(e.tex)
}

// uploadImage replaces the pixels of tex and sets sampling for the
// image size: mipmapped linear filtering for power-of-two images,
// clamped linear filtering otherwise.
func uploadImage(ctx Context, tex uint32, img image.Image) {
	rgba := toRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	ctx.BindTexture(TEXTURE_2D, tex)
	ctx.TexImage2D(TEXTURE_2D, 0, RGBA, int32(w), int32(h), RGBA, UNSIGNED_BYTE, rgba.Pix)
	if IsPowerOf2(w) && IsPowerOf2(h) {
		ctx.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, int32(LINEAR))
		ctx.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int32(LINEAR_MIPMAP_NEAREST))
		ctx.GenerateMipmap(TEXTURE_2D)
	} else {
		ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_S, int32(CLAMP_TO_EDGE))
		ctx.TexParameteri(TEXTURE_2D, TEXTURE_WRAP_T, int32(CLAMP_TO_EDGE))
		ctx.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, int32(LINEAR))
	}
}
