package render

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Resolver turns a URL into decoded pixels asynchronously. done must be
// called exactly once, on the render thread.
type Resolver interface {
	Resolve(url string, done func(img image.Image, err error))
}

// Fetcher loads and decodes an image synchronously.
type Fetcher interface {
	Fetch(url string) (image.Image, error)
}

// Loader fetches images from http(s) URLs, file:// URLs or plain paths.
// Relative paths are resolved against Dir.
//
// Resolve runs the fetch on its own goroutine and hands the result back
// through Post, which must queue the callback onto the render thread.
type Loader struct {
	Dir string
	// Client is used for http(s) URLs. When nil, a client with Timeout
	// (or DefaultFetchTimeout) is used.
	Client  *http.Client
	Timeout time.Duration
	Post    func(func())
}

// DefaultFetchTimeout bounds an http(s) fetch made without an explicit
// client.
const DefaultFetchTimeout = 30 * time.Second

func (l *Loader) Fetch(rawURL string) (image.Image, error) {
	rc, err := l.open(rawURL)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	img, _, err := image.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func (l *Loader) Resolve(rawURL string, done func(image.Image, error)) {
	post := l.Post
	if post == nil {
		post = func(f func()) { f() }
	}
	go func() {
		img, err := l.Fetch(rawURL)
		post(func() { done(img, err) })
	}()
}

func (l *Loader) open(rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err == nil {
		switch u.Scheme {
		case "http", "https":
			client := l.Client
			if client == nil {
				timeout := l.Timeout
				if timeout <= 0 {
					timeout = DefaultFetchTimeout
				}
				client = &http.Client{Timeout: timeout}
			}
			resp, err := client.Get(rawURL)
			if err != nil {
				return nil, err
			}
			if resp.StatusCode != http.StatusOK {
				resp.Body.Close()
				return nil, fmt.Errorf("http status %s", resp.Status)
			}
			return resp.Body, nil
		case "file":
			return os.Open(filepath.FromSlash(u.Path))
		}
	}
	path := filepath.FromSlash(strings.TrimSpace(rawURL))
	if !filepath.IsAbs(path) && l.Dir != "" {
		path = filepath.Join(l.Dir, path)
	}
	return os.Open(path)
}

// toRGBA returns img as tightly packed 8-bit RGBA.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == 4*rgba.Rect.Dx() && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}

// IsPowerOf2 reports whether n is a power of two. Like the bit test it is
// built on, it also holds for 0.
func IsPowerOf2(n int) bool {
	return n&(n-1) == 0
}
