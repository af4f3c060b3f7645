package main

import (
	"image"

	"github.com/leonkasovan/gldemo/packages/render"
)

// prefetched resolves images the ImageList already holds without a new
// fetch and passes everything else to next.
type prefetched struct {
	list *render.ImageList
	next render.Resolver
}

func (r prefetched) Resolve(url string, done func(image.Image, error)) {
	if img, ok := r.list.Get(url); ok {
		done(img, nil)
		return
	}
	r.next.Resolve(url, done)
}
