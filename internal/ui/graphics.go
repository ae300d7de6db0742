package ui

import (
	"image"

	"github.com/qeesung/image2ascii/convert"
)

// renderThumbnail converts img to colored ASCII art of at most width x height
// cells.
func renderThumbnail(img image.Image, width, height int) string {
	if img == nil || width <= 0 || height <= 0 {
		return ""
	}

	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}

	// Terminal cells are about twice as tall as wide.
	w := width
	h := int(float64(b.Dy()) / float64(b.Dx()) * float64(w) * 0.5)
	if h > height {
		h = height
		w = int(float64(b.Dx()) / float64(b.Dy()) * float64(h) * 2)
	}
	w = max(1, min(w, width))
	h = max(1, h)

	opts := convert.DefaultOptions
	opts.FixedWidth = w
	opts.FixedHeight = h
	opts.Colored = true
	opts.Ratio = 0.5

	return convert.NewImageConverter().Image2ASCIIString(img, &opts)
}
