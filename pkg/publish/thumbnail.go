package publish

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down so its longer side is at most size pixels,
// keeping the aspect ratio. Images already small enough are returned as is.
func Thumbnail(img image.Image, size uint) image.Image {
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if size == 0 || (w <= size && h <= size) {
		return img
	}
	if w >= h {
		return resize.Resize(size, 0, img, resize.Bilinear)
	}
	return resize.Resize(0, size, img, resize.Bilinear)
}
