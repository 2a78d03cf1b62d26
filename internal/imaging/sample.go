package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// DefaultMaxEdge is the default cap on the long edge of a working image.
const DefaultMaxEdge = 1000

// SampleSize returns the dimensions Downscale produces for a width x height
// image. Neither dimension drops below 1 for a non-empty image.
func SampleSize(width, height, maxEdge int) (int, int) {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if width <= maxEdge && height <= maxEdge {
		return width, height
	}

	var w, h int
	if width >= height {
		w = maxEdge
		h = int(float64(height)*float64(maxEdge)/float64(width) + 0.5)
	} else {
		h = maxEdge
		w = int(float64(width)*float64(maxEdge)/float64(height) + 0.5)
	}
	return max(w, 1), max(h, 1)
}

// Downscale returns a copy of img whose long edge is at most maxEdge pixels.
//
// Parameters:
//   - img: The source image. It is not modified.
//   - maxEdge: Long edge cap in pixels. Values <= 0 select DefaultMaxEdge.
//
// Returns an *image.RGBA with bounds starting at (0,0). The aspect ratio is
// preserved and images already within the cap are copied without resampling,
// so their pixel values are exact.
//
// # Alpha
//
// Alpha is dropped: every pixel keeps its stored (non-premultiplied) RGB and
// becomes fully opaque, so a translucent pixel samples as the color it was
// painted with rather than a darkened one.
func Downscale(img image.Image, maxEdge int) *image.RGBA {
	bounds := img.Bounds()
	if bounds.Empty() {
		return &image.RGBA{}
	}

	w, h := SampleSize(bounds.Dx(), bounds.Dy(), maxEdge)
	if w == bounds.Dx() && h == bounds.Dy() {
		return opaque(imaging.Clone(img))
	}
	return opaque(imaging.Resize(img, w, h, imaging.Linear))
}

// opaque sets every alpha byte of n to 0xff and reuses its buffer as RGBA.
// Once alpha is 0xff the NRGBA and RGBA encodings of a pixel are identical.
func opaque(n *image.NRGBA) *image.RGBA {
	for i := 3; i < len(n.Pix); i += 4 {
		n.Pix[i] = 0xff
	}
	return &image.RGBA{Pix: n.Pix, Stride: n.Stride, Rect: n.Rect}
}
