package theme

import (
	"image"
)

// tally is one distinct color and how often it occurred.
type tally struct {
	RGB
	count int
}

// MostPrevalent returns the exact color that occurs most often in pixels.
//
// When several colors share the highest count the winner is
// implementation-defined. This implementation returns the tied color with the
// smallest 0xRRGGBB value, but callers should not depend on that.
func MostPrevalent(pixels []RGB) (RGB, error) {
	if len(pixels) == 0 {
		return RGB{}, ErrEmptyImage
	}
	counts := make(map[RGB]int)
	for _, p := range pixels {
		counts[p]++
	}
	return mostFrequent(counts), nil
}

// MostPrevalentImage is MostPrevalent over every pixel of an 8-bit RGBA image,
// reading the pixel buffer directly. Alpha is ignored.
func MostPrevalentImage(img *image.RGBA) (RGB, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return RGB{}, ErrEmptyImage
	}
	counts := make(map[RGB]int)
	w := bounds.Dx()
	for y := 0; y < bounds.Dy(); y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			counts[RGB{R: row[i], G: row[i+1], B: row[i+2]}]++
		}
	}
	return mostFrequent(counts), nil
}

func mostFrequent(counts map[RGB]int) RGB {
	var best tally
	for c, n := range counts {
		if n > best.count || (n == best.count && c.packed() < best.packed()) {
			best = tally{RGB: c, count: n}
		}
	}
	return best.RGB
}
