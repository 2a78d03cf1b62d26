package theme

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func repeat(c RGB, n int) []RGB {
	out := make([]RGB, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func TestMostPrevalent(t *testing.T) {
	var pixels []RGB
	pixels = append(pixels, repeat(RGB{1, 1, 1}, 3)...)
	pixels = append(pixels, repeat(RGB{2, 2, 2}, 5)...)
	pixels = append(pixels, repeat(RGB{3, 3, 3}, 1)...)

	got, err := MostPrevalent(pixels)
	if err != nil {
		t.Fatalf("MostPrevalent failed: %v", err)
	}
	if got != (RGB{2, 2, 2}) {
		t.Errorf("got %v, want (2,2,2)", got)
	}
}

func TestMostPrevalent_ExactTriples(t *testing.T) {
	// Channels are not counted independently: (9,0,0) and (0,9,0) never
	// combine into (9,9,0).
	pixels := []RGB{
		{9, 0, 0}, {9, 0, 0},
		{0, 9, 0}, {0, 9, 0},
		{9, 9, 1}, {9, 9, 1}, {9, 9, 1},
	}
	got, err := MostPrevalent(pixels)
	if err != nil {
		t.Fatalf("MostPrevalent failed: %v", err)
	}
	if got != (RGB{9, 9, 1}) {
		t.Errorf("got %v, want (9,9,1)", got)
	}
}

func TestMostPrevalent_Tie(t *testing.T) {
	pixels := []RGB{{10, 0, 0}, {0, 10, 0}, {10, 0, 0}, {0, 10, 0}, {1, 1, 1}}

	got, err := MostPrevalent(pixels)
	if err != nil {
		t.Fatalf("MostPrevalent failed: %v", err)
	}
	if got != (RGB{10, 0, 0}) && got != (RGB{0, 10, 0}) {
		t.Errorf("got %v, want one of the tied colors", got)
	}
}

func TestMostPrevalent_Empty(t *testing.T) {
	if _, err := MostPrevalent(nil); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}

func TestMostPrevalentImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{20, 40, 60, 255})
		}
	}
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{255, 255, 255, 255})

	got, err := MostPrevalentImage(img)
	if err != nil {
		t.Fatalf("MostPrevalentImage failed: %v", err)
	}
	if got != (RGB{20, 40, 60}) {
		t.Errorf("got %v, want (20,40,60)", got)
	}
}

func TestMostPrevalentImage_SubImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, color.RGBA{200, 0, 0, 255})
		}
	}
	// Only the bottom-right 2x2 block is blue; a sub-image of it must not
	// see the red pixels that share its rows.
	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			img.Set(x, y, color.RGBA{0, 0, 200, 255})
		}
	}
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA)

	got, err := MostPrevalentImage(sub)
	if err != nil {
		t.Fatalf("MostPrevalentImage failed: %v", err)
	}
	if got != (RGB{0, 0, 200}) {
		t.Errorf("got %v, want (0,0,200)", got)
	}
}

func TestMostPrevalentImage_Empty(t *testing.T) {
	if _, err := MostPrevalentImage(&image.RGBA{}); !errors.Is(err, ErrEmptyImage) {
		t.Errorf("got %v, want ErrEmptyImage", err)
	}
}
