package theme

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/anthonynsimon/bild/channel"

	"github.com/ironsheep/wallpaper-theme/internal/imaging"
)

// DefaultMaxEdge is the long edge cap applied before sampling.
const DefaultMaxEdge = imaging.DefaultMaxEdge

// Theme is the set of colors derived from one image.
type Theme struct {
	Primary    RGB `json:"primary"`     // Summary color of the image
	Secondary  RGB `json:"secondary"`   // Complement of Primary
	ActiveText RGB `json:"active_text"` // High-contrast text on Primary
	NormalText RGB `json:"normal_text"` // Softer text on Primary
}

// Options tunes a calculation. The zero value uses the defaults.
type Options struct {
	// MaxEdge caps the long edge of the working image. <= 0 means
	// DefaultMaxEdge.
	MaxEdge int
}

// Calculate derives a Theme from img using mode with default options.
func Calculate(img image.Image, mode Centrality) (*Theme, error) {
	return CalculateWithOptions(img, mode, Options{})
}

// CalculateWithOptions derives a Theme from img.
//
// The image is downscaled to the working resolution, the primary color is
// computed with mode, and the remaining colors are derived from it.
//
// For Average and Median each channel is reduced in its own goroutine. The
// call blocks until all three finish and fails if any of them fails; a panic
// inside a channel task is recovered and reported as a *ChannelTaskError.
//
// Errors match ErrEmptyImage for images without pixels and ErrChannelTask for
// failed channel tasks.
func CalculateWithOptions(img image.Image, mode Centrality, opts Options) (*Theme, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	working := imaging.Downscale(img, opts.MaxEdge)
	if working.Bounds().Empty() {
		return nil, ErrEmptyImage
	}

	var primary RGB
	var err error
	if kind, ok := mode.reduction(); ok {
		primary, err = reduceChannels(working, kind)
	} else if mode == Prevalent {
		primary, err = MostPrevalentImage(working)
	} else {
		err = fmt.Errorf("unsupported centrality %s", mode)
	}
	if err != nil {
		return nil, err
	}

	return Derive(primary), nil
}

// CalculateFile loads path through cache and derives its Theme. Load and
// decode failures match ErrDecode.
func CalculateFile(cache *imaging.ImageCache, path string, mode Centrality, opts Options) (*Theme, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	th, err := CalculateWithOptions(img, mode, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return th, nil
}

// Derive builds a full Theme around a known primary color.
func Derive(primary RGB) *Theme {
	active := ActiveText(primary)
	return &Theme{
		Primary:    primary,
		Secondary:  Complementary(primary),
		ActiveText: active,
		NormalText: NormalText(active),
	}
}

// Complementary mirrors every channel of c around the midpoint of its
// largest and smallest channel: out = (max + min) - channel.
//
// For example (10,20,30) becomes (30,20,10). Since max+min >= every channel
// and max+min-channel <= max, the result always fits in a byte.
func Complementary(c RGB) RGB {
	magnitude := int(c.Max()) + int(c.Min())
	return RGB{
		R: uint8(magnitude - int(c.R)),
		G: uint8(magnitude - int(c.G)),
		B: uint8(magnitude - int(c.B)),
	}
}

// ActiveText returns Black when every channel of primary exceeds 128 and
// White otherwise.
func ActiveText(primary RGB) RGB {
	if primary.R > 128 && primary.G > 128 && primary.B > 128 {
		return Black
	}
	return White
}

// NormalText returns the lower-contrast companion of an active text color.
func NormalText(active RGB) RGB {
	if active == Black {
		return DarkGray
	}
	return LightGray
}

// reduceFunc is swapped out by tests to inject task failures.
var reduceFunc = Reduce

// reduceChannels runs one task per channel. Each task extracts its own
// channel plane from the shared, read-only working image and writes a single
// result slot; nothing is shared between tasks.
func reduceChannels(working *image.RGBA, kind Reduction) (RGB, error) {
	var (
		wg      sync.WaitGroup
		results [3]uint8
		errs    [3]error
	)

	for _, ch := range []Channel{Red, Green, Blue} {
		wg.Add(1)
		go func(ch Channel) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					errs[ch] = &ChannelTaskError{Channel: ch, Err: fmt.Errorf("panic: %v", r)}
				}
			}()

			v, err := reduceFunc(extractPlane(working, ch), kind)
			if err != nil {
				errs[ch] = &ChannelTaskError{Channel: ch, Err: err}
				return
			}
			results[ch] = v
		}(ch)
	}
	wg.Wait()

	if err := errors.Join(errs[:]...); err != nil {
		return RGB{}, err
	}
	return RGB{R: results[Red], G: results[Green], B: results[Blue]}, nil
}

// extractPlane copies one channel of img into a new byte slice.
func extractPlane(img *image.RGBA, ch Channel) []uint8 {
	var plane *image.Gray
	switch ch {
	case Red:
		plane = channel.Extract(img, channel.Red)
	case Green:
		plane = channel.Extract(img, channel.Green)
	case Blue:
		plane = channel.Extract(img, channel.Blue)
	default:
		panic(fmt.Sprintf("unknown channel %d", int(ch)))
	}
	return plane.Pix
}
