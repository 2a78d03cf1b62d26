package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Channel identifies one color component of an RGB pixel.
type Channel int

const (
	Red Channel = iota
	Green
	Blue
)

var channelNames = [...]string{"red", "green", "blue"}

func (c Channel) String() string {
	if c < Red || c > Blue {
		return fmt.Sprintf("channel(%d)", int(c))
	}
	return channelNames[c]
}

// Ranked is implemented by anything that exposes three RGB channel values.
// The ranking helpers below are written once against it.
type Ranked interface {
	Channels() (r, g, b uint8)
}

// MaxChannel returns the largest channel of c. Ties go to the earlier channel
// in red, green, blue order.
func MaxChannel(c Ranked) Channel {
	r, g, b := c.Channels()
	switch {
	case r >= g && r >= b:
		return Red
	case g >= r && g >= b:
		return Green
	default:
		return Blue
	}
}

// MinChannel returns the smallest channel of c. Ties go to the earlier channel
// in red, green, blue order.
func MinChannel(c Ranked) Channel {
	r, g, b := c.Channels()
	switch {
	case r <= g && r <= b:
		return Red
	case g <= r && g <= b:
		return Green
	default:
		return Blue
	}
}

// MiddleChannel returns the channel that is neither MaxChannel nor MinChannel.
// For a gray color all three rank equal and the result is Green.
func MiddleChannel(c Ranked) Channel {
	hi, lo := MaxChannel(c), MinChannel(c)
	if hi == lo {
		return Green
	}
	// Red+Green+Blue == 3
	return 3 - hi - lo
}

// RGB is an 8-bit per channel color.
type RGB struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// Common colors used by the text color derivation.
var (
	Black     = RGB{0, 0, 0}
	White     = RGB{255, 255, 255}
	DarkGray  = RGB{60, 60, 60}
	LightGray = RGB{195, 195, 195}
)

// Channels implements Ranked.
func (c RGB) Channels() (r, g, b uint8) { return c.R, c.G, c.B }

// Channel returns the value of a single channel.
func (c RGB) Channel(ch Channel) uint8 {
	switch ch {
	case Red:
		return c.R
	case Green:
		return c.G
	default:
		return c.B
	}
}

// Max returns the value of the largest channel.
func (c RGB) Max() uint8 { return c.Channel(MaxChannel(c)) }

// Min returns the value of the smallest channel.
func (c RGB) Min() uint8 { return c.Channel(MinChannel(c)) }

// Hex renders the color as six lowercase hex digits without a leading '#'.
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

func (c RGB) String() string { return c.Hex() }

// packed returns the color as 0xRRGGBB.
func (c RGB) packed() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// ParseRGB parses a hex color such as "1a2b3c" or "#1A2B3C".
func ParseRGB(s string) (RGB, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(digits) != 6 {
		return RGB{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	col, err := colorful.Hex("#" + strings.ToLower(digits))
	if err != nil {
		return RGB{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := col.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// colorful converts c into go-colorful's float representation.
func (c RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}
