// Package theme derives a small desktop color theme from a wallpaper image.
//
// Given a decoded image.Image and a Centrality mode, Calculate produces four
// colors: a primary color summarising the image, a complementary secondary
// color, and two text colors chosen for contrast against the primary.
//
// # Centrality Modes
//
// The primary color is computed with one of three statistics:
//   - Average: arithmetic mean of each channel, truncated
//   - Median: median of each channel (even counts average the two middle values)
//   - Prevalent: the exact RGB triple that occurs most often
//
// Average and Median are computed independently per channel, one goroutine per
// channel. Prevalent is a single pass over whole pixels.
//
// # Working Resolution
//
// Images are downscaled so that their long edge is at most DefaultMaxEdge
// pixels before sampling. Smaller images are sampled as-is.
//
// # Color Arithmetic
//
// All arithmetic is plain 8-bit RGB with no gamma correction. Intermediate
// values are widened before being narrowed back to uint8, so no channel ever
// wraps around.
//
// # Color Representation
//
// RGB.Hex renders a color as exactly six lowercase hex digits with no prefix,
// for example "1a2b3c".
//
// # Errors
//
// Calculate and CalculateFile return errors matching one of:
//   - ErrDecode: the image could not be read or decoded
//   - ErrEmptyImage: the image has no pixels
//   - ErrChannelTask: one of the per-channel tasks failed
package theme
