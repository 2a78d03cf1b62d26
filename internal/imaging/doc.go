// Package imaging loads wallpaper images and prepares them for sampling.
//
// This package covers the steps before any color statistics run: decoding a
// file into an image.Image, caching decoded images by path, and reducing an
// image to a bounded working resolution.
//
// # Supported Formats
//
// PNG, JPEG, GIF, WebP, BMP, TIFF and AVIF are registered with the standard
// image package. JPEG EXIF orientation is honoured on load.
//
// # Working Resolution
//
// Downscale caps the long edge of an image (DefaultMaxEdge pixels unless told
// otherwise) and always returns an *image.RGBA anchored at (0,0). Images that
// already fit are copied pixel for pixel, so small test images and thumbnails
// keep their exact colors. Alpha is dropped: each pixel keeps its stored RGB.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Downscale never modifies its input
// and may be called concurrently on the same image.
package imaging
