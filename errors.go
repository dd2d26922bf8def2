package sketch

import "errors"

var (
	// ErrInvalidGeometry is returned by Resize for an empty display rect.
	ErrInvalidGeometry = errors.New("sketch: display rect must have positive width and height")

	// ErrNotMounted is returned by operations that need a raster before a
	// ViewportMatched surface has been sized.
	ErrNotMounted = errors.New("sketch: surface has no raster yet")

	// ErrUnsupportedImage is returned when loaded data is not a PNG, JPEG,
	// GIF or WebP image, or decodes to an empty image.
	ErrUnsupportedImage = errors.New("sketch: unsupported image")
)
