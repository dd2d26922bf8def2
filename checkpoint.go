package sketch

import (
	"image"
	"image/color"
)

// Checkpoint is an immutable full-resolution snapshot of a surface.
// Pixels are premultiplied RGBA, 4 bytes per pixel.
//
// Checkpoint implements image.Image; it has no mutating methods.
type Checkpoint struct {
	img *image.RGBA
}

// newCheckpoint copies src into a new checkpoint with a tight stride.
func newCheckpoint(src *image.RGBA) *Checkpoint {
	return &Checkpoint{img: cloneRGBA(src)}
}

// Width returns the width of the snapshot in pixels.
func (c *Checkpoint) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the height of the snapshot in pixels.
func (c *Checkpoint) Height() int {
	return c.img.Rect.Dy()
}

// ToImage returns a mutable copy of the snapshot.
func (c *Checkpoint) ToImage() *image.RGBA {
	return cloneRGBA(c.img)
}

// At implements the image.Image interface.
func (c *Checkpoint) At(x, y int) color.Color {
	return c.img.At(x, y)
}

// Bounds implements the image.Image interface.
func (c *Checkpoint) Bounds() image.Rectangle {
	return c.img.Rect
}

// ColorModel implements the image.Image interface.
func (c *Checkpoint) ColorModel() color.Model {
	return color.RGBAModel
}

// sameSize reports whether the snapshot can be copied into dst verbatim.
func (c *Checkpoint) sameSize(dst *image.RGBA) bool {
	return c.img.Rect.Size() == dst.Rect.Size()
}

// cloneRGBA copies src into a new zero-origin image with a tight stride.
func cloneRGBA(src *image.RGBA) *image.RGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Stride == dst.Stride && src.Rect.Min == (image.Point{}) {
		copy(dst.Pix, src.Pix)
		return dst
	}
	for y := 0; y < h; y++ {
		i := src.PixOffset(src.Rect.Min.X, src.Rect.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], src.Pix[i:i+w*4])
	}
	return dst
}
