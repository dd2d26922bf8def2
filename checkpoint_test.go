package sketch

import (
	"image"
	"image/color"
	"testing"
)

func TestCheckpointIsImmutable(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	src.SetRGBA(1, 1, color.RGBA{R: 10, A: 255})

	cp := newCheckpoint(src)
	src.SetRGBA(1, 1, color.RGBA{G: 20, A: 255})

	if got := cp.At(1, 1); got != (color.RGBA{R: 10, A: 255}) {
		t.Errorf("At(1, 1) = %v after mutating the source, want the committed value", got)
	}

	img := cp.ToImage()
	img.SetRGBA(1, 1, color.RGBA{B: 30, A: 255})
	if got := cp.At(1, 1); got != (color.RGBA{R: 10, A: 255}) {
		t.Errorf("At(1, 1) = %v after mutating ToImage, want the committed value", got)
	}
	if cp.Width() != 4 || cp.Height() != 4 {
		t.Errorf("size = %dx%d, want 4x4", cp.Width(), cp.Height())
	}
}

func TestCloneRGBASubImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	src.SetRGBA(5, 6, color.RGBA{R: 1, G: 2, B: 3, A: 4})

	sub := src.SubImage(image.Rect(4, 4, 8, 8)).(*image.RGBA)
	got := cloneRGBA(sub)

	if got.Rect != image.Rect(0, 0, 4, 4) {
		t.Fatalf("Rect = %v, want zero origin 4x4", got.Rect)
	}
	if got.Stride != 16 {
		t.Errorf("Stride = %d, want 16", got.Stride)
	}
	if c := got.RGBAAt(1, 2); c != (color.RGBA{R: 1, G: 2, B: 3, A: 4}) {
		t.Errorf("RGBAAt(1, 2) = %v, want the pixel from (5, 6)", c)
	}
}
