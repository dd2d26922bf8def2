package sketch

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder for LoadEncoded
	_ "image/jpeg" // JPEG decoder for LoadEncoded
	_ "image/png"  // PNG decoder for LoadEncoded
	"io"
	"math"

	"github.com/h2non/filetype"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder for LoadEncoded
)

// loadableExtensions lists the formats LoadEncoded accepts, keyed by the
// extension filetype reports.
var loadableExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"gif":  true,
	"webp": true,
}

// MaxImageResolution limits either edge of an image DecodeImage accepts.
// The header is checked before any pixel is decoded.
const MaxImageResolution = 8192

// DecodeImage sniffs and decodes an encoded PNG, JPEG, GIF or WebP image.
// Anything else, and images with an edge longer than MaxImageResolution,
// yield an error wrapping ErrUnsupportedImage.
func DecodeImage(data []byte) (image.Image, error) {
	kind, err := filetype.Match(data)
	if err != nil || !loadableExtensions[kind.Extension] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, kind.MIME.Value)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width > MaxImageResolution || cfg.Height > MaxImageResolution {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels per edge",
			ErrUnsupportedImage, cfg.Width, cfg.Height, MaxImageResolution)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if img.Bounds().Empty() {
		return nil, ErrUnsupportedImage
	}
	return img, nil
}

// LoadEncoded decodes an image from r and loads it with LoadRaster.
func (s *Surface) LoadEncoded(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	img, err := DecodeImage(data)
	if err != nil {
		Logger().Warn("sketch: rejected image", "bytes", len(data), "err", err)
		return err
	}
	return s.LoadRaster(img)
}

// LoadRaster replaces the surface content with img and commits the result.
//
// The surface is filled with its background color, then img is scaled
// with its aspect ratio preserved until it fits: an image wider than the
// surface spans the full width and is centered vertically, any other
// spans the full height and is centered horizontally. The background shows
// in the remaining bands.
func (s *Surface) LoadRaster(img image.Image) error {
	if s.live == nil {
		return ErrNotMounted
	}
	if img == nil || img.Bounds().Empty() {
		return ErrUnsupportedImage
	}
	s.End()

	xdraw.Draw(s.live, s.live.Rect, image.NewUniform(s.background), image.Point{}, xdraw.Src)
	dr := fitRect(s.live.Rect, img.Bounds())
	xdraw.CatmullRom.Scale(s.live, dr, img, img.Bounds(), xdraw.Over, nil)

	Logger().Debug("sketch: raster loaded", "src", img.Bounds().Size(), "dst", dr)
	s.commit()
	return nil
}

// fitRect returns the largest rect inside dst with the aspect ratio of src,
// centered along the axis with slack.
func fitRect(dst, src image.Rectangle) image.Rectangle {
	cw, ch := float64(dst.Dx()), float64(dst.Dy())
	aspect := float64(src.Dx()) / float64(src.Dy())

	var x, y, w, h float64
	if aspect > cw/ch {
		w = cw
		h = w / aspect
		y = (ch - h) / 2
	} else {
		h = ch
		w = h * aspect
		x = (cw - w) / 2
	}

	return image.Rect(
		dst.Min.X+int(math.Round(x)), dst.Min.Y+int(math.Round(y)),
		dst.Min.X+int(math.Round(x+w)), dst.Min.Y+int(math.Round(y+h)),
	)
}
