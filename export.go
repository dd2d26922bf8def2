package sketch

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image/png"
	"io"
	"strings"
)

const pngDataURLPrefix = "data:image/png;base64,"

// EncodePNG writes the live buffer as PNG.
func (s *Surface) EncodePNG(w io.Writer) error {
	if s.live == nil {
		return ErrNotMounted
	}
	return png.Encode(w, s.live)
}

// ExportRaster returns the live buffer encoded as PNG: exactly the pixels
// a commit would snapshot at this instant. Encoding is deterministic, so
// exporting after an undo reproduces the bytes exported when that
// checkpoint was committed.
func (s *Surface) ExportRaster() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportDataURL returns ExportRaster as a "data:image/png;base64," URL.
func (s *Surface) ExportDataURL() (string, error) {
	data, err := s.ExportRaster()
	if err != nil {
		return "", err
	}
	return pngDataURLPrefix + base64.StdEncoding.EncodeToString(data), nil
}

// ParseDataURL decodes the payload of a base64 data URL and returns it
// with its media type.
func ParseDataURL(url string) (mediaType string, data []byte, err error) {
	rest, ok := strings.CutPrefix(url, "data:")
	if !ok {
		return "", nil, errors.New("sketch: not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("sketch: data URL has no payload")
	}
	mediaType, ok = strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("sketch: data URL is not base64 encoded")
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return mediaType, data, nil
}
