package sketch

import (
	"fmt"
	"image/color"
	"strings"
)

// Mode selects what an interaction does to the live buffer.
type Mode int

const (
	// ModeDraw paints a continuous round-capped line, composited over the
	// existing pixels.
	ModeDraw Mode = iota

	// ModeErase cuts circular dabs out of the existing pixels, leaving them
	// fully transparent.
	ModeErase
)

// String returns the lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeDraw:
		return "draw"
	case ModeErase:
		return "erase"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses "draw" or "erase" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draw":
		return ModeDraw, nil
	case "erase":
		return ModeErase, nil
	}
	return ModeDraw, fmt.Errorf("sketch: unknown mode %q", s)
}

// Pen defines how interactions render.
// Width and EraseRadius are in displayed pixels; the surface scales them by
// Geometry.PenScale so their on-screen size stays constant whatever the
// raster resolution.
type Pen struct {
	// Color is the draw-mode stroke color. It is composited as given;
	// an opaque color replaces what lies beneath.
	Color color.NRGBA

	// Width is the draw-mode line width. Caps and joins are always round.
	Width float64

	// EraseRadius is the radius of one erase-mode dab.
	EraseRadius float64
}

// DefaultSketchPen returns the pen of a sketch surface: light ink,
// 5 pixel lines.
func DefaultSketchPen() Pen {
	return Pen{
		Color:       SketchInk,
		Width:       5,
		EraseRadius: 20,
	}
}

// DefaultEditPen returns the pen of an edit surface: magenta 5 pixel
// lines and a 20 pixel erase brush.
func DefaultEditPen() Pen {
	return Pen{
		Color:       EditInk,
		Width:       5,
		EraseRadius: 20,
	}
}

// WithColor returns a copy of the Pen with the given stroke color.
func (p Pen) WithColor(c color.Color) Pen {
	p.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	return p
}

// WithWidth returns a copy of the Pen with the given line width.
func (p Pen) WithWidth(w float64) Pen {
	p.Width = w
	return p
}

// WithEraseRadius returns a copy of the Pen with the given erase radius.
func (p Pen) WithEraseRadius(r float64) Pen {
	p.EraseRadius = r
	return p
}
