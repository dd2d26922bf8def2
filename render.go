package sketch

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// lineRasterizer strokes draw-mode segments into one live buffer.
// It is bound to the buffer it was created for and must be rebuilt
// whenever the buffer is reallocated.
type lineRasterizer struct {
	dasher *rasterx.Dasher
}

func newLineRasterizer(dst *image.RGBA) *lineRasterizer {
	w, h := dst.Rect.Dx(), dst.Rect.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Rect)
	return &lineRasterizer{dasher: rasterx.NewDasher(w, h, scanner)}
}

// setPen configures width and color for the following segments.
// Caps, gaps and joins are round so consecutive segments meet smoothly.
func (r *lineRasterizer) setPen(width float64, c color.Color) {
	r.dasher.SetStroke(fixed.Int26_6(width*64), 0, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, nil, 0)
	r.dasher.SetColor(c)
}

// segment strokes the line a-b and composites it over the buffer.
func (r *lineRasterizer) segment(a, b Point) {
	r.dasher.Clear()
	r.dasher.Start(rasterx.ToFixedP(a.X, a.Y))
	r.dasher.Line(rasterx.ToFixedP(b.X, b.Y))
	r.dasher.Stop(false)
	r.dasher.Draw()
}

// interaction is the state of one continuous pointer interaction.
// It is created on Start and discarded on End; nothing outside the
// renderer sees it.
type interaction struct {
	mode   Mode
	points []Point

	// width and radius are in intrinsic pixels, fixed at Start.
	width  float64
	radius float64

	// drawn is set once the interaction has changed any pixel.
	drawn bool
}

func (it *interaction) last() Point {
	return it.points[len(it.points)-1]
}

// begin starts a new interaction at p and renders its immediate effect:
// erase mode applies one dab so a tap alone is visible.
func (s *Surface) begin(p Point) *interaction {
	k := s.geom.PenScale()
	it := &interaction{
		mode:   s.mode,
		points: []Point{p},
		width:  s.pen.Width * k,
		radius: s.pen.EraseRadius * k,
	}
	switch it.mode {
	case ModeErase:
		eraseDab(s.live, p, it.radius)
		it.drawn = true
	default:
		s.lines.setPen(it.width, s.pen.Color)
	}
	return it
}

// extend appends p to the interaction and renders it immediately.
func (s *Surface) extend(it *interaction, p Point) {
	prev := it.last()
	it.points = append(it.points, p)
	switch it.mode {
	case ModeErase:
		eraseSegment(s.live, prev, p, it.radius)
		it.drawn = true
	default:
		if p == prev {
			return
		}
		s.lines.segment(prev, p)
		it.drawn = true
	}
}
