package sketch

import (
	"image"
	"math"
)

// sdfAntialiasWidth controls the smoothstep transition width in pixels.
const sdfAntialiasWidth = 0.7

// filledCircleCoverage computes anti-aliased coverage of the pixel centered
// at (px, py) by a filled circle, using a signed distance field.
// Returns a value in [0, 1] where 1 means fully inside.
func filledCircleCoverage(px, py, cx, cy, radius float64) float64 {
	return smoothstepCoverage(math.Hypot(px-cx, py-cy) - radius)
}

// smoothstepCoverage converts a signed distance to an anti-aliased coverage
// value using a Hermite smoothstep function.
//
// sdf < -afwidth => 1.0 (fully inside)
// sdf > +afwidth => 0.0 (fully outside)
// Otherwise       => smooth transition
func smoothstepCoverage(sdf float64) float64 {
	if sdf >= sdfAntialiasWidth {
		return 0
	}
	if sdf <= -sdfAntialiasWidth {
		return 1
	}
	t := (sdf + sdfAntialiasWidth) / (2 * sdfAntialiasWidth)
	// Hermite smoothstep: 3t^2 - 2t^3
	return 1 - (t * t * (3 - 2*t))
}

// eraseDab cuts a circular hole centered at c out of dst using the
// destination-out rule: every channel of a covered pixel is scaled by
// (1 - coverage). dst holds premultiplied pixels, so scaling all four
// channels removes color and alpha together. Pixels outside the dab's
// bounding box are never touched.
func eraseDab(dst *image.RGBA, c Point, radius float64) {
	if radius <= 0 {
		return
	}
	reach := radius + sdfAntialiasWidth
	box := image.Rect(
		int(math.Floor(c.X-reach)), int(math.Floor(c.Y-reach)),
		int(math.Ceil(c.X+reach))+1, int(math.Ceil(c.Y+reach))+1,
	).Intersect(dst.Bounds())

	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			cov := filledCircleCoverage(float64(x)+0.5, float64(y)+0.5, c.X, c.Y, radius)
			if cov <= 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			px := dst.Pix[i : i+4 : i+4]
			if cov >= 1 {
				px[0], px[1], px[2], px[3] = 0, 0, 0, 0
				continue
			}
			keep := 1 - cov
			for k := range px {
				px[k] = uint8(float64(px[k])*keep + 0.5)
			}
		}
	}
}

// eraseSegment dabs along the segment a-b, ending on b, at intervals of
// half the radius so a fast pointer leaves no gaps. a itself is not
// dabbed: it was the previous sample. The segment is first clipped to the
// dabs' reach around dst, so far-off endpoints cost nothing.
func eraseSegment(dst *image.RGBA, a, b Point, radius float64) {
	if radius <= 0 {
		return
	}
	reach := radius + sdfAntialiasWidth
	r := dst.Bounds()
	ca, cb, ok := clipSegment(a, b,
		float64(r.Min.X)-reach, float64(r.Min.Y)-reach,
		float64(r.Max.X)+reach, float64(r.Max.Y)+reach)
	if !ok {
		return
	}

	first := 1
	if ca != a {
		first = 0
	}
	step := max(radius/2, 0.5)
	n := max(int(math.Ceil(ca.Distance(cb)/step)), 1)
	for i := first; i <= n; i++ {
		t := float64(i) / float64(n)
		eraseDab(dst, Point{X: ca.X + (cb.X-ca.X)*t, Y: ca.Y + (cb.Y-ca.Y)*t}, radius)
	}
}

// clipSegment clips a-b to the box [minX,maxX] x [minY,maxY]
// (Liang-Barsky). It reports false when no part of the segment is inside.
func clipSegment(a, b Point, minX, minY, maxX, maxY float64) (Point, Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	t0, t1 := 0.0, 1.0
	for _, e := range [...][2]float64{
		{-dx, a.X - minX},
		{dx, maxX - a.X},
		{-dy, a.Y - minY},
		{dy, maxY - a.Y},
	} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return a, b, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return a, b, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return a, b, false
			}
			t1 = min(t1, t)
		}
	}
	return Point{X: a.X + t0*dx, Y: a.Y + t0*dy}, Point{X: a.X + t1*dx, Y: a.Y + t1*dy}, true
}
