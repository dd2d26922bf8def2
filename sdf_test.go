package sketch

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func TestSmoothstepCoverage(t *testing.T) {
	tests := []struct {
		name string
		sdf  float64
		want float64
	}{
		{"fully inside", -2.0, 1.0},
		{"fully outside", 2.0, 0.0},
		{"at center", 0.0, 0.5},
		{"at inner edge", -sdfAntialiasWidth, 1.0},
		{"at outer edge", sdfAntialiasWidth, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := smoothstepCoverage(tt.sdf)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("smoothstepCoverage(%f) = %f, want %f", tt.sdf, got, tt.want)
			}
		})
	}
}

func TestSmoothstepCoverageMonotonic(t *testing.T) {
	// Coverage must be monotonically decreasing as sdf increases.
	prev := 1.0
	for sdf := -1.5; sdf <= 1.5; sdf += 0.01 {
		curr := smoothstepCoverage(sdf)
		if curr > prev+1e-10 {
			t.Errorf("coverage increased at sdf=%f: prev=%f, curr=%f", sdf, prev, curr)
		}
		prev = curr
	}
}

func TestFilledCircleCoverage(t *testing.T) {
	cx, cy, r := 50.0, 50.0, 20.0

	tests := []struct {
		name    string
		px, py  float64
		wantMin float64
		wantMax float64
	}{
		{"center", 50, 50, 0.99, 1.01},
		{"inside", 55, 50, 0.99, 1.01},
		{"near boundary", 69.5, 50, 0.0, 0.7}, // pixel center near circle edge
		{"just outside", 71, 50, 0.0, 0.1},
		{"far outside", 100, 100, -0.01, 0.01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filledCircleCoverage(tt.px+0.5, tt.py+0.5, cx, cy, r)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("coverage at (%f,%f) = %f, want [%f, %f]", tt.px, tt.py, got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestEraseDab(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 40))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.NRGBA{200, 100, 50, 255}), image.Point{}, draw.Src)

	eraseDab(dst, Pt(20, 20), 8)

	tests := []struct {
		name      string
		x, y      int
		wantAlpha func(a uint8) bool
	}{
		{"center cleared", 20, 20, func(a uint8) bool { return a == 0 }},
		{"inside cleared", 14, 20, func(a uint8) bool { return a == 0 }},
		{"edge partial", 27, 20, func(a uint8) bool { return a < 255 }},
		{"outside kept", 30, 20, func(a uint8) bool { return a == 255 }},
		{"corner kept", 0, 0, func(a uint8) bool { return a == 255 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := dst.RGBAAt(tt.x, tt.y).A
			if !tt.wantAlpha(a) {
				t.Errorf("alpha at (%d,%d) = %d", tt.x, tt.y, a)
			}
		})
	}

	// Cleared pixels carry no color either (premultiplied zero).
	if c := dst.RGBAAt(20, 20); c != (color.RGBA{}) {
		t.Errorf("center pixel = %v, want fully transparent", c)
	}
}

func TestEraseDabClipsToBounds(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// Must not panic when the dab hangs off the raster.
	eraseDab(dst, Pt(-3, 12), 6)
	eraseDab(dst, Pt(100, 100), 6)

	if a := dst.RGBAAt(0, 9).A; a != 0 {
		t.Errorf("alpha at (0,9) = %d, want 0", a)
	}
	if a := dst.RGBAAt(9, 0).A; a != 255 {
		t.Errorf("alpha at (9,0) = %d, want 255", a)
	}
}

func TestEraseDabZeroRadius(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	eraseDab(dst, Pt(2, 2), 0)
	if a := dst.RGBAAt(2, 2).A; a != 255 {
		t.Errorf("zero radius dab changed alpha to %d", a)
	}
}

func TestEraseSegmentFillsGaps(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 40, 10))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// One sample at each end, 30 pixels apart with a radius of 3.
	eraseDab(dst, Pt(5, 5), 3)
	eraseSegment(dst, Pt(5, 5), Pt(35, 5), 3)

	for x := 5; x < 35; x++ {
		if a := dst.RGBAAt(x, 5).A; a != 0 {
			t.Errorf("alpha at (%d,5) = %d, want 0", x, a)
		}
	}
	if a := dst.RGBAAt(20, 0).A; a != 255 {
		t.Errorf("alpha at (20,0) = %d, want 255", a)
	}
}

func TestEraseSegmentFarEndpoint(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	// A pointer jump from far outside must clip, not dab a billion times.
	eraseSegment(dst, Pt(-1e9, 5), Pt(5, 5), 2)
	for x := range 6 {
		if a := dst.RGBAAt(x, 5).A; a != 0 {
			t.Errorf("alpha at (%d,5) = %d, want 0", x, a)
		}
	}
	if a := dst.RGBAAt(9, 5).A; a != 255 {
		t.Errorf("alpha at (9,5) = %d, want 255", a)
	}

	// Entirely outside: nothing changes.
	eraseSegment(dst, Pt(-100, -100), Pt(100, -100), 2)
	if a := dst.RGBAAt(5, 0).A; a != 255 {
		t.Errorf("alpha at (5,0) = %d, want 255", a)
	}
}

func TestClipSegment(t *testing.T) {
	tests := []struct {
		name   string
		a, b   Point
		ok     bool
		wa, wb Point
	}{
		{"inside", Pt(1, 1), Pt(9, 9), true, Pt(1, 1), Pt(9, 9)},
		{"crossing", Pt(-10, 5), Pt(20, 5), true, Pt(0, 5), Pt(10, 5)},
		{"entering", Pt(5, -5), Pt(5, 5), true, Pt(5, 0), Pt(5, 5)},
		{"outside parallel", Pt(-5, 20), Pt(15, 20), false, Point{}, Point{}},
		{"outside diagonal", Pt(-5, 8), Pt(8, 21), false, Point{}, Point{}},
		{"degenerate", Pt(3, 3), Pt(3, 3), true, Pt(3, 3), Pt(3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, ok := clipSegment(tt.a, tt.b, 0, 0, 10, 10)
			if ok != tt.ok {
				t.Fatalf("clipSegment ok = %v, want %v", ok, tt.ok)
			}
			if ok && (a.Distance(tt.wa) > 1e-9 || b.Distance(tt.wb) > 1e-9) {
				t.Errorf("clipSegment = %v, %v, want %v, %v", a, b, tt.wa, tt.wb)
			}
		})
	}
}
