package sketch

import (
	"fmt"
	"math"
	"strings"
)

// Policy decides how a surface's intrinsic resolution follows its display.
type Policy int

const (
	// FixedResolution keeps the intrinsic size constant. A resize only
	// changes how the raster is scaled on screen.
	FixedResolution Policy = iota

	// ViewportMatched recomputes the intrinsic size as the displayed size
	// times the device pixel ratio on every resize, rescaling the content
	// into the new buffer.
	ViewportMatched
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case FixedResolution:
		return "fixed"
	case ViewportMatched:
		return "viewport"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy parses "fixed" or "viewport" (case-insensitive).
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fixed":
		return FixedResolution, nil
	case "viewport":
		return ViewportMatched, nil
	}
	return FixedResolution, fmt.Errorf("sketch: unknown resolution policy %q", s)
}

// Rect is the on-screen rectangle of a surface element, in client
// (CSS pixel) coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) finite() bool {
	for _, v := range [...]float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Geometry maps a raster's intrinsic pixel grid onto its displayed rect.
type Geometry struct {
	Policy Policy

	// Width and Height are the intrinsic raster dimensions.
	// Zero until the first resize under ViewportMatched.
	Width, Height int

	// Display is the element rect the raster is shown in.
	// Empty until the surface is mounted.
	Display Rect

	// DPR is the device pixel ratio of the display.
	DPR float64
}

// Mounted reports whether the raster has both an intrinsic size and an
// on-screen rect.
func (g Geometry) Mounted() bool {
	return g.Width > 0 && g.Height > 0 && !g.Display.Empty()
}

// Scale returns the intrinsic-to-displayed ratio per axis.
// An unmounted geometry scales 1:1.
func (g Geometry) Scale() (sx, sy float64) {
	if !g.Mounted() {
		return 1, 1
	}
	return float64(g.Width) / g.Display.Width, float64(g.Height) / g.Display.Height
}

// PenScale returns the factor that turns a pen size in display pixels
// into intrinsic pixels: the geometric mean of the two axis scales, so a
// stretched display distorts neither axis more than the other.
func (g Geometry) PenScale() float64 {
	sx, sy := g.Scale()
	return math.Sqrt(sx * sy)
}

// intrinsicFor returns the intrinsic size the policy assigns to a display
// rect shown at the given device pixel ratio. Under ViewportMatched the
// size is scaled down, keeping its aspect ratio, until neither edge
// exceeds limit.
func (g Geometry) intrinsicFor(display Rect, dpr float64, limit int) (w, h int) {
	if g.Policy != ViewportMatched {
		return g.Width, g.Height
	}
	return fitWithin(display.Width*dpr, display.Height*dpr, limit)
}

// fitWithin rounds w x h to whole pixels, scaled down uniformly so that
// neither edge exceeds limit. Both edges are at least 1. w and h must be
// finite.
func fitWithin(w, h float64, limit int) (int, int) {
	if m := max(w, h); m > float64(limit) {
		f := float64(limit) / m
		w, h = w*f, h*f
	}
	return max(int(math.Round(w)), 1), max(int(math.Round(h)), 1)
}
