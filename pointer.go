package sketch

import "fmt"

// PointerKind is the phase of a pointer event.
type PointerKind int

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

// String returns the lowercase name of the kind.
func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	default:
		return fmt.Sprintf("PointerKind(%d)", int(k))
	}
}

// ParsePointerKind parses "down", "move", "up" or "leave".
func ParsePointerKind(s string) (PointerKind, error) {
	for k := PointerDown; k <= PointerLeave; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("sketch: unknown pointer kind %q", s)
}

// Touch is one contact point of a touch event, in client coordinates.
type Touch struct {
	ClientX float64 `json:"x"`
	ClientY float64 `json:"y"`
}

// PointerEvent is a mouse or touch event in client coordinates.
// A non-nil Touches marks a touch event; its first entry is authoritative
// and ClientX/ClientY are ignored.
type PointerEvent struct {
	Kind    PointerKind
	ClientX float64
	ClientY float64
	Touches []Touch
}

// IsTouch reports whether ev came from a touch screen.
func (ev PointerEvent) IsTouch() bool {
	return ev.Touches != nil
}

// client returns the event position in client coordinates.
func (ev PointerEvent) client() (x, y float64, ok bool) {
	if ev.IsTouch() {
		if len(ev.Touches) == 0 {
			return 0, 0, false
		}
		return ev.Touches[0].ClientX, ev.Touches[0].ClientY, true
	}
	return ev.ClientX, ev.ClientY, true
}

// Locate converts ev into intrinsic raster coordinates:
//
//	raster = (client - element origin) * (intrinsic / displayed)
//
// per axis. It reports false when the geometry is not mounted or a touch
// event carries no touch point.
func (g Geometry) Locate(ev PointerEvent) (Point, bool) {
	if !g.Mounted() {
		return Point{}, false
	}
	x, y, ok := ev.client()
	if !ok {
		return Point{}, false
	}
	sx, sy := g.Scale()
	return Point{
		X: (x - g.Display.X) * sx,
		Y: (y - g.Display.Y) * sy,
	}, true
}
