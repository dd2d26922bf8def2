package sketch

import (
	"math"
	"testing"
)

func TestGeometryLocate(t *testing.T) {
	fixed := Geometry{
		Policy:  FixedResolution,
		Width:   1024,
		Height:  1024,
		Display: Rect{X: 10, Y: 20, Width: 512, Height: 256},
		DPR:     2,
	}

	tests := []struct {
		name   string
		g      Geometry
		ev     PointerEvent
		want   Point
		wantOK bool
	}{
		{
			name:   "mouse origin",
			g:      fixed,
			ev:     PointerEvent{Kind: PointerDown, ClientX: 10, ClientY: 20},
			want:   Pt(0, 0),
			wantOK: true,
		},
		{
			name:   "mouse scaled per axis",
			g:      fixed,
			ev:     PointerEvent{Kind: PointerMove, ClientX: 266, ClientY: 84},
			want:   Pt(512, 256),
			wantOK: true,
		},
		{
			name: "first touch wins",
			g:    fixed,
			ev: PointerEvent{
				Kind:    PointerDown,
				ClientX: 999, ClientY: 999,
				Touches: []Touch{{ClientX: 138, ClientY: 148}, {ClientX: 0, ClientY: 0}},
			},
			want:   Pt(256, 512),
			wantOK: true,
		},
		{
			name:   "touch without points",
			g:      fixed,
			ev:     PointerEvent{Kind: PointerMove, Touches: []Touch{}},
			wantOK: false,
		},
		{
			name:   "not mounted",
			g:      Geometry{Width: 100, Height: 100},
			ev:     PointerEvent{ClientX: 5, ClientY: 5},
			wantOK: false,
		},
		{
			name:   "viewport before first resize",
			g:      Geometry{Policy: ViewportMatched, Display: Rect{Width: 10, Height: 10}},
			ev:     PointerEvent{ClientX: 5, ClientY: 5},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.g.Locate(tt.ev)
			if ok != tt.wantOK {
				t.Fatalf("Locate() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Locate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGeometryIntrinsicFor(t *testing.T) {
	g := Geometry{Policy: ViewportMatched}
	w, h := g.intrinsicFor(Rect{Width: 300.4, Height: 200.6}, 2, MaxResolution)
	if w != 601 || h != 401 {
		t.Errorf("intrinsicFor = %dx%d, want 601x401", w, h)
	}

	f := Geometry{Policy: FixedResolution, Width: 64, Height: 48}
	w, h = f.intrinsicFor(Rect{Width: 1000, Height: 1000}, 3, 32)
	if w != 64 || h != 48 {
		t.Errorf("fixed intrinsicFor = %dx%d, want 64x48", w, h)
	}
}

func TestGeometryIntrinsicForLimit(t *testing.T) {
	g := Geometry{Policy: ViewportMatched}
	tests := []struct {
		name         string
		display      Rect
		dpr          float64
		limit        int
		wantW, wantH int
	}{
		{"under limit", Rect{Width: 100, Height: 50}, 2, 256, 200, 100},
		{"at limit", Rect{Width: 128, Height: 64}, 2, 256, 256, 128},
		{"wide", Rect{Width: 1e7, Height: 5e6}, 4, 64, 64, 32},
		{"tall", Rect{Width: 10, Height: 1000}, 1, 100, 1, 100},
		{"huge", Rect{Width: 1e300, Height: 1e300}, 4, 4096, 4096, 4096},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := g.intrinsicFor(tt.display, tt.dpr, tt.limit)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("intrinsicFor = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestGeometryPenScale(t *testing.T) {
	tests := []struct {
		name string
		g    Geometry
		want float64
	}{
		{"unmounted", Geometry{}, 1},
		{"identity", Geometry{Width: 64, Height: 64, Display: Rect{Width: 64, Height: 64}}, 1},
		{"uniform", Geometry{Width: 64, Height: 64, Display: Rect{Width: 16, Height: 16}}, 4},
		{"stretched", Geometry{Width: 64, Height: 64, Display: Rect{Width: 16, Height: 64}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.g.PenScale(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("PenScale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParsePolicyAndPointerKind(t *testing.T) {
	if p, err := ParsePolicy("Viewport"); err != nil || p != ViewportMatched {
		t.Errorf("ParsePolicy(Viewport) = %v, %v", p, err)
	}
	if _, err := ParsePolicy("stretch"); err == nil {
		t.Error("ParsePolicy(stretch) should fail")
	}
	for k := PointerDown; k <= PointerLeave; k++ {
		got, err := ParsePointerKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParsePointerKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParsePointerKind("hover"); err == nil {
		t.Error("ParsePointerKind(hover) should fail")
	}
}
