package sketch

import (
	"image/color"
	"testing"
)

func TestDefaultPens(t *testing.T) {
	s := DefaultSketchPen()
	if s.Color != SketchInk {
		t.Errorf("DefaultSketchPen().Color = %v, want %v", s.Color, SketchInk)
	}
	if s.Width != 5 {
		t.Errorf("DefaultSketchPen().Width = %v, want 5", s.Width)
	}

	e := DefaultEditPen()
	if e.Color != EditInk {
		t.Errorf("DefaultEditPen().Color = %v, want %v", e.Color, EditInk)
	}
	if e.EraseRadius != 20 {
		t.Errorf("DefaultEditPen().EraseRadius = %v, want 20", e.EraseRadius)
	}
}

func TestPen_With(t *testing.T) {
	base := DefaultSketchPen()

	p := base.WithWidth(9).WithEraseRadius(3).WithColor(color.RGBA{0, 0, 255, 255})
	if p.Width != 9 || p.EraseRadius != 3 {
		t.Errorf("With* = %+v", p)
	}
	if p.Color != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("WithColor = %v", p.Color)
	}

	// The receiver is a value; p itself must be unchanged.
	if base.Width != 5 {
		t.Errorf("base pen mutated: %+v", base)
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"draw", ModeDraw, false},
		{"Erase", ModeErase, false},
		{" erase ", ModeErase, false},
		{"smudge", ModeDraw, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if ModeErase.String() != "erase" || Mode(7).String() != "Mode(7)" {
		t.Errorf("String() = %q, %q", ModeErase.String(), Mode(7).String())
	}
}
