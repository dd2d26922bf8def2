package studio

import (
	"fmt"
	"strings"
)

// Preset is one of the selectable generation styles.
type Preset int

const (
	Photorealistic Preset = iota
	Illustration
	Cartoon

	// Custom uses the free-text style and, optionally, a reference image.
	Custom
)

// Presets lists every preset in display order.
var Presets = []Preset{Photorealistic, Illustration, Cartoon, Custom}

// String returns the display name, which is also the style prompt of the
// non-custom presets.
func (p Preset) String() string {
	switch p {
	case Photorealistic:
		return "Photorealistic"
	case Illustration:
		return "Illustration"
	case Cartoon:
		return "Cartoon"
	case Custom:
		return "Custom"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// ParsePreset parses a preset display name (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if strings.EqualFold(p.String(), strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return Photorealistic, fmt.Errorf("studio: unknown style %q", s)
}

// Style is the style selection for a generation.
type Style struct {
	Preset Preset

	// Text is the custom style description, used only with Custom.
	Text string

	// Reference is an encoded style reference image, used only with
	// Custom.
	Reference []byte
}

// Select switches to preset p. Leaving Custom drops the reference image;
// the custom text is kept for when Custom is chosen again.
func (s Style) Select(p Preset) Style {
	s.Preset = p
	if p != Custom {
		s.Reference = nil
	}
	return s
}

// Prompt returns the style text sent to the generator.
func (s Style) Prompt() string {
	if s.Preset == Custom {
		return strings.TrimSpace(s.Text)
	}
	return s.Preset.String()
}

// References returns the reference images to send with the request.
func (s Style) References() [][]byte {
	if s.Preset != Custom || len(s.Reference) == 0 {
		return nil
	}
	return [][]byte{s.Reference}
}
