package studio

import "errors"

// Precondition failures of Generate and Edit. No request is sent when one
// of these is returned.
var (
	ErrMissingCredential = errors.New("studio: no API key configured")
	ErrEmptySketch       = errors.New("studio: draw a sketch before generating an image")
	ErrMissingStyle      = errors.New("studio: describe the style or attach a reference image")
	ErrNoEditor          = errors.New("studio: no image to edit")
	ErrMissingPrompt     = errors.New("studio: describe the edit")
)

// IsInputError reports whether err is one of the precondition failures.
func IsInputError(err error) bool {
	for _, target := range []error{ErrMissingCredential, ErrEmptySketch, ErrMissingStyle, ErrNoEditor, ErrMissingPrompt} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
