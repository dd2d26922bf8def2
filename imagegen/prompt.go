package imagegen

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// TransformPrompt builds the instruction that turns a sketch into a
// finished image. An empty style with a reference image asks for the
// reference's style instead.
func TransformPrompt(style string, hasReference bool) string {
	style = normalize(style)
	switch {
	case style == "" && hasReference:
		return "Transform this sketch into a finished image in the style of the attached reference image."
	case hasReference:
		return fmt.Sprintf("Transform this sketch into a finished image in the style of '%s'. Use the attached reference image as a guide for the style.", style)
	default:
		return fmt.Sprintf("Transform this sketch into a finished image in the style of '%s'.", style)
	}
}

// EditPrompt builds the instruction that fills the transparent region of
// an edited image.
func EditPrompt(description string) string {
	return fmt.Sprintf("Fill the erased (transparent) area naturally according to the following description: '%s'. Keep the rest of the image as it is.", normalize(description))
}

// normalize trims user text and brings it to NFC so visually identical
// prompts are byte-identical.
func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
