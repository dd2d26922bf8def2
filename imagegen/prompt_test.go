package imagegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransformPrompt(t *testing.T) {
	assert.Equal(t,
		"Transform this sketch into a finished image in the style of 'Cartoon'.",
		TransformPrompt("  Cartoon ", false))
	assert.Equal(t,
		"Transform this sketch into a finished image in the style of the attached reference image.",
		TransformPrompt("", true))
	assert.Contains(t, TransformPrompt("watercolor", true), "'watercolor'")
	assert.Contains(t, TransformPrompt("watercolor", true), "reference image")
}

func TestEditPrompt(t *testing.T) {
	assert.Equal(t,
		"Fill the erased (transparent) area naturally according to the following description: 'a red boat'. Keep the rest of the image as it is.",
		EditPrompt("a red boat\n"))
}

func TestPromptNormalizesToNFC(t *testing.T) {
	// e followed by a combining acute accent.
	decomposed := "cafe\u0301"
	assert.Equal(t, EditPrompt("caf\u00e9"), EditPrompt(decomposed))
}
