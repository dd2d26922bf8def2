// Package imagegen talks to the external image generation service.
//
// A Generator turns an encoded sketch into a finished image, or fills the
// transparent region of an edited image. Failures are returned as *Error
// values classified by Kind.
package imagegen

import "context"

// Generator produces images from encoded images and text prompts.
// Inputs and results are encoded images, PNG for src.
type Generator interface {
	// Generate transforms the sketch src according to prompt. refs are
	// optional style reference images in any format the service accepts.
	Generate(ctx context.Context, src []byte, prompt string, refs ...[]byte) ([]byte, error)

	// Edit regenerates the transparent region of src according to prompt.
	Edit(ctx context.Context, src []byte, prompt string) ([]byte, error)
}

// Factory creates a Generator for one credential.
type Factory func(ctx context.Context, apiKey string) (Generator, error)
