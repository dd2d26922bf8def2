package imagegen

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/h2non/filetype"
	"google.golang.org/genai"

	"github.com/gogpu/sketch"
)

// DefaultModel is the image-capable model used unless WithModel says
// otherwise.
const DefaultModel = "gemini-2.5-flash-image-preview"

// contentGenerator is the part of the genai client Gemini uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Gemini generator.
type Option func(*Gemini)

// WithModel selects the model name. Empty names are ignored.
func WithModel(model string) Option {
	return func(g *Gemini) {
		if model != "" {
			g.model = model
		}
	}
}

// Gemini is a Generator backed by the Gemini API.
type Gemini struct {
	models contentGenerator
	model  string
}

// NewGemini creates a generator authenticated with apiKey.
func NewGemini(ctx context.Context, apiKey string, opts ...Option) (*Gemini, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, classify(err)
	}
	return newGemini(client.Models, opts...), nil
}

func newGemini(models contentGenerator, opts ...Option) *Gemini {
	g := &Gemini{models: models, model: DefaultModel}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GeminiFactory returns a Factory creating Gemini generators with opts.
func GeminiFactory(opts ...Option) Factory {
	return func(ctx context.Context, apiKey string) (Generator, error) {
		return NewGemini(ctx, apiKey, opts...)
	}
}

// Model returns the model name requests are sent to.
func (g *Gemini) Model() string {
	return g.model
}

// Generate implements Generator.
func (g *Gemini) Generate(ctx context.Context, src []byte, prompt string, refs ...[]byte) ([]byte, error) {
	parts := []*genai.Part{imagePart(src, "image/png")}
	for _, ref := range refs {
		parts = append(parts, imagePart(ref, mimeOf(ref)))
	}
	parts = append(parts, &genai.Part{Text: prompt})
	return g.send(ctx, "generate", parts)
}

// Edit implements Generator.
func (g *Gemini) Edit(ctx context.Context, src []byte, prompt string) ([]byte, error) {
	return g.send(ctx, "edit", []*genai.Part{
		imagePart(src, "image/png"),
		{Text: prompt},
	})
}

func (g *Gemini) send(ctx context.Context, op string, parts []*genai.Part) ([]byte, error) {
	log := sketch.Logger().With("op", op, "model", g.model)
	log.Info("imagegen: request started", "parts", len(parts))

	resp, err := g.models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Role: "user", Parts: parts}},
		&genai.GenerateContentConfig{ResponseModalities: []string{"IMAGE", "TEXT"}},
	)
	if err != nil {
		err = classify(err)
		log.Warn("imagegen: request failed", "kind", KindOf(err), "err", err)
		return nil, err
	}

	img, err := imageFromResponse(resp)
	if err != nil {
		log.Warn("imagegen: unusable reply", "kind", KindOf(err), "err", err)
		return nil, err
	}
	log.Info("imagegen: request finished", "bytes", len(img))
	return img, nil
}

func imagePart(data []byte, mimeType string) *genai.Part {
	return &genai.Part{InlineData: &genai.Blob{Data: data, MIMEType: mimeType}}
}

// mimeOf sniffs the media type of an encoded image, falling back to PNG.
func mimeOf(data []byte) string {
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return "image/png"
	}
	return kind.MIME.Value
}

// imageFromResponse returns the first inline image of the first candidate.
func imageFromResponse(resp *genai.GenerateContentResponse) ([]byte, error) {
	var parts []*genai.Part
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		parts = resp.Candidates[0].Content.Parts
	}
	if len(parts) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, &Error{Kind: KindBlocked, Reason: string(resp.PromptFeedback.BlockReason)}
		}
		return nil, &Error{Kind: KindMalformed, Err: errors.New("invalid response structure: no content parts found")}
	}

	var text strings.Builder
	for _, p := range parts {
		if p == nil {
			continue
		}
		if p.InlineData != nil && len(p.InlineData.Data) > 0 {
			return p.InlineData.Data, nil
		}
		text.WriteString(p.Text)
	}
	return nil, &Error{Kind: KindMalformed, Reason: text.String()}
}

// classify turns a client error into an *Error.
func classify(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if isAuthError(err) {
		return &Error{Kind: KindAuth, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}

func isAuthError(err error) bool {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		apiErr = *apiErrPtr
	default:
		return strings.Contains(err.Error(), "API key not valid")
	}
	return apiErr.Code == http.StatusUnauthorized ||
		strings.Contains(apiErr.Message, "API key not valid") ||
		strings.Contains(apiErr.Status, "UNAUTHENTICATED")
}
