// Package studio ties a sketch surface, an edit surface and an image
// generator into the sketch-to-image workflow.
//
// A Studio generates a finished image from its sketch, opens an edit
// surface on the result, and sends erased regions back to the generator to
// be filled. Every result is kept in a linear result history that the
// editor's undo and redo fall back to once the editor's own history is
// exhausted.
package studio

import (
	"context"
	"io"
	"strings"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/imagegen"
	"github.com/gogpu/sketch/internal/history"
)

// Option configures a Studio.
type Option func(*Studio)

// WithSketchOptions sets the options of the sketch surface.
func WithSketchOptions(opts ...sketch.Option) Option {
	return func(s *Studio) {
		s.sketchOpts = opts
	}
}

// WithEditorOptions sets the options of every edit surface.
func WithEditorOptions(opts ...sketch.Option) Option {
	return func(s *Studio) {
		s.editorOpts = opts
	}
}

// WithFactory sets how generators are created. The default talks to the
// Gemini API.
func WithFactory(f imagegen.Factory) Option {
	return func(s *Studio) {
		s.factory = f
	}
}

// WithCredentials sets the credential store. The default starts empty.
func WithCredentials(c CredentialStore) Option {
	return func(s *Studio) {
		s.creds = c
	}
}

// Studio is not safe for concurrent use.
type Studio struct {
	sketch   *sketch.Surface
	editor   *sketch.Surface
	editMode sketch.Mode

	results *history.Stack[[]byte]

	creds   CredentialStore
	factory imagegen.Factory

	sketchOpts []sketch.Option
	editorOpts []sketch.Option
}

// New creates a studio with an empty sketch and no result.
func New(opts ...Option) *Studio {
	s := &Studio{
		results:  history.New[[]byte](),
		editMode: sketch.ModeErase,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.creds == nil {
		s.creds = &MemoryCredentials{}
	}
	if s.factory == nil {
		s.factory = imagegen.GeminiFactory()
	}
	s.sketch = sketch.New(s.sketchOpts...)
	return s
}

// Sketch returns the sketch surface.
func (s *Studio) Sketch() *sketch.Surface {
	return s.sketch
}

// Editor returns the edit surface, nil until a result exists.
func (s *Studio) Editor() *sketch.Surface {
	return s.editor
}

// Credentials returns the credential store.
func (s *Studio) Credentials() CredentialStore {
	return s.creds
}

// Result returns the current result image, nil when there is none.
func (s *Studio) Result() []byte {
	r, _ := s.results.Current()
	return r
}

// PasteSketch loads an encoded image into the sketch surface, fitted and
// centered. The paste is one undoable step.
func (s *Studio) PasteSketch(r io.Reader) error {
	return s.sketch.LoadEncoded(r)
}

// SetEditMode selects the editor mode, for the current editor and every
// editor opened later.
func (s *Studio) SetEditMode(m sketch.Mode) {
	s.editMode = m
	if s.editor != nil {
		s.editor.SetMode(m)
	}
}

// Generate turns the sketch into a finished image in the given style. On
// success the result history restarts with the new image and an editor is
// opened on it.
func (s *Studio) Generate(ctx context.Context, style Style) ([]byte, error) {
	if s.creds.Credential() == "" {
		return nil, ErrMissingCredential
	}
	if s.sketch.IsEmpty() {
		return nil, ErrEmptySketch
	}
	refs := style.References()
	text := style.Prompt()
	if text == "" && len(refs) == 0 {
		return nil, ErrMissingStyle
	}

	src, err := s.sketch.ExportRaster()
	if err != nil {
		return nil, err
	}
	gen, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}

	sketch.Logger().Info("studio: generating", "style", style.Preset, "references", len(refs))
	out, err := gen.Generate(ctx, src, imagegen.TransformPrompt(text, len(refs) > 0), refs...)
	if err != nil {
		return nil, s.failed(err)
	}
	if err := s.openEditor(out); err != nil {
		return nil, err
	}
	s.results.Reset()
	s.results.Commit(out)
	return out, nil
}

// Edit fills the erased region of the editor according to prompt. On
// success the result replaces everything after the current result in the
// result history and the editor is reopened on it.
func (s *Studio) Edit(ctx context.Context, prompt string) ([]byte, error) {
	if s.creds.Credential() == "" {
		return nil, ErrMissingCredential
	}
	if s.editor == nil {
		return nil, ErrNoEditor
	}
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrMissingPrompt
	}

	src, err := s.editor.ExportRaster()
	if err != nil {
		return nil, err
	}
	gen, err := s.generator(ctx)
	if err != nil {
		return nil, err
	}

	sketch.Logger().Info("studio: editing", "result", s.results.Index())
	out, err := gen.Edit(ctx, src, imagegen.EditPrompt(prompt))
	if err != nil {
		return nil, s.failed(err)
	}
	if err := s.openEditor(out); err != nil {
		return nil, err
	}
	s.results.Commit(out)
	return out, nil
}

// EditorUndo undoes the last editor stroke, or when the editor has none,
// steps back to the previous result. It reports whether anything changed.
func (s *Studio) EditorUndo() bool {
	if s.editor == nil {
		return false
	}
	if canUndo, _ := s.editor.Availability(); canUndo {
		return s.editor.Undo()
	}
	r, ok := s.results.Undo()
	if !ok {
		return false
	}
	return s.reopen(r)
}

// EditorRedo redoes an editor stroke, or when the editor has none, steps
// forward to the next result. It reports whether anything changed.
func (s *Studio) EditorRedo() bool {
	if s.editor == nil {
		return false
	}
	if _, canRedo := s.editor.Availability(); canRedo {
		return s.editor.Redo()
	}
	r, ok := s.results.Redo()
	if !ok {
		return false
	}
	return s.reopen(r)
}

// EditorAvailability reports whether EditorUndo and EditorRedo would
// change anything.
func (s *Studio) EditorAvailability() (canUndo, canRedo bool) {
	if s.editor == nil {
		return false, false
	}
	canUndo, canRedo = s.editor.Availability()
	return canUndo || s.results.CanUndo(), canRedo || s.results.CanRedo()
}

func (s *Studio) generator(ctx context.Context) (imagegen.Generator, error) {
	gen, err := s.factory(ctx, s.creds.Credential())
	if err != nil {
		return nil, s.failed(err)
	}
	return gen, nil
}

// failed forgets a rejected credential and passes err through.
func (s *Studio) failed(err error) error {
	if imagegen.KindOf(err) == imagegen.KindAuth {
		sketch.Logger().Warn("studio: credential rejected, clearing it")
		s.creds.ClearCredential()
	}
	return err
}

// reopen opens the editor on a result from the history. Results were
// decodable when committed, so failure is only logged.
func (s *Studio) reopen(result []byte) bool {
	if err := s.openEditor(result); err != nil {
		sketch.Logger().Error("studio: reopening result", "err", err)
		return false
	}
	return true
}

// openEditor replaces the editor with a new one over the encoded image,
// shown where the previous editor was.
func (s *Studio) openEditor(data []byte) error {
	img, err := sketch.DecodeImage(data)
	if err != nil {
		return &imagegen.Error{Kind: imagegen.KindMalformed, Err: err}
	}
	ed, err := sketch.NewEditor(img, s.editorOpts...)
	if err != nil {
		return &imagegen.Error{Kind: imagegen.KindMalformed, Err: err}
	}
	ed.SetMode(s.editMode)
	if prev := s.editor; prev != nil && prev.Geometry().Mounted() {
		g := prev.Geometry()
		if err := ed.Resize(g.Display, g.DPR); err != nil {
			return err
		}
	}
	s.editor = ed
	sketch.Logger().Debug("studio: editor opened", "width", ed.Width(), "height", ed.Height(), "bytes", len(data))
	return nil
}
