package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/h2non/filetype"

	"github.com/gogpu/sketch"
	"github.com/gogpu/sketch/imagegen"
	"github.com/gogpu/sketch/studio"
)

var (
	errUnknownOp = errors.New("server: unknown op")
	errNoRect    = errors.New("server: resize needs a rect")
	errNoPointer = errors.New("server: pointer op needs a pointer")
)

// session is the state of one shell connection. Messages are handled one
// at a time, in arrival order.
type session struct {
	studio  *studio.Studio
	style   studio.Style
	timeout time.Duration
}

func newSession(st *studio.Studio, timeout time.Duration) *session {
	return &session{studio: st, timeout: timeout}
}

// hello is the first reply of a connection.
func (ss *session) hello() Reply {
	r := Reply{Op: OpHello, OK: true}
	ss.fillState(&r)
	ss.fillFrame(&r, TargetSketch, ss.studio.Sketch())
	return r
}

func (ss *session) handle(ctx context.Context, m Message) Reply {
	r := Reply{ID: m.ID, Op: m.Op}
	target, surf, err := ss.apply(ctx, m, &r)
	if err != nil {
		r.Error = errorReply(err)
		sketch.Logger().Debug("server: op failed", "op", m.Op, "err", err)
	} else {
		r.OK = true
		if surf != nil {
			ss.fillFrame(&r, target, surf)
		}
	}
	ss.fillState(&r)
	return r
}

// apply performs m and returns the surface whose pixels should be sent
// back, if any.
func (ss *session) apply(ctx context.Context, m Message, r *Reply) (string, *sketch.Surface, error) {
	switch m.Op {
	case OpCredential:
		ss.studio.Credentials().SetCredential(m.Key)
		return "", nil, nil
	case OpPaste:
		_, data, err := sketch.ParseDataURL(m.Data)
		if err != nil {
			return "", nil, err
		}
		if err := ss.studio.PasteSketch(bytes.NewReader(data)); err != nil {
			return "", nil, err
		}
		return TargetSketch, ss.studio.Sketch(), nil
	case OpGenerate:
		if err := ss.selectStyle(m.Style); err != nil {
			return "", nil, err
		}
		ctx, cancel := ss.withTimeout(ctx)
		defer cancel()
		out, err := ss.studio.Generate(ctx, ss.style)
		if err != nil {
			return "", nil, err
		}
		r.Result = dataURL(out)
		return TargetEditor, ss.studio.Editor(), nil
	case OpMode:
		// The edit mode outlives the editor, so it can be chosen before
		// one exists.
		if m.Target == TargetEditor {
			mode, err := sketch.ParseMode(m.Mode)
			if err != nil {
				return "", nil, err
			}
			ss.studio.SetEditMode(mode)
			return "", nil, nil
		}
	case OpEdit:
		ctx, cancel := ss.withTimeout(ctx)
		defer cancel()
		out, err := ss.studio.Edit(ctx, m.Prompt)
		if err != nil {
			return "", nil, err
		}
		r.Result = dataURL(out)
		return TargetEditor, ss.studio.Editor(), nil
	}

	target, surf, err := ss.target(m.Target)
	if err != nil {
		return "", nil, err
	}
	switch m.Op {
	case OpResize:
		if m.Rect == nil {
			return "", nil, errNoRect
		}
		if err := surf.Resize(m.Rect.rect(), m.DPR); err != nil {
			return "", nil, err
		}
	case OpPointer:
		ev, err := pointerEvent(m.Pointer)
		if err != nil {
			return "", nil, err
		}
		surf.HandlePointer(ev)
		if ev.Kind != sketch.PointerUp && ev.Kind != sketch.PointerLeave {
			return "", nil, nil
		}
	case OpMode:
		mode, err := sketch.ParseMode(m.Mode)
		if err != nil {
			return "", nil, err
		}
		surf.SetMode(mode)
		return "", nil, nil
	case OpUndo:
		if target == TargetEditor {
			ss.studio.EditorUndo()
			surf = ss.studio.Editor()
		} else {
			surf.Undo()
		}
	case OpRedo:
		if target == TargetEditor {
			ss.studio.EditorRedo()
			surf = ss.studio.Editor()
		} else {
			surf.Redo()
		}
	case OpClear:
		surf.Clear()
	case OpExport:
	default:
		return "", nil, fmt.Errorf("%w: %q", errUnknownOp, m.Op)
	}
	return target, surf, nil
}

func (ss *session) target(name string) (string, *sketch.Surface, error) {
	switch name {
	case "", TargetSketch:
		return TargetSketch, ss.studio.Sketch(), nil
	case TargetEditor:
		if ed := ss.studio.Editor(); ed != nil {
			return TargetEditor, ed, nil
		}
		return "", nil, studio.ErrNoEditor
	}
	return "", nil, fmt.Errorf("server: unknown target %q", name)
}

// selectStyle updates the remembered style. Omitted fields keep their
// previous values, so a reference image survives until another preset is
// chosen.
func (ss *session) selectStyle(m *StyleMsg) error {
	if m == nil {
		return nil
	}
	p, err := studio.ParsePreset(m.Preset)
	if err != nil {
		return err
	}
	ss.style = ss.style.Select(p)
	if m.Text != "" {
		ss.style.Text = m.Text
	}
	if m.Reference != "" && p == studio.Custom {
		_, data, err := sketch.ParseDataURL(m.Reference)
		if err != nil {
			return err
		}
		ss.style.Reference = data
	}
	return nil
}

func (ss *session) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ss.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, ss.timeout)
}

func (ss *session) fillState(r *Reply) {
	sk := ss.studio.Sketch()
	u, rd := sk.Availability()
	r.Sketch = Availability{CanUndo: u, CanRedo: rd, Empty: sk.IsEmpty()}
	if ed := ss.studio.Editor(); ed != nil {
		u, rd := ss.studio.EditorAvailability()
		r.Editor = &Availability{CanUndo: u, CanRedo: rd, Empty: ed.IsEmpty()}
	}
}

func (ss *session) fillFrame(r *Reply, target string, surf *sketch.Surface) {
	frame, err := surf.ExportDataURL()
	if err != nil {
		// Not mounted yet: nothing to show.
		return
	}
	r.Target, r.Frame = target, frame
}

func pointerEvent(m *PointerMsg) (sketch.PointerEvent, error) {
	if m == nil {
		return sketch.PointerEvent{}, errNoPointer
	}
	kind, err := sketch.ParsePointerKind(m.Kind)
	if err != nil {
		return sketch.PointerEvent{}, err
	}
	return sketch.PointerEvent{Kind: kind, ClientX: m.X, ClientY: m.Y, Touches: m.Touches}, nil
}

// dataURL encodes an image as a data URL with its sniffed media type.
func dataURL(data []byte) string {
	mime := "image/png"
	if kind, err := filetype.Image(data); err == nil && kind != filetype.Unknown {
		mime = kind.MIME.Value
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func errorReply(err error) *ErrorReply {
	e := &ErrorReply{Message: err.Error()}
	var gen *imagegen.Error
	switch {
	case errors.As(err, &gen):
		e.Kind = gen.Kind.String()
		e.Reason = gen.Reason
	case studio.IsInputError(err), errors.Is(err, sketch.ErrUnsupportedImage),
		errors.Is(err, sketch.ErrInvalidGeometry), errors.Is(err, sketch.ErrNotMounted):
		e.Kind = "input"
	case errors.Is(err, context.DeadlineExceeded):
		e.Kind = imagegen.KindUnknown.String()
	default:
		e.Kind = "request"
	}
	return e
}
