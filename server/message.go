package server

import (
	"github.com/gogpu/sketch"
)

// Ops understood by the bridge.
const (
	OpHello      = "hello"
	OpResize     = "resize"
	OpPointer    = "pointer"
	OpMode       = "mode"
	OpUndo       = "undo"
	OpRedo       = "redo"
	OpClear      = "clear"
	OpPaste      = "paste"
	OpCredential = "credential"
	OpGenerate   = "generate"
	OpEdit       = "edit"
	OpExport     = "export"
)

// Targets select the surface an op applies to.
const (
	TargetSketch = "sketch"
	TargetEditor = "editor"
)

// Message is one request from the shell.
type Message struct {
	ID     int64  `json:"id,omitempty"`
	Op     string `json:"op"`
	Target string `json:"target,omitempty"`

	// resize
	Rect *RectMsg `json:"rect,omitempty"`
	DPR  float64  `json:"dpr,omitempty"`

	// pointer
	Pointer *PointerMsg `json:"pointer,omitempty"`

	// mode
	Mode string `json:"mode,omitempty"`

	// paste: a base64 data URL
	Data string `json:"data,omitempty"`

	// credential
	Key string `json:"key,omitempty"`

	// generate
	Style *StyleMsg `json:"style,omitempty"`

	// edit
	Prompt string `json:"prompt,omitempty"`
}

// RectMsg is an element rect in client coordinates.
type RectMsg struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r *RectMsg) rect() sketch.Rect {
	if r == nil {
		return sketch.Rect{}
	}
	return sketch.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// PointerMsg is a pointer event. A present touches array, even an empty
// one, marks a touch event.
type PointerMsg struct {
	Kind    string         `json:"kind"`
	X       float64        `json:"x"`
	Y       float64        `json:"y"`
	Touches []sketch.Touch `json:"touches,omitempty"`
}

// StyleMsg selects the generation style.
type StyleMsg struct {
	Preset string `json:"preset"`
	Text   string `json:"text,omitempty"`

	// Reference is a base64 data URL of a style reference image.
	Reference string `json:"reference,omitempty"`
}

// Reply answers one Message. Every reply carries the availability of both
// surfaces so the shell can update its controls.
type Reply struct {
	ID    int64       `json:"id,omitempty"`
	Op    string      `json:"op"`
	OK    bool        `json:"ok"`
	Error *ErrorReply `json:"error,omitempty"`

	Sketch Availability  `json:"sketch"`
	Editor *Availability `json:"editor,omitempty"`

	// Target and Frame carry the surface the op changed, as a PNG data URL.
	Target string `json:"target,omitempty"`
	Frame  string `json:"frame,omitempty"`

	// Result is the generated image, as a data URL.
	Result string `json:"result,omitempty"`
}

// Availability is the undo/redo state of one surface.
type Availability struct {
	CanUndo bool `json:"canUndo"`
	CanRedo bool `json:"canRedo"`
	Empty   bool `json:"empty"`
}

// ErrorReply describes a failed op.
type ErrorReply struct {
	// Kind is "input" for missing or invalid input, "request" for a
	// malformed message, or the generation failure kind: "auth",
	// "blocked", "malformed" or "unknown".
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Reason  string `json:"reason,omitempty"`
}
